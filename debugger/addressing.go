package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/testfalcon/hardware/memory"
)

type mappedAddress struct {
	address uint32
	area    memory.Area
	idx     uint32
}

// parseNumber accepts decimal, 0x prefixed and $ prefixed hexadecimal values
func parseNumber(s string, bits int) (uint64, error) {
	if strings.HasPrefix(s, "$") {
		s = fmt.Sprintf("0x%s", s[1:])
	}
	return strconv.ParseUint(s, 0, bits)
}

func (m *debugger) parseAddress(address string) (mappedAddress, error) {
	var ma mappedAddress

	addr, err := parseNumber(address, 24)
	if err != nil {
		return ma, fmt.Errorf("address is not valid: %s", address)
	}
	ma.address = uint32(addr)

	ma.idx, ma.area = m.console.Mem.MapAddress(ma.address)
	if ma.area == nil {
		return ma, fmt.Errorf("address is not mapped: %s", address)
	}

	return ma, nil
}
