package memory

import (
	"fmt"

	"github.com/jetsetilly/testfalcon/hardware/memory/ram"
)

// the Falcon has a 24bit address bus
const addressMask = 0xffffff

// the largest amount of ST-RAM the Falcon can be fitted with
const MaxSTRam = 14 * 1024 * 1024

// the address of the crossbar and MFP register areas
const (
	originCrossbar = 0xff8900
	memtopCrossbar = 0xff8943
	originMFP      = 0xfffa00
	memtopMFP      = 0xfffa3f
)

type Memory struct {
	STRam    *ram.RAM
	Crossbar Area
	MFP      Area
	Last     Area
}

type Context interface {
	ram.Context
}

// Create memory with the specified amount of ST-RAM. The size is limited to
// MaxSTRam
func Create(ctx Context, size int) (*Memory, AddChips) {
	size = max(min(size, MaxSTRam), 0)
	mem := &Memory{
		STRam: ram.Create(ctx, "stram", size),
	}
	return mem, func(crossbar Area, mfp Area) {
		mem.Crossbar = crossbar
		mem.MFP = mfp
	}
}

func (mem *Memory) Reset(random bool) {
	mem.STRam.Reset(random)
}

// AddChips is returned by the Create() function and should be called to
// finalise the memory creation process
type AddChips func(crossbar Area, mfp Area)

type Area interface {
	// read and write both take an index value. this is an address in the area
	// but with the area origin removed. in other words, the area doesn't need
	// to know about it's location in memory, only the relative placement of
	// addresses within the area
	Read(idx uint32) (uint8, error)
	Write(idx uint32, data uint8) error
	Label() string
}

// MapAddress returns the memory "area" and index into the area corresponding
// to the address. Only the lower 24bits of the address are used
//
// It is possible for a nil Area to be returned. In which case, the index value
// will be zero
func (mem *Memory) MapAddress(address uint32) (uint32, Area) {
	address &= addressMask

	if address < uint32(mem.STRam.Size()) {
		return address, mem.STRam
	}

	if address >= originCrossbar && address <= memtopCrossbar {
		if mem.Crossbar == nil {
			return 0, nil
		}
		return address - originCrossbar, mem.Crossbar
	}

	if address >= originMFP && address <= memtopMFP {
		if mem.MFP == nil {
			return 0, nil
		}
		return address - originMFP, mem.MFP
	}

	return 0, nil
}

func (mem *Memory) Read(address uint32) (uint8, error) {
	idx, area := mem.MapAddress(address)
	if area == nil {
		return 0, fmt.Errorf("read unmapped address: %06x", address&addressMask)
	}
	v, err := area.Read(idx)
	if err != nil {
		return 0, fmt.Errorf("read %06x: %w", address&addressMask, err)
	}
	return v, nil
}

func (mem *Memory) Write(address uint32, data uint8) error {
	idx, area := mem.MapAddress(address)
	if area == nil {
		return fmt.Errorf("write unmapped address: %06x", address&addressMask)
	}
	mem.Last = area
	err := area.Write(idx, data)
	if err != nil {
		return fmt.Errorf("write %06x: %w", address&addressMask, err)
	}
	return nil
}

// ReadWord reads a big-endian word from the address
func (mem *Memory) ReadWord(address uint32) (uint16, error) {
	hi, err := mem.Read(address)
	if err != nil {
		return 0, err
	}
	lo, err := mem.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// WriteWord writes a big-endian word to the address. The high byte is written
// first
func (mem *Memory) WriteWord(address uint32, data uint16) error {
	err := mem.Write(address, uint8(data>>8))
	if err != nil {
		return err
	}
	return mem.Write(address+1, uint8(data))
}
