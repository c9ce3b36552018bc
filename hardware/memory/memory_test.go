package memory_test

import (
	"testing"

	"github.com/jetsetilly/testfalcon/hardware/memory"
	"github.com/jetsetilly/testfalcon/hardware/memory/ram"
	"github.com/jetsetilly/testfalcon/test"
)

func TestMapAddress(t *testing.T) {
	mem, addChips := memory.Create(nil, 0x10000)
	xb := ram.Create(nil, "crossbar", 0x44)
	mfp := ram.Create(nil, "mfp", 0x40)

	// chip areas are unmapped until they are added
	_, area := mem.MapAddress(0xff8901)
	test.ExpectEquality(t, area, memory.Area(nil))

	addChips(xb, mfp)

	idx, area := mem.MapAddress(0x001234)
	test.ExpectEquality(t, idx, uint32(0x1234))
	test.ExpectEquality(t, area.Label(), "stram")

	idx, area = mem.MapAddress(0xff8921)
	test.ExpectEquality(t, idx, uint32(0x21))
	test.ExpectEquality(t, area.Label(), "crossbar")

	// upper byte of the address is ignored
	idx, area = mem.MapAddress(0x12fffa19)
	test.ExpectEquality(t, idx, uint32(0x19))
	test.ExpectEquality(t, area.Label(), "mfp")

	// beyond the end of RAM
	_, area = mem.MapAddress(0x010000)
	test.ExpectEquality(t, area, memory.Area(nil))
}

func TestWords(t *testing.T) {
	mem, _ := memory.Create(nil, 0x100)

	test.ExpectSuccess(t, mem.WriteWord(0x10, 0xbeef))
	v, err := mem.Read(0x10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xbe))

	w, err := mem.ReadWord(0x10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, uint16(0xbeef))

	_, err = mem.ReadWord(0xff)
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, mem.Write(0x200, 0))
}

func TestSizeLimit(t *testing.T) {
	mem, _ := memory.Create(nil, 64*1024*1024)
	test.ExpectEquality(t, mem.STRam.Size(), memory.MaxSTRam)
}
