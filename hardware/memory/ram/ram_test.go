package ram_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/testfalcon/hardware/memory/ram"
	"github.com/jetsetilly/testfalcon/test"
)

type rnd struct{}

func (rnd) Rand8Bit() uint8 {
	return 0xaa
}

func TestReadWrite(t *testing.T) {
	r := ram.Create(rnd{}, "stram", 0x100)

	test.ExpectSuccess(t, r.Write(0x10, 0x55))
	v, err := r.Read(0x10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x55))

	_, err = r.Read(0x100)
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, r.Write(0x100, 0x00))
}

func TestReset(t *testing.T) {
	r := ram.Create(rnd{}, "stram", 0x20)

	r.Reset(true)
	v, _ := r.Read(0x1f)
	test.ExpectEquality(t, v, uint8(0xaa))

	r.Reset(false)
	v, _ = r.Read(0x1f)
	test.ExpectEquality(t, v, uint8(0x00))
}

func TestDump(t *testing.T) {
	r := ram.Create(nil, "stram", 0x20)
	_ = r.Write(0x11, 0xff)
	test.ExpectEquality(t, r.Dump(0x12, 16),
		"000010 : 00 ff 00 00 00 00 00 00 00 00 00 00 00 00 00 00")
}

func TestSnapshot(t *testing.T) {
	r := ram.Create(nil, "stram", 0x40)
	_ = r.Write(0x3f, 0x12)

	var b bytes.Buffer
	test.ExpectSuccess(t, r.Snapshot(&b))
	test.ExpectEquality(t, b.Len(), 4+0x40)
	data := bytes.Clone(b.Bytes())

	r.Reset(false)
	test.ExpectSuccess(t, r.Restore(bytes.NewReader(data)))
	v, _ := r.Read(0x3f)
	test.ExpectEquality(t, v, uint8(0x12))

	// RAM of a different size
	other := ram.Create(nil, "stram", 0x80)
	test.ExpectFailure(t, other.Restore(bytes.NewReader(data)))

	// truncated snapshot leaves the RAM untouched
	r.Reset(false)
	test.ExpectFailure(t, r.Restore(bytes.NewReader(data[:0x20])))
	v, _ = r.Read(0x10)
	test.ExpectEquality(t, v, uint8(0x00))
}
