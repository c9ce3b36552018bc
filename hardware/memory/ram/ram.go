package ram

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

type RAM struct {
	ctx   Context
	label string
	data  []uint8
}

type Context interface {
	Rand8Bit() uint8
}

func Create(ctx Context, label string, size int) *RAM {
	return &RAM{
		ctx:   ctx,
		label: label,
		data:  make([]uint8, size),
	}
}

func (r *RAM) Reset(random bool) {
	if random && r.ctx != nil {
		for i := range len(r.data) {
			r.data[i] = r.ctx.Rand8Bit()
		}
	} else {
		clear(r.data)
	}
}

// Dump returns a hex dump of the RAM from the start address for the given
// number of bytes. Dumps are aligned to 16 bytes
func (r *RAM) Dump(start uint32, n int) string {
	var s strings.Builder
	start &^= 0x0f
	for j := int(start); j < int(start)+n && j < len(r.data); j += 16 {
		e := min(j+16, len(r.data))
		s.WriteString(fmt.Sprintf("%06x : % 02x\n", j, r.data[j:e]))
	}
	return strings.TrimSuffix(s.String(), "\n")
}

func (r *RAM) Label() string {
	return r.label
}

func (r *RAM) Size() int {
	return len(r.data)
}

func (r *RAM) Read(idx uint32) (uint8, error) {
	if int(idx) >= len(r.data) {
		return 0, fmt.Errorf("%s: read out of range: %#06x", r.label, idx)
	}
	return r.data[idx], nil
}

func (r *RAM) Write(idx uint32, data uint8) error {
	if int(idx) >= len(r.data) {
		return fmt.Errorf("%s: write out of range: %#06x", r.label, idx)
	}
	r.data[idx] = data
	return nil
}

// Snapshot writes the size and the content of the RAM to w
func (r *RAM) Snapshot(w io.Writer) error {
	err := binary.Write(w, binary.BigEndian, uint32(len(r.data)))
	if err != nil {
		return fmt.Errorf("%s: snapshot: %w", r.label, err)
	}
	_, err = w.Write(r.data)
	if err != nil {
		return fmt.Errorf("%s: snapshot: %w", r.label, err)
	}
	return nil
}

// Restore replaces the content of the RAM with the snapshot read from r. The
// snapshot must be of a RAM of the same size. The RAM is unchanged if the
// snapshot can not be read
func (r *RAM) Restore(rd io.Reader) error {
	var size uint32
	err := binary.Read(rd, binary.BigEndian, &size)
	if err != nil {
		return fmt.Errorf("%s: restore: %w", r.label, err)
	}
	if int(size) != len(r.data) {
		return fmt.Errorf("%s: restore: snapshot is for %d bytes of RAM not %d", r.label, size, len(r.data))
	}

	d := make([]uint8, size)
	_, err = io.ReadFull(rd, d)
	if err != nil {
		return fmt.Errorf("%s: restore: %w", r.label, err)
	}
	copy(r.data, d)

	return nil
}
