package crossbar

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrSnapshotFormat is returned by Restore() if the data is not a crossbar
// snapshot of the current version
var ErrSnapshotFormat = errors.New("unrecognised crossbar snapshot")

var snapshotMagic = [4]byte{'X', 'B', 'A', 'R'}

const snapshotVersion = 2

// state is the part of the crossbar that is saved in a snapshot. every field
// must be of a fixed size
type state struct {
	Magic   [4]byte
	Version uint32

	Regs    [RegisterCount]uint8
	Config  Config
	Play    DMA
	Record  DMA
	Xmit    DSPPort
	Receive DSPPort
	DAC     Codec
	ADC     Codec
	Clock25 Oscillator
	Clock32 Oscillator

	// cycles remaining until the next tick of each oscillator
	Pending25   uint32
	Pending32   uint32
	Scheduled25 bool
	Scheduled32 bool
}

// Snapshot writes the state of the crossbar to w
func (xb *Crossbar) Snapshot(w io.Writer) error {
	s := &state{
		Magic:   snapshotMagic,
		Version: snapshotVersion,
		Regs:    xb.regs,
		Config:  xb.Config,
		Play:    xb.Play,
		Record:  xb.Record,
		Xmit:    xb.Xmit,
		Receive: xb.Receive,
		DAC:     xb.DAC,
		ADC:     xb.ADC,
		Clock25: xb.Clock25,
		Clock32: xb.Clock32,
	}
	s.Pending25, s.Scheduled25 = xb.pending(Event25Mhz)
	s.Pending32, s.Scheduled32 = xb.pending(Event32Mhz)
	if err := binary.Write(w, binary.BigEndian, s); err != nil {
		return fmt.Errorf("crossbar: snapshot: %w", err)
	}
	return nil
}

// Restore replaces the state of the crossbar with the snapshot read from r.
// The oscillators are restarted from the restored state. The crossbar is
// unchanged if the snapshot can not be read
func (xb *Crossbar) Restore(r io.Reader) error {
	var s state
	if err := binary.Read(r, binary.BigEndian, &s); err != nil {
		return fmt.Errorf("crossbar: restore: %w", err)
	}
	if s.Magic != snapshotMagic || s.Version != snapshotVersion {
		return fmt.Errorf("crossbar: restore: %w", ErrSnapshotFormat)
	}

	xb.regs = s.Regs
	xb.Config = s.Config
	xb.Play = s.Play
	xb.Record = s.Record
	xb.Xmit = s.Xmit
	xb.Receive = s.Receive
	xb.DAC = s.DAC
	xb.ADC = s.ADC
	xb.Clock25 = s.Clock25
	xb.Clock32 = s.Clock32

	// the oscillators continue from the point in the interval where the
	// snapshot was taken
	if s.Scheduled25 {
		xb.sched.Schedule(Event25Mhz, s.Pending25, xb.tick25)
	} else {
		xb.startClock25()
	}
	if s.Scheduled32 {
		xb.sched.Schedule(Event32Mhz, s.Pending32, xb.tick32)
	} else {
		xb.startClock32()
	}

	return nil
}

func (xb *Crossbar) pending(event string) (uint32, bool) {
	n, ok := xb.sched.Pending(event)
	return uint32(n), ok
}

// SnapshotSize is the number of bytes written by Snapshot()
func SnapshotSize() int {
	return binary.Size(state{})
}
