package crossbar

import (
	"fmt"

	"github.com/jetsetilly/testfalcon/logger"
)

// the crossbar has a 24bit address bus
const addressMask = 0xffffff

// 8bit samples are scaled to the amplitude of 16bit samples before they are
// sent to the DAC
const eightBitScale = 64

// DMA is one of the two DMA units of the crossbar
type DMA struct {
	Route

	// the frame addresses as written to the frame address registers. these
	// are latched into FrameStart and FrameEnd when the unit is started and
	// whenever it loops
	RegStart uint32
	RegEnd   uint32

	FrameStart   uint32
	FrameEnd     uint32
	FrameLen     int32
	FrameCounter int32

	Running bool
	Loop    bool

	// the position of the next sample in the interleaved frame of tracks
	Slot uint16

	// in handshake mode with the DSP. transfers only happen when the DSP has
	// indicated a new frame
	Handshake      bool
	HandshakeFrame bool

	// interrupts at the end of the frame
	TimerA bool
	GPIP7  bool
}

func (d *DMA) reset() {
	d.Running = false
	d.Loop = false
	d.Slot = 0
	d.Handshake = false
	d.HandshakeFrame = false
}

// latch the frame addresses from the registers and restart the frame
func (d *DMA) latch(perm logger.Permission, label string) {
	d.FrameStart = d.RegStart
	d.FrameEnd = d.RegEnd
	d.FrameLen = int32(d.FrameEnd) - int32(d.FrameStart)
	d.FrameCounter = 0

	if d.FrameLen <= 0 {
		logger.Logf(perm, "crossbar", "DMA %s: illegal buffer size (from %#06x to %#06x)", label, d.FrameStart, d.FrameEnd)
	}
}

// Current returns the address of the next sample in the frame
func (d *DMA) Current() uint32 {
	return (d.FrameStart + uint32(d.FrameCounter)) & addressMask
}

// advance the slot counter, wrapping at the number of tracks in the frame
func (d *DMA) advance(tracks uint16) {
	d.Slot++
	if d.Slot >= tracks*2 {
		d.Slot = 0
	}
}

func (d *DMA) endOfFrame() bool {
	return d.FrameCounter >= d.FrameLen
}

func (d *DMA) String() string {
	s := fmt.Sprintf("%#06x-%#06x @ %#06x", d.FrameStart, d.FrameEnd, d.Current())
	if d.Running {
		s += " running"
	}
	if d.Loop {
		s += " loop"
	}
	if d.Handshake {
		s += " handshake"
	}
	return fmt.Sprintf("%s slot %d -> %s", s, d.Slot, d.Route.String())
}

func (xb *Crossbar) readSample(address uint32) int8 {
	v, err := xb.mem.Read(address & addressMask)
	if err != nil {
		logger.Logf(xb.ctx, "crossbar", "DMA play: %v", err)
		return 0
	}
	return int8(v)
}

func (xb *Crossbar) writeSample(address uint32, v uint8) {
	err := xb.mem.Write(address&addressMask, v)
	if err != nil {
		logger.Logf(xb.ctx, "crossbar", "DMA record: %v", err)
	}
}

// playDMA reads the next sample of the frame and sends it to every connected
// destination
func (xb *Crossbar) playDMA() {
	d := &xb.Play

	if !d.Running {
		return
	}
	if d.Handshake && !d.HandshakeFrame {
		return
	}

	var value int16
	scale := int16(eightBitScale)

	address := d.Current()
	switch {
	case xb.Config.Is16Bit:
		scale = 1
		value = int16(uint16(uint8(xb.readSample(address)))<<8 | uint16(uint8(xb.readSample(address+1))))
		d.FrameCounter += 2
	case xb.Config.IsStereo:
		value = int16(xb.readSample(address))
		d.FrameCounter++
	default:
		// in mono the counter only moves on after the even slots
		value = int16(xb.readSample(address))
		if d.Slot&1 == 0 {
			d.FrameCounter++
		}
	}

	if d.DMA {
		xb.recordDMA(value)
	}
	if d.Codec {
		xb.sendDAC(value*scale, d.Slot)
	}
	if d.DSP {
		xb.sendDSP(uint32(value), d.Slot == 0)
	}

	d.advance(xb.Config.PlayTracks)

	if d.endOfFrame() {
		xb.interrupt(d, "play")
		if d.Loop {
			d.latch(xb.ctx, "play")
		} else {
			xb.regs[regDMAControl] &^= controlPlayRun
			d.Running = false
		}
	}
}

// recordDMA writes the value to the next position in the record frame
func (xb *Crossbar) recordDMA(value int16) {
	d := &xb.Record

	if !d.Running {
		return
	}

	address := d.Current()
	switch {
	case xb.Config.Is16Bit:
		xb.writeSample(address, uint8(uint16(value)>>8))
		xb.writeSample(address+1, uint8(value))
		d.FrameCounter += 2
	case xb.Config.IsStereo:
		// 8bit stereo is recorded as words
		xb.writeSample(address, uint8(uint16(value)>>8))
		xb.writeSample(address+1, uint8(value))
		d.FrameCounter += 2
	default:
		xb.writeSample(address, uint8(value))
		if d.Slot&1 == 0 {
			d.FrameCounter++
		}
	}

	d.advance(xb.Config.RecordTracks)

	if d.endOfFrame() {
		xb.interrupt(d, "record")
		if d.Loop {
			d.latch(xb.ctx, "record")
		} else {
			xb.regs[regDMAControl] &^= controlRecordRun
			d.Running = false
		}
	}
}

// interrupt raises the end of frame interrupts enabled for the DMA unit
func (xb *Crossbar) interrupt(d *DMA, label string) {
	if xb.mfp == nil {
		return
	}
	if d.GPIP7 {
		xb.mfp.InputOnGPIP7()
		logger.Logf(xb.ctx, "crossbar", "MFP15 (IT7) interrupt from DMA %s", label)
	}
	if d.TimerA && xb.mfp.TimerAControl() == timerAEventCountMode {
		xb.mfp.TimerAEventCount()
		logger.Logf(xb.ctx, "crossbar", "MFP Timer A interrupt from DMA %s", label)
	}
}

// HandshakePlayFrame is called by the DSP when it is ready to receive a sample
// from the DMA play unit in handshake mode
func (xb *Crossbar) HandshakePlayFrame() {
	xb.Play.HandshakeFrame = true
}

// HandshakeRecordFrame is called by the DSP with the state of the transmit
// frame sync line. It is only used in handshake mode
func (xb *Crossbar) HandshakeRecordFrame(frame bool) {
	xb.Record.HandshakeFrame = frame
}
