package crossbar

import (
	"fmt"

	"github.com/jetsetilly/testfalcon/logger"
)

// RegisterCount is the number of bytes in the crossbar register area
const RegisterCount = Memtop - Origin + 1

// register offsets from Origin
const (
	regBufferInterrupts = 0x00
	regDMAControl       = 0x01
	regFrameStartHi     = 0x03
	regFrameStartMid    = 0x05
	regFrameStartLo     = 0x07
	regFrameCountHi     = 0x09
	regFrameCountMid    = 0x0b
	regFrameCountLo     = 0x0d
	regFrameEndHi       = 0x0f
	regFrameEndMid      = 0x11
	regFrameEndLo       = 0x13
	regTrackControl     = 0x20
	regSoundMode        = 0x21
	regSourceHi         = 0x30
	regSourceLo         = 0x31
	regDestinationHi    = 0x32
	regDestinationLo    = 0x33
	regExternalDivider  = 0x34
	regInternalDivider  = 0x35
	regRecordTracks     = 0x36
	regCodecInput       = 0x37
	regADCInput         = 0x38
	regGain             = 0x39
	regAttenuation      = 0x3a
	regCodecStatusHi    = 0x3c
	regCodecStatusLo    = 0x3d
)

// the three bytes of a frame address register are two bytes apart
const frameAddressStride = 2

// bits in the buffer interrupt register ($FF8900)
const (
	bufferPlayGPIP7    = 0x01
	bufferRecordGPIP7  = 0x02
	bufferPlayTimerA   = 0x04
	bufferRecordTimerA = 0x08
)

// bits in the DMA control register ($FF8901)
const (
	controlPlayRun      = 0x01
	controlPlayLoop     = 0x02
	controlRecordRun    = 0x10
	controlRecordLoop   = 0x20
	controlRecordSelect = 0x80
)

// bits in the track control register ($FF8920)
const (
	trackPlayCount    = 0x03
	trackMonitor      = 0x30
	trackMonitorShift = 4
)

// bits in the sound mode register ($FF8921)
const (
	modeSTEFreq = 0x03
	mode16Bit   = 0x40
	modeMono    = 0x80
)

// bits in the internal divider and record track registers
const (
	dividerMask      = 0x0f
	recordTrackCount = 0x03
)

// bits in the source selector ($FF8930). each source device has a nibble:
//
//	15-12  ADC
//	11-8   external input
//	7-4    DSP transmit
//	3-0    DMA playback
//
// in the DSP and DMA nibbles the top bit is a connect (or handshake
// destination) bit, the middle two bits are the clock source and the lowest
// bit is set when handshaking is off
const (
	sourceXmitConnect   = 0x0080
	sourceXmitHandshake = 0x0010
	sourceXmitFreqShift = 5
	sourcePlayFreqShift = 1
	sourceFreqMask      = 0x03

	// DMA playback is in handshake with DSP receive when both bit 3 and bit 0
	// are clear
	sourcePlayHandshakeMask = 0x0009
)

// bits in the destination selector ($FF8932). each destination device has a
// nibble:
//
//	15-12  DAC
//	11-8   external output
//	7-4    DSP receive
//	3-0    DMA record
//
// the middle two bits of each nibble select the source device being listened
// to
const (
	destReceiveConnect   = 0x0080
	destReceiveHandshake = 0x0010

	destDAC     = 0x6000
	destReceive = 0x0060
	destRecord  = 0x0006

	// the source selections in each nibble, shifted to the DAC, DSP receive
	// and DMA record positions
	selectDMA   = 0x0
	selectDSP   = 0x1
	selectExt   = 0x2
	selectCodec = 0x3

	dacShift     = 13
	receiveShift = 5
	recordShift  = 1

	// DMA playback in handshake with DSP receive
	destPlayHandshakeMask   = 0x0007
	destPlayHandshake       = 0x0002
	destRecordHandshakeMask = 0x000f
	destRecordHandshake     = 0x0002
)

var registerNames = map[uint16]string{
	regBufferInterrupts: "buffer interrupts",
	regDMAControl:       "DMA control",
	regFrameStartHi:     "frame start high",
	regFrameStartMid:    "frame start mid",
	regFrameStartLo:     "frame start low",
	regFrameCountHi:     "frame count high",
	regFrameCountMid:    "frame count mid",
	regFrameCountLo:     "frame count low",
	regFrameEndHi:       "frame end high",
	regFrameEndMid:      "frame end mid",
	regFrameEndLo:       "frame end low",
	regTrackControl:     "track control",
	regSoundMode:        "sound mode",
	regSourceHi:         "source selector",
	regSourceLo:         "source selector",
	regDestinationHi:    "destination selector",
	regDestinationLo:    "destination selector",
	regExternalDivider:  "external divider",
	regInternalDivider:  "internal divider",
	regRecordTracks:     "record tracks",
	regCodecInput:       "codec input",
	regADCInput:         "ADC input",
	regGain:             "gain",
	regAttenuation:      "attenuation",
	regCodecStatusHi:    "codec status",
	regCodecStatusLo:    "codec status",
}

// word returns the value of a word register from its two byte registers
func (xb *Crossbar) word(hi uint16) uint16 {
	return uint16(xb.regs[hi])<<8 | uint16(xb.regs[hi+1])
}

// address returns the 24bit value of a three byte frame register
func (xb *Crossbar) address(hi uint16) uint32 {
	return uint32(xb.regs[hi])<<16 |
		uint32(xb.regs[hi+frameAddressStride])<<8 |
		uint32(xb.regs[hi+frameAddressStride*2])
}

// selected returns the DMA unit the frame address registers refer to
func (xb *Crossbar) selected() *DMA {
	if xb.Config.DMASelected {
		return &xb.Record
	}
	return &xb.Play
}

// Access implements the register interface of the crossbar. The idx value is
// relative to Origin. The bool return value is false if the idx is not in the
// crossbar area
func (xb *Crossbar) Access(write bool, idx uint16, data uint8) (uint8, bool, error) {
	if idx >= RegisterCount {
		return 0, false, nil
	}

	if write {
		xb.regs[idx] = data
		xb.decode(idx, data)
		return 0, true, nil
	}

	return xb.read(idx), true, nil
}

// Read implements the memory area interface. The idx value is relative to
// Origin
func (xb *Crossbar) Read(idx uint32) (uint8, error) {
	if idx > 0xffff {
		return 0, fmt.Errorf("crossbar: read out of range: %#06x", idx)
	}
	v, ok, err := xb.Access(false, uint16(idx), 0)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("crossbar: read out of range: %#06x", idx)
	}
	return v, nil
}

// Write implements the memory area interface. The idx value is relative to
// Origin
func (xb *Crossbar) Write(idx uint32, data uint8) error {
	if idx > 0xffff {
		return fmt.Errorf("crossbar: write out of range: %#06x", idx)
	}
	_, ok, err := xb.Access(true, uint16(idx), data)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("crossbar: write out of range: %#06x", idx)
	}
	return nil
}

// Peek returns the raw value of the register without any of the computed
// values that a read returns
func (xb *Crossbar) Peek(idx uint16) uint8 {
	if idx >= RegisterCount {
		return 0
	}
	return xb.regs[idx]
}

func (xb *Crossbar) read(idx uint16) uint8 {
	switch idx {
	case regFrameStartHi, regFrameStartMid, regFrameStartLo:
		return byteOf(xb.selected().RegStart, idx-regFrameStartHi)
	case regFrameCountHi, regFrameCountMid, regFrameCountLo:
		return byteOf(xb.selected().Current(), idx-regFrameCountHi)
	case regFrameEndHi, regFrameEndMid, regFrameEndLo:
		return byteOf(xb.selected().RegEnd, idx-regFrameEndHi)
	}
	return xb.regs[idx]
}

// byteOf returns the byte of a 24bit address for the offset of the byte from
// the high byte register
func byteOf(address uint32, offset uint16) uint8 {
	switch offset {
	case 0:
		return uint8(address >> 16)
	case frameAddressStride:
		return uint8(address >> 8)
	}
	return uint8(address)
}

func (xb *Crossbar) decode(idx uint16, data uint8) {
	if name, ok := registerNames[idx]; ok {
		logger.Logf(xb.ctx, "crossbar", "$%06x (%s) write: %#02x", Origin+uint32(idx), name, data)
	}

	switch idx {
	case regBufferInterrupts:
		xb.Play.GPIP7 = data&bufferPlayGPIP7 == bufferPlayGPIP7
		xb.Record.GPIP7 = data&bufferRecordGPIP7 == bufferRecordGPIP7
		xb.Play.TimerA = data&bufferPlayTimerA == bufferPlayTimerA
		xb.Record.TimerA = data&bufferRecordTimerA == bufferRecordTimerA

	case regDMAControl:
		xb.decodeDMAControl(data)

	case regFrameStartHi, regFrameStartMid, regFrameStartLo:
		xb.selected().RegStart = xb.address(regFrameStartHi) &^ 1

	case regFrameCountHi, regFrameCountMid:
		d := xb.selected()
		d.FrameCounter = int32(xb.address(regFrameCountHi) - d.RegStart)

	case regFrameCountLo:
		// the frame counter is not updated on a write to the low byte. this
		// is required by the Eko System demo but it is not known if the real
		// hardware behaves the same way

	case regFrameEndHi, regFrameEndMid, regFrameEndLo:
		xb.selected().RegEnd = xb.address(regFrameEndHi) &^ 1

	case regTrackControl:
		xb.Config.PlayTracks = uint16(data&trackPlayCount) + 1
		xb.Config.TrackMonitored = uint16(data&trackMonitor) >> trackMonitorShift
		xb.recalculateClocks()

	case regSoundMode:
		xb.Config.Is16Bit = data&mode16Bit == mode16Bit
		xb.Config.IsStereo = data&modeMono != modeMono
		xb.Config.STEFreq = data & modeSTEFreq
		xb.recalculateClocks()

	case regSourceHi, regSourceLo:
		xb.decodeSource(xb.word(regSourceHi))

	case regDestinationHi, regDestinationLo:
		xb.decodeDestination(xb.word(regDestinationHi))

	case regInternalDivider:
		xb.Config.Divider = data & dividerMask
		xb.recalculateClocks()

	case regRecordTracks:
		xb.Config.RecordTracks = uint16(data&recordTrackCount) + 1

	case regCodecInput:
		xb.Config.CodecInputSource = data

	case regADCInput:
		xb.Config.ADCInput = data

	case regGain:
		xb.Config.Gain = data

	case regAttenuation:
		xb.Config.Attenuation = data
	}
}

func (xb *Crossbar) decodeDMAControl(data uint8) {
	xb.Config.DMASelected = data&controlRecordSelect == controlRecordSelect

	if !xb.Play.Running && data&controlPlayRun == controlPlayRun {
		xb.Play.Running = true
		xb.Play.Loop = data&controlPlayLoop == controlPlayLoop
		xb.Config.SoundControl = data
		xb.Play.latch(xb.ctx, "play")
	} else if xb.Play.Running && data&controlPlayRun != controlPlayRun {
		xb.Play.Running = false
		xb.Play.Loop = false
		xb.Config.SoundControl = data
	}

	if !xb.Record.Running && data&controlRecordRun == controlRecordRun {
		xb.Record.Running = true
		xb.Record.Loop = data&controlRecordLoop == controlRecordLoop
		xb.Config.SoundControl = data
		xb.Record.latch(xb.ctx, "record")
	} else if xb.Record.Running && data&controlRecordRun != controlRecordRun {
		xb.Record.Running = false
		xb.Record.Loop = false
		xb.Config.SoundControl = data
	}
}

func (xb *Crossbar) decodeSource(v uint16) {
	xb.Xmit.Tristated = v&sourceXmitConnect != sourceXmitConnect
	xb.Xmit.Handshake = v&sourceXmitHandshake != sourceXmitHandshake

	xb.Config.XmitFreq = uint8(v>>sourceXmitFreqShift) & sourceFreqMask
	xb.Config.PlayFreq = uint8(v>>sourcePlayFreqShift) & sourceFreqMask

	xb.Play.Handshake = v&sourcePlayHandshakeMask == 0
}

// selection returns the 2bit source selection for the destination device in
// the bits given by mask
func selection(v uint16, mask uint16, shift uint16) uint16 {
	return (v & mask) >> shift
}

func (xb *Crossbar) decodeDestination(v uint16) {
	xb.Receive.Tristated = v&destReceiveConnect != destReceiveConnect
	xb.Receive.Handshake = v&destReceiveHandshake != destReceiveHandshake

	dac := selection(v, destDAC, dacShift)
	receive := selection(v, destReceive, receiveShift)
	record := selection(v, destRecord, recordShift)

	// what each destination is listening to
	xb.Receive.Route = Route{
		Codec: receive == selectCodec,
		DSP:   receive == selectDSP,
		DMA:   receive == selectDMA,
	}
	xb.Record.Route = Route{
		Codec: record == selectCodec,
		DSP:   record == selectDSP,
		DMA:   record == selectDMA,
	}
	xb.DAC.Route = Route{
		Codec: dac == selectCodec,
		DSP:   dac == selectDSP,
		DMA:   dac == selectDMA,
	}

	// where each source is being sent
	xb.Xmit.Route = Route{
		Codec: dac == selectDSP,
		DSP:   receive == selectDSP,
		DMA:   record == selectDSP,
	}
	xb.Play.Route = Route{
		Codec: dac == selectDMA,
		DSP:   receive == selectDMA,
		DMA:   record == selectDMA,
	}
	xb.ADC.Route = Route{
		Codec: dac == selectCodec,
		DSP:   receive == selectCodec,
		DMA:   record == selectCodec,
	}

	xb.Play.Handshake = v&destPlayHandshakeMask == destPlayHandshake
	xb.Record.Handshake = v&destRecordHandshakeMask == destRecordHandshake
}
