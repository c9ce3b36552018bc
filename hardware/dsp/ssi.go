// Package dsp implements the SSI port of the Falcon DSP as seen by the
// crossbar. The DSP core itself is not emulated. Words to transmit are queued
// by the host and words received from the crossbar are kept for inspection.
package dsp

import (
	"fmt"
)

// the DSP has a 24bit word
const wordMask = 0xffffff

// the number of received words that are kept
const receiveLogLen = 4096

// Handshake is the part of the crossbar the SSI drives in handshake mode
type Handshake interface {
	HandshakePlayFrame()
	HandshakeRecordFrame(frame bool)
}

// SSI is the synchronous serial interface of the DSP
type SSI struct {
	handshake Handshake

	transmit []uint32
	txIdx    int

	received []uint32

	// frame sync lines as last set by the crossbar
	SC1 bool
	SC2 bool

	// number of clock pulses on each line
	SCK int
	SC0 int

	// number of frames signalled on each frame sync line
	TransmitFrames int
	ReceiveFrames  int
}

func NewSSI() *SSI {
	return &SSI{
		received: make([]uint32, 0, receiveLogLen),
	}
}

func (ssi *SSI) Label() string {
	return "DSP SSI"
}

func (ssi *SSI) Status() string {
	return fmt.Sprintf("%s: tx=%d rx=%d SCK=%d SC0=%d SC1=%v SC2=%v",
		ssi.Label(), len(ssi.transmit), len(ssi.received), ssi.SCK, ssi.SC0, ssi.SC1, ssi.SC2)
}

// Plumb the SSI into the crossbar for handshake mode
func (ssi *SSI) Plumb(h Handshake) {
	ssi.handshake = h
}

func (ssi *SSI) Reset() {
	ssi.txIdx = 0
	ssi.received = ssi.received[:0]
	ssi.SC1 = false
	ssi.SC2 = false
	ssi.SCK = 0
	ssi.SC0 = 0
	ssi.TransmitFrames = 0
	ssi.ReceiveFrames = 0
}

// SetTransmit sets the words that the DSP transmits. The words are sent
// repeatedly. An empty slice means the DSP transmits zero
func (ssi *SSI) SetTransmit(words []uint32) {
	ssi.transmit = append(ssi.transmit[:0], words...)
	ssi.txIdx = 0
}

// Received returns the words received from the crossbar, oldest first
func (ssi *SSI) Received() []uint32 {
	return ssi.received
}

// ReadTransmit implements the crossbar.DSP interface
func (ssi *SSI) ReadTransmit() uint32 {
	if len(ssi.transmit) == 0 {
		return 0
	}
	v := ssi.transmit[ssi.txIdx] & wordMask
	ssi.txIdx = (ssi.txIdx + 1) % len(ssi.transmit)
	return v
}

// WriteReceive implements the crossbar.DSP interface
func (ssi *SSI) WriteReceive(data uint32) {
	if len(ssi.received) >= receiveLogLen {
		copy(ssi.received, ssi.received[1:])
		ssi.received = ssi.received[:len(ssi.received)-1]
	}
	ssi.received = append(ssi.received, data&wordMask)
}

// FrameSyncTransmit implements the crossbar.DSP interface
func (ssi *SSI) FrameSyncTransmit(frame bool) {
	ssi.SC2 = frame
	if frame {
		ssi.TransmitFrames++
	}
}

// FrameSyncReceive implements the crossbar.DSP interface
func (ssi *SSI) FrameSyncReceive(frame bool) {
	ssi.SC1 = frame
	if frame {
		ssi.ReceiveFrames++
	}
}

// ClockTransmit implements the crossbar.DSP interface
func (ssi *SSI) ClockTransmit() {
	ssi.SCK++
}

// ClockReceive implements the crossbar.DSP interface
func (ssi *SSI) ClockReceive() {
	ssi.SC0++
}

// RequestSample signals that the DSP is ready for the next sample from the
// DMA play unit. Only meaningful in handshake mode
func (ssi *SSI) RequestSample() {
	if ssi.handshake != nil {
		ssi.handshake.HandshakePlayFrame()
	}
}

// SignalFrame sets the transmit frame line seen by the DMA record unit in
// handshake mode
func (ssi *SSI) SignalFrame(frame bool) {
	if ssi.handshake != nil {
		ssi.handshake.HandshakeRecordFrame(frame)
	}
}
