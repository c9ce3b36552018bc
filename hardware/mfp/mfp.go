// Package mfp implements the parts of the MC68901 multi function peripheral
// that the Falcon sound system uses: Timer A in event count mode and the
// GPIP7 interrupt input. Both are raised at the end of a DMA sound frame.
package mfp

import (
	"fmt"

	"github.com/jetsetilly/testfalcon/logger"
)

const (
	Origin = 0xfffa00
	Memtop = 0xfffa3f
)

// register offsets from Origin. the MFP is on the odd bytes
const (
	regGPIP = 0x01
	regIERA = 0x07
	regIPRA = 0x0b
	regISRA = 0x0f
	regIMRA = 0x13
	regTACR = 0x19
	regTADR = 0x1f
)

// bits in the A group interrupt registers
const (
	intTimerA = 0x20
	intGPIP7  = 0x80
)

// EventCountMode is the value of TACR that selects event count mode
const EventCountMode = 0x08

type Context interface {
	logger.Permission
}

type MFP struct {
	ctx Context

	gpip uint8
	iera uint8
	ipra uint8
	isra uint8
	imra uint8
	tacr uint8

	// the reload value and the current count of timer A
	tadr    uint8
	counter uint8

	// number of interrupts raised since the last reset
	TimerAInterrupts int
	GPIP7Interrupts  int
}

func Create(ctx Context) *MFP {
	return &MFP{
		ctx: ctx,
	}
}

func (mfp *MFP) Label() string {
	return "MFP"
}

func (mfp *MFP) Status() string {
	return fmt.Sprintf("%s: TACR=%02x TADR=%02x count=%02x IERA=%02x IPRA=%02x timerA=%d gpip7=%d",
		mfp.Label(), mfp.tacr, mfp.tadr, mfp.counter, mfp.iera, mfp.ipra,
		mfp.TimerAInterrupts, mfp.GPIP7Interrupts)
}

func (mfp *MFP) Reset() {
	*mfp = MFP{ctx: mfp.ctx}
}

// TimerAControl implements the crossbar.Interrupts interface
func (mfp *MFP) TimerAControl() uint8 {
	return mfp.tacr
}

// TimerAEventCount implements the crossbar.Interrupts interface
func (mfp *MFP) TimerAEventCount() {
	if mfp.tacr != EventCountMode {
		return
	}

	mfp.counter--
	if mfp.counter != 0 {
		return
	}
	mfp.counter = mfp.tadr

	mfp.TimerAInterrupts++
	if mfp.iera&intTimerA == intTimerA {
		mfp.ipra |= intTimerA
	}
	logger.Log(mfp.ctx, "mfp", "timer A expired")
}

// InputOnGPIP7 implements the crossbar.Interrupts interface
func (mfp *MFP) InputOnGPIP7() {
	mfp.GPIP7Interrupts++
	if mfp.iera&intGPIP7 == intGPIP7 {
		mfp.ipra |= intGPIP7
	}
}

// Pending returns true if the interrupt is pending and not masked
func (mfp *MFP) Pending() (timerA bool, gpip7 bool) {
	active := mfp.ipra & mfp.imra
	return active&intTimerA == intTimerA, active&intGPIP7 == intGPIP7
}

func (mfp *MFP) Read(idx uint32) (uint8, error) {
	switch idx {
	case regGPIP:
		return mfp.gpip, nil
	case regIERA:
		return mfp.iera, nil
	case regIPRA:
		return mfp.ipra, nil
	case regISRA:
		return mfp.isra, nil
	case regIMRA:
		return mfp.imra, nil
	case regTACR:
		return mfp.tacr, nil
	case regTADR:
		return mfp.counter, nil
	}
	if idx > Memtop-Origin {
		return 0, fmt.Errorf("mfp: read out of range: %#04x", idx)
	}
	return 0, nil
}

func (mfp *MFP) Write(idx uint32, data uint8) error {
	switch idx {
	case regGPIP:
		mfp.gpip = data
	case regIERA:
		mfp.iera = data

		// disabling an interrupt clears it from the pending register
		mfp.ipra &= data
	case regIPRA:
		// pending bits can only be cleared
		mfp.ipra &= data
	case regISRA:
		mfp.isra &= data
	case regIMRA:
		mfp.imra = data
	case regTACR:
		mfp.tacr = data & 0x1f
	case regTADR:
		mfp.tadr = data
		if mfp.tacr == 0 {
			mfp.counter = data
		}
	default:
		if idx > Memtop-Origin {
			return fmt.Errorf("mfp: write out of range: %#04x", idx)
		}
	}
	return nil
}
