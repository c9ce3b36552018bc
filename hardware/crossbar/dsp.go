package crossbar

import "fmt"

// DSPPort is one side of the SSI connection between the crossbar and the DSP
type DSPPort struct {
	Route

	// a tristated port is disconnected from the crossbar
	Tristated bool
	Handshake bool

	// position in the frame of words. the first word of each frame is
	// accompanied by the frame sync signal
	WordCount uint16
}

func (p *DSPPort) String() string {
	s := p.Route.String()
	if p.Tristated {
		s = fmt.Sprintf("%s tristated", s)
	}
	if p.Handshake {
		s = fmt.Sprintf("%s handshake", s)
	}
	return fmt.Sprintf("%s word %d", s, p.WordCount)
}

// transmitDSP reads a word from the DSP transmit register and sends it to
// every connected destination
func (xb *Crossbar) transmitDSP() {
	if xb.dsp == nil {
		return
	}

	// in handshake mode with DMA record, the record unit is the master and the
	// DSP transmit is clocked by it
	if xb.Record.Handshake {
		xb.handshakeRecord()
		return
	}

	frame := xb.Xmit.WordCount == 0

	xb.dsp.FrameSyncTransmit(frame)
	xb.dsp.ClockTransmit()
	data := xb.dsp.ReadTransmit()

	if xb.Xmit.Codec {
		xb.sendDAC(int16(data), xb.Xmit.WordCount)
	}
	if xb.Xmit.DMA {
		xb.recordDMA(int16(data))
	}
	if xb.Xmit.DSP {
		xb.sendDSP(data, frame)
	}

	xb.Xmit.WordCount++
	if xb.Xmit.WordCount >= xb.Config.PlayTracks*2 {
		xb.Xmit.WordCount = 0
	}
}

// handshakeRecord moves one word from the DSP to the record unit if the DSP
// has signalled the start of a frame
func (xb *Crossbar) handshakeRecord() {
	if !xb.Record.Running {
		return
	}
	if !xb.Record.HandshakeFrame {
		return
	}

	xb.dsp.ClockTransmit()
	data := xb.dsp.ReadTransmit()
	xb.Record.HandshakeFrame = false

	xb.recordDMA(int16(data))
}

// sendDSP writes the value to the DSP receive register
func (xb *Crossbar) sendDSP(value uint32, frame bool) {
	if xb.dsp == nil {
		return
	}
	if xb.Receive.Tristated {
		return
	}

	xb.dsp.WriteReceive(value)

	// the frame sync is only sent when the play unit is not in handshake with
	// the DSP
	if !xb.Play.HandshakeFrame {
		xb.dsp.FrameSyncReceive(frame)
	}
	xb.Play.HandshakeFrame = false

	xb.dsp.ClockReceive()
}
