// Package crossbar implements the sound matrix of the Atari Falcon. The
// crossbar connects the four sound sources (DMA playback, DSP transmit, the
// ADC and the external input) to the four sound destinations (DMA record, DSP
// receive, the DAC and the external output).
//
// The connections, the clocks and the handshake modes are selected by the
// registers at $FF8900 to $FF893F. The package decodes writes to those
// registers immediately so that the next transfer uses the new topology.
//
// Transfers are driven by two oscillators, 25.175Mhz and 32Mhz. Each
// oscillator is modelled as an event that is scheduled a whole number of CPU
// cycles into the future. The fractional part of the interval is carried
// forward to the next event so that the sample rate does not drift.
//
// Samples that reach the DAC are placed in a ring buffer. The buffer is
// drained by GenerateSamples(), which converts from the internal sample rate
// to the sample rate of the host audio device. Samples from the host
// microphone are fed into the ADC ring buffer with FeedMicrophone().
//
// Information about the crossbar is taken from the "Falcon030 Sound System"
// register descriptions in the Atari Compendium and from the hardware
// register list by Dieter Fiebelkorn.
//
// The crossbar does not lock any of its state. The owner of the crossbar must
// make sure that GenerateSamples() and FeedMicrophone() are not called at the
// same time as the emulation is being advanced.
package crossbar
