// Package logger is the central logging facility for TestFalcon. Entries are
// tagged and stored in a central log which can be tailed or echoed to any
// io.Writer.
//
// Logging is gated by the Permission interface. Chips are created with a
// context that implements Permission so that the console can silence them,
// for example while a script is rewinding emulation. The Allow value should be
// used when logging from outside the emulation.
//
// Identical consecutive entries are folded into a single entry with a repeat
// count.
package logger
