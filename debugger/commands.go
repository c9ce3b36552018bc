package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/testfalcon/hardware"
	"github.com/jetsetilly/testfalcon/logger"
)

const help = `PEEK address            POKE address value      POKEW address value
DUMP from to            RUN                     STEP [cycles|FRAME|RECORD|SAMPLE]
RESET [WARM]            STATUS                  CROSSBAR
MFP                     DSP [TX words...|RX]    MIC [TONE freq|OFF]
WATCH address           WATCH DROP address|ALL  LIST
SAVE [name]             LOAD [name]             SCRIPT file
LOG [n]                 MUTE                    QUIT`

// returns true if debugger is to quit
func (m *debugger) commands(cmd []string) bool {
	if len(cmd) == 0 {
		return false
	}

	switch strings.ToUpper(cmd[0]) {
	case "HELP":
		fmt.Fprintln(m.out, help)

	case "R", "RUN":
		return m.run()

	case "ST", "STEP":
		if len(cmd) > 1 {
			if !m.parseStepRule(cmd[1:]) {
				break // switch
			}
		}
		return m.step()

	case "RESET":
		if len(cmd) > 1 && strings.ToUpper(cmd[1]) == "WARM" {
			m.console.WarmReset()
			m.print(m.styles.debugger, "sound system reset")
			break // switch
		}
		m.reset()

	case "STATUS":
		m.print(m.styles.chips, m.console.Status())

	case "CROSSBAR", "XB":
		m.print(m.styles.crossbar, m.console.String())

	case "MFP":
		m.print(m.styles.chips, m.console.MFP.Status())

	case "DSP":
		if len(cmd) == 1 {
			m.print(m.styles.chips, m.console.DSP.Status())
			break // switch
		}
		switch strings.ToUpper(cmd[1]) {
		case "TX":
			words := make([]uint32, 0, len(cmd)-2)
			for _, s := range cmd[2:] {
				v, err := parseNumber(s, 24)
				if err != nil {
					m.print(m.styles.err, fmt.Sprintf("DSP TX: word is not valid: %s", s))
					return false
				}
				words = append(words, uint32(v))
			}
			m.console.DSP.SetTransmit(words)
			m.print(m.styles.chips, fmt.Sprintf("%d words queued for transmission", len(words)))
		case "RX":
			rx := m.console.DSP.Received()
			if len(rx) == 0 {
				m.print(m.styles.chips, "no words received")
				break // switch
			}
			n := max(len(rx)-16, 0)
			var s strings.Builder
			for _, w := range rx[n:] {
				fmt.Fprintf(&s, "%06x ", w)
			}
			m.print(m.styles.chips, strings.TrimSpace(s.String()))
		default:
			m.print(m.styles.err, fmt.Sprintf("unrecognised argument for DSP command: %s", cmd[1]))
		}

	case "MIC":
		if len(cmd) == 1 {
			m.print(m.styles.chips, m.console.Crossbar.ADC.String())
			break // switch
		}
		switch strings.ToUpper(cmd[1]) {
		case "TONE":
			freq := 440.0
			if len(cmd) > 2 {
				var err error
				freq, err = strconv.ParseFloat(cmd[2], 64)
				if err != nil || freq <= 0 {
					m.print(m.styles.err, fmt.Sprintf("MIC TONE: frequency is not valid: %s", cmd[2]))
					break // switch
				}
			}
			m.console.SetMicrophone(&hardware.Tone{
				Freq:      freq,
				Rate:      m.ctx.AudioFrequency(),
				Amplitude: 0.5,
			})
			m.print(m.styles.debugger, fmt.Sprintf("microphone is a %.0fHz tone", freq))
		case "OFF":
			m.console.SetMicrophone(nil)
			m.print(m.styles.debugger, "microphone detached")
		default:
			m.print(m.styles.err, fmt.Sprintf("unrecognised argument for MIC command: %s", cmd[1]))
		}

	case "DUMP":
		if len(cmd) < 3 {
			m.print(m.styles.err, "DUMP requires a 'from' and a 'to' address")
			break // switch
		}

		from, err := m.parseAddress(cmd[1])
		if err != nil {
			m.print(m.styles.err, fmt.Sprintf("dump: %s", err.Error()))
			break // switch
		}

		to, err := m.parseAddress(cmd[2])
		if err != nil {
			m.print(m.styles.err, fmt.Sprintf("dump: %s", err.Error()))
			break // switch
		}

		if to.address < from.address {
			m.print(m.styles.err, "dump: the 'to' address is less than the 'from' address")
			break // switch
		}

		if from.area != to.area {
			m.print(m.styles.err, "dump: the 'from' and 'to' addresses are in different memory areas")
			break // switch
		}

		m.dump(from.address, to.address)

	case "PEEK":
		if len(cmd) < 2 {
			m.print(m.styles.err, "PEEK requires an address")
			break // switch
		}

		ma, err := m.parseAddress(cmd[1])
		if err != nil {
			m.print(m.styles.err, fmt.Sprintf("peek: %s", err.Error()))
			break // switch
		}

		data, err := m.console.Read(ma.address)
		if err != nil {
			m.print(m.styles.err, fmt.Sprintf("peek: %s", err.Error()))
			break // switch
		}

		m.print(m.styles.mem, fmt.Sprintf("$%06x = %02x (%s)", ma.address, data, ma.area.Label()))

	case "POKE", "POKEW":
		word := strings.ToUpper(cmd[0]) == "POKEW"

		if len(cmd) < 3 {
			m.print(m.styles.err, fmt.Sprintf("%s requires an address and a value", strings.ToUpper(cmd[0])))
			break // switch
		}

		ma, err := m.parseAddress(cmd[1])
		if err != nil {
			m.print(m.styles.err, fmt.Sprintf("poke: %s", err.Error()))
			break // switch
		}

		bits := 8
		if word {
			bits = 16
		}
		v, err := parseNumber(cmd[2], bits)
		if err != nil {
			m.print(m.styles.err, fmt.Sprintf("poke: value is not valid: %s", cmd[2]))
			break // switch
		}

		if word {
			err = m.console.WriteWord(ma.address, uint16(v))
		} else {
			err = m.console.Write(ma.address, uint8(v))
		}
		if err != nil {
			m.print(m.styles.err, fmt.Sprintf("poke: %s", err.Error()))
			break // switch
		}

		m.print(m.styles.mem, fmt.Sprintf("$%06x <- %0*x (%s)", ma.address, bits/4, v, ma.area.Label()))

	case "WATCH":
		if len(cmd) < 2 {
			m.print(m.styles.err, "WATCH requires an address")
			break // switch
		}

		// we check the first argument for special keywords before assuming
		// it is an address. the keywords are case insensitive
		arg := strings.ToUpper(cmd[1])

		if arg == "DROP" {
			if len(cmd) < 3 {
				m.print(m.styles.err, "WATCH DROP requires an address")
				break // switch
			}

			if strings.ToUpper(cmd[2]) == "ALL" {
				clear(m.watches)
				m.print(m.styles.debugger, "all watches have been removed")
				break // switch
			}

			ma, err := m.parseAddress(cmd[2])
			if err != nil {
				m.print(m.styles.err, fmt.Sprintf("watch: %s", err.Error()))
				break // switch
			}
			if _, ok := m.watches[ma.address]; !ok {
				m.print(m.styles.debugger, fmt.Sprintf("watch for $%06x not present", ma.address))
				break // switch
			}
			delete(m.watches, ma.address)
			m.print(m.styles.debugger, fmt.Sprintf("watch %06x has been removed", ma.address))
			break // switch
		}

		ma, err := m.parseAddress(cmd[1])
		if err != nil {
			m.print(m.styles.err, fmt.Sprintf("watch: %s", err.Error()))
			break // switch
		}

		if _, ok := m.watches[ma.address]; ok {
			m.print(m.styles.err, fmt.Sprintf("watch for %s already present", cmd[1]))
			break // switch
		}

		d, err := m.console.Read(ma.address)
		if err != nil {
			m.print(m.styles.err, fmt.Sprintf("watch address is not readable: %s", cmd[1]))
			break // switch
		}

		m.watches[ma.address] = watch{
			ma:   ma,
			data: d,
		}
		m.print(m.styles.debugger, fmt.Sprintf("added watch for $%06x", ma.address))

	case "LIST":
		m.print(m.styles.debugger, "watches")
		if len(m.watches) == 0 {
			fmt.Fprintln(m.out, "none")
		} else {
			for a, w := range m.watches {
				fmt.Fprintf(m.out, "%#06x = %02x\n", a, w.data)
			}
		}

	case "SAVE":
		name := hardware.QuickSnapshot
		if len(cmd) > 1 {
			name = cmd[1]
		}
		err := m.console.SaveSnapshot(name)
		if err != nil {
			m.print(m.styles.err, err.Error())
			break // switch
		}
		m.print(m.styles.debugger, fmt.Sprintf("snapshot %s saved", name))

	case "LOAD":
		name := hardware.QuickSnapshot
		if len(cmd) > 1 {
			name = cmd[1]
		}
		err := m.console.LoadSnapshot(name)
		if err != nil {
			m.print(m.styles.err, err.Error())
			break // switch
		}
		m.print(m.styles.debugger, fmt.Sprintf("snapshot %s loaded", name))

	case "SCRIPT":
		if len(cmd) < 2 {
			m.print(m.styles.err, "SCRIPT requires a filename")
			break // switch
		}
		err := m.runScriptFile(cmd[1])
		if err != nil {
			m.print(m.styles.err, err.Error())
		}

	case "MUTE":
		m.console.SetMute(!m.console.Muted())
		if m.console.Muted() {
			m.print(m.styles.debugger, "audio muted")
		} else {
			m.print(m.styles.debugger, "audio unmuted")
		}

	case "LOG":
		n := -1
		if len(cmd) > 1 {
			var err error
			n, err = strconv.Atoi(cmd[1])
			if err != nil {
				m.print(m.styles.err, fmt.Sprintf("cannot use LOG %s", cmd[1]))
				break // switch
			}
		}
		logger.Tail(m.out, n)

	case "QUIT":
		return true

	default:
		m.print(m.styles.err, fmt.Sprintf("unrecognised command: %s", strings.Join(cmd, " ")))
	}

	return false
}

// dump the memory between the two addresses. both addresses must be mapped
func (m *debugger) dump(from uint32, to uint32) {
	var column int
	for address := from; address <= to; address++ {
		if column == 0 {
			fmt.Fprintf(m.out, "%06x", address)
		}

		data, err := m.console.Read(address)
		if err != nil {
			fmt.Fprintln(m.out)
			m.print(m.styles.err, fmt.Sprintf("dump address is not readable: %06x", address))
			return
		}
		fmt.Fprintf(m.out, " %02x", data)

		column++
		if column > 15 {
			fmt.Fprintln(m.out)
			column = 0
		}
	}
	if column != 0 {
		fmt.Fprintln(m.out)
	}
}
