package debugger

import (
	"fmt"
)

type watch struct {
	ma   mappedAddress
	data uint8
	prev uint8
}

// checkWatches returns the first watch whose value has changed
func (m *debugger) checkWatches() (*watch, error) {
	for i, w := range m.watches {
		d, err := m.console.Read(w.ma.address)
		if err != nil {
			return nil, fmt.Errorf("watch: %w", err)
		}
		if d != w.data {
			w.prev = w.data
			w.data = d
			m.watches[i] = w
			return &w, nil
		}
	}
	return nil, nil
}
