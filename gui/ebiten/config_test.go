package ebiten

import (
	"testing"

	"github.com/jetsetilly/testfalcon/resources"
	"github.com/jetsetilly/testfalcon/test"
	"github.com/spf13/afero"
)

func TestParseGeometry(t *testing.T) {
	geom, err := parseGeometry("10 20 640 400")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, geom, windowGeometry{x: 10, y: 20, w: 640, h: 400})
	test.ExpectEquality(t, geom.String(), "10 20 640 400")

	_, err = parseGeometry("10 20")
	test.ExpectFailure(t, err)

	_, err = parseGeometry("10 20 0 400")
	test.ExpectFailure(t, err)
}

func TestWindowClose(t *testing.T) {
	fs := resources.Fs
	resources.Fs = afero.NewMemMapFs()
	defer func() {
		resources.Fs = fs
	}()

	// invalid geometry is not saved
	test.ExpectSuccess(t, onWindowClose(windowGeometry{x: -1}))
	s, err := resources.Read(windowFile)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "")

	test.ExpectSuccess(t, onWindowClose(windowGeometry{x: 1, y: 2, w: 3, h: 4}))
	s, err = resources.Read(windowFile)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "1 2 3 4")
}

func TestMeter(t *testing.T) {
	test.ExpectEquality(t, meter(0), 0.0)
	test.ExpectEquality(t, meter(-32768), float64(meterWidth))
	test.ExpectEquality(t, meter(16384), float64(meterWidth)/2)
}
