package resources_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/testfalcon/resources"
	"github.com/jetsetilly/testfalcon/test"
	"github.com/spf13/afero"
)

func TestJoinPath(t *testing.T) {
	resources.Fs = afero.NewMemMapFs()

	pth, err := resources.JoinPath("foo/bar", "baz")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".testfalcon/foo/bar/baz")

	pth, err = resources.JoinPath("foo", "bar", "baz")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".testfalcon/foo/bar/baz")

	pth, err = resources.JoinPath("foo/bar", "")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".testfalcon/foo/bar")

	pth, err = resources.JoinPath("", "baz")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".testfalcon/baz")

	pth, err = resources.JoinPath("", "")
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, pth, ".testfalcon")

	// the directory leading to the file has been created
	ok, err := afero.DirExists(resources.Fs, ".testfalcon/foo/bar")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ok)
}

func TestReadWrite(t *testing.T) {
	resources.Fs = afero.NewMemMapFs()

	s, err := resources.Read("window")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "")

	_, err = resources.ReadBytes("snapshots/missing")
	test.ExpectSuccess(t, errors.Is(err, resources.ErrNotFound))

	test.ExpectSuccess(t, resources.Write("window", "10 20 640 480"))
	s, err = resources.Read("window")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "10 20 640 480")

	test.ExpectSuccess(t, resources.WriteBytes("snapshots/a", []byte{0x01, 0x02}))
	b, err := resources.ReadBytes("snapshots/a")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(b), "\x01\x02")
}
