package resources

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// ErrNotFound is returned by ReadBytes() when the resource does not exist
var ErrNotFound = errors.New("resource not found")

// Read returns the content of the resource as a string. A resource that does
// not exist is returned as an empty string
func Read(filename string) (string, error) {
	b, err := ReadBytes(filename)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(b), nil
}

// ReadBytes returns the content of the resource
func ReadBytes(filename string) ([]byte, error) {
	pth, err := JoinPath(filename)
	if err != nil {
		return nil, err
	}

	b, err := afero.ReadFile(Fs, pth)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, err
	}

	return b, nil
}

// Write replaces the content of the resource
func Write(filename string, content string) error {
	return WriteBytes(filename, []byte(content))
}

// WriteBytes replaces the content of the resource
func WriteBytes(filename string, content []byte) error {
	pth, err := JoinPath(filename)
	if err != nil {
		return err
	}

	f, err := Fs.Create(pth)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := f.Write(content)
	if err != nil {
		return err
	}
	if n != len(content) {
		return fmt.Errorf("content not completely written")
	}

	return nil
}
