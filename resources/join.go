package resources

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Fs is the filesystem used for all resource access
var Fs afero.Fs = afero.NewOsFs()

const portableFile = "portable.txt"

// the base path used when portable.txt is present
var portablePath string

func init() {
	exe, err := os.Executable()
	if err != nil {
		return
	}
	portablePath = filepath.Join(filepath.Dir(exe), "TestFalcon_UserData")
}

func checkPortable() bool {
	if portablePath == "" {
		return false
	}
	ok, err := afero.Exists(Fs, filepath.Join(filepath.Dir(portablePath), portableFile))
	return err == nil && ok
}

// JoinPath prepends the supplied path with a with OS/build specific base
// paths, if required.
//
// The function creates all folders necessary to reach the end of sub-path. It
// does not otherwise touch or create the file.
func JoinPath(path ...string) (string, error) {
	// join supplied path
	p := filepath.Join(path...)

	var b string

	// resources are either in the portable path or the path returned by
	// resourcePath(). the resourcePath() function depends on how the program
	// has been compiled - as a release binary or as a development binary
	if checkPortable() {
		b = portablePath
	} else {
		var err error
		b, err = resourcePath()
		if err != nil {
			return "", err
		}
	}

	// do not prepend base path if it is already present
	if !strings.HasPrefix(p, b) {
		p = filepath.Join(b, p)
	}

	// check if path already exists
	if _, err := Fs.Stat(p); err == nil {
		return p, nil
	}

	// create path if necessary
	if err := Fs.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", err
	}

	return p, nil
}
