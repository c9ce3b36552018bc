//go:build !release
// +build !release

package resources

const configDir = ".testfalcon"

func resourcePath() (string, error) {
	return configDir, nil
}
