//go:build !unix

package location

import (
	"os"
)

func osAccess(path string, mode accessMode) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&mode.permBits() != 0
}
