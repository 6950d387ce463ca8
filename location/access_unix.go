//go:build unix

package location

import (
	"golang.org/x/sys/unix"
)

func osAccess(path string, mode accessMode) bool {
	return unix.Access(path, uint32(mode)) == nil
}
