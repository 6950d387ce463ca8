// Package watch reports changes to the entries of a directory as they happen.
package watch

import (
	"errors"

	"github.com/cantara/locations/location"
)

type Op int

const (
	Created Op = iota
	Removed
	Modified
	Moved
)

func (o Op) String() string {
	switch o {
	case Created:
		return "created"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	case Moved:
		return "moved"
	}
	return "unknown"
}

// Event is one change to a direct child of the watched directory. Moved means the
// child left under its old name; arriving under a new name is reported as Created.
type Event struct {
	Op       Op
	Location location.Location
	IsDir    bool
}

var ErrUnsupported = errors.New("directory watching is not supported here")
