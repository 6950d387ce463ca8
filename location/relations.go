package location

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	log "github.com/cantara/bragi"
	"github.com/cantara/locations/fslib"
)

// Relationship classifies how two existing locations sit in the tree.
type Relationship int

const (
	Other Relationship = iota
	Same
	Contains
	ContainedBy
)

func (r Relationship) String() string {
	switch r {
	case Other:
		return "other"
	case Same:
		return "same"
	case Contains:
		return "contains"
	case ContainedBy:
		return "contained by"
	}
	return "unknown"
}

// Parent is l with its last segment removed. It works on the URL alone; the root and the
// empty path have no parent.
func (l Location) Parent() (Location, bool) {
	p := l.url.Path
	if p == "" {
		return Location{}, false
	}
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		return Location{}, false
	}
	dir := path.Dir(trimmed)
	if dir == trimmed {
		return Location{}, false
	}
	return l.withPath(dir), true
}

// Children lists the entries directly below l. A missing location, a file or an
// unreadable directory all give an empty result, never an error.
func (l Location) Children() []Location {
	entries, err := fslib.ReadDir(l.fsys, l.Path())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.AddError(err).Debug("While listing children of ", l.Path())
		}
		return nil
	}
	children := make([]Location, 0, len(entries))
	for _, entry := range entries {
		children = append(children, l.Child(entry.Name()))
	}
	return children
}

// Descendants lists every entry at any depth below l, with the same empty-on-failure
// contract as Children. l itself may be a symbolic link to a directory; links found
// below it are listed but not followed.
func (l Location) Descendants() []Location {
	var descendants []Location
	for _, child := range l.Children() {
		fslib.Walk(l.fsys, child.Path(), func(p string, info fs.FileInfo) error {
			descendants = append(descendants, l.withPath(path.Clean(strings.ReplaceAll(p, string(os.PathSeparator), "/"))))
			return nil
		})
	}
	return descendants
}

func (l Location) SubFiles(recursive bool) []Location {
	return filter(l.children(recursive), Location.IsFile)
}

func (l Location) SubDirectories(recursive bool) []Location {
	return filter(l.children(recursive), Location.IsDirectory)
}

func (l Location) children(recursive bool) []Location {
	if recursive {
		return l.Descendants()
	}
	return l.Children()
}

func filter(locations []Location, keep func(Location) bool) []Location {
	var out []Location
	for _, loc := range locations {
		if keep(loc) {
			out = append(out, loc)
		}
	}
	return out
}

// Siblings are the children of the parent except l itself. A location that does not
// currently exist has none.
func (l Location) Siblings() []Location {
	if !l.IsExist() {
		return nil
	}
	parent, ok := l.Parent()
	if !ok {
		return nil
	}
	return filter(parent.Children(), func(loc Location) bool {
		return !loc.Equal(l)
	})
}

// IsFinal reports whether l is a file or has no children.
func (l Location) IsFinal() bool {
	return l.IsFile() || len(l.Children()) == 0
}

// MaxValid walks up from l to the nearest location that exists.
func (l Location) MaxValid() (Location, bool) {
	current := l
	for {
		if current.IsExist() {
			return current, true
		}
		parent, ok := current.Parent()
		if !ok {
			return Location{}, false
		}
		current = parent
	}
}

// ContentsEqual compares the contents at l and other on l's filesystem. Either side
// missing compares unequal.
func (l Location) ContentsEqual(other Location) bool {
	if l.url.Path == "" || other.url.Path == "" {
		return false
	}
	return fslib.ContentsEqual(l.fsys, l.Path(), other.Path())
}

// Relationship tells whether l is, contains, or is contained by other. It is false when
// either side does not exist.
func (l Location) Relationship(other Location) (Relationship, bool) {
	info, err := fslib.Stat(l.fsys, l.Path())
	if err != nil || l.url.Path == "" {
		return Other, false
	}
	otherInfo, err := fslib.Stat(l.fsys, other.Path())
	if err != nil || other.url.Path == "" {
		return Other, false
	}
	a, b := path.Clean(l.url.Path), path.Clean(other.url.Path)
	switch {
	case a == b || os.SameFile(info, otherInfo):
		return Same, true
	case within(b, a):
		return Contains, true
	case within(a, b):
		return ContainedBy, true
	}
	return Other, true
}

func within(child, dir string) bool {
	if dir == "/" {
		return child != "/" && strings.HasPrefix(child, "/")
	}
	return strings.HasPrefix(child, dir+"/")
}
