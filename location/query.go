package location

import (
	"io/fs"
	"path/filepath"

	"github.com/cantara/locations/fslib"
)

type accessMode uint32

// Same values as R_OK, W_OK and X_OK.
const (
	execAccess accessMode = 1 << iota
	writeAccess
	readAccess
)

func (m accessMode) permBits() fs.FileMode {
	switch m {
	case readAccess:
		return 0444
	case writeAccess:
		return 0222
	}
	return 0111
}

func (l Location) IsExist() bool {
	return fslib.Exists(l.fsys, l.Path())
}

func (l Location) IsDirectory() bool {
	info, err := fslib.Stat(l.fsys, l.Path())
	return err == nil && info.IsDir()
}

func (l Location) IsFile() bool {
	info, err := fslib.Stat(l.fsys, l.Path())
	return err == nil && !info.IsDir()
}

func (l Location) IsReadable() bool {
	return l.access(readAccess)
}

func (l Location) IsWritable() bool {
	return l.access(writeAccess)
}

func (l Location) IsExecutable() bool {
	return l.access(execAccess)
}

// IsDeletable reports whether l exists and its parent directory is writable.
func (l Location) IsDeletable() bool {
	if !l.IsExist() {
		return false
	}
	parent, ok := l.Parent()
	if !ok {
		return false
	}
	return parent.IsDirectory() && parent.IsWritable()
}

func (l Location) access(mode accessMode) bool {
	p := l.Path()
	if p == "" {
		return false
	}
	fsys := l.FS()
	if fslib.IsOS(fsys) {
		return osAccess(p, mode)
	}
	info, err := fsys.Stat(p)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&mode.permBits() != 0
}

func (l Location) IsSymbolicLink() bool {
	_, ok := l.SymbolicLinkDestination()
	return ok
}

// SymbolicLinkDestination resolves the link at l one level. A relative target is taken
// relative to the directory holding the link. Anything that is not a readable link
// gives false.
func (l Location) SymbolicLinkDestination() (Location, bool) {
	if l.url.Path == "" {
		return Location{}, false
	}
	dest, err := fslib.Readlink(l.fsys, l.Path())
	if err != nil {
		return Location{}, false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(l.Path()), dest)
	}
	return FromPath(dest).WithFS(l.fsys), true
}
