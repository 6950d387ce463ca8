package fslib

import (
	"errors"
	"fmt"
	stdFS "io/fs"
	"os"
	"path/filepath"

	log "github.com/cantara/bragi"
	"github.com/spf13/afero"
)

var osFS = afero.NewOsFs()

// NewOS returns the filesystem of the running process.
func NewOS() FS {
	return osFS
}

// NewInMem returns an empty filesystem held in memory.
func NewInMem() FS {
	return afero.NewMemMapFs()
}

// OrOS returns fsys, or the OS filesystem when fsys is nil.
func OrOS(fsys FS) FS {
	if fsys == nil {
		return osFS
	}
	return fsys
}

// IsOS reports whether fsys talks to the OS directly.
func IsOS(fsys FS) bool {
	_, ok := fsys.(*afero.OsFs)
	return ok
}

func Stat(fsys FS, path string) (stdFS.FileInfo, error) {
	return OrOS(fsys).Stat(path)
}

// Lstat does not follow a trailing symbolic link when the filesystem can tell the difference.
func Lstat(fsys FS, path string) (stdFS.FileInfo, error) {
	fsys = OrOS(fsys)
	if l, ok := fsys.(Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

func Exists(fsys FS, path string) bool {
	if path == "" {
		return false
	}
	_, err := Stat(fsys, path)
	return err == nil
}

func IsDir(fsys FS, path string) bool {
	info, err := Stat(fsys, path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ReadDir lists the entries of dir sorted by name.
func ReadDir(fsys FS, dir string) ([]stdFS.FileInfo, error) {
	if dir == "" {
		return nil, stdFS.ErrNotExist
	}
	return afero.ReadDir(OrOS(fsys), dir)
}

func Readlink(fsys FS, path string) (string, error) {
	r, ok := OrOS(fsys).(LinkReader)
	if !ok {
		return "", ReadlinkNotSupported
	}
	return r.ReadlinkIfPossible(path)
}

// Symlink creates newname as a symbolic link to oldname.
func Symlink(fsys FS, oldname, newname string) error {
	l, ok := OrOS(fsys).(Linker)
	if !ok {
		return SymlinkNotSupported
	}
	return l.SymlinkIfPossible(oldname, newname)
}

// Link creates newname as a hard link to oldname.
func Link(fsys FS, oldname, newname string) error {
	if !IsOS(OrOS(fsys)) {
		return LinkNotSupported
	}
	return os.Link(oldname, newname)
}

// Walk visits every entry below root, root included. Errors on single entries are
// logged and skipped so one unreadable directory does not end the walk.
func Walk(fsys FS, root string, fn func(path string, info stdFS.FileInfo) error) error {
	return afero.Walk(OrOS(fsys), root, func(path string, info stdFS.FileInfo, err error) error {
		if err != nil {
			if !errors.Is(err, stdFS.ErrNotExist) {
				log.AddError(err).Debug("While walking ", path)
			}
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		return fn(path, info)
	})
}

// DirSize sums the size of every regular file below dir.
func DirSize(fsys FS, dir string) int64 {
	var total int64
	Walk(fsys, dir, func(path string, info stdFS.FileInfo) error {
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total
}

// WriteFileAtomic writes data to a temporary file next to path and renames it into place.
func WriteFileAtomic(fsys FS, path string, data []byte, perm stdFS.FileMode) (err error) {
	fsys = OrOS(fsys)
	dir, name := filepath.Split(path)
	if name == "" {
		return InvalidPath
	}
	if dir == "" {
		dir = "."
	}
	tmp, err := afero.TempFile(fsys, dir, "."+name+".tmp")
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			fsys.Remove(tmp.Name())
		}
	}()
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return
	}
	err = fsys.Chmod(tmp.Name(), perm)
	if err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	return fsys.Rename(tmp.Name(), path)
}
