package location

import (
	"errors"
	"fmt"
	"io/fs"

	log "github.com/cantara/bragi"
	"github.com/cantara/locations/fslib"
)

// Mkdir creates l as a directory. Its parent must exist.
func (l Location) Mkdir(perm fs.FileMode) error {
	err := l.FS().Mkdir(l.Path(), perm)
	if err != nil {
		return newError(ErrCreateDirectory, "mkdir", l.Path(), err)
	}
	return nil
}

// MkdirChild creates the directory name below l.
func (l Location) MkdirChild(name string, perm fs.FileMode) (Location, error) {
	if name == "" {
		return Location{}, newError(ErrNameEmpty, "mkdir", l.Path(), nil)
	}
	child := l.Child(name)
	err := child.Mkdir(perm)
	if err != nil {
		return Location{}, err
	}
	return child, nil
}

// MkdirAll creates l and any missing parents.
func (l Location) MkdirAll(perm fs.FileMode) error {
	if l.url.Path == "" {
		return newError(ErrCreateDirectory, "mkdir", l.Path(), fs.ErrInvalid)
	}
	err := l.FS().MkdirAll(l.Path(), perm)
	if err != nil {
		return newError(ErrCreateDirectory, "mkdir", l.Path(), err)
	}
	return nil
}

func (l Location) MkdirAllChild(name string, perm fs.FileMode) (Location, error) {
	if name == "" {
		return Location{}, newError(ErrNameEmpty, "mkdir", l.Path(), nil)
	}
	child := l.Child(name)
	err := child.MkdirAll(perm)
	if err != nil {
		return Location{}, err
	}
	return child, nil
}

// Remove deletes l and everything below it. Removing something that does not exist fails.
func (l Location) Remove() error {
	if _, err := fslib.Lstat(l.fsys, l.Path()); err != nil {
		return newError(ErrRemove, "remove", l.Path(), err)
	}
	err := l.FS().RemoveAll(l.Path())
	if err != nil {
		return newError(ErrRemove, "remove", l.Path(), err)
	}
	return nil
}

// Clear removes every child of l, stopping at the first failure.
func (l Location) Clear() error {
	for _, child := range l.Children() {
		err := child.Remove()
		if err != nil {
			return err
		}
	}
	return nil
}

// CopyTo copies l into dir, under rename when it is not empty. Directories are copied
// recursively. dir must share l's filesystem.
func (l Location) CopyTo(dir Location, rename string) (Location, error) {
	dst, err := l.destination("copy", dir, rename)
	if err != nil {
		return Location{}, err
	}
	err = fslib.Copy(l.fsys, l.Path(), dst.Path())
	if err != nil {
		return Location{}, newError(ErrCopy, "copy", l.Path(), err)
	}
	return dst, nil
}

// MoveTo moves l into dir, under rename when it is not empty.
func (l Location) MoveTo(dir Location, rename string) (Location, error) {
	dst, err := l.destination("move", dir, rename)
	if err != nil {
		return Location{}, err
	}
	err = l.move(dst)
	if err != nil {
		return Location{}, newError(ErrMove, "move", l.Path(), err)
	}
	return dst, nil
}

// Rename gives l a new name within its parent.
func (l Location) Rename(name string) (Location, error) {
	if name == "" {
		return Location{}, newError(ErrNameEmpty, "rename", l.Path(), nil)
	}
	parent, ok := l.Parent()
	if !ok {
		return Location{}, newError(ErrNeedParent, "rename", l.Path(), nil)
	}
	dst := parent.Child(name)
	err := l.move(dst)
	if err != nil {
		return Location{}, newError(ErrRename, "rename", l.Path(), err)
	}
	return dst, nil
}

func (l Location) move(dst Location) error {
	if _, err := fslib.Lstat(l.fsys, l.Path()); err != nil {
		return err
	}
	if _, err := fslib.Lstat(l.fsys, dst.Path()); err == nil {
		return fmt.Errorf("%s: %w", dst.Path(), fs.ErrExist)
	}
	return fslib.Move(l.fsys, l.Path(), dst.Path())
}

// LinkTo creates a hard link to l inside dir.
func (l Location) LinkTo(dir Location, rename string) (Location, error) {
	dst, err := l.destination("link", dir, rename)
	if err != nil {
		return Location{}, err
	}
	err = fslib.Link(l.fsys, l.Path(), dst.Path())
	if err != nil {
		return Location{}, newError(ErrLink, "link", l.Path(), err)
	}
	return dst, nil
}

// SymlinkTo creates a symbolic link inside dir that points at l.
func (l Location) SymlinkTo(dir Location, rename string) (Location, error) {
	dst, err := l.destination("symlink", dir, rename)
	if err != nil {
		return Location{}, err
	}
	err = fslib.Symlink(l.fsys, l.Path(), dst.Path())
	if err != nil {
		return Location{}, newError(ErrSymbolicLink, "symlink", l.Path(), err)
	}
	return dst, nil
}

func (l Location) destination(op string, dir Location, rename string) (Location, error) {
	if !dir.IsDirectory() {
		return Location{}, newError(ErrNeedDirectory, op, dir.Path(), nil)
	}
	name := rename
	if name == "" {
		name = l.LastComponent()
	}
	if name == "" || name == "/" {
		return Location{}, newError(ErrNameEmpty, op, l.Path(), nil)
	}
	return dir.Child(name), nil
}

// ReplaceOptions tune Replace. BackupName names the copy of the original kept beside it
// while the swap happens; it is removed on success unless KeepBackup is set.
type ReplaceOptions struct {
	BackupName string
	KeepBackup bool
}

// Replace puts the item at with in place of l. with is consumed. If the swap fails the
// original is restored from its backup.
func (l Location) Replace(with Location, opts ReplaceOptions) error {
	parent, ok := l.Parent()
	if !ok {
		return newError(ErrNeedParent, "replace", l.Path(), nil)
	}
	if !with.IsExist() {
		return newError(ErrReplace, "replace", with.Path(), fs.ErrNotExist)
	}
	if !l.IsExist() {
		return newError(ErrReplace, "replace", l.Path(), fs.ErrNotExist)
	}
	backupName := opts.BackupName
	if backupName == "" {
		backupName = "." + l.LastComponent() + ".backup"
	}
	backup := parent.Child(backupName)
	fsys := l.FS()
	if backup.IsExist() {
		err := fsys.RemoveAll(backup.Path())
		if err != nil {
			return newError(ErrReplace, "replace", backup.Path(), err)
		}
	}
	err := fsys.Rename(l.Path(), backup.Path())
	if err != nil {
		return newError(ErrReplace, "replace", l.Path(), err)
	}
	err = fsys.Rename(with.Path(), l.Path())
	if err != nil {
		if rerr := fsys.Rename(backup.Path(), l.Path()); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return newError(ErrReplace, "replace", l.Path(), err)
	}
	if opts.KeepBackup {
		return nil
	}
	err = fsys.RemoveAll(backup.Path())
	if err != nil {
		log.AddError(err).Warning("While removing replace backup ", backup.Path())
	}
	return nil
}
