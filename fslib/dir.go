package fslib

import (
	"errors"
	"fmt"
	"io"
	stdFS "io/fs"
	"path/filepath"
	"syscall"

	log "github.com/cantara/bragi"
)

// Copy copies src to dst. Directories are copied recursively, symbolic links are
// recreated rather than followed.
func Copy(fsys FS, src, dst string) error {
	fsys = OrOS(fsys)
	if src == "" || dst == "" {
		return fmt.Errorf("Source or dest is missing for copy: %w", InvalidPath)
	}
	srcInfo, err := Lstat(fsys, src)
	if err != nil {
		return fmt.Errorf("%s: %w", src, SourceMissing)
	}
	if !IsDir(fsys, filepath.Dir(dst)) {
		return fmt.Errorf("%s: %w", filepath.Dir(dst), DestinationMissing)
	}
	if _, err = Lstat(fsys, dst); err == nil {
		return fmt.Errorf("%s: %w", dst, DestinationExists)
	}
	return copyEntry(fsys, src, dst, srcInfo)
}

func copyEntry(fsys FS, src, dst string, info stdFS.FileInfo) error {
	switch {
	case info.Mode()&stdFS.ModeSymlink != 0:
		target, err := Readlink(fsys, src)
		if err != nil {
			return err
		}
		return Symlink(fsys, target, dst)
	case info.IsDir():
		return copyDir(fsys, src, dst, info)
	case info.Mode().IsRegular():
		return copyFile(fsys, src, dst, info)
	}
	return fmt.Errorf("%s: %w", src, NotRegular)
}

func copyDir(fsys FS, src, dst string, info stdFS.FileInfo) error {
	err := fsys.Mkdir(dst, info.Mode().Perm())
	if err != nil {
		return err
	}
	entries, err := ReadDir(fsys, src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		childSrc := filepath.Join(src, entry.Name())
		childInfo, err := Lstat(fsys, childSrc)
		if err != nil {
			return err
		}
		err = copyEntry(fsys, childSrc, filepath.Join(dst, entry.Name()), childInfo)
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFile(fsys FS, src, dst string, info stdFS.FileInfo) error {
	source, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := fsys.OpenFile(dst, writeFlags, info.Mode().Perm())
	if err != nil {
		return err
	}
	_, err = io.Copy(destination, source)
	if cerr := destination.Close(); err == nil {
		err = cerr
	}
	return err
}

// Move renames src to dst. When they sit on different devices the rename cannot work, so
// src is copied to dst and then removed.
func Move(fsys FS, src, dst string) error {
	fsys = OrOS(fsys)
	err := fsys.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	log.Debug("Moving ", src, " across devices by copy")
	if _, err = Lstat(fsys, dst); err == nil {
		return fmt.Errorf("%s: %w", dst, DestinationExists)
	}
	err = Copy(fsys, src, dst)
	if err != nil {
		fsys.RemoveAll(dst)
		return err
	}
	return fsys.RemoveAll(src)
}
