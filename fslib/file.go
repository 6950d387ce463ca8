package fslib

import (
	"bufio"
	"bytes"
	"io"
	stdFS "io/fs"
	"os"
	"path/filepath"
)

const writeFlags = os.O_WRONLY | os.O_CREATE | os.O_EXCL

const compareChunk = 32 * 1024

// ContentsEqual compares a and b. Regular files are compared byte by byte, directories
// by their entry names and then recursively, symbolic links by their targets. Anything
// missing or unreadable compares unequal.
func ContentsEqual(fsys FS, a, b string) bool {
	fsys = OrOS(fsys)
	aInfo, err := Lstat(fsys, a)
	if err != nil {
		return false
	}
	bInfo, err := Lstat(fsys, b)
	if err != nil {
		return false
	}
	if aInfo.Mode().Type() != bInfo.Mode().Type() {
		return false
	}
	switch {
	case aInfo.Mode()&stdFS.ModeSymlink != 0:
		aTarget, err := Readlink(fsys, a)
		if err != nil {
			return false
		}
		bTarget, err := Readlink(fsys, b)
		return err == nil && aTarget == bTarget
	case aInfo.IsDir():
		return dirsEqual(fsys, a, b)
	}
	if aInfo.Size() != bInfo.Size() {
		return false
	}
	return filesEqual(fsys, a, b)
}

func dirsEqual(fsys FS, a, b string) bool {
	aEntries, err := ReadDir(fsys, a)
	if err != nil {
		return false
	}
	bEntries, err := ReadDir(fsys, b)
	if err != nil || len(aEntries) != len(bEntries) {
		return false
	}
	for i := range aEntries {
		if aEntries[i].Name() != bEntries[i].Name() {
			return false
		}
		if !ContentsEqual(fsys, filepath.Join(a, aEntries[i].Name()), filepath.Join(b, bEntries[i].Name())) {
			return false
		}
	}
	return true
}

func filesEqual(fsys FS, a, b string) bool {
	aFile, err := fsys.Open(a)
	if err != nil {
		return false
	}
	defer aFile.Close()
	bFile, err := fsys.Open(b)
	if err != nil {
		return false
	}
	defer bFile.Close()

	ar := bufio.NewReaderSize(aFile, compareChunk)
	br := bufio.NewReaderSize(bFile, compareChunk)
	aBuf := make([]byte, compareChunk)
	bBuf := make([]byte, compareChunk)
	for {
		an, aErr := io.ReadFull(ar, aBuf)
		bn, bErr := io.ReadFull(br, bBuf)
		if an != bn || !bytes.Equal(aBuf[:an], bBuf[:bn]) {
			return false
		}
		aDone := aErr == io.EOF || aErr == io.ErrUnexpectedEOF
		bDone := bErr == io.EOF || bErr == io.ErrUnexpectedEOF
		if aDone || bDone {
			return aDone && bDone
		}
		if aErr != nil || bErr != nil {
			return false
		}
	}
}
