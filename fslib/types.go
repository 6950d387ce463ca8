package fslib

import (
	"errors"

	"github.com/spf13/afero"
)

// FS is the filesystem every location query and mutation goes through.
type FS = afero.Fs

var (
	InvalidPath          = errors.New("invalid path")
	FileNotDir           = errors.New("file is not dir")
	NotRegular           = errors.New("file is not a regular file")
	SourceMissing        = errors.New("source does not exist")
	DestinationMissing   = errors.New("destination dir does not exist")
	DestinationExists    = errors.New("destination does already exist")
	LinkNotSupported     = errors.New("filesystem does not support hard links")
	SymlinkNotSupported  = errors.New("filesystem does not support symbolic links")
	ReadlinkNotSupported = errors.New("filesystem does not support reading links")
)

// Lstater, LinkReader and Linker are the optional afero capabilities used for symlinks.
type (
	Lstater    = afero.Lstater
	LinkReader = afero.LinkReader
	Linker     = afero.Linker
)
