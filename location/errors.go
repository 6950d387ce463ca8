package location

import (
	"errors"
)

// Kinds of mutation failure. Every error returned by a mutation matches exactly one of
// these with errors.Is.
var (
	ErrNameEmpty       = errors.New("name is empty")
	ErrCreateDirectory = errors.New("create directory failed")
	ErrCreateFile      = errors.New("create file failed")
	ErrRemove          = errors.New("remove failed")
	ErrTrash           = errors.New("trash failed")
	ErrCopy            = errors.New("copy failed")
	ErrMove            = errors.New("move failed")
	ErrRename          = errors.New("rename failed")
	ErrLink            = errors.New("link failed")
	ErrSymbolicLink    = errors.New("symbolic link failed")
	ErrReplace         = errors.New("replace failed")
	ErrSetAttributes   = errors.New("set attributes failed")
	ErrNeedParent      = errors.New("location has no parent")
	ErrNeedDirectory   = errors.New("target is not a directory")
)

// Error is a failed mutation. Err is the cause reported by the filesystem, if any.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op + " " + e.Path + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op, path string, err error) error {
	return &Error{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}
