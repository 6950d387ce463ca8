package location

import (
	"errors"
	"io/fs"
	"os"

	"github.com/cantara/locations/fslib"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"howett.net/plist"
)

const (
	filePerm       = 0644
	writeExclusive = os.O_WRONLY | os.O_CREATE | os.O_EXCL
)

func isExist(err error) bool {
	return errors.Is(err, fs.ErrExist)
}

// Data reads the whole file at l.
func (l Location) Data() ([]byte, error) {
	return afero.ReadFile(l.FS(), l.Path())
}

// SaveData replaces the file at l with data atomically.
func (l Location) SaveData(data []byte) error {
	err := fslib.WriteFileAtomic(l.fsys, l.Path(), data, filePerm)
	if err != nil {
		return newError(ErrCreateFile, "write", l.Path(), err)
	}
	return nil
}

// WriteData saves data in the file name below l.
func (l Location) WriteData(name string, data []byte) (Location, error) {
	if name == "" {
		return Location{}, newError(ErrNameEmpty, "write", l.Path(), nil)
	}
	child := l.Child(name)
	return child, child.SaveData(data)
}

// Encoding looks up a text encoding by its WHATWG name or label, e.g. "utf-16le" or
// "latin1".
func Encoding(name string) (encoding.Encoding, error) {
	return htmlindex.Get(name)
}

// Text decodes the file at l with enc. A nil enc means UTF-8.
func (l Location) Text(enc encoding.Encoding) (string, error) {
	data, err := l.Data()
	if err != nil {
		return "", err
	}
	if enc == nil {
		return string(data), nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func (l Location) SaveText(s string, enc encoding.Encoding) error {
	data := []byte(s)
	if enc != nil {
		var err error
		data, err = enc.NewEncoder().Bytes(data)
		if err != nil {
			return newError(ErrCreateFile, "write", l.Path(), err)
		}
	}
	return l.SaveData(data)
}

func (l Location) WriteText(name, s string, enc encoding.Encoding) (Location, error) {
	if name == "" {
		return Location{}, newError(ErrNameEmpty, "write", l.Path(), nil)
	}
	child := l.Child(name)
	return child, child.SaveText(s, enc)
}

// Dictionary reads the property list at l as a keyed map.
func (l Location) Dictionary() (map[string]any, error) {
	var dict map[string]any
	err := l.Unarchive(&dict)
	return dict, err
}

// SaveDictionary writes dict as an XML property list.
func (l Location) SaveDictionary(dict map[string]any) error {
	return l.savePlist(dict, plist.XMLFormat)
}

func (l Location) WriteDictionary(name string, dict map[string]any) (Location, error) {
	if name == "" {
		return Location{}, newError(ErrNameEmpty, "write", l.Path(), nil)
	}
	child := l.Child(name)
	return child, child.SaveDictionary(dict)
}

// Array reads the property list at l as an ordered list.
func (l Location) Array() ([]any, error) {
	var array []any
	err := l.Unarchive(&array)
	return array, err
}

func (l Location) SaveArray(array []any) error {
	return l.savePlist(array, plist.XMLFormat)
}

func (l Location) WriteArray(name string, array []any) (Location, error) {
	if name == "" {
		return Location{}, newError(ErrNameEmpty, "write", l.Path(), nil)
	}
	child := l.Child(name)
	return child, child.SaveArray(array)
}

// Unarchive decodes the property list at l, in any of its formats, into v.
func (l Location) Unarchive(v any) error {
	data, err := l.Data()
	if err != nil {
		return err
	}
	_, err = plist.Unmarshal(data, v)
	return err
}

// Archive writes v as a binary property list.
func (l Location) Archive(v any) error {
	return l.savePlist(v, plist.BinaryFormat)
}

func (l Location) ArchiveChild(name string, v any) (Location, error) {
	if name == "" {
		return Location{}, newError(ErrNameEmpty, "write", l.Path(), nil)
	}
	child := l.Child(name)
	return child, child.Archive(v)
}

func (l Location) savePlist(v any, format int) error {
	var (
		data []byte
		err  error
	)
	if format == plist.XMLFormat {
		data, err = plist.MarshalIndent(v, format, "\t")
	} else {
		data, err = plist.Marshal(v, format)
	}
	if err != nil {
		return newError(ErrCreateFile, "write", l.Path(), err)
	}
	return l.SaveData(data)
}
