package location

import (
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	log "github.com/cantara/bragi"
	"github.com/cantara/locations/config"
	"github.com/cantara/locations/fslib"
)

const trashInfoTimeFormat = "2006-01-02T15:04:05"

// Trash moves l into the trash directory the freedesktop way: the item goes to
// files/<name> and a record of where it came from to info/<name>.trashinfo. The
// returned Location is the trashed item.
func (l Location) Trash() (Location, error) {
	if _, err := fslib.Lstat(l.fsys, l.Path()); err != nil {
		return Location{}, newError(ErrTrash, "trash", l.Path(), err)
	}
	trash := FromPath(config.TrashDir()).WithFS(l.fsys)
	files, info := trash.Child("files"), trash.Child("info")
	for _, dir := range []Location{files, info} {
		err := dir.MkdirAll(0700)
		if err != nil {
			return Location{}, newError(ErrTrash, "trash", l.Path(), err)
		}
	}

	name, infoFile, err := l.reserveTrashName(files, info)
	if err != nil {
		return Location{}, newError(ErrTrash, "trash", l.Path(), err)
	}
	trashed := files.Child(name)
	err = fslib.Move(l.fsys, l.Path(), trashed.Path())
	if err != nil {
		l.FS().Remove(infoFile.Path())
		return Location{}, newError(ErrTrash, "trash", l.Path(), err)
	}
	log.Debug("Trashed ", l.Path(), " to ", trashed.Path())
	return trashed, nil
}

// reserveTrashName picks a free name and claims it by creating the .trashinfo record
// exclusively, so two concurrent trashers cannot pick the same slot.
func (l Location) reserveTrashName(files, info Location) (string, Location, error) {
	base := l.LastComponent()
	ext := l.Extension()
	stem := l.LastComponentWithoutExtension()
	record := trashInfo(l.Path(), time.Now())
	for i := 1; i < 10000; i++ {
		name := base
		if i > 1 {
			name = fmt.Sprintf("%s %d", stem, i)
			if ext != "" {
				name += "." + ext
			}
		}
		if files.Child(name).IsExist() {
			continue
		}
		infoFile := info.Child(name + ".trashinfo")
		f, err := l.FS().OpenFile(infoFile.Path(), writeExclusive, 0600)
		if err != nil {
			if isExist(err) {
				continue
			}
			return "", Location{}, err
		}
		_, err = f.Write([]byte(record))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			l.FS().Remove(infoFile.Path())
			return "", Location{}, err
		}
		return name, infoFile, nil
	}
	return "", Location{}, fmt.Errorf("no free trash name for %s: %w", base, fs.ErrExist)
}

func trashInfo(path string, at time.Time) string {
	escaped := (&url.URL{Path: filepath.ToSlash(path)}).EscapedPath()
	var b strings.Builder
	b.WriteString("[Trash Info]\n")
	b.WriteString("Path=" + escaped + "\n")
	b.WriteString("DeletionDate=" + at.Format(trashInfoTimeFormat) + "\n")
	return b.String()
}
