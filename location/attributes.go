package location

import (
	"io/fs"
	"mime"
	"os/user"
	"strconv"
	"time"

	"github.com/cantara/locations/fslib"
)

// Attributes is what the filesystem reports about an item. Fields the filesystem cannot
// provide stay zero.
type Attributes struct {
	Type             fs.FileMode
	Size             int64
	ModificationDate time.Time
	Permissions      fs.FileMode
	ReferenceCount   uint64
	DeviceIdentifier uint64
	SystemFileNumber uint64
	OwnerID          uint32
	GroupOwnerID     uint32
	OwnerName        string
	GroupOwnerName   string
}

// FilesystemAttributes describes the filesystem an item lives on.
type FilesystemAttributes struct {
	Size      uint64
	FreeSize  uint64
	Nodes     uint64
	FreeNodes uint64
	Number    uint64
}

// Attributes of the item at l itself, not of a link target. Missing items give the zero value.
func (l Location) Attributes() Attributes {
	if l.url.Path == "" {
		return Attributes{}
	}
	info, err := fslib.Lstat(l.fsys, l.Path())
	if err != nil {
		return Attributes{}
	}
	attrs := Attributes{
		Type:             info.Mode().Type(),
		Size:             info.Size(),
		ModificationDate: info.ModTime(),
		Permissions:      info.Mode().Perm(),
	}
	if fslib.IsOS(l.FS()) && systemAttributes(l.Path(), &attrs) {
		if u, err := user.LookupId(strconv.FormatUint(uint64(attrs.OwnerID), 10)); err == nil {
			attrs.OwnerName = u.Username
		}
		if g, err := user.LookupGroupId(strconv.FormatUint(uint64(attrs.GroupOwnerID), 10)); err == nil {
			attrs.GroupOwnerName = g.Name
		}
	}
	return attrs
}

func (l Location) Size() int64 {
	return l.Attributes().Size
}

func (l Location) ModificationDate() time.Time {
	return l.Attributes().ModificationDate
}

// DiskUsage sums the sizes of all regular files at or below l.
func (l Location) DiskUsage() int64 {
	if l.url.Path == "" {
		return 0
	}
	return fslib.DirSize(l.fsys, l.Path())
}

func (l Location) SetModificationDate(t time.Time) error {
	err := l.FS().Chtimes(l.Path(), t, t)
	if err != nil {
		return newError(ErrSetAttributes, "chtimes", l.Path(), err)
	}
	return nil
}

func (l Location) SetPermissions(perm fs.FileMode) error {
	err := l.FS().Chmod(l.Path(), perm)
	if err != nil {
		return newError(ErrSetAttributes, "chmod", l.Path(), err)
	}
	return nil
}

func (l Location) SetOwnerID(uid int) error {
	err := l.FS().Chown(l.Path(), uid, -1)
	if err != nil {
		return newError(ErrSetAttributes, "chown", l.Path(), err)
	}
	return nil
}

func (l Location) SetGroupOwnerID(gid int) error {
	err := l.FS().Chown(l.Path(), -1, gid)
	if err != nil {
		return newError(ErrSetAttributes, "chown", l.Path(), err)
	}
	return nil
}

// FilesystemAttributes reports on the OS filesystem holding l. It is false for missing
// items and for filesystems that are not the OS one.
func (l Location) FilesystemAttributes() (FilesystemAttributes, bool) {
	if l.url.Path == "" || !fslib.IsOS(l.FS()) {
		return FilesystemAttributes{}, false
	}
	return filesystemAttributes(l.Path())
}

// MIME is the media type registered for l's extension, without parameters.
func (l Location) MIME() (string, bool) {
	ext := l.Extension()
	if ext == "" {
		return "", false
	}
	t := mime.TypeByExtension("." + ext)
	if t == "" {
		return "", false
	}
	mediaType, _, err := mime.ParseMediaType(t)
	if err != nil {
		return t, true
	}
	return mediaType, true
}
