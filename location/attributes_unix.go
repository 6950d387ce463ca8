//go:build linux || darwin

package location

import (
	"golang.org/x/sys/unix"
)

func systemAttributes(path string, attrs *Attributes) bool {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return false
	}
	attrs.ReferenceCount = uint64(st.Nlink)
	attrs.DeviceIdentifier = uint64(st.Dev)
	attrs.SystemFileNumber = uint64(st.Ino)
	attrs.OwnerID = st.Uid
	attrs.GroupOwnerID = st.Gid
	return true
}

func filesystemAttributes(path string) (FilesystemAttributes, bool) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return FilesystemAttributes{}, false
	}
	bsize := uint64(st.Bsize)
	return FilesystemAttributes{
		Size:      st.Blocks * bsize,
		FreeSize:  st.Bavail * bsize,
		Nodes:     st.Files,
		FreeNodes: st.Ffree,
		Number:    uint64(uint32(st.Fsid.Val[0])) | uint64(uint32(st.Fsid.Val[1]))<<32,
	}, true
}
