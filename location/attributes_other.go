//go:build !linux && !darwin

package location

func systemAttributes(path string, attrs *Attributes) bool {
	return false
}

func filesystemAttributes(path string) (FilesystemAttributes, bool) {
	return FilesystemAttributes{}, false
}
