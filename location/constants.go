package location

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	log "github.com/cantara/bragi"
	"github.com/mitchellh/go-homedir"
)

// Directory names a standard directory.
type Directory int

const (
	HomeDirectory Directory = iota
	CachesDirectory
	DocumentDirectory
	DownloadsDirectory
	DesktopDirectory
	ApplicationSupportDirectory
	ConfigDirectory
	TemporaryDirectory
	BundleDirectory
	RootDirectory
)

var directoryNames = map[string]Directory{
	"home":                HomeDirectory,
	"caches":              CachesDirectory,
	"documents":           DocumentDirectory,
	"downloads":           DownloadsDirectory,
	"desktop":             DesktopDirectory,
	"application-support": ApplicationSupportDirectory,
	"config":              ConfigDirectory,
	"temporary":           TemporaryDirectory,
	"bundle":              BundleDirectory,
	"root":                RootDirectory,
}

// ParseDirectory maps a directory name such as "caches" or "application-support" to its kind.
func ParseDirectory(name string) (Directory, bool) {
	d, ok := directoryNames[name]
	return d, ok
}

// Domain selects whose standard directory is meant.
type Domain int

const (
	UserDomain Domain = iota
	LocalDomain
	SystemDomain
)

var domainNames = map[string]Domain{
	"user":   UserDomain,
	"local":  LocalDomain,
	"system": SystemDomain,
}

func ParseDomain(name string) (Domain, bool) {
	d, ok := domainNames[name]
	return d, ok
}

// FromSystemDirectory resolves kind in domain to its first candidate path. A
// combination with no path gives the empty Location.
func FromSystemDirectory(kind Directory, domain Domain) Location {
	for _, p := range searchPaths(kind, domain) {
		if p != "" {
			return FromPath(p)
		}
	}
	return FromPath("")
}

func searchPaths(kind Directory, domain Domain) []string {
	switch kind {
	case TemporaryDirectory:
		return []string{os.TempDir()}
	case BundleDirectory:
		return []string{bundlePath()}
	case RootDirectory:
		return []string{"/"}
	}
	switch domain {
	case UserDomain:
		switch kind {
		case HomeDirectory:
			return []string{homePath()}
		case CachesDirectory:
			return []string{xdg.CacheHome}
		case DocumentDirectory:
			return []string{xdg.UserDirs.Documents}
		case DownloadsDirectory:
			return []string{xdg.UserDirs.Download}
		case DesktopDirectory:
			return []string{xdg.UserDirs.Desktop}
		case ApplicationSupportDirectory:
			return []string{xdg.DataHome}
		case ConfigDirectory:
			return []string{xdg.ConfigHome}
		}
	case LocalDomain:
		switch kind {
		case CachesDirectory:
			return []string{"/var/cache"}
		case ApplicationSupportDirectory:
			return xdg.DataDirs
		case ConfigDirectory:
			return xdg.ConfigDirs
		}
	case SystemDomain:
		switch kind {
		case ApplicationSupportDirectory:
			return []string{"/usr/share"}
		case ConfigDirectory:
			return []string{"/etc"}
		}
	}
	return nil
}

func homePath() string {
	home, err := homedir.Dir()
	if err != nil {
		log.AddError(err).Debug("While resolving home directory")
		return ""
	}
	return home
}

func bundlePath() string {
	exe, err := os.Executable()
	if err != nil {
		log.AddError(err).Debug("While resolving executable")
		return ""
	}
	return filepath.Dir(exe)
}

func Root() Location {
	return FromPath("/")
}

func Home() Location {
	return FromSystemDirectory(HomeDirectory, UserDomain)
}

func Temporary() Location {
	return FromSystemDirectory(TemporaryDirectory, UserDomain)
}

func UserDocuments() Location {
	return FromSystemDirectory(DocumentDirectory, UserDomain)
}

func UserCache() Location {
	return FromSystemDirectory(CachesDirectory, UserDomain)
}

func ApplicationSupport() Location {
	return FromSystemDirectory(ApplicationSupportDirectory, UserDomain)
}

// Bundle is the directory holding the running executable.
func Bundle() Location {
	return FromSystemDirectory(BundleDirectory, UserDomain)
}
