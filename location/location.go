// Package location wraps a filesystem URL in an immutable value with identity, path
// decomposition and relation queries that are answered by the live filesystem on every
// call. Nothing about the tree is cached: a Location never goes stale, it simply gives
// new answers after the filesystem changes.
package location

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/cantara/locations/fslib"
	"github.com/cespare/xxhash/v2"
	"github.com/mitchellh/go-homedir"
)

const fileScheme = "file"

// Location is a file or directory path that may or may not exist. The zero value has no
// scheme and no path and never exists. It is not Equal to FromPath(""), which keeps the
// file scheme.
//
// Identity is the URL string: two Locations are equal when their URLs are, regardless of
// the filesystem they are bound to or whether they name the same inode.
type Location struct {
	url  url.URL
	fsys fslib.FS
}

// FromPath expands a leading ~, cleans the path and makes it absolute. It never fails;
// the empty string gives the empty Location.
func FromPath(p string) Location {
	return Location{url: url.URL{Scheme: fileScheme, Path: standardize(p)}}
}

// FromURL keeps u exactly as given.
func FromURL(u *url.URL) Location {
	if u == nil {
		return Location{}
	}
	return Location{url: *u}
}

// FromComponents joins segments with the separator. Separator-only segments are dropped;
// a leading separator segment keeps the result absolute.
func FromComponents(segments []string) Location {
	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "/" {
			continue
		}
		kept = append(kept, seg)
	}
	p := strings.Join(kept, "/")
	if len(segments) > 0 && segments[0] == "/" {
		p = "/" + p
	}
	return FromPath(p)
}

func standardize(p string) string {
	if p == "" {
		return ""
	}
	if expanded, err := homedir.Expand(p); err == nil {
		p = expanded
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(p))
	}
	return filepath.ToSlash(abs)
}

// WithFS returns the same Location answering its queries from fsys.
func (l Location) WithFS(fsys fslib.FS) Location {
	l.fsys = fsys
	return l
}

// FS is the filesystem the Location queries, the OS one unless rebound.
func (l Location) FS() fslib.FS {
	return fslib.OrOS(l.fsys)
}

// Child is the Location name below l. name may hold several segments.
func (l Location) Child(name string) Location {
	return l.withPath(path.Join(l.url.Path, name))
}

func (l Location) withPath(p string) Location {
	u := l.url
	u.Path = p
	u.RawPath = ""
	return Location{url: u, fsys: l.fsys}
}

// Path is the native path string.
func (l Location) Path() string {
	return filepath.FromSlash(l.url.Path)
}

// URL returns a copy of the underlying URL.
func (l Location) URL() *url.URL {
	u := l.url
	return &u
}

func (l Location) Scheme() string {
	return l.url.Scheme
}

func (l Location) String() string {
	return l.url.String()
}

// Key is the identity string of l, usable as a map key.
func (l Location) Key() string {
	return l.url.String()
}

func (l Location) Equal(other Location) bool {
	return l.Key() == other.Key()
}

// Hash is consistent with Equal.
func (l Location) Hash() uint64 {
	return xxhash.Sum64String(l.Key())
}
