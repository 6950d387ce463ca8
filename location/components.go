package location

import (
	"strings"
)

// Components lists the path segments from root to leaf. An absolute path starts with "/".
func (l Location) Components() []string {
	p := l.url.Path
	comps := make([]string, 0, strings.Count(p, "/")+1)
	if strings.HasPrefix(p, "/") {
		comps = append(comps, "/")
	}
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			comps = append(comps, seg)
		}
	}
	return comps
}

// Depth is the number of path segments.
func (l Location) Depth() int {
	return len(l.Components())
}

// FirstComponents returns at most n leading segments.
func (l Location) FirstComponents(n int) []string {
	comps := l.Components()
	if n < 0 {
		return []string{}
	}
	if n >= len(comps) {
		return comps
	}
	return comps[:n]
}

// LastComponents returns at most n trailing segments.
func (l Location) LastComponents(n int) []string {
	comps := l.Components()
	if n < 0 {
		return []string{}
	}
	if n >= len(comps) {
		return comps
	}
	return comps[len(comps)-n:]
}

func (l Location) LastComponent() string {
	comps := l.Components()
	if len(comps) == 0 {
		return ""
	}
	return comps[len(comps)-1]
}

// Extension is what follows the final dot of the last segment. A name whose only dot is
// the leading one has no extension.
func (l Location) Extension() string {
	name := l.LastComponent()
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}

func (l Location) LastComponentWithoutExtension() string {
	name := l.LastComponent()
	ext := l.Extension()
	if ext == "" {
		return name
	}
	return name[:len(name)-len(ext)-1]
}

// ShortPath strips the home directory prefix from the path, when present.
func (l Location) ShortPath() string {
	p := l.Path()
	h := Home().Path()
	if h != "" && strings.HasPrefix(p, h) {
		return p[len(h):]
	}
	return p
}

// DisplayName is the name to show for l. Without a localized name database this is the
// last component; the root shows as "/".
func (l Location) DisplayName() string {
	return l.LastComponent()
}

// ComponentsToDisplay lists the display names from the root down to l.
func (l Location) ComponentsToDisplay() []string {
	return l.Components()
}
