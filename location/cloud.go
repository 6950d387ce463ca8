package location

import (
	log "github.com/cantara/bragi"
	"github.com/cantara/locations/config"
)

// FromCloudContainer resolves the local mirror of a cloud container. Registry entries
// win; otherwise the container lives under the cloud root with its dots replaced by
// tildes. The empty identifier selects the configured default container. It is false
// unless the result is an existing directory.
func FromCloudContainer(identifier string) (Location, bool) {
	registry, err := config.LoadRegistry()
	if err != nil {
		log.AddError(err).Warning("While loading cloud container registry")
	}
	if identifier == "" {
		identifier = registry.Default
	}
	if identifier == "" {
		identifier = config.DefaultContainer()
	}
	if identifier == "" {
		return Location{}, false
	}
	var loc Location
	if dir, ok := registry.Containers[identifier]; ok && dir != "" {
		loc = FromPath(dir)
	} else {
		loc = FromPath(config.CloudRoot()).Child(config.ContainerDirName(identifier))
	}
	if !loc.IsDirectory() {
		log.Debug("No cloud container ", identifier, " at ", loc.Path())
		return Location{}, false
	}
	return loc, true
}

// IsCloudContained reports whether l sits inside the cloud root or a registered
// container.
func (l Location) IsCloudContained() bool {
	p := l.url.Path
	if p == "" {
		return false
	}
	roots := []string{config.CloudRoot()}
	if registry, err := config.LoadRegistry(); err == nil {
		for _, dir := range registry.Containers {
			roots = append(roots, dir)
		}
	}
	for _, root := range roots {
		if root == "" {
			continue
		}
		r := FromPath(root).url.Path
		if p == r || within(p, r) {
			return true
		}
	}
	return false
}
