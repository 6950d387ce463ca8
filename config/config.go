// Package config reads the settings of locations from the process environment,
// optionally seeded from .env files, and the YAML cloud container registry.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	KeyLogDir           = "log_dir"
	KeyLogPrefix        = "log_prefix"
	KeyCloudRoot        = "cloud_root"
	KeyDefaultContainer = "cloud_default_container"
	KeyContainersFile   = "cloud_containers_file"
	KeyTrashDir         = "trash_dir"
)

// Registry maps cloud container identifiers to local mirror directories.
type Registry struct {
	Default    string            `yaml:"default"`
	Containers map[string]string `yaml:"containers"`
}

// Load reads the given .env files into the environment. Variables that are already set
// win over the files. Missing files are skipped; with no arguments ".env" is tried.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		err := godotenv.Load(file)
		if err == nil {
			continue
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return fmt.Errorf("loading %s: %w", file, err)
	}
	return nil
}

func LogDir() string {
	return expand(os.Getenv(KeyLogDir))
}

func LogPrefix() string {
	if p := os.Getenv(KeyLogPrefix); p != "" {
		return p
	}
	return "locations"
}

// CloudRoot is the directory that holds the local mirrors of cloud containers.
func CloudRoot() string {
	if root := os.Getenv(KeyCloudRoot); root != "" {
		return expand(root)
	}
	if runtime.GOOS == "darwin" {
		if home, err := homedir.Dir(); err == nil {
			return filepath.Join(home, "Library", "Mobile Documents")
		}
	}
	return filepath.Join(xdg.DataHome, "cloud-containers")
}

func DefaultContainer() string {
	return os.Getenv(KeyDefaultContainer)
}

func ContainersFile() string {
	return expand(os.Getenv(KeyContainersFile))
}

// TrashDir is the freedesktop trash directory items are moved into.
func TrashDir() string {
	if dir := os.Getenv(KeyTrashDir); dir != "" {
		return expand(dir)
	}
	return filepath.Join(xdg.DataHome, "Trash")
}

// LoadRegistry reads the container registry named by cloud_containers_file. No file
// configured gives an empty registry.
func LoadRegistry() (r Registry, err error) {
	file := ContainersFile()
	if file == "" {
		return
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return
	}
	err = yaml.Unmarshal(data, &r)
	if err != nil {
		err = fmt.Errorf("parsing %s: %w", file, err)
		return
	}
	for id, dir := range r.Containers {
		r.Containers[id] = expand(dir)
	}
	return
}

// ContainerDirName is the directory name a container identifier is mirrored under,
// dots replaced by tildes.
func ContainerDirName(identifier string) string {
	return strings.ReplaceAll(identifier, ".", "~")
}

func expand(path string) string {
	if path == "" {
		return ""
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
