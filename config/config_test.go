package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("log_prefix=testing\ntrash_dir=/tmp/trash-test\n"), 0644))
	t.Setenv(KeyLogPrefix, "")
	os.Unsetenv(KeyLogPrefix)
	t.Setenv(KeyTrashDir, "")
	os.Unsetenv(KeyTrashDir)

	require.NoError(t, Load(envFile))
	assert.Equal(t, "testing", LogPrefix())
	assert.Equal(t, "/tmp/trash-test", TrashDir())
}

func TestLoadMissingFileIsSkipped(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "missing.env")))
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("log_prefix=fromfile\n"), 0644))
	t.Setenv(KeyLogPrefix, "fromenv")

	require.NoError(t, Load(envFile))
	assert.Equal(t, "fromenv", LogPrefix())
}

func TestDefaults(t *testing.T) {
	t.Setenv(KeyLogPrefix, "")
	t.Setenv(KeyTrashDir, "")
	t.Setenv(KeyCloudRoot, "")
	assert.Equal(t, "locations", LogPrefix())
	assert.NotEmpty(t, TrashDir())
	assert.NotEmpty(t, CloudRoot())
}

func TestExpandHome(t *testing.T) {
	t.Setenv(KeyCloudRoot, "~/clouds")
	root := CloudRoot()
	assert.True(t, filepath.IsAbs(root), "cloud root %s is not absolute", root)
	assert.Equal(t, "clouds", filepath.Base(root))
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "containers.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
default: iCloud.com.example.app
containers:
  iCloud.com.example.app: /data/app
  iCloud.com.example.other: /data/other
`), 0644))
	t.Setenv(KeyContainersFile, file)

	r, err := LoadRegistry()
	require.NoError(t, err)
	assert.Equal(t, "iCloud.com.example.app", r.Default)
	assert.Equal(t, "/data/app", r.Containers["iCloud.com.example.app"])
	assert.Len(t, r.Containers, 2)
}

func TestLoadRegistryNotConfigured(t *testing.T) {
	t.Setenv(KeyContainersFile, "")
	r, err := LoadRegistry()
	require.NoError(t, err)
	assert.Empty(t, r.Containers)
}

func TestContainerDirName(t *testing.T) {
	assert.Equal(t, "iCloud~com~example~app", ContainerDirName("iCloud.com.example.app"))
}
