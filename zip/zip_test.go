package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/cantara/locations/fslib"
	"github.com/cantara/locations/location"
	"github.com/spf13/afero"
)

func newServerDir(t *testing.T) (fslib.FS, location.Location) {
	t.Helper()
	fsys := fslib.NewInMem()
	files := map[string]string{
		"/srv/app/app.jar":         "JAR",
		"/srv/app/logs/out.log":    "line\n",
		"/srv/app/logs/json/a.log": "{}",
	}
	for name, data := range files {
		if err := afero.WriteFile(fsys, name, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := fsys.MkdirAll("/srv/archive", 0755); err != nil {
		t.Fatal(err)
	}
	return fsys, location.FromPath("/srv").WithFS(fsys)
}

func readZip(t *testing.T, archive location.Location) map[string]string {
	t.Helper()
	data, err := archive.Data()
	if err != nil {
		t.Fatal(err)
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		out[f.Name] = string(content)
	}
	return out
}

func TestZipDir(t *testing.T) {
	_, srv := newServerDir(t)
	z := Zipper{Dir: srv.Child("archive")}
	archive, err := z.ZipDir(srv.Child("app"))
	if err != nil {
		t.Error(err)
		return
	}
	if archive.LastComponent() != "app.zip" {
		t.Error("Archive named ", archive.LastComponent())
	}
	entries := readZip(t, archive)
	var names []string
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	expected := []string{"app.jar", "logs/", "logs/json/", "logs/json/a.log", "logs/out.log"}
	if len(names) != len(expected) {
		t.Error("Zip has entries ", names)
		return
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Error("Zip has entries ", names)
			return
		}
	}
	if entries["logs/out.log"] != "line\n" {
		t.Error("Wrong content ", entries["logs/out.log"])
	}
	if !srv.Child("app").IsExist() {
		t.Error("ZipDir removed its source")
	}
}

func TestArchive(t *testing.T) {
	_, srv := newServerDir(t)
	z := Zipper{Dir: srv.Child("archive")}
	archive, err := z.Archive(srv.Child("app"))
	if err != nil {
		t.Error(err)
		return
	}
	if !archive.IsFile() {
		t.Error("Archive missing")
	}
	if srv.Child("app").IsExist() {
		t.Error("Source still there after Archive")
	}
}

func TestZipDirChecks(t *testing.T) {
	_, srv := newServerDir(t)
	z := Zipper{Dir: srv.Child("archive")}
	if _, err := z.ZipDir(srv.Child("app/app.jar")); err == nil {
		t.Error("Zipped a file")
	}
	z.Dir = srv.Child("missing")
	if _, err := z.ZipDir(srv.Child("app")); err == nil {
		t.Error("Zipped into a missing directory")
	}
}

func TestPrune(t *testing.T) {
	fsys, srv := newServerDir(t)
	archive := srv.Child("archive")
	now := time.Now()
	for i, name := range []string{"old.zip", "mid.zip", "new.zip"} {
		loc, err := archive.WriteData(name, []byte("0123456789"))
		if err != nil {
			t.Fatal(err)
		}
		stamp := now.Add(time.Duration(i-3) * time.Hour)
		if err = fsys.Chtimes(loc.Path(), stamp, stamp); err != nil {
			t.Fatal(err)
		}
	}
	Zipper{Dir: archive, MaxSize: 20}.Prune()
	if archive.Child("old.zip").IsExist() {
		t.Error("Oldest archive kept")
	}
	if !archive.Child("mid.zip").IsExist() || !archive.Child("new.zip").IsExist() {
		t.Error("Pruned too much")
	}
}

func TestZipDirIntoItself(t *testing.T) {
	_, srv := newServerDir(t)
	app := srv.Child("app")
	z := Zipper{Dir: app}
	archive, err := z.ZipDir(app)
	if err != nil {
		t.Error(err)
		return
	}
	entries := readZip(t, archive)
	if _, ok := entries["app.zip"]; ok {
		t.Error("Archive contains itself")
	}
	if entries["app.jar"] != "JAR" {
		t.Error("Archive is missing app.jar: ", entries)
	}
}
