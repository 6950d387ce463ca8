package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"locations", "--env", filepath.Join(t.TempDir(), "none.env")}, args...))
	return out.String(), err
}

func newRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "sub/c.txt"} {
		p := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestChildren(t *testing.T) {
	root := newRoot(t)
	out, err := run(t, "children", root)
	if err != nil {
		t.Error(err)
		return
	}
	got := lines(out)
	if len(got) != 3 || got[0] != filepath.Join(root, "a.txt") || got[2] != filepath.Join(root, "sub") {
		t.Error("Unexpected children ", got)
	}
}

func TestDescendantsFiles(t *testing.T) {
	root := newRoot(t)
	out, err := run(t, "descendants", "--files", root)
	if err != nil {
		t.Error(err)
		return
	}
	if got := lines(out); len(got) != 3 {
		t.Error("Unexpected files ", got)
	}
	_, err = run(t, "descendants", "--files", "--dirs", root)
	if err == nil {
		t.Error("Exclusive flags accepted")
	}
}

func TestMaxValidAndInfo(t *testing.T) {
	root := newRoot(t)
	out, err := run(t, "maxvalid", filepath.Join(root, "missing", "deeper"))
	if err != nil {
		t.Error(err)
		return
	}
	if strings.TrimSpace(out) != root {
		t.Error("Unexpected max valid ", out)
	}

	out, err = run(t, "info", filepath.Join(root, "a.txt"))
	if err != nil {
		t.Error(err)
		return
	}
	for _, want := range []string{"exists:\ttrue", "type:\tfile", "size:\t5", "mime:\ttext/plain"} {
		if !strings.Contains(out, want) {
			t.Error("Info missing ", want, " in ", out)
		}
	}
}

func TestZipRemove(t *testing.T) {
	root := newRoot(t)
	archive := t.TempDir()
	out, err := run(t, "zip", "--remove", filepath.Join(root, "sub"), archive)
	if err != nil {
		t.Error(err)
		return
	}
	if strings.TrimSpace(out) != filepath.Join(archive, "sub.zip") {
		t.Error("Unexpected archive ", out)
	}
	if _, err = os.Stat(filepath.Join(root, "sub")); !os.IsNotExist(err) {
		t.Error("Source not removed")
	}
}

func TestTrash(t *testing.T) {
	root := newRoot(t)
	trash := t.TempDir()
	t.Setenv("trash_dir", trash)
	out, err := run(t, "trash", filepath.Join(root, "b.txt"))
	if err != nil {
		t.Error(err)
		return
	}
	if strings.TrimSpace(out) != filepath.Join(trash, "files", "b.txt") {
		t.Error("Unexpected trash location ", out)
	}
}

func TestDir(t *testing.T) {
	out, err := run(t, "dir", "root")
	if err != nil {
		t.Error(err)
		return
	}
	if strings.TrimSpace(out) != "/" {
		t.Error("Unexpected root ", out)
	}
	if _, err = run(t, "dir", "nope"); err == nil {
		t.Error("Unknown kind accepted")
	}
	if _, err = run(t, "dir", "--domain", "system", "downloads"); err == nil {
		t.Error("Missing directory reported")
	}
}

func TestMissingArgument(t *testing.T) {
	if _, err := run(t, "children"); err == nil {
		t.Error("Missing argument accepted")
	}
}
