//go:build linux

package watch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cantara/locations/fslib"
	"github.com/cantara/locations/location"
)

func waitFor(t *testing.T, events <-chan Event, op Op, name string) Event {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				t.Fatal("Event channel closed early")
			}
			if e.Op == op && e.Location.LastComponent() == name {
				return e
			}
		case <-timeout:
			t.Fatalf("No %s event for %s", op, name)
		}
	}
}

func TestDirectory(t *testing.T) {
	dir := location.FromPath(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := Directory(ctx, dir)
	if err != nil {
		t.Error(err)
		return
	}

	file, err := dir.WriteData("new.txt", []byte("data"))
	if err != nil {
		t.Error(err)
		return
	}
	e := waitFor(t, events, Created, "new.txt")
	if !e.Location.Equal(file) {
		t.Error("Event location ", e.Location, " is not ", file)
	}

	sub, err := dir.MkdirChild("sub", 0755)
	if err != nil {
		t.Error(err)
		return
	}
	if e = waitFor(t, events, Created, "sub"); !e.IsDir {
		t.Error("Directory event not marked as directory")
	}

	if _, err = sub.Rename("renamed"); err != nil {
		t.Error(err)
		return
	}
	waitFor(t, events, Moved, "sub")
	waitFor(t, events, Created, "renamed")

	if err = file.Remove(); err != nil {
		t.Error(err)
		return
	}
	waitFor(t, events, Removed, "new.txt")

	cancel()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Error("Event channel not closed after cancel")
			return
		}
	}
}

func TestDirectoryChecks(t *testing.T) {
	ctx := context.Background()
	_, err := Directory(ctx, location.FromPath("/x").WithFS(fslib.NewInMem()))
	if !errors.Is(err, ErrUnsupported) {
		t.Error("In memory directory was watched: ", err)
	}
	dir := location.FromPath(t.TempDir())
	file, err := dir.WriteData("f", nil)
	if err != nil {
		t.Error(err)
		return
	}
	_, err = Directory(ctx, file)
	if !errors.Is(err, fslib.FileNotDir) {
		t.Error("Watching a file gave ", err)
	}
}
