//go:build linux

package watch

import (
	"context"
	"fmt"
	"path/filepath"

	log "github.com/cantara/bragi"
	"github.com/cantara/locations/fslib"
	"github.com/cantara/locations/location"
	"k8s.io/utils/inotify"
)

const watchMask = inotify.InCreate | inotify.InDelete | inotify.InModify | inotify.InMovedFrom | inotify.InMovedTo

// Directory watches the direct children of dir until ctx ends, then closes the channel.
// Only directories on the OS filesystem can be watched.
func Directory(ctx context.Context, dir location.Location) (events <-chan Event, err error) {
	if !fslib.IsOS(dir.FS()) {
		err = ErrUnsupported
		return
	}
	if !dir.IsDirectory() {
		err = fmt.Errorf("%s: %w", dir.Path(), fslib.FileNotDir)
		return
	}
	watcher, err := inotify.NewWatcher()
	if err != nil {
		return
	}
	err = watcher.AddWatch(dir.Path(), watchMask)
	if err != nil {
		watcher.Close()
		return
	}
	eventChan := make(chan Event, 20)
	go func() {
		defer close(eventChan)
		defer watcher.Close()
		defer watcher.RemoveWatch(dir.Path())
		for {
			select {
			case ev := <-watcher.Event:
				if ev == nil {
					continue
				}
				e, ok := toEvent(dir, ev)
				if !ok {
					continue
				}
				select {
				case eventChan <- e:
				case <-ctx.Done():
					log.Debug("Stopping watch of ", dir.Path())
					return
				}
			case err := <-watcher.Error:
				log.AddError(err).Warning("While watching ", dir.Path())
			case <-ctx.Done():
				log.Debug("Stopping watch of ", dir.Path())
				return
			}
		}
	}()
	events = eventChan
	return
}

func toEvent(dir location.Location, ev *inotify.Event) (e Event, ok bool) {
	// Events on the watched directory itself carry its own path.
	if ev.Name == "" || filepath.Clean(ev.Name) == filepath.Clean(dir.Path()) {
		return
	}
	e.Location = dir.Child(filepath.Base(ev.Name))
	e.IsDir = ev.Mask&inotify.InIsdir != 0
	switch {
	case ev.Mask&(inotify.InCreate|inotify.InMovedTo) != 0:
		e.Op = Created
	case ev.Mask&inotify.InDelete != 0:
		e.Op = Removed
	case ev.Mask&inotify.InModify != 0:
		e.Op = Modified
	case ev.Mask&inotify.InMovedFrom != 0:
		e.Op = Moved
	default:
		return
	}
	ok = true
	return
}
