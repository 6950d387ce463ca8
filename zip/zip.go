package zip

import (
	"archive/zip"
	"compress/flate"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	log "github.com/cantara/bragi"
	"github.com/cantara/locations/fslib"
	"github.com/cantara/locations/location"
)

// Zipper writes archives into Dir. When MaxSize is above zero, Prune keeps Dir below it.
type Zipper struct {
	Dir     location.Location
	MaxSize int64
}

// ZipDir archives src into Dir as <name>.zip, entry names relative to src.
func (z Zipper) ZipDir(src location.Location) (archive location.Location, err error) {
	log.Debug("Archiving ", src.Path())
	if !src.IsDirectory() {
		err = fmt.Errorf("%s: %w", src.Path(), fslib.FileNotDir)
		return
	}
	if !z.Dir.IsDirectory() {
		err = fmt.Errorf("%s: %w", z.Dir.Path(), fslib.DestinationMissing)
		return
	}
	archive = z.Dir.Child(src.LastComponent() + ".zip")
	outFile, err := z.Dir.FS().OpenFile(archive.Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return
	}
	defer outFile.Close()

	w := zip.NewWriter(outFile)
	w.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	base := src.Depth()
	for _, entry := range src.Descendants() {
		if entry.Equal(archive) {
			continue
		}
		name := path.Join(entry.LastComponents(entry.Depth() - base)...)
		err = addEntry(w, entry, name)
		if err != nil {
			log.AddError(err).Warning("While zipping ", entry.Path())
			continue
		}
	}

	// Make sure to check the error on Close.
	err = w.Close()
	return
}

// Archive zips src and removes it once the archive is written.
func (z Zipper) Archive(src location.Location) (archive location.Location, err error) {
	archive, err = z.ZipDir(src)
	if err != nil {
		return
	}
	err = src.Remove()
	if err != nil {
		return
	}
	z.Prune()
	return
}

// Prune removes the oldest files in Dir until it is no larger than MaxSize.
func (z Zipper) Prune() {
	if z.MaxSize <= 0 {
		return
	}
	for z.Dir.DiskUsage() > z.MaxSize {
		oldest, ok := oldestFile(z.Dir)
		if !ok {
			return
		}
		log.Info("Archive too large, removing ", oldest.Path())
		err := oldest.Remove()
		if err != nil {
			log.AddError(err).Warning("While pruning archive")
			return
		}
	}
}

func oldestFile(dir location.Location) (oldest location.Location, ok bool) {
	for _, file := range dir.SubFiles(true) {
		if ok && !file.ModificationDate().Before(oldest.ModificationDate()) {
			continue
		}
		oldest, ok = file, true
	}
	return
}

func addEntry(w *zip.Writer, entry location.Location, name string) (err error) {
	if entry.IsSymbolicLink() {
		return
	}
	if entry.IsDirectory() {
		_, err = w.Create(strings.TrimSuffix(name, "/") + "/")
		return
	}
	in, err := entry.FS().Open(entry.Path())
	if err != nil {
		return
	}
	defer in.Close()
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: entry.ModificationDate(),
	}
	header.SetMode(entry.Attributes().Permissions)
	f, err := w.CreateHeader(header)
	if err != nil {
		return
	}
	_, err = io.Copy(f, in)
	return
}
