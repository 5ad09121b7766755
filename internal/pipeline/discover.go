package pipeline

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Supported image file extensions (lowercase, with leading dot). Note that
// .webp itself is included: already-converted files are re-encoded, which
// is also why the output root must not live inside a directory input.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".webp": true,
}

// IsImage reports whether path has a supported image extension
// (case-insensitive).
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discovery is the single-pass stream of candidate image paths. Files is
// closed when the walk completes; each path is consumed exactly once.
type Discovery struct {
	Files <-chan string

	skipped int
}

// Skipped returns the number of non-image regular files seen during a
// directory walk. Valid only after Files has been drained (the channel
// close orders the walk goroutine's writes before the reader).
func (d *Discovery) Skipped() int {
	return d.skipped
}

// Discover streams candidate files for inputPath. A regular-file input
// yields itself iff its extension matches; a directory input is walked
// recursively, non-image files are counted but otherwise silently skipped,
// and unreadable entries are skipped without aborting the walk. Traversal
// order is whatever the platform's walk yields; consumers must not depend
// on it.
func Discover(inputPath string, isDir bool) *Discovery {
	ch := make(chan string)
	d := &Discovery{Files: ch}

	go func() {
		defer close(ch)

		if !isDir {
			if IsImage(inputPath) {
				ch <- inputPath
			}
			return
		}

		_ = filepath.WalkDir(inputPath, func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil
			}
			if !entry.Type().IsRegular() {
				return nil
			}
			if IsImage(path) {
				ch <- path
			} else {
				d.skipped++
			}
			return nil
		})
	}()

	return d
}
