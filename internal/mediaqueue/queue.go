// Package mediaqueue discovers spot videos and slide images in a directory and
// exposes them as an immutable cyclic queue snapshot.
package mediaqueue

import "scorepanel/internal/common/fsutil"

// Extension sets recognised by the spot and slide scanners.
var (
	SpotExts  = []string{".mp4", ".m4v", ".mkv", ".mov", ".webm"}
	SlideExts = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".tif", ".tiff"}
)

// Scanner lists the media files of one kind in a directory.
type Scanner struct {
	exts []string
}

func NewSpotScanner() Scanner  { return Scanner{exts: SpotExts} }
func NewSlideScanner() Scanner { return Scanner{exts: SlideExts} }

// Scan returns the absolute paths of matching regular files in dir, sorted by
// name. Subdirectories are not descended into.
func (s Scanner) Scan(dir string) ([]string, error) {
	return fsutil.ListFiles(dir, s.exts)
}

// Queue is a snapshot of media paths plus a cursor. Methods return new values;
// a Queue is never mutated in place.
type Queue struct {
	paths  []string
	cursor int
}

// Len is the number of entries.
func (q Queue) Len() int { return len(q.paths) }

func (q Queue) Empty() bool { return len(q.paths) == 0 }

// Cursor is the index Current reads from.
func (q Queue) Cursor() int { return q.cursor }

// Current returns the entry under the cursor.
func (q Queue) Current() (string, bool) {
	if len(q.paths) == 0 {
		return "", false
	}
	return q.paths[q.cursor], true
}

// Advance moves the cursor one step, wrapping at the end.
func (q Queue) Advance() Queue {
	if len(q.paths) == 0 {
		return q
	}
	return Queue{paths: q.paths, cursor: (q.cursor + 1) % len(q.paths)}
}

// Paths returns a copy of the entries.
func (q Queue) Paths() []string { return append([]string(nil), q.paths...) }

// WithPaths replaces the entries and carries the cursor forward modulo the new
// length.
func (q Queue) WithPaths(paths []string) Queue {
	n := Queue{paths: append([]string(nil), paths...)}
	if len(n.paths) > 0 {
		n.cursor = q.cursor % len(n.paths)
	}
	return n
}

// Rescan rebuilds q from dir. A directory that cannot be read yields an empty
// queue together with the error.
func (q Queue) Rescan(s Scanner, dir string) (Queue, error) {
	paths, err := s.Scan(dir)
	if err != nil {
		return q.WithPaths(nil), err
	}
	return q.WithPaths(paths), nil
}
