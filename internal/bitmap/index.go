package bitmap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one discovered level source.
type Entry struct {
	Name string // lowercase file stem, used as level name
	Path string
}

// extPriority ranks formats when two files share a stem. Lossless first.
var extPriority = map[string]int{
	".png":  0,
	".bmp":  1,
	".tga":  2,
	".webp": 3,
	".gif":  4,
	".jpg":  5,
	".jpeg": 5,
}

// Scan lists the silhouettes directly inside dir, sorted by name. When
// several files share a stem the highest-priority format wins.
func Scan(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("bitmap: scan %s: %w", dir, err)
	}

	byStem := make(map[string]string)
	for _, de := range des {
		if de.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(de.Name()))
		if !Supported(ext) {
			continue
		}
		stem := Stem(de.Name())
		path := filepath.Join(dir, de.Name())

		existing, exists := byStem[stem]
		if !exists || extPriority[ext] < extPriority[strings.ToLower(filepath.Ext(existing))] {
			byStem[stem] = path
		}
	}

	entries := make([]Entry, 0, len(byStem))
	for stem, path := range byStem {
		entries = append(entries, Entry{Name: stem, Path: path})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].Name < entries[b].Name })
	return entries, nil
}

// EntryFor builds the Entry of a single file path.
func EntryFor(path string) Entry {
	return Entry{Name: Stem(path), Path: path}
}

// Stem returns the lowercase base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Dedupe keeps the first entry for each level name and returns the later
// ones separately, so two sources never write the same level directory.
func Dedupe(entries []Entry) (kept, dropped []Entry) {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Name] {
			dropped = append(dropped, e)
			continue
		}
		seen[e.Name] = true
		kept = append(kept, e)
	}
	return kept, dropped
}
