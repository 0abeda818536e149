package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"silhouette/internal/levelgen"
)

// ManifestEntry represents one level in the output manifest.
type ManifestEntry struct {
	Name    string          `json:"name"`
	Source  string          `json:"source"`
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Files   []string        `json:"files,omitempty"`
	Cleared int             `json:"cleared_pixels,omitempty"`
	Stats   *levelgen.Stats `json:"stats,omitempty"`
}

// WriteManifest writes manifest.json to path. File paths are stored
// relative to the manifest's directory, with forward slashes.
func WriteManifest(path string, results []Result) error {
	base := filepath.Dir(path)
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Name:    r.Name,
			Source:  r.Source,
			Success: r.Success,
			Error:   r.Error,
			Cleared: r.Cleared,
		}
		if r.Success {
			stats := r.Stats
			e.Stats = &stats
			for _, f := range []string{r.Files.Render, r.Files.Collision, r.Files.Nav, r.Files.NavMask, r.Files.Preview} {
				if f == "" {
					continue
				}
				if rel, err := filepath.Rel(base, f); err == nil {
					f = rel
				}
				e.Files = append(e.Files, filepath.ToSlash(f))
			}
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.MkdirAll(base, 0755); err != nil {
		return fmt.Errorf("batch: create %s: %w", base, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
