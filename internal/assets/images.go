// Package assets resolves per-cabin photo listings: a filesystem directory
// keyed by short code, falling back to the catalog's stored image_refs.
package assets

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cabinreserve/internal/models"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// CabinImages resolves the photo list the API/agent surfaces for a cabin. Dir
// holds one subdirectory per cabin short code (mirrors the original
// system's "zimmers_pic/<shortCode>" layout); BaseURL is the path prefix the
// HTTP server serves Dir under as static files.
type CabinImages struct {
	Dir     string
	BaseURL string
}

func NewCabinImages(dir, baseURL string) *CabinImages {
	return &CabinImages{Dir: strings.TrimSpace(dir), BaseURL: strings.TrimRight(baseURL, "/")}
}

// Resolve returns the cabin's photo URLs: files found under
// Dir/<shortCode>, sorted by name, rewritten to static URIs. If the
// directory is absent, empty, or not configured, it falls back to the
// cabin's stored ImageRefs.
func (r *CabinImages) Resolve(cabin *models.Cabin) []string {
	if r != nil && r.Dir != "" {
		if urls := r.listDir(cabin.ShortCode); len(urls) > 0 {
			return urls
		}
	}
	return models.DecodeImageRefs(cabin.ImageRefs)
}

func (r *CabinImages) listDir(shortCode string) []string {
	dir := filepath.Join(r.Dir, shortCode)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	urls := make([]string, 0, len(names))
	for _, name := range names {
		urls = append(urls, r.BaseURL+"/"+shortCode+"/"+name)
	}
	return urls
}
