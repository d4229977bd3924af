package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

// SavedImage is one downloaded image as listed by /saved/.
type SavedImage struct {
	ID     string      `json:"id"`
	URL    string      `json:"url"`
	Source provider.ID `json:"source,omitempty"`
}

var savedExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// handleSaved routes /saved/ requests.
// Supported patterns:
// 1. list: /saved/?page=1&per_page=24
// 2. asset: /saved/{filename}
func (s *Server) handleSaved(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.downloadDir == "" {
		http.Error(w, "Downloads not available", http.StatusNotFound)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/saved/")
	if name == "" {
		s.handleSavedListing(w, r)
		return
	}
	s.handleSavedAsset(w, r, name)
}

func (s *Server) handleSavedListing(w http.ResponseWriter, r *http.Request) {
	page := 1
	perPage := 24
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if pp, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && pp > 0 {
		perPage = pp
	}

	entries, err := os.ReadDir(s.downloadDir)
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, []SavedImage{})
			return
		}
		http.Error(w, "Failed to read directory", http.StatusInternalServerError)
		return
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if savedExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	// Pages past the end are empty; checked before multiplying so huge values cannot overflow.
	start := len(names)
	if page-1 <= len(names)/perPage {
		start = min((page-1)*perPage, len(names))
	}
	end := start + min(perPage, len(names)-start)

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	result := make([]SavedImage, 0, end-start)
	for _, name := range names[start:end] {
		img := SavedImage{
			ID:  strings.TrimSuffix(name, filepath.Ext(name)),
			URL: fmt.Sprintf("%s://%s/saved/%s", scheme, r.Host, name),
		}
		// Downloader names files "<source>_<name>".
		if prefix, _, found := strings.Cut(name, "_"); found {
			if id, ok := provider.ParseID(prefix); ok {
				img.Source = id
			}
		}
		result = append(result, img)
	}
	writeJSON(w, result)
}

func (s *Server) handleSavedAsset(w http.ResponseWriter, r *http.Request, filename string) {
	// The filename must be a single path component.
	if strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") || filepath.Base(filename) != filename {
		http.Error(w, "Invalid filename", http.StatusBadRequest)
		return
	}

	root, err := filepath.Abs(s.downloadDir)
	if err != nil {
		http.Error(w, "Invalid asset path", http.StatusBadRequest)
		return
	}
	root = filepath.Clean(root)

	full := filepath.Clean(filepath.Join(root, filename))
	if !strings.HasPrefix(full, root+string(os.PathSeparator)) {
		http.Error(w, "Invalid asset path", http.StatusBadRequest)
		return
	}

	http.ServeFile(w, r, full)
}
