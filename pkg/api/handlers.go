package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dixieflatline76/Nekofetch/config"
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
	"github.com/dixieflatline76/Nekofetch/util/log"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Fetched int64  `json:"fetched"`
	Failed  int64  `json:"failed"`
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ok, failed := s.stats.Snapshot()
	writeJSON(w, healthResponse{
		Status:  "running",
		Version: config.AppVersion,
		Fetched: ok,
		Failed:  failed,
	})
}

// handleWebSocket upgrades the connection to WebSocket.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	// Clients only send keepalives; reading detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

type providerInfo struct {
	ID   provider.ID `json:"id"`
	Name string      `json:"name"`
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ids := s.catalog.ListProviders()
	infos := make([]providerInfo, 0, len(ids))
	for _, id := range ids {
		infos = append(infos, providerInfo{ID: id, Name: s.catalog.DisplayName(id)})
	}
	writeJSON(w, infos)
}

type imageResponse struct {
	URL    string      `json:"url"`
	Source provider.ID `json:"source"`
	Path   string      `json:"path,omitempty"`
}

// handleImage fetches one image in the persisted rating mode.
// With save=1 and a downloader configured, the image is also stored locally.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := provider.ParseID(r.URL.Query().Get("provider"))
	if !ok {
		http.Error(w, "Unknown provider", http.StatusBadRequest)
		return
	}

	img, err := s.fetcher.FetchImage(r.Context(), id, s.modes.GetExplicitMode())
	s.stats.Record(err)
	if err != nil {
		log.Printf("Image request failed: %v", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp := imageResponse{URL: img.URL, Source: img.Source}
	if r.URL.Query().Get("save") == "1" {
		if s.saver == nil {
			http.Error(w, "Downloads not available", http.StatusServiceUnavailable)
			return
		}
		path, err := s.saver.Save(r.Context(), img, s.downloadDir)
		if err != nil {
			log.Printf("Failed to save %s: %v", img.URL, err)
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		resp.Path = path
	}

	s.BroadcastImage(img, resp.Path)
	writeJSON(w, resp)
}

// statusFor maps a fetch failure to a response code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, imagefetch.ErrUnknownProvider):
		return http.StatusBadRequest
	case errors.Is(err, provider.ErrNoCategories):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

type explicitState struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleExplicit(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, explicitState{Enabled: s.modes.GetExplicitMode()})
	case http.MethodPost:
		var req *explicitState
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req == nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		s.modes.SetExplicitMode(req.Enabled)
		log.Printf("Explicit mode set to %t", req.Enabled)
		writeJSON(w, explicitState{Enabled: s.modes.GetExplicitMode()})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
