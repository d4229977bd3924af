package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
	"github.com/dixieflatline76/Nekofetch/util"
	"github.com/dixieflatline76/Nekofetch/util/log"
)

// Catalog lists the providers the server can fetch from.
type Catalog interface {
	ListProviders() []provider.ID
	DisplayName(id provider.ID) string
}

// ModeStore reads and writes the persisted explicit-content flag.
type ModeStore interface {
	GetExplicitMode() bool
	SetExplicitMode(enabled bool)
}

// Saver stores a fetched image under dir and returns its path.
type Saver interface {
	Save(ctx context.Context, img provider.Image, dir string) (string, error)
}

// Server represents the Local REST/WebSocket server.
type Server struct {
	addr       string
	httpServer *http.Server
	mux        *http.ServeMux
	upgrader   websocket.Upgrader

	// WebSocket management
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex

	fetcher imagefetch.Fetcher
	catalog Catalog
	modes   ModeStore
	stats   util.FetchStats

	// Downloads, optional
	saver       Saver
	downloadDir string
}

// NewServer creates a new API server listening on addr once started.
func NewServer(addr string, fetcher imagefetch.Fetcher, catalog Catalog, modes ModeStore) *Server {
	s := &Server{
		addr: addr,
		mux:  http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*websocket.Conn]bool),
		fetcher: fetcher,
		catalog: catalog,
		modes:   modes,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.enableCORS(s.handleHealth))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/providers", s.enableCORS(s.handleProviders))
	s.mux.HandleFunc("/image", s.enableCORS(s.handleImage))
	s.mux.HandleFunc("/explicit", s.enableCORS(s.handleExplicit))
	s.mux.HandleFunc("/saved/", s.enableCORS(s.handleSaved))
}

// SetDownloader enables saving fetched images into dir and serving them under /saved/.
func (s *Server) SetDownloader(saver Saver, dir string) {
	s.saver = saver
	s.downloadDir = dir
}

// enableCORS adds CORS headers to the handler.
func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the server. It blocks until the server stops.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.mux,
	}
	log.Printf("Local API listening on http://%s", s.addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// imageEvent is pushed to WebSocket clients after every successful fetch.
type imageEvent struct {
	Type   string      `json:"type"`
	URL    string      `json:"url"`
	Source provider.ID `json:"source"`
	Path   string      `json:"path,omitempty"`
}

// BroadcastImage sends an "image" event to all connected clients.
func (s *Server) BroadcastImage(img provider.Image, path string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	msg := imageEvent{Type: "image", URL: img.URL, Source: img.Source, Path: path}
	for client := range s.clients {
		if err := client.WriteJSON(msg); err != nil {
			log.Printf("Failed to broadcast to client: %v", err)
			client.Close()
			delete(s.clients, client)
		}
	}
}

// clientCount returns the number of connected WebSocket clients.
func (s *Server) clientCount() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}
