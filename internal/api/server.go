package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"drifter-tracker/internal/config"
	"drifter-tracker/internal/db"
	"drifter-tracker/internal/engine"
	"drifter-tracker/internal/logger"
	"drifter-tracker/internal/sde"
)

// suggestionLimit caps "did you mean" lists for unresolved names.
const suggestionLimit = 10

// Server is the HTTP API server that connects the static universe, the router
// and the scan database.
type Server struct {
	cfg     *config.Config
	db      *db.DB
	sdeData *sde.Data
	router  *engine.Router
	mu      sync.RWMutex
	ready   bool

	// Identical concurrent route requests share one computation.
	routeGroup singleflight.Group

	now func() time.Time
}

// NewServer creates a Server with the given config and database. Routing
// endpoints answer 503 until SetSDE is called.
func NewServer(cfg *config.Config, database *db.DB) *Server {
	return &Server{cfg: cfg, db: database, now: time.Now}
}

// SetSDE is called when SDE data finishes loading.
func (s *Server) SetSDE(data *sde.Data) {
	router := engine.NewRouter(data.Universe)
	router.UseJumpbridges = s.cfg.UseJumpbridges

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sdeData = data
	s.router = router
	s.ready = true
	logger.Success("API", fmt.Sprintf("Router ready: %d systems, %d jumpbridges", len(data.Systems), data.JumpbridgeLinks))
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// snapshot returns the loaded universe and router, or false before SetSDE.
func (s *Server) snapshot() (*sde.Data, *engine.Router, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sdeData, s.router, s.ready
}

// Handler returns the HTTP handler with all API routes and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/systems/autocomplete", s.handleAutocomplete)
	mux.HandleFunc("GET /api/regions/active", s.handleActiveRegions)
	mux.HandleFunc("GET /api/scans", s.handleListScans)
	mux.HandleFunc("POST /api/scans", s.handleAddScan)
	mux.HandleFunc("POST /api/scans/none", s.handleMarkNoHole)
	mux.HandleFunc("DELETE /api/scans/{id}", s.handleDeleteScan)
	mux.HandleFunc("POST /api/scans/cleanup", s.handleCleanup)
	mux.HandleFunc("POST /api/route/hybrid", s.handleRouteHybrid)
	mux.HandleFunc("POST /api/route/regions", s.handleRouteRegions)
	mux.HandleFunc("GET /api/path", s.handlePath)
	mux.HandleFunc("POST /api/fleet/check", s.handleFleetCheck)
	mux.HandleFunc("GET /api/history", s.handleGetHistory)
	mux.HandleFunc("DELETE /api/history", s.handleClearHistory)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(204)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// UnresolvedError reports a system name that matches nothing in the universe.
type UnresolvedError struct {
	Name        string
	Suggestions []string
}

func (e *UnresolvedError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown system %q", e.Name)
	}
	return fmt.Sprintf("unknown system %q (did you mean: %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

// ResolveSystem maps user input to a canonical system name, exact match first,
// then the first prefix match.
func ResolveSystem(data *sde.Data, query string) (string, error) {
	if name, ok := data.ResolveSystem(query); ok {
		return name, nil
	}
	return "", &UnresolvedError{Name: strings.TrimSpace(query), Suggestions: data.SuggestSystems(query, suggestionLimit)}
}

// writeResolveError answers 404 with suggestions for unresolved names and 400
// for anything else.
func writeResolveError(w http.ResponseWriter, err error) {
	var ue *UnresolvedError
	if errors.As(err, &ue) {
		suggestions := ue.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		writeJSONStatus(w, http.StatusNotFound, map[string]interface{}{
			"error":       ue.Error(),
			"unresolved":  ue.Name,
			"suggestions": suggestions,
		})
		return
	}
	writeError(w, 400, err.Error())
}

// --- Handlers ---

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	sdeLoaded := s.ready
	var systemCount, regionCount, bridgeCount int
	if s.sdeData != nil {
		systemCount = len(s.sdeData.Systems)
		regionCount = len(s.sdeData.Regions)
		bridgeCount = s.sdeData.JumpbridgeLinks
	}
	s.mu.RUnlock()

	result := map[string]interface{}{
		"sde_loaded":      sdeLoaded,
		"sde_systems":     systemCount,
		"sde_regions":     regionCount,
		"sde_jumpbridges": bridgeCount,
	}
	if s.db != nil {
		if scans, err := s.db.ListScans(); err == nil {
			now := s.now()
			active := 0
			for _, sc := range scans {
				if sc.HasHole() && sc.Active(now) {
					active++
				}
			}
			result["scans"] = len(scans)
			result["active_holes"] = active
		}
	}
	writeJSON(w, result)
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	data, _, ready := s.snapshot()
	if q == "" || !ready {
		writeJSON(w, map[string][]string{"systems": {}})
		return
	}
	result := data.SuggestSystems(q, 15)
	if result == nil {
		result = []string{}
	}
	writeJSON(w, map[string][]string{"systems": result})
}
