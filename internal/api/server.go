package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"frontiergen/internal/config"
	"frontiergen/internal/db"
	"frontiergen/internal/engine"
	"frontiergen/internal/export"
	"frontiergen/internal/logger"
)

// Server is the read-only HTTP viewer over the latest computed dataset and
// the run history. It never recomputes anything; main owns the pipeline.
// A nil db is tolerated: the history endpoints answer 503 while the dataset
// endpoints keep working.
type Server struct {
	cfg *config.Config
	db  *db.DB

	mu      sync.RWMutex
	dataset *engine.Dataset
	chart   []byte
}

// NewServer creates a Server over the given config and run-history database.
func NewServer(cfg *config.Config, database *db.DB) *Server {
	return &Server{cfg: cfg, db: database}
}

// SetDataset publishes a freshly computed dataset and pre-renders its chart.
func (s *Server) SetDataset(ds *engine.Dataset) {
	chart, err := export.RenderFrontierChart(ds)
	if err != nil {
		logger.Warn("API", "chart render failed: "+err.Error())
		chart = nil
	}
	s.mu.Lock()
	s.dataset = ds
	s.chart = chart
	s.mu.Unlock()
}

// Handler returns the API route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/dataset", s.handleDataset)
	mux.HandleFunc("GET /api/chart.png", s.handleChart)
	mux.HandleFunc("GET /api/runs", s.handleRuns)
	mux.HandleFunc("GET /api/runs/{id}/frontier", s.handleRunFrontier)
	mux.HandleFunc("GET /api/runs/{id}/assets", s.handleRunAssets)
	return mux
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ready := s.dataset != nil
	s.mu.RUnlock()
	writeJSON(w, map[string]interface{}{"ready": ready})
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ds := s.dataset
	s.mu.RUnlock()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, "no dataset computed yet")
		return
	}
	writeJSON(w, ds)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	chart := s.chart
	s.mu.RUnlock()
	if len(chart) == 0 {
		writeError(w, http.StatusServiceUnavailable, "no chart rendered yet")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(chart)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "run history unavailable")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	runs, err := s.db.RecentRuns(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []db.RunSummary{}
	}
	writeJSON(w, runs)
}

func (s *Server) handleRunFrontier(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "run history unavailable")
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}
	points, err := s.db.RunFrontier(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(points) == 0 {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, points)
}

func (s *Server) handleRunAssets(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "run history unavailable")
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}
	stats, err := s.db.RunAssets(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(stats) == 0 {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, stats)
}
