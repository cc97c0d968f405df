package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/tickerview/internal/display"
	"github.com/aristath/tickerview/internal/lookup"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string  `json:"status"`
	Service     string  `json:"service"`
	AnalysisAPI string  `json:"analysis_api"`
	CPUPercent  float64 `json:"cpu_percent"`
	RAMPercent  float64 `json:"ram_percent"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := s.systemStats()
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Service:     "tickerview",
		AnalysisAPI: s.apiURL,
		CPUPercent:  cpuPercent,
		RAMPercent:  ramPercent,
	})
}

// handleLookup returns the display model for ?symbol= as JSON.
// GET /api/lookup
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	state := s.settle(r.Context(), r.URL.Query().Get("symbol"))
	s.writeJSON(w, statusFor(state), display.Build(state))
}

// handleIndex renders the lookup page. The search text comes from ?q=, with
// ?symbol= accepted as an alias.
// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("q")
	if text == "" {
		text = q.Get("symbol")
	}

	state := s.settle(r.Context(), text)
	s.renderPage(w, statusFor(state), newPage(display.Build(state), s.apiURL))
}

// settle runs one request cycle through the state machine. A non-blank text
// is committed as the symbol; otherwise the default symbol is loaded.
func (s *Server) settle(ctx context.Context, text string) lookup.State {
	state := lookup.New(s.defaultSymbol)
	var fx *lookup.Fetch
	if text != "" {
		state, _ = lookup.Transition(state, lookup.Edited{Text: text})
		state, fx = lookup.Transition(state, lookup.Submitted{})
	}
	if fx == nil {
		state, fx = lookup.Transition(state, lookup.Mounted{})
	}
	return s.runner.Settle(ctx, state, fx)
}

// statusFor maps the settled phase onto an HTTP status.
func statusFor(state lookup.State) int {
	if state.Phase != lookup.PhaseError {
		return http.StatusOK
	}
	if state.ErrorKind == lookup.ErrorLogical {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// systemStats reports host CPU and RAM usage percentages.
func (s *Server) systemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}
	return cpuAvg, memStat.UsedPercent
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
