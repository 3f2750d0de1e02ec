// Package server exposes the verifier to the training loop as an HTTP JSON
// API: per-example and batch scoring, health, and Prometheus metrics.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	m "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/logging"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/rewarder"
)

// #region wire-types

// VerifyRequest is one example to score.
type VerifyRequest struct {
	ExampleID       string   `json:"example_id,omitempty"`
	DishIngredients []string `json:"dish_ingredients"`
	Reasoning       string   `json:"reasoning"`
	FinalVerdict    string   `json:"final_verdict"`
}

// VerifyResponse is the scored result, echoing the example ID.
type VerifyResponse struct {
	ExampleID string `json:"example_id,omitempty"`
	rewarder.VerificationResult
}

// VerifyBatchRequest wraps a sequence of examples.
type VerifyBatchRequest struct {
	Examples []VerifyRequest `json:"examples"`
}

// VerifyBatchResponse carries results in request order.
type VerifyBatchResponse struct {
	Results []VerifyResponse `json:"results"`
}

type errResp struct {
	Error string `json:"error"`
}

// #endregion wire-types

// #region server

// Server wires a Rewarder behind the HTTP API. The rewarder's resolved
// state is immutable, so handlers share it without coordination.
type Server struct {
	rewarder   *rewarder.Rewarder
	scoreLog   *logging.Logger // nil disables provenance logging
	metrics    *Metrics
	activeKeys []string
}

// New creates a server for the given rewarder. scoreLog may be nil.
func New(r *rewarder.Rewarder, scoreLog *logging.Logger) *Server {
	active := r.Active()
	keys := make([]string, len(active))
	for i, def := range active {
		keys[i] = def.Key
	}
	return &Server{
		rewarder:   r,
		scoreLog:   scoreLog,
		metrics:    NewMetrics(),
		activeKeys: keys,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(m.RequestID, m.RealIP, m.Logger, m.Recoverer)

	r.Post("/verify", s.handleVerify)
	r.Post("/verify/batch", s.handleVerifyBatch)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	return r
}

// #endregion server

// #region handlers

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: fmt.Sprintf("decode request: %v", err)})
		return
	}
	if err := validate(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.score(req))
}

func (s *Server) handleVerifyBatch(w http.ResponseWriter, r *http.Request) {
	var req VerifyBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: fmt.Sprintf("decode request: %v", err)})
		return
	}
	if len(req.Examples) == 0 {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "batch has no examples"})
		return
	}
	for i, ex := range req.Examples {
		if err := validate(ex); err != nil {
			writeJSON(w, http.StatusBadRequest, errResp{Error: fmt.Sprintf("example %d: %v", i, err)})
			return
		}
	}

	resp := VerifyBatchResponse{Results: make([]VerifyResponse, len(req.Examples))}
	for i, ex := range req.Examples {
		resp.Results[i] = s.score(ex)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// #endregion handlers

// #region scoring

// validate rejects what the lenient core would silently misread. The
// library treats unknown verdicts as SAFE claims; at the API boundary that
// leniency would let garbage score as SAFE, so it is a 400 here.
func validate(req VerifyRequest) error {
	if !rewarder.KnownVerdict(req.FinalVerdict) {
		return fmt.Errorf("final_verdict must be SAFE or UNSAFE, got %q", req.FinalVerdict)
	}
	return nil
}

func (s *Server) score(req VerifyRequest) VerifyResponse {
	result := s.rewarder.Verify(req.DishIngredients, req.Reasoning, req.FinalVerdict)
	s.metrics.observe(result.FormatOK, result.VerdictCorrect, result.Reward)

	if s.scoreLog != nil {
		record := logging.ScoreRecord{
			ExampleID:         req.ExampleID,
			DishIngredients:   req.DishIngredients,
			FinalVerdict:      req.FinalVerdict,
			ReasoningChars:    len(req.Reasoning),
			ActiveConstraints: s.activeKeys,
			Reward:            result.Reward,
			FormatOK:          result.FormatOK,
			ReasoningQuality:  result.ReasoningQuality,
			VerdictCorrect:    result.VerdictCorrect,
			ViolationsFound:   result.ViolationsFound,
			ViolationsMissed:  result.ViolationsMissed,
		}
		if err := s.scoreLog.Log(record); err != nil {
			log.Printf("score log error: %v", err)
		}
	}

	return VerifyResponse{ExampleID: req.ExampleID, VerificationResult: result}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// #endregion scoring
