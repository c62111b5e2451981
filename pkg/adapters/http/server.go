package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/aretw0/transposer"
	"github.com/aretw0/transposer/internal/logging"
	"github.com/aretw0/transposer/internal/metrics"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/aretw0/transposer/pkg/ports"
	"github.com/aretw0/transposer/pkg/runner"
	"github.com/go-chi/chi/v5"
)

// KeyRequest is a key as clients send it. Tonic accepts "Bb" as well as "B♭".
type KeyRequest struct {
	Tonic string `json:"tonic"`
	Mode  string `json:"mode"`
}

// TransposeRequest is the body of POST /transpose.
type TransposeRequest struct {
	Text string       `json:"text"`
	From KeyRequest   `json:"from"`
	To   []KeyRequest `json:"to"`
}

// TransposeResult is one destination of a TransposeResponse.
type TransposeResult struct {
	Destination domain.Destination `json:"destination"`
	Text        string             `json:"text,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// TransposeResponse is returned by POST /transpose.
type TransposeResponse struct {
	Annotations int               `json:"annotations"`
	Truncated   bool              `json:"truncated"`
	UnmatchedAt int               `json:"unmatched_at"`
	Results     []TransposeResult `json:"results"`
}

// ScaleResponse is returned by GET /scales/{tonic}.
type ScaleResponse struct {
	Key        domain.Key `json:"key"`
	Convention string     `json:"convention"`
	Notes      []string   `json:"notes"`
}

// KeyMapResponse is returned by GET /keymap.
type KeyMapResponse struct {
	From    domain.Key           `json:"from"`
	To      domain.Key           `json:"to"`
	Entries []domain.KeyMapEntry `json:"entries"`
}

// Server serves the transposition core over HTTP.
type Server struct {
	Engine  *transposer.Engine
	Sink    ports.Sink
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithEngine enables the piece endpoints, which run batch transpositions.
func WithEngine(e *transposer.Engine) Option {
	return func(s *Server) { s.Engine = e }
}

// WithSink enables reading stored results.
func WithSink(sink ports.Sink) Option {
	return func(s *Server) { s.Sink = sink }
}

// WithMetrics records transpositions and serves GET /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.Metrics = m }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// NewHandler creates the HTTP handler.
func NewHandler(opts ...Option) http.Handler {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/transpose", s.Transpose)
	r.Get("/scales/{tonic}", s.GetScale)
	r.Get("/keymap", s.GetKeyMap)

	if s.Engine != nil {
		r.Post("/pieces/{piece}/runs", s.RunPiece)
	}
	if s.Sink != nil {
		r.Get("/pieces/{piece}/results", s.ListResults)
		r.Get("/pieces/{piece}/results/{destination}", s.GetResult)
	}
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "transposer-http",
		"version": transposer.Version,
	})
}

// Transpose handles the POST /transpose request.
func (s *Server) Transpose(w http.ResponseWriter, r *http.Request) {
	var body TransposeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		s.Logger.Warn("Transpose: Invalid request body", "err", err)
		return
	}

	from, err := parseKey(body.From.Tonic, body.From.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("from: %w", err))
		return
	}
	if len(body.To) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("to: at least one destination key is required"))
		return
	}
	dests := make([]domain.Destination, 0, len(body.To))
	for i, k := range body.To {
		key, err := parseKey(k.Tonic, k.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("to[%d]: %w", i, err))
			return
		}
		dests = append(dests, domain.NewDestination(key))
	}

	opts := []runner.Option{runner.WithLogger(s.Logger)}
	if s.Metrics != nil {
		opts = append(opts, runner.WithLifecycleHooks(s.Metrics.Hooks()))
	}
	a := &domain.Analysis{Piece: "request", Key: from, Body: body.Text}
	report, err := runner.NewRunner(opts...).Run(r.Context(), a, dests)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	resp := TransposeResponse{
		Annotations: report.Annotations,
		Truncated:   report.Truncated,
		UnmatchedAt: report.UnmatchedAt,
		Results:     collectResults(report, dests),
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetScale handles the GET /scales/{tonic}?mode= request.
func (s *Server) GetScale(w http.ResponseWriter, r *http.Request) {
	tonic, err := url.PathUnescape(chi.URLParam(r, "tonic"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	key, err := parseKey(tonic, r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	scale, err := key.Scale()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, ScaleResponse{
		Key:        key,
		Convention: domain.ConventionFor(key.Tonic, key.Major()).String(),
		Notes:      scale.Strings(),
	})
}

// GetKeyMap handles the GET /keymap?from=&to=&mode= request.
func (s *Server) GetKeyMap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseKey(q.Get("from"), q.Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("from: %w", err))
		return
	}
	to, err := parseKey(q.Get("to"), q.Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("to: %w", err))
		return
	}

	origScale, err := from.Scale()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	destScale, err := to.Scale()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, KeyMapResponse{
		From:    from,
		To:      to,
		Entries: domain.BuildKeyMap(origScale, destScale).Entries(),
	})
}

// RunPiece handles the POST /pieces/{piece}/runs request.
func (s *Server) RunPiece(w http.ResponseWriter, r *http.Request) {
	piece := chi.URLParam(r, "piece")
	report, err := s.Engine.Run(r.Context(), piece)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	dests := make([]domain.Destination, 0, len(report.Results)+len(report.Failures))
	for _, res := range report.Results {
		dests = append(dests, res.Destination)
	}
	for _, f := range report.Failures {
		dests = append(dests, f.Destination)
	}
	writeJSON(w, http.StatusOK, TransposeResponse{
		Annotations: report.Annotations,
		Truncated:   report.Truncated,
		UnmatchedAt: report.UnmatchedAt,
		Results:     collectResults(report, dests),
	})
}

// ListResults handles the GET /pieces/{piece}/results request.
func (s *Server) ListResults(w http.ResponseWriter, r *http.Request) {
	names, err := s.Sink.List(r.Context(), chi.URLParam(r, "piece"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"destinations": names})
}

// GetResult handles the GET /pieces/{piece}/results/{destination} request.
func (s *Server) GetResult(w http.ResponseWriter, r *http.Request) {
	res, err := s.Sink.Read(r.Context(), chi.URLParam(r, "piece"), chi.URLParam(r, "destination"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func collectResults(report *runner.Report, dests []domain.Destination) []TransposeResult {
	byName := make(map[string]TransposeResult, len(dests))
	for _, res := range report.Results {
		byName[res.Destination.Name] = TransposeResult{Destination: res.Destination, Text: res.Text}
	}
	for _, f := range report.Failures {
		byName[f.Destination.Name] = TransposeResult{Destination: f.Destination, Error: f.Err.Error()}
	}

	out := make([]TransposeResult, 0, len(dests))
	for _, d := range dests {
		if res, ok := byName[d.Name]; ok {
			out = append(out, res)
			delete(byName, d.Name)
		}
	}
	return out
}

func parseKey(tonic, mode string) (domain.Key, error) {
	m, err := domain.ParseMode(mode)
	if err != nil {
		return domain.Key{}, err
	}
	return domain.NewKey(tonic, m.IsMajor())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrPieceNotFound), errors.Is(err, ports.ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownKey), errors.Is(err, domain.ErrUnmappedNote), errors.Is(err, domain.ErrMissingKey):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
