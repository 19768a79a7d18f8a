// Package api serves the parser over HTTP as JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapverb/internal/engine"
	"github.com/leapstack-labs/leapverb/pkg/grammar"
	"github.com/leapstack-labs/leapverb/pkg/parser"
)

// maxCommandBytes bounds the request body of /v1/parse.
const maxCommandBytes = 4 << 10

// Server exposes an engine over HTTP.
type Server struct {
	engine *engine.Engine
	addr   string
	watch  bool
	events *Notifier
	logger *slog.Logger
}

// Config holds configuration for the API server.
type Config struct {
	Engine *engine.Engine
	Addr   string
	Watch  bool
	Logger *slog.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		engine: cfg.Engine,
		addr:   cfg.Addr,
		watch:  cfg.Watch,
		events: NewNotifier(),
		logger: logger,
	}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
	)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Get("/verbs", s.handleVerbs)
		r.Get("/transcript", s.handleTranscript)
		r.Post("/reload", s.handleReload)
		r.Get("/events", s.handleEvents)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting API server", slog.String("addr", s.addr))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.engine.Watch(egctx, s.onReload)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// ParseRequest is the body of POST /v1/parse.
type ParseRequest struct {
	Command string `json:"command"`
}

// ParseResponse is the reply of POST /v1/parse.
type ParseResponse struct {
	Understood bool      `json:"understood"`
	Output     string    `json:"output"`
	Verb       string    `json:"verb,omitempty"`
	Pattern    string    `json:"pattern,omitempty"`
	Error      string    `json:"error,omitempty"`
	Attempts   []Attempt `json:"attempts,omitempty"`
}

// Attempt is a rejected rule.
type Attempt struct {
	Verb    string `json:"verb"`
	Pattern string `json:"pattern"`
	Reason  string `json:"reason"`
}

// VerbInfo describes one verb in GET /v1/verbs.
type VerbInfo struct {
	Words []string   `json:"words"`
	Rules []RuleInfo `json:"rules"`
}

// RuleInfo describes one rule.
type RuleInfo struct {
	Pattern string `json:"pattern"`
	Action  string `json:"action"`
}

// TurnInfo is one transcript entry.
type TurnInfo struct {
	Seq        int       `json:"seq"`
	Command    string    `json:"command"`
	Output     string    `json:"output"`
	Understood bool      `json:"understood"`
	CreatedAt  time.Time `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommandBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	res := s.engine.Exec(r.Context(), req.Command)
	s.logger.Debug("parsed command",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("command", req.Command),
		slog.Bool("understood", res.Understood))

	writeJSON(w, http.StatusOK, NewParseResponse(res))
}

// NewParseResponse converts a parser result to its JSON form.
func NewParseResponse(res parser.Result) ParseResponse {
	resp := ParseResponse{
		Understood: res.Understood,
		Output:     res.Output,
		Verb:       res.Verb,
		Pattern:    res.Pattern,
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	for _, a := range res.Attempts {
		resp.Attempts = append(resp.Attempts, Attempt{Verb: a.Verb, Pattern: a.Pattern, Reason: a.Err.Error()})
	}
	return resp
}

func (s *Server) handleVerbs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, NewVerbInfos(s.engine.Grammar()))
}

// NewVerbInfos describes every verb of g in declaration order.
func NewVerbInfos(g *grammar.Grammar) []VerbInfo {
	verbs := g.Verbs()
	out := make([]VerbInfo, 0, len(verbs))
	for _, v := range verbs {
		info := VerbInfo{Words: v.Words, Rules: make([]RuleInfo, 0, len(v.Rules))}
		for _, r := range v.Rules {
			info.Rules = append(info.Rules, RuleInfo{Pattern: r.Pattern, Action: r.Action.Name()})
		}
		out = append(out, info)
	}
	return out
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	turns, err := s.engine.Store().Transcript(r.Context(), s.engine.SessionID())
	if err != nil {
		s.logger.Error("failed to read transcript", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read transcript"})
		return
	}
	out := make([]TurnInfo, 0, len(turns))
	for _, t := range turns {
		out = append(out, TurnInfo{
			Seq:        t.Seq,
			Command:    t.Command,
			Output:     t.Output,
			Understood: t.Understood,
			CreatedAt:  t.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
