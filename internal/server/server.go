package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/go-lyric-tokenizer/internal/config"
	"github.com/example/go-lyric-tokenizer/internal/text"
	"github.com/example/go-lyric-tokenizer/internal/tokenizer"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// Codec is the part of *tokenizer.Codec the handler needs.
type Codec interface {
	Canonicalize(raw string) string
	EncodeCanonical(canonical string) ([]int64, error)
	Decode(ids []int64) (string, error)
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes int
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes: 16384,
		logger:       slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum request body size in bytes.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	codec    Codec
	pipeline *text.Pipeline
	opts     options
	log      *slog.Logger
}

// NewHandler returns an http.Handler that serves /health and POST /normalize,
// /encode and /decode.
func NewHandler(codec Codec, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		codec:    codec,
		pipeline: text.NewPipeline(opts.logger),
		opts:     opts,
		log:      opts.logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/normalize", h.handleNormalize)
	mux.HandleFunc("/encode", h.handleEncode)
	mux.HandleFunc("/decode", h.handleDecode)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

type textRequest struct {
	Text  string `json:"text"`
	Stage string `json:"stage,omitempty"`
}

type textResponse struct {
	Text string `json:"text"`
}

type idsRequest struct {
	IDs []int64 `json:"ids"`
}

type encodeResponse struct {
	IDs  []int64 `json:"ids"`
	Text string  `json:"text"`
}

// decodeBody reads a JSON request body of at most maxTextBytes. It writes the
// error response itself and reports whether the handler may continue.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return false
	}

	body := http.MaxBytesReader(w, r.Body, int64(h.opts.maxTextBytes))
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds maximum size of %d bytes", h.opts.maxTextBytes))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func (h *handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text field is required")
		return
	}

	stage, err := text.ParseStage(req.Stage)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	out := h.pipeline.RunTo(req.Text, stage)

	h.log.InfoContext(r.Context(), "normalize complete",
		slog.String("stage", string(stage)),
		slog.Int("text_len", len(req.Text)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	writeJSON(w, http.StatusOK, textResponse{Text: out})
}

func (h *handler) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text field is required")
		return
	}

	start := time.Now()
	canonical := h.codec.Canonicalize(req.Text)
	ids, err := h.codec.EncodeCanonical(canonical)
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		h.log.ErrorContext(r.Context(), "encode failed",
			slog.Int("text_len", len(req.Text)),
			slog.Int64("duration_ms", durationMS),
			slog.String("error", err.Error()),
		)

		var unknown *tokenizer.UnknownSymbolError
		if errors.As(err, &unknown) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.InfoContext(r.Context(), "encode complete",
		slog.Int("text_len", len(req.Text)),
		slog.Int("ids", len(ids)),
		slog.Int64("duration_ms", durationMS),
	)

	writeJSON(w, http.StatusOK, encodeResponse{IDs: ids, Text: canonical})
}

func (h *handler) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	out, err := h.codec.Decode(req.IDs)
	if err != nil {
		h.log.WarnContext(r.Context(), "decode failed",
			slog.Int("ids", len(req.IDs)),
			slog.String("error", err.Error()),
		)

		var invalid *tokenizer.InvalidIDError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.InfoContext(r.Context(), "decode complete",
		slog.Int("ids", len(req.IDs)),
		slog.Int("text_len", len(out)),
	)

	writeJSON(w, http.StatusOK, textResponse{Text: out})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server — wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	codec           *tokenizer.Codec
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New returns a Server for cfg. When codec is nil, Start loads one from
// cfg.Paths.
func New(cfg config.Config, codec *tokenizer.Codec) *Server {
	return &Server{
		cfg:             cfg,
		codec:           codec,
		logger:          slog.Default(),
		shutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// WithLogger overrides the logger passed to the handler and codec.
func (s *Server) WithLogger(l *slog.Logger) *Server {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *Server) Start(ctx context.Context) error {
	codec, err := s.loadCodec()
	if err != nil {
		return err
	}

	h := NewHandler(codec,
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithLogger(s.logger),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info("server listening",
		slog.String("addr", s.cfg.Server.ListenAddr),
		slog.Int("vocab_size", codec.VocabSize()),
	)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

func (s *Server) loadCodec() (*tokenizer.Codec, error) {
	if s.codec != nil {
		return s.codec, nil
	}

	codec, err := tokenizer.NewCodec(s.cfg.Paths.VocabPath,
		tokenizer.WithFormat(s.cfg.Paths.VocabFormat),
		tokenizer.WithCharLimit(s.cfg.Text.CharLimit),
		tokenizer.WithLogger(s.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize codec: %w", err)
	}
	return codec, nil
}

func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
