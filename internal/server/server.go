package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/raysh454/a11ylens/internal/app"
	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/model"
	_ "github.com/raysh454/a11ylens/internal/server/docs" // registers the OpenAPI document
)

const maxBodyBytes = 1 << 20

var ErrNilRunner = errors.New("server: runner is required")

// Runner is the slice of app.Runner the API needs.
type Runner interface {
	RunRequest(ctx context.Context, req model.AnalysisRequest, events chan<- app.RunEvent) *model.RunOutcome
	Guidelines(ctx context.Context) ([]model.Guideline, error)
	Health(ctx context.Context) (string, error)
	APIKeySet() bool
	APIKeyStatus() string
	Backend() string
}

// Server is the HTTP + WebSocket API surface.
type Server struct {
	cfg      Config
	runner   Runner
	router   chi.Router
	upgrader websocket.Upgrader
	logger   logging.Logger
}

// NewServer creates a Server around runner.
func NewServer(cfg Config, runner Runner) (*Server, error) {
	if runner == nil {
		return nil, ErrNilRunner
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}
	logger = logger.With(logging.Field{Key: "component", Value: "server"})

	s := &Server{
		cfg:    cfg,
		runner: runner,
		router: chi.NewRouter(),
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return cfg.AllowedOrigin == "" || r.Header.Get("Origin") == cfg.AllowedOrigin
			},
		},
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	r.Options("/analyze", s.optionsHandler("POST"))
	r.Options("/status", s.optionsHandler("GET"))
	r.Options("/health", s.optionsHandler("GET"))
	r.Options("/guidelines", s.optionsHandler("GET"))

	r.Get("/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/guidelines", s.handleGuidelines)

	r.Get("/ws/analyze", s.handleAnalyzeWS)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	origin := s.cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && r.Method == http.MethodPost {
		if bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes)); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0, // allow streaming
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := s.HTTPServer()
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", logging.Field{Key: "addr", Value: srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// --- HTTP handlers ---

// handleStatus godoc
// @Summary Fetch backend status
// @Description Reports the configured fetch backend and whether the Firecrawl API key is set.
// @Tags status
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /status [get]
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		FirecrawlAPIKeySet: s.runner.APIKeySet(),
		Message:            s.runner.APIKeyStatus(),
		Backend:            s.runner.Backend(),
	})
}

// handleHealth godoc
// @Summary Analyzer health
// @Tags status
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, err := s.runner.Health(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: status, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: status})
}

// handleAnalyze godoc
// @Summary Analyze a page
// @Description Fetches the page, tallies accessibility issues and optionally attaches WCAG guideline links.
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Target page"
// @Success 200 {object} model.RunOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /analyze [post]
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body AnalyzeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.logger.Warn("decoding analyze body", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	body.URL = strings.TrimSpace(body.URL)
	if body.URL == "" {
		writeError(w, http.StatusBadRequest, "missing url")
		return
	}

	out := s.runner.RunRequest(r.Context(), body.toModel(), nil)
	if out.Failed() {
		writeError(w, http.StatusUnprocessableEntity, out.ErrMessage)
		return
	}
	s.logger.Info("analyzed page",
		logging.Field{Key: "url", Value: body.URL},
		logging.Field{Key: "total_issues", Value: out.Result.Report.Total()})
	writeJSON(w, http.StatusOK, out)
}

// handleGuidelines godoc
// @Summary WCAG guideline links
// @Tags guidelines
// @Produce json
// @Success 200 {object} GuidelinesResponse
// @Failure 502 {object} ErrorResponse
// @Router /guidelines [get]
func (s *Server) handleGuidelines(w http.ResponseWriter, r *http.Request) {
	gs, err := s.runner.Guidelines(r.Context())
	if err != nil {
		s.logger.Warn("looking up guidelines", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if gs == nil {
		gs = []model.Guideline{}
	}
	writeJSON(w, http.StatusOK, GuidelinesResponse{Guidelines: gs})
}

// WebSockets

// handleAnalyzeWS godoc
// @Summary Stream an analysis run
// @Description Upgrades to a WebSocket and sends one RunEvent per stage; the last event carries the outcome.
// @Tags analysis
// @Param url query string true "Target page"
// @Param guidelines query bool false "Attach guideline links (default true)"
// @Failure 400 {object} ErrorResponse
// @Router /ws/analyze [get]
func (s *Server) handleAnalyzeWS(w http.ResponseWriter, r *http.Request) {
	target := strings.TrimSpace(r.URL.Query().Get("url"))
	if target == "" {
		writeError(w, http.StatusBadRequest, "missing url query parameter")
		return
	}
	req := model.AnalysisRequest{URL: target, Guidelines: true}
	if g := r.URL.Query().Get("guidelines"); g != "" {
		v, err := strconv.ParseBool(g)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid guidelines query parameter")
			return
		}
		req.Guidelines = v
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events := make(chan app.RunEvent, 8)
	go func() {
		defer close(events)
		s.runner.RunRequest(ctx, req, events)
	}()

	for ev := range events {
		if err := conn.WriteJSON(ev); err != nil {
			// Client went away; stop the run and drain.
			s.logger.Debug("websocket write failed", logging.Field{Key: "error", Value: err.Error()})
			cancel()
			for range events {
			}
			return
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
