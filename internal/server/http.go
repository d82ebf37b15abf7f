package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/phishguard/outlook-threat-reporter/internal/adapters/outlook"
	"github.com/phishguard/outlook-threat-reporter/internal/config"
	"github.com/phishguard/outlook-threat-reporter/internal/core"
	"github.com/phishguard/outlook-threat-reporter/internal/factory"
)

// reportActionRequest is the command event the add-in task pane posts.
// Option keys are decimal indices; the add-in gives no ordering guarantee.
type reportActionRequest struct {
	Options   map[string]bool `json:"options"`
	ItemID    string          `json:"itemId"`
	UserEmail string          `json:"userEmail"`
}

// reportActionResponse is the completion signal returned to the add-in
type reportActionResponse struct {
	AllowEvent bool `json:"allowEvent"`
}

// Server exposes the command handler to the add-in over HTTP
type Server struct {
	handler *core.CommandHandler
	tokens  *factory.TokenFactory
	logger  *zap.Logger
	cfg     config.ServerConfig
	httpSrv *http.Server
}

// NewServer creates the HTTP command surface
func NewServer(handler *core.CommandHandler, tokens *factory.TokenFactory, logger *zap.Logger, cfg *config.Config) *Server {
	return &Server{
		handler: handler,
		tokens:  tokens,
		logger:  logger,
		cfg:     cfg.GetServer(),
	}
}

// Routes builds the chi router for the command surface
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// The task pane calls cross-origin from the Outlook web client
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/v1/commands/report", s.handleReportAction)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReportAction runs one command event to completion and relays the
// single completion signal back to the add-in.
func (s *Server) handleReportAction(w http.ResponseWriter, r *http.Request) {
	var req reportActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("Malformed report action request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	event := core.CommandEvent{Options: parseOptions(req.Options)}
	session := outlook.NewItemSession(req.ItemID, req.UserEmail)
	tokens := s.tokens.ForAssertion(bearerToken(r))

	s.handler.Handle(r.Context(), event, tokens, session, func(result core.CommandResult) {
		writeJSON(w, http.StatusOK, reportActionResponse{AllowEvent: result.AllowEvent})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         s.cfg.ListenAddress,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.logger.Info("Command server starting", zap.String("address", s.cfg.ListenAddress))

	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the HTTP server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// parseOptions converts the wire option map into index-keyed flags.
// Non-numeric keys are dropped.
func parseOptions(raw map[string]bool) map[int]bool {
	options := make(map[int]bool, len(raw))
	for key, value := range raw {
		index, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		options[index] = value
	}
	return options
}

// bearerToken extracts the add-in's SSO assertion from the request
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
