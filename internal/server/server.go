package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/cv-studio/internal/config"
	"github.com/jonathan/cv-studio/internal/cv"
	"github.com/jonathan/cv-studio/internal/db"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/pdf"
	"github.com/jonathan/cv-studio/internal/server/middleware"
)

// Exporter renders a CV document to PDF bytes.
type Exporter interface {
	Export(ctx context.Context, doc *cv.Document) ([]byte, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         *config.Config
	db          DBClient
	llm         llm.Client
	models      *llm.Config
	exporter    Exporter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// New creates a server wired to a real database, generation backend and PDF
// renderer. The generation client is nil when no API key is configured;
// generation endpoints then answer 503 instead of failing at startup.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var llmClient llm.Client
	if cfg.GeminiAPIKey != "" {
		llmClient, err = llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create generation client: %w", err)
		}
	} else {
		log.Println("[server] GEMINI_API_KEY not set, generation endpoints disabled")
	}

	return build(cfg, database, llmClient, pdf.NewChromeExporter()), nil
}

// build assembles the server from its dependencies. Tests call it directly
// with fakes.
func build(cfg *config.Config, database DBClient, llmClient llm.Client, exporter Exporter) *Server {
	s := &Server{
		cfg:      cfg,
		db:       database,
		llm:      llmClient,
		models:   llm.DefaultConfig(),
		exporter: exporter,
	}

	passwordConfig := cfg.Password
	s.userService = NewUserService(database, passwordConfig)
	s.jwtService = NewJWTService(cfg.JWT)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.withLogging(s.withCORS(s.router())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// router assembles the route table. Everything except registration, login and
// the health check sits behind the JWT middleware.
func (s *Server) router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	authed := http.NewServeMux()
	authed.HandleFunc("PUT /auth/password", s.authHandler.UpdatePassword)

	authed.HandleFunc("POST /cvs", s.handleCreateCV)
	authed.HandleFunc("GET /cvs", s.handleListCVs)
	authed.HandleFunc("GET /cvs/{id}", s.handleGetCV)
	authed.HandleFunc("PUT /cvs/{id}", s.handleUpdateCV)
	authed.HandleFunc("DELETE /cvs/{id}", s.handleDeleteCV)

	authed.HandleFunc("POST /generate", s.handleGenerate)
	authed.HandleFunc("POST /cvs/{id}/merge", s.handleMerge)
	authed.HandleFunc("POST /cvs/{id}/tailor", s.handleTailor)
	authed.HandleFunc("GET /cvs/{id}/export.pdf", s.handleExportPDF)

	authed.HandleFunc("GET /admin/stats", s.handleAdminStats)

	auth := middleware.Auth(s.jwtService.AsTokenValidator())
	mux.Handle("/", auth(authed))

	return mux
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] error: %v", err)
		}
	}()

	<-stop
	log.Println("[server] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.llm != nil {
		if err := s.llm.Close(); err != nil {
			log.Printf("[server] closing generation client: %v", err)
		}
	}
	if closer, ok := s.db.(interface{ Close() }); ok {
		closer.Close()
	}
	log.Println("[server] stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorJSON writes an error JSON response
func errorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
