package server

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-roadmap/components/jobinsights"
	"github.com/goliatone/go-roadmap/pkg/apispec"
	"github.com/goliatone/go-roadmap/pkg/insights"
	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/renderers/html"
	"github.com/goliatone/go-roadmap/pkg/store"
	"github.com/goliatone/go-roadmap/pkg/wizard"
)

// DefaultVersion is reported by GET / unless WithVersion is given.
const DefaultVersion = "1.0.0"

// History persists generated roadmaps. *store.Store satisfies it.
type History interface {
	Save(ctx context.Context, input model.FormInput, roadmap model.Roadmap) (string, error)
	Get(ctx context.Context, id string) (store.Record, error)
	List(ctx context.Context, limit int) ([]store.Record, error)
}

// Server wires the JSON API and the HTML wizard onto one handler.
type Server struct {
	logger          *zap.Logger
	generator       wizard.Generator
	wizardGenerator wizard.Generator
	doc             *apispec.Document
	catalog         *insights.Catalog
	history         History
	pages           *html.Renderer
	policy          wizard.FallbackPolicy
	origins         []string
	sessionKey      []byte
	sessionTTL      time.Duration
	shutdownGrace   time.Duration
	version         string
	now             func() time.Time

	cookies  *sessions.CookieStore
	sessions *SessionStore
	handler  http.Handler
}

// New builds a Server around generator, which answers POST /generate-roadmap.
func New(generator wizard.Generator, options ...Option) (*Server, error) {
	if generator == nil {
		return nil, errors.New("server: generator is required")
	}
	s := &Server{
		logger:        zap.NewNop(),
		generator:     generator,
		policy:        wizard.FallbackEnabled,
		sessionTTL:    30 * time.Minute,
		shutdownGrace: 10 * time.Second,
		version:       DefaultVersion,
		now:           time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.wizardGenerator == nil {
		s.wizardGenerator = s.generator
	}
	if s.doc == nil {
		doc, err := apispec.Default()
		if err != nil {
			return nil, fmt.Errorf("server: load api document: %w", err)
		}
		s.doc = doc
	}
	if s.catalog == nil {
		s.catalog = insights.New(insights.WithLogger(s.logger))
	}
	if s.pages == nil {
		pages, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("server: build html renderer: %w", err)
		}
		s.pages = pages
	}
	if len(s.sessionKey) == 0 {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("server: generate session key: %w", err)
		}
		s.sessionKey = key
	}

	s.cookies = sessions.NewCookieStore(s.sessionKey)
	s.cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(s.sessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	s.sessions = NewSessionStore(s.newWizardSession, s.sessionTTL, s.now)

	handler, err := s.routes()
	if err != nil {
		return nil, err
	}
	s.handler = handler
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions exposes the wizard session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
// Expired wizard sessions are swept in the background.
func (s *Server) Run(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		s.logger.Info("roadmap server listening", zap.String("addr", listener.Addr().String()))
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownGrace)
		defer cancel()
		s.logger.Info("roadmap server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	group.Go(func() error {
		s.sweep(groupCtx)
		return nil
	})
	return group.Wait()
}

func (s *Server) sweep(ctx context.Context) {
	interval := s.sessionTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.sessions.Sweep(); removed > 0 {
				s.logger.Debug("expired wizard sessions removed", zap.Int("count", removed))
			}
		}
	}
}

func (s *Server) routes() (http.Handler, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.HandleFunc("POST /generate-roadmap", s.handleGenerate)

	if _, err := jobinsights.RegisterRoutes(mux, "/", jobinsights.WithCatalog(s.catalog)); err != nil {
		return nil, fmt.Errorf("server: register insights routes: %w", err)
	}

	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(html.AssetsFS())))
	mux.HandleFunc("GET /wizard", s.handleWizard)
	mux.HandleFunc("POST /wizard/next", s.handleNext)
	mux.HandleFunc("POST /wizard/previous", s.handlePrevious)
	mux.HandleFunc("POST /wizard/submit", s.handleSubmit)
	mux.HandleFunc("POST /wizard/reset", s.handleReset)
	mux.HandleFunc("POST /wizard/save", s.handleSave)
	mux.HandleFunc("GET /roadmaps", s.handleHistory)
	mux.HandleFunc("GET /roadmaps/{id}", s.handleSavedRoadmap)

	var handler http.Handler = mux
	if len(s.origins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   s.origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "Accept"},
			AllowCredentials: true,
		}).Handler(handler)
	}
	return s.logRequests(handler), nil
}

func (s *Server) newWizardSession(entry *SessionEntry) (*wizard.Session, error) {
	return wizard.New(s.wizardGenerator,
		wizard.WithFallbackPolicy(s.policy),
		wizard.WithLogger(s.logger.With(zap.String("session", entry.ID))),
		wizard.WithFallbackObserver(func(wizard.FallbackEvent) {
			entry.MarkFallback()
		}),
	)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(started)))
	})
}
