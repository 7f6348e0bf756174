package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/weiguanght/adocsync/internal/config"
	"github.com/weiguanght/adocsync/preview"
	"github.com/weiguanght/adocsync/serializer"
)

// Server is the HTTP surface exposing the serialization core to web chrome.
type Server struct {
	router   chi.Router
	ser      *serializer.Serializer
	renderer *preview.Renderer
	log      *zap.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(ser *serializer.Serializer, renderer *preview.Renderer, log *zap.Logger, cfg config.Config) *Server {
	s := &Server{
		ser:      ser,
		renderer: renderer,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Post("/api/serialize", s.handleSerialize)
	r.Post("/api/preview", s.handlePreview)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
