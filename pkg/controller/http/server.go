package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roomlab/roomboard/pkg/domain/model"
	"github.com/roomlab/roomboard/pkg/usecase"
	"github.com/roomlab/roomboard/pkg/utils/logging"
)

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	hub      *Hub
	clientID string
	room     model.Room
}

type Options func(*Server)

// WithRooms sets the configured rooms. The dashboard serves the first entry.
func WithRooms(rooms []model.Room) Options {
	return func(s *Server) {
		if len(rooms) > 0 {
			s.room = rooms[0]
		}
	}
}

func New(uc *usecase.UseCases, clientID string, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:   r,
		uc:       uc,
		hub:      NewHub(),
		clientID: clientID,
		room:     model.DefaultRoom,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.homeHandler)
	r.Post("/signin", s.signinHandler)
	r.Post("/logout", s.logoutHandler)
	r.Get("/calendar", s.calendarHandler)
	r.Get("/oauth2callback", s.oauthCallbackHandler)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Hub exposes the channel registry, mainly for lifecycle checks in tests.
func (s *Server) Hub() *Hub {
	return s.hub
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
