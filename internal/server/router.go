package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"fundraiser-display/internal/goals"
	"fundraiser-display/internal/percentage"
	"fundraiser-display/internal/server/middleware"
	"fundraiser-display/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := fmt.Fprint(w, "OK"); err != nil {
			s.logger.Debug().Err(err).Msg("health write failed")
		}
	}).Methods(http.MethodGet)

	s.registerRoutes(r, s.config.APIPrefix)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Idempotency-Key", "X-Platform", "X-App-Version", "X-Session-Id"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	return middleware.Chain(
		middleware.RequestID(s.logger),
		middleware.Logger(),
		middleware.Recovery(),
		c.Handler,
	)(r)
}

// registerRoutes registers the goal and percentage routes under prefix.
// Writes go through the admin guard; reads stay public for the display client.
// Routes sit on the root router so a method mismatch on any of them is a 405.
func (s *Server) registerRoutes(r *mux.Router, prefix string) {
	guard := s.guard

	r.HandleFunc(prefix+"/goals", goals.ListGoalsHandler(s.store)).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/goals", guard.Wrap(goals.CreateGoalHandler(s.store))).Methods(http.MethodPost)
	r.HandleFunc(prefix+"/goals/{id}", guard.Wrap(goals.DeleteGoalHandler(s.store))).Methods(http.MethodDelete)

	r.HandleFunc(prefix+"/percentage", percentage.GetHandler(s.store)).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/percentage/{percentage}", guard.Wrap(percentage.SetHandler(s.store))).Methods(http.MethodPost)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	response.NotFound(w, "Route not found", r.URL.Path)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.MethodNotAllowed(w, r.Method)
}
