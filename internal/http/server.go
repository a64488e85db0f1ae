package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mauv0809/matchmaker/internal/http/handlers"
)

func NewServer(engine handlers.Matchmaker, cycles handlers.Cycles, roster handlers.Roster, metricsHandler http.Handler) *Server {
	server := &Server{
		Engine:         engine,
		Cycles:         cycles,
		Roster:         roster,
		MetricsHandler: metricsHandler,
		Router:         chi.NewRouter(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	s.Router.Use(middleware.Recoverer)
	s.Router.Handle("/metrics", s.MetricsHandler)

	// Everything else goes through paramsMiddleware for verbose and dry_run.
	s.Router.Group(func(r chi.Router) {
		r.Use(paramsMiddleware)
		r.Get("/health", handlers.HealthCheckHandler())
		r.Get("/users", handlers.ListUsersHandler(s.Roster))
		r.Get("/users/{name}", handlers.GetUserHandler(s.Roster))

		r.Route("/matchmaking", func(r chi.Router) {
			r.Get("/users/queue", handlers.UserQueueHandler(s.Engine))
			r.Post("/users", handlers.EnqueueUserHandler(s.Engine))
			r.Delete("/users/{name}", handlers.RemoveUserHandler(s.Engine))

			r.Post("/team", handlers.BuildTeamHandler(s.Cycles))
			r.Get("/team", handlers.ListTeamsHandler(s.Engine))
			r.Get("/team/queue", handlers.TeamQueueHandler(s.Engine))
			r.Get("/team/{id}", handlers.GetTeamHandler(s.Engine))

			r.Post("/matches", handlers.BuildMatchHandler(s.Cycles))
			r.Get("/matches", handlers.ListMatchesHandler(s.Engine))
			r.Get("/matches/{id}", handlers.GetMatchHandler(s.Engine))
			r.Delete("/matches/{id}", handlers.DiscardMatchHandler(s.Engine))
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
