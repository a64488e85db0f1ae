package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/matchmaker/internal/http/handlers"
)

type Server struct {
	Engine         handlers.Matchmaker
	Cycles         handlers.Cycles
	Roster         handlers.Roster
	MetricsHandler http.Handler
	Router         chi.Router
}
