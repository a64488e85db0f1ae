package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/matchmaker/internal/roster"
)

// ListUsersHandler returns roster records keyed by name, optionally limited
// to an inclusive wins range.
func ListUsersHandler(store Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		low, err := optionalInt(r, "winLow")
		if err != nil {
			http.Error(w, "winLow must be an integer", http.StatusBadRequest)
			return
		}
		high, err := optionalInt(r, "winHigh")
		if err != nil {
			http.Error(w, "winHigh must be an integer", http.StatusBadRequest)
			return
		}

		players, err := store.GetPlayersByWins(low, high)
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, roster.Records(players))
	}
}

// GetUserHandler returns a single roster player by name.
func GetUserHandler(store Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		player, err := store.GetPlayer(name)
		if errors.Is(err, roster.ErrPlayerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to get player", http.StatusInternalServerError)
			log.Error("Failed to get player from store", "name", name, "error", err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func optionalInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
