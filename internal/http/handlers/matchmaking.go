package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/matchmaker/internal/matchmaking"
)

type enqueueRequest struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

type userQueueResponse struct {
	Count int                       `json:"count"`
	Users []matchmaking.Participant `json:"users"`
}

type teamsResponse struct {
	Count int                      `json:"count"`
	Teams []matchmaking.TeamBucket `json:"teams"`
}

type teamQueueResponse struct {
	Count int      `json:"count"`
	Teams []string `json:"teams"`
}

type matchesResponse struct {
	Count   int                       `json:"count"`
	Matches []matchmaking.MatchBucket `json:"matches"`
}

func UserQueueHandler(engine Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users := engine.UserQueue()
		writeJSON(w, http.StatusOK, userQueueResponse{Count: len(users), Users: users})
	}
}

func EnqueueUserHandler(engine Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enqueueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		p, err := engine.EnqueueUser(req.Name, req.Wins, req.Losses)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func RemoveUserHandler(engine Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := engine.RemoveUser(chi.URLParam(r, "name"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func BuildTeamHandler(cycles Cycles) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, ok := cycles.BuildTeam(IsDryRunFromContext(r))
		if !ok {
			log.Debug("No team formed")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, team)
	}
}

func ListTeamsHandler(engine Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams := engine.TeamBuckets()
		writeJSON(w, http.StatusOK, teamsResponse{Count: len(teams), Teams: teams})
	}
}

func GetTeamHandler(engine Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := engine.TeamBucket(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, team)
	}
}

func TeamQueueHandler(engine Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := engine.TeamQueue()
		writeJSON(w, http.StatusOK, teamQueueResponse{Count: len(ids), Teams: ids})
	}
}

func BuildMatchHandler(cycles Cycles) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, ok := cycles.BuildMatch(IsDryRunFromContext(r))
		if !ok {
			log.Debug("No match formed")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func ListMatchesHandler(engine Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches := engine.Matches()
		writeJSON(w, http.StatusOK, matchesResponse{Count: len(matches), Matches: matches})
	}
}

func GetMatchHandler(engine Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, err := engine.Match(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func DiscardMatchHandler(engine Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := chi.URLParam(r, "id")
		requeue := r.URL.Query().Get("requeue") == "true"
		log.Info("Received request to discard match", "matchID", matchID, "requeue", requeue)
		match, err := engine.DiscardMatch(matchID, requeue)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}
