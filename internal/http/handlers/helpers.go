package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchmaker/internal/matchmaking"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps matchmaking errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case matchmaking.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, matchmaking.ErrAlreadyQueued):
		status = http.StatusConflict
	case errors.Is(err, matchmaking.ErrInvalidParticipant):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
