package roster

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrPlayerNotFound is returned when a player name is not in the roster.
var ErrPlayerNotFound = errors.New("player not found")

// store handles all database operations for the roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is a roster entry with its win/loss record.
type Player struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Record is the win/loss pair reported per player by the users listing.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}
