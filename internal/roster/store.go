package roster

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

var _ RosterStore = (*store)(nil)

// New creates a new RosterStore.
func New(db *sql.DB) RosterStore {
	return &store{
		db: db,
	}
}

// UpsertPlayers inserts players or updates the record of existing ones.
func (s *store) UpsertPlayers(players []Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (name, wins, losses) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			wins = excluded.wins,
			losses = excluded.losses;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.Name, p.Wins, p.Losses); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert player %s: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

// GetAllPlayers returns every player in insertion order.
func (s *store) GetAllPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT name, wins, losses FROM players ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

// GetPlayersByWins returns players whose wins lie within the inclusive
// bounds. A nil bound is open; with both nil every player is returned.
func (s *store) GetPlayersByWins(low, high *int) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var conds []string
	var args []any
	if low != nil {
		conds = append(conds, "COALESCE(wins, 0) >= ?")
		args = append(args, *low)
	}
	if high != nil {
		conds = append(conds, "COALESCE(wins, 0) <= ?")
		args = append(args, *high)
	}
	query := "SELECT name, wins, losses FROM players"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rowid"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

// GetPlayer returns a single player by name.
func (s *store) GetPlayer(name string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT name, wins, losses FROM players WHERE name = ?", name)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
		}
		return nil, err
	}
	return &p, nil
}

// Clear removes every player.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM players"); err != nil {
		log.Error("Failed to clear players", "error", err)
		return
	}
	log.Info("Roster cleared")
}

func scanPlayers(rows *sql.Rows) ([]Player, error) {
	players := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// scanPlayer reads one row. Missing wins or losses read as zero.
func scanPlayer(scanner interface{ Scan(...any) error }) (Player, error) {
	var p Player
	var wins, losses sql.NullInt64
	if err := scanner.Scan(&p.Name, &wins, &losses); err != nil {
		return Player{}, err
	}
	p.Wins = int(wins.Int64)
	p.Losses = int(losses.Int64)
	return p, nil
}

// Records indexes players by name, the shape served by the users listing.
func Records(players []Player) map[string]Record {
	out := make(map[string]Record, len(players))
	for _, p := range players {
		out[p.Name] = Record{Wins: p.Wins, Losses: p.Losses}
	}
	return out
}
