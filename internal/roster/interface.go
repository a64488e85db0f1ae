package roster

// RosterStore defines the interface for interacting with the participant roster.
type RosterStore interface {
	UpsertPlayers(players []Player) error
	GetAllPlayers() ([]Player, error)
	GetPlayersByWins(low, high *int) ([]Player, error)
	GetPlayer(name string) (*Player, error)
	Clear()
}
