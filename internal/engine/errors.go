package engine

import "errors"

var (
	// ErrEmptyName is returned when somebody tries to join without a name.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrNotEnoughPlayers is returned when the game is started with fewer
	// than MinPlayers participants.
	ErrNotEnoughPlayers = errors.New("at least two players are needed to start")
)
