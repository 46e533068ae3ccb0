package tournament

import "errors"

var (
	errNoDatabase = errors.New("db connection is nil")

	ErrNotEnoughPlayers   = errors.New("not enough players for match")
	ErrInvalidMatchShape  = errors.New("teams per match and players per team must be positive")
	ErrInvalidRoundsCount = errors.New("rounds count must be positive")
	ErrTeamNotPersisted   = errors.New("team has no id")
)
