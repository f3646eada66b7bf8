package league

import "errors"

// Business rule violations. These are detected before the store is written to and
// their messages are shown to the user as is.
var (
	ErrMissingField    = errors.New("winner, loser and score are all required")
	ErrSamePlayer      = errors.New("the winner and the loser cannot be the same player")
	ErrAlreadyPlayed   = errors.New("these two players have already played each other")
	ErrPlayerHasGames  = errors.New("a player with recorded games cannot be deleted")
	ErrMissingPlayer   = errors.New("player name and handicap are both required")
	ErrInvalidHandicap = errors.New("handicap must be a non-negative whole number")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrGameNotFound    = errors.New("game not found")
)
