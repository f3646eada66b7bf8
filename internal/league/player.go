package league

import (
	"strconv"
	"strings"
)

type Player struct {
	Name     string `db:"name" json:"name"`
	Handicap int    `db:"handicap" json:"handicap"`
}

// PlayerSummary is a registered player plus whether any game mentions them.
// Players with history cannot be deleted.
type PlayerSummary struct {
	Player
	HasGameHistory bool `db:"has_game_history" json:"has_game_history"`
}

// ParseHandicap reads a handicap typed into a form.
func ParseHandicap(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrMissingPlayer
	}
	handicap, err := strconv.Atoi(raw)
	if err != nil || handicap < 0 {
		return 0, ErrInvalidHandicap
	}
	return handicap, nil
}
