package league

import (
	"strings"
	"time"
)

const (
	WinPoints  = 3
	LossPoints = 1

	// A winner whose handicap is at least this much lower than the loser's earns a bonus point.
	BonusHandicapGap = 3
)

type Game struct {
	ID         int64     `db:"id" json:"id"`
	PlayedAt   time.Time `db:"played_at" json:"played_at"`
	WinnerName string    `db:"winner_name" json:"winner_name"`
	LoserName  string    `db:"loser_name" json:"loser_name"`
	Score      string    `db:"score" json:"score"`
	Bonus      int       `db:"bonus" json:"bonus"`
}

// Bonus returns the bonus a winner earns over a loser: 1 when the winner overcame
// a handicap deficit of at least BonusHandicapGap, otherwise 0.
func Bonus(winnerHandicap, loserHandicap int) int {
	if winnerHandicap+BonusHandicapGap <= loserHandicap {
		return 1
	}
	return 0
}

func (g *Game) Involves(name string) bool {
	return g.WinnerName == name || g.LoserName == name
}

func (g *Game) WonBy(name string) bool {
	return g.WinnerName == name
}

// Opponent returns the other player of the game from name's point of view.
func (g *Game) Opponent(name string) string {
	if g.WinnerName == name {
		return g.LoserName
	}
	return g.WinnerName
}

// IsPairing reports whether the game was played between a and b, in either order.
func (g *Game) IsPairing(a, b string) bool {
	return (g.WinnerName == a && g.LoserName == b) || (g.WinnerName == b && g.LoserName == a)
}

// HasPlayed reports whether any of games was played between a and b.
func HasPlayed(games []Game, a, b string) bool {
	for i := range games {
		if games[i].IsPairing(a, b) {
			return true
		}
	}
	return false
}

// ValidateResult checks a submitted result before anything is written.
func ValidateResult(winner, loser, score string) error {
	if strings.TrimSpace(winner) == "" || strings.TrimSpace(loser) == "" || strings.TrimSpace(score) == "" {
		return ErrMissingField
	}
	if winner == loser {
		return ErrSamePlayer
	}
	return nil
}
