package league

import (
	"cmp"
	"slices"
)

// Standing is the derived view of one player. It is recomputed from the full
// player and game lists on every read and never persisted.
type Standing struct {
	Name      string `json:"name"`
	Handicap  int    `json:"handicap"`
	Rank      int    `json:"rank"`
	GameCount int    `json:"game_count"`
	WinCount  int    `json:"win_count"`
	LossCount int    `json:"loss_count"`
	Bonus     int    `json:"bonus"`
	Points    int    `json:"points"`
	Progress  int    `json:"progress"`
}

type Summary struct {
	PlayerCount        int `json:"player_count"`
	GameCount          int `json:"game_count"`
	TotalPossibleGames int `json:"total_possible_games"`
	Progress           int `json:"progress"`
}

type Table struct {
	Standings []Standing `json:"standings"`
	Summary   Summary    `json:"summary"`
}

// Compute derives the ranked standings and the league summary.
//
// Winners get WinPoints plus the bonus stored on the game, losers get LossPoints.
// Progress is per player: the share of the other registered players already faced.
// Games naming an unregistered player still count towards the league summary.
func Compute(players []Player, games []Game) Table {
	index := make(map[string]int, len(players))
	standings := make([]Standing, len(players))
	opponents := make([]map[string]struct{}, len(players))
	for i, p := range players {
		index[p.Name] = i
		standings[i] = Standing{Name: p.Name, Handicap: p.Handicap}
		opponents[i] = make(map[string]struct{})
	}

	for _, g := range games {
		if i, ok := index[g.WinnerName]; ok {
			s := &standings[i]
			s.GameCount++
			s.WinCount++
			s.Bonus += g.Bonus
			s.Points += WinPoints + g.Bonus
			opponents[i][g.LoserName] = struct{}{}
		}
		if i, ok := index[g.LoserName]; ok {
			s := &standings[i]
			s.GameCount++
			s.LossCount++
			s.Points += LossPoints
			opponents[i][g.WinnerName] = struct{}{}
		}
	}

	others := len(players) - 1
	for i := range standings {
		standings[i].Progress = Percent(len(opponents[i]), others)
	}

	slices.SortStableFunc(standings, func(a, b Standing) int {
		return cmp.Compare(b.Points, a.Points)
	})
	AssignRanks(standings)

	pairings := PossiblePairings(len(players))
	return Table{
		Standings: standings,
		Summary: Summary{
			PlayerCount:        len(players),
			GameCount:          len(games),
			TotalPossibleGames: pairings,
			Progress:           Percent(len(games), pairings),
		},
	}
}

// AssignRanks applies standard competition ranking to standings already sorted by
// points descending: tied players share a rank and the next lower score takes its
// 1-indexed position, so [10 10 8] ranks as [1 1 3].
func AssignRanks(standings []Standing) {
	rank := 1
	for i := range standings {
		if i > 0 && standings[i].Points < standings[i-1].Points {
			rank = i + 1
		}
		standings[i].Rank = rank
	}
}

// PossiblePairings is the number of games a full round robin of n players needs.
func PossiblePairings(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// Percent returns round(100*part/whole) clamped to [0, 100], and 0 when whole is not positive.
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	// half-up rounding in integers
	p := (200*part + whole) / (2 * whole)
	return min(100, p)
}
