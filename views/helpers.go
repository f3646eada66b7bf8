package views

import (
	"time"

	"github.com/AdamBeresnev/billiards-league/internal/admin"
	"github.com/AdamBeresnev/billiards-league/internal/identity"
)

// Page carries what every page needs besides its own content.
type Page struct {
	Title     string
	State     admin.State
	Identity  *identity.Identity
	Flash     string
	Error     string
	Providers []string
	DevLogin  bool
}

func (p Page) CanEdit() bool {
	return p.State.CanEdit()
}

// ProgressClass flags players who have faced too few of the league.
func ProgressClass(progress int) string {
	if progress <= 70 {
		return "progress-low"
	}
	return "progress-ok"
}

func ResultLabel(won bool) string {
	if won {
		return "W"
	}
	return "L"
}

func FormatPlayedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
