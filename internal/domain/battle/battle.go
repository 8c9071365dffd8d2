package battle

import (
	"context"
	"time"
)

// Stats is the aggregate record the battles service keeps per username.
type Stats struct {
	TotalBattles  int     `json:"total_battles"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"win_rate"`
	CurrentStreak int     `json:"current_streak"`
	BestStreak    int     `json:"best_streak"`
	Rank          string  `json:"rank"`
	Points        int     `json:"points"`
}

type Battle struct {
	ID        string    `json:"id"`
	Opponent  string    `json:"opponent"`
	Result    string    `json:"result"` // win, loss, draw
	Mode      string    `json:"mode"`
	FoughtAt  time.Time `json:"fought_at"`
	PointsWon int       `json:"points_won"`
}

// Summary is what GET /users/{username}/battles returns: the stats block and
// the recent battle list, newest first.
type Summary struct {
	Stats   Stats    `json:"stats"`
	Battles []Battle `json:"battles"`
}

// Client is the battles service collaborator. Fetch failures on the profile
// render path are cosmetic: callers log and omit the section, never error.
type Client interface {
	Summary(ctx context.Context, username string) (*Summary, error)
}
