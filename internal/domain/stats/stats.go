package stats

import "context"

// PlatformStats are the aggregate counters shown on the landing page. They
// are cosmetic: a failed refresh serves the last cached value, never an
// error.
type PlatformStats struct {
	ActiveCreators int64 `json:"active_creators"`
	ProjectsShared int64 `json:"projects_shared"`
	PointsEarned   int64 `json:"points_earned"`
}

// Source computes fresh counters, typically straight from the database.
type Source interface {
	PlatformStats(ctx context.Context) (*PlatformStats, error)
}
