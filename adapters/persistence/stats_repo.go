package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creatorloop/creatorloop-api/internal/domain/stats"
)

type postgresStatsRepo struct {
	db *pgxpool.Pool
}

func NewPostgresStatsRepo(db *pgxpool.Pool) stats.Source {
	return &postgresStatsRepo{db: db}
}

func (r *postgresStatsRepo) PlatformStats(ctx context.Context) (*stats.PlatformStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'creator'),
			(SELECT COUNT(*) FROM profile_sections WHERE type = 'featured_projects'),
			(SELECT COALESCE(SUM(points), 0) FROM creator_points)
	`
	s := &stats.PlatformStats{}
	err := r.db.QueryRow(ctx, query).Scan(&s.ActiveCreators, &s.ProjectsShared, &s.PointsEarned)
	if err != nil {
		return nil, fmt.Errorf("failed to compute platform stats: %w", err)
	}
	return s, nil
}
