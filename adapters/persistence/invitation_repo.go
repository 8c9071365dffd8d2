package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creatorloop/creatorloop-api/internal/domain/invitation"
)

type postgresInvitationRepo struct {
	db *pgxpool.Pool
}

func NewPostgresInvitationRepo(db *pgxpool.Pool) invitation.Repository {
	return &postgresInvitationRepo{db: db}
}

func (r *postgresInvitationRepo) Save(ctx context.Context, req *invitation.Request) error {
	query := `
		INSERT INTO invitation_requests (id, email, name, focus, portfolio_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		req.ID, req.Email, req.Name, req.Focus, req.PortfolioURL, req.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return invitation.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to save invitation request: %w", err)
	}
	return nil
}

func (r *postgresInvitationRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM invitation_requests WHERE email = $1)`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check invitation request: %w", err)
	}
	return exists, nil
}
