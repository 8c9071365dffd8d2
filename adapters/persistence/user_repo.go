package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/creatorloop/creatorloop-api/internal/domain/user"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

type postgresUserRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresUserRepo(db *pgxpool.Pool, log logger.Logger) user.Repository {
	return &postgresUserRepo{db: db, logger: log}
}

const userColumns = "id, username, email, display_name, avatar_url, role, tier, social_links, password_hash"

func (r *postgresUserRepo) scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	var role, tier string
	var socialLinksBytes []byte

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.DisplayName,
		&u.AvatarURL,
		&role,
		&tier,
		&socialLinksBytes,
		&u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}

	u.Role = user.Role(role)
	u.Tier = user.Tier(tier)
	if len(socialLinksBytes) > 0 {
		if err := json.Unmarshal(socialLinksBytes, &u.SocialLinks); err != nil {
			r.logger.Warn("Failed to unmarshal social_links", zap.String("user_id", u.ID.String()), zap.Error(err))
			u.SocialLinks = user.SocialLinks{}
		}
	}
	return u, nil
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *postgresUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *postgresUserRepo) UpdateSocialLinks(ctx context.Context, id uuid.UUID, links user.SocialLinks) error {
	linksBytes, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("failed to marshal social_links: %w", err)
	}

	query := `UPDATE users SET social_links = $2, updated_at = NOW() WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, linksBytes)
	if err != nil {
		return fmt.Errorf("failed to update social_links: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
