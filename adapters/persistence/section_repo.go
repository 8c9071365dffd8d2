package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/creatorloop/creatorloop-api/internal/domain/section"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

type postgresSectionRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSectionRepo(db *pgxpool.Pool, log logger.Logger) section.Repository {
	return &postgresSectionRepo{db: db, logger: log}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const sectionColumns = "id, owner_id, type, title, content, visible, position, created_at, updated_at"

func (r *postgresSectionRepo) scanSection(row pgx.Row) (*section.Section, error) {
	s := &section.Section{}
	var typeStr string
	var contentBytes []byte

	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&typeStr,
		&s.Title,
		&contentBytes,
		&s.Visible,
		&s.Position,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, section.ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to scan section row: %w", err)
	}

	s.Type = section.SectionType(typeStr)
	content, err := section.UnmarshalContent(s.Type, contentBytes)
	if err != nil {
		// A bad row degrades to default content instead of poisoning the list.
		r.logger.Warn("Failed to decode section content, using default",
			zap.String("section_id", s.ID.String()), zap.Error(err))
		content = section.DefaultContent(s.Type)
	}
	s.Content = content
	return s, nil
}

func (r *postgresSectionRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*section.Section, error) {
	builder := psql.Select(sectionColumns).
		From("profile_sections").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("position ASC")

	sql, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections by owner: %w", err)
	}
	defer rows.Close()

	sections := make([]*section.Section, 0)
	for rows.Next() {
		s, err := r.scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating section rows: %w", err)
	}
	return sections, nil
}

func (r *postgresSectionRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*section.Section, error) {
	query := fmt.Sprintf(`SELECT %s FROM profile_sections WHERE id = $1 AND owner_id = $2`, sectionColumns)
	row := r.db.QueryRow(ctx, query, id, ownerID)
	return r.scanSection(row)
}

func (r *postgresSectionRepo) Save(ctx context.Context, s *section.Section) error {
	contentBytes, err := section.MarshalContent(s.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal section content: %w", err)
	}

	query := `
		INSERT INTO profile_sections (id, owner_id, type, title, content, visible, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.Exec(ctx, query,
		s.ID, s.OwnerID, string(s.Type), s.Title, contentBytes,
		s.Visible, s.Position, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save section: %w", err)
	}
	return nil
}

func (r *postgresSectionRepo) Update(ctx context.Context, s *section.Section) error {
	contentBytes, err := section.MarshalContent(s.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal section content: %w", err)
	}

	query := `
		UPDATE profile_sections SET
			title = $2, content = $3, visible = $4, position = $5, updated_at = $6
		WHERE id = $1 AND owner_id = $7
	`
	cmdTag, err := r.db.Exec(ctx, query,
		s.ID, s.Title, contentBytes, s.Visible, s.Position, s.UpdatedAt, s.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update section: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return section.ErrSectionNotFound
	}
	return nil
}

func (r *postgresSectionRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	query := `DELETE FROM profile_sections WHERE id = $1 AND owner_id = $2`
	cmdTag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return section.ErrSectionNotFound
	}
	return nil
}

// UpdatePositions persists a full re-index in one transaction so readers
// never observe a half-applied ordering.
func (r *postgresSectionRepo) UpdatePositions(ctx context.Context, ownerID uuid.UUID, orderedIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reorder transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE profile_sections SET position = $1 WHERE id = $2 AND owner_id = $3`
	for i, id := range orderedIDs {
		if _, err := tx.Exec(ctx, query, i, id, ownerID); err != nil {
			return fmt.Errorf("failed to update position of section %s: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reorder transaction: %w", err)
	}
	return nil
}
