package invitation

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Request struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Focus        string    `json:"focus"` // what the applicant creates with AI
	PortfolioURL string    `json:"portfolio_url"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	ErrDuplicateEmail = errors.New("invitation already requested for this email")
	ErrInvalidEmail   = errors.New("invalid email address")
)

func (r *Request) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// NormalizeEmail lowercases and trims, so duplicate detection is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Repository interface {
	Save(ctx context.Context, r *Request) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
