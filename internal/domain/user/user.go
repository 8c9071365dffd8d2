package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Role string

const (
	RoleMember  Role = "member"
	RoleCreator Role = "creator"
)

type Tier string

const (
	TierFree     Tier = "free"
	TierCuration Tier = "curation"
)

// SocialLinks are the core links that live on the user record itself,
// separate from any links section content. Nil means "not set".
type SocialLinks struct {
	Website   *string `json:"website,omitempty"`
	GitHub    *string `json:"github,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	YouTube   *string `json:"youtube,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
}

// Merge applies the non-nil fields of patch on top of the receiver.
func (s SocialLinks) Merge(patch SocialLinks) SocialLinks {
	if patch.Website != nil {
		s.Website = patch.Website
	}
	if patch.GitHub != nil {
		s.GitHub = patch.GitHub
	}
	if patch.LinkedIn != nil {
		s.LinkedIn = patch.LinkedIn
	}
	if patch.Twitter != nil {
		s.Twitter = patch.Twitter
	}
	if patch.YouTube != nil {
		s.YouTube = patch.YouTube
	}
	if patch.Instagram != nil {
		s.Instagram = patch.Instagram
	}
	return s
}

type User struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	DisplayName  *string     `json:"display_name"`
	AvatarURL    *string     `json:"avatar_url"`
	Role         Role        `json:"role"`
	Tier         Tier        `json:"tier"`
	SocialLinks  SocialLinks `json:"social_links"`
	PasswordHash string      `json:"-"`
}

var ErrUserNotFound = errors.New("user not found")

func (r Role) Valid() bool {
	return r == RoleMember || r == RoleCreator
}

func (t Tier) Valid() bool {
	return t == TierFree || t == TierCuration
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateSocialLinks(ctx context.Context, id uuid.UUID, links SocialLinks) error
}
