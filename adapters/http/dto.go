package http

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/creatorloop/creatorloop-api/internal/domain/section"
	"github.com/creatorloop/creatorloop-api/internal/domain/user"
)

// Section DTOs

type SectionDTO struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title,omitempty"`
	Content   section.Content `json:"content"`
	Visible   bool            `json:"visible"`
	Position  int             `json:"position"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func ToSectionDTO(s *section.Section) SectionDTO {
	return SectionDTO{
		ID:        s.ID.String(),
		Type:      string(s.Type),
		Title:     s.Title,
		Content:   s.Content,
		Visible:   s.Visible,
		Position:  s.Position,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func ToSectionDTOs(sections []*section.Section) []SectionDTO {
	dtos := make([]SectionDTO, len(sections))
	for i, s := range sections {
		dtos[i] = ToSectionDTO(s)
	}
	return dtos
}

type AddSectionRequest struct {
	Type           string  `json:"type" binding:"required"`
	AfterSectionID *string `json:"after_section_id"`
}

type UpdateSectionRequest struct {
	Title   *string         `json:"title"`
	Content json.RawMessage `json:"content"`
}

type ReorderRequest struct {
	SectionIDs []string `json:"section_ids" binding:"required"`
}

func (r *ReorderRequest) ToUUIDs() ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(r.SectionIDs))
	for i, raw := range r.SectionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

type PickerEntryDTO struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Icon         string `json:"icon,omitempty"`
	Singleton    bool   `json:"singleton"`
	RequiresRole string `json:"requires_role,omitempty"`
	RequiresTier string `json:"requires_tier,omitempty"`
	Disabled     bool   `json:"disabled"`
}

func ToPickerEntryDTO(e section.PickerEntry) PickerEntryDTO {
	return PickerEntryDTO{
		Type:         string(e.Type),
		Title:        e.Title,
		Description:  e.Description,
		Icon:         e.Icon,
		Singleton:    e.Singleton,
		RequiresRole: string(e.RequiresRole),
		RequiresTier: string(e.RequiresTier),
		Disabled:     e.Disabled,
	}
}

// Social link DTOs

type UpdateSocialLinksRequest struct {
	Website   *string `json:"website"`
	GitHub    *string `json:"github"`
	LinkedIn  *string `json:"linkedin"`
	Twitter   *string `json:"twitter"`
	YouTube   *string `json:"youtube"`
	Instagram *string `json:"instagram"`
}

func (r *UpdateSocialLinksRequest) ToDomainPatch() user.SocialLinks {
	return user.SocialLinks{
		Website:   r.Website,
		GitHub:    r.GitHub,
		LinkedIn:  r.LinkedIn,
		Twitter:   r.Twitter,
		YouTube:   r.YouTube,
		Instagram: r.Instagram,
	}
}

// Storefront DTOs

type AddStorefrontItemRequest struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Badge     string  `json:"badge"`
	Category  string  `json:"category"`
	ImageURL  string  `json:"image_url"`
}

type CheckoutRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Creator   string  `json:"creator"`
	ImageURL  string  `json:"image_url"`
}

// Invitation DTOs

type RequestInvitationRequest struct {
	Email        string `json:"email" binding:"required"`
	Name         string `json:"name"`
	Focus        string `json:"focus"`
	PortfolioURL string `json:"portfolio_url"`
	BotToken     string `json:"bot_token"`
}

// Auth DTOs

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
