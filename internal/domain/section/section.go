package section

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

type SectionType string

const (
	TypeAbout            SectionType = "about"
	TypeLinks            SectionType = "links"
	TypeSkills           SectionType = "skills"
	TypeLearningGoals    SectionType = "learning_goals"
	TypeFeaturedProjects SectionType = "featured_projects"
	TypeStorefront       SectionType = "storefront"
	TypeFeaturedContent  SectionType = "featured_content"
	TypeBattleStats      SectionType = "battle_stats"
	TypeRecentBattles    SectionType = "recent_battles"
	TypeCustom           SectionType = "custom"
)

// Section is one titled, typed, orderable, independently visible unit of a
// creator's profile page. Content is a tagged union keyed by Type.
type Section struct {
	ID        uuid.UUID   `json:"id"`
	OwnerID   uuid.UUID   `json:"owner_id"`
	Type      SectionType `json:"type"`
	Title     string      `json:"title"`
	Content   Content     `json:"content"`
	Visible   bool        `json:"visible"`
	Position  int         `json:"position"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

var (
	ErrSectionNotFound     = errors.New("section not found")
	ErrUnknownSectionType  = errors.New("unknown section type")
	ErrContentTypeMismatch = errors.New("content does not match section type")
	ErrSingletonExists     = errors.New("section type allows only one instance per profile")
	ErrTypeNotAllowed      = errors.New("section type is not available for this role or tier")
	ErrOrderMismatch       = errors.New("reorder ids do not match the profile's sections")
)

func (s *Section) Validate() error {
	if _, ok := Metadata(s.Type); !ok {
		return ErrUnknownSectionType
	}
	if s.Content == nil {
		return errors.New("content is required")
	}
	if s.Content.SectionType() != s.Type {
		return ErrContentTypeMismatch
	}
	return s.Content.Validate()
}

// SortByPosition orders sections ascending by Position. The sort is stable so
// duplicated positions keep their relative array order.
func SortByPosition(sections []*Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Position < sections[j].Position
	})
}

// VisibleOnly is the public render path: hidden sections are dropped.
func VisibleOnly(sections []*Section) []*Section {
	out := make([]*Section, 0, len(sections))
	for _, s := range sections {
		if s.Visible {
			out = append(out, s)
		}
	}
	return out
}

// Reindex reassigns positions to the current array order, 0-based and
// contiguous.
func Reindex(sections []*Section) {
	for i, s := range sections {
		s.Position = i
	}
}

// HasType reports whether a section of the given type already exists.
func HasType(sections []*Section, t SectionType) bool {
	for _, s := range sections {
		if s.Type == t {
			return true
		}
	}
	return false
}

// ApplyOrder rearranges sections into the order given by ids and reindexes
// positions. The ids must be exactly the section ids, no more, no fewer.
func ApplyOrder(sections []*Section, ids []uuid.UUID) ([]*Section, error) {
	if len(ids) != len(sections) {
		return nil, ErrOrderMismatch
	}
	byID := make(map[uuid.UUID]*Section, len(sections))
	for _, s := range sections {
		byID[s.ID] = s
	}
	out := make([]*Section, 0, len(sections))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id %s", ErrOrderMismatch, id)
		}
		delete(byID, id)
		out = append(out, s)
	}
	Reindex(out)
	return out, nil
}

// InsertAt splices sec into sections at index and reindexes. An index past the
// end appends.
func InsertAt(sections []*Section, sec *Section, index int) []*Section {
	if index < 0 {
		index = 0
	}
	if index > len(sections) {
		index = len(sections)
	}
	out := make([]*Section, 0, len(sections)+1)
	out = append(out, sections[:index]...)
	out = append(out, sec)
	out = append(out, sections[index:]...)
	Reindex(out)
	return out
}

type Repository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Section, error)
	FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*Section, error)
	Save(ctx context.Context, s *Section) error
	Update(ctx context.Context, s *Section) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	// UpdatePositions persists a full re-index: position i is assigned to
	// orderedIDs[i].
	UpdatePositions(ctx context.Context, ownerID uuid.UUID, orderedIDs []uuid.UUID) error
}
