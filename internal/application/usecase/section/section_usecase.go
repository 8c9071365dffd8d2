package section

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creatorloop/creatorloop-api/adapters/event"
	"github.com/creatorloop/creatorloop-api/internal/domain/section"
	"github.com/creatorloop/creatorloop-api/internal/domain/user"
	"github.com/creatorloop/creatorloop-api/pkg/apperror"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

// SectionUseCase owns every mutation of a profile's section list: add,
// update, delete, reorder, visibility, plus the add-picker listing. It never
// decides persistence details; those live behind section.Repository.
type SectionUseCase struct {
	sectionRepo section.Repository
	publisher   event.Publisher
	logger      logger.Logger
}

func NewSectionUseCase(repo section.Repository, pub event.Publisher, log logger.Logger) *SectionUseCase {
	return &SectionUseCase{
		sectionRepo: repo,
		publisher:   pub,
		logger:      log,
	}
}

func (uc *SectionUseCase) ListSections(ctx context.Context, ownerID uuid.UUID) ([]*section.Section, error) {
	sections, err := uc.sectionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	section.SortByPosition(sections)
	return sections, nil
}

type AddSectionInput struct {
	OwnerID        uuid.UUID
	Type           section.SectionType
	AfterSectionID *uuid.UUID
	Role           user.Role
	Tier           user.Tier
}

// AddSection creates a section of the requested type with its default
// content, enforcing role/tier gating and singleton rules, and places it at
// the end or right after the anchor section.
func (uc *SectionUseCase) AddSection(ctx context.Context, input AddSectionInput) (*section.Section, error) {
	existing, err := uc.sectionRepo.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	section.SortByPosition(existing)

	if err := section.CanAdd(input.Type, existing, input.Role, input.Tier); err != nil {
		switch {
		case errors.Is(err, section.ErrUnknownSectionType):
			return nil, apperror.NewInvalidInput("unknown section type", err)
		case errors.Is(err, section.ErrSingletonExists):
			return nil, apperror.NewConflict("section", "type", string(input.Type))
		default:
			return nil, apperror.NewPermissionDenied(err.Error())
		}
	}

	now := time.Now().UTC()
	newSection := &section.Section{
		ID:        uuid.New(),
		OwnerID:   input.OwnerID,
		Type:      input.Type,
		Content:   section.DefaultContent(input.Type),
		Visible:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	insertAt := len(existing)
	if input.AfterSectionID != nil {
		for i, s := range existing {
			if s.ID == *input.AfterSectionID {
				insertAt = i + 1
				break
			}
		}
	}
	reordered := section.InsertAt(existing, newSection, insertAt)

	if err := uc.sectionRepo.Save(ctx, newSection); err != nil {
		return nil, err
	}
	if err := uc.sectionRepo.UpdatePositions(ctx, input.OwnerID, sectionIDs(reordered)); err != nil {
		return nil, err
	}

	uc.publish(event.SectionEventPayload{
		EventType:   event.SectionEventTypeCreated,
		SectionID:   newSection.ID,
		OwnerID:     input.OwnerID,
		SectionType: string(input.Type),
	})

	return newSection, nil
}

type UpdateSectionInput struct {
	SectionID  uuid.UUID
	OwnerID    uuid.UUID
	Title      *string
	RawContent json.RawMessage
}

// UpdateSection replaces a section's content wholesale. The payload is
// decoded against the stored section's type, so a payload of a different
// shape is rejected before anything is written.
func (uc *SectionUseCase) UpdateSection(ctx context.Context, input UpdateSectionInput) (*section.Section, error) {
	s, err := uc.sectionRepo.FindByID(ctx, input.SectionID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.RawContent != nil {
		content, err := section.UnmarshalContent(s.Type, input.RawContent)
		if err != nil {
			return nil, apperror.NewInvalidInput("content does not match section type", err)
		}
		s.Content = content
	}
	if input.Title != nil && s.Type == section.TypeCustom {
		s.Title = *input.Title
	}

	s.Content.Normalize()
	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("section validation failed", err)
	}
	s.UpdatedAt = time.Now().UTC()

	if err := uc.sectionRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	uc.publish(event.SectionEventPayload{
		EventType:   event.SectionEventTypeUpdated,
		SectionID:   s.ID,
		OwnerID:     s.OwnerID,
		SectionType: string(s.Type),
	})

	return s, nil
}

func (uc *SectionUseCase) DeleteSection(ctx context.Context, id, ownerID uuid.UUID) error {
	s, err := uc.sectionRepo.FindByID(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := uc.sectionRepo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	// Close the gap the deleted section left behind.
	remaining, err := uc.sectionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	section.SortByPosition(remaining)
	if err := uc.sectionRepo.UpdatePositions(ctx, ownerID, sectionIDs(remaining)); err != nil {
		return err
	}

	uc.publish(event.SectionEventPayload{
		EventType:   event.SectionEventTypeDeleted,
		SectionID:   id,
		OwnerID:     ownerID,
		SectionType: string(s.Type),
	})
	return nil
}

type ReorderInput struct {
	OwnerID    uuid.UUID
	OrderedIDs []uuid.UUID
}

// ReorderSections applies a full permutation of the owner's section ids and
// reassigns contiguous positions starting at 0.
func (uc *SectionUseCase) ReorderSections(ctx context.Context, input ReorderInput) ([]*section.Section, error) {
	sections, err := uc.sectionRepo.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	reordered, err := section.ApplyOrder(sections, input.OrderedIDs)
	if err != nil {
		return nil, apperror.NewInvalidInput("reorder ids must match the profile's sections exactly", err)
	}

	if err := uc.sectionRepo.UpdatePositions(ctx, input.OwnerID, sectionIDs(reordered)); err != nil {
		return nil, err
	}

	uc.publish(event.SectionEventPayload{
		EventType: event.SectionEventTypeReordered,
		OwnerID:   input.OwnerID,
	})
	return reordered, nil
}

// ToggleVisibility flips the section's visible flag. Nothing cascades.
func (uc *SectionUseCase) ToggleVisibility(ctx context.Context, id, ownerID uuid.UUID) (*section.Section, error) {
	s, err := uc.sectionRepo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	s.Visible = !s.Visible
	s.UpdatedAt = time.Now().UTC()

	if err := uc.sectionRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	uc.publish(event.SectionEventPayload{
		EventType:   event.SectionEventTypeUpdated,
		SectionID:   s.ID,
		OwnerID:     s.OwnerID,
		SectionType: string(s.Type),
	})
	return s, nil
}

// AvailableTypes builds the add-picker for the caller's role and tier.
func (uc *SectionUseCase) AvailableTypes(ctx context.Context, ownerID uuid.UUID, role user.Role, tier user.Tier) ([]section.PickerEntry, error) {
	existing, err := uc.sectionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return section.AvailableTypes(existing, role, tier), nil
}

func (uc *SectionUseCase) publish(payload event.SectionEventPayload) {
	if uc.publisher == nil {
		return
	}
	go func() {
		if err := uc.publisher.PublishSectionEvent(context.Background(), payload); err != nil {
			uc.logger.Warn("Failed to publish section event",
				zap.String("event_type", payload.EventType),
				zap.String("owner_id", payload.OwnerID.String()),
				zap.Error(err))
		}
	}()
}

func sectionIDs(sections []*section.Section) []uuid.UUID {
	ids := make([]uuid.UUID, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}
