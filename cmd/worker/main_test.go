package main

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorloop/creatorloop-api/adapters/event"
	"github.com/creatorloop/creatorloop-api/internal/domain/section"
	"github.com/creatorloop/creatorloop-api/internal/domain/user"
)

type stubUserRepo struct {
	byID map[uuid.UUID]*user.User
}

func (r *stubUserRepo) FindByEmail(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *stubUserRepo) UpdateSocialLinks(context.Context, uuid.UUID, user.SocialLinks) error {
	return nil
}

type stubInvalidator struct {
	invalidated []string
}

func (s *stubInvalidator) Invalidate(_ context.Context, username string) {
	s.invalidated = append(s.invalidated, username)
}

type stubRefresher struct {
	err   error
	calls int
}

func (s *stubRefresher) RefreshSnapshots(context.Context, uuid.UUID) error {
	s.calls++
	return s.err
}

func TestProcess_InvalidatesCacheFromPayloadUsername(t *testing.T) {
	cache := &stubInvalidator{}
	p := &sectionEventProcessor{
		userRepo:   &stubUserRepo{},
		cache:      cache,
		storefront: &stubRefresher{},
	}

	err := p.process(context.Background(), event.SectionEventPayload{
		EventType:   event.SectionEventTypeUpdated,
		OwnerID:     uuid.New(),
		SectionType: string(section.TypeAbout),
		Username:    "ada",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ada"}, cache.invalidated)
}

func TestProcess_ResolvesUsernameWhenPayloadOmitsIt(t *testing.T) {
	ownerID := uuid.New()
	cache := &stubInvalidator{}
	p := &sectionEventProcessor{
		userRepo:   &stubUserRepo{byID: map[uuid.UUID]*user.User{ownerID: {ID: ownerID, Username: "ada"}}},
		cache:      cache,
		storefront: &stubRefresher{},
	}

	err := p.process(context.Background(), event.SectionEventPayload{
		EventType:   event.SectionEventTypeDeleted,
		OwnerID:     ownerID,
		SectionType: string(section.TypeLinks),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ada"}, cache.invalidated)
}

func TestProcess_StorefrontRefreshFailureIsAnError(t *testing.T) {
	refresher := &stubRefresher{err: errors.New("marketplace down")}
	p := &sectionEventProcessor{
		userRepo:   &stubUserRepo{},
		cache:      &stubInvalidator{},
		storefront: refresher,
	}

	err := p.process(context.Background(), event.SectionEventPayload{
		EventType:   event.SectionEventTypeUpdated,
		OwnerID:     uuid.New(),
		SectionType: string(section.TypeStorefront),
		Username:    "ada",
	})
	// The caller keeps the offset uncommitted on error, so the event is
	// redelivered and the refresh retried.
	require.Error(t, err)
	assert.Equal(t, 1, refresher.calls)
}

func TestProcess_NonStorefrontSkipsRefresh(t *testing.T) {
	refresher := &stubRefresher{}
	p := &sectionEventProcessor{
		userRepo:   &stubUserRepo{},
		cache:      &stubInvalidator{},
		storefront: refresher,
	}

	err := p.process(context.Background(), event.SectionEventPayload{
		EventType:   event.SectionEventTypeCreated,
		OwnerID:     uuid.New(),
		SectionType: string(section.TypeSkills),
		Username:    "ada",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, refresher.calls)
}
