package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creatorloop/creatorloop-api/internal/domain/battle"
	"github.com/creatorloop/creatorloop-api/internal/domain/project"
	"github.com/creatorloop/creatorloop-api/internal/domain/section"
	"github.com/creatorloop/creatorloop-api/internal/domain/user"
	"github.com/creatorloop/creatorloop-api/internal/render"
	"github.com/creatorloop/creatorloop-api/pkg/apperror"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

// Cache holds assembled public profiles. Implementations may drop entries at
// any time; a miss is never an error.
type Cache interface {
	GetProfile(ctx context.Context, username string) (*PublicProfile, bool)
	SetProfile(ctx context.Context, username string, p *PublicProfile, ttl time.Duration)
	Invalidate(ctx context.Context, username string)
}

// ProfileUseCase assembles the public profile view and handles the core
// social-link updates that live on the user record rather than in section
// content.
type ProfileUseCase struct {
	userRepo    user.Repository
	sectionRepo section.Repository
	battles     battle.Client
	projects    project.Client
	renderer    *render.BlockRenderer
	cache       Cache
	logger      logger.Logger
}

func NewProfileUseCase(
	userRepo user.Repository,
	sectionRepo section.Repository,
	battles battle.Client,
	projects project.Client,
	renderer *render.BlockRenderer,
	cache Cache,
	log logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		userRepo:    userRepo,
		sectionRepo: sectionRepo,
		battles:     battles,
		projects:    projects,
		renderer:    renderer,
		cache:       cache,
		logger:      log,
	}
}

// ResolvedLink is one link on the rendered profile, core or custom, with its
// icon already decided.
type ResolvedLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Core  bool   `json:"core"`
}

// SectionView is one visible, non-empty section prepared for display.
// Exactly one of the enrichment fields is set, depending on Type.
type SectionView struct {
	ID      uuid.UUID           `json:"id"`
	Type    section.SectionType `json:"type"`
	Title   string              `json:"title"`
	Content section.Content     `json:"content,omitempty"`

	Links        []ResolvedLink    `json:"links,omitempty"`         // links sections
	BattleStats  *battle.Stats     `json:"battle_stats,omitempty"`  // battle_stats sections
	Battles      []battle.Battle   `json:"battles,omitempty"`       // recent_battles sections
	Projects     []project.Project `json:"projects,omitempty"`      // featured_projects sections
	RenderedHTML string            `json:"rendered_html,omitempty"` // custom sections
}

type PublicProfile struct {
	Username    string        `json:"username"`
	DisplayName *string       `json:"display_name"`
	AvatarURL   *string       `json:"avatar_url"`
	Role        user.Role     `json:"role"`
	Sections    []SectionView `json:"sections"`
}

const profileCacheTTL = 2 * time.Minute

// GetPublicProfile builds the view-mode profile: visible sections only,
// ascending position, empty sections omitted, links merged, battle sections
// enriched live (and silently omitted when the battles service fails),
// custom blocks rendered to sanitized HTML.
func (uc *ProfileUseCase) GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	if uc.cache != nil {
		if cached, ok := uc.cache.GetProfile(ctx, username); ok {
			return cached, nil
		}
	}

	u, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("profile", username)
		}
		return nil, apperror.NewInternal("failed to load profile owner", err)
	}

	sections, err := uc.sectionRepo.ListByOwner(ctx, u.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load profile sections", err)
	}
	visible := section.VisibleOnly(sections)
	section.SortByPosition(visible)

	profile := &PublicProfile{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Role:        u.Role,
		Sections:    make([]SectionView, 0, len(visible)),
	}

	// Battle and project sections each share one upstream call.
	var battleSummary *battle.Summary
	var battleFetched bool
	var projectIndex map[string]project.Project
	var projectsFetched bool

	for _, s := range visible {
		if s.Content == nil {
			continue
		}
		// Battle payloads never report empty here; their emptiness is decided
		// by the live fetch below. Links sections with no custom links can
		// still render the core social links, so they skip this check too.
		if s.Content.Empty() && s.Type != section.TypeLinks {
			continue
		}

		view := SectionView{ID: s.ID, Type: s.Type, Title: uc.sectionTitle(s), Content: s.Content}

		switch s.Type {
		case section.TypeLinks:
			view.Links = mergeLinks(u.SocialLinks, s.Content.(*section.LinksContent))
			if len(view.Links) == 0 {
				continue
			}
		case section.TypeBattleStats, section.TypeRecentBattles:
			if !battleFetched {
				battleFetched = true
				battleSummary = uc.fetchBattles(ctx, username)
			}
			if battleSummary == nil {
				// Cosmetic fetch failed: drop the section, keep the page.
				continue
			}
			if s.Type == section.TypeBattleStats {
				statsCopy := battleSummary.Stats
				view.BattleStats = &statsCopy
			} else {
				max := s.Content.(*section.RecentBattlesContent).MaxBattles
				battles := battleSummary.Battles
				if max > 0 && len(battles) > max {
					battles = battles[:max]
				}
				if len(battles) == 0 {
					continue
				}
				view.Battles = battles
			}
		case section.TypeFeaturedProjects:
			if !projectsFetched {
				projectsFetched = true
				projectIndex = uc.fetchProjects(ctx, username)
			}
			if projectIndex == nil {
				// Cosmetic fetch failed: drop the section, keep the page.
				continue
			}
			for _, id := range s.Content.(*section.FeaturedProjectsContent).ProjectIDs {
				if p, ok := projectIndex[id]; ok {
					view.Projects = append(view.Projects, p)
				}
			}
			if len(view.Projects) == 0 {
				continue
			}
		case section.TypeCustom:
			view.RenderedHTML = uc.renderer.RenderBlocks(s.Content.(*section.CustomContent).Blocks)
			if view.RenderedHTML == "" {
				continue
			}
		}

		profile.Sections = append(profile.Sections, view)
	}

	if uc.cache != nil {
		uc.cache.SetProfile(ctx, username, profile, profileCacheTTL)
	}
	return profile, nil
}

func (uc *ProfileUseCase) sectionTitle(s *section.Section) string {
	if s.Type == section.TypeCustom && s.Title != "" {
		return s.Title
	}
	if m, ok := section.Metadata(s.Type); ok {
		return m.Title
	}
	return s.Title
}

// fetchProjects loads the owner's projects keyed by id. The client has
// already deduplicated across the showcase and playground buckets.
func (uc *ProfileUseCase) fetchProjects(ctx context.Context, username string) map[string]project.Project {
	listed, err := uc.projects.ListByUsername(ctx, username)
	if err != nil {
		uc.logger.Warn("Projects fetch failed, omitting project sections",
			zap.String("username", username), zap.Error(err))
		return nil
	}
	index := make(map[string]project.Project, len(listed))
	for _, p := range listed {
		index[p.ID] = p
	}
	return index
}

func (uc *ProfileUseCase) fetchBattles(ctx context.Context, username string) *battle.Summary {
	summary, err := uc.battles.Summary(ctx, username)
	if err != nil {
		uc.logger.Warn("Battles summary fetch failed, omitting battle sections",
			zap.String("username", username), zap.Error(err))
		return nil
	}
	return summary
}

type UpdateSocialLinksInput struct {
	OwnerID uuid.UUID
	Patch   user.SocialLinks
}

// UpdateSocialLinks merges the non-nil fields of the patch into the user's
// core links. Failures surface to the caller; this is a user-initiated save.
func (uc *ProfileUseCase) UpdateSocialLinks(ctx context.Context, input UpdateSocialLinksInput) (*user.SocialLinks, error) {
	u, err := uc.userRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.OwnerID.String())
		}
		return nil, apperror.NewInternal("failed to load user", err)
	}

	merged := u.SocialLinks.Merge(input.Patch)
	if err := uc.userRepo.UpdateSocialLinks(ctx, input.OwnerID, merged); err != nil {
		return nil, apperror.NewInternal("failed to save social links", err)
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, u.Username)
	}
	return &merged, nil
}

// mergeLinks lays out the core social links in their fixed order, then the
// section's custom links. Custom links without an explicit icon get one
// inferred from their url.
func mergeLinks(core user.SocialLinks, content *section.LinksContent) []ResolvedLink {
	var out []ResolvedLink
	add := func(label, icon string, url *string) {
		if url == nil || *url == "" {
			return
		}
		out = append(out, ResolvedLink{Label: label, URL: *url, Icon: icon, Core: true})
	}
	add("Website", section.IconGlobe, core.Website)
	add("GitHub", "github", core.GitHub)
	add("LinkedIn", "linkedin", core.LinkedIn)
	add("Twitter", "twitter", core.Twitter)
	add("YouTube", "youtube", core.YouTube)
	add("Instagram", "instagram", core.Instagram)

	for _, l := range content.Links {
		icon := l.Icon
		if icon == "" {
			icon = section.DetectPlatform(l.URL)
		}
		out = append(out, ResolvedLink{Label: l.Label, URL: l.URL, Icon: icon})
	}
	return out
}
