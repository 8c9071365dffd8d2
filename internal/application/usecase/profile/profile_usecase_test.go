package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorloop/creatorloop-api/internal/domain/battle"
	"github.com/creatorloop/creatorloop-api/internal/domain/project"
	"github.com/creatorloop/creatorloop-api/internal/domain/section"
	"github.com/creatorloop/creatorloop-api/internal/domain/user"
	"github.com/creatorloop/creatorloop-api/internal/render"
	"github.com/creatorloop/creatorloop-api/pkg/apperror"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

type fakeUserRepo struct {
	users map[string]*user.User
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateSocialLinks(_ context.Context, id uuid.UUID, links user.SocialLinks) error {
	for _, u := range r.users {
		if u.ID == id {
			u.SocialLinks = links
			return nil
		}
	}
	return user.ErrUserNotFound
}

type fakeSectionRepo struct {
	sections []*section.Section
}

func (r *fakeSectionRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*section.Section, error) {
	out := make([]*section.Section, 0)
	for _, s := range r.sections {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSectionRepo) FindByID(context.Context, uuid.UUID, uuid.UUID) (*section.Section, error) {
	return nil, section.ErrSectionNotFound
}
func (r *fakeSectionRepo) Save(context.Context, *section.Section) error   { return nil }
func (r *fakeSectionRepo) Update(context.Context, *section.Section) error { return nil }
func (r *fakeSectionRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (r *fakeSectionRepo) UpdatePositions(context.Context, uuid.UUID, []uuid.UUID) error {
	return nil
}

type fakeBattleClient struct {
	summary *battle.Summary
	err     error
	calls   int
}

func (c *fakeBattleClient) Summary(context.Context, string) (*battle.Summary, error) {
	c.calls++
	return c.summary, c.err
}

type fakeProjectClient struct {
	projects []project.Project
	err      error
	calls    int
}

func (c *fakeProjectClient) ListByUsername(context.Context, string) ([]project.Project, error) {
	c.calls++
	return c.projects, c.err
}

type memoryCache struct {
	profiles map[string]*PublicProfile
}

func (c *memoryCache) GetProfile(_ context.Context, username string) (*PublicProfile, bool) {
	p, ok := c.profiles[username]
	return p, ok
}

func (c *memoryCache) SetProfile(_ context.Context, username string, p *PublicProfile, _ time.Duration) {
	c.profiles[username] = p
}

func (c *memoryCache) Invalidate(_ context.Context, username string) {
	delete(c.profiles, username)
}

func str(s string) *string { return &s }

func testProfileSetup(battles battle.Client, projects project.Client) (*ProfileUseCase, *user.User, *fakeSectionRepo) {
	owner := &user.User{
		ID:       uuid.New(),
		Username: "ada",
		Email:    "ada@example.com",
		Role:     user.RoleCreator,
		Tier:     user.TierCuration,
		SocialLinks: user.SocialLinks{
			GitHub: str("https://github.com/ada"),
		},
	}
	userRepo := &fakeUserRepo{users: map[string]*user.User{"ada": owner}}
	sectionRepo := &fakeSectionRepo{}
	uc := NewProfileUseCase(userRepo, sectionRepo, battles, projects, render.NewBlockRenderer(), nil, logger.NewNop())
	return uc, owner, sectionRepo
}

func TestGetPublicProfile_FiltersHiddenAndEmpty(t *testing.T) {
	uc, owner, repo := testProfileSetup(&fakeBattleClient{}, &fakeProjectClient{})

	repo.sections = []*section.Section{
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeAbout, Visible: true, Position: 1,
			Content: &section.AboutContent{Text: "I make agents"}},
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeSkills, Visible: false, Position: 0,
			Content: &section.SkillsContent{Skills: []section.Skill{{Name: "Prompting"}}}},
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeLearningGoals, Visible: true, Position: 2,
			Content: &section.LearningGoalsContent{}},
	}

	profile, err := uc.GetPublicProfile(context.Background(), "ada")
	require.NoError(t, err)
	// The hidden skills section and the empty goals section are both dropped.
	require.Len(t, profile.Sections, 1)
	assert.Equal(t, section.TypeAbout, profile.Sections[0].Type)
	assert.Equal(t, "About", profile.Sections[0].Title)
}

func TestGetPublicProfile_OrdersByPosition(t *testing.T) {
	uc, owner, repo := testProfileSetup(&fakeBattleClient{}, &fakeProjectClient{})

	repo.sections = []*section.Section{
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeSkills, Visible: true, Position: 1,
			Content: &section.SkillsContent{Skills: []section.Skill{{Name: "Prompting"}}}},
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeAbout, Visible: true, Position: 0,
			Content: &section.AboutContent{Text: "hi"}},
	}

	profile, err := uc.GetPublicProfile(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, profile.Sections, 2)
	assert.Equal(t, section.TypeAbout, profile.Sections[0].Type)
	assert.Equal(t, section.TypeSkills, profile.Sections[1].Type)
}

func TestGetPublicProfile_MergesCoreAndCustomLinks(t *testing.T) {
	uc, owner, repo := testProfileSetup(&fakeBattleClient{}, &fakeProjectClient{})

	repo.sections = []*section.Section{
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeLinks, Visible: true,
			Content: &section.LinksContent{Links: []section.LinkItem{
				{Label: "My blog", URL: "https://blog.ada.dev"},
			}}},
	}

	profile, err := uc.GetPublicProfile(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, profile.Sections, 1)

	links := profile.Sections[0].Links
	require.Len(t, links, 2)
	assert.Equal(t, "GitHub", links[0].Label)
	assert.True(t, links[0].Core)
	assert.Equal(t, "My blog", links[1].Label)
	assert.False(t, links[1].Core)
	assert.Equal(t, section.IconGlobe, links[1].Icon)
}

func TestGetPublicProfile_LinksSectionWithOnlyCoreLinks(t *testing.T) {
	uc, owner, repo := testProfileSetup(&fakeBattleClient{}, &fakeProjectClient{})

	repo.sections = []*section.Section{
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeLinks, Visible: true,
			Content: &section.LinksContent{}},
	}

	profile, err := uc.GetPublicProfile(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, profile.Sections, 1)
	require.Len(t, profile.Sections[0].Links, 1)
	assert.Equal(t, "GitHub", profile.Sections[0].Links[0].Label)
}

func TestGetPublicProfile_BattleSectionsSharedFetch(t *testing.T) {
	client := &fakeBattleClient{summary: &battle.Summary{
		Stats: battle.Stats{Wins: 12, Losses: 3},
		Battles: []battle.Battle{
			{Opponent: "bob"}, {Opponent: "eve"}, {Opponent: "mallory"},
		},
	}}
	uc, owner, repo := testProfileSetup(client, &fakeProjectClient{})

	repo.sections = []*section.Section{
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeBattleStats, Visible: true, Position: 0,
			Content: &section.BattleStatsContent{ShowWinRate: true}},
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeRecentBattles, Visible: true, Position: 1,
			Content: &section.RecentBattlesContent{MaxBattles: 2}},
	}

	profile, err := uc.GetPublicProfile(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, profile.Sections, 2)

	assert.Equal(t, 1, client.calls)
	require.NotNil(t, profile.Sections[0].BattleStats)
	assert.Equal(t, 12, profile.Sections[0].BattleStats.Wins)
	assert.Len(t, profile.Sections[1].Battles, 2)
}

func TestGetPublicProfile_BattleOutageDropsSectionsSilently(t *testing.T) {
	client := &fakeBattleClient{err: errors.New("battles service down")}
	uc, owner, repo := testProfileSetup(client, &fakeProjectClient{})

	repo.sections = []*section.Section{
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeAbout, Visible: true, Position: 0,
			Content: &section.AboutContent{Text: "hi"}},
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeBattleStats, Visible: true, Position: 1,
			Content: &section.BattleStatsContent{}},
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeRecentBattles, Visible: true, Position: 2,
			Content: &section.RecentBattlesContent{MaxBattles: 5}},
	}

	profile, err := uc.GetPublicProfile(context.Background(), "ada")
	require.NoError(t, err)
	// The page renders; both battle sections are omitted, one upstream call.
	require.Len(t, profile.Sections, 1)
	assert.Equal(t, section.TypeAbout, profile.Sections[0].Type)
	assert.Equal(t, 1, client.calls)
}

func TestGetPublicProfile_FeaturedProjectsResolved(t *testing.T) {
	client := &fakeProjectClient{projects: []project.Project{
		{ID: "p1", Title: "Agent Arena"},
		{ID: "p2", Title: "Prompt Garden"},
		{ID: "p3", Title: "Loop Visualizer"},
	}}
	uc, owner, repo := testProfileSetup(&fakeBattleClient{}, client)

	repo.sections = []*section.Section{
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeFeaturedProjects, Visible: true,
			Content: &section.FeaturedProjectsContent{ProjectIDs: []string{"p3", "p1", "gone"}}},
	}

	profile, err := uc.GetPublicProfile(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, profile.Sections, 1)

	// Selected order is kept; ids the service no longer knows are skipped.
	resolved := profile.Sections[0].Projects
	require.Len(t, resolved, 2)
	assert.Equal(t, "Loop Visualizer", resolved[0].Title)
	assert.Equal(t, "Agent Arena", resolved[1].Title)
	assert.Equal(t, 1, client.calls)
}

func TestGetPublicProfile_ProjectsOutageDropsSectionSilently(t *testing.T) {
	client := &fakeProjectClient{err: errors.New("projects service down")}
	uc, owner, repo := testProfileSetup(&fakeBattleClient{}, client)

	repo.sections = []*section.Section{
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeAbout, Visible: true, Position: 0,
			Content: &section.AboutContent{Text: "hi"}},
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeFeaturedProjects, Visible: true, Position: 1,
			Content: &section.FeaturedProjectsContent{ProjectIDs: []string{"p1"}}},
	}

	profile, err := uc.GetPublicProfile(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, profile.Sections, 1)
	assert.Equal(t, section.TypeAbout, profile.Sections[0].Type)
	assert.Equal(t, 1, client.calls)
}

func TestGetPublicProfile_RendersCustomBlocks(t *testing.T) {
	uc, owner, repo := testProfileSetup(&fakeBattleClient{}, &fakeProjectClient{})

	repo.sections = []*section.Section{
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeCustom, Visible: true, Title: "My rig",
			Content: &section.CustomContent{Blocks: []section.Block{
				{Type: section.BlockText, Content: "**bold** move"},
			}}},
	}

	profile, err := uc.GetPublicProfile(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, profile.Sections, 1)
	assert.Equal(t, "My rig", profile.Sections[0].Title)
	assert.Contains(t, profile.Sections[0].RenderedHTML, "<strong>bold</strong>")
}

func TestGetPublicProfile_UnknownUser(t *testing.T) {
	uc, _, _ := testProfileSetup(&fakeBattleClient{}, &fakeProjectClient{})

	_, err := uc.GetPublicProfile(context.Background(), "nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetPublicProfile_UsesCache(t *testing.T) {
	owner := &user.User{ID: uuid.New(), Username: "ada", Role: user.RoleMember}
	userRepo := &fakeUserRepo{users: map[string]*user.User{"ada": owner}}
	sectionRepo := &fakeSectionRepo{sections: []*section.Section{
		{ID: uuid.New(), OwnerID: owner.ID, Type: section.TypeAbout, Visible: true,
			Content: &section.AboutContent{Text: "hi"}},
	}}
	cache := &memoryCache{profiles: make(map[string]*PublicProfile)}
	uc := NewProfileUseCase(userRepo, sectionRepo, &fakeBattleClient{}, &fakeProjectClient{}, render.NewBlockRenderer(), cache, logger.NewNop())

	first, err := uc.GetPublicProfile(context.Background(), "ada")
	require.NoError(t, err)

	// Mutate the store; the cached view must still be served.
	sectionRepo.sections = nil
	second, err := uc.GetPublicProfile(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, second.Sections, 1)
}

func TestUpdateSocialLinks_MergesAndInvalidates(t *testing.T) {
	owner := &user.User{
		ID: uuid.New(), Username: "ada",
		SocialLinks: user.SocialLinks{GitHub: str("https://github.com/ada")},
	}
	userRepo := &fakeUserRepo{users: map[string]*user.User{"ada": owner}}
	cache := &memoryCache{profiles: map[string]*PublicProfile{"ada": {Username: "ada"}}}
	uc := NewProfileUseCase(userRepo, &fakeSectionRepo{}, &fakeBattleClient{}, &fakeProjectClient{}, render.NewBlockRenderer(), cache, logger.NewNop())

	links, err := uc.UpdateSocialLinks(context.Background(), UpdateSocialLinksInput{
		OwnerID: owner.ID,
		Patch:   user.SocialLinks{Website: str("https://ada.dev")},
	})
	require.NoError(t, err)

	// The patch merges instead of replacing.
	require.NotNil(t, links.GitHub)
	assert.Equal(t, "https://github.com/ada", *links.GitHub)
	require.NotNil(t, links.Website)
	assert.Equal(t, "https://ada.dev", *links.Website)

	_, cached := cache.profiles["ada"]
	assert.False(t, cached)
}
