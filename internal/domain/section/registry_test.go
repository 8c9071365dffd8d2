package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorloop/creatorloop-api/internal/domain/user"
)

func TestCanAdd_SingletonBlocksSecondInstance(t *testing.T) {
	existing := makeSections(TypeAbout)

	err := CanAdd(TypeAbout, existing, user.RoleMember, user.TierFree)
	assert.ErrorIs(t, err, ErrSingletonExists)

	// Custom is the one repeatable type.
	existing = makeSections(TypeCustom)
	assert.NoError(t, CanAdd(TypeCustom, existing, user.RoleMember, user.TierFree))
}

func TestCanAdd_RoleAndTierGating(t *testing.T) {
	var none []*Section

	err := CanAdd(TypeStorefront, none, user.RoleMember, user.TierFree)
	assert.ErrorIs(t, err, ErrTypeNotAllowed)
	assert.NoError(t, CanAdd(TypeStorefront, none, user.RoleCreator, user.TierFree))

	err = CanAdd(TypeBattleStats, none, user.RoleCreator, user.TierFree)
	assert.ErrorIs(t, err, ErrTypeNotAllowed)
	assert.NoError(t, CanAdd(TypeBattleStats, none, user.RoleMember, user.TierCuration))

	err = CanAdd("mystery", none, user.RoleCreator, user.TierCuration)
	assert.ErrorIs(t, err, ErrUnknownSectionType)
}

func TestAvailableTypes_FiltersAndDisables(t *testing.T) {
	existing := makeSections(TypeAbout)

	entries := AvailableTypes(existing, user.RoleMember, user.TierFree)
	byType := make(map[SectionType]PickerEntry)
	for _, e := range entries {
		byType[e.Type] = e
	}

	// Gated types are not listed at all for a free member.
	_, hasStorefront := byType[TypeStorefront]
	assert.False(t, hasStorefront)
	_, hasBattleStats := byType[TypeBattleStats]
	assert.False(t, hasBattleStats)

	// Existing singletons are listed but disabled.
	about, ok := byType[TypeAbout]
	require.True(t, ok)
	assert.True(t, about.Disabled)

	links, ok := byType[TypeLinks]
	require.True(t, ok)
	assert.False(t, links.Disabled)
}

func TestAvailableTypes_CreatorCurationSeesEverything(t *testing.T) {
	entries := AvailableTypes(nil, user.RoleCreator, user.TierCuration)
	assert.Len(t, entries, len(registry))
	for _, e := range entries {
		assert.False(t, e.Disabled, string(e.Type))
	}
}
