package section

import "github.com/creatorloop/creatorloop-api/internal/domain/user"

// TypeMeta is the registry entry for one section type: display metadata plus
// the constraints the add-picker enforces. Gating applies at creation time
// only; existing sections survive a later role or tier change.
type TypeMeta struct {
	Type        SectionType
	Title       string
	Description string
	Icon        string
	Singleton   bool
	// Zero values mean "no requirement".
	RequiresRole user.Role
	RequiresTier user.Tier
}

var registry = []TypeMeta{
	{Type: TypeAbout, Title: "About", Description: "Introduce yourself to visitors", Icon: "user", Singleton: true},
	{Type: TypeLinks, Title: "Links", Description: "Your social profiles and custom links", Icon: "link", Singleton: true},
	{Type: TypeSkills, Title: "Skills", Description: "Tools and techniques you work with", Icon: "sparkles", Singleton: true},
	{Type: TypeLearningGoals, Title: "Learning Goals", Description: "What you're learning, with progress", Icon: "target", Singleton: true},
	{Type: TypeFeaturedProjects, Title: "Featured Projects", Description: "Highlight your best projects", Icon: "folder", Singleton: true},
	{Type: TypeStorefront, Title: "Storefront", Description: "Sell your products and link external shops", Icon: "shopping-bag", Singleton: true, RequiresRole: user.RoleCreator},
	{Type: TypeFeaturedContent, Title: "Featured Content", Description: "Curated articles, videos and datasets", Icon: "star", Singleton: true, RequiresTier: user.TierCuration},
	{Type: TypeBattleStats, Title: "Battle Stats", Description: "Your prompt battle record", Icon: "trophy", Singleton: true, RequiresTier: user.TierCuration},
	{Type: TypeRecentBattles, Title: "Recent Battles", Description: "Your latest prompt battles", Icon: "swords", Singleton: true, RequiresTier: user.TierCuration},
	{Type: TypeCustom, Title: "Custom Block", Description: "Free-form rich content", Icon: "layout"},
}

func Metadata(t SectionType) (TypeMeta, bool) {
	for _, m := range registry {
		if m.Type == t {
			return m, true
		}
	}
	return TypeMeta{}, false
}

func (m TypeMeta) allowedFor(role user.Role, tier user.Tier) bool {
	if m.RequiresRole != "" && role != m.RequiresRole {
		return false
	}
	if m.RequiresTier != "" && tier != m.RequiresTier {
		return false
	}
	return true
}

// PickerEntry is one row of the add-section picker. Disabled entries are
// shown greyed out (singleton already present); disallowed types are not
// listed at all.
type PickerEntry struct {
	TypeMeta
	Disabled bool
}

// AvailableTypes lists the picker entries for a profile: every type the
// caller's role and tier allow, flagged disabled when a singleton of that
// type already exists.
func AvailableTypes(existing []*Section, role user.Role, tier user.Tier) []PickerEntry {
	entries := make([]PickerEntry, 0, len(registry))
	for _, m := range registry {
		if !m.allowedFor(role, tier) {
			continue
		}
		entries = append(entries, PickerEntry{
			TypeMeta: m,
			Disabled: IsDisabled(m.Type, existing),
		})
	}
	return entries
}

// IsDisabled reports whether adding t is blocked because the type is a
// singleton and an instance already exists.
func IsDisabled(t SectionType, existing []*Section) bool {
	m, ok := Metadata(t)
	if !ok {
		return true
	}
	return m.Singleton && HasType(existing, t)
}

// CanAdd is the full creation-time check: type known, role/tier allowed,
// singleton free.
func CanAdd(t SectionType, existing []*Section, role user.Role, tier user.Tier) error {
	m, ok := Metadata(t)
	if !ok {
		return ErrUnknownSectionType
	}
	if !m.allowedFor(role, tier) {
		return ErrTypeNotAllowed
	}
	if m.Singleton && HasType(existing, t) {
		return ErrSingletonExists
	}
	return nil
}
