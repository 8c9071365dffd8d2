package section

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Content is the type-specific payload of a section. Exactly one
// implementation exists per SectionType; MarshalContent/UnmarshalContent
// dispatch on the section's type discriminator.
type Content interface {
	SectionType() SectionType
	// Normalize clamps and rewrites fields into their canonical form. It is
	// applied on every write, before Validate.
	Normalize()
	Validate() error
	// Empty reports whether the payload has nothing to show. Empty sections
	// are omitted from the public profile view.
	Empty() bool
}

// UnmarshalContent decodes data into the payload struct for t. A nil or empty
// payload decodes to the type's default content.
func UnmarshalContent(t SectionType, data []byte) (Content, error) {
	c := DefaultContent(t)
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSectionType, t)
	}
	if len(data) == 0 || string(data) == "null" {
		return c, nil
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", t, err)
	}
	return c, nil
}

func MarshalContent(c Content) ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// DefaultContent returns the empty payload a freshly added section starts
// with, or nil for an unknown type.
func DefaultContent(t SectionType) Content {
	switch t {
	case TypeAbout:
		return &AboutContent{}
	case TypeLinks:
		return &LinksContent{Layout: LayoutList}
	case TypeSkills:
		return &SkillsContent{Layout: SkillLayoutTags}
	case TypeLearningGoals:
		return &LearningGoalsContent{ShowProgress: true}
	case TypeFeaturedProjects:
		return &FeaturedProjectsContent{}
	case TypeStorefront:
		return &StorefrontContent{Layout: LayoutGrid}
	case TypeFeaturedContent:
		return &FeaturedContentPayload{}
	case TypeBattleStats:
		return &BattleStatsContent{ShowWinRate: true, ShowStreak: true, ShowRank: true}
	case TypeRecentBattles:
		return &RecentBattlesContent{MaxBattles: 5, ShowResults: true}
	case TypeCustom:
		return &CustomContent{}
	default:
		return nil
	}
}

const (
	LayoutList = "list"
	LayoutGrid = "grid"
)

// --- about ---

type AboutContent struct {
	Headline string `json:"headline,omitempty"`
	Text     string `json:"text,omitempty"`
}

func (c *AboutContent) SectionType() SectionType { return TypeAbout }
func (c *AboutContent) Normalize() {
	c.Headline = strings.TrimSpace(c.Headline)
	c.Text = strings.TrimSpace(c.Text)
}
func (c *AboutContent) Validate() error { return nil }
func (c *AboutContent) Empty() bool     { return c.Headline == "" && c.Text == "" }

// --- links ---

type LinkItem struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

type LinksContent struct {
	Links  []LinkItem `json:"links"`
	Layout string     `json:"layout,omitempty"`
}

func (c *LinksContent) SectionType() SectionType { return TypeLinks }

func (c *LinksContent) Normalize() {
	for i := range c.Links {
		c.Links[i].Label = strings.TrimSpace(c.Links[i].Label)
		c.Links[i].URL = EnsureScheme(strings.TrimSpace(c.Links[i].URL))
		if c.Links[i].Icon == "" {
			c.Links[i].Icon = DetectPlatform(c.Links[i].URL)
		}
	}
}

func (c *LinksContent) Validate() error {
	for _, l := range c.Links {
		if l.Label == "" {
			return errors.New("link label is required")
		}
		if l.URL == "" {
			return errors.New("link url is required")
		}
	}
	return nil
}

func (c *LinksContent) Empty() bool { return len(c.Links) == 0 }

// --- skills ---

type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

const (
	SkillLayoutTags       = "tags"
	SkillLayoutBars       = "bars"
	SkillLayoutCategories = "categories"
)

// DefaultSkillCategory is the bucket uncategorized skills fall into when the
// categories layout groups them.
const DefaultSkillCategory = "Other"

type Skill struct {
	Name     string     `json:"name"`
	Level    SkillLevel `json:"level,omitempty"`
	Category string     `json:"category,omitempty"`
	Icon     string     `json:"icon,omitempty"`
}

type SkillsContent struct {
	Skills []Skill `json:"skills"`
	Layout string  `json:"layout,omitempty"`
}

func (c *SkillsContent) SectionType() SectionType { return TypeSkills }

func (c *SkillsContent) Normalize() {
	for i := range c.Skills {
		c.Skills[i].Name = strings.TrimSpace(c.Skills[i].Name)
		c.Skills[i].Category = strings.TrimSpace(c.Skills[i].Category)
	}
	switch c.Layout {
	case SkillLayoutTags, SkillLayoutBars, SkillLayoutCategories:
	default:
		c.Layout = SkillLayoutTags
	}
}

func (c *SkillsContent) Validate() error {
	for _, s := range c.Skills {
		if s.Name == "" {
			return errors.New("skill name is required")
		}
		switch s.Level {
		case "", LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		default:
			return fmt.Errorf("invalid skill level %q", s.Level)
		}
	}
	return nil
}

func (c *SkillsContent) Empty() bool { return len(c.Skills) == 0 }

// SkillGroup is one category bucket of the categories layout. Indexes point
// back into the flat Skills slice so a grouped view can still remove by flat
// index.
type SkillGroup struct {
	Category string
	Indexes  []int
}

// GroupByCategory buckets skills by category in first-seen order.
// Uncategorized skills land in DefaultSkillCategory.
func (c *SkillsContent) GroupByCategory() []SkillGroup {
	var groups []SkillGroup
	at := make(map[string]int)
	for i, s := range c.Skills {
		cat := s.Category
		if cat == "" {
			cat = DefaultSkillCategory
		}
		gi, ok := at[cat]
		if !ok {
			gi = len(groups)
			at[cat] = gi
			groups = append(groups, SkillGroup{Category: cat})
		}
		groups[gi].Indexes = append(groups[gi].Indexes, i)
	}
	return groups
}

// --- learning goals ---

type LearningGoal struct {
	Topic       string   `json:"topic"`
	Description string   `json:"description,omitempty"`
	Progress    int      `json:"progress"`
	Resources   []string `json:"resources,omitempty"`
}

type LearningGoalsContent struct {
	Goals        []LearningGoal `json:"goals"`
	ShowProgress bool           `json:"show_progress"`
	Title        string         `json:"title,omitempty"`
}

func (c *LearningGoalsContent) SectionType() SectionType { return TypeLearningGoals }

func (c *LearningGoalsContent) Normalize() {
	for i := range c.Goals {
		c.Goals[i].Topic = strings.TrimSpace(c.Goals[i].Topic)
		c.Goals[i].Progress = ClampProgress(c.Goals[i].Progress)
	}
}

func (c *LearningGoalsContent) Validate() error {
	for _, g := range c.Goals {
		if g.Topic == "" {
			return errors.New("learning goal topic is required")
		}
	}
	return nil
}

func (c *LearningGoalsContent) Empty() bool { return len(c.Goals) == 0 }

// ClampProgress forces a progress value into [0, 100].
func ClampProgress(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// --- featured projects ---

type FeaturedProjectsContent struct {
	ProjectIDs []string `json:"project_ids"`
	Layout     string   `json:"layout,omitempty"`
}

func (c *FeaturedProjectsContent) SectionType() SectionType { return TypeFeaturedProjects }
func (c *FeaturedProjectsContent) Normalize()               {}
func (c *FeaturedProjectsContent) Validate() error          { return nil }
func (c *FeaturedProjectsContent) Empty() bool              { return len(c.ProjectIDs) == 0 }

// --- storefront ---

// StorefrontItem is either a native product reference (ProductID set,
// price/image denormalized from the marketplace at add time) or an external
// link (URL set). The two are mutually exclusive: native items get a buy
// action, external items are plain outbound links.
type StorefrontItem struct {
	ProductID   string  `json:"product_id,omitempty"`
	Title       string  `json:"title"`
	URL         string  `json:"url,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Badge       string  `json:"badge,omitempty"`
	Category    string  `json:"category,omitempty"`
	ProductType string  `json:"product_type,omitempty"`
}

func (i StorefrontItem) IsNative() bool { return i.ProductID != "" }

type StorefrontContent struct {
	Items  []StorefrontItem `json:"items"`
	Title  string           `json:"title,omitempty"`
	Layout string           `json:"layout,omitempty"`
}

func (c *StorefrontContent) SectionType() SectionType { return TypeStorefront }

func (c *StorefrontContent) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	for i := range c.Items {
		c.Items[i].Title = strings.TrimSpace(c.Items[i].Title)
		if !c.Items[i].IsNative() {
			c.Items[i].URL = EnsureScheme(strings.TrimSpace(c.Items[i].URL))
		}
	}
}

func (c *StorefrontContent) Validate() error {
	seen := make(map[string]bool)
	for _, item := range c.Items {
		if item.Title == "" {
			return errors.New("storefront item title is required")
		}
		if item.IsNative() {
			if item.URL != "" {
				return errors.New("a storefront item is either a native product or an external link, not both")
			}
			if seen[item.ProductID] {
				return fmt.Errorf("product %s is already in the storefront", item.ProductID)
			}
			seen[item.ProductID] = true
		} else if item.URL == "" {
			return errors.New("storefront item url is required")
		}
	}
	return nil
}

func (c *StorefrontContent) Empty() bool { return len(c.Items) == 0 }

// HasProduct reports whether a native item for productID already exists.
func (c *StorefrontContent) HasProduct(productID string) bool {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// --- featured content ---

type FeaturedItem struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// FeaturedContentPayload avoids stuttering on the "featured_content" type
// name; it is curated offsite content (articles, videos, datasets).
type FeaturedContentPayload struct {
	Items []FeaturedItem `json:"items"`
}

func (c *FeaturedContentPayload) SectionType() SectionType { return TypeFeaturedContent }

func (c *FeaturedContentPayload) Normalize() {
	for i := range c.Items {
		c.Items[i].Title = strings.TrimSpace(c.Items[i].Title)
		c.Items[i].URL = EnsureScheme(strings.TrimSpace(c.Items[i].URL))
	}
}

func (c *FeaturedContentPayload) Validate() error {
	for _, item := range c.Items {
		if item.Title == "" || item.URL == "" {
			return errors.New("featured item needs a title and url")
		}
	}
	return nil
}

func (c *FeaturedContentPayload) Empty() bool { return len(c.Items) == 0 }

// --- battle stats / recent battles ---

// BattleStatsContent holds display flags only; the numbers themselves are
// fetched live from the battles service when the profile renders.
type BattleStatsContent struct {
	ShowWinRate bool `json:"show_win_rate"`
	ShowStreak  bool `json:"show_streak"`
	ShowRank    bool `json:"show_rank"`
}

func (c *BattleStatsContent) SectionType() SectionType { return TypeBattleStats }
func (c *BattleStatsContent) Normalize()               {}
func (c *BattleStatsContent) Validate() error          { return nil }

// Display flags alone never make the section empty; emptiness is decided by
// the live fetch at render time.
func (c *BattleStatsContent) Empty() bool { return false }

type RecentBattlesContent struct {
	MaxBattles  int  `json:"max_battles"`
	ShowResults bool `json:"show_results"`
}

func (c *RecentBattlesContent) SectionType() SectionType { return TypeRecentBattles }

func (c *RecentBattlesContent) Normalize() {
	if c.MaxBattles <= 0 {
		c.MaxBattles = 5
	}
	if c.MaxBattles > 20 {
		c.MaxBattles = 20
	}
}

func (c *RecentBattlesContent) Validate() error { return nil }
func (c *RecentBattlesContent) Empty() bool     { return false }

// --- custom ---

type CustomContent struct {
	Title  string  `json:"title,omitempty"`
	Blocks []Block `json:"blocks"`
}

func (c *CustomContent) SectionType() SectionType { return TypeCustom }

func (c *CustomContent) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
}

func (c *CustomContent) Validate() error {
	for i := range c.Blocks {
		if err := c.Blocks[i].Validate(); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	return nil
}

func (c *CustomContent) Empty() bool { return len(c.Blocks) == 0 }

// EnsureScheme prefixes https:// when the url has no scheme. Empty input
// stays empty.
func EnsureScheme(url string) string {
	if url == "" {
		return ""
	}
	if strings.Contains(url, "://") {
		return url
	}
	return "https://" + url
}
