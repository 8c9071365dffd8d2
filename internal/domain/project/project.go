package project

import "context"

// Project is one entry from the projects service, either a polished showcase
// piece or a playground experiment. The profile only needs display fields.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Bucket      string `json:"bucket,omitempty"` // showcase or playground
}

// Listing is what GET /users/{username}/projects/ returns. A project may
// appear in both buckets; consumers must deduplicate by id.
type Listing struct {
	Showcase   []Project `json:"showcase"`
	Playground []Project `json:"playground"`
}

// Merged flattens the listing into one slice, showcase first, dropping
// playground entries whose id already appeared in showcase.
func (l *Listing) Merged() []Project {
	seen := make(map[string]bool, len(l.Showcase)+len(l.Playground))
	out := make([]Project, 0, len(l.Showcase)+len(l.Playground))
	for _, p := range l.Showcase {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	for _, p := range l.Playground {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// Client is the projects service collaborator. Like the battles client,
// fetch failures on the profile render path are cosmetic.
type Client interface {
	ListByUsername(ctx context.Context, username string) ([]Project, error)
}
