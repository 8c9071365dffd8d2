package section

import "strings"

// IconGlobe is the fallback icon key for links whose host matches no known
// platform.
const IconGlobe = "globe"

// knownPlatforms maps host substrings to icon keys. Order matters: first
// match wins, so more specific hosts go first.
var knownPlatforms = []struct {
	match string
	icon  string
}{
	{"github.com", "github"},
	{"linkedin.com", "linkedin"},
	{"twitter.com", "twitter"},
	{"x.com", "twitter"},
	{"youtube.com", "youtube"},
	{"youtu.be", "youtube"},
	{"instagram.com", "instagram"},
	{"twitch.tv", "twitch"},
	{"huggingface.co", "huggingface"},
	{"kaggle.com", "kaggle"},
	{"medium.com", "medium"},
	{"dev.to", "devto"},
	{"discord.gg", "discord"},
	{"discord.com", "discord"},
	{"tiktok.com", "tiktok"},
	{"dribbble.com", "dribbble"},
	{"behance.net", "behance"},
}

// DetectPlatform infers an icon key from a link url by substring-matching
// the known platform hosts. Unmatched urls get the generic globe icon.
func DetectPlatform(url string) string {
	lower := strings.ToLower(url)
	for _, p := range knownPlatforms {
		if strings.Contains(lower, p.match) {
			return p.icon
		}
	}
	return IconGlobe
}
