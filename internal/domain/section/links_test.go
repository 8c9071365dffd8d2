package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	cases := map[string]string{
		"https://github.com/someone":      "github",
		"https://GitHub.com/Someone":      "github",
		"https://x.com/someone":           "twitter",
		"https://twitter.com/someone":     "twitter",
		"https://youtu.be/abc123":         "youtube",
		"https://huggingface.co/someone":  "huggingface",
		"https://dev.to/someone":          "devto",
		"https://someonesblog.example.io": IconGlobe,
		"":                                IconGlobe,
	}
	for url, want := range cases {
		assert.Equal(t, want, DetectPlatform(url), url)
	}
}
