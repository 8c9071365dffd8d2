package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creatorloop/creatorloop-api/internal/domain/section"
)

func TestRenderBlocks_TextMarkup(t *testing.T) {
	r := NewBlockRenderer()

	out := r.RenderBlocks([]section.Block{
		{Type: section.BlockText, Content: "Hello **world**"},
	})

	assert.Contains(t, out, "<strong>world</strong>")
}

func TestRenderBlocks_SanitizesScript(t *testing.T) {
	r := NewBlockRenderer()

	out := r.RenderBlocks([]section.Block{
		{Type: section.BlockText, Content: `Hi <script>alert("x")</script>`},
	})

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "Hi")
}

func TestRenderBlocks_UnknownTypeSkipped(t *testing.T) {
	r := NewBlockRenderer()

	out := r.RenderBlocks([]section.Block{
		{Type: "hologram", Content: "future stuff"},
		{Type: section.BlockDivider},
	})

	assert.Equal(t, "<hr>", out)
}

func TestRenderBlocks_EscapesAttributes(t *testing.T) {
	r := NewBlockRenderer()

	out := r.RenderBlocks([]section.Block{
		{Type: section.BlockImage, URL: `https://cdn.example.com/a.png" onerror="alert(1)`, Alt: "pic"},
	})

	assert.NotContains(t, out, `onerror="alert`)
	assert.Contains(t, out, "&#34;")
}

func TestRenderBlocks_ImageWithCaption(t *testing.T) {
	r := NewBlockRenderer()

	out := r.RenderBlocks([]section.Block{
		{Type: section.BlockImage, URL: "https://cdn.example.com/a.png", Alt: "pic", Caption: "my rig"},
	})

	assert.Contains(t, out, "<figure>")
	assert.Contains(t, out, "<figcaption>my rig</figcaption>")
}

func TestRenderBlocks_ButtonAndCode(t *testing.T) {
	r := NewBlockRenderer()

	out := r.RenderBlocks([]section.Block{
		{Type: section.BlockButton, Label: "Try it", URL: "https://demo.example.com"},
		{Type: section.BlockCode, Language: "go", Content: `fmt.Println("hi")`},
	})

	assert.Contains(t, out, `class="block-button"`)
	assert.Contains(t, out, `rel="noopener noreferrer"`)
	assert.Contains(t, out, `class="language-go"`)
	assert.Contains(t, out, "fmt.Println(&#34;hi&#34;)")

	// Incomplete buttons render nothing.
	assert.Empty(t, r.RenderBlocks([]section.Block{{Type: section.BlockButton, Label: "no url"}}))
}

func TestRenderBlocks_Columns(t *testing.T) {
	r := NewBlockRenderer()

	out := r.RenderBlocks([]section.Block{
		{Type: section.BlockColumns, Columns: []section.Column{
			{Blocks: []section.Block{{Type: section.BlockDivider}}},
			{Blocks: []section.Block{{Type: section.BlockBadgeRow, Badges: []string{"Go", "Rust"}}}},
		}},
	})

	assert.Equal(t, 2, strings.Count(out, `<div class="column">`))
	assert.Contains(t, out, `<span class="badge">Go</span>`)
}

func TestRenderBlocks_DepthLimitDropsDeepSubtrees(t *testing.T) {
	r := NewBlockRenderer()

	// Nest columns past the depth limit and put a divider at the bottom.
	leaf := section.Block{Type: section.BlockDivider}
	b := leaf
	for i := 0; i < section.MaxBlockDepth+2; i++ {
		b = section.Block{Type: section.BlockColumns, Columns: []section.Column{{Blocks: []section.Block{b}}}}
	}

	out := r.RenderBlocks([]section.Block{b})
	assert.NotContains(t, out, "<hr>")

	// A shallow tree still reaches its leaf.
	shallow := section.Block{Type: section.BlockColumns, Columns: []section.Column{{Blocks: []section.Block{leaf}}}}
	assert.Contains(t, r.RenderBlocks([]section.Block{shallow}), "<hr>")
}

func TestRenderBlocks_MermaidPlaceholder(t *testing.T) {
	r := NewBlockRenderer()

	out := r.RenderBlocks([]section.Block{
		{Type: section.BlockMermaid, Content: "graph TD; A-->B"},
	})

	assert.Contains(t, out, `<pre class="mermaid">`)
	assert.Contains(t, out, "A--&gt;B")
}
