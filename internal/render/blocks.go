package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/creatorloop/creatorloop-api/internal/domain/section"
)

// BlockRenderer turns the blocks of a custom section into sanitized HTML.
// Dispatch is by block type; unknown types render as nothing and never
// abort siblings. Column nesting is cut off at section.MaxBlockDepth.
type BlockRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewBlockRenderer() *BlockRenderer {
	return &BlockRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// RenderBlocks renders a block list to one HTML fragment. Blocks that render
// to nothing are skipped.
func (r *BlockRenderer) RenderBlocks(blocks []section.Block) string {
	var sb strings.Builder
	for i := range blocks {
		sb.WriteString(r.renderBlock(&blocks[i], 0))
	}
	return sb.String()
}

func (r *BlockRenderer) renderBlock(b *section.Block, depth int) string {
	if depth > section.MaxBlockDepth {
		return ""
	}
	switch b.Type {
	case section.BlockText:
		return r.renderText(b.Content)
	case section.BlockImage:
		return r.renderImage(b.URL, b.Alt, b.Caption)
	case section.BlockVideo:
		if b.URL == "" {
			return ""
		}
		return fmt.Sprintf(`<video controls src="%s"></video>`, html.EscapeString(b.URL))
	case section.BlockCode:
		if b.Content == "" {
			return ""
		}
		return fmt.Sprintf(`<pre><code class="language-%s">%s</code></pre>`,
			html.EscapeString(b.Language), html.EscapeString(b.Content))
	case section.BlockButton:
		if b.URL == "" || b.Label == "" {
			return ""
		}
		return fmt.Sprintf(`<a class="block-button" href="%s" rel="noopener noreferrer">%s</a>`,
			html.EscapeString(b.URL), html.EscapeString(b.Label))
	case section.BlockDivider:
		return "<hr>"
	case section.BlockImageGrid:
		return r.renderImageGrid(b.Images)
	case section.BlockColumns:
		return r.renderColumns(b.Columns, depth)
	case section.BlockMermaid:
		// Diagram source is handed to the client-side renderer verbatim but
		// escaped, inside a placeholder element.
		if b.Content == "" {
			return ""
		}
		return fmt.Sprintf(`<pre class="mermaid">%s</pre>`, html.EscapeString(b.Content))
	case section.BlockIconCard:
		if b.Label == "" {
			return ""
		}
		return fmt.Sprintf(`<div class="icon-card" data-icon="%s">%s</div>`,
			html.EscapeString(b.Icon), html.EscapeString(b.Label))
	case section.BlockBadgeRow:
		return r.renderBadgeRow(b.Badges)
	default:
		// Unrecognized block types render nothing.
		return ""
	}
}

// renderText interprets the content as light markup (bold, italic, headings,
// links) and sanitizes the result, since it may originate from user input.
func (r *BlockRenderer) renderText(content string) string {
	if content == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		// Fall back to plain escaped text rather than dropping the block.
		return "<p>" + html.EscapeString(content) + "</p>"
	}
	return r.policy.Sanitize(buf.String())
}

func (r *BlockRenderer) renderImage(url, alt, caption string) string {
	if url == "" {
		return ""
	}
	img := fmt.Sprintf(`<img src="%s" alt="%s">`, html.EscapeString(url), html.EscapeString(alt))
	if caption == "" {
		return img
	}
	return fmt.Sprintf(`<figure>%s<figcaption>%s</figcaption></figure>`, img, html.EscapeString(caption))
}

func (r *BlockRenderer) renderImageGrid(images []section.GridImage) string {
	if len(images) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<div class="image-grid">`)
	for _, img := range images {
		if img.URL == "" {
			continue
		}
		fmt.Fprintf(&sb, `<img src="%s" alt="%s">`, html.EscapeString(img.URL), html.EscapeString(img.Alt))
	}
	sb.WriteString("</div>")
	return sb.String()
}

func (r *BlockRenderer) renderColumns(columns []section.Column, depth int) string {
	if len(columns) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<div class="columns">`)
	for ci := range columns {
		sb.WriteString(`<div class="column">`)
		for bi := range columns[ci].Blocks {
			sb.WriteString(r.renderBlock(&columns[ci].Blocks[bi], depth+1))
		}
		sb.WriteString("</div>")
	}
	sb.WriteString("</div>")
	return sb.String()
}

func (r *BlockRenderer) renderBadgeRow(badges []string) string {
	if len(badges) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<div class="badge-row">`)
	for _, badge := range badges {
		if badge == "" {
			continue
		}
		fmt.Fprintf(&sb, `<span class="badge">%s</span>`, html.EscapeString(badge))
	}
	sb.WriteString("</div>")
	return sb.String()
}
