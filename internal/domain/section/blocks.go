package section

import "errors"

type BlockType string

const (
	BlockText      BlockType = "text"
	BlockImage     BlockType = "image"
	BlockVideo     BlockType = "video"
	BlockCode      BlockType = "code_snippet"
	BlockButton    BlockType = "button"
	BlockDivider   BlockType = "divider"
	BlockImageGrid BlockType = "image_grid"
	BlockColumns   BlockType = "columns"
	BlockMermaid   BlockType = "mermaid"
	BlockIconCard  BlockType = "icon_card"
	BlockBadgeRow  BlockType = "badge_row"
)

// MaxBlockDepth bounds column nesting. Rendering drops subtrees below it.
const MaxBlockDepth = 8

// Block is one unit of rich content inside a custom section. Fields are a
// superset across block types; which ones are meaningful depends on Type.
// Columns blocks nest recursively, the only recursive structure in the model.
type Block struct {
	Type     BlockType   `json:"type"`
	Content  string      `json:"content,omitempty"`  // text markup, code, mermaid source
	URL      string      `json:"url,omitempty"`      // image/video src, button target
	Alt      string      `json:"alt,omitempty"`
	Caption  string      `json:"caption,omitempty"`
	Language string      `json:"language,omitempty"` // code_snippet
	Label    string      `json:"label,omitempty"`    // button, icon_card
	Icon     string      `json:"icon,omitempty"`     // icon_card
	Images   []GridImage `json:"images,omitempty"`   // image_grid
	Badges   []string    `json:"badges,omitempty"`   // badge_row
	Columns  []Column    `json:"columns,omitempty"`  // columns
}

type GridImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type Column struct {
	Blocks []Block `json:"blocks"`
}

// Validate rejects structurally broken blocks. Unknown types are not an
// error here: the renderer skips them, and tolerating them keeps old content
// readable after a type is retired.
func (b *Block) Validate() error {
	return b.validate(0)
}

func (b *Block) validate(depth int) error {
	if depth > MaxBlockDepth {
		return errors.New("blocks nested too deeply")
	}
	switch b.Type {
	case BlockImage, BlockVideo:
		if b.URL == "" {
			return errors.New("media block needs a url")
		}
	case BlockButton:
		if b.Label == "" || b.URL == "" {
			return errors.New("button block needs a label and url")
		}
	case BlockColumns:
		if len(b.Columns) == 0 {
			return errors.New("columns block needs at least one column")
		}
		for ci := range b.Columns {
			for bi := range b.Columns[ci].Blocks {
				if err := b.Columns[ci].Blocks[bi].validate(depth + 1); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
