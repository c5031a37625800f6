// Package render turns classified resume lines into a styled document and
// writes it out as a PDF.
package render

import (
	"strings"

	"resumelift/internal/layout"
)

// BlockKind distinguishes text blocks from vertical spacers.
type BlockKind int

const (
	TextBlock BlockKind = iota
	SpacerBlock
)

// spacerHeight is the vertical gap inserted before every section header.
const spacerHeight = 12.0

// Block is one renderable unit: either styled text or a fixed-height gap.
type Block struct {
	Kind   BlockKind
	Text   string
	Role   layout.Role
	Style  Style
	Height float64
}

// Document is an ordered block sequence ready for a page writer.
type Document struct {
	Blocks []Block
}

// BuildDocument maps classified lines to styled blocks in input order,
// inserting a spacer before every section header. Skills lists are reshaped
// into bullet-separated items.
func BuildDocument(lines []layout.Line) Document {
	blocks := make([]Block, 0, len(lines))

	for _, line := range lines {
		if line.Role == layout.SectionHeader {
			blocks = append(blocks, Block{Kind: SpacerBlock, Height: spacerHeight})
		}

		text := line.Text
		if line.Role == layout.SkillsList {
			text = joinSkills(text)
		}

		blocks = append(blocks, Block{
			Kind:  TextBlock,
			Text:  text,
			Role:  line.Role,
			Style: styleFor(line.Role),
		})
	}

	return Document{Blocks: blocks}
}

// BuildDocumentFromText classifies raw text and builds the document in one
// step.
func BuildDocumentFromText(text string) Document {
	return BuildDocument(layout.ClassifyText(text))
}

// joinSkills rewrites "a, b, c" as "a • b • c".
func joinSkills(text string) string {
	parts := strings.Split(text, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return strings.Join(items, " • ")
}
