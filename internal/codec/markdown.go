package codec

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"jot/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Markdown mode — lightweight inline markup.
// ─────────────────────────────────────────────────────────────
//
// Markdown mode has no first-class file blocks: a file block degrades to a
// bracketed text label on encode and is not reconstructible on decode. This
// asymmetry is intentional; mode switching never converts documents anyway.

// imageLinePattern matches a line that is exactly one inline image.
var imageLinePattern = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)\s]+)\)$`)

func encodeMarkdown(blocks []domain.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case domain.BlockKindImage, domain.BlockKindFile:
			parts = append(parts, InlineMarkup(b))
		default:
			parts = append(parts, b.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// decodeMarkdown scans lines. A full-line image markup closes any pending
// accumulated text into a text block; everything else accumulates.
func decodeMarkdown(text string) []domain.Block {
	var (
		blocks  []domain.Block
		pending []string
	)
	flush := func() {
		if len(pending) > 0 {
			blocks = append(blocks, NewTextBlock(strings.Join(pending, "\n")))
			pending = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if m := imageLinePattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			blocks = append(blocks, NewImageBlock(m[2], m[1]))
			continue
		}
		pending = append(pending, line)
	}
	flush()

	if len(blocks) == 0 {
		blocks = append(blocks, NewTextBlock(""))
	}
	return blocks
}

// InlineMarkup renders a media block as its markdown-mode markup: inline
// image syntax for images, a descriptive bracketed label for files.
func InlineMarkup(b domain.Block) string {
	if b.Kind == domain.BlockKindFile {
		name := b.FileName
		if name == "" {
			name = path.Base(b.Content)
		}
		return fmt.Sprintf("[file: %s]", name)
	}
	return fmt.Sprintf("![%s](%s)", b.AltText, b.Content)
}
