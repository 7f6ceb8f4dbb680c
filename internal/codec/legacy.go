package codec

import (
	"path"
	"regexp"
	"strings"

	"jot/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Legacy plain-text decoder chain — pre-envelope documents.
// ─────────────────────────────────────────────────────────────
//
// Before the JSON envelope, normal-mode documents were plain text with
// top-level segments joined by a separator token. Two token generations
// exist on disk; both are still readable. Re-encoding always produces the
// current envelope, so legacy round-tripping is one-directional (old → new).

const (
	// blockBoundary separates segments in the newer plain-text revision.
	blockBoundary = "---BLOCK_BOUNDARY---"
	// legacyTextSeparator is the token used by the oldest format revision.
	legacyTextSeparator = "---TEXT_BLOCK_SEPARATOR---"
	// downloadRouteFragment distinguishes file placeholders from image
	// placeholders: asset paths served through the download route are files.
	downloadRouteFragment = "/api/files/download/"
)

// inlinePlaceholderPattern matches a segment that is exactly one inline
// media placeholder: ![alt](src).
var inlinePlaceholderPattern = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)\s]+)\)$`)

// decodePlainText splits a legacy document into segments, trying separator
// tokens newest-first, and pattern-matches each segment into a block.
func decodePlainText(text string) []domain.Block {
	var segments []string
	switch {
	case strings.Contains(text, blockBoundary):
		segments = strings.Split(text, blockBoundary)
	case strings.Contains(text, legacyTextSeparator):
		segments = strings.Split(text, legacyTextSeparator)
	default:
		segments = []string{text}
	}

	var blocks []domain.Block
	for _, seg := range segments {
		blocks = append(blocks, segmentToBlock(strings.Trim(seg, "\n")))
	}
	if len(blocks) == 0 {
		blocks = append(blocks, NewTextBlock(""))
	}
	return blocks
}

func segmentToBlock(segment string) domain.Block {
	m := inlinePlaceholderPattern.FindStringSubmatch(strings.TrimSpace(segment))
	if m == nil {
		return NewTextBlock(segment)
	}
	alt, src := m[1], m[2]
	if strings.Contains(src, downloadRouteFragment) {
		b := NewFileBlock(src, alt)
		b.Extension = strings.TrimPrefix(path.Ext(src), ".")
		return b
	}
	return NewImageBlock(src, alt)
}
