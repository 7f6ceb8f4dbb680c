package codec

import (
	"strings"

	"github.com/google/uuid"

	"jot/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Codec — bidirectional conversion between the in-memory block
// list and the per-mode on-disk text encodings.
// ─────────────────────────────────────────────────────────────

// Encode serializes a block list into the persisted text form for the given
// mode. Encode is total: it never fails for a well-formed block list.
func Encode(mode domain.Mode, blocks []domain.Block) string {
	if mode == domain.ModeMarkdown {
		return encodeMarkdown(blocks)
	}
	return encodeNormal(blocks)
}

// Decode reconstructs a block list from persisted text. Decode never fails:
// unparseable input degrades to a single literal text block, and empty or
// whitespace-only input yields a single empty text block.
func Decode(mode domain.Mode, text string) []domain.Block {
	if strings.TrimSpace(text) == "" {
		return []domain.Block{NewTextBlock("")}
	}
	if mode == domain.ModeMarkdown {
		return decodeMarkdown(text)
	}
	return decodeNormal(text)
}

// NewTextBlock creates a text block with a fresh ID.
func NewTextBlock(content string) domain.Block {
	return domain.Block{ID: uuid.New().String(), Kind: domain.BlockKindText, Content: content}
}

// NewImageBlock creates an image block with a fresh ID.
func NewImageBlock(src, alt string) domain.Block {
	return domain.Block{ID: uuid.New().String(), Kind: domain.BlockKindImage, Content: src, AltText: alt}
}

// NewFileBlock creates a file block with a fresh ID.
func NewFileBlock(src, fileName string) domain.Block {
	return domain.Block{ID: uuid.New().String(), Kind: domain.BlockKindFile, Content: src, FileName: fileName}
}
