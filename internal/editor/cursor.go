package editor

import (
	"unicode/utf8"

	"jot/internal/codec"
	"jot/internal/domain"
)

// InsertMarkupAtCursor inserts a media block's markdown markup into raw text
// at a character offset. The markup is wrapped in a leading and trailing
// newline so the next keystroke lands on a fresh line. Text on both sides of
// the cursor is preserved unmodified; an active selection is not consumed,
// the insertion happens at the selection start. Returns the new text and the
// cursor offset just past the inserted markup.
//
// Markdown mode only: normal mode inserts media as first-class blocks.
func InsertMarkupAtCursor(text string, cursor int, b domain.Block) (string, int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	// An offset landing mid-rune is pulled back to the rune start so the
	// splice never produces invalid UTF-8.
	for cursor > 0 && cursor < len(text) && !utf8.RuneStart(text[cursor]) {
		cursor--
	}
	inserted := "\n" + codec.InlineMarkup(b) + "\n"
	return text[:cursor] + inserted + text[cursor:], cursor + len(inserted)
}
