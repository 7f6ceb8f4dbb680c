package editor

import (
	"strings"
	"sync"

	"jot/internal/codec"
	"jot/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Editor — block lifecycle controller
// ─────────────────────────────────────────────────────────────
//
// The editor owns the in-memory block list for one mode and keeps it
// well-formed after every mutation:
//   1. at least one block always exists
//   2. in normal mode the last block is a text block
//   3. no two adjacent blocks are both empty text blocks
//
// Mutations are synchronous; the frontend sees a fully settled list after
// every call. Each mutation invokes the onChange hook, which the app layer
// wires to the save scheduler.

type Editor struct {
	mu       sync.Mutex
	mode     domain.Mode
	blocks   []domain.Block
	focusID  string
	onChange func()
}

// New creates an editor for the given mode holding a single empty text block.
func New(mode domain.Mode) *Editor {
	return &Editor{
		mode:   mode,
		blocks: []domain.Block{codec.NewTextBlock("")},
	}
}

// SetOnChange registers the hook invoked after every mutation.
func (e *Editor) SetOnChange(fn func()) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// Load replaces the block list with the decoded form of persisted text and
// normalizes it before display.
func (e *Editor) Load(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.blocks = codec.Decode(e.mode, text)
	e.normalize()
	e.focusID = ""
}

// SetText replaces the block list with the decoded form of raw text and
// fires the change hook. Used by markdown mode, where the frontend edits the
// whole document as one raw-text surface.
func (e *Editor) SetText(text string) {
	e.mu.Lock()
	e.blocks = codec.Decode(e.mode, text)
	e.normalize()
	e.mu.Unlock()
	e.changed()
}

// Mode returns the editor's mode.
func (e *Editor) Mode() domain.Mode { return e.mode }

// Blocks returns a copy of the current block list.
func (e *Editor) Blocks() []domain.Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Block, len(e.blocks))
	copy(out, e.blocks)
	return out
}

// FocusID returns the block that should receive focus after the most recent
// mutation, or "" when the controller has no opinion.
func (e *Editor) FocusID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focusID
}

// Text encodes the current block list for the editor's mode.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return codec.Encode(e.mode, e.blocks)
}

// IsBlank reports whether the document holds no meaningful content: no media
// and no text beyond whitespace. Blank documents are never persisted.
func (e *Editor) IsBlank() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, b := range e.blocks {
		if b.IsMedia() || strings.TrimSpace(b.Content) != "" {
			return false
		}
	}
	return true
}

// UpdateContent replaces a text block's content. No-op if id does not name a
// text block.
func (e *Editor) UpdateContent(id, content string) bool {
	e.mu.Lock()
	i := e.indexOf(id)
	if i < 0 || !e.blocks[i].IsText() {
		e.mu.Unlock()
		return false
	}
	e.blocks[i].Content = content
	e.mu.Unlock()
	e.changed()
	return true
}

// InsertMediaAtEnd appends an image or file block. A trailing empty text
// block is removed first so the media does not land after a dangling empty
// line. The trailing-text invariant is restored lazily on the next
// normalizing mutation; callers that need a fresh cursor target call
// AddTextBlockAfter explicitly.
func (e *Editor) InsertMediaAtEnd(b domain.Block) domain.Block {
	e.mu.Lock()
	if !b.IsMedia() {
		e.mu.Unlock()
		return domain.Block{}
	}
	if n := len(e.blocks); n > 0 {
		last := e.blocks[n-1]
		if last.IsText() && strings.TrimSpace(last.Content) == "" {
			e.blocks = e.blocks[:n-1]
		}
	}
	e.blocks = append(e.blocks, b)
	e.focusID = b.ID
	e.mu.Unlock()
	e.changed()
	return b
}

// DeleteBlock removes a block. Deleting a media block flanked by two text
// blocks merges them into one and moves focus there; a single text neighbor
// receives focus instead. The list is then re-normalized.
func (e *Editor) DeleteBlock(id string) bool {
	e.mu.Lock()
	i := e.indexOf(id)
	if i < 0 {
		e.mu.Unlock()
		return false
	}
	removed := e.blocks[i]
	e.blocks = append(e.blocks[:i], e.blocks[i+1:]...)

	if removed.IsMedia() {
		prev, next := i-1, i // next shifted into the removed slot
		prevText := prev >= 0 && prev < len(e.blocks) && e.blocks[prev].IsText()
		nextText := next >= 0 && next < len(e.blocks) && e.blocks[next].IsText()
		switch {
		case prevText && nextText:
			merged := e.blocks[prev].Content
			if merged != "" && e.blocks[next].Content != "" {
				merged += "\n"
			}
			merged += e.blocks[next].Content
			e.blocks[prev].Content = merged
			e.blocks = append(e.blocks[:next], e.blocks[next+1:]...)
			e.focusID = e.blocks[prev].ID
		case prevText:
			e.focusID = e.blocks[prev].ID
		case nextText:
			e.focusID = e.blocks[next].ID
		}
	} else if e.focusID == id {
		e.focusID = ""
	}

	e.normalize()
	e.mu.Unlock()
	e.changed()
	return true
}

// DeleteEmptyTextBlock removes a text block whose content is empty after
// trimming. No-op unless more than one block exists.
func (e *Editor) DeleteEmptyTextBlock(id string) bool {
	e.mu.Lock()
	if len(e.blocks) <= 1 {
		e.mu.Unlock()
		return false
	}
	i := e.indexOf(id)
	if i < 0 || !e.blocks[i].IsText() || strings.TrimSpace(e.blocks[i].Content) != "" {
		e.mu.Unlock()
		return false
	}
	e.blocks = append(e.blocks[:i], e.blocks[i+1:]...)
	if j := e.nearestText(i); j >= 0 {
		e.focusID = e.blocks[j].ID
	}
	e.normalize()
	e.mu.Unlock()
	e.changed()
	return true
}

// AddTextBlockAfter inserts a fresh empty text block immediately after id and
// focuses it. Appends at the end when id is unknown.
func (e *Editor) AddTextBlockAfter(id string) domain.Block {
	e.mu.Lock()
	nb := codec.NewTextBlock("")
	i := e.indexOf(id)
	if i < 0 {
		e.blocks = append(e.blocks, nb)
	} else {
		e.blocks = append(e.blocks[:i+1], append([]domain.Block{nb}, e.blocks[i+1:]...)...)
	}
	e.focusID = nb.ID
	e.mu.Unlock()
	e.changed()
	return nb
}

// ClearAll replaces the entire list with a single fresh empty text block.
func (e *Editor) ClearAll() domain.Block {
	e.mu.Lock()
	nb := codec.NewTextBlock("")
	e.blocks = []domain.Block{nb}
	e.focusID = nb.ID
	e.mu.Unlock()
	e.changed()
	return nb
}

// ShouldDeleteOnBackspace reports whether a backspace in the given block may
// delete the block itself. Only an exactly-empty text block with the cursor
// at offset 0, no selection, and at least one sibling qualifies; anything
// else is ordinary backspace editing.
func (e *Editor) ShouldDeleteOnBackspace(id string, cursorOffset int, hasSelection bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if cursorOffset != 0 || hasSelection || len(e.blocks) <= 1 {
		return false
	}
	i := e.indexOf(id)
	return i >= 0 && e.blocks[i].IsText() && e.blocks[i].Content == ""
}

// ── internals ──────────────────────────────────────────────

func (e *Editor) changed() {
	e.mu.Lock()
	fn := e.onChange
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (e *Editor) indexOf(id string) int {
	for i := range e.blocks {
		if e.blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// nearestText returns the index of the text block closest to position i,
// preferring the one before it.
func (e *Editor) nearestText(i int) int {
	for j := i - 1; j >= 0; j-- {
		if e.blocks[j].IsText() {
			return j
		}
	}
	for j := i; j < len(e.blocks); j++ {
		if e.blocks[j].IsText() {
			return j
		}
	}
	return -1
}

// normalize re-asserts the block list invariants. Caller holds e.mu.
func (e *Editor) normalize() {
	// Collapse adjacent empty text blocks.
	for i := 0; i+1 < len(e.blocks); {
		a, b := e.blocks[i], e.blocks[i+1]
		if a.IsText() && b.IsText() && a.Content == "" && b.Content == "" {
			e.blocks = append(e.blocks[:i+1], e.blocks[i+2:]...)
			continue
		}
		i++
	}

	if len(e.blocks) == 0 {
		nb := codec.NewTextBlock("")
		e.blocks = []domain.Block{nb}
		e.focusID = nb.ID
		return
	}

	// Normal mode keeps a text block at the end as the cursor landing spot.
	if e.mode == domain.ModeNormal && !e.blocks[len(e.blocks)-1].IsText() {
		e.blocks = append(e.blocks, codec.NewTextBlock(""))
	}
}
