package app

import (
	"fmt"

	"jot/internal/codec"
	"jot/internal/domain"
	"jot/internal/editor"
)

// ── Document / block bindings ──────────────────────────────

// DocumentView is what the frontend renders for one mode.
type DocumentView struct {
	Mode    string         `json:"mode"`
	Blocks  []domain.Block `json:"blocks"`
	FocusID string         `json:"focusId"`
	Text    string         `json:"text"` // raw text, used by markdown mode
}

// LoadDocument reads the persisted document for a mode and returns the
// normalized block list.
func (a *App) LoadDocument(mode string) (*DocumentView, error) {
	ed, _, err := a.editorFor(mode)
	if err != nil {
		return nil, err
	}
	text, err := a.store.Load(ed.Mode())
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	ed.Load(text)
	return a.viewOf(ed), nil
}

// GetDocument returns the current in-memory state without reloading.
func (a *App) GetDocument(mode string) (*DocumentView, error) {
	ed, _, err := a.editorFor(mode)
	if err != nil {
		return nil, err
	}
	return a.viewOf(ed), nil
}

// UpdateBlockContent replaces a text block's content.
func (a *App) UpdateBlockContent(mode, blockID, content string) error {
	ed, _, err := a.editorFor(mode)
	if err != nil {
		return err
	}
	ed.UpdateContent(blockID, content)
	return nil
}

// UpdateMarkdownText replaces the markdown document from its raw-text
// editing surface.
func (a *App) UpdateMarkdownText(text string) error {
	ed, _, err := a.editorFor(string(domain.ModeMarkdown))
	if err != nil {
		return err
	}
	ed.SetText(text)
	return nil
}

// InsertImageAtEnd appends an image block and saves immediately.
func (a *App) InsertImageAtEnd(mode, src, alt string) (*domain.Block, error) {
	ed, sched, err := a.editorFor(mode)
	if err != nil {
		return nil, err
	}
	b := ed.InsertMediaAtEnd(codec.NewImageBlock(src, alt))
	sched.SaveNow(b.ID)
	return &b, nil
}

// InsertFileAtEnd appends a file block and saves immediately.
func (a *App) InsertFileAtEnd(mode, src, fileName, mimeType, extension string, fileSize int64) (*domain.Block, error) {
	ed, sched, err := a.editorFor(mode)
	if err != nil {
		return nil, err
	}
	fb := codec.NewFileBlock(src, fileName)
	fb.MimeType = mimeType
	fb.Extension = extension
	fb.FileSize = fileSize
	b := ed.InsertMediaAtEnd(fb)
	sched.SaveNow(b.ID)
	return &b, nil
}

// MarkupInsertion is the result of a cursor-position media insert in
// markdown mode.
type MarkupInsertion struct {
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
}

// InsertMarkupAtCursor inserts media markup into the markdown document at a
// character offset and saves immediately. kind is "image" or "file".
func (a *App) InsertMarkupAtCursor(text string, cursor int, kind, src, name string) (*MarkupInsertion, error) {
	ed, sched, err := a.editorFor(string(domain.ModeMarkdown))
	if err != nil {
		return nil, err
	}
	var b domain.Block
	switch domain.BlockKind(kind) {
	case domain.BlockKindImage:
		b = codec.NewImageBlock(src, name)
	case domain.BlockKindFile:
		b = codec.NewFileBlock(src, name)
	default:
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}
	newText, newCursor := editor.InsertMarkupAtCursor(text, cursor, b)
	ed.SetText(newText)
	sched.SaveNow(b.ID)
	return &MarkupInsertion{Text: newText, Cursor: newCursor}, nil
}

// DeleteBlock removes a block; text neighbors of removed media merge.
func (a *App) DeleteBlock(mode, blockID string) (*DocumentView, error) {
	ed, _, err := a.editorFor(mode)
	if err != nil {
		return nil, err
	}
	ed.DeleteBlock(blockID)
	return a.viewOf(ed), nil
}

// DeleteEmptyTextBlock removes a text block that is empty after trimming.
func (a *App) DeleteEmptyTextBlock(mode, blockID string) (*DocumentView, error) {
	ed, _, err := a.editorFor(mode)
	if err != nil {
		return nil, err
	}
	ed.DeleteEmptyTextBlock(blockID)
	return a.viewOf(ed), nil
}

// AddTextBlockAfter inserts a fresh empty text block after blockID.
func (a *App) AddTextBlockAfter(mode, blockID string) (*domain.Block, error) {
	ed, _, err := a.editorFor(mode)
	if err != nil {
		return nil, err
	}
	b := ed.AddTextBlockAfter(blockID)
	return &b, nil
}

// ClearAll replaces the document with a single empty text block.
func (a *App) ClearAll(mode string) (*DocumentView, error) {
	ed, _, err := a.editorFor(mode)
	if err != nil {
		return nil, err
	}
	ed.ClearAll()
	return a.viewOf(ed), nil
}

// ShouldDeleteOnBackspace implements the backspace auto-delete policy.
func (a *App) ShouldDeleteOnBackspace(mode, blockID string, cursorOffset int, hasSelection bool) (bool, error) {
	ed, _, err := a.editorFor(mode)
	if err != nil {
		return false, err
	}
	return ed.ShouldDeleteOnBackspace(blockID, cursorOffset, hasSelection), nil
}

// FlushSave saves immediately; called on editor blur.
func (a *App) FlushSave(mode string) error {
	_, sched, err := a.editorFor(mode)
	if err != nil {
		return err
	}
	sched.SaveNow("")
	return nil
}

// GetSavingBlockID returns the block showing the advisory saving signal.
func (a *App) GetSavingBlockID(mode string) (string, error) {
	_, sched, err := a.editorFor(mode)
	if err != nil {
		return "", err
	}
	return sched.SavingBlockID(), nil
}

func (a *App) viewOf(ed *editor.Editor) *DocumentView {
	return &DocumentView{
		Mode:    string(ed.Mode()),
		Blocks:  ed.Blocks(),
		FocusID: ed.FocusID(),
		Text:    ed.Text(),
	}
}
