package domain

// Mode selects which encoding owns the persisted document. Switching mode does
// not convert content; each mode has its own independent document on disk.
type Mode string

const (
	ModeNormal   Mode = "normal"
	ModeMarkdown Mode = "markdown"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeNormal || m == ModeMarkdown }

// DocumentStore is the persistence collaborator for the editor core. The text
// blob is opaque to the store; only the codec for the active mode gives it
// meaning. Save is a whole-document replace and is idempotent.
type DocumentStore interface {
	Load(mode Mode) (string, error)
	Save(mode Mode, text string) error
}
