package domain

type BlockKind string

const (
	BlockKindText  BlockKind = "text"
	BlockKindImage BlockKind = "image"
	BlockKindFile  BlockKind = "file"
)

// Block is the atomic content unit of the note. Order in the block list is
// document order.
type Block struct {
	ID      string    `json:"id"`
	Kind    BlockKind `json:"kind"`
	Content string    `json:"content"` // literal text, or asset path/URL for image/file

	// Image metadata
	AltText string `json:"altText,omitempty"`

	// File metadata
	FileName  string `json:"fileName,omitempty"`
	FileSize  int64  `json:"fileSize,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
	Extension string `json:"extension,omitempty"`
}

// IsText reports whether the block is a text block.
func (b Block) IsText() bool { return b.Kind == BlockKindText }

// IsMedia reports whether the block is an image or file block.
func (b Block) IsMedia() bool { return b.Kind == BlockKindImage || b.Kind == BlockKindFile }
