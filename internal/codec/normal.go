package codec

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"jot/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Normal mode — versioned JSON envelope, full fidelity.
// ─────────────────────────────────────────────────────────────

const envelopeVersion = 1

// envelope is the structured record written for normal mode. It preserves
// every block field, including file metadata that the markdown encoding
// cannot represent.
type envelope struct {
	Version int            `json:"version"`
	Blocks  []domain.Block `json:"blocks"`
}

func encodeNormal(blocks []domain.Block) string {
	data, err := json.Marshal(envelope{Version: envelopeVersion, Blocks: blocks})
	if err != nil {
		// Block contains only marshalable fields; unreachable in practice.
		return ""
	}
	return string(data)
}

// decodeNormal tries the structured envelope first and falls back to the
// legacy plain-text decoder chain on structural failure.
func decodeNormal(text string) []domain.Block {
	if blocks, ok := parseEnvelope(text); ok {
		return blocks
	}
	return decodePlainText(text)
}

func parseEnvelope(text string) ([]domain.Block, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var env envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, false
	}
	if env.Version < 1 {
		return nil, false
	}
	blocks := env.Blocks
	for i := range blocks {
		if blocks[i].ID == "" {
			blocks[i].ID = uuid.New().String()
		}
		switch blocks[i].Kind {
		case domain.BlockKindText, domain.BlockKindImage, domain.BlockKindFile:
		default:
			blocks[i].Kind = domain.BlockKindText
		}
	}
	if len(blocks) == 0 {
		blocks = []domain.Block{NewTextBlock("")}
	}
	return blocks, true
}
