package codec_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"jot/internal/codec"
	"jot/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Codec tests — round trips, legacy chain, degradation
// ─────────────────────────────────────────────────────────────

// ignoreIDs compares block lists structurally; IDs may be regenerated on
// decode.
var ignoreIDs = cmpopts.IgnoreFields(domain.Block{}, "ID")

func TestNormalRoundTrip_FullFidelity(t *testing.T) {
	blocks := []domain.Block{
		{ID: "a", Kind: domain.BlockKindText, Content: "hello\nworld"},
		{ID: "b", Kind: domain.BlockKindImage, Content: "/assets/cat.png", AltText: "a cat"},
		{ID: "c", Kind: domain.BlockKindFile, Content: "/api/files/download/report.pdf",
			FileName: "report.pdf", FileSize: 1024, MimeType: "application/pdf", Extension: "pdf"},
		{ID: "d", Kind: domain.BlockKindText, Content: ""},
	}

	got := codec.Decode(domain.ModeNormal, codec.Encode(domain.ModeNormal, blocks))

	if diff := cmp.Diff(blocks, got); diff != "" {
		t.Errorf("normal round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalRoundTrip_FileMetadataUnchanged(t *testing.T) {
	blocks := []domain.Block{
		{ID: "f1", Kind: domain.BlockKindFile, Content: "/api/files/download/report.pdf",
			FileName: "report.pdf", MimeType: "application/pdf", Extension: "pdf"},
		{ID: "t1", Kind: domain.BlockKindText, Content: ""},
	}

	got := codec.Decode(domain.ModeNormal, codec.Encode(domain.ModeNormal, blocks))

	if len(got) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(got))
	}
	f := got[0]
	if f.FileName != "report.pdf" || f.MimeType != "application/pdf" || f.Extension != "pdf" {
		t.Errorf("file metadata lost: %+v", f)
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	blocks := []domain.Block{
		{ID: "a", Kind: domain.BlockKindText, Content: "intro line\nsecond line"},
		{ID: "b", Kind: domain.BlockKindImage, Content: "/assets/dog.png", AltText: "dog"},
		{ID: "c", Kind: domain.BlockKindText, Content: "outro"},
	}

	text := codec.Encode(domain.ModeMarkdown, blocks)
	got := codec.Decode(domain.ModeMarkdown, text)

	if diff := cmp.Diff(blocks, got, ignoreIDs); diff != "" {
		t.Errorf("markdown round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownEncode_ImageMarkup(t *testing.T) {
	text := codec.Encode(domain.ModeMarkdown, []domain.Block{
		{Kind: domain.BlockKindText, Content: "above"},
		{Kind: domain.BlockKindImage, Content: "/a.png", AltText: "alt text"},
	})
	want := "above\n![alt text](/a.png)"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

// Markdown mode has no first-class file blocks: encoding degrades to a text
// label and must not panic; the label decodes back as plain text.
func TestMarkdownEncode_FileDegradesToLabel(t *testing.T) {
	text := codec.Encode(domain.ModeMarkdown, []domain.Block{
		{Kind: domain.BlockKindFile, Content: "/api/files/download/report.pdf", FileName: "report.pdf"},
	})
	if !strings.Contains(text, "report.pdf") {
		t.Errorf("expected file name in placeholder, got %q", text)
	}

	got := codec.Decode(domain.ModeMarkdown, text)
	if len(got) != 1 || got[0].Kind != domain.BlockKindText {
		t.Errorf("expected degraded placeholder to decode as text, got %+v", got)
	}
}

func TestDecode_EmptyAndWhitespace(t *testing.T) {
	for _, mode := range []domain.Mode{domain.ModeNormal, domain.ModeMarkdown} {
		for _, input := range []string{"", "   ", "\n\t "} {
			got := codec.Decode(mode, input)
			if len(got) != 1 {
				t.Fatalf("Decode(%s, %q): expected 1 block, got %d", mode, input, len(got))
			}
			if got[0].Kind != domain.BlockKindText || got[0].Content != "" {
				t.Errorf("Decode(%s, %q): expected empty text block, got %+v", mode, input, got[0])
			}
		}
	}
}

func TestDecodeNormal_LegacySeparator(t *testing.T) {
	got := codec.Decode(domain.ModeNormal, "hello\n---TEXT_BLOCK_SEPARATOR---\nworld")

	if len(got) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %+v", len(got), got)
	}
	if got[0].Content != "hello" || got[1].Content != "world" {
		t.Errorf("expected [hello world], got [%q %q]", got[0].Content, got[1].Content)
	}
	for _, b := range got {
		if b.Kind != domain.BlockKindText {
			t.Errorf("expected text block, got %s", b.Kind)
		}
	}
}

func TestDecodeNormal_CurrentSeparator(t *testing.T) {
	got := codec.Decode(domain.ModeNormal, "one\n---BLOCK_BOUNDARY---\ntwo\n---BLOCK_BOUNDARY---\nthree")

	if len(got) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(got))
	}
	for i, want := range []string{"one", "two", "three"} {
		if got[i].Content != want {
			t.Errorf("block %d: expected %q, got %q", i, want, got[i].Content)
		}
	}
}

func TestDecodeNormal_NoSeparator_SingleSegment(t *testing.T) {
	got := codec.Decode(domain.ModeNormal, "just a plain old note")
	if len(got) != 1 || got[0].Content != "just a plain old note" {
		t.Errorf("expected whole document as one text block, got %+v", got)
	}
}

func TestDecodeNormal_LegacyImagePlaceholder(t *testing.T) {
	got := codec.Decode(domain.ModeNormal, "![sunset](/uploads/sunset.jpg)")
	if len(got) != 1 {
		t.Fatalf("expected 1 block, got %d", len(got))
	}
	b := got[0]
	if b.Kind != domain.BlockKindImage || b.Content != "/uploads/sunset.jpg" || b.AltText != "sunset" {
		t.Errorf("expected image block, got %+v", b)
	}
}

// Placeholders whose path goes through the download route are files, not
// images.
func TestDecodeNormal_LegacyFilePlaceholder(t *testing.T) {
	got := codec.Decode(domain.ModeNormal, "![notes.zip](/api/files/download/notes.zip)")
	if len(got) != 1 {
		t.Fatalf("expected 1 block, got %d", len(got))
	}
	b := got[0]
	if b.Kind != domain.BlockKindFile {
		t.Fatalf("expected file block, got %s", b.Kind)
	}
	if b.FileName != "notes.zip" || b.Extension != "zip" {
		t.Errorf("expected file metadata from placeholder, got %+v", b)
	}
}

func TestDecodeNormal_MalformedJSONFallsBack(t *testing.T) {
	got := codec.Decode(domain.ModeNormal, `{"version": 1, "blocks": [`)
	if len(got) != 1 || got[0].Kind != domain.BlockKindText {
		t.Fatalf("expected fallback to single text block, got %+v", got)
	}
	if got[0].Content != `{"version": 1, "blocks": [` {
		t.Errorf("expected literal content preserved, got %q", got[0].Content)
	}
}

func TestDecodeNormal_EnvelopeDefaults(t *testing.T) {
	got := codec.Decode(domain.ModeNormal, `{"version":1,"blocks":[{"kind":"widget","content":"x"}]}`)
	if len(got) != 1 {
		t.Fatalf("expected 1 block, got %d", len(got))
	}
	if got[0].Kind != domain.BlockKindText {
		t.Errorf("unknown kind should default to text, got %s", got[0].Kind)
	}
	if got[0].ID == "" {
		t.Error("missing id should be regenerated")
	}
}

func TestDecodeMarkdown_ImageClosesPendingText(t *testing.T) {
	got := codec.Decode(domain.ModeMarkdown, "para one\nstill para one\n![pic](/p.png)\ntail")

	if len(got) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %+v", len(got), got)
	}
	if got[0].Content != "para one\nstill para one" {
		t.Errorf("expected accumulated text, got %q", got[0].Content)
	}
	if got[1].Kind != domain.BlockKindImage || got[1].Content != "/p.png" || got[1].AltText != "pic" {
		t.Errorf("expected image block, got %+v", got[1])
	}
	if got[2].Content != "tail" {
		t.Errorf("expected trailing text, got %q", got[2].Content)
	}
}

func TestDecodeMarkdown_InlineImageMidLineIsText(t *testing.T) {
	got := codec.Decode(domain.ModeMarkdown, "see ![pic](/p.png) here")
	if len(got) != 1 || got[0].Kind != domain.BlockKindText {
		t.Errorf("mid-line image markup should stay text, got %+v", got)
	}
}
