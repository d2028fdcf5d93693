package board

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Sticker is a positioned symbolic glyph on the canvas. Coordinates are
// model space (origin at the canvas center); Size is the nominal glyph
// point size before zoom. Stickers are immutable values — the document
// replaces them wholesale, never edits them in place. ID is the only
// identity-carrying field.
type Sticker struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Size int    `json:"size"`
}

// Document is the single source of truth for the canvas: an ordered
// sticker sequence (insertion order is z-order, later on top) plus the
// background reference. All external reads go through snapshots taken
// under the controller's serialization, never a live reference.
type Document struct {
	Stickers   []Sticker  `json:"stickers"`
	Background Background `json:"background"`
}

// NewDocument returns an empty document with no background.
func NewDocument() Document {
	return Document{Background: NoBackground()}
}

// AddSticker appends a sticker with a freshly generated unique id at the
// top of the z-order and returns it. Text is clamped to its first glyph.
// Overlapping positions are allowed.
func (d *Document) AddSticker(text string, x, y, size int) Sticker {
	s := Sticker{
		ID:   uuid.NewString(),
		Text: firstGlyph(text),
		X:    x,
		Y:    y,
		Size: size,
	}
	d.Stickers = append(d.Stickers, s)
	return s
}

// SetBackground replaces the background wholesale. Pure state
// transition; persistence and fetch side effects belong to the
// controller.
func (d *Document) SetBackground(b Background) {
	d.Background = b
}

// Snapshot returns a deep copy safe to hold across later mutations.
func (d Document) Snapshot() Document {
	out := d
	if d.Stickers != nil {
		out.Stickers = make([]Sticker, len(d.Stickers))
		copy(out.Stickers, d.Stickers)
	}
	return out
}

// Encode serializes the document. DecodeDocument(Encode(d)) round-trips
// exactly for every reachable d.
func (d Document) Encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("board: encode document: %w", err)
	}
	return data, nil
}

// DecodeDocument parses a document produced by Encode. Malformed or
// truncated input fails with a DecodeError and never yields a
// partially-built document. Duplicate sticker ids are treated as
// corruption, not repaired.
func DecodeDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var d Document
	if err := dec.Decode(&d); err != nil {
		return Document{}, &DecodeError{Reason: "malformed JSON", Err: err}
	}
	if err := d.validate(); err != nil {
		return Document{}, &DecodeError{Reason: err.Error()}
	}
	return d, nil
}

func (d Document) validate() error {
	if err := d.Background.validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(d.Stickers))
	for _, s := range d.Stickers {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate sticker id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
