package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDocumentRoundTrip(t *testing.T) {
	withStickers := NewDocument()
	withStickers.AddSticker("⭐", -40, 25, 32)
	withStickers.AddSticker("🎉", 0, 0, 48)
	withStickers.AddSticker("♥", 300, -120, 16)

	tests := []struct {
		name string
		doc  func() Document
	}{
		{"empty", NewDocument},
		{"stickers", func() Document { return withStickers.Snapshot() }},
		{"color background", func() Document {
			d := NewDocument()
			d.SetBackground(ColorBackground("#336699", 0.75))
			return d
		}},
		{"remote background", func() Document {
			d := NewDocument()
			d.SetBackground(RemoteBackground("https://example.com/bg.png"))
			return d
		}},
		{"local background", func() Document {
			d := NewDocument()
			d.SetBackground(LocalBackground("/tmp/bg.jpg"))
			return d
		}},
		{"stickers and background", func() Document {
			d := withStickers.Snapshot()
			d.SetBackground(ColorBackground("#fff", 1))
			return d
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tt.doc()
			data, err := doc.Encode()
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := DecodeDocument(data)
			if err != nil {
				t.Fatalf("DecodeDocument() error = %v", err)
			}
			if diff := cmp.Diff(doc, got); diff != "" {
				t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeDocumentErrors(t *testing.T) {
	valid, err := func() ([]byte, error) {
		d := NewDocument()
		d.AddSticker("⭐", 1, 2, 3)
		return d.Encode()
	}()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"truncated", valid[:len(valid)/2]},
		{"not JSON", []byte("not a document")},
		{"wrong shape", []byte(`{"stickers": 7, "background": {"kind":"none"}}`)},
		{"unknown background kind", []byte(`{"stickers":null,"background":{"kind":"gradient"}}`)},
		{"opacity out of range", []byte(`{"stickers":null,"background":{"kind":"color","color":"#fff","opacity":1.5}}`)},
		{"duplicate sticker ids", []byte(`{"stickers":[{"id":"a","text":"x","x":0,"y":0,"size":1},{"id":"a","text":"y","x":1,"y":1,"size":1}],"background":{"kind":"none"}}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeDocument(tt.data)
			if err == nil {
				t.Fatalf("DecodeDocument() = %+v, want error", got)
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("errors.Is(err, ErrDecode) = false, err = %v", err)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Errorf("errors.As(err, *DecodeError) = false, err = %v", err)
			}
			// No partially-built document on failure.
			if diff := cmp.Diff(Document{}, got); diff != "" {
				t.Errorf("failed decode returned non-zero document:\n%s", diff)
			}
		})
	}
}

func TestAddStickerUniqueIDs(t *testing.T) {
	d := NewDocument()
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		s := d.AddSticker("⭐", i, -i, 24)
		if s.ID == "" {
			t.Fatal("AddSticker() returned empty id")
		}
		if _, dup := seen[s.ID]; dup {
			t.Fatalf("duplicate id %q after %d stickers", s.ID, i+1)
		}
		seen[s.ID] = struct{}{}
	}
}

func TestAddStickerZOrder(t *testing.T) {
	d := NewDocument()
	first := d.AddSticker("1", 0, 0, 10)
	second := d.AddSticker("2", 0, 0, 10) // same spot, must land on top

	if len(d.Stickers) != 2 {
		t.Fatalf("len(Stickers) = %d, want 2", len(d.Stickers))
	}
	if d.Stickers[0].ID != first.ID || d.Stickers[1].ID != second.ID {
		t.Errorf("insertion order not preserved: got %q, %q",
			d.Stickers[0].ID, d.Stickers[1].ID)
	}
}

func TestSetBackgroundReplacesWholesale(t *testing.T) {
	d := NewDocument()
	d.SetBackground(ColorBackground("#123456", 0.5))
	d.SetBackground(RemoteBackground("https://example.com/a.png"))

	bg := d.Background
	if bg.Kind != BackgroundRemote {
		t.Fatalf("Kind = %q, want %q", bg.Kind, BackgroundRemote)
	}
	if bg.Color != "" || bg.Opacity != 0 {
		t.Errorf("color fields not cleared: %+v", bg)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	d := NewDocument()
	d.AddSticker("⭐", 0, 0, 10)

	snap := d.Snapshot()
	d.AddSticker("🎉", 1, 1, 10)

	if len(snap.Stickers) != 1 {
		t.Errorf("snapshot observed later mutation: %d stickers", len(snap.Stickers))
	}
}
