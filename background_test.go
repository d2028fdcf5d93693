package board

import (
	"math"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want RGBA
	}{
		{"rgb short", "#f80", RGBA{R: 1, G: 136.0 / 255, B: 0, A: 1}},
		{"rrggbb", "#336699", RGBA{R: 0x33 / 255.0, G: 0x66 / 255.0, B: 0x99 / 255.0, A: 1}},
		{"rrggbbaa", "80808080", RGBA{R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255, A: 128.0 / 255}},
		{"invalid falls back to black", "nonsense", RGBA{A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.in)
			if math.Abs(got.R-tt.want.R) > epsilon || math.Abs(got.G-tt.want.G) > epsilon ||
				math.Abs(got.B-tt.want.B) > epsilon || math.Abs(got.A-tt.want.A) > epsilon {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBackgroundConstructorsClearOtherVariants(t *testing.T) {
	tests := []struct {
		name string
		bg   Background
		kind BackgroundKind
	}{
		{"none", NoBackground(), BackgroundNone},
		{"color", ColorBackground("#fff", 0.5), BackgroundColor},
		{"remote", RemoteBackground("https://example.com/x.png"), BackgroundRemote},
		{"local", LocalBackground("/tmp/x.png"), BackgroundLocal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.bg.Kind != tt.kind {
				t.Fatalf("Kind = %q, want %q", tt.bg.Kind, tt.kind)
			}
			if tt.kind != BackgroundColor && (tt.bg.Color != "" || tt.bg.Opacity != 0) {
				t.Errorf("color fields set on %q: %+v", tt.kind, tt.bg)
			}
			if tt.kind != BackgroundRemote && tt.bg.URL != "" {
				t.Errorf("URL set on %q: %+v", tt.kind, tt.bg)
			}
			if tt.kind != BackgroundLocal && tt.bg.Path != "" {
				t.Errorf("Path set on %q: %+v", tt.kind, tt.bg)
			}
		})
	}
}

func TestColorBackgroundClampsOpacity(t *testing.T) {
	if got := ColorBackground("#fff", -0.5).Opacity; got != 0 {
		t.Errorf("Opacity = %v, want 0", got)
	}
	if got := ColorBackground("#fff", 1.5).Opacity; got != 1 {
		t.Errorf("Opacity = %v, want 1", got)
	}
}

func TestBackgroundNeedsFetch(t *testing.T) {
	if NoBackground().NeedsFetch() || ColorBackground("#fff", 1).NeedsFetch() {
		t.Error("none/color backgrounds must not fetch")
	}
	if !RemoteBackground("u").NeedsFetch() || !LocalBackground("p").NeedsFetch() {
		t.Error("remote/local backgrounds must fetch")
	}
}

func TestBackgroundRGBAFoldsOpacity(t *testing.T) {
	c := ColorBackground("#ff0000", 0.5).RGBA()
	if math.Abs(c.A-0.5) > epsilon || math.Abs(c.R-1) > epsilon {
		t.Errorf("RGBA() = %+v, want red at alpha 0.5", c)
	}
	if got := RemoteBackground("u").RGBA(); got != (RGBA{}) {
		t.Errorf("RGBA() on remote = %+v, want zero", got)
	}
}
