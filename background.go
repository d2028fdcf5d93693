package board

import "fmt"

// BackgroundKind discriminates the background variants.
type BackgroundKind string

// Background variants. Exactly one is active at a time.
const (
	// BackgroundNone shows the bare canvas.
	BackgroundNone BackgroundKind = "none"

	// BackgroundColor fills the canvas with a flat color at an opacity.
	BackgroundColor BackgroundKind = "color"

	// BackgroundRemote shows an image fetched from a URL.
	BackgroundRemote BackgroundKind = "remote"

	// BackgroundLocal shows an image read from local storage.
	BackgroundLocal BackgroundKind = "local"
)

// Background is the document's background reference. Construct values
// with NoBackground, ColorBackground, RemoteBackground or
// LocalBackground; each constructor clears the fields of the other
// variants so exactly one is ever active.
type Background struct {
	Kind    BackgroundKind `json:"kind"`
	Color   string         `json:"color,omitempty"`   // hex string, color kind
	Opacity float64        `json:"opacity,omitempty"` // [0,1], color kind
	URL     string         `json:"url,omitempty"`     // remote kind
	Path    string         `json:"path,omitempty"`    // local kind
}

// NoBackground returns the empty background.
func NoBackground() Background {
	return Background{Kind: BackgroundNone}
}

// ColorBackground returns a flat-color background. hex is any format
// accepted by Hex; opacity is clamped to [0,1].
func ColorBackground(hex string, opacity float64) Background {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return Background{Kind: BackgroundColor, Color: hex, Opacity: opacity}
}

// RemoteBackground returns a background that fetches its image from url.
func RemoteBackground(url string) Background {
	return Background{Kind: BackgroundRemote, URL: url}
}

// LocalBackground returns a background that reads its image from a local
// storage path.
func LocalBackground(path string) Background {
	return Background{Kind: BackgroundLocal, Path: path}
}

// NeedsFetch reports whether this background resolves through the async
// fetch pipeline. Color and none backgrounds resolve synchronously to an
// absent image.
func (b Background) NeedsFetch() bool {
	return b.Kind == BackgroundRemote || b.Kind == BackgroundLocal
}

// RGBA returns the flat color with opacity folded into the alpha
// channel. Only meaningful for the color kind; other kinds return
// transparent black.
func (b Background) RGBA() RGBA {
	if b.Kind != BackgroundColor {
		return RGBA{}
	}
	c := Hex(b.Color)
	c.A *= b.Opacity
	return c
}

func (b Background) String() string {
	switch b.Kind {
	case BackgroundNone:
		return "none"
	case BackgroundColor:
		return fmt.Sprintf("color(%s@%.2f)", b.Color, b.Opacity)
	case BackgroundRemote:
		return fmt.Sprintf("remote(%s)", b.URL)
	case BackgroundLocal:
		return fmt.Sprintf("local(%s)", b.Path)
	}
	return fmt.Sprintf("invalid(%q)", string(b.Kind))
}

// validate checks decoded values. Unknown kinds and out-of-range
// opacities are decode failures, not defaults.
func (b Background) validate() error {
	switch b.Kind {
	case BackgroundNone, BackgroundColor, BackgroundRemote, BackgroundLocal:
	default:
		return fmt.Errorf("unknown background kind %q", string(b.Kind))
	}
	if b.Opacity < 0 || b.Opacity > 1 {
		return fmt.Errorf("background opacity %v out of range", b.Opacity)
	}
	return nil
}
