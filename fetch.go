package board

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	// Formats a background image may arrive in. GIF decodes to its
	// first frame.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultFetchTimeout bounds a single background retrieval.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxImageBytes bounds the size of a fetched background image.
const DefaultMaxImageBytes int64 = 32 << 20

// Fetcher retrieves the raw bytes for a remote or local background
// reference. Remote and local references share one retrieval path; the
// pipeline does not care which it is. Implementations must honor ctx
// cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, ref Background) ([]byte, error)
}

// defaultFetcher performs HTTP GET for remote references and a local
// filesystem read for local references.
type defaultFetcher struct {
	client   *http.Client
	maxBytes int64
}

func (f *defaultFetcher) Fetch(ctx context.Context, ref Background) ([]byte, error) {
	switch ref.Kind {
	case BackgroundRemote:
		return f.fetchRemote(ctx, ref.URL)
	case BackgroundLocal:
		return f.fetchLocal(ref.Path)
	default:
		return nil, fmt.Errorf("background kind %q is not fetchable", string(ref.Kind))
	}
}

func (f *defaultFetcher) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", f.maxBytes)
	}
	return data, nil
}

func (f *defaultFetcher) fetchLocal(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > f.maxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", f.maxBytes)
	}
	return os.ReadFile(path)
}

// decodeImage decodes any registered format. A decode failure is a
// FetchError at the pipeline level, same as a transport failure.
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// fetchPipeline holds the fetch state owned by the controller. begin
// and apply must be called under the controller's serialization; only
// retrieve runs concurrently. The generation token is the whole
// ordering discipline: a stale completion fails the token comparison in
// apply and is discarded, so an older fetch can never overwrite a newer
// one regardless of completion order.
type fetchPipeline struct {
	gen     uint64
	img     image.Image
	fetcher Fetcher
	timeout time.Duration
	logger  *slog.Logger
}

// begin invalidates all outstanding requests and clears the published
// image so stale imagery is never shown while a new fetch is pending.
// It returns the token identifying the new request.
func (p *fetchPipeline) begin() uint64 {
	p.gen++
	p.img = nil
	return p.gen
}

// apply publishes img if token still identifies the latest request.
// A nil img records a failed or empty resolution. Reports whether the
// result was accepted.
func (p *fetchPipeline) apply(token uint64, img image.Image) bool {
	if token != p.gen {
		p.logger.Debug("discarding stale fetch result",
			"token", token, "current", p.gen)
		return false
	}
	p.img = img
	return true
}

// retrieve fetches and decodes ref's image. It runs outside the
// controller's serialization and touches no pipeline state.
func (p *fetchPipeline) retrieve(ctx context.Context, ref Background) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	data, err := p.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, &FetchError{Ref: ref, Err: err}
	}
	img, err := decodeImage(data)
	if err != nil {
		return nil, &FetchError{Ref: ref, Err: err}
	}
	return img, nil
}
