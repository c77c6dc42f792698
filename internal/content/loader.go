package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultSource is the content path used when none is configured.
const DefaultSource = "content.json"

// StatusError is returned when an HTTP content source answers with a
// non-success status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Loader reads the content document from a file or an HTTP(S) URL.
type Loader struct {
	// BaseDir resolves relative file sources.
	BaseDir string
	// BaseURL, when set, resolves relative sources as URLs instead of files.
	BaseURL string
	Client  *http.Client
}

// NewLoader creates a Loader. A zero timeout leaves the HTTP client without
// a deadline; cancellation then comes only from the context.
func NewLoader(baseDir, baseURL string, timeout time.Duration) *Loader {
	return &Loader{
		BaseDir: baseDir,
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Resolve returns the location source refers to and whether it is a URL.
func (l *Loader) Resolve(source string) (string, bool, error) {
	if source == "" {
		source = DefaultSource
	}
	if isHTTP(source) {
		return source, true, nil
	}
	if l.BaseURL != "" {
		base, err := url.Parse(l.BaseURL)
		if err != nil {
			return "", false, fmt.Errorf("parsing base url %q: %w", l.BaseURL, err)
		}
		ref, err := url.Parse(source)
		if err != nil {
			return "", false, fmt.Errorf("parsing content source %q: %w", source, err)
		}
		return base.ResolveReference(ref).String(), true, nil
	}
	if filepath.IsAbs(source) || l.BaseDir == "" {
		return source, false, nil
	}
	return filepath.Join(l.BaseDir, source), false, nil
}

// Load issues one read of source and decodes it.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	loc, remote, err := l.Resolve(source)
	if err != nil {
		return nil, err
	}
	if remote {
		return l.fetch(ctx, loc)
	}

	f, err := os.Open(loc)
	if err != nil {
		return nil, fmt.Errorf("opening content %s: %w", loc, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", loc, err)
	}
	return doc, nil
}

func (l *Loader) fetch(ctx context.Context, loc string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", loc, err)
	}
	req.Header.Set("Accept", "application/json")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", loc, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: loc, StatusCode: resp.StatusCode}
	}

	doc, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", loc, err)
	}
	return doc, nil
}

// Decode parses a content document from r. Anything but whitespace after
// the document is an error.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after content document at offset %d", dec.InputOffset())
	}
	return &doc, nil
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
