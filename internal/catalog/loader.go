// Package catalog loads the read-only campus reference data (syllabus links,
// holidays, departments, facilities, staff) once at startup.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrUnavailable marks a catalog that could not be loaded.
var ErrUnavailable = errors.New("catalog unavailable")

// DefaultSource is the catalog location used when none is configured.
const DefaultSource = "data.json"

// Loader fetches the catalog from a file path or an http(s) URL.
type Loader struct {
	httpClient *http.Client
}

// NewLoader creates a loader with a bounded HTTP timeout.
func NewLoader() *Loader {
	return &Loader{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewLoaderWithClient creates a loader that uses client for URL sources.
func NewLoaderWithClient(client *http.Client) *Loader {
	return &Loader{httpClient: client}
}

// Load reads the catalog from source. Any failure is wrapped in ErrUnavailable.
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultSource
	}

	var (
		data []byte
		err  error
	)
	if isURL(source) {
		data, err = l.fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return cat, nil
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &cat, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func isURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
