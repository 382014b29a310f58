package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/bgdnvk/campusbot/internal/catalog"
)

// DefaultTimeout bounds a single /ask round trip.
const DefaultTimeout = 30 * time.Second

// ErrMalformedResponse is returned when a 2xx body does not carry response.text.
var ErrMalformedResponse = errors.New("malformed answer")

// Client is the HTTP client for the campus answering service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	debug      bool
}

// NewClient creates a client for the resolved backend URL.
func NewClient(debug bool) *Client {
	return NewClientWithURL(ResolveBackendURL(""), debug)
}

// NewClientWithURL creates a client for a specific base URL.
func NewClientWithURL(baseURL string, debug bool) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		debug: debug,
	}
}

// WithTimeout replaces the per-request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.httpClient.Timeout = d
	}
	return c
}

// BaseURL returns the URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ask sends query to POST /ask once. Transport errors, non-2xx statuses and
// bodies without a string response.text are all returned as errors.
func (c *Client) Ask(ctx context.Context, query string) (*Answer, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/ask", AskRequest{Query: query})
	if err != nil {
		return nil, err
	}

	if err := validateAnswer(respBody); err != nil {
		return nil, err
	}

	var response AskResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &response.Response, nil
}

// doRequest performs a JSON request and returns the body of a 2xx response.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.debug {
		logrus.WithFields(logrus.Fields{"method": method, "path": path}).Debug("backend request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiResp APIResponse
		if err := json.Unmarshal(respBody, &apiResp); err == nil && apiResp.Error != "" {
			return nil, fmt.Errorf("API error: %s", apiResp.Error)
		}
		return nil, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	return respBody, nil
}

func validateAnswer(body []byte) error {
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	text := gjson.GetBytes(body, "response.text")
	if text.Type != gjson.String {
		return fmt.Errorf("%w: response.text missing", ErrMalformedResponse)
	}
	coords := gjson.GetBytes(body, "response.coords")
	if !coords.Exists() || coords.Type == gjson.Null {
		return nil
	}
	if coords.Get("lat").Type != gjson.Number || coords.Get("lng").Type != gjson.Number {
		return fmt.Errorf("%w: response.coords must carry numeric lat and lng", ErrMalformedResponse)
	}
	return nil
}

// HasCoords reports whether the answer should show a map.
func (a *Answer) HasCoords() bool {
	return a != nil && a.Coords != nil
}

// Location returns the coordinates as a value, zero when absent.
func (a *Answer) Location() catalog.Coords {
	if !a.HasCoords() {
		return catalog.Coords{}
	}
	return *a.Coords
}
