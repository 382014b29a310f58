package backend

import "github.com/bgdnvk/campusbot/internal/catalog"

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Query string `json:"query"`
}

// Answer is the payload of a successful /ask response.
type Answer struct {
	Text      string          `json:"text"`
	Coords    *catalog.Coords `json:"coords,omitempty"`
	MapIframe string          `json:"map_iframe,omitempty"`
}

// AskResponse wraps an Answer the way the answering service returns it.
type AskResponse struct {
	Response Answer `json:"response"`
}

// APIResponse is the error body returned on a rejected request.
type APIResponse struct {
	Error string `json:"error,omitempty"`
}
