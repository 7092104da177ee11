// Package api holds the wire types of the public HTTP surface.
package api

import "encoding/json"

// TextPostRequest is the JSON variant of POST /post: the caller supplies the
// source text directly instead of a PDF.
type TextPostRequest struct {
	Body        string `json:"body"`
	VelogCookie string `json:"velog_cookie"`
}

// PostResponse is returned on a successful publish.
type PostResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	VelogResponse json.RawMessage `json:"velogResponse"`
	Title         string          `json:"title"`
	Summary       string          `json:"summary"`
	Body          string          `json:"body"`
	Tags          []string        `json:"tags"`
}

// ErrorResponse is the body of every non-200 response.
type ErrorResponse struct {
	Error string `json:"error"`
}
