package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const writePostMutation = `
mutation WritePost($title: String, $body: String, $tags: [String], $is_markdown: Boolean, $is_temp: Boolean, $is_private: Boolean, $url_slug: String, $thumbnail: String, $meta: JSON, $series_id: ID, $token: String) {
  writePost(title: $title, body: $body, tags: $tags, is_markdown: $is_markdown, is_temp: $is_temp, is_private: $is_private, url_slug: $url_slug, thumbnail: $thumbnail, meta: $meta, series_id: $series_id, token: $token) {
    id user { id username } url_slug
  }
}`

// Error carries the platform's HTTP status and response body so the request
// handler can surface them verbatim.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("velog api error: %d %s", e.StatusCode, e.Body)
}

// VelogClient publishes posts through Velog's GraphQL WritePost mutation,
// authenticating with the caller's session cookie.
type VelogClient struct {
	client *resty.Client
}

func NewVelogClient(apiURL string) *VelogClient {
	return &VelogClient{
		client: resty.New().SetBaseURL(apiURL).SetTimeout(30 * time.Second),
	}
}

// Publish issues a single WritePost mutation. No retry: a duplicate post is
// worse than a failed one.
func (c *VelogClient) Publish(ctx context.Context, title, body string, tags []string, summary, cookie string) (json.RawMessage, error) {
	payload := map[string]any{
		"operationName": "WritePost",
		"query":         writePostMutation,
		"variables": map[string]any{
			"title":       title,
			"body":        body,
			"tags":        tags,
			"is_markdown": true,
			"is_temp":     false,
			"is_private":  false,
			"url_slug":    Slugify(title),
			"thumbnail":   nil,
			"meta":        map[string]any{"short_description": summary},
			"series_id":   nil,
			"token":       nil,
		},
	}

	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Cookie", cookie).
		SetBody(payload).
		Post("")

	if err != nil {
		return nil, fmt.Errorf("velog request failed: %w", err)
	}
	if !res.IsSuccess() {
		slog.Error("velog returned error", "status_code", res.StatusCode(), "body", res.String())
		return nil, &Error{StatusCode: res.StatusCode(), Body: res.String()}
	}

	slog.Info("post published", "title", title, "slug", Slugify(title))
	return json.RawMessage(res.Body()), nil
}

// Letters and digits in any script survive slugification, matching how Velog
// itself slugs Korean titles.
var slugDisallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// Slugify derives a URL slug from a post title. Empty results (e.g. an
// all-punctuation title) get a random fallback slug.
func Slugify(title string) string {
	slug := slugDisallowed.ReplaceAllString(title, "")
	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = strings.ReplaceAll(slug, " ", "-")
	if slug == "" {
		slug = "untitled-post-" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	}
	return slug
}
