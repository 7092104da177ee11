package imghost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultUploadURL = "https://api.imgbb.com/1/upload"

var ErrUploadFailed = errors.New("image upload failed")

// Client uploads image bytes to imgbb and returns the hosted URL.
//
// Uploads are retried only on HTTP 504 or request timeout, with a doubling
// backoff delay between attempts. Any other failure is terminal for that
// image; callers are expected to drop the image and continue.
type Client struct {
	client       *resty.Client
	apiKey       string
	maxRetries   int
	initialDelay time.Duration

	// sleep is swapped out in tests to observe backoff delays.
	sleep func(time.Duration)
}

func NewClient(uploadURL, apiKey string) *Client {
	if uploadURL == "" {
		uploadURL = DefaultUploadURL
	}
	return &Client{
		client:       resty.New().SetBaseURL(uploadURL).SetTimeout(30 * time.Second),
		apiKey:       apiKey,
		maxRetries:   3,
		initialDelay: time.Second,
		sleep:        time.Sleep,
	}
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload posts the image and returns its hosted URL.
func (c *Client) Upload(ctx context.Context, image []byte) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(image)

	delay := c.initialDelay
	for attempt := 0; ; attempt++ {
		res, err := c.client.R().
			SetContext(ctx).
			SetFormData(map[string]string{
				"key":   c.apiKey,
				"image": encoded,
			}).
			Post("")

		retryable := false
		switch {
		case err != nil:
			var uerr *url.Error
			retryable = errors.As(err, &uerr) && uerr.Timeout()
			if !retryable {
				return "", fmt.Errorf("upload request failed: %w", err)
			}
			slog.Warn("image upload timed out", "attempt", attempt+1, "error", err)
		case res.StatusCode() == http.StatusGatewayTimeout:
			retryable = true
			slog.Warn("image host returned 504", "attempt", attempt+1)
		case !res.IsSuccess():
			return "", fmt.Errorf("%w: status %d: %s", ErrUploadFailed, res.StatusCode(), res.String())
		}

		if retryable {
			if attempt >= c.maxRetries {
				return "", fmt.Errorf("%w: retries exhausted", ErrUploadFailed)
			}
			c.sleep(delay)
			delay *= 2
			continue
		}

		var parsed uploadResponse
		if err := json.Unmarshal(res.Body(), &parsed); err != nil {
			return "", fmt.Errorf("error parsing upload response: %w", err)
		}
		if !parsed.Success || parsed.Data.URL == "" {
			return "", fmt.Errorf("%w: host reported failure: %s", ErrUploadFailed, res.String())
		}

		slog.Info("image upload succeeded", "url", parsed.Data.URL)
		return parsed.Data.URL, nil
	}
}
