package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://api.upstage.ai/v1"

// Client calls the Upstage document-digitization API to extract text from
// image bytes.
type Client struct {
	client *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		client: resty.New().
			SetBaseURL(baseURL).
			SetAuthToken(apiKey).
			SetTimeout(60 * time.Second),
	}
}

type ocrResponse struct {
	Text string `json:"text"`
}

// ExtractText runs OCR on one image. Failures are folded into the returned
// text as an error-string sentinel rather than an error: a broken OCR result
// degrades the generated alt text, it must not fail the whole document.
func (c *Client) ExtractText(ctx context.Context, image []byte) string {
	res, err := c.client.R().
		SetContext(ctx).
		SetFileReader("document", "image.jpg", bytes.NewReader(image)).
		SetFormData(map[string]string{"model": "ocr"}).
		Post("/document-digitization")

	if err != nil {
		slog.Error("ocr request failed", "error", err)
		return fmt.Sprintf("OCR 실패: %v", err)
	}
	if !res.IsSuccess() {
		slog.Error("ocr returned error", "status_code", res.StatusCode(), "body", res.String())
		return fmt.Sprintf("OCR 실패: %d", res.StatusCode())
	}

	var parsed ocrResponse
	if err := json.Unmarshal(res.Body(), &parsed); err != nil {
		slog.Error("error parsing ocr response", "error", err)
		return fmt.Sprintf("OCR 실패: %v", err)
	}

	return strings.TrimSpace(parsed.Text)
}
