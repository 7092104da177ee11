package post

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"velog-backend/internal/document"
)

// processImages runs each extracted image through OCR and the image host, in
// extraction order, and returns the normalized text handed to the model plus
// the placeholder-to-markdown mapping for the resolver.
//
// Placeholder numbers count successful uploads only: a dropped image never
// consumes a number, so [IMAGE_n] is always resolvable when the model emits
// it. Per-image failures are logged and skipped, never fatal.
func (s *Service) processImages(ctx context.Context, content *document.Content) (string, map[string]string) {
	var text strings.Builder
	text.WriteString(content.Markdown)

	images := make(map[string]string, len(content.Images))
	counter := 1

	for i, raw := range content.Images {
		prepared := s.preprocess(raw)

		ocrText := s.ocr.ExtractText(ctx, prepared)

		url, err := s.host.Upload(ctx, prepared)
		if err != nil {
			slog.Warn("dropping image that failed to upload", "index", i+1, "error", err)
			continue
		}

		// OCR description block so the model can place the image in context.
		fmt.Fprintf(&text, "\n--- 이미지 %d 시작 ---\n[설명: %s]\n--- 이미지 %d 끝 ---\n", counter, ocrText, counter)

		alt := firstLine(ocrText)
		if alt == "" {
			alt = fmt.Sprintf("Image %d", counter)
		}

		images[fmt.Sprintf("[IMAGE_%d]", counter)] = fmt.Sprintf("![%s](%s)", alt, url)
		counter++
	}

	return text.String(), images
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
