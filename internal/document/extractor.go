package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"log/slog"
	"math"
	"regexp"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gen2brain/go-fitz"
)

// Content is the extraction result for one document: markdown text in page
// order plus the embedded images, also in page/element order.
type Content struct {
	Markdown string
	Images   [][]byte
}

var (
	dataURIPattern     = regexp.MustCompile(`data:image/[a-zA-Z]+;base64,([A-Za-z0-9+/=]+)`)
	inlineImagePattern = regexp.MustCompile(`!\[[^\]]*\]\(data:image/[^)]+\)`)
)

const (
	// Images smaller than this on either side are treated as decorative.
	minImageSide = 100.0

	pageWidthRatio = 0.1
)

// ExtractPDF converts each page to markdown and harvests embedded images.
// Decorative images (smaller than 100px or 10% of the page width on either
// side) are skipped.
func ExtractPDF(contents []byte) (*Content, error) {
	doc, err := fitz.NewFromMemory(contents)
	if err != nil {
		return nil, fmt.Errorf("error opening pdf: %w", err)
	}
	defer doc.Close()

	converter := md.NewConverter("", true, nil)

	var text strings.Builder
	var images [][]byte

	for i := 0; i < doc.NumPage(); i++ {
		html, err := doc.HTML(i, true)
		if err != nil {
			return nil, fmt.Errorf("error rendering page %d: %w", i+1, err)
		}

		minSide := float64(minImageSide)
		if bound, err := doc.Bound(i); err == nil {
			minSide = math.Max(minSide, pageWidthRatio*float64(bound.Dx()))
		}
		images = append(images, harvestImages(html, int(minSide))...)

		page, err := converter.ConvertString(html)
		if err != nil {
			return nil, fmt.Errorf("error converting page %d: %w", i+1, err)
		}

		// Inline base64 images would blow up the prompt; they are carried
		// separately as raw bytes.
		text.WriteString(stripInlineImages(page) + "\n\n")
	}

	return &Content{Markdown: text.String(), Images: images}, nil
}

// harvestImages decodes every base64 data URI in the page HTML, dropping
// images below the minimum side length. Bytes that can't be decoded as an
// image are kept: better to let OCR and the host decide than to lose them.
func harvestImages(html string, minSide int) [][]byte {
	var images [][]byte
	for _, match := range dataURIPattern.FindAllStringSubmatch(html, -1) {
		raw, err := base64.StdEncoding.DecodeString(match[1])
		if err != nil {
			slog.Warn("skipping undecodable embedded image", "error", err)
			continue
		}

		if cfg, _, err := image.DecodeConfig(bytes.NewReader(raw)); err == nil {
			if cfg.Width < minSide || cfg.Height < minSide {
				slog.Debug("skipping small embedded image", "width", cfg.Width, "height", cfg.Height)
				continue
			}
		}

		images = append(images, raw)
	}
	return images
}

func stripInlineImages(markdown string) string {
	return inlineImagePattern.ReplaceAllString(markdown, "")
}
