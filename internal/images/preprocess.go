package images

import (
	"bytes"
	"log/slog"

	"github.com/disintegration/imaging"
)

const (
	// Uploads are capped to this bounding box to keep imgbb payloads small.
	maxDimension = 1024

	jpegQuality = 85
)

// Preprocess downscales an image to fit within maxDimension and re-encodes it
// as JPEG. If the bytes cannot be decoded the original bytes are returned
// unchanged; a slightly larger upload beats losing the image.
func Preprocess(image []byte) []byte {
	decoded, err := imaging.Decode(bytes.NewReader(image))
	if err != nil {
		slog.Warn("could not decode image for preprocessing, using original bytes", "error", err)
		return image
	}

	resized := imaging.Fit(decoded, maxDimension, maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		slog.Warn("could not re-encode image, using original bytes", "error", err)
		return image
	}
	return buf.Bytes()
}
