package draft

import "strings"

// ResolvePlaceholders substitutes every occurrence of each [IMAGE_n] token in
// body with its markdown image link. Tokens with no mapping entry (the image
// failed to upload) are left in place; a stray literal token in the published
// post is preferable to failing the whole request.
func ResolvePlaceholders(body string, images map[string]string) string {
	for token, markdown := range images {
		body = strings.ReplaceAll(body, token, markdown)
	}
	return body
}
