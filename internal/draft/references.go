package draft

import "regexp"

var referencePattern = regexp.MustCompile(`\[\d+\]`)

// StripReferences removes bracketed numeric citation markers, e.g. "[12]",
// that LLMs with web grounding tend to sprinkle into generated text.
func StripReferences(text string) string {
	return referencePattern.ReplaceAllString(text, "")
}
