package draft

import "strings"

// Sentinel values used when the completion is missing a section entirely.
const (
	NoTitle   = "제목없음"
	NoSummary = "요약없음"
	NoBody    = "내용없음"
)

// Post is the structured result parsed from one model completion. Body may
// still contain unresolved [IMAGE_n] tokens until ResolvePlaceholders runs.
type Post struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Body    string   `json:"body"`
	Tags    []string `json:"tags"`
}

type section int

const (
	sectionNone section = iota
	sectionTitle
	sectionSummary
	sectionBody
	sectionTags
)

var sectionLabels = []struct {
	label string
	sec   section
}{
	{"제목:", sectionTitle},
	{"요약:", sectionSummary},
	{"본문:", sectionBody},
	{"태그:", sectionTags},
}

// Parse extracts title, summary, body, and tags from a free-form completion.
// The completion is expected to loosely follow a line-oriented protocol where
// each section starts with its Korean label ("제목:", "요약:", "본문:",
// "태그:"), optionally behind markdown heading markers. Parse never fails:
// anything unparseable falls back to the sentinel values above.
func Parse(completion string) Post {
	var title, summary, body, tagLine string

	current := sectionNone
	for _, line := range strings.Split(completion, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Models ignore instructions and prefix labels with "###" anyway.
		stripped := strings.TrimLeft(line, "#")
		stripped = strings.TrimSpace(stripped)

		matched := false
		for _, sl := range sectionLabels {
			rest, ok := strings.CutPrefix(stripped, sl.label)
			if !ok {
				continue
			}
			current = sl.sec
			rest = strings.TrimSpace(rest)
			switch sl.sec {
			case sectionTitle:
				title = rest
			case sectionSummary:
				summary = rest
			case sectionBody:
				body = rest
			case sectionTags:
				tagLine = rest
			}
			matched = true
			break
		}
		if matched {
			continue
		}

		// Continuation line for whichever section is active. The join
		// separators are intentionally uneven per field.
		switch current {
		case sectionTitle:
			title += line
		case sectionSummary:
			summary += "\n" + line
		case sectionBody:
			body += "\n" + line
		case sectionTags:
			tagLine += ", " + line
		}
	}

	body = StripReferences(body)

	post := Post{
		Title:   title,
		Summary: summary,
		Body:    body,
		Tags:    parseTags(tagLine),
	}
	if post.Title == "" {
		post.Title = NoTitle
	}
	if post.Summary == "" {
		post.Summary = NoSummary
	}
	if post.Body == "" {
		post.Body = NoBody
	}
	return post
}

// parseTags splits a comma separated tag line, trimming whitespace, dropping
// empty fragments, and treating hashtag-style tags ("#golang") the same as
// plain ones.
func parseTags(line string) []string {
	tags := []string{}
	for _, tag := range strings.Split(line, ",") {
		tag = strings.TrimSpace(tag)
		tag = strings.TrimLeft(tag, "#")
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
