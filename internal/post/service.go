// Package post orchestrates one publish request: document extraction, the
// per-image OCR/upload pipeline, the drafting completion, parsing, and the
// final publish call.
package post

import (
	"context"
	"encoding/json"
	"fmt"

	"velog-backend/internal/document"
	"velog-backend/internal/draft"
)

// Collaborator interfaces. Concrete implementations live in
// internal/document, internal/ocr, internal/imghost, internal/llm, and
// internal/publisher; tests substitute stubs.
type (
	Extractor interface {
		ExtractPDF(contents []byte) (*document.Content, error)
	}

	OCR interface {
		ExtractText(ctx context.Context, image []byte) string
	}

	ImageHost interface {
		Upload(ctx context.Context, image []byte) (string, error)
	}

	Completer interface {
		Complete(ctx context.Context, content string) (string, error)
	}

	Publisher interface {
		Publish(ctx context.Context, title, body string, tags []string, summary, cookie string) (json.RawMessage, error)
	}
)

// Result is the outcome of one successful publish request.
type Result struct {
	Post          draft.Post
	VelogResponse json.RawMessage
}

type Service struct {
	extractor  Extractor
	ocr        OCR
	host       ImageHost
	completer  Completer
	publisher  Publisher
	preprocess func([]byte) []byte
}

func NewService(extractor Extractor, ocr OCR, host ImageHost, completer Completer, publisher Publisher, preprocess func([]byte) []byte) *Service {
	if preprocess == nil {
		preprocess = func(b []byte) []byte { return b }
	}
	return &Service{
		extractor:  extractor,
		ocr:        ocr,
		host:       host,
		completer:  completer,
		publisher:  publisher,
		preprocess: preprocess,
	}
}

// PublishPDF runs the full pipeline over raw PDF bytes.
func (s *Service) PublishPDF(ctx context.Context, pdf []byte, cookie string) (*Result, error) {
	content, err := s.extractor.ExtractPDF(pdf)
	if err != nil {
		return nil, fmt.Errorf("error extracting document: %w", err)
	}

	text, images := s.processImages(ctx, content)

	return s.publish(ctx, text, images, cookie)
}

// PublishText drafts and publishes directly from caller-supplied text,
// skipping extraction and the image pipeline.
func (s *Service) PublishText(ctx context.Context, text, cookie string) (*Result, error) {
	return s.publish(ctx, text, nil, cookie)
}

func (s *Service) publish(ctx context.Context, text string, images map[string]string, cookie string) (*Result, error) {
	completion, err := s.completer.Complete(ctx, text)
	if err != nil {
		return nil, err
	}

	post := draft.Parse(completion)
	post.Body = draft.ResolvePlaceholders(post.Body, images)

	res, err := s.publisher.Publish(ctx, post.Title, post.Body, post.Tags, post.Summary, cookie)
	if err != nil {
		return nil, err
	}

	return &Result{Post: post, VelogResponse: res}, nil
}
