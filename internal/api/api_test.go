package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	backend "velog-backend/internal/api"
	"velog-backend/internal/document"
	"velog-backend/internal/post"
	"velog-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	content *document.Content
	err     error
}

func (s *stubExtractor) ExtractPDF([]byte) (*document.Content, error) {
	return s.content, s.err
}

type stubOCR struct{ text string }

func (s *stubOCR) ExtractText(context.Context, []byte) string { return s.text }

type stubHost struct {
	url string
	err error
}

func (s *stubHost) Upload(context.Context, []byte) (string, error) { return s.url, s.err }

type stubCompleter struct {
	completion string
	err        error
}

func (s *stubCompleter) Complete(context.Context, string) (string, error) {
	return s.completion, s.err
}

type stubPublisher struct {
	err    error
	cookie string
}

func (s *stubPublisher) Publish(_ context.Context, _, _ string, _ []string, _, cookie string) (json.RawMessage, error) {
	s.cookie = cookie
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(`{"data": {"writePost": {"id": "p1", "url_slug": "slug"}}}`), nil
}

type deps struct {
	extractor *stubExtractor
	ocr       *stubOCR
	host      *stubHost
	completer *stubCompleter
	publisher *stubPublisher
}

func newRouter(d deps) *chi.Mux {
	if d.extractor == nil {
		d.extractor = &stubExtractor{content: &document.Content{}}
	}
	if d.ocr == nil {
		d.ocr = &stubOCR{}
	}
	if d.host == nil {
		d.host = &stubHost{url: "https://img.example/1.jpg"}
	}
	if d.completer == nil {
		d.completer = &stubCompleter{completion: "제목: T\n본문: B"}
	}
	if d.publisher == nil {
		d.publisher = &stubPublisher{}
	}

	svc := post.NewService(d.extractor, d.ocr, d.host, d.completer, d.publisher, nil)
	router := chi.NewRouter()
	backend.NewPublishService(svc).AddRoutes(router)
	return router
}

func multipartBody(t *testing.T, pdf []byte, cookie string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if pdf != nil {
		part, err := writer.CreateFormFile("pdf", "doc.pdf")
		require.NoError(t, err)
		_, err = part.Write(pdf)
		require.NoError(t, err)
	}
	if cookie != "" {
		require.NoError(t, writer.WriteField("velog_cookie", cookie))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestCreatePostFromPDF(t *testing.T) {
	router := newRouter(deps{
		extractor: &stubExtractor{content: &document.Content{
			Markdown: "one paragraph",
			Images:   [][]byte{[]byte("image-bytes")},
		}},
		ocr:       &stubOCR{text: "figure caption"},
		completer: &stubCompleter{completion: "제목: Title\n요약: Sum\n본문: before\n[IMAGE_1]\nafter\n태그: go, web"},
	})

	body, contentType := multipartBody(t, []byte("%PDF-1.4"), "session-cookie")
	req := httptest.NewRequest(http.MethodPost, "/post", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "received response: "+rec.Body.String())

	var res api.PostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "Title", res.Title)
	assert.Equal(t, "Sum", res.Summary)
	assert.Equal(t, []string{"go", "web"}, res.Tags)
	assert.Contains(t, res.Body, "![figure caption](https://img.example/1.jpg)")
	assert.NotContains(t, res.Body, "[IMAGE_1]")
	assert.Contains(t, string(res.VelogResponse), "writePost")
}

func TestCreatePostFromJSON(t *testing.T) {
	pub := &stubPublisher{}
	router := newRouter(deps{
		completer: &stubCompleter{completion: "제목: Title\n요약: Sum\n본문: Body\n태그: a"},
		publisher: pub,
	})

	payload := `{"body": "source text", "velog_cookie": "session-cookie"}`
	req := httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "session-cookie", pub.cookie)
}

func TestCreatePostMissingBody(t *testing.T) {
	router := newRouter(deps{})

	req := httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(`{"velog_cookie": "c"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var res api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Error)
}

func TestCreatePostMissingCookie(t *testing.T) {
	router := newRouter(deps{})

	body, contentType := multipartBody(t, []byte("%PDF-1.4"), "")
	req := httptest.NewRequest(http.MethodPost, "/post", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePostMissingPDFFile(t *testing.T) {
	router := newRouter(deps{})

	body, contentType := multipartBody(t, nil, "session-cookie")
	req := httptest.NewRequest(http.MethodPost, "/post", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var res api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Contains(t, res.Error, "PDF")
}

func TestCreatePostCompletionFailureIs500(t *testing.T) {
	router := newRouter(deps{
		completer: &stubCompleter{err: errors.New("upstream quota exceeded")},
	})

	req := httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(`{"body": "t", "velog_cookie": "c"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var res api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Contains(t, res.Error, "quota")
}

func TestCreatePostPublishFailureIs500(t *testing.T) {
	router := newRouter(deps{
		publisher: &stubPublisher{err: errors.New("velog api error: 401 unauthorized")},
	})

	req := httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(`{"body": "t", "velog_cookie": "c"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newRouter(deps{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
