package api

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"velog-backend/internal/post"
	pkgapi "velog-backend/pkg/api"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 50 << 20

// PublishService exposes the publish pipeline over HTTP.
type PublishService struct {
	posts *post.Service
}

func NewPublishService(posts *post.Service) *PublishService {
	return &PublishService{posts: posts}
}

func (s *PublishService) AddRoutes(r chi.Router) {
	r.Get("/health", RestHandler(func(r *http.Request) (any, error) { return nil, nil }))
	r.Post("/post", RestHandler(s.CreatePost))
}

// CreatePost accepts either multipart/form-data with a "pdf" file and a
// "velog_cookie" field, or a JSON body with "body" and "velog_cookie".
func (s *PublishService) CreatePost(r *http.Request) (any, error) {
	ctx := r.Context()

	var res *post.Result
	var err error

	message := "Velog에 성공적으로 포스팅되었습니다!"
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		message = "PDF를 분석하여 Velog에 성공적으로 포스팅되었습니다!"
		var pdf []byte
		var cookie string
		pdf, cookie, err = parseMultipart(r)
		if err != nil {
			return nil, err
		}

		slog.Info("processing pdf upload", "size", len(pdf))
		res, err = s.posts.PublishPDF(ctx, pdf, cookie)
	} else {
		var req pkgapi.TextPostRequest
		req, err = ParseRequest[pkgapi.TextPostRequest](r)
		if err != nil {
			return nil, err
		}
		if req.Body == "" {
			return nil, CodedErrorf(http.StatusBadRequest, "본문이 필요합니다.")
		}
		if req.VelogCookie == "" {
			return nil, CodedErrorf(http.StatusBadRequest, "velog_cookie가 필요합니다.")
		}

		res, err = s.posts.PublishText(ctx, req.Body, req.VelogCookie)
	}

	if err != nil {
		return nil, CodedError(http.StatusInternalServerError, err)
	}

	return pkgapi.PostResponse{
		Success:       true,
		Message:       message,
		VelogResponse: res.VelogResponse,
		Title:         res.Post.Title,
		Summary:       res.Post.Summary,
		Body:          res.Post.Body,
		Tags:          res.Post.Tags,
	}, nil
}

func parseMultipart(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.Error("error parsing multipart form", "error", err)
		return nil, "", CodedErrorf(http.StatusBadRequest, "unable to parse multipart form")
	}

	file, _, err := r.FormFile("pdf")
	if err != nil {
		return nil, "", CodedErrorf(http.StatusBadRequest, "PDF 파일이 필요합니다.")
	}
	defer file.Close()

	cookie := r.FormValue("velog_cookie")
	if cookie == "" {
		return nil, "", CodedErrorf(http.StatusBadRequest, "velog_cookie가 필요합니다.")
	}

	pdf, err := io.ReadAll(file)
	if err != nil {
		slog.Error("error reading uploaded pdf", "error", err)
		return nil, "", CodedErrorf(http.StatusInternalServerError, "error reading uploaded file")
	}

	return pdf, cookie, nil
}
