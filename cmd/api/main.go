package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"velog-backend/cmd"
	"velog-backend/internal/api"
	"velog-backend/internal/document"
	"velog-backend/internal/images"
	"velog-backend/internal/imghost"
	"velog-backend/internal/llm"
	"velog-backend/internal/ocr"
	"velog-backend/internal/post"
	"velog-backend/internal/publisher"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type APIConfig struct {
	UpstageAPIKey  string `env:"UPSTAGE_API_KEY,notEmpty,required"`
	UpstageBaseURL string `env:"UPSTAGE_BASE_URL" envDefault:""`
	LLMModel       string `env:"LLM_MODEL" envDefault:"solar-pro2"`
	ImgbbAPIKey    string `env:"IMGBB_API_KEY,notEmpty,required"`
	ImgbbUploadURL string `env:"IMGBB_UPLOAD_URL" envDefault:""`
	VelogAPIURL    string `env:"VELOG_API_URL,notEmpty,required"`
	APIPort        string `env:"API_PORT" envDefault:"5000"`
}

// pdfExtractor adapts the package-level extraction function to the
// post.Extractor interface.
type pdfExtractor struct{}

func (pdfExtractor) ExtractPDF(contents []byte) (*document.Content, error) {
	return document.ExtractPDF(contents)
}

func main() {
	log.Println("Starting API Server...")

	cmd.LoadEnvFile()

	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	posts := post.NewService(
		pdfExtractor{},
		ocr.NewClient(cfg.UpstageBaseURL, cfg.UpstageAPIKey),
		imghost.NewClient(cfg.ImgbbUploadURL, cfg.ImgbbAPIKey),
		llm.NewSolarClient(cfg.UpstageBaseURL, cfg.UpstageAPIKey, cfg.LLMModel),
		publisher.NewVelogClient(cfg.VelogAPIURL),
		images.Preprocess,
	)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// The pipeline makes several upstream calls per request; the timeout has
	// to cover all of them.
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	apiHandler := api.NewPublishService(posts)
	apiHandler.AddRoutes(r)

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("API server listening on port %s", cfg.APIPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
	}

	log.Println("Server stopped.")
}
