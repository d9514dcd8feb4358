package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"highlight-reel/internal/extract"
	"highlight-reel/internal/logging"
	"highlight-reel/internal/ports"
	"highlight-reel/internal/ports/adapters/ffmpeg"
	"highlight-reel/internal/ports/adapters/gcs"
	"highlight-reel/internal/ports/adapters/gemini"
	"highlight-reel/internal/types"
	"highlight-reel/internal/usecase"
)

// maxVideoBytes caps accepted input size; larger files are rejected before
// any upload starts.
const maxVideoBytes = 200 << 20

type Config struct {
	InputMP4 string
	OutDir   string

	Bucket       string
	Project      string
	GeminiAPIKey string
	GeminiModel  string

	FFmpegPath string
	Reencode   bool

	Log zerolog.Logger
}

// Validate surfaces configuration errors before any pipeline stage begins.
func (c Config) Validate() error {
	if c.InputMP4 == "" {
		return errors.New("input is empty")
	}
	info, err := os.Stat(c.InputMP4)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if info.Size() > maxVideoBytes {
		return fmt.Errorf("input is %d MB, the limit is %d MB", info.Size()>>20, maxVideoBytes>>20)
	}
	if c.Bucket == "" {
		return errors.New("storage bucket is required (set GCP_BUCKET_NAME)")
	}
	if c.Project == "" {
		return errors.New("project id is required (set GCP_PROJECT)")
	}
	if c.GeminiAPIKey == "" {
		return errors.New("model api key is required (set GEMINI_API_KEY)")
	}
	return nil
}

type Result struct {
	Highlights   types.HighlightSet
	TrimFailures map[int]error
	OutputPath   string
}

// Run wires the adapters, processes the video, and writes the highlights
// document to the output directory.
func Run(ctx context.Context, cfg Config) (Result, error) {
	log := cfg.Log

	model, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return Result{}, fmt.Errorf("model client: %w", err)
	}
	defer model.Close()

	store, err := gcs.NewClient(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("storage client: %w", err)
	}
	defer store.Close()

	uc := usecase.New(usecase.Deps{
		Storage:   gcs.New(store, cfg.Bucket),
		Extractor: extract.New(gemini.New(model, cfg.GeminiModel)),
		Trimmer:   ffmpeg.New(cfg.FFmpegPath, cfg.Reencode),
		Log:       logging.WithComponent(log, "pipeline"),
	})

	res, err := uc.Run(ctx, usecase.Input{VideoPath: cfg.InputMP4})
	if err != nil {
		return Result{}, err
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, err
	}
	outPath := filepath.Join(outDir, "highlights.json")
	b, err := json.MarshalIndent(res.Highlights, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("marshal highlights: %w", err)
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return Result{}, err
	}
	log.Info().Int("highlights", len(res.Highlights.Highlights)).Str("path", outPath).Msg("highlights written")

	return Result{
		Highlights:   res.Highlights,
		TrimFailures: res.TrimFailures,
		OutputPath:   outPath,
	}, nil
}

// ensure adapters implement ports
var _ ports.Storage = (*gcs.Adapter)(nil)
var _ ports.ModelGateway = (*gemini.Adapter)(nil)
var _ ports.Trimmer = (*ffmpeg.Adapter)(nil)
