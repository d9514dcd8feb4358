package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"highlight-reel/internal/logging"
	"highlight-reel/internal/pipeline"
	"highlight-reel/internal/timecode"
)

const runTimeout = time.Hour

func run(cmd *cobra.Command, input string) error {
	outDir, _ := cmd.Flags().GetString("out")
	precise, _ := cmd.Flags().GetBool("precise")
	verbose, _ := cmd.Flags().GetBool("verbose")
	ffmpegPath, _ := cmd.Flags().GetString("ffmpeg")

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	cfg := pipeline.Config{
		InputMP4: absIn,
		OutDir:   outDir,

		Bucket:       os.Getenv("GCP_BUCKET_NAME"),
		Project:      os.Getenv("GCP_PROJECT"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),

		FFmpegPath: ffmpegPath,
		Reencode:   precise,

		Log: logging.New(cmd.ErrOrStderr(), verbose),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}

	printSummary(cmd, res)
	return nil
}

func printSummary(cmd *cobra.Command, res pipeline.Result) {
	for _, h := range res.Highlights.Highlights {
		cmd.Printf("#%d - %s\n", h.HighlightNumber, h.BriefDescription)
		if sec, ok := timecode.SegmentDuration(h.StartTime, h.EndTime); ok {
			cmd.Printf("  %s - %s (%d seconds)\n", h.StartTime, h.EndTime, sec)
		} else {
			cmd.Printf("  %s - %s (duration unknown)\n", h.StartTime, h.EndTime)
		}
		cmd.Printf("  why: %s\n", h.Reason)
		if h.ClipURL != "" {
			cmd.Printf("  clip: %s\n", h.ClipURL)
		} else {
			cmd.Printf("  clip: unavailable\n")
		}
	}
	cmd.Printf("%d highlights written to %s", len(res.Highlights.Highlights), res.OutputPath)
	if n := len(res.TrimFailures); n > 0 {
		cmd.Printf(" (%d clip(s) could not be produced)", n)
	}
	cmd.Println()
}
