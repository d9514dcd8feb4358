package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"highlight-reel/internal/domain/highlights"
	"highlight-reel/internal/ports"
	"highlight-reel/internal/types"
)

// Stage names the pipeline states. A run moves strictly forward through
// Uploading, Extracting, Trimming and Done; only the first two can fail the
// whole run. Trimming failures stay scoped to their segment.
type Stage string

const (
	StageUploading  Stage = "uploading"
	StageExtracting Stage = "extracting"
	StageTrimming   Stage = "trimming"
	StageDone       Stage = "done"
)

// StageError is a terminal pipeline failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Extractor produces a validated highlight set for an uploaded video.
type Extractor interface {
	Extract(ctx context.Context, storageURI string) (types.HighlightSet, error)
}

type Deps struct {
	Storage   ports.Storage
	Extractor Extractor
	Trimmer   ports.Trimmer
	Log       zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	VideoPath string
}

type Result struct {
	Highlights types.HighlightSet
	Source     types.UploadRef
	// TrimFailures holds the per-segment errors of the Trimming stage,
	// keyed by highlight number. The corresponding segments are still in
	// Highlights, just without a clip URL.
	TrimFailures map[int]error
}

// Run processes one video through upload, extraction, per-segment trimming
// and aggregation. Cancellation is honored at each stage boundary and
// before each trim. Scratch files live in a per-run temp directory removed
// on every exit path.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	tmpDir, err := os.MkdirTemp("", "highlight-reel-*")
	if err != nil {
		return Result{}, &StageError{Stage: StageUploading, Err: err}
	}
	defer os.RemoveAll(tmpDir)

	if err := ctx.Err(); err != nil {
		return Result{}, &StageError{Stage: StageUploading, Err: err}
	}
	u.d.Log.Info().Str("stage", string(StageUploading)).Str("video", filepath.Base(in.VideoPath)).Msg("uploading source video")
	ref, err := u.uploadSource(ctx, in.VideoPath)
	if err != nil {
		return Result{}, &StageError{Stage: StageUploading, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, &StageError{Stage: StageExtracting, Err: err}
	}
	u.d.Log.Info().Str("stage", string(StageExtracting)).Str("uri", ref.StorageURI).Msg("extracting highlights")
	set, err := u.d.Extractor.Extract(ctx, ref.StorageURI)
	if err != nil {
		return Result{}, &StageError{Stage: StageExtracting, Err: err}
	}
	for _, w := range highlights.TimeOrderWarnings(set) {
		u.d.Log.Warn().Str("stage", string(StageExtracting)).Msg(w)
	}

	u.d.Log.Info().Str("stage", string(StageTrimming)).Int("segments", len(set.Highlights)).Msg("trimming clips")
	artifacts, failures := u.trimAll(ctx, in.VideoPath, tmpDir, set)

	final := highlights.Attach(set, artifacts)
	u.d.Log.Info().
		Str("stage", string(StageDone)).
		Int("clips", len(artifacts)).
		Int("failed", len(failures)).
		Msg("run complete")

	return Result{Highlights: final, Source: ref, TrimFailures: failures}, nil
}

func (u Usecase) uploadSource(ctx context.Context, videoPath string) (types.UploadRef, error) {
	f, err := os.Open(videoPath)
	if err != nil {
		return types.UploadRef{}, fmt.Errorf("open source video: %w", err)
	}
	defer f.Close()
	return u.d.Storage.Put(ctx, f, "uploads/"+filepath.Base(videoPath))
}

// trimAll cuts and uploads every segment's clip. The per-segment work units
// are independent, so they run concurrently; the pool is naturally bounded
// by the segment count (3 to 5). A failed segment is recorded and skipped,
// never aborting its siblings.
func (u Usecase) trimAll(ctx context.Context, videoPath, tmpDir string, set types.HighlightSet) (map[int]types.ClipArtifact, map[int]error) {
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		artifacts = make(map[int]types.ClipArtifact, len(set.Highlights))
		failures  = make(map[int]error)
	)

	for _, seg := range set.Highlights {
		seg := seg
		wg.Add(1)
		go func() {
			defer wg.Done()
			artifact, err := u.trimOne(ctx, videoPath, tmpDir, seg)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[seg.HighlightNumber] = err
				u.d.Log.Warn().
					Int("highlight", seg.HighlightNumber).
					Err(err).
					Msg("segment trim failed, continuing without clip")
				return
			}
			artifacts[seg.HighlightNumber] = artifact
		}()
	}
	wg.Wait()

	return artifacts, failures
}

func (u Usecase) trimOne(ctx context.Context, videoPath, tmpDir string, seg types.HighlightSegment) (types.ClipArtifact, error) {
	if err := ctx.Err(); err != nil {
		return types.ClipArtifact{}, err
	}

	name := fmt.Sprintf("highlight_%d.mp4", seg.HighlightNumber)
	outPath := filepath.Join(tmpDir, name)
	if err := u.d.Trimmer.Trim(ctx, videoPath, seg.StartTime, seg.EndTime, outPath); err != nil {
		return types.ClipArtifact{}, err
	}

	f, err := os.Open(outPath)
	if err != nil {
		return types.ClipArtifact{}, fmt.Errorf("open clip: %w", err)
	}
	defer f.Close()

	ref, err := u.d.Storage.Put(ctx, f, "highlights/"+name)
	if err != nil {
		return types.ClipArtifact{}, fmt.Errorf("upload clip: %w", err)
	}
	return types.ClipArtifact{
		HighlightNumber: seg.HighlightNumber,
		PublicURL:       ref.PublicURL,
		StorageURI:      ref.StorageURI,
	}, nil
}
