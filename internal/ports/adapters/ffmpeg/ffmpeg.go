package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"highlight-reel/internal/cmdexec"
	"highlight-reel/internal/timecode"
)

var (
	// ErrProcessFailure reports a rejected time range or a non-zero tool
	// exit. Scoped to one segment; sibling trims are unaffected.
	ErrProcessFailure = errors.New("trim process failure")
	// ErrIOFailure reports a missing or empty output file after the tool
	// claimed success.
	ErrIOFailure = errors.New("trim output failure")
)

const defaultTrimTimeout = 5 * time.Minute

// runner matches cmdexec.Runner; tests substitute a recording fake.
type runner interface {
	Run(ctx context.Context, name string, args ...string) (cmdexec.Result, error)
}

type Adapter struct {
	ffmpeg   string
	reencode bool
	runner   runner
}

// New returns a trimmer invoking ffmpegPath (default "ffmpeg").
//
// By default clips are cut in stream-copy mode: no re-encoding, so the
// actual cut snaps to the nearest preceding keyframe rather than the exact
// requested timestamp. The drift is bounded by one keyframe interval,
// commonly 1-10 seconds depending on the source encoding. With reencode set,
// cuts are frame-exact at a substantial latency cost.
func New(ffmpegPath string, reencode bool) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Adapter{
		ffmpeg:   ffmpegPath,
		reencode: reencode,
		runner:   cmdexec.Runner{Timeout: defaultTrimTimeout},
	}
}

// Trim cuts [start, end) out of inPath into outPath. The range is
// re-validated before the tool runs: a range that does not parse to
// strictly increasing seconds fails fast with ErrProcessFailure and no
// subprocess is started.
func (a *Adapter) Trim(ctx context.Context, inPath, start, end, outPath string) error {
	st, err := timecode.ParseSeconds(start)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProcessFailure, err)
	}
	en, err := timecode.ParseSeconds(end)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProcessFailure, err)
	}
	if en <= st {
		return fmt.Errorf("%w: start %s is not before end %s", ErrProcessFailure, start, end)
	}

	args := []string{
		"-i", inPath,
		"-ss", start,
		"-to", end,
	}
	if a.reencode {
		args = append(args, "-c:v", "libx264", "-preset", "veryfast", "-c:a", "aac")
	} else {
		args = append(args, "-c", "copy")
	}
	args = append(args, outPath, "-y")

	res, err := a.runner.Run(ctx, a.ffmpeg, args...)
	if err != nil {
		return fmt.Errorf("%w: ffmpeg: %v", ErrProcessFailure, err)
	}
	if !res.IsSuccess() {
		return fmt.Errorf("%w: ffmpeg exited %d after %s: %s", ErrProcessFailure, res.ExitCode, res.Duration.Round(time.Millisecond), res.StderrTail)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: ffmpeg wrote an empty file to %s", ErrIOFailure, outPath)
	}
	return nil
}
