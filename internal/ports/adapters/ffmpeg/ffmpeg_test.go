package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"highlight-reel/internal/cmdexec"
)

type fakeRunner struct {
	calls   [][]string
	result  cmdexec.Result
	err     error
	outFile string // when set, written before returning
	outData []byte
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (cmdexec.Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.outFile != "" {
		if err := os.WriteFile(f.outFile, f.outData, 0o644); err != nil {
			return cmdexec.Result{}, err
		}
	}
	return f.result, f.err
}

func TestTrimRejectsBadRangeWithoutInvokingTool(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		start, end string
	}{
		{name: "start_after_end", start: "00:02:00", end: "00:01:00"},
		{name: "start_equals_end", start: "01:00", end: "01:00"},
		{name: "malformed_start", start: "1:2:3:4", end: "01:00"},
		{name: "malformed_end", start: "00:30", end: "sixty"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fr := &fakeRunner{}
			a := New("", false)
			a.runner = fr

			err := a.Trim(context.Background(), "in.mp4", tc.start, tc.end, "out.mp4")
			if !errors.Is(err, ErrProcessFailure) {
				t.Fatalf("err = %v, want ErrProcessFailure", err)
			}
			if len(fr.calls) != 0 {
				t.Fatalf("external tool was invoked: %v", fr.calls)
			}
		})
	}
}

func TestTrimStreamCopyArgs(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "clip.mp4")
	fr := &fakeRunner{outFile: out, outData: []byte("mp4")}
	a := New("", false)
	a.runner = fr

	if err := a.Trim(context.Background(), "in.mp4", "00:01:00", "00:02:00", out); err != nil {
		t.Fatalf("trim: %v", err)
	}
	if len(fr.calls) != 1 {
		t.Fatalf("expected one invocation, got %d", len(fr.calls))
	}
	got := strings.Join(fr.calls[0], " ")
	want := "ffmpeg -i in.mp4 -ss 00:01:00 -to 00:02:00 -c copy " + out + " -y"
	if got != want {
		t.Fatalf("args = %q, want %q", got, want)
	}
}

func TestTrimReencodeArgs(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "clip.mp4")
	fr := &fakeRunner{outFile: out, outData: []byte("mp4")}
	a := New("/usr/local/bin/ffmpeg", true)
	a.runner = fr

	if err := a.Trim(context.Background(), "in.mp4", "00:10", "00:20", out); err != nil {
		t.Fatalf("trim: %v", err)
	}
	got := strings.Join(fr.calls[0], " ")
	if !strings.HasPrefix(got, "/usr/local/bin/ffmpeg ") {
		t.Fatalf("wrong binary: %q", got)
	}
	if !strings.Contains(got, "-c:v libx264") || !strings.Contains(got, "-c:a aac") {
		t.Fatalf("expected re-encode codecs in %q", got)
	}
	if strings.Contains(got, "-c copy") {
		t.Fatalf("stream copy flag present in re-encode mode: %q", got)
	}
}

func TestTrimNonZeroExit(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{result: cmdexec.Result{ExitCode: 1, StderrTail: "moov atom not found"}}
	a := New("", false)
	a.runner = fr

	err := a.Trim(context.Background(), "in.mp4", "00:10", "00:20", filepath.Join(t.TempDir(), "clip.mp4"))
	if !errors.Is(err, ErrProcessFailure) {
		t.Fatalf("err = %v, want ErrProcessFailure", err)
	}
	if !strings.Contains(err.Error(), "moov atom not found") {
		t.Fatalf("stderr tail not surfaced: %v", err)
	}
}

func TestTrimEmptyOutput(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "clip.mp4")
	fr := &fakeRunner{outFile: out} // zero bytes written
	a := New("", false)
	a.runner = fr

	err := a.Trim(context.Background(), "in.mp4", "00:10", "00:20", out)
	if !errors.Is(err, ErrIOFailure) {
		t.Fatalf("err = %v, want ErrIOFailure", err)
	}
}

func TestTrimMissingOutput(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{} // tool "succeeds" but writes nothing
	a := New("", false)
	a.runner = fr

	err := a.Trim(context.Background(), "in.mp4", "00:10", "00:20", filepath.Join(t.TempDir(), "clip.mp4"))
	if !errors.Is(err, ErrIOFailure) {
		t.Fatalf("err = %v, want ErrIOFailure", err)
	}
}
