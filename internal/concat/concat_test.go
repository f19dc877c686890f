package concat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ffkit/internal/ffmpeg"
	"ffkit/internal/media/ffprobe"
	"ffkit/internal/services"
)

type stubProber struct {
	mu    sync.Mutex
	dims  map[string]ffprobe.Dimensions
	errs  map[string]error
	calls []string
}

func (p *stubProber) Dimensions(_ context.Context, file string) (ffprobe.Dimensions, error) {
	p.mu.Lock()
	p.calls = append(p.calls, file)
	p.mu.Unlock()
	if err := p.errs[file]; err != nil {
		return ffprobe.Dimensions{}, err
	}
	return p.dims[file], nil
}

type recordingRunner struct {
	args []string
	runs int
	err  error
}

func (r *recordingRunner) Run(_ context.Context, args []string) error {
	r.runs++
	r.args = append([]string(nil), args...)
	return r.err
}

func (r *recordingRunner) Binary() string { return "ffmpeg" }

func TestConcatBuildsNormalisingCommand(t *testing.T) {
	prober := &stubProber{dims: map[string]ffprobe.Dimensions{
		"a.mp4": {Width: 100, Height: 200},
		"b.mp4": {Width: 300, Height: 150},
	}}
	runner := &recordingRunner{}

	if err := New(prober, runner).Concat(context.Background(), []string{"a.mp4", "b.mp4"}, "out.mp4"); err != nil {
		t.Fatalf("Concat returned error: %v", err)
	}

	graph := "[0:v]scale=300:200:force_original_aspect_ratio=decrease,pad=300:200:(ow-iw)/2:(oh-ih)/2,setsar=1[v0];" +
		"[1:v]scale=300:200:force_original_aspect_ratio=decrease,pad=300:200:(ow-iw)/2:(oh-ih)/2,setsar=1[v1];" +
		"[v0][v1]concat=n=2:v=1[outv]"
	want := []string{
		"-loglevel", "info",
		"-i", "a.mp4",
		"-i", "b.mp4",
		"-filter_complex", graph,
		"-c:v", "libx264",
		"-r", "30",
		"-map", "[outv]",
		"out.mp4",
		"-y",
	}
	if diff := cmp.Diff(want, runner.args); diff != "" {
		t.Fatalf("unexpected argv (-want +got):\n%s", diff)
	}
}

func TestConcatHonoursOptions(t *testing.T) {
	prober := &stubProber{dims: map[string]ffprobe.Dimensions{"a.mp4": {Width: 640, Height: 480}}}
	runner := &recordingRunner{}

	c := New(prober, runner, WithVideoCodec("libx265"), WithFPS(24), WithLogLevel(ffmpeg.LogWarning))
	if err := c.Concat(context.Background(), []string{"a.mp4"}, "out.mkv"); err != nil {
		t.Fatalf("Concat returned error: %v", err)
	}
	joined := strings.Join(runner.args, " ")
	for _, want := range []string{"-loglevel warning", "-c:v libx265", "-r 24", "concat=n=1:v=1[outv]"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in %q", want, joined)
		}
	}
}

func TestConcatProbeFailureIsDistinguishable(t *testing.T) {
	probeErr := &services.ProcessError{Tool: "ffprobe", ExitCode: 1}
	prober := &stubProber{
		dims: map[string]ffprobe.Dimensions{"a.mp4": {Width: 1, Height: 1}},
		errs: map[string]error{"b.mp4": probeErr},
	}
	runner := &recordingRunner{}

	err := New(prober, runner).Concat(context.Background(), []string{"a.mp4", "b.mp4"}, "out.mp4")
	if !errors.Is(err, ErrProbe) {
		t.Fatalf("expected ErrProbe, got %v", err)
	}
	if errors.Is(err, ErrTranscode) {
		t.Fatalf("probe failure must not match ErrTranscode: %v", err)
	}
	if services.ExitCode(err) != 1 {
		t.Fatalf("expected probe exit code to be preserved, got %d", services.ExitCode(err))
	}
	if runner.runs != 0 {
		t.Fatalf("expected no transcode after probe failure, got %d runs", runner.runs)
	}
}

func TestConcatTranscodeFailureIsDistinguishable(t *testing.T) {
	prober := &stubProber{dims: map[string]ffprobe.Dimensions{"a.mp4": {Width: 1, Height: 1}}}
	runner := &recordingRunner{err: &services.ProcessError{Tool: "ffmpeg", ExitCode: 183}}

	err := New(prober, runner).Concat(context.Background(), []string{"a.mp4"}, "out.mp4")
	if !errors.Is(err, ErrTranscode) {
		t.Fatalf("expected ErrTranscode, got %v", err)
	}
	if errors.Is(err, ErrProbe) {
		t.Fatalf("transcode failure must not match ErrProbe: %v", err)
	}
	if !errors.Is(err, services.ErrProcessFailure) || services.ExitCode(err) != 183 {
		t.Fatalf("expected wrapped process failure with exit 183, got %v", err)
	}
}

func TestConcatRejectsEmptyInputsBeforeProbing(t *testing.T) {
	prober := &stubProber{}
	runner := &recordingRunner{}

	err := New(prober, runner).Concat(context.Background(), nil, "out.mp4")
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	if len(prober.calls) != 0 || runner.runs != 0 {
		t.Fatalf("expected no probes or runs, got %d probes and %d runs", len(prober.calls), runner.runs)
	}

	err = New(prober, runner).Concat(context.Background(), []string{"a.mp4"}, " ")
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected precondition error for empty output, got %v", err)
	}
}

func TestPlanDoesNotRun(t *testing.T) {
	prober := &stubProber{dims: map[string]ffprobe.Dimensions{"a.mp4": {Width: 2, Height: 2}}}
	runner := &recordingRunner{}

	cmd, err := New(prober, runner).Plan(context.Background(), []string{"a.mp4"}, "out.mp4")
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if runner.runs != 0 {
		t.Fatal("Plan must not run ffmpeg")
	}
	if !strings.HasPrefix(cmd.String(), "ffmpeg -loglevel info -i a.mp4 -filter_complex '[0:v]scale=2:2") {
		t.Fatalf("unexpected planned command %q", cmd.String())
	}
}

func TestMaxDimensionsTakesAxesIndependently(t *testing.T) {
	got := MaxDimensions([]ffprobe.Dimensions{{Width: 100, Height: 200}, {Width: 300, Height: 150}})
	if got != (ffprobe.Dimensions{Width: 300, Height: 200}) {
		t.Fatalf("unexpected target %+v", got)
	}
}

func TestBuildFiltergraphClausePerInput(t *testing.T) {
	graph := BuildFiltergraph(3, ffprobe.Dimensions{Width: 1920, Height: 1080})
	if got := strings.Count(graph, "scale=1920:1080:force_original_aspect_ratio=decrease"); got != 3 {
		t.Fatalf("expected 3 scale clauses, got %d in %q", got, graph)
	}
	if !strings.HasSuffix(graph, "[v0][v1][v2]concat=n=3:v=1[outv]") {
		t.Fatalf("unexpected concat clause in %q", graph)
	}
}

func TestConcatProbesAndTranscodesSamePath(t *testing.T) {
	dir := t.TempDir()
	seen := filepath.Join(dir, "seen")
	script := filepath.Join(dir, "ffprobe")
	body := "#!/bin/sh\nfor last; do :; done\nprintf '%s' \"$last\" > \"" + seen + "\"\necho 640x480\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	runner := &recordingRunner{}

	clip := " clip.mp4"
	c := New(ffprobe.New(ffprobe.WithBinary(script)), runner)
	if err := c.Concat(context.Background(), []string{clip}, "out.mp4"); err != nil {
		t.Fatalf("Concat returned error: %v", err)
	}

	probed, err := os.ReadFile(seen)
	if err != nil {
		t.Fatalf("read recorded path: %v", err)
	}
	if string(probed) != clip {
		t.Fatalf("ffprobe saw %q, want %q", probed, clip)
	}
	if len(runner.args) < 4 || runner.args[2] != "-i" || runner.args[3] != clip {
		t.Fatalf("expected ffmpeg input %q, got %v", clip, runner.args)
	}
}
