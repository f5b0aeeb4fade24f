package encoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"vidserve/metadata"
	"vidserve/namespace"
)

// fakeRunner stands in for the ffmpeg subprocess. It writes produce to the
// output path (the last argument) unless told to fail.
type fakeRunner struct {
	fail    bool
	produce []byte
	calls   int
}

func (f *fakeRunner) Run(ctx context.Context, args []string) error {
	f.calls++
	if f.fail {
		return fmt.Errorf("ffmpeg: exit status 1")
	}
	if f.produce == nil {
		return nil
	}
	return os.WriteFile(args[len(args)-1], f.produce, 0o644)
}

func newTestOrchestrator(t *testing.T, runner Runner) (*Orchestrator, *namespace.Manager, string) {
	t.Helper()
	base := t.TempDir()
	ns := namespace.NewManager(filepath.Join(base, "outputs"), filepath.Join(base, "uploads"))
	orch := NewOrchestrator(ns, metadata.NewStore(), runner, nil, nil)
	return orch, ns, base
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, []byte("raw video"), 0o644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}
	return path
}

func TestRunSuccess(t *testing.T) {
	runner := &fakeRunner{produce: make([]byte, 4096)}
	orch, ns, base := newTestOrchestrator(t, runner)
	input := writeInput(t, base)

	p := ResolveParams("720", "30", "mp4")
	asset, err := orch.Run(context.Background(), "alice", input, "clip.mp4", p)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if asset.Filename != "clip_720p_30fps.mp4" {
		t.Errorf("Expected canonical filename, got %s", asset.Filename)
	}

	dir, _ := ns.Resolve("alice")
	if asset.Path != filepath.Join(dir, asset.Filename) {
		t.Errorf("Output outside alice's namespace: %s", asset.Path)
	}
	if _, err := os.Stat(asset.Path); err != nil {
		t.Errorf("Output file missing: %v", err)
	}

	if asset.Metadata.Resolution != "720p" || asset.Metadata.Framerate != "30" || asset.Metadata.Format != "mp4" {
		t.Errorf("Unexpected metadata: %+v", asset.Metadata)
	}
	if asset.Metadata.SizeKB != 4 {
		t.Errorf("Expected size 4 KB, got %d", asset.Metadata.SizeKB)
	}

	if _, err := os.Stat(asset.Path + metadata.Suffix); err != nil {
		t.Errorf("Sidecar missing: %v", err)
	}
}

func TestRunEncoderFailure(t *testing.T) {
	runner := &fakeRunner{fail: true}
	orch, ns, base := newTestOrchestrator(t, runner)
	input := writeInput(t, base)

	p := ResolveParams("720", "30", "mp4")
	_, err := orch.Run(context.Background(), "alice", input, "clip.mp4", p)
	if !errors.Is(err, ErrEncodeFailed) {
		t.Fatalf("Expected ErrEncodeFailed, got %v", err)
	}

	// No partial metadata may exist after a failure.
	dir, _ := ns.Resolve("alice")
	sidecar := filepath.Join(dir, "clip_720p_30fps.mp4"+metadata.Suffix)
	if _, err := os.Stat(sidecar); !os.IsNotExist(err) {
		t.Error("Sidecar written despite encoder failure")
	}

	// The input file stays in place for diagnosis.
	if _, err := os.Stat(input); err != nil {
		t.Errorf("Input removed after failure: %v", err)
	}
}

func TestRunMissingOutput(t *testing.T) {
	// Encoder exits zero but produces nothing.
	runner := &fakeRunner{produce: nil}
	orch, _, base := newTestOrchestrator(t, runner)
	input := writeInput(t, base)

	p := ResolveParams("720", "30", "mp4")
	_, err := orch.Run(context.Background(), "alice", input, "clip.mp4", p)
	if !errors.Is(err, ErrEncodeFailed) {
		t.Fatalf("Expected ErrEncodeFailed for missing output, got %v", err)
	}
}

func TestRunEmptyOutput(t *testing.T) {
	runner := &fakeRunner{produce: []byte{}}
	orch, _, base := newTestOrchestrator(t, runner)
	input := writeInput(t, base)

	p := ResolveParams("720", "30", "mp4")
	_, err := orch.Run(context.Background(), "alice", input, "clip.mp4", p)
	if !errors.Is(err, ErrEncodeFailed) {
		t.Fatalf("Expected ErrEncodeFailed for empty output, got %v", err)
	}
}

func TestRunIdempotentOverwrite(t *testing.T) {
	runner := &fakeRunner{produce: make([]byte, 2048)}
	orch, _, base := newTestOrchestrator(t, runner)
	input := writeInput(t, base)

	p := ResolveParams("720", "30", "mp4")
	first, err := orch.Run(context.Background(), "alice", input, "clip.mp4", p)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	runner.produce = make([]byte, 8192)
	second, err := orch.Run(context.Background(), "alice", input, "clip.mp4", p)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if first.Path != second.Path {
		t.Errorf("Expected same canonical path, got %s and %s", first.Path, second.Path)
	}
	if second.Metadata.SizeKB != 8 {
		t.Errorf("Expected overwritten metadata size 8 KB, got %d", second.Metadata.SizeKB)
	}
	if runner.calls != 2 {
		t.Errorf("Expected 2 encoder invocations, got %d", runner.calls)
	}
}

func TestBuildArgs(t *testing.T) {
	p := ResolveParams("480", "60", "mov")
	args := buildArgs("in.mp4", "out.mov", p)

	want := []string{
		"-y", "-i", "in.mp4",
		"-vf", "scale=854:480,fps=60",
		"-c:v", "libx264", "-preset", "fast", "-crf", "23",
		"-c:a", "aac", "-b:a", "128k",
		"out.mov",
	}
	if len(args) != len(want) {
		t.Fatalf("Expected %d args, got %d: %v", len(want), len(args), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("Arg %d: expected %q, got %q", i, want[i], args[i])
		}
	}
}
