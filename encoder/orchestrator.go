package encoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"vidserve/archive"
	"vidserve/history"
	"vidserve/logger"
	"vidserve/metadata"
	"vidserve/models"
	"vidserve/namespace"
)

// ErrEncodeFailed is returned when the external encoder exits non-zero or
// produces no usable output. No metadata is persisted in that case and the
// input file is left in place for diagnosis.
var ErrEncodeFailed = errors.New("encode failed")

// Orchestrator runs one blocking encode: it builds the canonical output path,
// invokes the external encoder, and persists the sidecar record on success.
type Orchestrator struct {
	ns     *namespace.Manager
	meta   *metadata.Store
	runner Runner
	hist   *history.Store
	arch   *archive.Replicator
}

// NewOrchestrator wires an orchestrator. hist and arch may be nil.
func NewOrchestrator(ns *namespace.Manager, meta *metadata.Store, runner Runner, hist *history.Store, arch *archive.Replicator) *Orchestrator {
	return &Orchestrator{ns: ns, meta: meta, runner: runner, hist: hist, arch: arch}
}

// Run encodes inputPath for identity into the canonical output derived from
// sourceName and the resolved parameters. It blocks for the full duration of
// the encode. The subprocess is detached from request cancellation so a
// dropped connection cannot leave a finished file without its sidecar.
func (o *Orchestrator) Run(ctx context.Context, identity, inputPath, sourceName string, p models.CanonicalParams) (models.OutputAsset, error) {
	dir, err := o.ns.Resolve(identity)
	if err != nil {
		return models.OutputAsset{}, err
	}

	outName := OutputName(sourceName, p)
	outPath := filepath.Join(dir, outName)

	args := buildArgs(inputPath, outPath, p)
	logger.Debugf("Running encoder for %s: %v", identity, args)

	if err := o.runner.Run(context.WithoutCancel(ctx), args); err != nil {
		return models.OutputAsset{}, o.fail(identity, outName, p, err)
	}

	// The encoder can exit zero without producing anything useful.
	if info, err := os.Stat(outPath); err != nil || info.Size() == 0 {
		return models.OutputAsset{}, o.fail(identity, outName, p, fmt.Errorf("output file missing or empty"))
	}

	record, err := o.meta.Write(outPath, p)
	if err != nil {
		return models.OutputAsset{}, o.fail(identity, outName, p, err)
	}

	o.recordOutcome(identity, outName, p, nil)
	o.replicate(ctx, identity, outPath, outName)

	return models.OutputAsset{
		Identity: identity,
		Filename: outName,
		Path:     outPath,
		Metadata: record,
	}, nil
}

func buildArgs(inputPath, outputPath string, p models.CanonicalParams) []string {
	return []string{
		"-y", "-i", inputPath,
		"-vf", fmt.Sprintf("scale=%s,fps=%s", p.Scale, p.Framerate),
		"-c:v", "libx264", "-preset", "fast", "-crf", "23",
		"-c:a", "aac", "-b:a", "128k",
		outputPath,
	}
}

func (o *Orchestrator) fail(identity, outName string, p models.CanonicalParams, cause error) error {
	logger.Errorf("Encode failed for %s/%s: %v", identity, outName, cause)
	o.recordOutcome(identity, outName, p, cause)
	return fmt.Errorf("%w: %v", ErrEncodeFailed, cause)
}

func (o *Orchestrator) recordOutcome(identity, outName string, p models.CanonicalParams, cause error) {
	if o.hist == nil {
		return
	}
	rec := history.Record{
		Identity:   identity,
		Filename:   outName,
		Status:     history.StatusSuccess,
		Resolution: p.Resolution(),
		Framerate:  p.Framerate,
		Format:     p.Format,
	}
	if cause != nil {
		rec.Status = history.StatusFailed
		rec.Error = cause.Error()
	}
	if err := o.hist.Add(rec); err != nil {
		logger.Errorf("Failed to record encode outcome for %s/%s: %v", identity, outName, err)
	}
}

// replicate pushes the output and its sidecar to the archive backend.
// Archive errors are logged, never surfaced: the local namespace remains the
// source of truth.
func (o *Orchestrator) replicate(ctx context.Context, identity, outPath, outName string) {
	if o.arch == nil || !o.arch.Enabled() {
		return
	}
	for _, name := range []string{outName, outName + metadata.Suffix} {
		f, err := os.Open(filepath.Join(filepath.Dir(outPath), name))
		if err != nil {
			logger.Errorf("Failed to open %s for archiving: %v", name, err)
			continue
		}
		if err := o.arch.Store(ctx, path.Join(identity, name), f); err != nil {
			logger.Errorf("Failed to archive %s/%s: %v", identity, name, err)
		}
		f.Close()
	}
}
