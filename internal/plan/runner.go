package plan

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/sync/errgroup"

	"github.com/fpgacores/testvec/internal/fixture"
	"github.com/fpgacores/testvec/internal/index"
	"github.com/fpgacores/testvec/internal/logging"
	"github.com/fpgacores/testvec/internal/metrics"
	"github.com/fpgacores/testvec/vector"
)

// Runner generates the fixtures of a plan into OutDir. Index, Metrics, Log
// and Progress are optional.
type Runner struct {
	OutDir  string
	Workers int
	// Force regenerates fixtures that already exist.
	Force    bool
	Index    *index.Index
	Metrics  *metrics.Metrics
	Log      *logging.Logger
	Progress io.Writer
}

type Result struct {
	Name     string
	Skipped  bool
	Manifest *fixture.Manifest
}

// Run generates every job of p. Results are in job order. The first failing
// job cancels the jobs that have not started yet.
func (r *Runner) Run(ctx context.Context, p *Plan) ([]Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(p.Jobs) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return nil, err
	}
	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}

	out := r.Progress
	if out == nil {
		out = io.Discard
	}
	// Cancellation reaches the jobs through the errgroup; the bar is aborted
	// on failure so Wait returns.
	prog := mpb.New(mpb.WithOutput(out), mpb.WithWidth(80))
	bar := prog.AddBar(int64(len(p.Jobs)),
		mpb.PrependDecorators(
			decor.Name("Fixtures: "),
			decor.CountersNoUnit("%d / %d", decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Percentage(decor.WC{W: 5}), "done"),
		),
	)

	results := make([]Result, len(p.Jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range p.Jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.runJob(p, i)
			if err != nil {
				r.Metrics.Failed()
				r.Log.Error("fixture %s: %v", p.Jobs[i].Name, err)
				return fmt.Errorf("fixture %s: %w", p.Jobs[i].Name, err)
			}
			results[i] = res
			bar.Increment()
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		bar.Abort(false)
	}
	prog.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runJob(p *Plan, i int) (Result, error) {
	job := &p.Jobs[i]
	paths := fixture.Paths{Dir: r.OutDir, Name: job.Name}
	if !r.Force && r.upToDate(job, paths) {
		r.Log.Debug("fixture %s exists, skipping", job.Name)
		r.Metrics.Skipped()
		return Result{Name: job.Name, Skipped: true}, nil
	}

	seed := p.Seed + int64(i)
	src, err := vector.NewSource(p.Source, seed)
	if err != nil {
		return Result{}, err
	}
	start := time.Now()
	v, err := vector.Generate(src, job.Params())
	if err != nil {
		return Result{}, err
	}
	if err := v.WriteFiles(paths.Input(), paths.Reference()); err != nil {
		return Result{}, err
	}
	m, err := fixture.Build(job.Name, p.Source, seed, v, paths.Input(), paths.Reference())
	if err != nil {
		return Result{}, err
	}
	if err := m.Save(paths.Manifest()); err != nil {
		return Result{}, fmt.Errorf("write manifest: %w", err)
	}
	for _, variant := range job.Variants {
		if err := vector.CorruptFile(paths.Reference(), paths.Variant(variant), variant); err != nil {
			return Result{}, err
		}
		r.Metrics.Variant()
	}
	if r.Index != nil {
		if err := r.Index.Put(m); err != nil {
			return Result{}, fmt.Errorf("index: %w", err)
		}
	}
	took := time.Since(start)
	r.Metrics.Generated(v, took)
	r.Log.Info("fixture %s: width=%d length=%d ratio=%s words=%d bytes=%d (%v)",
		job.Name, job.Params().Width, job.Length, job.Params().Ratio, len(v.Words), len(v.Packed), took)
	return Result{Name: job.Name, Manifest: m}, nil
}

// upToDate reports whether the fixture files and manifest are all present
// and, when an index is attached, recorded in it.
func (r *Runner) upToDate(job *Job, paths fixture.Paths) bool {
	if !paths.Exist(job.Variants...) {
		return false
	}
	if _, err := os.Stat(paths.Manifest()); err != nil {
		return false
	}
	return r.Index == nil || r.Index.Has(job.Name)
}
