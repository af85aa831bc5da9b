package retile

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/kiesman99/retile/pkg/tile"
)

// Manifest lists the jobs of a batch run
type Manifest struct {
	Jobs []ManifestJob `yaml:"jobs"`
}

// ManifestJob is a single manifest entry. Either Ordering or Seed must be set.
type ManifestJob struct {
	Input    string  `yaml:"input"`
	Output   string  `yaml:"output"`
	Tile     string  `yaml:"tile"`
	Ordering []int   `yaml:"ordering,omitempty"`
	Seed     *uint32 `yaml:"seed,omitempty"`
	Inverse  bool    `yaml:"inverse,omitempty"`
}

// LoadManifest reads a YAML manifest from path
func LoadManifest(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Batch runs every job of the manifest on up to concurrency goroutines. All
// failures are returned together; a failing job does not stop the others.
func (r *Runner) Batch(ctx context.Context, m *Manifest, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}

	errs := make([]error, len(m.Jobs))
	p := pool.New().WithMaxGoroutines(concurrency)
	for i, job := range m.Jobs {
		p.Go(func() {
			if err := r.runManifestJob(ctx, job); err != nil {
				errs[i] = fmt.Errorf("job %d (%s): %w", i+1, job.Input, err)
			}
		})
	}
	p.Wait()

	return multierr.Combine(errs...)
}

func (r *Runner) runManifestJob(ctx context.Context, job ManifestJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if job.Output == "" {
		return fmt.Errorf("output is required")
	}

	size, err := tile.ParseSize(job.Tile)
	if err != nil {
		return err
	}

	if job.Seed != nil {
		_, err := r.Scramble(ctx, ScrambleJob{
			Input:    job.Input,
			Output:   job.Output,
			TileSize: size,
			Seed:     *job.Seed,
			Inverse:  job.Inverse,
		})
		return err
	}

	return r.Rearrange(ctx, Job{
		Input:    job.Input,
		Output:   job.Output,
		TileSize: size,
		Ordering: job.Ordering,
	})
}
