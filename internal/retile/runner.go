// Package retile runs rearrangements end to end: load, rearrange, save.
package retile

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/kiesman99/retile/internal/rearrange"
	"github.com/kiesman99/retile/pkg/tile"
	"github.com/spf13/afero"
)

// Options configures a Runner
type Options struct {
	UserAgent string
	Workers   int
	Quality   int
	// Format overrides the format guessed from the output file name
	Format *tile.Format
}

// Job describes one rearrangement
type Job struct {
	Input    string
	Output   string
	TileSize tile.Size
	Ordering tile.Ordering
}

// ScrambleJob describes a seeded scramble, or its reversal when Inverse is set
type ScrambleJob struct {
	Input    string
	Output   string
	TileSize tile.Size
	Seed     uint32
	Inverse  bool
}

// Runner handles loading, rearranging and saving images
type Runner struct {
	processor  *tile.Processor
	rearranger *rearrange.Rearranger
	options    *Options

	// stdoutIsTerminal is replaced in tests
	stdoutIsTerminal func() bool
}

// NewRunner creates a new runner instance working on fs
func NewRunner(fs afero.Fs, opts *Options) *Runner {
	if opts == nil {
		opts = &Options{}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "retile/1.0.0"
	}

	return &Runner{
		processor:        tile.NewProcessor(fs, userAgent),
		rearranger:       rearrange.New(rearrange.WithWorkers(opts.Workers)),
		options:          opts,
		stdoutIsTerminal: stdoutIsTerminal,
	}
}

func stdoutIsTerminal() bool {
	stat, err := os.Stdout.Stat()
	return err == nil && (stat.Mode()&os.ModeCharDevice) != 0
}

// Rearrange loads job.Input, places its tiles per job.Ordering and writes job.Output
func (r *Runner) Rearrange(ctx context.Context, job Job) error {
	if err := r.checkOutput(job.Output); err != nil {
		return err
	}

	src, err := r.load(ctx, job.Input)
	if err != nil {
		return err
	}

	out, err := r.rearranger.Rearrange(src, job.TileSize, job.Ordering)
	if err != nil {
		return err
	}

	return r.save(job.Output, out)
}

// Scramble loads job.Input, scrambles it with job.Seed and writes job.Output.
// The ordering that was applied is returned.
func (r *Runner) Scramble(ctx context.Context, job ScrambleJob) (tile.Ordering, error) {
	if err := r.checkOutput(job.Output); err != nil {
		return nil, err
	}

	src, err := r.load(ctx, job.Input)
	if err != nil {
		return nil, err
	}

	var (
		out      image.Image
		ordering tile.Ordering
	)
	if job.Inverse {
		out, ordering, err = r.rearranger.Unscramble(src, job.TileSize, job.Seed)
	} else {
		out, ordering, err = r.rearranger.Scramble(src, job.TileSize, job.Seed)
	}
	if err != nil {
		return nil, err
	}

	return ordering, r.save(job.Output, out)
}

func (r *Runner) checkOutput(output string) error {
	if (output == "" || output == "-") && r.stdoutIsTerminal() {
		return fmt.Errorf("didn't specify output file and standard output is a terminal")
	}
	return nil
}

func (r *Runner) load(ctx context.Context, input string) (image.Image, error) {
	if input == "" {
		return nil, fmt.Errorf("no input image provided")
	}

	img, format, err := r.processor.Load(ctx, input)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	tile.Logger().Debug("loaded image", "input", input, "format", format, "size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))
	return img, nil
}

func (r *Runner) save(output string, img image.Image) error {
	format := tile.FormatPNG
	if r.options.Format != nil {
		format = *r.options.Format
	} else if f, ok := tile.FormatFromPath(output); ok {
		format = f
	}

	if err := r.processor.Save(output, img, format, r.options.Quality); err != nil {
		return fmt.Errorf("failed to write %s: %w", format, err)
	}

	tile.Logger().Info("wrote image", "output", output, "format", format.String())
	return nil
}
