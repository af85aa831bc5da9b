// Package rearrange reassembles the tiles of an image in a new order.
package rearrange

import (
	"image"
	"log/slog"

	"github.com/sourcegraph/conc/pool"

	"github.com/kiesman99/retile/pkg/tile"
)

// Rearranger places source tiles into output slots
type Rearranger struct {
	workers int
	logger  *slog.Logger
}

// Option configures a Rearranger
type Option func(*Rearranger)

// WithWorkers copies tiles on up to n goroutines. n <= 1 copies sequentially.
func WithWorkers(n int) Option {
	return func(r *Rearranger) {
		r.workers = n
	}
}

// WithLogger overrides the logger returned by tile.Logger
func WithLogger(l *slog.Logger) Option {
	return func(r *Rearranger) {
		r.logger = l
	}
}

// New creates a new rearranger
func New(opts ...Option) *Rearranger {
	r := &Rearranger{workers: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rearrange uses a sequential Rearranger
func Rearrange(src image.Image, tileSize tile.Size, ordering tile.Ordering) (image.Image, error) {
	return New().Rearrange(src, tileSize, ordering)
}

func (r *Rearranger) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return tile.Logger()
}

// Rearrange returns a new image of the same bounds and color model as src in
// which output slot i holds source tile ordering[i]. src is never modified.
// If the arrangement is not valid for src an *InvalidArrangementError is
// returned and nothing is allocated.
func (r *Rearranger) Rearrange(src image.Image, tileSize tile.Size, ordering tile.Ordering) (image.Image, error) {
	bounds := src.Bounds()
	imageSize := tile.Size{Width: bounds.Dx(), Height: bounds.Dy()}

	if err := tile.Validate(imageSize, tileSize, ordering); err != nil {
		r.log().Warn("rejected arrangement",
			"image", imageSize.String(),
			"tile", tileSize.String(),
			"tiles", len(ordering),
			"reason", err.Error())
		return nil, &InvalidArrangementError{Cause: err}
	}

	grid, err := tile.NewGrid(imageSize, tileSize)
	if err != nil {
		return nil, &InvalidArrangementError{Cause: err}
	}

	r.log().Debug("rearranging",
		"image", imageSize.String(),
		"tile", tileSize.String(),
		"cols", grid.Cols,
		"rows", grid.Rows)

	in := Wrap(src)
	out := in.Blank()

	place := func(slot int) {
		srcRect := grid.Rect(ordering[slot]).Add(bounds.Min)
		dst := grid.Origin(slot).Add(bounds.Min)
		out.Paste(in.Crop(srcRect), dst)
	}

	if r.workers <= 1 {
		for slot := range ordering {
			place(slot)
		}
	} else {
		// Destination rectangles are disjoint so slots can be written in any order
		p := pool.New().WithMaxGoroutines(r.workers)
		for slot := range ordering {
			p.Go(func() {
				place(slot)
			})
		}
		p.Wait()
	}

	r.log().Info("rearranged image", "tiles", grid.Count(), "workers", r.workers)
	return out.Image(), nil
}

// Scramble rearranges src with the ordering derived from seed and returns
// that ordering alongside the image
func (r *Rearranger) Scramble(src image.Image, tileSize tile.Size, seed uint32) (image.Image, tile.Ordering, error) {
	ordering := tile.Shuffle(seed, tileCount(src, tileSize))
	out, err := r.Rearrange(src, tileSize, ordering)
	if err != nil {
		return nil, nil, err
	}
	return out, ordering, nil
}

// Unscramble reverses Scramble for the same tile size and seed
func (r *Rearranger) Unscramble(src image.Image, tileSize tile.Size, seed uint32) (image.Image, tile.Ordering, error) {
	ordering := tile.Shuffle(seed, tileCount(src, tileSize)).Inverse()
	out, err := r.Rearrange(src, tileSize, ordering)
	if err != nil {
		return nil, nil, err
	}
	return out, ordering, nil
}

// tileCount is zero when tileSize does not divide the image; Rearrange then
// rejects the arrangement.
func tileCount(src image.Image, tileSize tile.Size) int {
	b := src.Bounds()
	grid, err := tile.NewGrid(tile.Size{Width: b.Dx(), Height: b.Dy()}, tileSize)
	if err != nil {
		return 0
	}
	return grid.Count()
}
