package retile

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/kiesman99/retile/internal/rearrange"
	"github.com/kiesman99/retile/pkg/tile"
)

type RunnerSuite struct {
	suite.Suite
	ctx    context.Context
	fs     afero.Fs
	runner *Runner
	src    *image.NRGBA
}

func (s *RunnerSuite) SetupTest() {
	s.ctx = context.Background()
	s.fs = afero.NewMemMapFs()
	s.runner = NewRunner(s.fs, &Options{Workers: 2})
	s.runner.stdoutIsTerminal = func() bool { return true }

	s.src = image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			s.src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 60), B: 7, A: uint8(100 + x + y)})
		}
	}

	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, s.src))
	s.Require().NoError(afero.WriteFile(s.fs, "in.png", buf.Bytes(), 0o644))
}

func (s *RunnerSuite) loadOutput(name string) *image.NRGBA {
	data, err := afero.ReadFile(s.fs, name)
	s.Require().NoError(err)

	img, err := png.Decode(bytes.NewReader(data))
	s.Require().NoError(err)

	nrgba, ok := img.(*image.NRGBA)
	s.Require().True(ok, "got %T", img)
	return nrgba
}

// TestRearrange swaps the two tiles of every row.
func (s *RunnerSuite) TestRearrange() {
	err := s.runner.Rearrange(s.ctx, Job{
		Input:    "in.png",
		Output:   "out.png",
		TileSize: tile.Size{Width: 2, Height: 2},
		Ordering: tile.Ordering{1, 0, 3, 2},
	})
	s.Require().NoError(err)

	out := s.loadOutput("out.png")
	s.Equal(s.src.NRGBAAt(2, 0), out.NRGBAAt(0, 0))
	s.Equal(s.src.NRGBAAt(0, 0), out.NRGBAAt(2, 0))
	s.Equal(s.src.NRGBAAt(3, 3), out.NRGBAAt(1, 3))
	s.Equal(s.src.NRGBAAt(1, 3), out.NRGBAAt(3, 3))
}

// TestRearrangeInvalid leaves no output behind.
func (s *RunnerSuite) TestRearrangeInvalid() {
	err := s.runner.Rearrange(s.ctx, Job{
		Input:    "in.png",
		Output:   "out.png",
		TileSize: tile.Size{Width: 3, Height: 3},
		Ordering: tile.Ordering{0},
	})
	s.Require().ErrorIs(err, rearrange.ErrInvalidArrangement)
	s.Equal("The tile size or ordering are not valid for the given image", err.Error())

	exists, err := afero.Exists(s.fs, "out.png")
	s.Require().NoError(err)
	s.False(exists)
}

// TestRefusesTerminalStdout mirrors the check for an interactive stdout.
func (s *RunnerSuite) TestRefusesTerminalStdout() {
	err := s.runner.Rearrange(s.ctx, Job{
		Input:    "in.png",
		TileSize: tile.Size{Width: 2, Height: 2},
		Ordering: tile.Identity(4),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "standard output is a terminal")
}

func (s *RunnerSuite) TestMissingInput() {
	err := s.runner.Rearrange(s.ctx, Job{
		Input:    "nope.png",
		Output:   "out.png",
		TileSize: tile.Size{Width: 2, Height: 2},
		Ordering: tile.Identity(4),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "nope.png")
}

// TestScrambleRoundTrip restores the input with the same seed.
func (s *RunnerSuite) TestScrambleRoundTrip() {
	ordering, err := s.runner.Scramble(s.ctx, ScrambleJob{
		Input:    "in.png",
		Output:   "scrambled.png",
		TileSize: tile.Size{Width: 1, Height: 1},
		Seed:     1234,
	})
	s.Require().NoError(err)
	s.Equal(tile.Shuffle(1234, 16), ordering)

	_, err = s.runner.Scramble(s.ctx, ScrambleJob{
		Input:    "scrambled.png",
		Output:   "restored.png",
		TileSize: tile.Size{Width: 1, Height: 1},
		Seed:     1234,
		Inverse:  true,
	})
	s.Require().NoError(err)

	s.Equal(s.src.Pix, s.loadOutput("restored.png").Pix)
}

// TestFormatOverride writes JPEG despite the .png extension.
func (s *RunnerSuite) TestFormatOverride() {
	format := tile.FormatJPEG
	runner := NewRunner(s.fs, &Options{Format: &format})

	err := runner.Rearrange(s.ctx, Job{
		Input:    "in.png",
		Output:   "out.png",
		TileSize: tile.Size{Width: 4, Height: 4},
		Ordering: tile.Identity(1),
	})
	s.Require().NoError(err)

	data, err := afero.ReadFile(s.fs, "out.png")
	s.Require().NoError(err)
	s.Equal([]byte{0xFF, 0xD8}, data[:2])
}

func (s *RunnerSuite) TestBatch() {
	manifest := `
jobs:
  - input: in.png
    output: a.png
    tile: 2x2
    ordering: [1, 0, 3, 2]
  - input: in.png
    output: b.png
    tile: 2x2
    seed: 9
  - input: in.png
    output: c.png
    tile: 3x3
    ordering: [0]
  - input: missing.png
    output: d.png
    tile: 2x2
    ordering: [0, 1, 2, 3]
`
	s.Require().NoError(afero.WriteFile(s.fs, "jobs.yaml", []byte(manifest), 0o644))

	m, err := LoadManifest(s.fs, "jobs.yaml")
	s.Require().NoError(err)
	s.Require().Len(m.Jobs, 4)
	s.Require().NotNil(m.Jobs[1].Seed)
	s.Equal(uint32(9), *m.Jobs[1].Seed)

	err = s.runner.Batch(s.ctx, m, 3)
	s.Require().Error(err)
	s.Contains(err.Error(), "job 3 (in.png)")
	s.Contains(err.Error(), "job 4 (missing.png)")
	s.NotContains(err.Error(), "job 1")
	s.NotContains(err.Error(), "job 2")

	for _, name := range []string{"a.png", "b.png"} {
		exists, err := afero.Exists(s.fs, name)
		s.Require().NoError(err)
		s.True(exists, name)
	}
}

func (s *RunnerSuite) TestLoadManifestInvalidYAML() {
	s.Require().NoError(afero.WriteFile(s.fs, "bad.yaml", []byte("jobs: [this is: not"), 0o644))
	_, err := LoadManifest(s.fs, "bad.yaml")
	s.Error(err)
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerSuite))
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(afero.NewMemMapFs(), nil)
	require.NotNil(t, r.processor)
	require.NotNil(t, r.rearranger)
	require.NotNil(t, r.options)
}
