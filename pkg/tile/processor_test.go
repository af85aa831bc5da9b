package tile_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiesman99/retile/pkg/tile"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: uint8(x ^ y), A: uint8(128 + x)})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessorLoadFromFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := testImage(8, 4)
	require.NoError(t, afero.WriteFile(fs, "in.png", encodePNG(t, src), 0o644))

	p := tile.NewProcessor(fs, "test")
	img, format, err := p.Load(context.Background(), "in.png")
	require.NoError(t, err)

	assert.Equal(t, "png", format)
	assert.Equal(t, src.Bounds(), img.Bounds())
	assert.Equal(t, src.Pix, img.(*image.NRGBA).Pix)
}

func TestProcessorLoadMissingFile(t *testing.T) {
	p := tile.NewProcessor(afero.NewMemMapFs(), "test")
	_, _, err := p.Load(context.Background(), "missing.png")
	assert.Error(t, err)
}

func TestProcessorLoadFromURL(t *testing.T) {
	data := encodePNG(t, testImage(4, 4))

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/img.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	p := tile.NewProcessor(afero.NewMemMapFs(), "retile-test/1.0")

	img, _, err := p.Load(context.Background(), srv.URL+"/img.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	assert.Equal(t, "retile-test/1.0", gotUA)

	_, _, err = p.Load(context.Background(), srv.URL+"/missing.png")
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestProcessorDecodeGarbage(t *testing.T) {
	p := tile.NewProcessor(nil, "")
	_, _, err := p.DecodeImage([]byte("definitely not an image"))
	assert.EqualError(t, err, "unrecognized image format")
}

func TestProcessorEncodeFormats(t *testing.T) {
	p := tile.NewProcessor(afero.NewMemMapFs(), "")
	src := testImage(16, 8)

	for _, format := range []tile.Format{tile.FormatPNG, tile.FormatJPEG, tile.FormatGIF, tile.FormatBMP, tile.FormatTIFF} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := p.EncodeBytes(src, format, 0)
			require.NoError(t, err)

			img, _, err := p.DecodeImage(data)
			require.NoError(t, err)
			assert.Equal(t, src.Bounds(), img.Bounds())
		})
	}
}

func TestProcessorGIFKeepsPalette(t *testing.T) {
	p := tile.NewProcessor(nil, "")
	palette := color.Palette{color.RGBA{0, 0, 0, 255}, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255}}
	src := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
	for i := range src.Pix {
		src.Pix[i] = uint8(i % 3)
	}

	data, err := p.EncodeBytes(src, tile.FormatGIF, 0)
	require.NoError(t, err)

	img, format, err := p.DecodeImage(data)
	require.NoError(t, err)
	assert.Equal(t, "gif", format)

	out, ok := img.(*image.Paletted)
	require.True(t, ok)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestProcessorSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := tile.NewProcessor(fs, "")
	src := testImage(4, 4)

	require.NoError(t, p.Save("out.png", src, tile.FormatPNG, 0))

	img, _, err := p.Load(context.Background(), "out.png")
	require.NoError(t, err)
	assert.Equal(t, src.Pix, img.(*image.NRGBA).Pix)
}

func TestProcessorSaveRemovesFileOnEncodeError(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := tile.NewProcessor(fs, "")

	// png refuses to encode an empty image
	err := p.Save("empty.png", image.NewNRGBA(image.Rect(0, 0, 0, 0)), tile.FormatPNG, 0)
	require.Error(t, err)

	exists, err := afero.Exists(fs, "empty.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFormatFromPath(t *testing.T) {
	f, ok := tile.FormatFromPath("out.JPG")
	assert.True(t, ok)
	assert.Equal(t, tile.FormatJPEG, f)

	_, ok = tile.FormatFromPath("out")
	assert.False(t, ok)

	_, ok = tile.FormatFromPath("out.xyz")
	assert.False(t, ok)
}
