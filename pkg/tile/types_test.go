package tile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiesman99/retile/pkg/tile"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    tile.Size
		wantErr bool
	}{
		{in: "2x2", want: tile.Size{Width: 2, Height: 2}},
		{in: "64X32", want: tile.Size{Width: 64, Height: 32}},
		{in: " 8 x 4 ", want: tile.Size{Width: 8, Height: 4}},
		{in: "16", want: tile.Size{Width: 16, Height: 16}},
		{in: "", wantErr: true},
		{in: "axb", wantErr: true},
		{in: "1x2x3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := tile.ParseSize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrdering(t *testing.T) {
	got, err := tile.ParseOrdering("1,0, 3 ,2")
	require.NoError(t, err)
	assert.Equal(t, tile.Ordering{1, 0, 3, 2}, got)
	assert.Equal(t, "1,0,3,2", got.String())

	got, err = tile.ParseOrdering("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = tile.ParseOrdering("1,x")
	assert.Error(t, err)
}

func TestOrderingInverse(t *testing.T) {
	o := tile.Ordering{2, 0, 3, 1}
	inv := o.Inverse()
	assert.Equal(t, tile.Ordering{1, 3, 0, 2}, inv)

	// applying o then its inverse is the identity
	for slot := range o {
		assert.Equal(t, slot, o[inv[slot]])
	}
	assert.Equal(t, o, inv.Inverse())
	assert.Equal(t, tile.Identity(5), tile.Identity(5).Inverse())
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]tile.Format{
		"":     tile.FormatPNG,
		"PNG":  tile.FormatPNG,
		"jpg":  tile.FormatJPEG,
		"jpeg": tile.FormatJPEG,
		"gif":  tile.FormatGIF,
		"bmp":  tile.FormatBMP,
		"tif":  tile.FormatTIFF,
	} {
		got, err := tile.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := tile.ParseFormat("webp")
	assert.Error(t, err)

	assert.Equal(t, "image/jpeg", tile.FormatJPEG.ContentType())
	assert.Equal(t, "tiff", tile.FormatTIFF.String())
}
