package tile_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiesman99/retile/pkg/tile"
)

func TestXorShift32(t *testing.T) {
	r := tile.NewXorShift32(1)
	// 1 ^ 1<<13 = 8193; 8193 ^ 8193>>17 = 8193; 8193 ^ 8193<<5 = 270369
	assert.Equal(t, uint32(270369), r.Next())

	zero := tile.NewXorShift32(0)
	one := tile.NewXorShift32(1)
	for i := 0; i < 10; i++ {
		assert.Equal(t, one.Next(), zero.Next())
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	for _, n := range []int{0, 1, 2, 16, 100} {
		for seed := uint32(0); seed < 10; seed++ {
			o := tile.Shuffle(seed, n)
			assert.Len(t, o, n)

			sorted := append(tile.Ordering(nil), o...)
			sort.Ints(sorted)
			if n > 0 {
				assert.Equal(t, tile.Identity(n), sorted)
			}
		}
	}
}

func TestShuffleIsDeterministic(t *testing.T) {
	assert.Equal(t, tile.Shuffle(42, 64), tile.Shuffle(42, 64))
	assert.NotEqual(t, tile.Shuffle(42, 64), tile.Shuffle(43, 64))
}
