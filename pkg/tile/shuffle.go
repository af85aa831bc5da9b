package tile

import "sort"

// XorShift32 is the 32-bit xorshift generator used to derive seeded orderings
type XorShift32 struct {
	state uint32
}

// NewXorShift32 seeds a generator. A zero seed would stay zero forever, so it is replaced by 1.
func NewXorShift32(seed uint32) *XorShift32 {
	if seed == 0 {
		seed = 1
	}
	return &XorShift32{state: seed}
}

// Next advances the generator
func (r *XorShift32) Next() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

type shuffledItem struct {
	randomValue uint32
	index       int
}

// Shuffle returns a deterministic permutation of [0, n) for seed
func Shuffle(seed uint32, n int) Ordering {
	prng := NewXorShift32(seed)
	items := make([]shuffledItem, n)
	for idx := range items {
		items[idx] = shuffledItem{
			randomValue: prng.Next(),
			index:       idx,
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].randomValue < items[j].randomValue
	})

	o := make(Ordering, n)
	for idx, item := range items {
		o[idx] = item.index
	}
	return o
}
