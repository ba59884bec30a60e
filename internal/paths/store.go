// Package paths builds and holds the encoded trajectories of a seed range.
package paths

import (
	"context"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/hailstone/internal/collatz"
)

// ColorBox bounds each RGB channel independently, inclusive, in 0..255.
type ColorBox struct {
	Lower [3]uint8
	Upper [3]uint8
}

func (b ColorBox) Valid() bool {
	for i := range b.Lower {
		if b.Lower[i] > b.Upper[i] {
			return false
		}
	}
	return true
}

// Sample draws one color uniformly from the box.
func (b ColorBox) Sample(rng *rand.Rand) colorful.Color {
	var ch [3]float64
	for i := range ch {
		lo, hi := int(b.Lower[i]), int(b.Upper[i])
		if hi < lo {
			lo, hi = hi, lo
		}
		ch[i] = float64(lo+rng.Intn(hi-lo+1)) / 255
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}
}

// Store holds one reversed turn sequence and one color per seed in
// [2, MaxSeed]. Index i corresponds to seed i+2. A Store is read-only after
// Build returns.
type Store struct {
	maxSeed int64
	seqs    []collatz.Sequence
	colors  []colorful.Color
}

// Build generates the store for maxSeed. Sequences are reversed so that a
// front-to-back walk starts at unity. Colors are drawn in seed order from rng,
// so a seeded rng yields a reproducible store.
func Build(ctx context.Context, maxSeed int64, box ColorBox, rng *rand.Rand) (*Store, error) {
	if maxSeed < 2 {
		return nil, &collatz.SeedError{Seed: maxSeed, Wrapped: collatz.ErrInvalidSeed}
	}
	n := int(maxSeed - 1)
	seqs := make([]collatz.Sequence, n)
	errs := make([]error, n)

	ParallelFor(n, 2048, func(start, end int) {
		for i := start; i < end; i++ {
			if i%1024 == 0 && ctx.Err() != nil {
				errs[i] = ctx.Err()
				return
			}
			seq, err := collatz.Generate(int64(i) + 2)
			if err != nil {
				errs[i] = err
				continue
			}
			seqs[i] = seq.Reverse()
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	colors := make([]colorful.Color, n)
	for i := range colors {
		colors[i] = box.Sample(rng)
	}

	return &Store{maxSeed: maxSeed, seqs: seqs, colors: colors}, nil
}

func (s *Store) Count() int { return len(s.seqs) }

func (s *Store) MaxSeed() int64 { return s.maxSeed }


func (s *Store) SequenceAt(index int) collatz.Sequence { return s.seqs[index] }

func (s *Store) ColorAt(index int) colorful.Color { return s.colors[index] }
