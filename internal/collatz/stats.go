package collatz

import "context"

type Stats struct {
	Seed         int64
	StoppingTime int
	Peak         uint64
	Odd          int
}

// Survey computes Stats for every seed in [2, maxSeed].
func Survey(ctx context.Context, maxSeed int64) ([]Stats, error) {
	if maxSeed < 2 {
		return nil, &SeedError{Seed: maxSeed, Wrapped: ErrInvalidSeed}
	}
	out := make([]Stats, 0, maxSeed-1)
	for seed := int64(2); seed <= maxSeed; seed++ {
		if seed%4096 == 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			default:
			}
		}
		seq, err := Generate(seed)
		if err != nil {
			return out, err
		}
		values, ok := Replay(seed, seq)
		if !ok {
			return out, &SeedError{Seed: seed, Wrapped: ErrOverflow}
		}
		_, odd := seq.Counts()
		st := Stats{Seed: seed, StoppingTime: len(seq), Peak: uint64(seed), Odd: odd}
		for _, v := range values {
			st.Peak = max(st.Peak, v)
		}
		out = append(out, st)
	}
	return out, nil
}

// Longest returns the entry with the largest stopping time, preferring the
// smaller seed on ties.
func Longest(stats []Stats) (Stats, bool) {
	if len(stats) == 0 {
		return Stats{}, false
	}
	best := stats[0]
	for _, st := range stats[1:] {
		if st.StoppingTime > best.StoppingTime {
			best = st
		}
	}
	return best, true
}
