package collatz

import (
	"math"
	"strings"
)

type Turn uint8

const (
	Even Turn = iota
	Odd
)

func (t Turn) String() string {
	if t == Odd {
		return "O"
	}
	return "E"
}

// Sequence is an ordered list of turns. Sequences are never modified after
// creation; Reverse returns a new one.
type Sequence []Turn

func (s Sequence) String() string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, t := range s {
		sb.WriteString(t.String())
	}
	return sb.String()
}

func (s Sequence) Reverse() Sequence {
	r := make(Sequence, len(s))
	for i, t := range s {
		r[len(s)-1-i] = t
	}
	return r
}

// Counts returns the number of even and odd turns.
func (s Sequence) Counts() (even, odd int) {
	for _, t := range s {
		if t == Odd {
			odd++
		} else {
			even++
		}
	}
	return even, odd
}

const maxTriple = (math.MaxUint64 - 1) / 3

// Step applies one hailstone step to n and reports the turn taken.
func Step(n uint64) (uint64, Turn, error) {
	if n%2 == 0 {
		return n / 2, Even, nil
	}
	if n > maxTriple {
		return 0, Odd, ErrOverflow
	}
	return 3*n + 1, Odd, nil
}

// Generate returns the turn encoding of the trajectory from seed down to 1,
// in generation order.
func Generate(seed int64) (Sequence, error) {
	if seed < 2 {
		return nil, &SeedError{Seed: seed, Wrapped: ErrInvalidSeed}
	}
	seq := make(Sequence, 0, 64)
	n := uint64(seed)
	for n != 1 {
		next, turn, err := Step(n)
		if err != nil {
			return nil, &SeedError{Seed: seed, Wrapped: err}
		}
		seq = append(seq, turn)
		n = next
	}
	return seq, nil
}

// Replay applies seq to seed arithmetically and returns every intermediate
// value. It fails if a turn disagrees with the parity of the current value.
func Replay(seed int64, seq Sequence) ([]uint64, bool) {
	if seed < 2 {
		return nil, false
	}
	n := uint64(seed)
	values := make([]uint64, 0, len(seq))
	for _, t := range seq {
		next, turn, err := Step(n)
		if err != nil || turn != t {
			return values, false
		}
		n = next
		values = append(values, n)
	}
	return values, true
}
