package collatz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSeed indicates a seed below 2.
	ErrInvalidSeed = errors.New("collatz: seed must be at least 2")

	// ErrOverflow indicates 3n+1 no longer fits the value type.
	ErrOverflow = errors.New("collatz: trajectory overflows uint64")
)

// SeedError wraps an error with the seed that caused it.
type SeedError struct {
	Seed    int64
	Wrapped error
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("seed %d: %v", e.Seed, e.Wrapped)
}

func (e *SeedError) Unwrap() error {
	return e.Wrapped
}
