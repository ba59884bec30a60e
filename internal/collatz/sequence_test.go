package collatz

import (
	"context"
	"errors"
	"testing"
)

func TestGenerateSeven(t *testing.T) {
	seq, err := Generate(7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if got := seq.String(); got != "OEOEOEEOEEEOEEEE" {
		t.Errorf("expected OEOEOEEOEEEOEEEE, got %s", got)
	}
	if len(seq) != 16 {
		t.Errorf("expected 16 turns, got %d", len(seq))
	}

	values, ok := Replay(7, seq)
	if !ok {
		t.Fatal("replay of 7 failed")
	}
	want := []uint64{22, 11, 34, 17, 52, 26, 13, 40, 20, 10, 5, 16, 8, 4, 2, 1}
	if len(values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(values))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("value %d: expected %d, got %d", i, want[i], values[i])
		}
	}
}

func TestGenerateInvalidSeed(t *testing.T) {
	for _, seed := range []int64{1, 0, -5} {
		_, err := Generate(seed)
		if !errors.Is(err, ErrInvalidSeed) {
			t.Errorf("seed %d: expected ErrInvalidSeed, got %v", seed, err)
		}
		var se *SeedError
		if !errors.As(err, &se) || se.Seed != seed {
			t.Errorf("seed %d: expected SeedError carrying the seed, got %v", seed, err)
		}
	}
}

func TestGenerateReplaysToOne(t *testing.T) {
	limit := int64(100000)
	if testing.Short() {
		limit = 5000
	}
	for seed := int64(2); seed <= limit; seed++ {
		seq, err := Generate(seed)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		values, ok := Replay(seed, seq)
		if !ok {
			t.Fatalf("seed %d: replay disagreed with parity", seed)
		}
		if len(values) != len(seq) {
			t.Fatalf("seed %d: expected %d values, got %d", seed, len(seq), len(values))
		}
		for i, v := range values {
			if v == 0 {
				t.Fatalf("seed %d: zero at step %d", seed, i)
			}
			if v == 1 && i != len(values)-1 {
				t.Fatalf("seed %d: reached 1 early at step %d", seed, i)
			}
		}
		if values[len(values)-1] != 1 {
			t.Fatalf("seed %d: ended at %d", seed, values[len(values)-1])
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, seed := range []int64{2, 27, 97, 871, 77031} {
		a, _ := Generate(seed)
		b, _ := Generate(seed)
		if a.String() != b.String() {
			t.Errorf("seed %d: sequences differ between runs", seed)
		}
	}
}

func TestReverse(t *testing.T) {
	seq, _ := Generate(7)
	rev := seq.Reverse()
	if rev.String() != "EEEEOEEEOEEOEOEO" {
		t.Errorf("unexpected reverse %s", rev.String())
	}
	if seq.String() != "OEOEOEEOEEEOEEEE" {
		t.Error("reverse modified the original sequence")
	}
}

func TestCounts(t *testing.T) {
	seq, _ := Generate(27)
	even, odd := seq.Counts()
	if even != 70 || odd != 41 {
		t.Errorf("expected 70 even and 41 odd turns for 27, got %d/%d", even, odd)
	}
	if even, odd := (Sequence{}).Counts(); even != 0 || odd != 0 {
		t.Error("expected zero counts for an empty sequence")
	}
}

func TestStepOverflow(t *testing.T) {
	_, _, err := Step(maxTriple + 2)
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

func TestSurvey(t *testing.T) {
	stats, err := Survey(context.Background(), 30)
	if err != nil {
		t.Fatalf("survey failed: %v", err)
	}
	if len(stats) != 29 {
		t.Fatalf("expected 29 entries, got %d", len(stats))
	}
	seven := stats[5]
	if seven.Seed != 7 || seven.StoppingTime != 16 || seven.Peak != 52 || seven.Odd != 5 {
		t.Errorf("unexpected stats for 7: %+v", seven)
	}
	best, ok := Longest(stats)
	if !ok || best.Seed != 27 || best.StoppingTime != 111 {
		t.Errorf("expected 27 with 111 steps, got %+v", best)
	}
}
