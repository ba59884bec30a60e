package view

// Pass is a resumable walk over [0, total) done in batches across ticks.
// The cursor only moves forward until Reset.
type Pass struct {
	cursor int
	total  int
}

func NewPass(total int) Pass {
	if total < 0 {
		total = 0
	}
	return Pass{total: total}
}

func (p *Pass) Reset() { p.cursor = 0 }

func (p Pass) Cursor() int { return p.cursor }

func (p Pass) Total() int { return p.total }

func (p Pass) Remaining() bool { return p.cursor < p.total }

// Next claims up to batch indices and returns the half-open range.
func (p *Pass) Next(batch int) (start, end int) {
	start = p.cursor
	if batch < 1 {
		batch = 1
	}
	end = min(start+batch, p.total)
	p.cursor = end
	return start, end
}
