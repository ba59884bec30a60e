// Package turtle projects turn sequences into polylines with a turtle walk.
package turtle

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/hailstone/internal/collatz"
)

var ErrInvalidParameters = errors.New("turtle: geometry parameter is not finite")

// ParamError names the offending parameter.
type ParamError struct {
	Field string
	Value float64
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s=%g", ErrInvalidParameters, e.Field, e.Value)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameters
}

// Params holds the geometry of a walk. Angles are radians; with y pointing
// down, a heading of -pi/2 walks up the screen.
type Params struct {
	Origin       gg.Point
	StartHeading float64
	EvenDelta    float64
	OddDelta     float64
	StepLength   float64
}

func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"origin.x", p.Origin.X},
		{"origin.y", p.Origin.Y},
		{"start_heading", p.StartHeading},
		{"even_delta", p.EvenDelta},
		{"odd_delta", p.OddDelta},
		{"step_length", p.StepLength},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ParamError{Field: f.name, Value: f.v}
		}
	}
	return nil
}

// Project walks seq from p.Origin and returns a new polyline of len(seq)+1
// points, the first being the origin.
func Project(seq collatz.Sequence, p Params) ([]gg.Point, error) {
	return AppendProject(make([]gg.Point, 0, len(seq)+1), seq, p)
}

// AppendProject appends the projection of seq to dst and returns the
// extended slice. Passing dst[:0] reuses its storage across calls.
func AppendProject(dst []gg.Point, seq collatz.Sequence, p Params) ([]gg.Point, error) {
	if err := p.Validate(); err != nil {
		return dst, err
	}
	if need := len(dst) + len(seq) + 1; cap(dst) < need {
		grown := make([]gg.Point, len(dst), need)
		copy(grown, dst)
		dst = grown
	}

	pos := p.Origin
	heading := p.StartHeading
	dst = append(dst, pos)
	for _, t := range seq {
		if t == collatz.Odd {
			heading += p.OddDelta
		} else {
			heading += p.EvenDelta
		}
		dy, dx := math.Sincos(heading)
		pos = gg.Pt(pos.X+p.StepLength*dx, pos.Y+p.StepLength*dy)
		dst = append(dst, pos)
	}
	return dst, nil
}

// Bounds returns the bounding box of pts. ok is false for an empty slice.
func Bounds(pts []gg.Point) (minPt, maxPt gg.Point, ok bool) {
	if len(pts) == 0 {
		return gg.Point{}, gg.Point{}, false
	}
	minPt, maxPt = pts[0], pts[0]
	for _, pt := range pts[1:] {
		minPt.X = math.Min(minPt.X, pt.X)
		minPt.Y = math.Min(minPt.Y, pt.Y)
		maxPt.X = math.Max(maxPt.X, pt.X)
		maxPt.Y = math.Max(maxPt.Y, pt.Y)
	}
	return minPt, maxPt, true
}
