// Package walls implements the wall-geometry collaborator over line
// segments. Polygon rooms are supplied as their edge segments; the field
// answers nearest-wall and line-of-sight queries and owns no other state.
package walls

import (
	"fmt"
	"math"

	"crowdsim/internal/crowd"
)

// Segment is a single wall edge.
type Segment struct {
	From crowd.Vec `yaml:"from"`
	To   crowd.Vec `yaml:"to"`
}

func (s Segment) length() float64 { return s.To.Sub(s.From).Norm() }

// closestPoint returns the point on the segment closest to p.
func (s Segment) closestPoint(p crowd.Vec) crowd.Vec {
	d := s.To.Sub(s.From)
	t := p.Sub(s.From).Dot(d) / d.Dot(d)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.From.Add(d.Scale(t))
}

// Field answers wall queries against a fixed set of segments.
type Field struct {
	segments []Segment
}

// NewField validates the segments and builds a field. Zero-length segments
// are an invalid-scenario error, rejected here rather than at query time.
func NewField(segments []Segment) (*Field, error) {
	for i, s := range segments {
		if s.length() == 0 {
			return nil, fmt.Errorf("%w: wall segment %d has zero length", crowd.ErrInvalidScenario, i)
		}
	}
	f := &Field{segments: make([]Segment, len(segments))}
	copy(f.segments, segments)
	return f, nil
}

func (f *Field) Segments() []Segment { return f.segments }

// NearestWall returns the distance from p to the closest segment and the
// outward unit normal, pointing from the wall toward p. With no segments it
// returns (+Inf, zero). A point exactly on a wall gets a zero normal; the
// wall force degenerates to a push of undefined direction there, which the
// scenario validator prevents by rejecting agents placed on walls.
func (f *Field) NearestWall(p crowd.Vec) (float64, crowd.Vec) {
	minDist := math.Inf(1)
	var closest crowd.Vec
	for _, s := range f.segments {
		c := s.closestPoint(p)
		d := p.Sub(c).Norm()
		if d < minDist {
			minDist = d
			closest = c
		}
	}
	if math.IsInf(minDist, 1) {
		return minDist, crowd.Vec{}
	}
	return minDist, p.Sub(closest).Unit()
}

// LineOfSight reports whether the open segment a-b crosses no wall.
func (f *Field) LineOfSight(a, b crowd.Vec) bool {
	for _, s := range f.segments {
		if segmentsIntersect(a, b, s.From, s.To) {
			return false
		}
	}
	return true
}

// segmentsIntersect reports proper intersection of segments p1-p2 and q1-q2,
// including collinear overlap.
func segmentsIntersect(p1, p2, q1, q2 crowd.Vec) bool {
	d1 := cross(q2.Sub(q1), p1.Sub(q1))
	d2 := cross(q2.Sub(q1), p2.Sub(q1))
	d3 := cross(p2.Sub(p1), q1.Sub(p1))
	d4 := cross(p2.Sub(p1), q2.Sub(p1))

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(q1, q2, p1)) ||
		(d2 == 0 && onSegment(q1, q2, p2)) ||
		(d3 == 0 && onSegment(p1, p2, q1)) ||
		(d4 == 0 && onSegment(p1, p2, q2))
}

func cross(a, b crowd.Vec) float64 { return a.X*b.Y - a.Y*b.X }

func onSegment(a, b, p crowd.Vec) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
