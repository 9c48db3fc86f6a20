package crowd

import (
	"math"
	"testing"
)

func TestVecUnit(t *testing.T) {
	v := Vec{X: 3, Y: 4}
	u := v.Unit()
	if math.Abs(u.Norm()-1) > 1e-12 {
		t.Errorf("expected unit norm, got %f", u.Norm())
	}

	zero := Vec{}.Unit()
	if !zero.IsZero() {
		t.Error("unit of zero vector should be zero, not NaN")
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec
		want float64
	}{
		{"aligned", Vec{X: 1}, Vec{X: 2}, 0},
		{"orthogonal", Vec{X: 1}, Vec{Y: 1}, math.Pi / 2},
		{"opposed", Vec{X: 1}, Vec{X: -1}, math.Pi},
		{"zero vector", Vec{}, Vec{X: 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleBetween(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestAngleBetweenSymmetric(t *testing.T) {
	a := Vec{X: 1, Y: 0.3}
	b := Vec{X: -0.5, Y: 2}
	if AngleBetween(a, b) != AngleBetween(b, a) {
		t.Error("angle should be symmetric in its arguments")
	}
}

func TestVecIsValid(t *testing.T) {
	if !(Vec{X: 1, Y: -2}).IsValid() {
		t.Error("finite vector reported invalid")
	}
	if (Vec{X: math.NaN()}).IsValid() {
		t.Error("NaN vector reported valid")
	}
	if (Vec{Y: math.Inf(1)}).IsValid() {
		t.Error("Inf vector reported valid")
	}
}
