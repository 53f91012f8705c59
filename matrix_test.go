package gridcanvas

import (
	"math"
	"testing"

	"golang.org/x/image/math/f64"
)

const epsilon = 1e-9

func pointsClose(a, b Point) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, -2), Pt(1, 1), Pt(11, -1)},
		{"scale", Scale(2, 3), Pt(1, 1), Pt(2, 3)},
		{"rotate 90deg", Rotate(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"translate after rotate", Translate(5, 0).Multiply(Rotate(math.Pi)), Pt(1, 0), Pt(4, 0)},
		{"rotate after translate", Rotate(math.Pi).Multiply(Translate(5, 0)), Pt(1, 0), Pt(-6, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if !pointsClose(got, tt.want) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixTransformRect(t *testing.T) {
	b := Rotate(math.Pi/2).TransformRect(2, 1)
	if math.Abs(b.Min[0]+1) > epsilon || math.Abs(b.Max[0]) > epsilon ||
		math.Abs(b.Min[1]) > epsilon || math.Abs(b.Max[1]-2) > epsilon {
		t.Errorf("TransformRect(2, 1) under 90deg = %v, want [-1,0]x[0,2]", b)
	}
}

func TestMatrixAff3(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	want := f64.Aff3{1, 2, 3, 4, 5, 6}
	if got := m.Aff3(); got != want {
		t.Errorf("Aff3() = %v, want %v", got, want)
	}
}

func TestWorldToPixel(t *testing.T) {
	tests := []struct {
		name       string
		resolution float64
		origin     Point
		world      Point
		want       Point
	}{
		{"unit", 1, Pt(0, 0), Pt(2, 3), Pt(2, 3)},
		{"five cm", 0.05, Pt(0, 0), Pt(1, 0.5), Pt(20, 10)},
		{"with origin", 0.5, Pt(4, 6), Pt(-2, -3), Pt(0, 0)},
		{"world origin lands on origin", 0.1, Pt(17, 9), Pt(0, 0), Pt(17, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorldToPixel(tt.resolution, tt.origin).TransformPoint(tt.world)
			if !pointsClose(got, tt.want) {
				t.Errorf("WorldToPixel(%v, %v)(%v) = %v, want %v",
					tt.resolution, tt.origin, tt.world, got, tt.want)
			}
		})
	}
}
