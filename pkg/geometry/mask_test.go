package geometry

import "testing"

// maskMatchesContains verifies the scanline mask against the per-point test
// over the full grid.
func maskMatchesContains(t *testing.T, pg Polygon, width, height int) {
	t.Helper()
	m := pg.ContainmentMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			want := pg.Contains(NewPoint2D(float64(x), float64(y)))
			if got := m.At(x, y); got != want {
				t.Errorf("mask(%d, %d) = %v, Contains = %v", x, y, got, want)
			}
		}
	}
}

func TestContainmentMaskTriangle(t *testing.T) {
	tri := NewPolygon([2]float64{0, 0}, [2]float64{3, 0}, [2]float64{0, 3})
	m := tri.ContainmentMask(4, 4)

	if got := m.Count(); got != 6 {
		t.Fatalf("Count() = %d, want 6", got)
	}
	for _, p := range []PointInt{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {0, 2}} {
		if !m.At(p.X, p.Y) {
			t.Errorf("pixel (%d, %d) should be inside", p.X, p.Y)
		}
	}
	if m.At(3, 0) || m.At(2, 1) || m.At(0, 3) {
		t.Error("hypotenuse pixels must be outside")
	}
}

func TestContainmentMaskMatchesContains(t *testing.T) {
	polygons := map[string]Polygon{
		"convex": NewPolygon(
			[2]float64{2.5, 1.2}, [2]float64{17.8, 3.4},
			[2]float64{15.1, 14.9}, [2]float64{4.2, 12.7},
		),
		"concave": NewPolygon(
			[2]float64{1, 1}, [2]float64{18, 1}, [2]float64{18, 18},
			[2]float64{10, 18}, [2]float64{10, 6}, [2]float64{6, 6},
			[2]float64{6, 18}, [2]float64{1, 18},
		),
		"self-intersecting": NewPolygon(
			[2]float64{1, 1}, [2]float64{18, 18},
			[2]float64{18, 1}, [2]float64{1, 18},
		),
		"fractional": NewPolygon(
			[2]float64{0.5, 0.5}, [2]float64{12.3, 2.1},
			[2]float64{9.7, 16.6}, [2]float64{2.4, 11.9},
		),
		"overhanging": NewPolygon(
			[2]float64{-5, -5}, [2]float64{30, -2},
			[2]float64{25, 12}, [2]float64{-3, 25},
		),
	}

	for name, pg := range polygons {
		t.Run(name, func(t *testing.T) {
			maskMatchesContains(t, pg, 20, 20)
		})
	}
}

func TestContainmentMaskOutsideBounds(t *testing.T) {
	pg := NewPolygon([2]float64{100, 100}, [2]float64{110, 100}, [2]float64{105, 110})
	m := pg.ContainmentMask(20, 20)
	if got := m.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0 for polygon outside the raster", got)
	}
}

func TestContainmentMaskDegenerate(t *testing.T) {
	line := NewPolygon([2]float64{0, 0}, [2]float64{10, 10})
	if got := line.ContainmentMask(20, 20).Count(); got != 0 {
		t.Errorf("Count() = %d, want 0 for a two-vertex polygon", got)
	}

	empty := Polygon{}
	if got := empty.ContainmentMask(20, 20).Count(); got != 0 {
		t.Errorf("Count() = %d, want 0 for an empty polygon", got)
	}
}

func TestContainmentMaskZeroDimensions(t *testing.T) {
	pg := NewPolygon([2]float64{0, 0}, [2]float64{5, 0}, [2]float64{0, 5})
	if got := pg.ContainmentMask(0, 0).Count(); got != 0 {
		t.Errorf("Count() = %d, want 0 for an empty raster", got)
	}
}

func TestMaskAtOutOfRange(t *testing.T) {
	m := NewMask(4, 4)
	if m.At(-1, 0) || m.At(0, -1) || m.At(4, 0) || m.At(0, 4) {
		t.Error("out-of-range coordinates must read as outside")
	}
}
