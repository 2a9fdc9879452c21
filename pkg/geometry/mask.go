package geometry

import (
	"math"
	"sort"
)

// Mask is a boolean grid marking which raster pixels lie inside a polygon.
// Storage is row-major.
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask creates an all-false mask of the given dimensions.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		bits:   make([]bool, width*height),
	}
}

// At returns whether the pixel at (x, y) is inside. Out-of-range
// coordinates are outside.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Count returns the number of inside pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// ContainmentMask computes the containment mask of the polygon over a raster
// of the given dimensions. A pixel at integer coordinate (x, y) is inside
// exactly when Contains(Point2D{x, y}) is true; queries are made at the
// literal integer coordinates, not at cell centers.
//
// The mask is built with a scanline sweep: for each candidate row the edge
// crossings are collected once and sorted, and the even-odd spans between
// them are filled. Rows outside the polygon's bounding box are skipped, so
// the cost is O(rows·vertices + inside area) rather than the naive
// O(width·height·vertices).
func (pg Polygon) ContainmentMask(width, height int) *Mask {
	m := NewMask(width, height)
	if len(pg) < 3 || m.Width == 0 || m.Height == 0 {
		return m
	}

	bb := pg.BoundingBox()
	yStart := int(math.Floor(bb.Y))
	yEnd := int(math.Ceil(bb.Y + bb.Height))
	if yStart < 0 {
		yStart = 0
	}
	if yEnd > height-1 {
		yEnd = height - 1
	}

	n := len(pg)
	xs := make([]float64, 0, n)

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)
		xs = xs[:0]

		for i := 0; i < n; i++ {
			a, b := pg[i], pg[(i+1)%n]
			if (a.Y > fy) != (b.Y > fy) {
				xs = append(xs, (b.X-a.X)*(fy-a.Y)/(b.Y-a.Y)+a.X)
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)

		row := m.bits[y*width : (y+1)*width]
		for k := 0; k+1 < len(xs); k += 2 {
			// A pixel is inside when an odd number of crossings lie
			// strictly to its right: the integer span [ceil(xs[k]),
			// ceil(xs[k+1])-1]. This reproduces the Contains boundary
			// convention exactly.
			x1 := int(math.Ceil(xs[k]))
			x2 := int(math.Ceil(xs[k+1])) - 1
			if x1 < 0 {
				x1 = 0
			}
			if x2 > width-1 {
				x2 = width - 1
			}
			for x := x1; x <= x2; x++ {
				row[x] = true
			}
		}
	}

	return m
}
