package geometry

// Polygon is an ordered sequence of vertices in pixel-coordinate space.
// The last vertex is implicitly connected back to the first. Polygons may be
// concave or self-intersecting; containment follows the even-odd rule.
type Polygon []Point2D

// NewPolygon creates a Polygon from flat (x, y) coordinate pairs.
func NewPolygon(coords ...[2]float64) Polygon {
	pg := make(Polygon, len(coords))
	for i, c := range coords {
		pg[i] = Point2D{X: c[0], Y: c[1]}
	}
	return pg
}

// Valid reports whether the polygon has enough vertices to enclose area.
func (pg Polygon) Valid() bool {
	return len(pg) >= 3
}

// Contains tests whether a point lies inside the polygon using the even-odd
// (crossing number) rule: a ray cast in the +x direction must cross the
// boundary an odd number of times.
//
// Boundary convention: an edge is counted when exactly one endpoint lies
// strictly below the query row, and a crossing is counted only when the
// query point lies strictly left of the edge intersection. Points exactly on
// a boundary are therefore classified deterministically, depending on which
// side of the edge the interior lies.
func (pg Polygon) Contains(p Point2D) bool {
	if len(pg) < 3 {
		return false
	}

	inside := false
	n := len(pg)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := pg[i], pg[j]

		if ((a.Y > p.Y) != (b.Y > p.Y)) &&
			(p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X) {
			inside = !inside
		}
	}

	return inside
}

// Centroid returns the arithmetic mean of the vertex coordinates. This is
// the label placement point, not the area-weighted centroid.
func (pg Polygon) Centroid() Point2D {
	if len(pg) == 0 {
		return Point2D{}
	}
	var sumX, sumY float64
	for _, p := range pg {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(pg))
	return Point2D{X: sumX / n, Y: sumY / n}
}

// BoundingBox returns the axis-aligned bounding box of the vertices.
func (pg Polygon) BoundingBox() Rect {
	if len(pg) == 0 {
		return Rect{}
	}
	minX, minY := pg[0].X, pg[0].Y
	maxX, maxY := minX, minY
	for _, p := range pg[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
