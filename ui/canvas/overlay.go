package canvas

import (
	"image"
	"image/color"

	"roi-extractor/pkg/colorutil"
	"roi-extractor/pkg/geometry"
)

// ROIOverlay is a committed ROI drawn over the image: outlined polygon with
// its label at the vertex-mean centroid.
type ROIOverlay struct {
	Polygon geometry.Polygon
	Label   string
	Color   color.RGBA
}

// drawROI draws a committed ROI overlay at the current zoom.
func (ic *ImageCanvas) drawROI(out *image.RGBA, ov ROIOverlay) {
	n := len(ov.Polygon)
	if n < 2 {
		return
	}

	for i := 0; i < n; i++ {
		a := ov.Polygon[i]
		b := ov.Polygon[(i+1)%n]
		drawLine(out,
			a.X*ic.zoom, a.Y*ic.zoom,
			b.X*ic.zoom, b.Y*ic.zoom,
			ov.Color)
	}

	if ov.Label != "" {
		c := ov.Polygon.Centroid()
		drawTextCentered(out, ov.Label, int(c.X*ic.zoom), int(c.Y*ic.zoom), colorutil.White)
	}
}

// drawPending draws the polygon in progress: open polyline plus vertex
// markers, with a closing hint back to the first vertex.
func (ic *ImageCanvas) drawPending(out *image.RGBA) {
	pts := ic.pending
	col := colorutil.Green

	for i := 0; i+1 < len(pts); i++ {
		drawLine(out,
			pts[i].X*ic.zoom, pts[i].Y*ic.zoom,
			pts[i+1].X*ic.zoom, pts[i+1].Y*ic.zoom,
			col)
	}
	if len(pts) > 2 {
		first, last := pts[0], pts[len(pts)-1]
		drawLine(out,
			last.X*ic.zoom, last.Y*ic.zoom,
			first.X*ic.zoom, first.Y*ic.zoom,
			col)
	}
	for _, p := range pts {
		drawMarker(out, int(p.X*ic.zoom), int(p.Y*ic.zoom), col)
	}
}
