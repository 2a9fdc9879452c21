// Package canvas provides an image canvas with pan, zoom, and polygon
// drawing for ROI definition.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"roi-extractor/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/disintegration/imaging"
)

const (
	minZoom  = 0.05
	maxZoom  = 8.0
	zoomStep = 1.25
)

var backgroundColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}

// ImageCanvas displays the decoded raster with committed ROI overlays and
// the polygon currently being drawn.
type ImageCanvas struct {
	widget.BaseWidget

	// Display state
	base   *image.RGBA  // normalized raster rendition at 1:1
	scaled *image.NRGBA // cached resample of base at the current zoom
	zoom   float64

	// Overlays
	rois    []ROIOverlay
	pending geometry.Polygon // polygon in progress, image coordinates

	raster  *fynecanvas.Raster
	content *clickableContent
	scroll  *zoomScroll

	// Callbacks; coordinates are image coordinates
	onLeftClick  func(x, y float64)
	onRightClick func(x, y float64)
	onZoomChange func(zoom float64)
}

// NewImageCanvas creates a new image canvas.
func NewImageCanvas() *ImageCanvas {
	ic := &ImageCanvas{zoom: 1.0}

	ic.raster = fynecanvas.NewRaster(ic.draw)
	ic.raster.ScaleMode = fynecanvas.ImageScalePixels
	ic.raster.SetMinSize(fyne.NewSize(400, 300))

	ic.content = newClickableContent(ic, ic.raster)
	ic.scroll = newZoomScroll(ic.content, ic)

	ic.ExtendBaseWidget(ic)
	return ic
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ic.scroll)
}

// Container returns the canvas container for embedding in layouts.
func (ic *ImageCanvas) Container() fyne.CanvasObject {
	return ic.scroll
}

// OnLeftClick sets the left-click callback (image coordinates).
func (ic *ImageCanvas) OnLeftClick(fn func(x, y float64)) {
	ic.onLeftClick = fn
}

// OnRightClick sets the right-click callback (image coordinates).
func (ic *ImageCanvas) OnRightClick(fn func(x, y float64)) {
	ic.onRightClick = fn
}

// OnZoomChange sets the zoom change callback.
func (ic *ImageCanvas) OnZoomChange(fn func(zoom float64)) {
	ic.onZoomChange = fn
}

// SetImage replaces the displayed image. Pass nil to clear.
func (ic *ImageCanvas) SetImage(img *image.RGBA) {
	ic.base = img
	ic.rescale()
}

// SetROIs replaces the committed ROI overlays.
func (ic *ImageCanvas) SetROIs(rois []ROIOverlay) {
	ic.rois = rois
	ic.Refresh()
}

// SetPending replaces the in-progress polygon overlay.
func (ic *ImageCanvas) SetPending(pg geometry.Polygon) {
	ic.pending = pg
	ic.Refresh()
}

// ClearPending removes the in-progress polygon overlay.
func (ic *ImageCanvas) ClearPending() {
	ic.pending = nil
	ic.Refresh()
}

// Zoom returns the current zoom factor.
func (ic *ImageCanvas) Zoom() float64 {
	return ic.zoom
}

// SetZoom sets the zoom factor, clamped to the supported range.
func (ic *ImageCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	if zoom == ic.zoom {
		return
	}
	ic.zoom = zoom
	ic.rescale()
	if ic.onZoomChange != nil {
		ic.onZoomChange(zoom)
	}
}

// ZoomIn increases the zoom by one step.
func (ic *ImageCanvas) ZoomIn() {
	ic.SetZoom(ic.zoom * zoomStep)
}

// ZoomOut decreases the zoom by one step.
func (ic *ImageCanvas) ZoomOut() {
	ic.SetZoom(ic.zoom / zoomStep)
}

// ActualSize resets the zoom to 1:1.
func (ic *ImageCanvas) ActualSize() {
	ic.SetZoom(1.0)
}

// FitToView chooses the zoom that fits the whole image in the viewport.
func (ic *ImageCanvas) FitToView() {
	if ic.base == nil {
		return
	}
	view := ic.scroll.Size()
	if view.Width <= 0 || view.Height <= 0 {
		return
	}
	b := ic.base.Bounds()
	zx := float64(view.Width) / float64(b.Dx())
	zy := float64(view.Height) / float64(b.Dy())
	if zy < zx {
		zx = zy
	}
	ic.SetZoom(zx)
}

// rescale rebuilds the cached zoomed image and resizes the raster widget.
func (ic *ImageCanvas) rescale() {
	if ic.base == nil {
		ic.scaled = nil
		ic.raster.SetMinSize(fyne.NewSize(400, 300))
		ic.Refresh()
		return
	}

	b := ic.base.Bounds()
	w := int(float64(b.Dx()) * ic.zoom)
	h := int(float64(b.Dy()) * ic.zoom)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	// Nearest neighbor keeps pixel boundaries visible at high zoom, which
	// matters when placing vertices on individual pixels.
	ic.scaled = imaging.Resize(ic.base, w, h, imaging.NearestNeighbor)
	ic.raster.SetMinSize(fyne.NewSize(float32(w), float32(h)))
	ic.Refresh()
}

// draw renders the scaled image plus overlays. Called by the Fyne raster.
func (ic *ImageCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), &image.Uniform{backgroundColor}, image.Point{}, draw.Src)

	if ic.scaled != nil {
		draw.Draw(out, ic.scaled.Bounds(), ic.scaled, image.Point{}, draw.Src)
	}

	for _, ov := range ic.rois {
		ic.drawROI(out, ov)
	}
	if len(ic.pending) > 0 {
		ic.drawPending(out)
	}
	return out
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ImageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ImageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// clickableContent wraps the raster to receive tap events.
type clickableContent struct {
	widget.BaseWidget
	canvas *ImageCanvas
	raster *fynecanvas.Raster
}

func newClickableContent(ic *ImageCanvas, raster *fynecanvas.Raster) *clickableContent {
	cc := &clickableContent{canvas: ic, raster: raster}
	cc.ExtendBaseWidget(cc)
	return cc
}

func (cc *clickableContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(cc.raster)
}

func (cc *clickableContent) MinSize() fyne.Size {
	return cc.raster.MinSize()
}

func (cc *clickableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		cc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		cc.canvas.ZoomOut()
	}
}

// imageCoords converts a tap position to image coordinates.
func (cc *clickableContent) imageCoords(pos fyne.Position) (float64, float64, bool) {
	size := cc.Size()
	if pos.X < 0 || pos.Y < 0 || pos.X > size.Width || pos.Y > size.Height {
		return 0, 0, false
	}
	zoom := cc.canvas.zoom
	return float64(pos.X) / zoom, float64(pos.Y) / zoom, true
}

// Tapped handles left-click events.
func (cc *clickableContent) Tapped(ev *fyne.PointEvent) {
	if cc.canvas.onLeftClick == nil {
		return
	}
	if x, y, ok := cc.imageCoords(ev.Position); ok {
		cc.canvas.onLeftClick(x, y)
	}
}

// TappedSecondary handles right-click events.
func (cc *clickableContent) TappedSecondary(ev *fyne.PointEvent) {
	if cc.canvas.onRightClick == nil {
		return
	}
	if x, y, ok := cc.imageCoords(ev.Position); ok {
		cc.canvas.onRightClick(x, y)
	}
}
