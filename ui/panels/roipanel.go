// Package panels provides the side panel listing defined ROIs.
package panels

import (
	"fmt"

	"roi-extractor/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ROIPanel lists the ROIs of the current collection with vertex counts and,
// after an export, pixel counts.
type ROIPanel struct {
	state *app.State
	list  *widget.List
	title *widget.Label

	// Pixel counts by collection index, populated after extraction.
	pixelCounts map[int]int
}

// NewROIPanel creates the ROI list panel and subscribes it to state events.
func NewROIPanel(state *app.State) *ROIPanel {
	p := &ROIPanel{
		state:       state,
		title:       widget.NewLabel("ROIs"),
		pixelCounts: make(map[int]int),
	}

	p.list = widget.NewList(
		func() int {
			if state.Collection == nil {
				return 0
			}
			return state.Collection.Len()
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			label.SetText(p.itemText(id))
		},
	)

	state.On(app.EventROIAdded, func(interface{}) { p.Refresh() })
	state.On(app.EventROIsLoaded, func(interface{}) {
		p.pixelCounts = make(map[int]int)
		p.Refresh()
	})
	state.On(app.EventImageLoaded, func(interface{}) {
		p.pixelCounts = make(map[int]int)
		p.Refresh()
	})

	return p
}

func (p *ROIPanel) itemText(id int) string {
	c := p.state.Collection
	if c == nil || id >= c.Len() {
		return ""
	}
	r := c.ROIs[id]
	label := r.Label
	if label == "" {
		label = "(unlabeled)"
	}
	if count, ok := p.pixelCounts[id]; ok {
		return fmt.Sprintf("%s (%d vertices, %d px)", label, len(r.Polygon), count)
	}
	return fmt.Sprintf("%s (%d vertices)", label, len(r.Polygon))
}

// SetPixelCounts records per-ROI pixel counts from the last export.
func (p *ROIPanel) SetPixelCounts(counts []int) {
	p.pixelCounts = make(map[int]int)
	for i, c := range counts {
		p.pixelCounts[i] = c
	}
	p.Refresh()
}

// Refresh redraws the list.
func (p *ROIPanel) Refresh() {
	p.list.Refresh()
}

// Container returns the panel for embedding in layouts.
func (p *ROIPanel) Container() fyne.CanvasObject {
	return container.NewBorder(p.title, nil, nil, nil, p.list)
}
