// Package roi provides the labeled region-of-interest data model and its
// JSON persistence.
package roi

import (
	"roi-extractor/internal/raster"
	"roi-extractor/pkg/geometry"
)

// ROI is a user-labeled polygon over an image. The label may be empty;
// legacy files carried unlabeled regions.
type ROI struct {
	Label   string
	Polygon geometry.Polygon
}

// Collection is the ordered set of ROIs belonging to one source image.
// ROIs are append-only during a session; insertion order is preserved on
// save and load. Overlapping ROIs are permitted and processed independently.
type Collection struct {
	FileName     string
	ROIs         []ROI
	WhiteBalance *raster.Multipliers
}

// NewCollection creates an empty collection for the named source image.
func NewCollection(fileName string) *Collection {
	return &Collection{FileName: fileName}
}

// Add appends a new ROI to the collection.
func (c *Collection) Add(label string, polygon geometry.Polygon) {
	c.ROIs = append(c.ROIs, ROI{Label: label, Polygon: polygon})
}

// Len returns the number of ROIs.
func (c *Collection) Len() int {
	return len(c.ROIs)
}

// SourceMismatch reports whether the collection was saved against a
// different source image than the one currently open. A mismatch is a
// warning for the caller to surface, never a load failure.
func (c *Collection) SourceMismatch(currentFileName string) bool {
	return c.FileName != currentFileName
}
