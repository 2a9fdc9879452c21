// Package colorutil provides shared overlay colors for the ROI extractor.
package colorutil

import "image/color"

// Common overlay colors used throughout the application.
var (
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 230, G: 40, B: 40, A: 255}
	Green  = color.RGBA{R: 40, G: 200, B: 80, A: 255}
	Yellow = color.RGBA{R: 240, G: 200, B: 0, A: 255}
	Cyan   = color.RGBA{R: 0, G: 200, B: 220, A: 255}
	Orange = color.RGBA{R: 240, G: 140, B: 0, A: 255}
	Violet = color.RGBA{R: 170, G: 80, B: 230, A: 255}
)

// roiPalette cycles through distinct outline colors for committed ROIs.
var roiPalette = []color.RGBA{Red, Yellow, Cyan, Green, Orange, Violet}

// ROIColor returns the outline color for the i-th ROI in a collection.
func ROIColor(i int) color.RGBA {
	if i < 0 {
		i = -i
	}
	return roiPalette[i%len(roiPalette)]
}
