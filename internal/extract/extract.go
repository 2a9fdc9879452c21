// Package extract turns (raster, ROI collection) pairs into flat labeled
// pixel records. All functions are pure: they read the raster and never
// mutate shared state.
package extract

import (
	"fmt"

	"roi-extractor/internal/raster"
	"roi-extractor/internal/roi"
)

// Record is one (pixel, channel) sample inside a ROI.
type Record struct {
	FileName string
	ROILabel string
	Channel  string
	X        int
	Y        int
	Value    uint16
}

// ROISummary reports how many pixels a single ROI contributed.
type ROISummary struct {
	Label      string
	PixelCount int
}

// Result aggregates the records of a whole collection, in collection order,
// with per-ROI summaries and warnings for ROIs that were skipped.
type Result struct {
	Records   []Record
	Summaries []ROISummary
	Warnings  []string
}

// Extract emits one record per (pixel, channel) for every pixel whose
// integer coordinate lies inside the ROI polygon. Enumeration is row-major
// (increasing y, then increasing x) and channels are always emitted R, G, B,
// so output order is deterministic. A degenerate polygon or one containing
// no pixel coordinates yields an empty slice, not an error.
func Extract(r *raster.Raster, fileName string, region roi.ROI) []Record {
	if !region.Polygon.Valid() {
		return nil
	}

	mask := region.Polygon.ContainmentMask(r.Width, r.Height)
	records := make([]Record, 0, mask.Count()*raster.NumChannels)

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if !mask.At(x, y) {
				continue
			}
			for c := 0; c < raster.NumChannels; c++ {
				records = append(records, Record{
					FileName: fileName,
					ROILabel: region.Label,
					Channel:  raster.ChannelName(c),
					X:        x,
					Y:        y,
					Value:    r.At(x, y, c),
				})
			}
		}
	}
	return records
}

// ExtractAll concatenates Extract over every ROI in collection order.
// A degenerate ROI is reported in Warnings and skipped; it never aborts
// extraction of the remaining ROIs. Pixels inside overlapping ROIs appear
// once per ROI.
func ExtractAll(r *raster.Raster, c *roi.Collection) Result {
	var res Result
	for i, region := range c.ROIs {
		if !region.Polygon.Valid() {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("roi %d (%q): degenerate polygon with %d vertices, skipped",
					i, region.Label, len(region.Polygon)))
			res.Summaries = append(res.Summaries, ROISummary{Label: region.Label})
			continue
		}

		records := Extract(r, c.FileName, region)
		res.Records = append(res.Records, records...)
		res.Summaries = append(res.Summaries, ROISummary{
			Label:      region.Label,
			PixelCount: len(records) / raster.NumChannels,
		})
	}
	return res
}
