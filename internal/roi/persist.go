package roi

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"roi-extractor/internal/raster"
	"roi-extractor/pkg/geometry"
)

// FormatError indicates a malformed persisted ROI file: invalid JSON or a
// missing required structural field. Optional fields (white balance block,
// rois list, file name) never produce a FormatError.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "roi file: " + e.Reason
}

// Wire format. Polygons persist as [[x, y], ...] pairs rather than
// {x, y} objects.
type collectionJSON struct {
	FileName     string            `json:"file_name"`
	ROIs         []roiJSON         `json:"rois"`
	WhiteBalance *whiteBalanceJSON `json:"white_balance,omitempty"`
}

type roiJSON struct {
	Label   string      `json:"label"`
	Polygon [][]float64 `json:"polygon"`
}

type whiteBalanceJSON struct {
	Red   *float64 `json:"red"`
	Green *float64 `json:"green"`
	Blue  *float64 `json:"blue"`
}

// decode-side mirror of roiJSON, with pointers to detect absent fields.
type roiWire struct {
	Label   *string      `json:"label"`
	Polygon *[][]float64 `json:"polygon"`
}

type collectionWire struct {
	FileName     *string           `json:"file_name"`
	ROIs         []roiWire         `json:"rois"`
	WhiteBalance *whiteBalanceJSON `json:"white_balance"`
}

// SaveTo serializes the collection as indented JSON. The white balance
// block is omitted entirely when unset.
func (c *Collection) SaveTo(w io.Writer) error {
	out := collectionJSON{
		FileName: c.FileName,
		ROIs:     make([]roiJSON, 0, len(c.ROIs)),
	}
	for _, r := range c.ROIs {
		poly := make([][]float64, len(r.Polygon))
		for i, p := range r.Polygon {
			poly[i] = []float64{p.X, p.Y}
		}
		out.ROIs = append(out.ROIs, roiJSON{Label: r.Label, Polygon: poly})
	}
	if c.WhiteBalance != nil {
		wb := *c.WhiteBalance
		out.WhiteBalance = &whiteBalanceJSON{Red: &wb.R, Green: &wb.G, Blue: &wb.B}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Save writes the collection to a JSON file.
func (c *Collection) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create roi file: %w", err)
	}
	defer file.Close()
	return c.SaveTo(file)
}

// LoadFrom deserializes a collection. Unknown fields are ignored, a missing
// rois list yields an empty collection, and a missing file name reads as
// empty (mismatch warnings still apply). A ROI entry without a polygon, a
// vertex that is not a two-number pair, or a white balance block missing a
// channel is a *FormatError.
func LoadFrom(r io.Reader) (*Collection, error) {
	var wire collectionWire
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	c := &Collection{}
	if wire.FileName != nil {
		c.FileName = *wire.FileName
	}

	for i, rw := range wire.ROIs {
		if rw.Polygon == nil {
			return nil, &FormatError{Reason: fmt.Sprintf("roi %d: missing polygon", i)}
		}
		poly := make(geometry.Polygon, len(*rw.Polygon))
		for j, pair := range *rw.Polygon {
			if len(pair) != 2 {
				return nil, &FormatError{
					Reason: fmt.Sprintf("roi %d: vertex %d is not an [x, y] pair", i, j),
				}
			}
			poly[j] = geometry.Point2D{X: pair[0], Y: pair[1]}
		}
		label := ""
		if rw.Label != nil {
			label = *rw.Label
		}
		c.ROIs = append(c.ROIs, ROI{Label: label, Polygon: poly})
	}

	if wire.WhiteBalance != nil {
		wb := wire.WhiteBalance
		if wb.Red == nil || wb.Green == nil || wb.Blue == nil {
			return nil, &FormatError{Reason: "white_balance block missing a channel"}
		}
		c.WhiteBalance = &raster.Multipliers{R: *wb.Red, G: *wb.Green, B: *wb.Blue}
	}

	return c, nil
}

// Load reads a collection from a JSON file.
func Load(path string) (*Collection, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roi file: %w", err)
	}
	defer file.Close()
	return LoadFrom(file)
}
