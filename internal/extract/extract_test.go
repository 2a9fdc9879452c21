package extract

import (
	"bytes"
	"strings"
	"testing"

	"roi-extractor/internal/raster"
	"roi-extractor/internal/roi"
	"roi-extractor/pkg/geometry"
)

// testRaster builds a 4x4 raster where every sample encodes its own
// coordinates: value = y*100 + x*10 + channel.
func testRaster() *raster.Raster {
	r := raster.New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			for c := 0; c < raster.NumChannels; c++ {
				r.Set(x, y, c, uint16(y*100+x*10+c))
			}
		}
	}
	return r
}

var triangle = geometry.NewPolygon([2]float64{0, 0}, [2]float64{3, 0}, [2]float64{0, 3})

func TestExtractTriangle(t *testing.T) {
	records := Extract(testRaster(), "img.tiff", roi.ROI{Label: "tri", Polygon: triangle})

	// 6 interior pixels, 3 channels each.
	if len(records) != 18 {
		t.Fatalf("got %d records, want 18", len(records))
	}

	// Row-major enumeration with R, G, B per pixel.
	wantOrder := []struct {
		x, y    int
		channel string
	}{
		{0, 0, "R"}, {0, 0, "G"}, {0, 0, "B"},
		{1, 0, "R"}, {1, 0, "G"}, {1, 0, "B"},
		{2, 0, "R"}, {2, 0, "G"}, {2, 0, "B"},
		{0, 1, "R"}, {0, 1, "G"}, {0, 1, "B"},
		{1, 1, "R"}, {1, 1, "G"}, {1, 1, "B"},
		{0, 2, "R"}, {0, 2, "G"}, {0, 2, "B"},
	}
	for i, w := range wantOrder {
		rec := records[i]
		if rec.X != w.x || rec.Y != w.y || rec.Channel != w.channel {
			t.Fatalf("record %d = (%d, %d, %s), want (%d, %d, %s)",
				i, rec.X, rec.Y, rec.Channel, w.x, w.y, w.channel)
		}
		if rec.FileName != "img.tiff" || rec.ROILabel != "tri" {
			t.Fatalf("record %d carries %q/%q", i, rec.FileName, rec.ROILabel)
		}
	}

	// Sample values come from the right raster cell and channel.
	if records[12].Value != 1*100+1*10+0 {
		t.Errorf("pixel (1,1) R = %d", records[12].Value)
	}
	if records[17].Value != 2*100+0*10+2 {
		t.Errorf("pixel (0,2) B = %d", records[17].Value)
	}
}

func TestExtractOutsideRaster(t *testing.T) {
	far := geometry.NewPolygon([2]float64{100, 100}, [2]float64{110, 100}, [2]float64{105, 110})
	if got := Extract(testRaster(), "img", roi.ROI{Label: "far", Polygon: far}); len(got) != 0 {
		t.Errorf("got %d records for polygon outside raster, want 0", len(got))
	}
}

func TestExtractDegenerate(t *testing.T) {
	line := geometry.NewPolygon([2]float64{0, 0}, [2]float64{3, 3})
	if got := Extract(testRaster(), "img", roi.ROI{Label: "line", Polygon: line}); got != nil {
		t.Errorf("got %d records for degenerate polygon, want none", len(got))
	}
}

func TestExtractAllOverlapping(t *testing.T) {
	c := roi.NewCollection("img.tiff")
	square := geometry.NewPolygon(
		[2]float64{-0.5, -0.5}, [2]float64{1.5, -0.5},
		[2]float64{1.5, 1.5}, [2]float64{-0.5, 1.5},
	)
	c.Add("first", square)
	c.Add("second", square)

	res := ExtractAll(testRaster(), c)

	// Both ROIs contribute the same 4 pixels: duplicated per label, not
	// deduplicated.
	if len(res.Records) != 24 {
		t.Fatalf("got %d records, want 24", len(res.Records))
	}
	if res.Records[0].ROILabel != "first" || res.Records[12].ROILabel != "second" {
		t.Error("records must keep collection order")
	}
	if len(res.Summaries) != 2 {
		t.Fatalf("got %d summaries", len(res.Summaries))
	}
	for _, s := range res.Summaries {
		if s.PixelCount != 4 {
			t.Errorf("summary %q: %d pixels, want 4", s.Label, s.PixelCount)
		}
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestExtractAllSkipsDegenerate(t *testing.T) {
	c := roi.NewCollection("img.tiff")
	c.Add("bad", geometry.NewPolygon([2]float64{0, 0}, [2]float64{1, 1}))
	c.Add("good", triangle)

	res := ExtractAll(testRaster(), c)
	if len(res.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(res.Warnings))
	}
	if !strings.Contains(res.Warnings[0], "degenerate") {
		t.Errorf("warning = %q", res.Warnings[0])
	}
	if len(res.Records) != 18 {
		t.Errorf("good ROI must still extract: got %d records", len(res.Records))
	}
	if res.Summaries[0].PixelCount != 0 || res.Summaries[1].PixelCount != 6 {
		t.Errorf("summaries = %+v", res.Summaries)
	}
}

func TestCSVDeterministic(t *testing.T) {
	c := roi.NewCollection("img.tiff")
	c.Add("tri", triangle)
	r := testRaster()

	var a, b bytes.Buffer
	if err := WriteCSV(&a, ExtractAll(r, c).Records); err != nil {
		t.Fatal(err)
	}
	if err := WriteCSV(&b, ExtractAll(r, c).Records); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("repeated extraction must produce byte-identical CSV")
	}

	lines := strings.Split(strings.TrimSpace(a.String()), "\n")
	if lines[0] != "file_name,roi_label,channel,x,y,pixel_value" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 19 {
		t.Errorf("got %d lines, want header + 18 rows", len(lines))
	}
	if lines[1] != "img.tiff,tri,R,0,0,0" {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "file_name,roi_label,channel,x,y,pixel_value" {
		t.Errorf("empty export = %q", buf.String())
	}
}
