package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"roi-extractor/internal/raster"
	"roi-extractor/internal/roi"
	"roi-extractor/pkg/geometry"
)

// writeTestImage writes a small 16-bit PNG and returns its path.
func writeTestImage(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA64(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA64(x, y, color.NRGBA64{R: 1000, G: 2000, B: 500, A: 65535})
		}
	}
	path := filepath.Join(dir, "frame.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

var testPolygon = geometry.NewPolygon(
	[2]float64{1, 1}, [2]float64{6, 1}, [2]float64{6, 6}, [2]float64{1, 6},
)

func TestLoadImageStartsFreshSession(t *testing.T) {
	s := NewState()
	path := writeTestImage(t, t.TempDir())

	var events []string
	s.On(EventImageLoaded, func(data interface{}) {
		events = append(events, data.(string))
	})

	if err := s.LoadImage(path); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if s.FileName != "frame.png" {
		t.Errorf("FileName = %q", s.FileName)
	}
	if s.Raster == nil || s.Raster.Width != 8 {
		t.Error("raster not decoded")
	}
	if s.Collection == nil || s.Collection.Len() != 0 {
		t.Error("collection must start empty")
	}
	if s.Mode() != ModeIdle {
		t.Errorf("mode = %v", s.Mode())
	}
	if len(events) != 1 || events[0] != path {
		t.Errorf("events = %v", events)
	}
}

func TestModeTransitions(t *testing.T) {
	s := NewState()
	var changes []Mode
	s.On(EventModeChanged, func(data interface{}) {
		changes = append(changes, data.(Mode))
	})

	s.SetMode(ModeDrawingPolygon)
	s.SetMode(ModeDrawingPolygon) // no-op, no duplicate event
	s.SetMode(ModeAwaitingLabel)
	s.SetMode(ModeIdle)

	want := []Mode{ModeDrawingPolygon, ModeAwaitingLabel, ModeIdle}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, changes[i], want[i])
		}
	}
}

func TestAddROIAppendsInOrder(t *testing.T) {
	s := NewState()
	s.FileName = "frame.png"

	s.AddROI("a", testPolygon)
	s.AddROI("b", testPolygon)

	if s.Collection.Len() != 2 {
		t.Fatalf("Len() = %d", s.Collection.Len())
	}
	if s.Collection.ROIs[0].Label != "a" || s.Collection.ROIs[1].Label != "b" {
		t.Error("insertion order not preserved")
	}
	if !s.Modified {
		t.Error("adding a ROI must mark the session modified")
	}
}

func TestLoadROIsMismatchWarning(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	if err := s.LoadImage(writeTestImage(t, dir)); err != nil {
		t.Fatal(err)
	}

	other := roi.NewCollection("someone-elses.tiff")
	other.Add("x", testPolygon)
	roiPath := filepath.Join(dir, "rois.json")
	if err := other.Save(roiPath); err != nil {
		t.Fatal(err)
	}

	mismatch, err := s.LoadROIs(roiPath)
	if err != nil {
		t.Fatalf("LoadROIs: %v", err)
	}
	if !mismatch {
		t.Error("expected mismatch warning for foreign roi file")
	}
	if s.Collection.Len() != 1 {
		t.Error("rois not loaded")
	}
}

func TestLoadROIsRestoresWhiteBalance(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	imgPath := writeTestImage(t, dir)
	if err := s.LoadImage(imgPath); err != nil {
		t.Fatal(err)
	}

	saved := roi.NewCollection("frame.png")
	saved.WhiteBalance = &raster.Multipliers{R: 2, G: 1, B: 4}
	roiPath := filepath.Join(dir, "rois.json")
	if err := saved.Save(roiPath); err != nil {
		t.Fatal(err)
	}

	mismatch, err := s.LoadROIs(roiPath)
	if err != nil {
		t.Fatalf("LoadROIs: %v", err)
	}
	if mismatch {
		t.Error("unexpected mismatch")
	}
	if s.WhiteBalance != (raster.Multipliers{R: 2, G: 1, B: 4}) {
		t.Errorf("WhiteBalance = %+v", s.WhiteBalance)
	}
	// Red samples were 1000 raw; doubled by the multiplier on re-decode.
	if got := s.Raster.At(0, 0, raster.ChannelR); got != 2000 {
		t.Errorf("re-decoded R = %d, want 2000", got)
	}
}

func TestApplyWhitePoint(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	if err := s.LoadImage(writeTestImage(t, dir)); err != nil {
		t.Fatal(err)
	}

	// Uniform (1000, 2000, 500) image: multipliers are (2, 1, 4).
	m, err := s.ApplyWhitePoint(4, 4)
	if err != nil {
		t.Fatalf("ApplyWhitePoint: %v", err)
	}
	if m != (raster.Multipliers{R: 2, G: 1, B: 4}) {
		t.Errorf("multipliers = %+v", m)
	}
	if s.Collection.WhiteBalance == nil || *s.Collection.WhiteBalance != m {
		t.Error("collection must carry the applied white balance")
	}

	if _, err := s.ApplyWhitePoint(100, 100); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	if err := s.LoadImage(writeTestImage(t, dir)); err != nil {
		t.Fatal(err)
	}
	s.AddROI("box", testPolygon)

	csvPath := filepath.Join(dir, "out.csv")
	res, err := s.ExportCSV(csvPath)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	// Square [1,6]x[1,6] contains the integer grid 1..5 in both axes.
	if res.Summaries[0].PixelCount != 25 {
		t.Errorf("PixelCount = %d, want 25", res.Summaries[0].PixelCount)
	}
	if _, err := os.Stat(csvPath); err != nil {
		t.Errorf("csv not written: %v", err)
	}
}

func TestExportCSVWithoutROIs(t *testing.T) {
	s := NewState()
	if _, err := s.ExportCSV("out.csv"); err == nil {
		t.Error("expected error with no image loaded")
	}
}
