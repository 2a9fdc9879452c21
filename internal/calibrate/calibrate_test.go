package calibrate

import (
	"errors"
	"testing"

	"roi-extractor/internal/raster"
)

func uniformRaster(w, h int, r, g, b uint16) *raster.Raster {
	ras := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ras.Set(x, y, raster.ChannelR, r)
			ras.Set(x, y, raster.ChannelG, g)
			ras.Set(x, y, raster.ChannelB, b)
		}
	}
	return ras
}

func TestSampleWhitePointUniform(t *testing.T) {
	r := uniformRaster(10, 10, 100, 200, 50)
	avgR, avgG, avgB, err := SampleWhitePoint(r, 5, 5, 5)
	if err != nil {
		t.Fatalf("SampleWhitePoint: %v", err)
	}
	if avgR != 100 || avgG != 200 || avgB != 50 {
		t.Errorf("averages = (%g, %g, %g), want (100, 200, 50)", avgR, avgG, avgB)
	}
}

func TestSampleWhitePointWindowClampsAtEdge(t *testing.T) {
	r := raster.New(10, 10)
	// Bright pixel in the corner, zero elsewhere. A 5-window at (0, 0)
	// clamps to the 3x3 corner block, so the mean is 900/9.
	r.Set(0, 0, raster.ChannelG, 900)

	_, avgG, _, err := SampleWhitePoint(r, 0, 0, 5)
	if err != nil {
		t.Fatalf("SampleWhitePoint: %v", err)
	}
	if avgG != 100 {
		t.Errorf("avgG = %g, want 100 (3x3 clamped window)", avgG)
	}
}

func TestSampleWhitePointDefaultWindow(t *testing.T) {
	r := uniformRaster(10, 10, 40, 80, 20)
	avgR, _, _, err := SampleWhitePoint(r, 5, 5, 0)
	if err != nil {
		t.Fatalf("SampleWhitePoint: %v", err)
	}
	if avgR != 40 {
		t.Errorf("avgR = %g, want 40", avgR)
	}
}

func TestSampleWhitePointOutOfRange(t *testing.T) {
	r := raster.New(10, 10)
	cases := [][2]int{{-1, 5}, {5, -1}, {10, 5}, {5, 10}}
	for _, c := range cases {
		_, _, _, err := SampleWhitePoint(r, c[0], c[1], 5)
		if !errors.Is(err, ErrCoordinateOutOfRange) {
			t.Errorf("SampleWhitePoint(%d, %d): got %v, want ErrCoordinateOutOfRange", c[0], c[1], err)
		}
	}
}

func TestDeriveMultipliers(t *testing.T) {
	cases := []struct {
		name          string
		avgR, avgG, avgB float64
		want          raster.Multipliers
	}{
		{"typical", 100, 200, 50, raster.Multipliers{R: 2, G: 1, B: 4}},
		{"all zero", 0, 0, 0, raster.Multipliers{R: 1, G: 1, B: 1}},
		{"zero green", 100, 0, 50, raster.Multipliers{R: 1, G: 1, B: 1}},
		{"zero red", 0, 200, 100, raster.Multipliers{R: 1, G: 1, B: 2}},
		{"neutral", 300, 300, 300, raster.Multipliers{R: 1, G: 1, B: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DeriveMultipliers(c.avgR, c.avgG, c.avgB); got != c.want {
				t.Errorf("DeriveMultipliers(%g, %g, %g) = %+v, want %+v",
					c.avgR, c.avgG, c.avgB, got, c.want)
			}
		})
	}
}

func TestParseMultipliers(t *testing.T) {
	m, err := ParseMultipliers("2.0, 2.0, 4.0")
	if err != nil {
		t.Fatalf("ParseMultipliers: %v", err)
	}
	if (m != raster.Multipliers{R: 1, G: 1, B: 2}) {
		t.Errorf("got %+v, want green-normalized {1, 1, 2}", m)
	}

	for _, bad := range []string{"", "1,2", "1,2,3,4", "a,b,c", "1,0,1"} {
		if _, err := ParseMultipliers(bad); err == nil {
			t.Errorf("ParseMultipliers(%q): expected error", bad)
		}
	}
}
