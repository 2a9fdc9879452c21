// Package calibrate derives white balance multipliers from a sampled
// reference point or a manually supplied triple. The multipliers are handed
// to the raster decoder; this package never rescales pixels itself.
package calibrate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"roi-extractor/internal/raster"
)

// DefaultWindow is the side length of the sampling window around the picked
// white point.
const DefaultWindow = 5

// ErrCoordinateOutOfRange reports a white point pick outside the raster.
var ErrCoordinateOutOfRange = errors.New("calibrate: sample point outside raster bounds")

// SampleWhitePoint averages each channel over a square window centered at
// (x, y). The window is clamped to the raster bounds and may shrink at the
// edges; only the center point itself being out of bounds is an error.
// A window of zero or less uses DefaultWindow.
func SampleWhitePoint(r *raster.Raster, x, y, window int) (avgR, avgG, avgB float64, err error) {
	if !r.InBounds(x, y) {
		return 0, 0, 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrCoordinateOutOfRange, x, y, r.Width, r.Height)
	}
	if window <= 0 {
		window = DefaultWindow
	}

	half := window / 2
	x0, x1 := x-half, x+half
	y0, y1 := y-half, y+half
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > r.Width-1 {
		x1 = r.Width - 1
	}
	if y1 > r.Height-1 {
		y1 = r.Height - 1
	}

	n := (x1 - x0 + 1) * (y1 - y0 + 1)
	samples := [raster.NumChannels][]float64{
		make([]float64, 0, n),
		make([]float64, 0, n),
		make([]float64, 0, n),
	}
	for sy := y0; sy <= y1; sy++ {
		for sx := x0; sx <= x1; sx++ {
			for c := 0; c < raster.NumChannels; c++ {
				samples[c] = append(samples[c], float64(r.At(sx, sy, c)))
			}
		}
	}

	return stat.Mean(samples[raster.ChannelR], nil),
		stat.Mean(samples[raster.ChannelG], nil),
		stat.Mean(samples[raster.ChannelB], nil),
		nil
}

// DeriveMultipliers normalizes channel averages against green. A zero green
// reference cannot calibrate and yields identity; a zero red or blue average
// leaves that channel's multiplier at 1.
func DeriveMultipliers(avgR, avgG, avgB float64) raster.Multipliers {
	if avgG == 0 {
		return raster.Neutral()
	}
	m := raster.Neutral()
	if avgR > 0 {
		m.R = avgG / avgR
	}
	if avgB > 0 {
		m.B = avgG / avgB
	}
	return m
}

// ParseMultipliers parses a manual "r,g,b" triple, normalizing it the same
// way sampled multipliers are: all three divided by the green value.
func ParseMultipliers(s string) (raster.Multipliers, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return raster.Multipliers{}, fmt.Errorf("calibrate: expected \"r,g,b\", got %q", s)
	}

	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return raster.Multipliers{}, fmt.Errorf("calibrate: bad multiplier %q: %w", p, err)
		}
		vals[i] = v
	}
	if vals[1] == 0 {
		return raster.Multipliers{}, errors.New("calibrate: green multiplier must be non-zero")
	}

	return raster.Multipliers{
		R: vals[0] / vals[1],
		G: 1.0,
		B: vals[2] / vals[1],
	}, nil
}
