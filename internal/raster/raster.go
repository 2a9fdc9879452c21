// Package raster provides the decoded image data model and the image
// decoding front end for the extractor.
package raster

import (
	"image"
	"image/color"
)

// Channel indices into a Raster, fixed as red, green, blue.
const (
	ChannelR = iota
	ChannelG
	ChannelB
	NumChannels
)

// ChannelName returns the single-letter name of a channel ("R", "G", "B").
func ChannelName(c int) string {
	switch c {
	case ChannelR:
		return "R"
	case ChannelG:
		return "G"
	case ChannelB:
		return "B"
	default:
		return "?"
	}
}

// Multipliers holds per-channel white balance scale factors applied to raw
// channel intensities at decode time. Green is the reference channel and is
// 1.0 after normalization.
type Multipliers struct {
	R float64 `json:"red"`
	G float64 `json:"green"`
	B float64 `json:"blue"`
}

// Neutral returns identity multipliers (no rescaling).
func Neutral() Multipliers {
	return Multipliers{R: 1, G: 1, B: 1}
}

// IsNeutral reports whether the multipliers leave all channels unchanged.
func (m Multipliers) IsNeutral() bool {
	return m.R == 1 && m.G == 1 && m.B == 1
}

// Raster is a dense height x width x 3 grid of 16-bit samples in row-major
// order with channels interleaved R, G, B. It is treated as immutable once
// decoded; changing white balance re-derives the whole raster.
type Raster struct {
	Width  int
	Height int
	data   []uint16
}

// New creates an all-zero raster of the given dimensions.
func New(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		data:   make([]uint16, width*height*NumChannels),
	}
}

// At returns the sample at pixel (x, y) for the given channel.
// Coordinates must be in range.
func (r *Raster) At(x, y, c int) uint16 {
	return r.data[(y*r.Width+x)*NumChannels+c]
}

// Set stores a sample. It is intended for raster construction (decode and
// tests); extraction never mutates a raster.
func (r *Raster) Set(x, y, c int, v uint16) {
	r.data[(y*r.Width+x)*NumChannels+c] = v
}

// InBounds reports whether (x, y) is a valid pixel coordinate.
func (r *Raster) InBounds(x, y int) bool {
	return x >= 0 && x < r.Width && y >= 0 && y < r.Height
}

// Max returns the largest sample value across all channels.
func (r *Raster) Max() uint16 {
	var max uint16
	for _, v := range r.data {
		if v > max {
			max = v
		}
	}
	return max
}

// FromImage converts a decoded image to a Raster, applying the given white
// balance multipliers. The stdlib 16-bit color path preserves full depth for
// 16-bit sources; 8-bit sources scale up to the 16-bit range. Scaled samples
// clamp at the 16-bit ceiling.
func FromImage(img image.Image, wb Multipliers) *Raster {
	bounds := img.Bounds()
	r := New(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			px, py := x-bounds.Min.X, y-bounds.Min.Y
			r.Set(px, py, ChannelR, scaleSample(cr, wb.R))
			r.Set(px, py, ChannelG, scaleSample(cg, wb.G))
			r.Set(px, py, ChannelB, scaleSample(cb, wb.B))
		}
	}
	return r
}

func scaleSample(v uint32, mult float64) uint16 {
	if mult == 1 {
		return uint16(v)
	}
	scaled := float64(v) * mult
	if scaled < 0 {
		return 0
	}
	if scaled > 65535 {
		return 65535
	}
	return uint16(scaled)
}

// DisplayImage produces an 8-bit rendition normalized against the maximum
// sample, for on-screen display only. Extraction always reads the raw
// 16-bit samples.
func (r *Raster) DisplayImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	max := r.Max()
	if max == 0 {
		return out
	}

	scale := 255.0 / float64(max)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(r.At(x, y, ChannelR)) * scale),
				G: uint8(float64(r.At(x, y, ChannelG)) * scale),
				B: uint8(float64(r.At(x, y, ChannelB)) * scale),
				A: 255,
			})
		}
	}
	return out
}
