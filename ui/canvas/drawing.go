package canvas

import (
	"image"
	"image/color"
	"math"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// letterPatterns contains 3x5 pixel patterns for letters A-Z and common symbols.
var letterPatterns = map[rune][5]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'+': {0b000, 0b010, 0b111, 0b010, 0b000},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'_': {0b000, 0b000, 0b000, 0b000, 0b111},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// getCharPattern returns the 3x5 pixel pattern for a character.
// Returns a zero pattern for unsupported characters.
func getCharPattern(ch rune) [5]uint8 {
	if ch >= '0' && ch <= '9' {
		return digitPatterns[ch-'0']
	}
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if pattern, ok := letterPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{}
}

const (
	charWidth   = 3
	charHeight  = 5
	charSpacing = 1
	textScale   = 2
)

// setPixel writes a pixel if it is inside the image.
func setPixel(out *image.RGBA, x, y int, col color.RGBA) {
	b := out.Bounds()
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		out.SetRGBA(x, y, col)
	}
}

// drawLine draws a 1-pixel line between two points using DDA stepping.
func drawLine(out *image.RGBA, x1, y1, x2, y2 float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		setPixel(out, int(x1), int(y1), col)
		return
	}

	xStep := dx / steps
	yStep := dy / steps
	x, y := x1, y1
	for i := 0; i <= int(steps); i++ {
		setPixel(out, int(x), int(y), col)
		x += xStep
		y += yStep
	}
}

// drawMarker draws a small filled square centered at (x, y), used for
// polygon vertex handles.
func drawMarker(out *image.RGBA, x, y int, col color.RGBA) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			setPixel(out, x+dx, y+dy, col)
		}
	}
}

// drawTextCentered draws text centered at (cx, cy) using the 3x5 bitmap
// font.
func drawTextCentered(out *image.RGBA, text string, cx, cy int, col color.RGBA) {
	runes := []rune(text)
	width := len(runes) * (charWidth + charSpacing) * textScale
	height := charHeight * textScale
	x := cx - width/2
	y := cy - height/2

	for _, ch := range runes {
		pattern := getCharPattern(ch)
		for row := 0; row < charHeight; row++ {
			for colBit := 0; colBit < charWidth; colBit++ {
				if pattern[row]&(1<<(charWidth-1-colBit)) == 0 {
					continue
				}
				for sy := 0; sy < textScale; sy++ {
					for sx := 0; sx < textScale; sx++ {
						setPixel(out,
							x+(colBit*textScale)+sx,
							y+(row*textScale)+sy,
							col)
					}
				}
			}
		}
		x += (charWidth + charSpacing) * textScale
	}
}
