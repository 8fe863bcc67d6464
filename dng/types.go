// Package dng writes single-channel Bayer mosaic sensor images as
// Digital Negative (DNG) files.
//
// DNG is a TIFF-based container for unprocessed ("raw") sensor data.
// Save embeds the camera identity, the color filter array layout and
// a sensor-to-reference color transform alongside the pixel data;
// Load reads files written by Save back into memory.
package dng

import "strings"

// CFAColor identifies the color of one photosite in a Bayer tile.
// The values match the on-disk CFAPattern tag encoding.
type CFAColor uint8

const (
	CFARed   CFAColor = 0
	CFAGreen CFAColor = 1
	CFABlue  CFAColor = 2
)

// String returns the color name.
func (c CFAColor) String() string {
	switch c {
	case CFARed:
		return "red"
	case CFAGreen:
		return "green"
	case CFABlue:
		return "blue"
	default:
		return "unknown"
	}
}

// CFAPattern identifies the 2x2 Bayer tile layout of a sensor.
// The zero value is RGGB, the most common layout and the default
// for Save.
type CFAPattern uint8

const (
	PatternRGGB CFAPattern = iota
	PatternBGGR
	PatternGBRG
	PatternGRBG
)

// cfaTiles holds each pattern's tile in row-major reading order:
// top-left, top-right, bottom-left, bottom-right.
var cfaTiles = [...][4]CFAColor{
	PatternRGGB: {CFARed, CFAGreen, CFAGreen, CFABlue},
	PatternBGGR: {CFABlue, CFAGreen, CFAGreen, CFARed},
	PatternGBRG: {CFAGreen, CFABlue, CFARed, CFAGreen},
	PatternGRBG: {CFAGreen, CFARed, CFABlue, CFAGreen},
}

// Valid reports whether p is one of the defined patterns.
func (p CFAPattern) Valid() bool {
	return int(p) < len(cfaTiles)
}

// Colors returns the four tile colors in reading order. For an
// undefined pattern it returns the RGGB tile.
func (p CFAPattern) Colors() [4]CFAColor {
	if !p.Valid() {
		return cfaTiles[PatternRGGB]
	}
	return cfaTiles[p]
}

// String returns the pattern name, e.g. "RGGB".
func (p CFAPattern) String() string {
	switch p {
	case PatternRGGB:
		return "RGGB"
	case PatternBGGR:
		return "BGGR"
	case PatternGBRG:
		return "GBRG"
	case PatternGRBG:
		return "GRBG"
	default:
		return "unknown"
	}
}

// PatternFromColors returns the pattern whose tile matches colors.
func PatternFromColors(colors [4]CFAColor) (CFAPattern, bool) {
	for p, tile := range cfaTiles {
		if tile == colors {
			return CFAPattern(p), true
		}
	}
	return 0, false
}

// ParsePattern parses a pattern name such as "RGGB" or "bggr".
func ParsePattern(s string) (CFAPattern, error) {
	for p := PatternRGGB; p.Valid(); p++ {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, newTypeMismatch("unknown CFA pattern %q", s)
}

// Illuminant is an EXIF light source code, used for the optional
// CalibrationIlluminant tags. Zero means unset and is not written.
type Illuminant uint16

const (
	IlluminantDaylight    Illuminant = 1
	IlluminantFluorescent Illuminant = 2
	IlluminantTungsten    Illuminant = 3
	IlluminantFlash       Illuminant = 4
	IlluminantStandardA   Illuminant = 17
	IlluminantStandardB   Illuminant = 18
	IlluminantStandardC   Illuminant = 19
	IlluminantD55         Illuminant = 20
	IlluminantD65         Illuminant = 21
	IlluminantD75         Illuminant = 22
	IlluminantD50         Illuminant = 23
)
