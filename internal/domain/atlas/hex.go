package atlas

import (
	"strconv"
	"strings"
)

// FallbackGray is returned by HexToRGB for strings it cannot read.
var FallbackGray = RGB{R: 0.5, G: 0.5, B: 0.5}

// HexToRGB converts "#RRGGBB" (the '#' is optional, case-insensitive).
// Short forms, alpha channels and garbage all yield FallbackGray.
func HexToRGB(hex string) RGB {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return FallbackGray
	}
	var c [3]float64
	for i := range c {
		v, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return FallbackGray
		}
		c[i] = float64(v) / 255
	}
	return RGB{R: c[0], G: c[1], B: c[2]}
}
