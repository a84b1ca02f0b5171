package contact

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/tartampluch/go-contactinfo/internal/config"
)

// ErrInvalidColor is returned for strings that are not 6-digit hex colors.
var ErrInvalidColor = errors.New(config.ErrInvalidColor)

// NormalizeColor upper-cases a hex color and strips a leading '#'.
func NormalizeColor(hex string) (string, error) {
	hex = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	if len(hex) != config.HexColorSz {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return hex, nil
}

// ParseColor converts a hex color into an opaque color.NRGBA.
func ParseColor(hex string) (color.NRGBA, error) {
	norm, err := NormalizeColor(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	v, _ := strconv.ParseUint(norm, 16, 32) // already validated by NormalizeColor
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// RandomColor picks a palette color different from current.
// A nil rng uses the global source.
func RandomColor(rng *rand.Rand, current string) string {
	intn := rand.IntN
	if rng != nil {
		intn = rng.IntN
	}

	// Excluding the current color guarantees the tap visibly changes something.
	candidates := make([]string, 0, len(config.ColorPalette))
	for _, c := range config.ColorPalette {
		if !strings.EqualFold(c, current) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return config.DefaultNavColor
	}
	return candidates[intn(len(candidates))]
}
