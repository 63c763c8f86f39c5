package theme

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Shade blends a #rrggbb color towards black by amount (0..1). Colors that do
// not parse are returned unchanged.
func Shade(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendLab(colorful.Color{}, amount).Clamped().Hex()
}
