package annotate

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultColor is used for control types without a palette entry.
const DefaultColor = "red"

// namedColors are the color names accepted in palettes.
var namedColors = map[string]color.RGBA{
	"red":    {R: 255, A: 255},
	"blue":   {B: 255, A: 255},
	"green":  {G: 128, A: 255},
	"purple": {R: 128, B: 128, A: 255},
	"orange": {R: 255, G: 165, A: 255},
	"brown":  {R: 165, G: 42, B: 42, A: 255},
	"pink":   {R: 255, G: 192, B: 203, A: 255},
	"yellow": {R: 255, G: 255, A: 255},
	"cyan":   {G: 255, B: 255, A: 255},
	"black":  {A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
}

// Palette maps control type names to color names.
type Palette map[string]string

// DefaultPalette covers both the UI Automation control type names and the
// classic Win32 class names for the same controls.
func DefaultPalette() Palette {
	return Palette{
		"Button":     "red",
		"Edit":       "blue",
		"Text":       "green",
		"Static":     "green",
		"List":       "purple",
		"ListBox":    "purple",
		"ComboBox":   "orange",
		"Tree":       "brown",
		"TreeView":   "brown",
		"Tab":        "pink",
		"TabControl": "pink",
	}
}

// ColorName returns the color name for a control type.
func (p Palette) ColorName(controlType string) string {
	if name, ok := p[controlType]; ok {
		return name
	}
	return DefaultColor
}

// Color returns the resolved color for a control type. Unparseable entries
// fall back to DefaultColor.
func (p Palette) Color(controlType string) color.RGBA {
	c, err := ParseColor(p.ColorName(controlType))
	if err != nil {
		return namedColors[DefaultColor]
	}
	return c
}

// Validate checks that every entry names a parseable color.
func (p Palette) Validate() error {
	for ct, name := range p {
		if _, err := ParseColor(name); err != nil {
			return fmt.Errorf("color for %q: %w", ct, err)
		}
	}
	return nil
}

// Merge returns a copy of p with the entries of override applied on top.
func (p Palette) Merge(override map[string]string) Palette {
	merged := make(Palette, len(p)+len(override))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// ParseColor accepts a color name from namedColors or a "#rrggbb" hex value.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q (use a name like red or #rrggbb)", s)
}
