// Package annotate maps screen-space control rectangles onto a window
// screenshot and draws indexed, color-coded boxes over them.
package annotate

import (
	"fmt"

	"github.com/mj1618/uimap/internal/model"
)

// MinExtent is the smallest box side, in pixels, that gets drawn.
// Boxes with a side of MinExtent or less are treated as degenerate.
const MinExtent = 1

// Project converts a screen-coordinate control rectangle into coordinates
// relative to the window's top-left corner.
func Project(control, window model.Rect) model.Rect {
	return control.Offset(-window.Left, -window.Top)
}

// Visible reports whether a window-relative box lies completely inside an
// image of imgW x imgH pixels and is larger than MinExtent on both axes.
func Visible(box model.Rect, imgW, imgH int) bool {
	if box.Left < 0 || box.Top < 0 || box.Right > imgW || box.Bottom > imgH {
		return false
	}
	return box.Width() > MinExtent && box.Height() > MinExtent
}

// Annotation is a control that was drawn on the screenshot.
type Annotation struct {
	Index       int        `yaml:"i"               json:"i"`
	ControlType string     `yaml:"type"            json:"type"`
	Text        string     `yaml:"text,omitempty"  json:"text,omitempty"`
	Box         model.Rect `yaml:"box"             json:"box"`
	Color       string     `yaml:"color"           json:"color"`
}

// Format renders an annotation as a fixed-width listing line:
// index, control type, first 30 characters of text, window-relative box.
func (a Annotation) Format() string {
	return fmt.Sprintf("%3d. %-15s | %-30s | (%d,%d,%d,%d)",
		a.Index, a.ControlType, model.TruncateRunes(a.Text, 30),
		a.Box.Left, a.Box.Top, a.Box.Right, a.Box.Bottom)
}
