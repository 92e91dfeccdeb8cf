package model

import "fmt"

// Rect is a rectangle in screen pixels, stored as left/top/right/bottom edges.
// Right and Bottom are exclusive.
type Rect struct {
	Left   int `yaml:"l" json:"l"`
	Top    int `yaml:"t" json:"t"`
	Right  int `yaml:"r" json:"r"`
	Bottom int `yaml:"b" json:"b"`
}

// Width returns the horizontal extent. It may be negative for malformed rects.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent. It may be negative for malformed rects.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Empty reports whether the rect covers no pixels.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Offset translates the rect by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// String formats the rect as "(left,top,right,bottom)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}
