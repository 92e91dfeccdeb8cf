package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/uimap/internal/model"
)

// LabelMode controls what text is drawn next to each box.
type LabelMode int

const (
	// LabelIndex draws the control's traversal index.
	LabelIndex LabelMode = iota
	// LabelCenter draws "(x,y)", the screen-absolute center of the control.
	LabelCenter
)

// ParseLabelMode maps "index" or "center" to a LabelMode.
func ParseLabelMode(s string) (LabelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "index":
		return LabelIndex, nil
	case "center":
		return LabelCenter, nil
	}
	return LabelIndex, fmt.Errorf("unknown label mode %q (must be index or center)", s)
}

// DefaultLineWidth is the box outline width in pixels.
const DefaultLineWidth = 2

// labelOffset is the distance of the label from the box's top-left corner.
const labelOffset = 2

// Options configures Annotate.
type Options struct {
	Palette   Palette
	LineWidth int
	FontSize  float64
	Label     LabelMode
}

func (o Options) withDefaults() Options {
	if o.Palette == nil {
		o.Palette = DefaultPalette()
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	return o
}

// Annotate draws a box and label for every control that maps inside img.
// window is the screen rectangle img was captured from; controls carry
// screen rectangles. Controls are drawn in slice order so later (deeper)
// controls paint over their ancestors. The returned annotations list the
// drawn controls; skipped controls keep their index, so the labels on the
// image may have gaps.
func Annotate(img image.Image, controls []model.ControlInfo, window model.Rect, opts Options) (*image.RGBA, []Annotation) {
	opts = opts.withDefaults()
	rgba := ImageToRGBA(img)
	imgW, imgH := rgba.Bounds().Dx(), rgba.Bounds().Dy()

	face := labelFace(opts.FontSize)
	defer face.Close()

	var annotations []Annotation
	for _, c := range controls {
		box := Project(c.Rect, window)
		if !Visible(box, imgW, imgH) {
			slog.Debug("control not drawn", "index", c.Index, "type", c.ControlType, "box", box.String())
			continue
		}

		col := opts.Palette.Color(c.ControlType)
		drawRectangle(rgba, box, opts.LineWidth, col)
		drawLabel(rgba, face, labelText(c, opts.Label), box.Left+labelOffset, box.Top+labelOffset, col)

		annotations = append(annotations, Annotation{
			Index:       c.Index,
			ControlType: c.ControlType,
			Text:        c.Name,
			Box:         box,
			Color:       opts.Palette.ColorName(c.ControlType),
		})
	}
	return rgba, annotations
}

func labelText(c model.ControlInfo, mode LabelMode) string {
	switch mode {
	case LabelCenter:
		return fmt.Sprintf("(%d,%d)", c.Rect.Left+c.Rect.Width()/2, c.Rect.Top+c.Rect.Height()/2)
	default:
		return fmt.Sprint(c.Index)
	}
}

// ImageToRGBA copies any image into an RGBA image whose origin is (0,0).
func ImageToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// drawRectangle draws an outline whose outer edge passes through the box's
// corners inclusively, growing inward by width pixels. Parts outside the
// image are clipped.
func drawRectangle(img *image.RGBA, box model.Rect, width int, c color.Color) {
	x1, y1, x2, y2 := box.Left, box.Top, box.Right, box.Bottom
	src := image.NewUniform(c)
	bounds := img.Bounds()

	fill := func(r image.Rectangle) {
		r = r.Intersect(bounds)
		if !r.Empty() {
			draw.Draw(img, r, src, image.Point{}, draw.Src)
		}
	}

	for k := 0; k < width; k++ {
		if x1+k > x2-k || y1+k > y2-k {
			break
		}
		fill(image.Rect(x1+k, y1+k, x2-k+1, y1+k+1)) // top
		fill(image.Rect(x1+k, y2-k, x2-k+1, y2-k+1)) // bottom
		fill(image.Rect(x1+k, y1+k, x1+k+1, y2-k+1)) // left
		fill(image.Rect(x2-k, y1+k, x2-k+1, y2-k+1)) // right
	}
}

// drawLabel draws text with its top-left corner at (x, y).
func drawLabel(img *image.RGBA, face font.Face, text string, x, y int, c color.Color) {
	ascent := face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + ascent},
	}
	d.DrawString(text)
}
