package annotate

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/mj1618/uimap/internal/model"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

// window at screen (1000, 500); controls are given in screen coordinates.
var testWindow = model.Rect{Left: 1000, Top: 500, Right: 1100, Bottom: 600}

func TestAnnotate_DrawsOutline(t *testing.T) {
	controls := []model.ControlInfo{
		{Index: 1, ControlType: "Button", Name: "OK", Rect: model.Rect{Left: 1010, Top: 510, Right: 1050, Bottom: 540}},
	}
	out, anns := Annotate(whiteImage(100, 100), controls, testWindow, Options{})

	if len(anns) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(anns))
	}
	want := model.Rect{Left: 10, Top: 10, Right: 50, Bottom: 40}
	if anns[0].Box != want {
		t.Errorf("box = %+v, want %+v", anns[0].Box, want)
	}
	if anns[0].Color != "red" || anns[0].Text != "OK" {
		t.Errorf("unexpected annotation %+v", anns[0])
	}

	points := []struct {
		x, y int
		want color.RGBA
	}{
		{10, 10, red},   // top-left corner
		{11, 30, red},   // second pixel of the left edge
		{50, 40, red},   // bottom-right corner is inclusive
		{49, 30, red},   // second pixel of the right edge
		{48, 30, white}, // inside the outline
		{30, 35, white}, // interior below the label
		{5, 5, white},   // outside
		{51, 41, white}, // outside
	}
	for _, p := range points {
		if got := out.RGBAAt(p.x, p.y); got != p.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", p.x, p.y, got, p.want)
		}
	}
}

func TestAnnotate_SkipsOutOfBoundsAndDegenerate(t *testing.T) {
	controls := []model.ControlInfo{
		{Index: 1, ControlType: "Window", Rect: model.Rect{Left: 992, Top: 492, Right: 1108, Bottom: 608}},
		{Index: 2, ControlType: "Button", Rect: model.Rect{Left: 1010, Top: 510, Right: 1011, Bottom: 540}},
		{Index: 3, ControlType: "Edit", Rect: model.Rect{Left: 1020, Top: 550, Right: 1080, Bottom: 580}},
		{Index: 4, ControlType: "Text", Rect: model.Rect{Left: 1090, Top: 550, Right: 1120, Bottom: 580}},
	}
	out, anns := Annotate(whiteImage(100, 100), controls, testWindow, Options{})

	if len(anns) != 1 {
		t.Fatalf("expected 1 drawn control, got %d: %+v", len(anns), anns)
	}
	if anns[0].Index != 3 {
		t.Errorf("drawn control index = %d, want 3 (indices are not renumbered)", anns[0].Index)
	}
	if got := out.RGBAAt(20, 50); got != blue {
		t.Errorf("edit box corner = %v, want blue", got)
	}
	if got := out.RGBAAt(0, 0); got != white {
		t.Errorf("skipped window outline was drawn: %v", got)
	}
}

func TestAnnotate_DoesNotModifyInput(t *testing.T) {
	src := whiteImage(100, 100)
	controls := []model.ControlInfo{
		{Index: 1, ControlType: "Button", Rect: model.Rect{Left: 1010, Top: 510, Right: 1050, Bottom: 540}},
	}
	Annotate(src, controls, testWindow, Options{})
	if got := src.RGBAAt(10, 10); got != white {
		t.Errorf("input image was modified: %v", got)
	}
}

func TestAnnotate_NonZeroImageOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(1000, 500, 1100, 600))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), img.Bounds().Min, draw.Src)

	controls := []model.ControlInfo{
		{Index: 1, ControlType: "Button", Rect: model.Rect{Left: 1010, Top: 510, Right: 1050, Bottom: 540}},
	}
	out, anns := Annotate(img, controls, testWindow, Options{})
	if len(anns) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(anns))
	}
	if out.Bounds().Min != (image.Point{}) {
		t.Errorf("output origin = %v, want (0,0)", out.Bounds().Min)
	}
	if got := out.RGBAAt(10, 10); got != red {
		t.Errorf("pixel (10,10) = %v, want red", got)
	}
}

func TestAnnotate_LineWidthOption(t *testing.T) {
	controls := []model.ControlInfo{
		{Index: 1, ControlType: "Button", Rect: model.Rect{Left: 1010, Top: 510, Right: 1060, Bottom: 560}},
	}
	out, _ := Annotate(whiteImage(100, 100), controls, testWindow, Options{LineWidth: 4})
	if got := out.RGBAAt(60, 40); got != red {
		t.Errorf("outer right edge = %v, want red", got)
	}
	if got := out.RGBAAt(57, 40); got != red {
		t.Errorf("fourth right edge pixel = %v, want red", got)
	}
	if got := out.RGBAAt(56, 40); got != white {
		t.Errorf("fifth right edge pixel = %v, want white", got)
	}
}

func TestAnnotate_LabelDrawn(t *testing.T) {
	controls := []model.ControlInfo{
		{Index: 8, ControlType: "Edit", Rect: model.Rect{Left: 1010, Top: 510, Right: 1090, Bottom: 590}},
	}
	out, _ := Annotate(whiteImage(100, 100), controls, testWindow, Options{FontSize: 14})

	// The label sits just inside the top-left corner; some pixel there must be inked.
	inked := false
	for y := 12; y < 32 && !inked; y++ {
		for x := 12; x < 30; x++ {
			if out.RGBAAt(x, y) != white {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("expected label pixels near the box's top-left corner")
	}
}

func TestLabelText(t *testing.T) {
	c := model.ControlInfo{Index: 42, Rect: model.Rect{Left: 100, Top: 200, Right: 140, Bottom: 260}}
	if got := labelText(c, LabelIndex); got != "42" {
		t.Errorf("LabelIndex = %q, want 42", got)
	}
	if got := labelText(c, LabelCenter); got != "(120,230)" {
		t.Errorf("LabelCenter = %q, want (120,230)", got)
	}
}

func TestParseLabelMode(t *testing.T) {
	for in, want := range map[string]LabelMode{"": LabelIndex, "index": LabelIndex, "Center": LabelCenter} {
		got, err := ParseLabelMode(in)
		if err != nil || got != want {
			t.Errorf("ParseLabelMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLabelMode("name"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
