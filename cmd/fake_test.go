package cmd

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/mj1618/uimap/internal/config"
	"github.com/mj1618/uimap/internal/model"
	"github.com/mj1618/uimap/internal/output"
	"github.com/mj1618/uimap/internal/platform"
)

type fakeReader struct {
	windows []model.Window
	root    model.Control
}

func (r *fakeReader) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	return platform.FilterWindows(r.windows, opts), nil
}

func (r *fakeReader) ReadControls(opts platform.ReadOptions) (model.Control, error) {
	return r.root, nil
}

type fakeWindowManager struct{}

func (fakeWindowManager) FocusWindow(model.Window) error { return nil }

type fakeScreenshotter struct{}

func (fakeScreenshotter) CaptureWindow(w model.Window) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, w.Rect.Width(), w.Rect.Height()))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img, nil
}

type fakeLauncher struct{ pid int }

func (l fakeLauncher) Launch(string, []string) (int, error) { return l.pid, nil }

func fakeProvider() *platform.Provider {
	rect := model.Rect{Left: 50, Top: 50, Right: 370, Bottom: 550}
	return &platform.Provider{
		Reader: &fakeReader{
			windows: []model.Window{
				{App: "explorer", PID: 4, Handle: 1},
				{App: "calc", PID: 30, Title: "Calculator", ClassName: "ApplicationFrameWindow", Handle: 2, Rect: rect},
			},
			root: model.Control{
				ControlType: "Window", ClassName: "ApplicationFrameWindow", Name: "Calculator", Rect: rect,
				Children: []model.Control{
					{ControlType: "Text", Name: "Display is 0", Rect: model.Rect{Left: 60, Top: 100, Right: 360, Bottom: 160}},
					{ControlType: "Button", Name: "Seven", Rect: model.Rect{Left: 60, Top: 300, Right: 140, Bottom: 360}},
				},
			},
		},
		WindowManager: fakeWindowManager{},
		Screenshotter: fakeScreenshotter{},
		Launcher:      fakeLauncher{pid: 30},
	}
}

// useFakeProvider swaps in a fake backend and a config that writes into a
// temp dir without waiting.
func useFakeProvider(t *testing.T) {
	t.Helper()
	oldProvider, oldConfig, oldFormat := newProvider, appConfig, output.OutputFormat
	t.Cleanup(func() {
		newProvider, appConfig, output.OutputFormat = oldProvider, oldConfig, oldFormat
	})

	newProvider = func() (*platform.Provider, error) { return fakeProvider(), nil }
	cfg := config.Default()
	cfg.ScreenshotDir = t.TempDir()
	cfg.FocusDelay = "0s"
	cfg.LaunchWait = "0s"
	appConfig = cfg
	output.OutputFormat = output.FormatText
}
