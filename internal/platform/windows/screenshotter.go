//go:build windows

package windows

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/mj1618/uimap/internal/model"
)

// WindowsScreenshotter implements platform.Screenshotter by grabbing the
// screen area under the window rectangle.
type WindowsScreenshotter struct{}

// NewScreenshotter creates a new Windows screenshotter.
func NewScreenshotter() *WindowsScreenshotter {
	return &WindowsScreenshotter{}
}

// CaptureWindow captures the window rectangle. The window must be in front
// for the capture to show its own pixels.
func (s *WindowsScreenshotter) CaptureWindow(w model.Window) (image.Image, error) {
	if w.Rect.Empty() {
		return nil, fmt.Errorf("window %q has empty bounds %s", w.Title, w.Rect)
	}
	bounds := image.Rect(w.Rect.Left, w.Rect.Top, w.Rect.Right, w.Rect.Bottom)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture window %q: %w", w.Title, err)
	}
	return img, nil
}
