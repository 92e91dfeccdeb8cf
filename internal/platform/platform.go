package platform

import (
	"image"

	"github.com/mj1618/uimap/internal/model"
)

// Reader reads windows and control trees from the OS UI automation layer.
type Reader interface {
	// ListWindows returns top-level windows, optionally filtered.
	ListWindows(opts ListOptions) ([]model.Window, error)

	// ReadControls returns the control tree rooted at the target window.
	ReadControls(opts ReadOptions) (model.Control, error)
}

// WindowManager manages window focus.
type WindowManager interface {
	// FocusWindow brings the window to the foreground.
	FocusWindow(w model.Window) error
}

// Screenshotter captures window pixels.
type Screenshotter interface {
	// CaptureWindow returns the pixels covered by the window rectangle.
	// The image origin corresponds to the window's top-left corner.
	CaptureWindow(w model.Window) (image.Image, error)
}

// Launcher starts programs.
type Launcher interface {
	// Launch starts the program and returns its process ID without waiting for it.
	Launch(path string, args []string) (int, error)
}
