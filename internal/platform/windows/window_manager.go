//go:build windows

package windows

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/mj1618/uimap/internal/model"
)

// WindowsWindowManager implements platform.WindowManager.
type WindowsWindowManager struct{}

// NewWindowManager creates a new Windows window manager.
func NewWindowManager() *WindowsWindowManager {
	return &WindowsWindowManager{}
}

// FocusWindow restores the window if minimised and brings it to the foreground.
// Input queues are attached temporarily because Windows refuses
// SetForegroundWindow from a process that does not own the foreground.
func (wm *WindowsWindowManager) FocusWindow(w model.Window) error {
	hwnd := windows.HWND(w.Handle)
	if hwnd == 0 {
		return fmt.Errorf("window %q has no native handle", w.Title)
	}

	current := windows.GetCurrentThreadId()
	if fg := windows.GetForegroundWindow(); fg != 0 && fg != hwnd {
		fgThread, _ := windows.GetWindowThreadProcessId(fg, nil)
		if fgThread != 0 && fgThread != current {
			procAttachThreadInput.Call(uintptr(current), uintptr(fgThread), 1)
			defer procAttachThreadInput.Call(uintptr(current), uintptr(fgThread), 0)
		}
	}

	if iconic, _, _ := procIsIconic.Call(uintptr(hwnd)); iconic != 0 {
		procShowWindow.Call(uintptr(hwnd), swRestore)
	}
	procBringWindowToTop.Call(uintptr(hwnd))

	if ret, _, err := procSetForegroundWindow.Call(uintptr(hwnd)); ret == 0 {
		return fmt.Errorf("failed to focus window %q: %v", w.Title, err)
	}
	return nil
}
