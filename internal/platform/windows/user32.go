//go:build windows

package windows

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procGetWindowRect        = user32.NewProc("GetWindowRect")
	procShowWindow           = user32.NewProc("ShowWindow")
	procIsIconic             = user32.NewProc("IsIconic")
	procBringWindowToTop     = user32.NewProc("BringWindowToTop")
	procSetForegroundWindow  = user32.NewProc("SetForegroundWindow")
	procAttachThreadInput    = user32.NewProc("AttachThreadInput")
	procSetProcessDPIAware   = user32.NewProc("SetProcessDPIAware")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
)

const swRestore = 9

// rect mirrors the Win32 RECT structure.
type rect struct {
	Left, Top, Right, Bottom int32
}

var dpiOnce sync.Once

// enableDPIAwareness makes window rectangles, UIA bounding rectangles and
// screen captures all use physical pixels.
func enableDPIAwareness() {
	dpiOnce.Do(func() {
		if procSetProcessDPIAware.Find() == nil {
			procSetProcessDPIAware.Call()
		}
	})
}

func getWindowRect(hwnd windows.HWND) (rect, bool) {
	var r rect
	ret, _, _ := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	return r, ret != 0
}

func getWindowText(hwnd windows.HWND) string {
	length, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	n, err := getWindowTextW(hwnd, &buf[0], int32(len(buf)))
	if err != nil && n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// getWindowTextW calls user32 GetWindowTextW; x/sys/windows does not wrap it.
func getWindowTextW(hwnd windows.HWND, str *uint16, maxCount int32) (int32, error) {
	r0, _, e1 := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(str)), uintptr(maxCount))
	n := int32(r0)
	if n == 0 {
		if e1 != windows.ERROR_SUCCESS {
			return 0, e1
		}
	}
	return n, nil
}

func getClassName(hwnd windows.HWND) string {
	buf := make([]uint16, 256)
	n, err := windows.GetClassName(hwnd, &buf[0], int32(len(buf)))
	if err != nil {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}
