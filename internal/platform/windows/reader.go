//go:build windows

package windows

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/windows"

	"github.com/mj1618/uimap/internal/model"
	"github.com/mj1618/uimap/internal/platform"
)

// WindowsReader implements platform.Reader using Win32 enumeration and UI Automation.
type WindowsReader struct{}

// NewReader creates a new Windows reader.
func NewReader() *WindowsReader {
	return &WindowsReader{}
}

// Callbacks made with windows.NewCallback are never freed, so a single one
// is shared by every enumeration.
var (
	enumMu       sync.Mutex
	enumHandles  []windows.HWND
	enumCallback = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		enumHandles = append(enumHandles, hwnd)
		return 1
	})
)

func topLevelWindows() ([]windows.HWND, error) {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumHandles = nil
	if err := windows.EnumWindows(enumCallback, unsafe.Pointer(nil)); err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}
	handles := enumHandles
	enumHandles = nil
	return handles, nil
}

// ListWindows returns visible top-level windows in z-order (topmost first),
// filtered per ListOptions.
func (r *WindowsReader) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	handles, err := topLevelWindows()
	if err != nil {
		return nil, err
	}
	foreground := windows.GetForegroundWindow()
	names := make(map[int]string)

	var result []model.Window
	for _, hwnd := range handles {
		if !windows.IsWindowVisible(hwnd) {
			continue
		}
		var pid uint32
		if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil || pid == 0 {
			continue
		}
		wr, ok := getWindowRect(hwnd)
		if !ok {
			continue
		}

		name, seen := names[int(pid)]
		if !seen {
			name = processName(int(pid))
			names[int(pid)] = name
		}

		result = append(result, model.Window{
			App:       name,
			PID:       int(pid),
			Title:     getWindowText(hwnd),
			ClassName: getClassName(hwnd),
			Handle:    uintptr(hwnd),
			Rect:      toModelRect(wr),
			Focused:   hwnd == foreground,
		})
	}

	result = platform.FilterWindows(result, opts)
	return result, nil
}

// processName returns the executable name of pid without its ".exe" suffix.
func processName(pid int) string {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, err := p.Name()
	if err != nil {
		slog.Debug("process name unavailable", "pid", pid, "err", err)
		return ""
	}
	if strings.HasSuffix(strings.ToLower(name), ".exe") {
		name = name[:len(name)-4]
	}
	return name
}

// ReadControls walks the raw UI Automation view below the target window.
// A control whose properties cannot be read is skipped with its subtree;
// a failing child enumeration keeps what was collected so far.
func (r *WindowsReader) ReadControls(opts platform.ReadOptions) (model.Control, error) {
	if opts.Window.Handle == 0 {
		return model.Control{}, fmt.Errorf("window %q has no native handle", opts.Window.Title)
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	uninit, err := comInit()
	if err != nil {
		return model.Control{}, err
	}
	defer uninit()

	auto, err := newAutomation()
	if err != nil {
		return model.Control{}, err
	}
	defer auto.release()

	rootEl, err := auto.elementFromHandle(opts.Window.Handle)
	if err != nil {
		return model.Control{}, fmt.Errorf("failed to read automation tree for window %q: %w", opts.Window.Title, err)
	}
	defer rootEl.release()

	t := &treeReader{auto: auto, maxDepth: opts.Depth}
	root, err := t.readControl(rootEl)
	if err != nil {
		return model.Control{}, fmt.Errorf("failed to read root control: %w", err)
	}
	t.readChildren(rootEl, &root, 0)

	slog.Debug("control tree read", "window", opts.Window.Title, "controls", root.Count(), "skipped", t.skipped)
	return root, nil
}

type treeReader struct {
	auto     *automation
	maxDepth int
	skipped  int
}

func (t *treeReader) readChildren(parentEl element, parent *model.Control, depth int) {
	if t.maxDepth > 0 && depth >= t.maxDepth {
		return
	}

	child, err := t.auto.firstChild(parentEl)
	for err == nil && child != 0 {
		c, cerr := t.readControl(child)
		if cerr != nil {
			t.skipped++
			slog.Debug("skipping control", "err", cerr)
		} else {
			t.readChildren(child, &c, depth+1)
			parent.Children = append(parent.Children, c)
		}

		next, nerr := t.auto.nextSibling(child)
		child.release()
		child, err = next, nerr
	}
	if err != nil {
		slog.Debug("child enumeration stopped", "parent", parent.Name, "err", err)
	}
}

func (t *treeReader) readControl(el element) (model.Control, error) {
	ct, err := el.controlType()
	if err != nil {
		return model.Control{}, fmt.Errorf("control type: %w", err)
	}
	br, err := el.boundingRectangle()
	if err != nil {
		return model.Control{}, fmt.Errorf("bounding rectangle: %w", err)
	}

	// Text properties are best-effort; a missing name is not fatal.
	name, _ := el.name()
	class, _ := el.className()
	autoID, _ := el.automationID()
	enabled, _ := el.isEnabled()
	offscreen, _ := el.isOffscreen()

	return model.Control{
		Name:         name,
		ClassName:    class,
		ControlType:  model.ControlTypeName(ct),
		AutomationID: autoID,
		Rect:         toModelRect(br),
		Enabled:      enabled,
		Offscreen:    offscreen,
	}, nil
}

func toModelRect(r rect) model.Rect {
	return model.Rect{Left: int(r.Left), Top: int(r.Top), Right: int(r.Right), Bottom: int(r.Bottom)}
}
