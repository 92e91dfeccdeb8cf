package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mj1618/uimap/internal/model"
)

// ErrWindowNotFound is returned when no window matches a connect selector.
var ErrWindowNotFound = errors.New("no matching window found")

// ResolveWindow finds the main window of the application selected by opts.
// The first matching window in listing order is returned.
func ResolveWindow(reader Reader, opts ConnectOptions) (model.Window, error) {
	if opts.IsZero() {
		return model.Window{}, fmt.Errorf("could not resolve target: specify a pid, title, or path")
	}

	listOpts := ListOptions{}
	switch {
	case opts.PID != 0:
		listOpts.PID = opts.PID
	case opts.Title != "":
		listOpts.Title = opts.Title
	default:
		listOpts.App = opts.Path
	}

	windows, err := reader.ListWindows(listOpts)
	if err != nil {
		return model.Window{}, fmt.Errorf("failed to list windows: %w", err)
	}
	windows = FilterWindows(windows, listOpts)
	if len(windows) == 0 {
		return model.Window{}, fmt.Errorf("%s: %w", opts, ErrWindowNotFound)
	}
	return windows[0], nil
}

// FilterWindows applies ListOptions to an already enumerated window list.
// Backends call it after enumeration so every backend filters the same way.
func FilterWindows(windows []model.Window, opts ListOptions) []model.Window {
	result := make([]model.Window, 0, len(windows))
	titleLower := strings.ToLower(opts.Title)
	for _, w := range windows {
		if opts.PID != 0 && w.PID != opts.PID {
			continue
		}
		if opts.App != "" && !MatchesApp(w.App, opts.App) {
			continue
		}
		if titleLower != "" && !strings.Contains(strings.ToLower(w.Title), titleLower) {
			continue
		}
		if opts.TitledOnly && strings.TrimSpace(w.Title) == "" {
			continue
		}
		result = append(result, w)
	}
	return result
}

// MatchesApp reports whether a process name matches an executable name or
// path. The comparison uses base names, ignores case and an ".exe" suffix.
func MatchesApp(processName, path string) bool {
	if processName == "" || path == "" {
		return false
	}
	return normalizeExe(processName) == normalizeExe(path)
}

func normalizeExe(s string) string {
	s = strings.ReplaceAll(s, `\`, "/")
	s = strings.ToLower(filepath.Base(s))
	return strings.TrimSuffix(s, ".exe")
}
