package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/uimap/internal/model"
)

// ListOptions controls window listing.
type ListOptions struct {
	PID        int    // Filter by process ID (0 = unset)
	App        string // Filter by process name (case-insensitive, ".exe" optional)
	Title      string // Filter by window title substring (case-insensitive)
	TitledOnly bool   // Skip windows with an empty or blank title
}

// ReadOptions controls control-tree traversal.
type ReadOptions struct {
	Window model.Window // Root of the traversal
	Depth  int          // Max traversal depth (0 = unlimited)
}

// ConnectOptions selects the application to attach to.
// At most one selector should be set; PID wins over Title, Title over Path.
type ConnectOptions struct {
	PID   int    // Attach to a running process
	Title string // Attach to the first window whose title contains this substring
	Path  string // Attach to a running instance of this executable
}

// IsZero reports whether no selector is set.
func (o ConnectOptions) IsZero() bool {
	return o.PID == 0 && strings.TrimSpace(o.Title) == "" && strings.TrimSpace(o.Path) == ""
}

// String describes the selector for error messages.
func (o ConnectOptions) String() string {
	switch {
	case o.PID != 0:
		return "pid " + strconv.Itoa(o.PID)
	case o.Title != "":
		return fmt.Sprintf("title %q", o.Title)
	case o.Path != "":
		return fmt.Sprintf("path %q", o.Path)
	default:
		return "no selector"
	}
}

// ParsePID parses a user-supplied process ID.
func ParsePID(s string) (int, error) {
	pid, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid process ID %q: must be a number", s)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("invalid process ID %d: must be positive", pid)
	}
	return pid, nil
}
