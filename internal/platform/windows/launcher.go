//go:build windows

package windows

import (
	"fmt"
	"os/exec"
)

// WindowsLauncher implements platform.Launcher.
type WindowsLauncher struct{}

// NewLauncher creates a new Windows launcher.
func NewLauncher() *WindowsLauncher {
	return &WindowsLauncher{}
}

// Launch starts path with args and detaches from the child.
func (l *WindowsLauncher) Launch(path string, args []string) (int, error) {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %q: %w", path, err)
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("failed to release %q: %w", path, err)
	}
	return pid, nil
}
