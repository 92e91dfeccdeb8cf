//go:build windows

package windows

import "github.com/mj1618/uimap/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		enableDPIAwareness()
		reader := NewReader()
		return &platform.Provider{
			Reader:        reader,
			WindowManager: NewWindowManager(),
			Screenshotter: NewScreenshotter(),
			Launcher:      NewLauncher(),
		}, nil
	}
}
