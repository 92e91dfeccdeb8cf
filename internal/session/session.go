// Package session ties the platform backend, the control tree and the
// annotation renderer together around one connected application window.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/mj1618/uimap/internal/annotate"
	"github.com/mj1618/uimap/internal/config"
	"github.com/mj1618/uimap/internal/model"
	"github.com/mj1618/uimap/internal/platform"
)

// ErrNotConnected is returned by operations that need a connected window.
var ErrNotConnected = errors.New("not connected to an application")

// pollInterval is how often a launched program is checked for its window.
const pollInterval = 250 * time.Millisecond

// Session holds the connected main window between operations.
type Session struct {
	provider *platform.Provider
	cfg      *config.Config
	window   *model.Window

	now          func() time.Time
	sleep        func(ctx context.Context, d time.Duration) error
	processAlive func(pid int) bool
}

// Result is the outcome of Annotate.
type Result struct {
	Path        string
	Window      model.Window
	Controls    []model.ControlInfo
	Annotations []annotate.Annotation
	Image       *image.RGBA
}

// New creates a disconnected session.
func New(provider *platform.Provider, cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Session{
		provider: provider,
		cfg:      cfg,
		now:          time.Now,
		sleep:        sleepContext,
		processAlive: processAlive,
	}
}

// Config returns the session's configuration.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Connected reports whether a main window is attached.
func (s *Session) Connected() bool {
	return s.window != nil
}

// Window returns the connected main window.
func (s *Session) Window() (model.Window, error) {
	if s.window == nil {
		return model.Window{}, ErrNotConnected
	}
	return *s.window, nil
}

// ListApplications returns all top-level windows.
func (s *Session) ListApplications() ([]model.Window, error) {
	windows, err := s.provider.Reader.ListWindows(platform.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	return windows, nil
}

// Connect attaches to the window selected by opts. With no selector the
// configured default program is launched and its window is used.
func (s *Session) Connect(ctx context.Context, opts platform.ConnectOptions) (model.Window, error) {
	if opts.IsZero() {
		return s.Launch(ctx, s.cfg.DefaultProgram)
	}
	win, err := platform.ResolveWindow(s.provider.Reader, opts)
	if err != nil {
		return model.Window{}, err
	}
	s.attach(win)
	return win, nil
}

// Launch starts program and connects to its first window. The launched
// process is matched by PID. Programs that hand off to another process and
// exit (Windows Store app launchers) are matched by executable name once the
// launched process is gone or the timeout expires; windows that existed
// before the launch never match by name.
func (s *Session) Launch(ctx context.Context, program string) (model.Window, error) {
	if strings.TrimSpace(program) == "" {
		return model.Window{}, fmt.Errorf("no program to launch")
	}
	if s.provider.Launcher == nil {
		return model.Window{}, fmt.Errorf("launch: %w", platform.ErrUnsupported)
	}

	before, err := s.provider.Reader.ListWindows(platform.ListOptions{})
	if err != nil {
		return model.Window{}, fmt.Errorf("failed to list windows: %w", err)
	}
	existing := make(map[uintptr]bool, len(before))
	for _, w := range before {
		existing[w.Handle] = true
	}

	pid, err := s.provider.Launcher.Launch(program, nil)
	if err != nil {
		return model.Window{}, fmt.Errorf("failed to launch %s: %w", program, err)
	}
	slog.Info("launched program", "program", program, "pid", pid)

	if err := s.sleep(ctx, s.cfg.GetLaunchWait()); err != nil {
		return model.Window{}, err
	}

	deadline := s.now().Add(s.cfg.GetLaunchTimeout())
	for {
		windows, err := s.provider.Reader.ListWindows(platform.ListOptions{})
		if err != nil {
			return model.Window{}, fmt.Errorf("failed to list windows: %w", err)
		}
		if own := platform.FilterWindows(windows, platform.ListOptions{PID: pid}); len(own) > 0 {
			s.attach(own[0])
			return own[0], nil
		}

		expired := !s.now().Before(deadline)
		if expired || !s.processAlive(pid) {
			for _, w := range platform.FilterWindows(windows, platform.ListOptions{App: program}) {
				if !existing[w.Handle] {
					s.attach(w)
					return w, nil
				}
			}
		}
		if expired {
			return model.Window{}, fmt.Errorf("no window for %s (pid %d) after %s: %w",
				program, pid, s.cfg.GetLaunchTimeout(), platform.ErrWindowNotFound)
		}

		slog.Debug("waiting for window", "program", program, "pid", pid)
		if err := s.sleep(ctx, pollInterval); err != nil {
			return model.Window{}, err
		}
	}
}

func (s *Session) attach(win model.Window) {
	s.window = &win
	slog.Info("connected to application", "title", win.Title, "pid", win.PID, "app", win.App)
}

// Controls reads and flattens the connected window's control tree.
func (s *Session) Controls() ([]model.ControlInfo, error) {
	if s.window == nil {
		return nil, ErrNotConnected
	}
	win, err := s.refresh()
	if err != nil {
		return nil, err
	}
	return s.readControls(win)
}

func (s *Session) readControls(win model.Window) ([]model.ControlInfo, error) {
	root, err := s.provider.Reader.ReadControls(platform.ReadOptions{Window: win, Depth: s.cfg.Depth})
	if err != nil {
		return nil, fmt.Errorf("failed to read controls: %w", err)
	}
	return model.Flatten(root), nil
}

// refresh re-reads the connected window so its rectangle reflects any move
// or restore since connecting.
func (s *Session) refresh() (model.Window, error) {
	cur := *s.window
	windows, err := s.provider.Reader.ListWindows(platform.ListOptions{PID: cur.PID})
	if err != nil {
		return model.Window{}, fmt.Errorf("failed to list windows: %w", err)
	}
	for _, w := range windows {
		if w.Handle == cur.Handle {
			s.window = &w
			return w, nil
		}
	}
	return model.Window{}, fmt.Errorf("window %q (pid %d) is gone: %w", cur.Title, cur.PID, platform.ErrWindowNotFound)
}

// Focus brings the connected window to the foreground.
func (s *Session) Focus() error {
	if s.window == nil {
		return ErrNotConnected
	}
	if err := s.provider.WindowManager.FocusWindow(*s.window); err != nil {
		return fmt.Errorf("failed to focus %q: %w", s.window.Title, err)
	}
	return nil
}

// Capture focuses the connected window and saves a plain screenshot of it.
func (s *Session) Capture(ctx context.Context, savePath string) (string, error) {
	win, img, err := s.focusAndCapture(ctx)
	if err != nil {
		return "", err
	}
	if savePath == "" {
		savePath = DefaultSavePath(s.cfg.ScreenshotDir, win.Title, s.now())
	}
	if err := SaveImage(savePath, img); err != nil {
		return "", err
	}
	return savePath, nil
}

func (s *Session) focusAndCapture(ctx context.Context) (model.Window, image.Image, error) {
	if s.window == nil {
		return model.Window{}, nil, ErrNotConnected
	}
	if err := s.provider.WindowManager.FocusWindow(*s.window); err != nil {
		slog.Warn("could not focus window", "title", s.window.Title, "err", err)
	}
	if err := s.sleep(ctx, s.cfg.GetFocusDelay()); err != nil {
		return model.Window{}, nil, err
	}

	win, err := s.refresh()
	if err != nil {
		return model.Window{}, nil, err
	}
	img, err := s.provider.Screenshotter.CaptureWindow(win)
	if err != nil {
		return model.Window{}, nil, fmt.Errorf("failed to capture window: %w", err)
	}
	return win, img, nil
}

// Annotate brings the connected window to the front, captures it, draws a
// box and index label over every visible control and saves the image.
// An empty savePath picks a timestamped file in the screenshot directory.
func (s *Session) Annotate(ctx context.Context, savePath string) (*Result, error) {
	win, img, err := s.focusAndCapture(ctx)
	if err != nil {
		return nil, err
	}

	controls, err := s.readControls(win)
	if err != nil {
		return nil, err
	}
	slog.Info("found controls", "count", len(controls))

	rgba, annotations := annotate.Annotate(img, controls, win.Rect, s.cfg.AnnotateOptions())

	if savePath == "" {
		savePath = DefaultSavePath(s.cfg.ScreenshotDir, win.Title, s.now())
	}
	if err := SaveImage(savePath, rgba); err != nil {
		return nil, err
	}
	slog.Info("screenshot saved", "path", savePath, "annotated", len(annotations))

	return &Result{
		Path:        savePath,
		Window:      win,
		Controls:    controls,
		Annotations: annotations,
		Image:       rgba,
	}, nil
}

// DefaultSavePath returns <dir>/<sanitized title>_<YYYYmmdd_HHMMSS>.png.
func DefaultSavePath(dir, title string, t time.Time) string {
	return filepath.Join(dir, SanitizeFileName(title)+"_"+t.Format("20060102_150405")+".png")
}

var fileNameReplacer = strings.NewReplacer(
	" ", "_", "/", "_", `\`, "_", ":", "_", "*", "_",
	"?", "_", `"`, "_", "<", "_", ">", "_", "|", "_",
)

// SanitizeFileName makes a window title usable as a file name.
func SanitizeFileName(title string) string {
	name := fileNameReplacer.Replace(title)
	if name == "" {
		return "window"
	}
	return name
}

func processAlive(pid int) bool {
	ok, err := process.PidExists(int32(pid))
	return err == nil && ok
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
