package session

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mj1618/uimap/internal/config"
	"github.com/mj1618/uimap/internal/model"
	"github.com/mj1618/uimap/internal/platform"
)

type fakeReader struct {
	windows     []model.Window
	root        model.Control
	listCalls   int
	appearAfter int // windows are hidden for this many ListWindows calls
	later       []model.Window
	laterFrom   int // later windows are listed from this ListWindows call on
	lastRead    platform.ReadOptions
}

func (r *fakeReader) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	r.listCalls++
	if r.listCalls <= r.appearAfter {
		return nil, nil
	}
	windows := r.windows
	if r.laterFrom > 0 && r.listCalls >= r.laterFrom {
		windows = append(append([]model.Window{}, r.windows...), r.later...)
	}
	return platform.FilterWindows(windows, opts), nil
}

func (r *fakeReader) ReadControls(opts platform.ReadOptions) (model.Control, error) {
	r.lastRead = opts
	return r.root, nil
}

type fakeWindowManager struct {
	focused []model.Window
	err     error
}

func (m *fakeWindowManager) FocusWindow(w model.Window) error {
	m.focused = append(m.focused, w)
	return m.err
}

type fakeScreenshotter struct{}

func (fakeScreenshotter) CaptureWindow(w model.Window) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, w.Rect.Width(), w.Rect.Height()))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img, nil
}

type fakeLauncher struct {
	pid      int
	launched []string
}

func (l *fakeLauncher) Launch(path string, args []string) (int, error) {
	l.launched = append(l.launched, path)
	return l.pid, nil
}

var calcWindow = model.Window{
	App: "calc", PID: 30, Title: "My Calc / Sci", Handle: 0x1234,
	Rect: model.Rect{Left: 100, Top: 100, Right: 300, Bottom: 400},
}

func calcTree() model.Control {
	return model.Control{
		ControlType: "Window", Name: "My Calc / Sci", Rect: calcWindow.Rect,
		Children: []model.Control{
			{ControlType: "Button", Name: "7", Rect: model.Rect{Left: 110, Top: 200, Right: 150, Bottom: 240}},
			{ControlType: "Edit", Name: "", Rect: model.Rect{Left: 90, Top: 120, Right: 290, Bottom: 150}}, // off the left edge
			{ControlType: "Text", Name: "0", Rect: model.Rect{Left: 120, Top: 160, Right: 280, Bottom: 190}},
		},
	}
}

type fixture struct {
	session  *Session
	reader   *fakeReader
	wm       *fakeWindowManager
	launcher *fakeLauncher
	slept    []time.Duration
	exited   bool // launched process has gone away
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		reader:   &fakeReader{windows: []model.Window{calcWindow}, root: calcTree()},
		wm:       &fakeWindowManager{},
		launcher: &fakeLauncher{pid: 30},
	}
	cfg := config.Default()
	cfg.ScreenshotDir = filepath.Join(t.TempDir(), "shots")
	f.session = New(&platform.Provider{
		Reader:        f.reader,
		WindowManager: f.wm,
		Screenshotter: fakeScreenshotter{},
		Launcher:      f.launcher,
	}, cfg)

	clock := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	f.session.now = func() time.Time { return clock }
	f.session.processAlive = func(pid int) bool { return !f.exited }
	f.session.sleep = func(ctx context.Context, d time.Duration) error {
		f.slept = append(f.slept, d)
		clock = clock.Add(d)
		return ctx.Err()
	}
	return f
}

func TestSession_RequiresConnection(t *testing.T) {
	f := newFixture(t)
	if f.session.Connected() {
		t.Fatal("new session should not be connected")
	}
	if _, err := f.session.Controls(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Controls: got %v, want ErrNotConnected", err)
	}
	if _, err := f.session.Annotate(context.Background(), ""); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Annotate: got %v, want ErrNotConnected", err)
	}
	if _, err := f.session.Window(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Window: got %v, want ErrNotConnected", err)
	}
}

func TestSession_ConnectByTitle(t *testing.T) {
	f := newFixture(t)
	win, err := f.session.Connect(context.Background(), platform.ConnectOptions{Title: "calc"})
	if err != nil {
		t.Fatal(err)
	}
	if win.PID != 30 || !f.session.Connected() {
		t.Errorf("unexpected window %+v", win)
	}
}

func TestSession_ConnectNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.Connect(context.Background(), platform.ConnectOptions{PID: 999})
	if !errors.Is(err, platform.ErrWindowNotFound) {
		t.Fatalf("got %v, want ErrWindowNotFound", err)
	}
	if f.session.Connected() {
		t.Error("failed connect should leave session disconnected")
	}
}

func TestSession_ConnectWithoutSelectorLaunchesDefault(t *testing.T) {
	f := newFixture(t)
	f.reader.appearAfter = 2

	win, err := f.session.Connect(context.Background(), platform.ConnectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(f.launcher.launched) != 1 || f.launcher.launched[0] != "calc.exe" {
		t.Errorf("launched %v, want [calc.exe]", f.launcher.launched)
	}
	if win.PID != 30 {
		t.Errorf("connected to pid %d", win.PID)
	}
	if len(f.slept) == 0 || f.slept[0] != 2*time.Second {
		t.Errorf("expected launch wait first, slept %v", f.slept)
	}
}

func TestSession_LaunchFallsBackToExecutableName(t *testing.T) {
	f := newFixture(t)
	f.launcher.pid = 77 // launcher process exits and hands off
	f.exited = true
	f.reader.appearAfter = 1 // calc window shows up only after the launch

	win, err := f.session.Launch(context.Background(), `C:\Windows\System32\calc.exe`)
	if err != nil {
		t.Fatal(err)
	}
	if win.PID != 30 {
		t.Errorf("expected fallback to running calc (pid 30), got %d", win.PID)
	}
}

func TestSession_LaunchPrefersLaunchedProcess(t *testing.T) {
	f := newFixture(t)
	f.reader.windows = []model.Window{{App: "notepad", PID: 30, Title: "old.txt - Notepad", Handle: 0x10}}
	f.reader.later = []model.Window{{App: "notepad", PID: 77, Title: "Untitled - Notepad", Handle: 0x20}}
	f.reader.laterFrom = 3
	f.launcher.pid = 77

	win, err := f.session.Launch(context.Background(), "notepad.exe")
	if err != nil {
		t.Fatal(err)
	}
	if win.PID != 77 {
		t.Errorf("attached to pid %d (%q), want launched pid 77", win.PID, win.Title)
	}
}

func TestSession_LaunchIgnoresPreexistingInstance(t *testing.T) {
	f := newFixture(t)
	f.reader.windows = []model.Window{{App: "notepad", PID: 30, Title: "old.txt - Notepad", Handle: 0x10}}
	f.launcher.pid = 77
	f.exited = true

	_, err := f.session.Launch(context.Background(), "notepad.exe")
	if !errors.Is(err, platform.ErrWindowNotFound) {
		t.Fatalf("got %v, want ErrWindowNotFound", err)
	}
	if f.session.Connected() {
		t.Error("session should not attach to a window that existed before the launch")
	}
}

func TestSession_LaunchTimesOut(t *testing.T) {
	f := newFixture(t)
	f.reader.appearAfter = 1 << 30

	_, err := f.session.Launch(context.Background(), "calc.exe")
	if !errors.Is(err, platform.ErrWindowNotFound) {
		t.Fatalf("got %v, want ErrWindowNotFound", err)
	}
	var total time.Duration
	for _, d := range f.slept {
		total += d
	}
	if total < 12*time.Second {
		t.Errorf("gave up after %v, want launch wait plus timeout", total)
	}
}

func TestSession_LaunchCancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.session.Launch(ctx, "calc.exe"); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestSession_Controls(t *testing.T) {
	f := newFixture(t)
	f.session.Config().Depth = 3
	if _, err := f.session.Connect(context.Background(), platform.ConnectOptions{PID: 30}); err != nil {
		t.Fatal(err)
	}
	controls, err := f.session.Controls()
	if err != nil {
		t.Fatal(err)
	}
	if len(controls) != 4 {
		t.Fatalf("got %d controls, want 4", len(controls))
	}
	if controls[3].Index != 4 || controls[3].Path != "Window > Text" {
		t.Errorf("unexpected last control %+v", controls[3])
	}
	if f.reader.lastRead.Depth != 3 {
		t.Errorf("depth not passed to reader: %+v", f.reader.lastRead)
	}
}

func TestSession_ControlsWindowGone(t *testing.T) {
	f := newFixture(t)
	if _, err := f.session.Connect(context.Background(), platform.ConnectOptions{PID: 30}); err != nil {
		t.Fatal(err)
	}
	f.reader.windows = nil
	if _, err := f.session.Controls(); !errors.Is(err, platform.ErrWindowNotFound) {
		t.Fatalf("got %v, want ErrWindowNotFound", err)
	}
}

func TestSession_Annotate(t *testing.T) {
	f := newFixture(t)
	f.wm.err = errors.New("foreground lock")
	if _, err := f.session.Connect(context.Background(), platform.ConnectOptions{PID: 30}); err != nil {
		t.Fatal(err)
	}

	res, err := f.session.Annotate(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}

	if len(f.wm.focused) != 1 {
		t.Errorf("expected one focus call, got %d", len(f.wm.focused))
	}
	if len(f.slept) != 1 || f.slept[0] != 500*time.Millisecond {
		t.Errorf("expected focus delay, slept %v", f.slept)
	}

	wantPath := filepath.Join(f.session.Config().ScreenshotDir, "My_Calc___Sci_20240309_140507.png")
	if res.Path != wantPath {
		t.Errorf("path = %q, want %q", res.Path, wantPath)
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}

	if len(res.Controls) != 4 {
		t.Errorf("controls = %d, want 4", len(res.Controls))
	}
	// Root window, button and text are drawn; the edit sticks out of the image.
	var got []int
	for _, a := range res.Annotations {
		got = append(got, a.Index)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 4 {
		t.Errorf("annotated indices = %v, want [1 2 4]", got)
	}
	if res.Image.Bounds().Dx() != 200 || res.Image.Bounds().Dy() != 300 {
		t.Errorf("image size = %v", res.Image.Bounds())
	}
}

func TestSession_AnnotateJPEG(t *testing.T) {
	f := newFixture(t)
	if _, err := f.session.Connect(context.Background(), platform.ConnectOptions{PID: 30}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "nested", "out.JPG")
	res, err := f.session.Annotate(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Errorf("expected JPEG magic, got % x", data[:2])
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"Calculator":          "Calculator",
		"notes.txt - Notepad": "notes.txt_-_Notepad",
		"a/b c":               "a_b_c",
		`C:\dir`:              "C__dir",
		"":                    "window",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultSavePath(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	got := DefaultSavePath("shots", "Calculator", ts)
	if !strings.HasSuffix(filepath.ToSlash(got), "shots/Calculator_20250102_030405.png") {
		t.Errorf("got %q", got)
	}
}

func TestSession_FocusAndCapture(t *testing.T) {
	f := newFixture(t)
	if err := f.session.Focus(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Focus before connect: got %v", err)
	}
	if _, err := f.session.Connect(context.Background(), platform.ConnectOptions{Title: "Calc"}); err != nil {
		t.Fatal(err)
	}
	if err := f.session.Focus(); err != nil {
		t.Fatal(err)
	}

	path, err := f.session.Capture(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(f.wm.focused) != 2 {
		t.Errorf("expected two focus calls, got %d", len(f.wm.focused))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("capture not written: %v", err)
	}

	f.wm.err = errors.New("denied")
	if err := f.session.Focus(); err == nil || !strings.Contains(err.Error(), "denied") {
		t.Errorf("expected focus error, got %v", err)
	}
}
