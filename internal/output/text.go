package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mj1618/uimap/internal/annotate"
	"github.com/mj1618/uimap/internal/model"
)

const (
	treeTextLimit = 20
	noText        = "(no text)"
	ruleWidth     = 80
)

// WriteTree prints the flattened controls as an indented tree, one line
// per control: index, depth indent, type, class and the first 20
// characters of the control's text.
func WriteTree(w io.Writer, controls []model.ControlInfo) error {
	if _, err := fmt.Fprintf(w, "Control tree:\n%s\n", strings.Repeat("-", ruleWidth)); err != nil {
		return err
	}
	for _, c := range controls {
		text := noText
		if c.Name != "" {
			text = model.TruncateRunes(c.Name, treeTextLimit)
		}
		if _, err := fmt.Fprintf(w, "%3d. %s%s | %s | '%s'\n",
			c.Index, strings.Repeat("  ", c.Depth), c.ControlType, c.ClassName, text); err != nil {
			return err
		}
	}
	return nil
}

// WriteAnnotations prints one fixed-width line per drawn control.
func WriteAnnotations(w io.Writer, annotations []annotate.Annotation) error {
	for _, a := range annotations {
		if _, err := fmt.Fprintln(w, a.Format()); err != nil {
			return err
		}
	}
	return nil
}

// WriteWindows prints the titled windows, numbered from 1. Untitled
// windows are skipped and do not consume a number.
func WriteWindows(w io.Writer, windows []model.Window) error {
	titled := TitledWindows(windows)
	if _, err := fmt.Fprintf(w, "Found %d windows:\n", len(titled)); err != nil {
		return err
	}
	for i, win := range titled {
		if _, err := fmt.Fprintf(w, "%d. title: '%s' | class: '%s' | pid: %d\n",
			i+1, win.Title, win.ClassName, win.PID); err != nil {
			return err
		}
	}
	return nil
}

// TitledWindows returns the windows with a non-blank title, in order.
func TitledWindows(windows []model.Window) []model.Window {
	var out []model.Window
	for _, win := range windows {
		if strings.TrimSpace(win.Title) != "" {
			out = append(out, win)
		}
	}
	return out
}
