package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/uimap/internal/output"
	"github.com/mj1618/uimap/internal/platform"
	"github.com/mj1618/uimap/internal/session"
)

// commandContext returns the command's context, or Background when the
// command was invoked directly rather than through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// addTargetFlags registers the window selector flags shared by commands
// that attach to a running application.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Attach to the first window whose title contains this text")
	cmd.Flags().Int("pid", 0, "Attach to the first window of this process ID")
	cmd.Flags().String("path", "", "Attach to a running instance of this executable (e.g. notepad.exe)")
}

// getConnectOptions reads the selector flags. Exactly one must be set.
func getConnectOptions(cmd *cobra.Command) (platform.ConnectOptions, error) {
	title, _ := cmd.Flags().GetString("title")
	pid, _ := cmd.Flags().GetInt("pid")
	path, _ := cmd.Flags().GetString("path")

	for name, v := range map[string]string{"title": title, "path": path} {
		if cmd.Flags().Changed(name) && strings.TrimSpace(v) == "" {
			return platform.ConnectOptions{}, fmt.Errorf("--%s cannot be blank", name)
		}
	}

	set := 0
	for _, ok := range []bool{title != "", pid != 0, path != ""} {
		if ok {
			set++
		}
	}
	switch {
	case set == 0:
		return platform.ConnectOptions{}, fmt.Errorf("specify --title, --pid, or --path")
	case set > 1:
		return platform.ConnectOptions{}, fmt.Errorf("--title, --pid and --path are mutually exclusive")
	case pid < 0:
		return platform.ConnectOptions{}, fmt.Errorf("invalid --pid %d: must be positive", pid)
	}
	return platform.ConnectOptions{PID: pid, Title: title, Path: path}, nil
}

// applyDepthFlag overrides the configured traversal depth when --depth is set.
func applyDepthFlag(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("depth") {
		return nil
	}
	depth, _ := cmd.Flags().GetInt("depth")
	if depth < 0 {
		return fmt.Errorf("--depth cannot be negative")
	}
	appConfig.Depth = depth
	return nil
}

func newSession() (*session.Session, error) {
	provider, err := newProvider()
	if err != nil {
		return nil, err
	}
	return session.New(provider, appConfig), nil
}

// connectedSession creates a session attached to the window selected by
// the command's target flags.
func connectedSession(cmd *cobra.Command) (*session.Session, error) {
	opts, err := getConnectOptions(cmd)
	if err != nil {
		return nil, err
	}
	sess, err := newSession()
	if err != nil {
		return nil, err
	}
	if _, err := sess.Connect(commandContext(cmd), opts); err != nil {
		return nil, err
	}
	return sess, nil
}

// printAnnotateResult prints the annotation listing, the saved path and,
// when withTree is set, the full control tree.
func printAnnotateResult(w io.Writer, res *session.Result, withTree bool) error {
	if output.OutputFormat != output.FormatText {
		return output.Fprint(w, output.OutputFormat, annotateResult(res))
	}
	fmt.Fprintf(w, "Found %d controls\n", len(res.Controls))
	if err := output.WriteAnnotations(w, res.Annotations); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nScreenshot saved to: %s\n", res.Path)
	if !withTree {
		return nil
	}
	fmt.Fprintln(w)
	return output.WriteTree(w, res.Controls)
}

func annotateResult(res *session.Result) output.AnnotateResult {
	return output.AnnotateResult{
		App:         res.Window.App,
		PID:         res.Window.PID,
		Window:      res.Window.Title,
		Path:        res.Path,
		Total:       len(res.Controls),
		Annotations: res.Annotations,
	}
}
