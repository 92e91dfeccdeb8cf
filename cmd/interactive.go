package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mj1618/uimap/internal/output"
	"github.com/mj1618/uimap/internal/platform"
	"github.com/mj1618/uimap/internal/session"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start the interactive menu",
	Long:  "Menu-driven mode: list applications, connect, annotate and print the control tree.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		return runMenu(commandContext(cmd), sess, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

// menu is the interactive front end over one session.
type menu struct {
	ctx  context.Context
	sess *session.Session
	in   *bufio.Scanner
	out  io.Writer
}

// runMenu reads choices from in until "0" or end of input. Failed
// operations are reported and the loop continues.
func runMenu(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) error {
	m := &menu{ctx: ctx, sess: sess, in: bufio.NewScanner(in), out: out}
	headingColor.Fprintln(out, "=== uimap: application control annotator ===")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, `
Choose an action:
1. List running applications
2. Connect to application
3. Annotate screenshot
4. Print control tree
5. Launch `+sess.Config().DefaultProgram+` (example)
0. Exit
`)
		choice, ok := m.prompt("\nEnter choice (0-5): ")
		if !ok || choice == "0" {
			return nil
		}

		switch choice {
		case "1":
			m.listApplications()
		case "2":
			m.connect()
		case "3":
			if m.requireConnection() {
				m.annotate()
			}
		case "4":
			if m.requireConnection() {
				m.tree()
			}
		case "5":
			fmt.Fprintf(out, "Launching %s...\n", sess.Config().DefaultProgram)
			if _, err := sess.Connect(ctx, platform.ConnectOptions{}); err != nil {
				m.fail("Launch failed", err)
				continue
			}
			successColor.Fprintln(out, "Launched successfully!")
			m.annotate()
		default:
			errorColor.Fprintln(out, "Invalid choice, please try again")
		}
	}
}

func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) fail(what string, err error) {
	errorColor.Fprintf(m.out, "%s: %v\n", what, err)
}

func (m *menu) requireConnection() bool {
	if m.sess.Connected() {
		return true
	}
	errorColor.Fprintln(m.out, "Connect to an application first")
	return false
}

func (m *menu) listApplications() {
	fmt.Fprintln(m.out, "Listing running applications...")
	windows, err := m.sess.ListApplications()
	if err != nil {
		m.fail("Failed to list applications", err)
		return
	}
	fmt.Fprintln(m.out)
	output.WriteWindows(m.out, windows)
}

func (m *menu) connect() {
	fmt.Fprint(m.out, `
Connect by:
1. Window title
2. Process ID
3. Program path
`)
	method, ok := m.prompt("Choose method (1-3): ")
	if !ok {
		return
	}

	var opts platform.ConnectOptions
	switch method {
	case "1":
		title, _ := m.prompt("Window title (partial match): ")
		if title == "" {
			return
		}
		opts.Title = title
	case "2":
		raw, _ := m.prompt("Process ID: ")
		pid, err := platform.ParsePID(raw)
		if err != nil {
			errorColor.Fprintln(m.out, "Process ID must be a number")
			return
		}
		opts.PID = pid
	case "3":
		path, _ := m.prompt("Program path (e.g. calc.exe): ")
		if path == "" {
			return
		}
		opts.Path = path
	default:
		errorColor.Fprintln(m.out, "Invalid choice")
		return
	}

	win, err := m.sess.Connect(m.ctx, opts)
	if err != nil {
		if errors.Is(err, platform.ErrWindowNotFound) {
			m.fail("Application window not found", err)
		} else {
			m.fail("Failed to connect", err)
		}
		return
	}
	successColor.Fprintf(m.out, "Connected to: %s\n", win.Title)
}

func (m *menu) annotate() {
	res, err := m.sess.Annotate(m.ctx, "")
	if err != nil {
		m.fail("Screenshot failed", err)
		return
	}
	fmt.Fprintf(m.out, "Found %d controls\n", len(res.Controls))
	output.WriteAnnotations(m.out, res.Annotations)
	successColor.Fprintf(m.out, "\nScreenshot saved to: %s\n", res.Path)
	fmt.Fprintln(m.out)
	output.WriteTree(m.out, res.Controls)
}

func (m *menu) tree() {
	controls, err := m.sess.Controls()
	if err != nil {
		m.fail("Failed to read controls", err)
		return
	}
	fmt.Fprintln(m.out)
	output.WriteTree(m.out, controls)
}
