package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var launchCmd = &cobra.Command{
	Use:   "launch [program]",
	Short: "Start a program, then annotate its window",
	Long: `Start a program (default: the configured default_program, calc.exe), wait for
its window to appear and annotate it like the annotate command.`,
	Example: `  uimap launch
  uimap launch notepad.exe --output notepad.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
	launchCmd.Flags().String("output", "", "Output file path (default: <screenshot_dir>/<title>_<timestamp>.png)")
	launchCmd.Flags().Bool("no-annotate", false, "Only start the program and report its window")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	program := appConfig.DefaultProgram
	if len(args) == 1 {
		program = args[0]
	}
	sess, err := newSession()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Launching %s...\n", program)
	win, err := sess.Launch(commandContext(cmd), program)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Connected to: %s (pid %d)\n", win.Title, win.PID)

	if noAnnotate, _ := cmd.Flags().GetBool("no-annotate"); noAnnotate {
		return nil
	}
	outPath, _ := cmd.Flags().GetString("output")
	res, err := sess.Annotate(commandContext(cmd), outPath)
	if err != nil {
		return err
	}
	return printAnnotateResult(w, res, true)
}
