package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Bring a window to the foreground",
	Long:  "Restore and focus the target window by title, PID, or executable.",
	RunE:  runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	addTargetFlags(focusCmd)
}

func runFocus(cmd *cobra.Command, args []string) error {
	sess, err := connectedSession(cmd)
	if err != nil {
		return err
	}
	if err := sess.Focus(); err != nil {
		return err
	}
	win, _ := sess.Window()
	fmt.Fprintf(cmd.OutOrStdout(), "Focused: %s (pid %d)\n", win.Title, win.PID)
	return nil
}
