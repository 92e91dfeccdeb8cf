package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Save a plain screenshot of a window",
	Long:  "Bring the target window to the front and save its pixels without annotations.",
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	addTargetFlags(screenshotCmd)
	screenshotCmd.Flags().String("output", "", "Output file path (default: <screenshot_dir>/<title>_<timestamp>.png)")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	sess, err := connectedSession(cmd)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("output")
	path, err := sess.Capture(commandContext(cmd), outPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Screenshot saved to: %s\n", path)
	return nil
}
