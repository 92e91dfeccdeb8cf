package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/uimap/internal/model"
	"github.com/mj1618/uimap/internal/output"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the control tree of a window",
	Long: `Print every control of the target window in traversal order with its index,
depth indentation, control type, class name and text. Indices match the labels
drawn by the annotate command. --type and --text narrow the listing without
renumbering.`,
	Example: `  uimap tree --title Calculator
  uimap tree --pid 4242 --type Button,Edit
  uimap tree --path notepad.exe --format yaml`,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	addTargetFlags(treeCmd)
	treeCmd.Flags().Int("depth", 0, "Max depth to traverse (0 = unlimited)")
	treeCmd.Flags().String("type", "", "Comma-separated control types to keep (e.g. \"Button,Edit\")")
	treeCmd.Flags().String("text", "", "Keep controls whose text contains this substring (case-insensitive)")
}

func runTree(cmd *cobra.Command, args []string) error {
	if err := applyDepthFlag(cmd); err != nil {
		return err
	}
	sess, err := connectedSession(cmd)
	if err != nil {
		return err
	}

	controls, err := sess.Controls()
	if err != nil {
		return err
	}

	typesFlag, _ := cmd.Flags().GetString("type")
	text, _ := cmd.Flags().GetString("text")
	var types []string
	if typesFlag != "" {
		types = strings.Split(typesFlag, ",")
	}
	controls = model.FilterControls(controls, types, text)

	w := cmd.OutOrStdout()
	if output.OutputFormat == output.FormatText {
		return output.WriteTree(w, controls)
	}

	win, _ := sess.Window()
	return output.Fprint(w, output.OutputFormat, output.TreeResult{
		App:      win.App,
		PID:      win.PID,
		Window:   win.Title,
		TS:       time.Now().Unix(),
		MaxDepth: model.MaxDepth(controls),
		Controls: controls,
	})
}
