package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/uimap/internal/model"
	"github.com/mj1618/uimap/internal/output"
	"github.com/mj1618/uimap/internal/platform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open application windows",
	Long:  "List top-level windows with their title, class name and process ID. Text output shows titled windows only.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Int("pid", 0, "Filter windows by PID")
	listCmd.Flags().String("app", "", "Filter windows by process name")
	listCmd.Flags().Bool("all", false, "Include untitled windows (yaml/json output)")
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}

	pid, _ := cmd.Flags().GetInt("pid")
	appName, _ := cmd.Flags().GetString("app")
	all, _ := cmd.Flags().GetBool("all")

	windows, err := provider.Reader.ListWindows(platform.ListOptions{
		PID:        pid,
		App:        appName,
		TitledOnly: !all,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output.OutputFormat == output.FormatText {
		return output.WriteWindows(w, windows)
	}
	if windows == nil {
		windows = []model.Window{}
	}
	return output.Fprint(w, output.OutputFormat, output.WindowsResult{Windows: windows})
}
