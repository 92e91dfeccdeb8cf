package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mj1618/uimap/internal/config"
	"github.com/mj1618/uimap/internal/logging"
	"github.com/mj1618/uimap/internal/output"
	"github.com/mj1618/uimap/internal/platform"
	"github.com/mj1618/uimap/internal/version"
)

// appConfig is loaded by the root command before any subcommand runs.
var appConfig = config.Default()

// newProvider is replaced in tests.
var newProvider = platform.NewProvider

var rootCmd = &cobra.Command{
	Use:   "uimap [title]",
	Short: "Annotate desktop application controls on a screenshot",
	Long: `Connect to a running desktop application through UI Automation, walk its
control tree and save a screenshot with a numbered, color-coded box over every
visible control. The same numbers are used in the control listing and tree dump.

With a window title argument, connects to the first window whose title contains
it, annotates it and prints the control tree. Without arguments, starts the
interactive menu.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", config.DefaultFile, "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().String("format", "text", "Output format: text, yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
			cfg.LogLevel = level
		}
		if err := logging.Setup(cfg.LogLevel); err != nil {
			return err
		}
		appConfig = cfg

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return runMenu(commandContext(cmd), sess, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Connecting to: %s\n", args[0])
	if _, err := sess.Connect(commandContext(cmd), platform.ConnectOptions{Title: args[0]}); err != nil {
		return err
	}
	res, err := sess.Annotate(commandContext(cmd), "")
	if err != nil {
		return err
	}
	return printAnnotateResult(cmd.OutOrStdout(), res, true)
}
