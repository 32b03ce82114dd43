package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/tasklogger/internal/app"
	"github.com/nhle/tasklogger/internal/model"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	dbPath     string
}

// NewRootCmd builds the command tree. Without a subcommand it launches the
// terminal UI.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "tasklogger",
		Short: "Log tasks and the time spent on them",
		Long: `tasklogger keeps a local list of tasks with the minutes spent on each,
filters them by day, week or category, and can time work live.

Run without arguments to open the interactive task list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", model.DefaultConfigPath(), "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to the SQLite database (overrides config)")

	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newDeleteCmd(opts))
	rootCmd.AddCommand(newStatsCmd(opts))
	rootCmd.AddCommand(newTrackCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd(version))

	return rootCmd
}

// Execute runs the root command.
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func runLaunch(opts *options) error {
	rt, err := openRuntime(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.log.Info("starting terminal UI", zap.String("db", rt.cfg.Database.Path))

	root := app.New(rt.ctrl, rt.log, rt.cfg.InitialFilter())
	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
