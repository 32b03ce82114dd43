package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nhle/tasklogger/internal/tracker"
)

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show time spent per task, per category and per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			stats, err := rt.ctrl.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			writeStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func writeStats(w io.Writer, s tracker.Statistics) {
	if len(s.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks recorded yet.")
	} else {
		rows := make([][]string, len(s.Tasks))
		for i, t := range s.Tasks {
			rows[i] = []string{t.Name, strconv.Itoa(t.TimeSpent), t.Category}
		}
		fmt.Fprintln(w, newTable("Task Name", "Time Spent (mins)", "Category").Rows(rows...).Render())
		fmt.Fprintf(w, "Total: %d minutes across %d tasks\n\n", s.TotalMinutes, len(s.Tasks))
	}

	if len(s.Categories) > 0 {
		rows := make([][]string, len(s.Categories))
		for i, c := range s.Categories {
			rows[i] = []string{c.Category, strconv.Itoa(c.Tasks), strconv.Itoa(c.Minutes)}
		}
		fmt.Fprintln(w, newTable("Category", "Tasks", "Minutes").Rows(rows...).Render())
	}

	if len(s.Days) > 0 {
		rows := make([][]string, len(s.Days))
		for i, d := range s.Days {
			rows[i] = []string{d.Date, d.Total().String()}
		}
		fmt.Fprintln(w, newTable("Day", "Tracked").Rows(rows...).Render())
	}
}
