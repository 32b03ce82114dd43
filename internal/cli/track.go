package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newTrackCmd(opts *options) *cobra.Command {
	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Time work on a task",
		Long: `Start and stop a live timer on a task. The timer keeps running between
invocations and in the terminal UI until it is stopped. Stopped time is
added to the per-day totals shown by "tasklogger stats".`,
	}

	startCmd := &cobra.Command{
		Use:   "start <id>",
		Short: "Start timing a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			rt, err := openRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			sess, err := rt.ctrl.StartTracking(cmd.Context(), id)
			if err != nil {
				return err
			}
			active := rt.ctrl.Active()
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking %q since %s\n",
				active.TaskName, sess.StartTime.Local().Format("15:04:05"))
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			sess, err := rt.ctrl.StopTracking(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped task #%d after %s\n",
				sess.TaskID, time.Duration(sess.Duration)*time.Second)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			active, err := rt.ctrl.Resume(cmd.Context())
			if err != nil {
				return err
			}
			if active == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not tracking.")
				return nil
			}
			elapsed := active.Session.Elapsed(time.Now()).Truncate(time.Second)
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking %q (task #%d) for %s\n",
				active.TaskName, active.Session.TaskID, elapsed)
			return nil
		},
	}

	trackCmd.AddCommand(startCmd, stopCmd, statusCmd)
	return trackCmd
}
