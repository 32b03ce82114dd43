package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/tasklogger/internal/model"
	"github.com/nhle/tasklogger/internal/theme"
	"github.com/nhle/tasklogger/internal/tracker"
	"github.com/nhle/tasklogger/internal/ui/taskform"
)

func newAddCmd(opts *options) *cobra.Command {
	var fields model.TaskFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Long:  "Add a task. Without --name an interactive form is shown.",
		Example: `  tasklogger add --name "Write report" --minutes 45 --category Work
  tasklogger add`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") {
				if err := taskform.NewForm(&fields).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
					return err
				}
			}

			rt, err := openRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			task, err := rt.ctrl.Add(cmd.Context(), fields)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task #%d %q (%d min, %s)\n",
				task.ID, task.Name, task.TimeSpent, task.CategoryLabel())
			return nil
		},
	}

	cmd.Flags().StringVarP(&fields.Name, "name", "n", "", "Task name")
	cmd.Flags().StringVarP(&fields.Description, "description", "d", "", "Optional description")
	cmd.Flags().StringVarP(&fields.TimeSpent, "minutes", "m", "", "Time spent in whole minutes (required)")
	cmd.Flags().StringVarP(&fields.Category, "category", "c", "", "Optional category")

	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	var filterName, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Example: `  tasklogger list
  tasklogger list --filter week
  tasklogger list --category work`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFilter(filterName, category)
			if err != nil {
				return err
			}

			rt, err := openRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			tasks, err := rt.ctrl.Refresh(cmd.Context(), f)
			if err != nil {
				return err
			}
			writeTasks(cmd.OutOrStdout(), f, tasks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filterName, "filter", "f", "all", "One of all, today, week, category")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to show (implies --filter category, not valid with today or week)")

	return cmd
}

// parseFilter combines --filter and --category into a model.Filter.
func parseFilter(name, category string) (model.Filter, error) {
	kind, err := model.ParseFilterKind(name)
	if err != nil {
		return model.Filter{}, err
	}
	if category != "" {
		if kind == model.FilterToday || kind == model.FilterThisWeek {
			return model.Filter{}, &model.ValidationError{Field: "filter", Reason: "cannot combine --category with --filter " + name}
		}
		return model.CategoryFilter(category), nil
	}
	if kind == model.FilterCategory {
		return model.Filter{}, &model.ValidationError{Field: "category", Reason: "is required with --filter category"}
	}
	return model.Filter{Kind: kind}, nil
}

func writeTasks(w io.Writer, f model.Filter, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintf(w, "No tasks (%s).\n", f.Label())
		return
	}

	rows := make([][]string, len(tasks))
	total := 0
	for i, t := range tasks {
		rows[i] = []string{
			strconv.FormatInt(t.ID, 10),
			t.Name,
			strconv.Itoa(t.TimeSpent),
			t.Category,
			t.CreatedAt.Local().Format("2006-01-02 15:04"),
		}
		total += t.TimeSpent
	}

	fmt.Fprintln(w, newTable("ID", "Task Name", "Time Spent (mins)", "Category", "Created").Rows(rows...).Render())
	fmt.Fprintf(w, "%d tasks · %d minutes · %s\n", len(tasks), total, f.Label())
}

func newDeleteCmd(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task after confirmation",
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

			if _, err := rt.ctrl.Refresh(cmd.Context(), model.AllTasks); err != nil {
				return err
			}
			pending, err := rt.ctrl.PrepareDelete(id)
			if errors.Is(err, tracker.ErrNoSelection) {
				return fmt.Errorf("task %d not found", id)
			}
			if err != nil {
				return err
			}

			if !yes {
				confirmed := false
				err := huh.NewConfirm().
					Title(fmt.Sprintf("Delete %q?", pending.Task().Name)).
					Affirmative("Delete").
					Negative("Cancel").
					Value(&confirmed).
					Run()
				if err != nil && !errors.Is(err, huh.ErrUserAborted) {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := rt.ctrl.ConfirmDelete(cmd.Context(), pending); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d %q\n", id, pending.Task().Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// newTable returns a lipgloss table in the application theme.
func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
