package main

import (
	"fmt"
	"sort"

	"github.com/reclaimctl/reclaim/pkg/reclaim"
	"github.com/spf13/cobra"
)

func newCreateCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new task",
		Long: `Create a new task with the given title.

Priority can be given as a symbol or a name:
  p1 / critical - Highest priority
  p2 / high     - High priority
  p3 / normal   - Normal priority (default)
  p4 / low      - Low priority

Durations and chunk sizes are in hours. Without --split the task is
scheduled as one block. The time scheme may be an ID, a title or an alias
such as "work hours" or "off hours".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := getClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var opts []reclaim.CreateTaskOption

			if flags.Changed("notes") {
				v, _ := flags.GetString("notes")
				opts = append(opts, reclaim.WithNotes(v))
			}
			if flags.Changed("priority") {
				v, _ := flags.GetString("priority")
				p, err := parsePriority(v)
				if err != nil {
					return err
				}
				opts = append(opts, reclaim.WithPriority(p))
			}

			switch {
			case flags.Changed("duration"):
				v, _ := flags.GetFloat64("duration")
				opts = append(opts, reclaim.WithDuration(v))
			case cfg.Duration != 0:
				opts = append(opts, reclaim.WithDuration(cfg.Duration))
			}

			split, _ := flags.GetBool("split")
			opts = append(opts, reclaim.WithAllowSplitting(split))
			opts = append(opts, floatOptions(cmd, map[string]func(float64) reclaim.CreateTaskOption{
				"split-chunk": reclaim.WithSplitChunkSize,
				"min-chunk":   reclaim.WithMinChunkSize,
				"max-chunk":   reclaim.WithMaxChunkSize,
				"min-work":    reclaim.WithMinWorkDuration,
				"max-work":    reclaim.WithMaxWorkDuration,
			})...)
			opts = append(opts, stringOptions(cmd, map[string]func(string) reclaim.CreateTaskOption{
				"due":    reclaim.WithDue,
				"snooze": reclaim.WithSnoozeUntil,
				"start":  reclaim.WithStart,
				"color":  reclaim.WithEventColor,
			})...)

			scheme, _ := flags.GetString("time-scheme")
			if !flags.Changed("time-scheme") {
				scheme = cfg.TimeScheme
			}
			if scheme != "" {
				opts = append(opts, reclaim.WithTimeScheme(scheme))
			}

			category, _ := flags.GetString("category")
			if !flags.Changed("category") {
				category = cfg.EventCategory
			}
			if category != "" {
				opts = append(opts, reclaim.WithEventCategory(category))
			}

			if private, _ := flags.GetBool("private"); private {
				opts = append(opts, reclaim.WithAlwaysPrivate(true))
			}

			task, err := client.CreateTask(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}

			printTask(cmd.OutOrStdout(), task, g.format())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("notes", "n", "", "Task notes")
	f.StringP("priority", "p", "", "Task priority (p1-p4 or critical/high/normal/low)")
	f.Float64P("duration", "d", reclaim.DefaultDuration, "Time required in hours")
	f.Bool("split", false, "Allow the task to be split into several blocks")
	f.Float64("split-chunk", 0, "Minimum block size in hours when splitting")
	f.Float64("min-chunk", 0, "Minimum chunk size in hours")
	f.Float64("max-chunk", 0, "Maximum chunk size in hours")
	f.Float64("min-work", 0, "Minimum work duration in hours")
	f.Float64("max-work", 0, "Maximum work duration in hours")
	f.String("due", "", "Due date (YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339)")
	f.String("snooze", "", "Do not schedule before this time")
	f.String("start", "", "Start time")
	f.StringP("time-scheme", "s", "", "Time scheme ID, title or alias")
	f.String("category", "", "Event category (WORK or PERSONAL)")
	f.String("color", "", "Event color")
	f.Bool("private", false, "Always mark scheduled events private")

	return cmd
}

func newListCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  `List tasks, optionally filtered to active, completed or overdue ones.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _ := cmd.Flags().GetString("filter")
			filter, err := parseFilter(v)
			if err != nil {
				return err
			}

			client, _, err := getClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			tasks, err := client.ListTasks(cmd.Context(), filter)
			if err != nil {
				return err
			}

			printTaskList(cmd.OutOrStdout(), tasks, g.format())
			return nil
		},
	}

	cmd.Flags().StringP("filter", "f", "", "Filter tasks (active, completed, overdue)")
	return cmd
}

func newShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Long:  `Display detailed information about a task.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := getClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			task, err := client.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printTask(cmd.OutOrStdout(), task, g.format())
			return nil
		},
	}
}

func newEditCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit a task. Only the flags given are changed.

Dates can be removed with --clear-due, --clear-snooze and --clear-start.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := editOptions(cmd)
			if err != nil {
				return err
			}

			client, _, err := getClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			task, err := client.UpdateTask(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}

			printTask(cmd.OutOrStdout(), task, g.format())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("title", "t", "", "New title")
	f.StringP("notes", "n", "", "New notes")
	f.StringP("priority", "p", "", "New priority")
	f.Float64P("duration", "d", 0, "New time required in hours")
	f.Float64("min-chunk", 0, "New minimum chunk size in hours")
	f.Float64("max-chunk", 0, "New maximum chunk size in hours")
	f.Float64("min-work", 0, "New minimum work duration in hours")
	f.Float64("max-work", 0, "New maximum work duration in hours")
	f.String("due", "", "New due date")
	f.String("snooze", "", "New snooze-until time")
	f.String("start", "", "New start time")
	f.Bool("clear-due", false, "Remove the due date")
	f.Bool("clear-snooze", false, "Remove the snooze-until time")
	f.Bool("clear-start", false, "Remove the start time")
	f.StringP("time-scheme", "s", "", "New time scheme ID, title or alias")
	f.String("category", "", "New event category")
	f.String("color", "", "New event color")
	f.Bool("private", false, "Always mark scheduled events private")

	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	cmd.MarkFlagsMutuallyExclusive("snooze", "clear-snooze")
	cmd.MarkFlagsMutuallyExclusive("start", "clear-start")

	return cmd
}

// editOptions converts the changed edit flags into update options.
func editOptions(cmd *cobra.Command) ([]reclaim.UpdateTaskOption, error) {
	flags := cmd.Flags()
	var opts []reclaim.UpdateTaskOption

	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		p, err := parsePriority(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, reclaim.WithUpdatePriority(p))
	}

	opts = append(opts, stringOptions(cmd, map[string]func(string) reclaim.UpdateTaskOption{
		"title":       reclaim.WithTitle,
		"notes":       reclaim.WithUpdateNotes,
		"due":         reclaim.WithUpdateDue,
		"snooze":      reclaim.WithUpdateSnoozeUntil,
		"start":       reclaim.WithUpdateStart,
		"time-scheme": reclaim.WithUpdateTimeScheme,
		"category":    reclaim.WithUpdateEventCategory,
		"color":       reclaim.WithUpdateEventColor,
	})...)
	opts = append(opts, floatOptions(cmd, map[string]func(float64) reclaim.UpdateTaskOption{
		"duration":  reclaim.WithUpdateDuration,
		"min-chunk": reclaim.WithUpdateMinChunkSize,
		"max-chunk": reclaim.WithUpdateMaxChunkSize,
		"min-work":  reclaim.WithUpdateMinWorkDuration,
		"max-work":  reclaim.WithUpdateMaxWorkDuration,
	})...)

	clears := []struct {
		flag string
		opt  func() reclaim.UpdateTaskOption
	}{
		{"clear-due", reclaim.ClearDue},
		{"clear-snooze", reclaim.ClearSnoozeUntil},
		{"clear-start", reclaim.ClearStart},
	}
	for _, c := range clears {
		if v, _ := flags.GetBool(c.flag); v {
			opts = append(opts, c.opt())
		}
	}

	if flags.Changed("private") {
		v, _ := flags.GetBool("private")
		opts = append(opts, reclaim.WithUpdateAlwaysPrivate(v))
	}

	return opts, nil
}

func newCompleteCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task as done",
		Long:  `Mark a task as done. The task is archived on the server.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := getClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			task, err := client.CompleteTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printTask(cmd.OutOrStdout(), task, g.format())
			return nil
		},
	}
}

func newDeleteCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  `Delete a task by ID.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := getClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if err := client.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Task %s deleted", args[0]), g.format())
			return nil
		},
	}
}

// stringOptions returns one option per changed string flag, in sorted
// flag order.
func stringOptions[O any](cmd *cobra.Command, table map[string]func(string) O) []O {
	var opts []O
	for _, name := range sortedKeys(table) {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			opts = append(opts, table[name](v))
		}
	}
	return opts
}

// floatOptions returns one option per changed float flag, in sorted flag
// order.
func floatOptions[O any](cmd *cobra.Command, table map[string]func(float64) O) []O {
	var opts []O
	for _, name := range sortedKeys(table) {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetFloat64(name)
			opts = append(opts, table[name](v))
		}
	}
	return opts
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
