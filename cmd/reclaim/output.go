package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/reclaimctl/reclaim/pkg/reclaim"
	"gopkg.in/yaml.v3"
)

// outputFormat selects how results are rendered.
type outputFormat int

const (
	formatTable outputFormat = iota
	formatJSON
	formatYAML
)

// encode writes v as JSON or YAML. It returns false for table output so the
// caller renders text instead.
func encode(w io.Writer, v interface{}, format outputFormat) bool {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(v)
		return true
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		enc.Encode(v)
		enc.Close()
		return true
	default:
		return false
	}
}

// printTask prints a single task to the writer
func printTask(w io.Writer, task *reclaim.Task, format outputFormat) {
	if encode(w, task.ToMap(), format) {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", task.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", task.Title)
	fmt.Fprintf(tw, "Status:\t%s\n", task.Status)
	fmt.Fprintf(tw, "Priority:\t%s\n", priorityString(task.Priority))
	fmt.Fprintf(tw, "Duration:\t%s\n", hoursString(task.Duration))
	if task.MinChunkSize != nil || task.MaxChunkSize != nil {
		fmt.Fprintf(tw, "Chunks:\t%s - %s\n", hoursPtrString(task.MinChunkSize), hoursPtrString(task.MaxChunkSize))
	}
	if task.MinWorkDuration != nil || task.MaxWorkDuration != nil {
		fmt.Fprintf(tw, "Work Duration:\t%s - %s\n", hoursPtrString(task.MinWorkDuration), hoursPtrString(task.MaxWorkDuration))
	}
	if due := task.DueDateFormatted(); due != "" {
		if task.Overdue() {
			due += " (overdue)"
		}
		fmt.Fprintf(tw, "Due:\t%s\n", due)
	}
	if task.SnoozeUntil != "" {
		fmt.Fprintf(tw, "Snooze Until:\t%s\n", task.SnoozeUntil)
	}
	if task.Start != "" {
		fmt.Fprintf(tw, "Start:\t%s\n", task.Start)
	}
	if task.TimeSchemeID != "" {
		fmt.Fprintf(tw, "Time Scheme:\t%s\n", task.TimeSchemeID)
	}
	if task.EventCategory != "" {
		fmt.Fprintf(tw, "Category:\t%s\n", task.EventCategory)
	}
	if task.AlwaysPrivate {
		fmt.Fprintf(tw, "Private:\tyes\n")
	}
	if task.Notes != "" {
		fmt.Fprintf(tw, "Notes:\t%s\n", task.Notes)
	}
	if task.CreatedAt != "" {
		fmt.Fprintf(tw, "Created:\t%s\n", task.CreatedAt)
	}
	if task.UpdatedAt != "" {
		fmt.Fprintf(tw, "Updated:\t%s\n", task.UpdatedAt)
	}
	tw.Flush()
}

// printTaskList prints a list of tasks
func printTaskList(w io.Writer, tasks []*reclaim.Task, format outputFormat) {
	maps := make([]map[string]interface{}, 0, len(tasks))
	for _, task := range tasks {
		maps = append(maps, task.ToMap())
	}
	if encode(w, maps, format) {
		return
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tTITLE\tSTATUS\tPRIORITY\tDURATION\tDUE\n")
	fmt.Fprintf(tw, "--\t-----\t------\t--------\t--------\t---\n")
	for _, task := range tasks {
		due := task.DueDateFormatted()
		if due != "" && task.Overdue() {
			due += " !"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			task.ID, truncate(task.Title, 40), task.Status, task.PrioritySymbol(), hoursString(task.Duration), due)
	}
	tw.Flush()
}

// printTimeSchemes prints the account's time schemes
func printTimeSchemes(w io.Writer, schemes []reclaim.TimeScheme, format outputFormat) {
	maps := make([]map[string]interface{}, 0, len(schemes))
	for _, s := range schemes {
		maps = append(maps, map[string]interface{}{
			"id":         s.ID,
			"title":      s.Title,
			"policyType": s.PolicyType,
		})
	}
	if encode(w, maps, format) {
		return
	}

	io.WriteString(w, reclaim.FormatTimeSchemeList(schemes))
}

// printError prints an error message
func printError(w io.Writer, err error, format outputFormat) {
	body := map[string]interface{}{
		"message": err.Error(),
	}
	var apiErr *reclaim.Error
	if errors.As(err, &apiErr) {
		body["code"] = string(apiErr.Code)
	}
	if encode(w, map[string]interface{}{"error": body}, format) {
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string, format outputFormat) {
	if encode(w, map[string]interface{}{"message": message}, format) {
		return
	}

	fmt.Fprintln(w, message)
}

// priorityString renders a priority as "p1 (critical)".
func priorityString(p reclaim.Priority) string {
	p = reclaim.ValidatePriority(p)
	return fmt.Sprintf("%s (%s)", p, p.Label())
}

// hoursString renders hours as e.g. "1.5h".
func hoursString(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

func hoursPtrString(h *float64) string {
	if h == nil {
		return "-"
	}
	return hoursString(*h)
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
