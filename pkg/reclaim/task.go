package reclaim

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Chunk-size defaults used when splitting is allowed.
const (
	DefaultSplitMinChunks = 1  // 15 minutes
	DefaultSplitMaxChunks = 12 // 3 hours
)

const (
	defaultEventCategory = "WORK"
	focusEventSubType    = "FOCUS"
)

// createTaskRequest is the JSON request body for creating a task.
type createTaskRequest struct {
	Title              string  `json:"title"`
	Notes              *string `json:"notes,omitempty"`
	Priority           string  `json:"priority"`
	EventCategory      string  `json:"eventCategory"`
	EventSubType       string  `json:"eventSubType"`
	TimeChunksRequired int     `json:"timeChunksRequired"`
	MinChunkSize       int     `json:"minChunkSize"`
	MaxChunkSize       int     `json:"maxChunkSize"`
	MinWorkDuration    *int    `json:"minWorkDuration,omitempty"`
	MaxWorkDuration    *int    `json:"maxWorkDuration,omitempty"`
	Due                *string `json:"due,omitempty"`
	SnoozeUntil        *string `json:"snoozeUntil,omitempty"`
	Start              *string `json:"start,omitempty"`
	TimeSchemeID       *string `json:"timeSchemeId,omitempty"`
	AlwaysPrivate      *bool   `json:"alwaysPrivate,omitempty"`
	EventColor         *string `json:"eventColor,omitempty"`
}

// CreateTask creates a new task with the given title.
func (c *Client) CreateTask(ctx context.Context, title string, opts ...CreateTaskOption) (*Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, newInvalidRecordError("Title is required")
	}

	options := &createTaskOptions{}
	for _, opt := range opts {
		opt(options)
	}

	body, err := c.buildCreateRequest(ctx, title, options)
	if err != nil {
		return nil, err
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/tasks", body)
	if err != nil {
		return nil, err
	}

	return c.doTask(req, "create task", "")
}

// buildCreateRequest converts create options to the wire payload.
func (c *Client) buildCreateRequest(ctx context.Context, title string, o *createTaskOptions) (*createTaskRequest, error) {
	body := &createTaskRequest{
		Title:         title,
		Notes:         o.notes,
		Priority:      PriorityNormal.WireCode(),
		EventCategory: defaultEventCategory,
		EventSubType:  focusEventSubType,
		AlwaysPrivate: o.alwaysPrivate,
		EventColor:    o.eventColor,
	}

	if o.timeScheme != nil {
		id, err := c.resolveTimeSchemeID(ctx, *o.timeScheme)
		if err != nil {
			return nil, err
		}
		body.TimeSchemeID = &id
	}

	if o.priority != nil {
		body.Priority = ValidatePriority(*o.priority).WireCode()
	}
	if o.eventCategory != nil && *o.eventCategory != "" {
		body.EventCategory = *o.eventCategory
	}

	duration := DefaultDuration
	if o.duration != nil {
		duration = ValidateDuration(*o.duration)
	}
	body.TimeChunksRequired = HoursToChunks(duration)
	body.MinChunkSize, body.MaxChunkSize = chunkSizes(body.TimeChunksRequired, o)

	body.MinWorkDuration = chunksPtr(o.minWorkDuration)
	body.MaxWorkDuration = chunksPtr(o.maxWorkDuration)
	body.Due = apiTimePtr(o.due)
	body.SnoozeUntil = apiTimePtr(o.snoozeUntil)
	body.Start = apiTimePtr(o.start)

	return body, nil
}

// chunkSizes applies the splitting policy. Without splitting the task is a
// single block of durationChunks. With splitting the minimum comes from the
// split size, then the min chunk size, then DefaultSplitMinChunks, and the
// maximum from the max chunk size or DefaultSplitMaxChunks.
func chunkSizes(durationChunks int, o *createTaskOptions) (int, int) {
	if !o.allowSplitting {
		return durationChunks, durationChunks
	}

	minChunks := DefaultSplitMinChunks
	switch {
	case o.splitChunkSize != nil:
		minChunks = HoursToChunks(*o.splitChunkSize)
	case o.minChunkSize != nil:
		minChunks = HoursToChunks(*o.minChunkSize)
	}

	maxChunks := DefaultSplitMaxChunks
	if o.maxChunkSize != nil {
		maxChunks = HoursToChunks(*o.maxChunkSize)
	}

	return minChunks, maxChunks
}

// ListTasks returns all tasks in server order, filtered client-side.
// An unrecognized filter returns everything.
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, err
	}

	var decoded []*Task
	if err := c.do(req, "list tasks", &decoded); err != nil {
		return nil, err
	}

	// null entries decode to nil pointers
	tasks := make([]*Task, 0, len(decoded))
	for _, t := range decoded {
		if t != nil {
			tasks = append(tasks, t)
		}
	}

	return filterTasks(tasks, filter, time.Now()), nil
}

// filterTasks keeps the tasks matching filter, preserving order.
func filterTasks(tasks []*Task, filter TaskFilter, now time.Time) []*Task {
	var keep func(*Task) bool
	switch filter {
	case FilterActive:
		keep = (*Task).Active
	case FilterCompleted:
		keep = (*Task).Completed
	case FilterOverdue:
		keep = func(t *Task) bool { return t.OverdueAt(now) }
	default:
		return tasks
	}

	result := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// GetTask retrieves a task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	req, err := c.newRequest(ctx, http.MethodGet, taskPath(id), nil)
	if err != nil {
		return nil, err
	}

	task, err := c.doTask(req, "get task", id)
	if err != nil {
		return nil, taskError(id, err)
	}

	return task, nil
}

// UpdateTask patches only the fields passed as options. Fails with an
// invalid record error when no field is given.
func (c *Client) UpdateTask(ctx context.Context, id string, opts ...UpdateTaskOption) (*Task, error) {
	options := &updateTaskOptions{}
	for _, opt := range opts {
		opt(options)
	}

	payload, err := c.buildUpdatePayload(ctx, options)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, newInvalidRecordError("No update fields provided")
	}

	req, err := c.newJSONRequest(ctx, http.MethodPatch, taskPath(id), payload)
	if err != nil {
		return nil, err
	}

	task, err := c.doTask(req, "update task", id)
	if err != nil {
		return nil, taskError(id, err)
	}

	return task, nil
}

// buildUpdatePayload converts update options to a patch body. A nil map
// value is encoded as JSON null and clears the field.
func (c *Client) buildUpdatePayload(ctx context.Context, o *updateTaskOptions) (map[string]interface{}, error) {
	payload := map[string]interface{}{}

	if o.title != nil {
		payload["title"] = *o.title
	}
	if o.notes != nil {
		payload["notes"] = *o.notes
	}
	if o.priority != nil {
		payload["priority"] = ValidatePriority(*o.priority).WireCode()
	}
	if o.duration != nil {
		payload["timeChunksRequired"] = HoursToChunks(*o.duration)
	}
	if o.minChunkSize != nil {
		payload["minChunkSize"] = HoursToChunks(*o.minChunkSize)
	}
	if o.maxChunkSize != nil {
		payload["maxChunkSize"] = HoursToChunks(*o.maxChunkSize)
	}
	if o.minWorkDuration != nil {
		payload["minWorkDuration"] = HoursToChunks(*o.minWorkDuration)
	}
	if o.maxWorkDuration != nil {
		payload["maxWorkDuration"] = HoursToChunks(*o.maxWorkDuration)
	}

	putDateField(payload, "due", o.due)
	putDateField(payload, "snoozeUntil", o.snoozeUntil)
	putDateField(payload, "start", o.start)

	if o.timeScheme != nil {
		id, err := c.resolveTimeSchemeID(ctx, *o.timeScheme)
		if err != nil {
			return nil, err
		}
		payload["timeSchemeId"] = id
	}
	if o.eventCategory != nil {
		payload["eventCategory"] = *o.eventCategory
	}
	if o.eventColor != nil {
		payload["eventColor"] = *o.eventColor
	}
	// Only true is ever sent; see WithUpdateAlwaysPrivate.
	if o.alwaysPrivate {
		payload["alwaysPrivate"] = true
	}
	if o.status != nil {
		payload["status"] = string(*o.status)
	}

	return payload, nil
}

// putDateField writes a tri-state date into the patch body.
func putDateField(payload map[string]interface{}, key string, f Field[string]) {
	if !f.IsSpecified() {
		return
	}
	if v, ok := f.Value(); ok {
		payload[key] = FormatDateTimeForAPI(v)
		return
	}
	payload[key] = nil
}

// CompleteTask marks a task as done by archiving it.
func (c *Client) CompleteTask(ctx context.Context, id string) (*Task, error) {
	return c.UpdateTask(ctx, id, withStatus(StatusArchived))
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, taskPath(id), nil)
	if err != nil {
		return err
	}

	if err := c.do(req, "delete task", nil); err != nil {
		return taskError(id, err)
	}

	return nil
}

// doTask sends req and decodes the task in the response. A 2xx response
// without a body yields a default Task carrying id.
func (c *Client) doTask(req *http.Request, op, id string) (*Task, error) {
	var task Task
	decoded, err := c.send(req, op, &task)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return NewTask(map[string]interface{}{"id": id}), nil
	}
	return &task, nil
}

// taskPath constructs the URL path of a single task.
func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

func chunksPtr(hours *float64) *int {
	if hours == nil {
		return nil
	}
	n := HoursToChunks(*hours)
	return &n
}

func apiTimePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := FormatDateTimeForAPI(*s)
	return &v
}
