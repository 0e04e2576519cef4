package reclaim

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// TaskStatus represents the scheduling state of a task on the server.
type TaskStatus string

const (
	StatusNew        TaskStatus = "NEW"
	StatusScheduled  TaskStatus = "SCHEDULED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusComplete   TaskStatus = "COMPLETE"
	StatusArchived   TaskStatus = "ARCHIVED"
	StatusCancelled  TaskStatus = "CANCELLED"
)

// Priority is the lowercase priority symbol. The wire form is the
// uppercase code returned by WireCode.
type Priority string

const (
	PriorityCritical Priority = "p1"
	PriorityHigh     Priority = "p2"
	PriorityNormal   Priority = "p3" // Default priority
	PriorityLow      Priority = "p4"
)

// ValidPriorities contains the four known priorities, highest first.
var ValidPriorities = []Priority{PriorityCritical, PriorityHigh, PriorityNormal, PriorityLow}

// IsValid checks if the priority is one of the four known symbols.
func (p Priority) IsValid() bool {
	for _, v := range ValidPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// WireCode returns the API representation (P1..P4). Unknown values map to P3.
func (p Priority) WireCode() string {
	if !p.IsValid() {
		return strings.ToUpper(string(PriorityNormal))
	}
	return strings.ToUpper(string(p))
}

// Label returns a human-readable name for the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityLow:
		return "low"
	default:
		return "normal"
	}
}

// DueDateDisplayLayout is the layout used by Task.DueDateFormatted.
const DueDateDisplayLayout = "2006-01-02 15:04"

// Task is a Reclaim task in hour-based units. Durations and chunk sizes
// are hours; the API stores them as 15-minute chunks. Empty strings and nil
// pointers mean the field is absent.
//
// A Task is a plain value: it holds no references back to the Client.
type Task struct {
	ID    string
	Title string
	Notes string

	Priority Priority
	Duration float64

	MinChunkSize    *float64
	MaxChunkSize    *float64
	MinWorkDuration *float64
	MaxWorkDuration *float64

	DueDate     string
	SnoozeUntil string
	Start       string

	TimeSchemeID  string
	EventCategory string
	EventColor    string
	AlwaysPrivate bool

	Status    TaskStatus
	CreatedAt string
	UpdatedAt string
	Deleted   bool
}

// fieldMapping binds one accepted input key to the setter that stores it.
// Wire keys carry chunk counts; domain keys carry hours.
type fieldMapping struct {
	key string
	set func(t *Task, v interface{})
}

// taskFieldTable lists every key NewTask understands, in application order.
// Keys not listed here are ignored.
var taskFieldTable = []fieldMapping{
	{"id", func(t *Task, v interface{}) { t.ID = stringValue(v) }},
	{"title", func(t *Task, v interface{}) { t.Title = stringValue(v) }},
	{"notes", func(t *Task, v interface{}) { t.Notes = stringValue(v) }},
	{"priority", func(t *Task, v interface{}) { t.Priority = ValidatePriority(v) }},

	{"timeChunksRequired", func(t *Task, v interface{}) { t.Duration = chunkHours(v) }},
	{"duration", func(t *Task, v interface{}) { t.Duration, _ = numberValue(v) }},

	{"minChunkSize", func(t *Task, v interface{}) { t.MinChunkSize = chunkHoursPtr(v) }},
	{"min_chunk_size", func(t *Task, v interface{}) { t.MinChunkSize = hoursPtr(v) }},
	{"maxChunkSize", func(t *Task, v interface{}) { t.MaxChunkSize = chunkHoursPtr(v) }},
	{"max_chunk_size", func(t *Task, v interface{}) { t.MaxChunkSize = hoursPtr(v) }},
	{"minWorkDuration", func(t *Task, v interface{}) { t.MinWorkDuration = chunkHoursPtr(v) }},
	{"min_work_duration", func(t *Task, v interface{}) { t.MinWorkDuration = hoursPtr(v) }},
	{"maxWorkDuration", func(t *Task, v interface{}) { t.MaxWorkDuration = chunkHoursPtr(v) }},
	{"max_work_duration", func(t *Task, v interface{}) { t.MaxWorkDuration = hoursPtr(v) }},

	{"due", func(t *Task, v interface{}) { t.DueDate = stringValue(v) }},
	{"due_date", func(t *Task, v interface{}) { t.DueDate = stringValue(v) }},
	{"snoozeUntil", func(t *Task, v interface{}) { t.SnoozeUntil = stringValue(v) }},
	{"snooze_until", func(t *Task, v interface{}) { t.SnoozeUntil = stringValue(v) }},
	{"start", func(t *Task, v interface{}) { t.Start = stringValue(v) }},

	{"timeSchemeId", func(t *Task, v interface{}) { t.TimeSchemeID = stringValue(v) }},
	{"time_scheme_id", func(t *Task, v interface{}) { t.TimeSchemeID = stringValue(v) }},
	{"eventCategory", func(t *Task, v interface{}) { t.EventCategory = stringValue(v) }},
	{"event_category", func(t *Task, v interface{}) { t.EventCategory = stringValue(v) }},
	{"eventColor", func(t *Task, v interface{}) { t.EventColor = stringValue(v) }},
	{"event_color", func(t *Task, v interface{}) { t.EventColor = stringValue(v) }},
	{"alwaysPrivate", func(t *Task, v interface{}) { t.AlwaysPrivate = boolValue(v) }},
	{"always_private", func(t *Task, v interface{}) { t.AlwaysPrivate = boolValue(v) }},

	{"status", func(t *Task, v interface{}) { t.Status = TaskStatus(stringValue(v)) }},
	{"created", func(t *Task, v interface{}) { t.CreatedAt = stringValue(v) }},
	{"created_at", func(t *Task, v interface{}) { t.CreatedAt = stringValue(v) }},
	{"updated", func(t *Task, v interface{}) { t.UpdatedAt = stringValue(v) }},
	{"updated_at", func(t *Task, v interface{}) { t.UpdatedAt = stringValue(v) }},
	{"deleted", func(t *Task, v interface{}) { t.Deleted = boolValue(v) }},
}

// NewTask builds a Task from wire-format or domain-format attributes.
// Chunk counts are converted to hours. Defaults are filled in for priority,
// duration and status when they are still unset after assignment.
func NewTask(attrs map[string]interface{}) *Task {
	t := &Task{}
	for _, f := range taskFieldTable {
		v, ok := attrs[f.key]
		if !ok || v == nil {
			continue
		}
		f.set(t, v)
	}
	t.applyDefaults()
	return t
}

func (t *Task) applyDefaults() {
	if t.Priority == "" {
		t.Priority = PriorityNormal
	}
	t.Duration = ValidateDuration(t.Duration)
	if t.Status == "" {
		t.Status = StatusNew
	}
}

// ToMap returns the task's fields keyed by domain name. Absent fields are
// omitted; false and zero values are kept. Priority is rendered as its
// wire code.
func (t *Task) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"priority":       t.Priority.WireCode(),
		"duration":       t.Duration,
		"always_private": t.AlwaysPrivate,
		"deleted":        t.Deleted,
	}

	putString(m, "id", t.ID)
	putString(m, "title", t.Title)
	putString(m, "notes", t.Notes)
	putFloat(m, "min_chunk_size", t.MinChunkSize)
	putFloat(m, "max_chunk_size", t.MaxChunkSize)
	putFloat(m, "min_work_duration", t.MinWorkDuration)
	putFloat(m, "max_work_duration", t.MaxWorkDuration)
	putString(m, "due_date", t.DueDate)
	putString(m, "snooze_until", t.SnoozeUntil)
	putString(m, "start", t.Start)
	putString(m, "time_scheme_id", t.TimeSchemeID)
	putString(m, "event_category", t.EventCategory)
	putString(m, "event_color", t.EventColor)
	putString(m, "status", string(t.Status))
	putString(m, "created_at", t.CreatedAt)
	putString(m, "updated_at", t.UpdatedAt)

	return m
}

// MarshalJSON encodes the task as its ToMap form.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToMap())
}

// UnmarshalJSON decodes either a server response or a ToMap encoding.
func (t *Task) UnmarshalJSON(data []byte) error {
	var attrs map[string]interface{}
	if err := json.Unmarshal(data, &attrs); err != nil {
		return err
	}
	*t = *NewTask(attrs)
	return nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.MinChunkSize = copyFloat(t.MinChunkSize)
	c.MaxChunkSize = copyFloat(t.MaxChunkSize)
	c.MinWorkDuration = copyFloat(t.MinWorkDuration)
	c.MaxWorkDuration = copyFloat(t.MaxWorkDuration)
	return &c
}

// Active reports whether the task is neither deleted, archived nor cancelled.
func (t *Task) Active() bool {
	if t.Deleted {
		return false
	}
	return t.Status != StatusArchived && t.Status != StatusCancelled
}

// Completed reports whether the task is complete or archived.
func (t *Task) Completed() bool {
	return t.Status == StatusComplete || t.Status == StatusArchived
}

// Overdue reports whether an active task's due date has passed.
func (t *Task) Overdue() bool {
	return t.OverdueAt(time.Now())
}

// OverdueAt is Overdue evaluated at the given instant. An unparseable due
// date is never overdue.
func (t *Task) OverdueAt(now time.Time) bool {
	if t.DueDate == "" || !t.Active() {
		return false
	}
	due, _, err := parseTimeString(t.DueDate)
	if err != nil {
		return false
	}
	return due.Before(now)
}

// DueDateFormatted renders the due date in local time as YYYY-MM-DD HH:MM,
// or returns "" when it is absent or unparseable.
func (t *Task) DueDateFormatted() string {
	if t.DueDate == "" {
		return ""
	}
	due, _, err := parseTimeString(t.DueDate)
	if err != nil {
		return ""
	}
	return due.In(time.Local).Format(DueDateDisplayLayout)
}

// PrioritySymbol returns the normalized priority symbol.
func (t *Task) PrioritySymbol() Priority {
	return ValidatePriority(t.Priority)
}

// TimeScheme is a server-side policy describing when a task may be scheduled.
type TimeScheme struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	PolicyType string `json:"policyType"`
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func numberValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func boolValue(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, _ := strconv.ParseBool(b)
		return parsed
	default:
		return false
	}
}

func chunkHours(v interface{}) float64 {
	n, _ := numberValue(v)
	return ChunksToHours(int(n))
}

func chunkHoursPtr(v interface{}) *float64 {
	n, ok := numberValue(v)
	if !ok {
		return nil
	}
	h := ChunksToHours(int(n))
	return &h
}

func hoursPtr(v interface{}) *float64 {
	n, ok := numberValue(v)
	if !ok {
		return nil
	}
	return &n
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func putString(m map[string]interface{}, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func putFloat(m map[string]interface{}, key string, value *float64) {
	if value != nil {
		m[key] = *value
	}
}
