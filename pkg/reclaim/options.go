package reclaim

import (
	"log"
	"net/http"
	"time"
)

// DefaultBaseURL is the Reclaim REST API root.
const DefaultBaseURL = "https://api.app.reclaim.ai/api"

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// clientConfig holds the configuration for a Client.
type clientConfig struct {
	token     string
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
	logger    *log.Logger
	userAgent string
	aliases   []SchemeAlias
}

// defaultConfig returns the default client configuration.
func defaultConfig() *clientConfig {
	return &clientConfig{
		baseURL:   DefaultBaseURL,
		timeout:   30 * time.Second,
		userAgent: "reclaim-go",
		aliases:   append([]SchemeAlias(nil), DefaultSchemeAliases...),
	}
}

// WithToken sets the API token sent as a bearer credential.
func WithToken(token string) ClientOption {
	return func(c *clientConfig) {
		c.token = token
	}
}

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithHTTPClient uses the transport of the given client underneath the
// bearer-token transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		if hc != nil {
			c.transport = hc.Transport
		}
	}
}

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithSchemeAlias appends an alias group to the time-scheme alias table.
// Inputs matching any alias resolve to the first scheme whose title
// contains keyword.
func WithSchemeAlias(keyword string, aliases ...string) ClientOption {
	return func(c *clientConfig) {
		c.aliases = append(c.aliases, SchemeAlias{Keyword: keyword, Aliases: aliases})
	}
}

// CreateTaskOption configures a CreateTask call.
type CreateTaskOption func(*createTaskOptions)

// createTaskOptions holds options for creating a task. Hour values are
// converted to chunks when the request is built.
type createTaskOptions struct {
	notes           *string
	priority        *Priority
	duration        *float64
	allowSplitting  bool
	splitChunkSize  *float64
	minChunkSize    *float64
	maxChunkSize    *float64
	minWorkDuration *float64
	maxWorkDuration *float64
	due             *string
	snoozeUntil     *string
	start           *string
	timeScheme      *string
	eventCategory   *string
	eventColor      *string
	alwaysPrivate   *bool
}

// WithNotes sets the task notes.
func WithNotes(notes string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.notes = &notes
	}
}

// WithPriority sets the task priority.
func WithPriority(priority Priority) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.priority = &priority
	}
}

// WithDuration sets the total time required, in hours.
func WithDuration(hours float64) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.duration = &hours
	}
}

// WithAllowSplitting lets the scheduler break the task into several blocks.
func WithAllowSplitting(allow bool) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.allowSplitting = allow
	}
}

// WithSplitChunkSize sets the smallest block, in hours, when splitting.
// It takes precedence over WithMinChunkSize.
func WithSplitChunkSize(hours float64) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.splitChunkSize = &hours
	}
}

// WithMinChunkSize sets the smallest block, in hours, when splitting.
func WithMinChunkSize(hours float64) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.minChunkSize = &hours
	}
}

// WithMaxChunkSize sets the largest block, in hours, when splitting.
func WithMaxChunkSize(hours float64) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.maxChunkSize = &hours
	}
}

// WithMinWorkDuration sets the minimum work duration, in hours.
func WithMinWorkDuration(hours float64) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.minWorkDuration = &hours
	}
}

// WithMaxWorkDuration sets the maximum work duration, in hours.
func WithMaxWorkDuration(hours float64) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.maxWorkDuration = &hours
	}
}

// WithDue sets the due date/time.
func WithDue(due string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.due = &due
	}
}

// WithSnoozeUntil sets the not-before date/time.
func WithSnoozeUntil(snooze string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.snoozeUntil = &snooze
	}
}

// WithStart sets the start date/time.
func WithStart(start string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.start = &start
	}
}

// WithTimeScheme sets the time scheme by name, alias or ID.
func WithTimeScheme(nameOrID string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.timeScheme = &nameOrID
	}
}

// WithEventCategory overrides the default WORK category.
func WithEventCategory(category string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.eventCategory = &category
	}
}

// WithEventColor sets the calendar event color.
func WithEventColor(color string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.eventColor = &color
	}
}

// WithAlwaysPrivate marks scheduled events as private.
func WithAlwaysPrivate(private bool) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.alwaysPrivate = &private
	}
}

// UpdateTaskOption configures an UpdateTask call.
type UpdateTaskOption func(*updateTaskOptions)

// updateTaskOptions holds options for updating a task. Date fields are
// tri-state; the rest are sent only when provided.
type updateTaskOptions struct {
	title           *string
	notes           *string
	priority        *Priority
	duration        *float64
	minChunkSize    *float64
	maxChunkSize    *float64
	minWorkDuration *float64
	maxWorkDuration *float64
	due             Field[string]
	snoozeUntil     Field[string]
	start           Field[string]
	timeScheme      *string
	eventCategory   *string
	eventColor      *string
	alwaysPrivate   bool
	status          *TaskStatus
}

// WithTitle sets the task title for update.
func WithTitle(title string) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.title = &title
	}
}

// WithUpdateNotes sets the task notes for update.
func WithUpdateNotes(notes string) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.notes = &notes
	}
}

// WithUpdatePriority sets the task priority for update.
func WithUpdatePriority(priority Priority) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.priority = &priority
	}
}

// WithUpdateDuration sets the duration, in hours, for update.
func WithUpdateDuration(hours float64) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.duration = &hours
	}
}

// WithUpdateMinChunkSize sets the minimum chunk size, in hours, for update.
func WithUpdateMinChunkSize(hours float64) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.minChunkSize = &hours
	}
}

// WithUpdateMaxChunkSize sets the maximum chunk size, in hours, for update.
func WithUpdateMaxChunkSize(hours float64) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.maxChunkSize = &hours
	}
}

// WithUpdateMinWorkDuration sets the minimum work duration, in hours, for update.
func WithUpdateMinWorkDuration(hours float64) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.minWorkDuration = &hours
	}
}

// WithUpdateMaxWorkDuration sets the maximum work duration, in hours, for update.
func WithUpdateMaxWorkDuration(hours float64) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.maxWorkDuration = &hours
	}
}

// WithUpdateDue sets a new due date.
func WithUpdateDue(due string) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.due = Set(due)
	}
}

// ClearDue removes the due date.
func ClearDue() UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.due = Clear[string]()
	}
}

// WithUpdateSnoozeUntil sets a new snooze date.
func WithUpdateSnoozeUntil(snooze string) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.snoozeUntil = Set(snooze)
	}
}

// ClearSnoozeUntil removes the snooze date.
func ClearSnoozeUntil() UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.snoozeUntil = Clear[string]()
	}
}

// WithUpdateStart sets a new start date.
func WithUpdateStart(start string) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.start = Set(start)
	}
}

// ClearStart removes the start date.
func ClearStart() UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.start = Clear[string]()
	}
}

// WithUpdateTimeScheme sets the time scheme by name, alias or ID.
func WithUpdateTimeScheme(nameOrID string) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.timeScheme = &nameOrID
	}
}

// WithUpdateEventCategory sets the event category for update.
func WithUpdateEventCategory(category string) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.eventCategory = &category
	}
}

// WithUpdateEventColor sets the event color for update.
func WithUpdateEventColor(color string) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.eventColor = &color
	}
}

// WithUpdateAlwaysPrivate marks the task private. Passing false leaves the
// field untouched: privacy cannot be switched off through an update.
func WithUpdateAlwaysPrivate(private bool) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.alwaysPrivate = private
	}
}

// withStatus patches the task status.
func withStatus(status TaskStatus) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.status = &status
	}
}

// TaskFilter selects a client-side subset in ListTasks.
type TaskFilter string

const (
	FilterAll       TaskFilter = ""
	FilterActive    TaskFilter = "active"
	FilterCompleted TaskFilter = "completed"
	FilterOverdue   TaskFilter = "overdue"
)
