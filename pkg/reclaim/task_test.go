package reclaim

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestChunkSizes(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		opts     []CreateTaskOption
		wantMin  int
		wantMax  int
	}{
		{"no splitting uses duration", 8, nil, 8, 8},
		{"no splitting ignores sizes", 8, []CreateTaskOption{WithMinChunkSize(0.5), WithMaxChunkSize(1)}, 8, 8},
		{"splitting defaults", 8, []CreateTaskOption{WithAllowSplitting(true)}, DefaultSplitMinChunks, DefaultSplitMaxChunks},
		{"split size sets minimum", 8, []CreateTaskOption{WithAllowSplitting(true), WithSplitChunkSize(0.5)}, 2, 12},
		{"split size beats min chunk size", 8, []CreateTaskOption{WithAllowSplitting(true), WithSplitChunkSize(0.5), WithMinChunkSize(1)}, 2, 12},
		{"min chunk size without split size", 8, []CreateTaskOption{WithAllowSplitting(true), WithMinChunkSize(1)}, 4, 12},
		{"max chunk size", 8, []CreateTaskOption{WithAllowSplitting(true), WithMaxChunkSize(2)}, 1, 8},
		{"splitting disabled explicitly", 6, []CreateTaskOption{WithAllowSplitting(false), WithSplitChunkSize(0.5)}, 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &createTaskOptions{}
			for _, opt := range tt.opts {
				opt(o)
			}
			gotMin, gotMax := chunkSizes(tt.duration, o)
			if gotMin != tt.wantMin || gotMax != tt.wantMax {
				t.Errorf("chunkSizes() = (%d, %d), want (%d, %d)", gotMin, gotMax, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestCreateTask_Defaults(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	task, err := client.CreateTask(context.Background(), "Write report")
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	req, _ := server.LastRequest()
	if req.Method != http.MethodPost || req.Path != "/api/tasks" {
		t.Fatalf("request = %s %s", req.Method, req.Path)
	}
	body := req.JSON()

	want := map[string]interface{}{
		"title":              "Write report",
		"priority":           "P3",
		"eventCategory":      "WORK",
		"eventSubType":       "FOCUS",
		"timeChunksRequired": float64(4),
		"minChunkSize":       float64(4),
		"maxChunkSize":       float64(4),
	}
	for k, v := range want {
		if body[k] != v {
			t.Errorf("body[%q] = %v, want %v", k, body[k], v)
		}
	}
	for _, k := range []string{"notes", "due", "snoozeUntil", "start", "timeSchemeId", "minWorkDuration", "alwaysPrivate"} {
		if _, ok := body[k]; ok {
			t.Errorf("body should omit %q", k)
		}
	}

	if task.ID == "" {
		t.Error("expected server-assigned ID")
	}
	if task.Duration != 1.0 || task.Priority != PriorityNormal || task.Status != StatusNew {
		t.Errorf("task = %+v", task)
	}
}

func TestCreateTask_SplittingPayload(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	task, err := client.CreateTask(context.Background(), "T",
		WithDuration(2.0),
		WithAllowSplitting(true),
		WithSplitChunkSize(0.5),
	)
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	req, _ := server.LastRequest()
	body := req.JSON()
	if body["timeChunksRequired"] != float64(8) || body["minChunkSize"] != float64(2) || body["maxChunkSize"] != float64(12) {
		t.Errorf("chunks = %v/%v/%v, want 8/2/12", body["timeChunksRequired"], body["minChunkSize"], body["maxChunkSize"])
	}

	if task.Duration != 2.0 {
		t.Errorf("Duration = %v, want 2.0", task.Duration)
	}
	if task.MinChunkSize == nil || *task.MinChunkSize != 0.5 {
		t.Errorf("MinChunkSize = %v, want 0.5", task.MinChunkSize)
	}
	if task.MaxChunkSize == nil || *task.MaxChunkSize != 3.0 {
		t.Errorf("MaxChunkSize = %v, want 3.0", task.MaxChunkSize)
	}
}

func TestCreateTask_AllOptions(t *testing.T) {
	server := newTestServer(t)
	server.AddTimeScheme("a", "Work Hours", "WORK")
	client := newTestClient(t, server)

	_, err := client.CreateTask(context.Background(), "Full",
		WithNotes("details"),
		WithPriority(PriorityCritical),
		WithDuration(1.5),
		WithMinWorkDuration(0.5),
		WithMaxWorkDuration(1),
		WithDue("2024-01-15T10:00:00+02:00"),
		WithSnoozeUntil("2024-01-10T08:00:00Z"),
		WithStart("2024-01-11T09:00:00Z"),
		WithTimeScheme("work"),
		WithEventCategory("PERSONAL"),
		WithEventColor("BLUE"),
		WithAlwaysPrivate(true),
	)
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	req, _ := server.LastRequest()
	body := req.JSON()
	want := map[string]interface{}{
		"notes":              "details",
		"priority":           "P1",
		"timeChunksRequired": float64(6),
		"minChunkSize":       float64(6),
		"maxChunkSize":       float64(6),
		"minWorkDuration":    float64(2),
		"maxWorkDuration":    float64(4),
		"due":                "2024-01-15T08:00:00Z",
		"snoozeUntil":        "2024-01-10T08:00:00Z",
		"start":              "2024-01-11T09:00:00Z",
		"timeSchemeId":       "a",
		"eventCategory":      "PERSONAL",
		"eventColor":         "BLUE",
		"alwaysPrivate":      true,
	}
	for k, v := range want {
		if body[k] != v {
			t.Errorf("body[%q] = %v, want %v", k, body[k], v)
		}
	}
}

func TestCreateTask_Validation(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	_, err := client.CreateTask(context.Background(), "  ")
	if !IsInvalidRecord(err) || err.Error() != "Title is required" {
		t.Errorf("blank title error = %v", err)
	}

	_, err = client.CreateTask(context.Background(), "T", WithTimeScheme("nonexistent"))
	if !IsInvalidRecord(err) {
		t.Errorf("unknown scheme error = %v", err)
	}

	if n := server.CountRequests(http.MethodPost, "/api/tasks"); n != 0 {
		t.Errorf("rejected creates sent %d requests", n)
	}
}

func TestCreateTask_ServerValidation(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)
	server.FailNext(http.StatusUnprocessableEntity, `{"message":"Title too long"}`)

	_, err := client.CreateTask(context.Background(), "T")
	if !IsInvalidRecord(err) {
		t.Fatalf("expected invalid record, got %v", err)
	}
	if err.Error() != "Title too long" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestListTasks_Filters(t *testing.T) {
	server := newTestServer(t)
	server.AddTask(map[string]interface{}{"id": "new", "title": "new", "status": "NEW"})
	server.AddTask(map[string]interface{}{"id": "archived", "title": "archived", "status": "ARCHIVED", "due": "2000-01-01T00:00:00Z"})
	server.AddTask(map[string]interface{}{"id": "late", "title": "late", "status": "SCHEDULED", "due": "2000-01-01T00:00:00Z"})
	server.AddTask(map[string]interface{}{"id": "complete", "title": "complete", "status": "COMPLETE"})
	server.AddTask(map[string]interface{}{"id": "cancelled", "title": "cancelled", "status": "CANCELLED"})
	server.AddTask(map[string]interface{}{"id": "deleted", "title": "deleted", "status": "NEW", "deleted": true})
	client := newTestClient(t, server)

	tests := []struct {
		filter TaskFilter
		want   []string
	}{
		{FilterAll, []string{"new", "archived", "late", "complete", "cancelled", "deleted"}},
		{TaskFilter("bogus"), []string{"new", "archived", "late", "complete", "cancelled", "deleted"}},
		{FilterActive, []string{"new", "late", "complete"}},
		{FilterCompleted, []string{"archived", "complete"}},
		{FilterOverdue, []string{"late"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			tasks, err := client.ListTasks(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("ListTasks() error = %v", err)
			}
			if len(tasks) != len(tt.want) {
				t.Fatalf("got %d tasks, want %d", len(tasks), len(tt.want))
			}
			for i, id := range tt.want {
				if tasks[i].ID != id {
					t.Errorf("tasks[%d].ID = %q, want %q", i, tasks[i].ID, id)
				}
			}
		})
	}
}

func TestFilterTasks_OverdueUsesNow(t *testing.T) {
	tasks := []*Task{
		{ID: "a", Status: StatusNew, DueDate: "2024-06-01T00:00:00Z"},
		{ID: "b", Status: StatusNew, DueDate: "2024-08-01T00:00:00Z"},
	}
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	got := filterTasks(tasks, FilterOverdue, now)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("filterTasks() = %v", got)
	}
}

func TestGetTask(t *testing.T) {
	server := newTestServer(t)
	id := server.AddTask(map[string]interface{}{"title": "Existing", "timeChunksRequired": float64(6), "priority": "P2"})
	client := newTestClient(t, server)

	task, err := client.GetTask(context.Background(), id)
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if task.ID != id || task.Title != "Existing" {
		t.Errorf("task = %+v", task)
	}
	if task.Duration != 1.5 || task.Priority != PriorityHigh {
		t.Errorf("Duration/Priority = %v/%q", task.Duration, task.Priority)
	}
}

func TestTaskOperations_NotFound(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)
	ctx := context.Background()

	ops := map[string]func() error{
		"get": func() error {
			_, err := client.GetTask(ctx, "missing")
			return err
		},
		"update": func() error {
			_, err := client.UpdateTask(ctx, "missing", WithTitle("x"))
			return err
		},
		"complete": func() error {
			_, err := client.CompleteTask(ctx, "missing")
			return err
		},
		"delete": func() error {
			return client.DeleteTask(ctx, "missing")
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			if !IsNotFound(err) {
				t.Fatalf("expected not found, got %v", err)
			}
			if err.Error() != "Task missing not found" {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestUpdateTask_Payload(t *testing.T) {
	schemeID := "0f8fad5b-d9cb-469f-a165-70867728950e"

	tests := []struct {
		name   string
		opts   []UpdateTaskOption
		want   map[string]interface{}
		absent []string
	}{
		{
			name:   "title only",
			opts:   []UpdateTaskOption{WithTitle("Renamed")},
			want:   map[string]interface{}{"title": "Renamed"},
			absent: []string{"due", "snoozeUntil", "start", "priority", "alwaysPrivate"},
		},
		{
			name: "durations in chunks",
			opts: []UpdateTaskOption{
				WithUpdateDuration(1.5),
				WithUpdateMinChunkSize(0.25),
				WithUpdateMaxChunkSize(1),
				WithUpdateMinWorkDuration(0.5),
				WithUpdateMaxWorkDuration(2),
			},
			want: map[string]interface{}{
				"timeChunksRequired": float64(6),
				"minChunkSize":       float64(1),
				"maxChunkSize":       float64(4),
				"minWorkDuration":    float64(2),
				"maxWorkDuration":    float64(8),
			},
		},
		{
			name: "set dates",
			opts: []UpdateTaskOption{
				WithUpdateDue("2024-01-15T10:00:00+02:00"),
				WithUpdateSnoozeUntil("2024-01-10T00:00:00Z"),
				WithUpdateStart("2024-01-11T00:00:00Z"),
			},
			want: map[string]interface{}{
				"due":         "2024-01-15T08:00:00Z",
				"snoozeUntil": "2024-01-10T00:00:00Z",
				"start":       "2024-01-11T00:00:00Z",
			},
		},
		{
			name: "clear dates",
			opts: []UpdateTaskOption{ClearDue(), ClearSnoozeUntil(), ClearStart()},
			want: map[string]interface{}{"due": nil, "snoozeUntil": nil, "start": nil},
		},
		{
			name: "misc fields",
			opts: []UpdateTaskOption{
				WithUpdateNotes("n"),
				WithUpdatePriority(PriorityCritical),
				WithUpdateTimeScheme(schemeID),
				WithUpdateEventCategory("PERSONAL"),
				WithUpdateEventColor("RED"),
				WithUpdateAlwaysPrivate(true),
			},
			want: map[string]interface{}{
				"notes":         "n",
				"priority":      "P1",
				"timeSchemeId":  schemeID,
				"eventCategory": "PERSONAL",
				"eventColor":    "RED",
				"alwaysPrivate": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t)
			id := server.AddTask(map[string]interface{}{"title": "T", "due": "2024-01-01T00:00:00Z"})
			client := newTestClient(t, server)

			if _, err := client.UpdateTask(context.Background(), id, tt.opts...); err != nil {
				t.Fatalf("UpdateTask() error = %v", err)
			}

			req, _ := server.LastRequest()
			if req.Method != http.MethodPatch || req.Path != "/api/tasks/"+id {
				t.Fatalf("request = %s %s", req.Method, req.Path)
			}
			body := req.JSON()
			if len(body) != len(tt.want) {
				t.Errorf("body = %v, want exactly %v", body, tt.want)
			}
			for k, v := range tt.want {
				got, ok := body[k]
				if !ok {
					t.Errorf("body missing %q", k)
					continue
				}
				if got != v {
					t.Errorf("body[%q] = %v, want %v", k, got, v)
				}
			}
			for _, k := range tt.absent {
				if _, ok := body[k]; ok {
					t.Errorf("body should omit %q", k)
				}
			}
		})
	}
}

func TestUpdateTask_ClearDueRemovesValue(t *testing.T) {
	server := newTestServer(t)
	id := server.AddTask(map[string]interface{}{"title": "T", "due": "2024-01-01T00:00:00Z"})
	client := newTestClient(t, server)

	task, err := client.UpdateTask(context.Background(), id, ClearDue())
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if task.DueDate != "" {
		t.Errorf("DueDate = %q, want cleared", task.DueDate)
	}

	stored, _ := server.Task(id)
	if _, ok := stored["due"]; ok {
		t.Error("server still has a due date")
	}
}

func TestUpdateTask_NoFields(t *testing.T) {
	server := newTestServer(t)
	id := server.AddTask(map[string]interface{}{"title": "T"})
	client := newTestClient(t, server)

	tests := []struct {
		name string
		opts []UpdateTaskOption
	}{
		{"no options", nil},
		{"always private false is not sent", []UpdateTaskOption{WithUpdateAlwaysPrivate(false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.UpdateTask(context.Background(), id, tt.opts...)
			if !IsInvalidRecord(err) {
				t.Fatalf("expected invalid record, got %v", err)
			}
			if err.Error() != "No update fields provided" {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}

	if n := server.CountRequests(http.MethodPatch, "/api/tasks/"+id); n != 0 {
		t.Errorf("empty updates sent %d requests", n)
	}
}

func TestUpdateTask_UnknownTimeScheme(t *testing.T) {
	server := newTestServer(t)
	id := server.AddTask(map[string]interface{}{"title": "T"})
	client := newTestClient(t, server)

	_, err := client.UpdateTask(context.Background(), id, WithUpdateTimeScheme("nonexistent"))
	if !IsInvalidRecord(err) {
		t.Fatalf("expected invalid record, got %v", err)
	}
}

func TestCompleteTask(t *testing.T) {
	server := newTestServer(t)
	id := server.AddTask(map[string]interface{}{"title": "T", "status": "SCHEDULED"})
	client := newTestClient(t, server)

	task, err := client.CompleteTask(context.Background(), id)
	if err != nil {
		t.Fatalf("CompleteTask() error = %v", err)
	}

	req, _ := server.LastRequest()
	if body := req.JSON(); body["status"] != "ARCHIVED" || len(body) != 1 {
		t.Errorf("body = %v, want only status ARCHIVED", body)
	}
	if task.Status != StatusArchived || !task.Completed() || task.Active() {
		t.Errorf("task status = %q", task.Status)
	}
}

func TestDeleteTask(t *testing.T) {
	server := newTestServer(t)
	id := server.AddTask(map[string]interface{}{"title": "T"})
	client := newTestClient(t, server)

	if err := client.DeleteTask(context.Background(), id); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if _, ok := server.Task(id); ok {
		t.Error("task still exists after delete")
	}
}

func TestTaskPath_Escapes(t *testing.T) {
	if got := taskPath("a/b"); got != "/tasks/a%2Fb" {
		t.Errorf("taskPath() = %q", got)
	}
}

func TestTaskOperations_EmptyBody(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)
	ctx := context.Background()

	tests := []struct {
		name   string
		wantID string
		call   func() (*Task, error)
	}{
		{"create", "", func() (*Task, error) { return client.CreateTask(ctx, "T") }},
		{"get", "abc", func() (*Task, error) { return client.GetTask(ctx, "abc") }},
		{"update", "abc", func() (*Task, error) { return client.UpdateTask(ctx, "abc", WithTitle("T")) }},
		{"complete", "abc", func() (*Task, error) { return client.CompleteTask(ctx, "abc") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server.FailNext(http.StatusNoContent, "")

			task, err := tt.call()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if task.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", task.ID, tt.wantID)
			}
			if task.Duration != 1.0 {
				t.Errorf("Duration = %v, want 1", task.Duration)
			}
			if task.Status != StatusNew {
				t.Errorf("Status = %q, want %q", task.Status, StatusNew)
			}
			if task.Priority != PriorityNormal {
				t.Errorf("Priority = %q, want %q", task.Priority, PriorityNormal)
			}
		})
	}
}

func TestListTasks_SkipsNullEntries(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	for _, filter := range []TaskFilter{FilterAll, FilterActive, FilterCompleted, FilterOverdue} {
		t.Run(string(filter), func(t *testing.T) {
			server.FailNext(http.StatusOK, `[{"id":"a","status":"NEW"}, null]`)

			tasks, err := client.ListTasks(context.Background(), filter)
			if err != nil {
				t.Fatalf("ListTasks() error = %v", err)
			}
			for _, task := range tasks {
				if task == nil {
					t.Fatal("ListTasks() returned a nil task")
				}
			}
			wantLen := 0
			if filter == FilterAll || filter == FilterActive {
				wantLen = 1
			}
			if len(tasks) != wantLen {
				t.Fatalf("len(tasks) = %d, want %d", len(tasks), wantLen)
			}
			if wantLen == 1 && tasks[0].ID != "a" {
				t.Errorf("ID = %q, want %q", tasks[0].ID, "a")
			}
		})
	}
}
