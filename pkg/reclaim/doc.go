// Package reclaim provides a Go SDK for the Reclaim.ai task API.
//
// The SDK works in hours while the API counts 15-minute chunks; conversion
// happens at the request and response boundary.
//
// # Getting Started
//
//	client, err := reclaim.NewClient(
//	    reclaim.WithToken(os.Getenv("RECLAIM_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Creating Tasks
//
// A two-hour task scheduled as a single block:
//
//	task, err := client.CreateTask(ctx, "Write report",
//	    reclaim.WithDuration(2),
//	    reclaim.WithDue("2025-03-01T17:00:00Z"),
//	    reclaim.WithTimeScheme("work"),
//	)
//
// The same task split into blocks of at least 30 minutes:
//
//	task, err := client.CreateTask(ctx, "Write report",
//	    reclaim.WithDuration(2),
//	    reclaim.WithAllowSplitting(true),
//	    reclaim.WithSplitChunkSize(0.5),
//	)
//
// # Listing Tasks
//
// The API has no server-side filters, so filtering happens in the client:
//
//	active, err := client.ListTasks(ctx, reclaim.FilterActive)
//	overdue, err := client.ListTasks(ctx, reclaim.FilterOverdue)
//
// # Updating Tasks
//
// Only the options passed are sent. Dates can also be cleared:
//
//	task, err := client.UpdateTask(ctx, id,
//	    reclaim.WithUpdatePriority(reclaim.PriorityHigh),
//	    reclaim.ClearDue(),
//	)
//
// Complete or delete a task:
//
//	task, err := client.CompleteTask(ctx, id)
//	err = client.DeleteTask(ctx, id)
//
// # Time Schemes
//
// Time schemes can be named by ID, by title (exact or partial, case
// insensitive) or by alias ("work hours", "off hours", ...):
//
//	id, ok := client.ResolveTimeScheme(ctx, "business hours")
//
// # Error Handling
//
//	task, err := client.GetTask(ctx, id)
//	if err != nil {
//	    if reclaim.IsNotFound(err) {
//	        // Task doesn't exist
//	    } else if reclaim.IsAuthenticationError(err) {
//	        // Bad or missing token
//	    } else if reclaim.IsInvalidRecord(err) {
//	        // Rejected input
//	    }
//	}
package reclaim
