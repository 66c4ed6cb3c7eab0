// Package lib provides a Go SDK for the tcm recurring task tracker.
//
// This package allows applications to manage users, tasks, and weekly
// completion status without shelling out to the tcm CLI binary. It is useful
// for scripting, automation, and building tools (bots, dashboards) on top of
// the tracker.
//
// # Quick Start
//
// Create a client, seed some data, and compute the due list for the current
// week:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	user, _ := client.CreateUser(ctx, lib.CreateUserOpts{
//	    Username: "anna",
//	    Email:    "anna@example.org",
//	    Role:     lib.RoleTester,
//	})
//	task, _ := client.CreateTask(ctx, lib.CreateTaskOpts{
//	    Title:         "Verify backups",
//	    IntervalWeeks: 4,
//	    Assignees:     []string{user.Email},
//	})
//
//	items, _ := client.DueList(ctx, nil)
//	for _, item := range items {
//	    fmt.Printf("%s: %s (%s)\n", item.User.Username, item.Task.Title, item.Status)
//	}
//
// # Periods
//
// All recurrence is tracked per ISO week. [CurrentPeriod] returns the week
// for "now", and [Period.AddWeeks] moves it forward or backward:
//
//	next := lib.CurrentPeriod().AddWeeks(1)
//	items, _ := client.DueList(ctx, &lib.DueListOpts{Period: &next})
//
// # Toggling Status
//
// Toggle flips a task between open and done for a user and period. The acting
// user may only change their own status, and observers cannot write at all:
//
//	status, err := client.Toggle(ctx, lib.ToggleOpts{
//	    ActorEmail: "anna@example.org",
//	    TaskID:     task.ID,
//	})
//
// # Seeding
//
// Import users and tasks in bulk from a parsed catalog:
//
//	result, _ := client.ImportCatalog(ctx, lib.Catalog{
//	    Users: []lib.UserSpec{{Username: "anna", Email: "anna@example.org"}},
//	    Tasks: []lib.TaskSpec{{Title: "Verify backups", IntervalWeeks: 4}},
//	})
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrAlreadyExists]: Resource with the same identity already exists.
//   - [ErrNotValid]: Invalid input (bad period, non-positive interval, ...).
//   - [ErrNotAllowed]: The acting user may not perform the write.
//
// # Testing
//
// Use a temporary database path to write tests without touching the user's
// real data:
//
//	client, _ := lib.New(ctx, lib.Config{
//	    DBPath: filepath.Join(t.TempDir(), "test.db"),
//	})
//	defer client.Close()
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. The
// underlying storage uses SQLite with WAL mode.
package lib
