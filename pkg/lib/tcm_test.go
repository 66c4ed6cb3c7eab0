package lib_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HubOfCJ/testcase-manager/pkg/lib"
)

func newTestClient(t *testing.T) *lib.Client {
	t.Helper()

	client, err := lib.New(context.Background(), lib.Config{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestClientUsers(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	user, err := client.CreateUser(ctx, lib.CreateUserOpts{
		Username: "anna",
		Email:    "anna@example.org",
		Role:     lib.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, lib.RoleAdmin, user.Role)

	// Role defaults to tester when empty.
	ben, err := client.CreateUser(ctx, lib.CreateUserOpts{
		Username: "ben",
		Email:    "ben@example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, lib.RoleTester, ben.Role)

	// Duplicate email is rejected.
	_, err = client.CreateUser(ctx, lib.CreateUserOpts{
		Username: "anna2",
		Email:    "anna@example.org",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lib.ErrAlreadyExists))

	users, err := client.ListUsers(ctx, nil)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "anna", users[0].Username)
	assert.Equal(t, "ben", users[1].Username)

	admin := lib.RoleAdmin
	admins, err := client.ListUsers(ctx, &lib.ListUsersOpts{Role: &admin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "anna", admins[0].Username)
}

func TestClientTasks(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	anna, err := client.CreateUser(ctx, lib.CreateUserOpts{
		Username: "anna",
		Email:    "anna@example.org",
	})
	require.NoError(t, err)

	task, err := client.CreateTask(ctx, lib.CreateTaskOpts{
		Title:         "Verify backups",
		IntervalWeeks: 4,
		Area:          "ops",
		Assignees:     []string{anna.Email},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)

	// Non-positive interval is rejected.
	_, err = client.CreateTask(ctx, lib.CreateTaskOpts{
		Title:         "Broken",
		IntervalWeeks: 0,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lib.ErrNotValid))

	// Unknown assignee is rejected.
	_, err = client.CreateTask(ctx, lib.CreateTaskOpts{
		Title:         "Check certificates",
		IntervalWeeks: 2,
		Assignees:     []string{"ghost@example.org"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lib.ErrNotFound))

	tasks, err := client.ListTasks(ctx, &lib.ListTasksOpts{Area: "ops"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Verify backups", tasks[0].Title)
}

func TestClientDueListAndToggle(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	anna, err := client.CreateUser(ctx, lib.CreateUserOpts{
		Username: "anna",
		Email:    "anna@example.org",
	})
	require.NoError(t, err)

	task, err := client.CreateTask(ctx, lib.CreateTaskOpts{
		Title:         "Verify backups",
		IntervalWeeks: 4,
		Assignees:     []string{anna.Email},
	})
	require.NoError(t, err)

	// Never-completed assigned task is due and open.
	items, err := client.DueList(ctx, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, task.ID, items[0].Task.ID)
	assert.Equal(t, lib.EventStatusOpen, items[0].Status)

	// Toggle flips it to done.
	status, err := client.Toggle(ctx, lib.ToggleOpts{
		ActorEmail: anna.Email,
		TaskID:     task.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, lib.EventStatusDone, status)

	items, err = client.DueList(ctx, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, lib.EventStatusDone, items[0].Status)

	// A second toggle flips it back to open.
	status, err = client.Toggle(ctx, lib.ToggleOpts{
		ActorEmail: anna.Email,
		TaskID:     task.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, lib.EventStatusOpen, status)

	// Once done, the task stops being due until the interval elapses.
	_, err = client.Toggle(ctx, lib.ToggleOpts{
		ActorEmail: anna.Email,
		TaskID:     task.ID,
	})
	require.NoError(t, err)

	next := lib.CurrentPeriod().AddWeeks(1)
	items, err = client.DueList(ctx, &lib.DueListOpts{Period: &next})
	require.NoError(t, err)
	assert.Empty(t, items)

	after := lib.CurrentPeriod().AddWeeks(4)
	items, err = client.DueList(ctx, &lib.DueListOpts{Period: &after})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, lib.EventStatusOpen, items[0].Status)
}

func TestClientTogglePermissions(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	anna, err := client.CreateUser(ctx, lib.CreateUserOpts{
		Username: "anna",
		Email:    "anna@example.org",
	})
	require.NoError(t, err)

	olga, err := client.CreateUser(ctx, lib.CreateUserOpts{
		Username: "olga",
		Email:    "olga@example.org",
		Role:     lib.RoleObserver,
	})
	require.NoError(t, err)

	task, err := client.CreateTask(ctx, lib.CreateTaskOpts{
		Title:         "Verify backups",
		IntervalWeeks: 4,
		Assignees:     []string{anna.Email, olga.Email},
	})
	require.NoError(t, err)

	// Observers cannot write.
	_, err = client.Toggle(ctx, lib.ToggleOpts{
		ActorEmail: olga.Email,
		TaskID:     task.ID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lib.ErrNotAllowed))

	// Users cannot write other users' statuses.
	_, err = client.Toggle(ctx, lib.ToggleOpts{
		ActorEmail: anna.Email,
		TaskID:     task.ID,
		UserEmail:  olga.Email,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lib.ErrNotAllowed))

	// Unknown task.
	_, err = client.Toggle(ctx, lib.ToggleOpts{
		ActorEmail: anna.Email,
		TaskID:     "does-not-exist",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lib.ErrNotFound))

	// Invalid period.
	bad := lib.Period{Week: 99, Year: 2026}
	_, err = client.Toggle(ctx, lib.ToggleOpts{
		ActorEmail: anna.Email,
		TaskID:     task.ID,
		Period:     &bad,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lib.ErrNotValid))
}

func TestClientImportCatalog(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	catalog := lib.Catalog{
		Users: []lib.UserSpec{
			{Username: "anna", Email: "anna@example.org", Role: lib.RoleAdmin},
			{Username: "ben", Email: "ben@example.org"},
		},
		Tasks: []lib.TaskSpec{
			{Title: "Verify backups", IntervalWeeks: 4, Assignees: []string{"anna@example.org", "ben@example.org"}},
			{Title: "Check certificates", IntervalWeeks: 2, Assignees: []string{"anna@example.org"}},
		},
	}

	result, err := client.ImportCatalog(ctx, catalog)
	require.NoError(t, err)
	assert.Equal(t, &lib.ImportResult{UsersCreated: 2, TasksCreated: 2}, result)

	// The whole seed is due for the current week.
	items, err := client.DueList(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	// Re-importing skips the existing users but fails nothing.
	result, err = client.ImportCatalog(ctx, lib.Catalog{Users: catalog.Users})
	require.NoError(t, err)
	assert.Equal(t, &lib.ImportResult{UsersSkipped: 2}, result)
}

func TestClientDueListSingleUser(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	_, err := client.ImportCatalog(ctx, lib.Catalog{
		Users: []lib.UserSpec{
			{Username: "anna", Email: "anna@example.org"},
			{Username: "ben", Email: "ben@example.org"},
		},
		Tasks: []lib.TaskSpec{
			{Title: "Verify backups", IntervalWeeks: 4, Assignees: []string{"anna@example.org", "ben@example.org"}},
			{Title: "Check certificates", IntervalWeeks: 2, Assignees: []string{"ben@example.org"}},
		},
	})
	require.NoError(t, err)

	items, err := client.DueList(ctx, &lib.DueListOpts{UserEmail: "ben@example.org"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "ben@example.org", item.User.Email)
	}

	_, err = client.DueList(ctx, &lib.DueListOpts{UserEmail: "ghost@example.org"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lib.ErrNotFound))
}
