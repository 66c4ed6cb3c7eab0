package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HubOfCJ/testcase-manager/internal/log"
	"github.com/HubOfCJ/testcase-manager/internal/model"
	"github.com/HubOfCJ/testcase-manager/internal/storage"
	"github.com/HubOfCJ/testcase-manager/internal/storage/sqlite"
)

func userFixture(id, email string) model.User {
	return model.User{
		ID:        id,
		Username:  "user-" + id,
		Email:     email,
		Role:      model.RoleTester,
		CreatedAt: time.Now().UTC(),
	}
}

func taskFixture(id, title string, interval int) model.Task {
	return model.Task{
		ID:            id,
		Title:         title,
		Tooltip:       "tooltip for " + title,
		IntervalWeeks: interval,
		Area:          "backend",
		CreatedAt:     time.Now().UTC(),
	}
}

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepositoryUsers(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	u := userFixture("id-1", "anna@example.org")
	require.NoError(t, repo.CreateUser(ctx, u))

	got, err := repo.GetUserByEmail(ctx, "anna@example.org")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, model.RoleTester, got.Role)

	_, err = repo.GetUserByEmail(ctx, "nobody@example.org")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	dup := userFixture("id-2", "anna@example.org")
	err = repo.CreateUser(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrAlreadyExists))

	all, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRepositoryTasksAndAssignments(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.CreateUser(ctx, userFixture("u1", "anna@example.org")))
	require.NoError(t, repo.CreateUser(ctx, userFixture("u2", "ben@example.org")))

	tk := taskFixture("t1", "Verify backups", 4)
	require.NoError(t, repo.CreateTask(ctx, tk))

	got, err := repo.GetTask(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Verify backups", got.Title)
	assert.Equal(t, 4, got.IntervalWeeks)

	_, err = repo.GetTask(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	invalid := taskFixture("t2", "Bad interval", 0)
	err = repo.CreateTask(ctx, invalid)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotValid))

	require.NoError(t, repo.CreateAssignments(ctx, "t1", []string{"u1", "u2"}))

	all, err := repo.ListAssignments(ctx, storage.AssignmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	forUser, err := repo.ListAssignments(ctx, storage.AssignmentFilter{UserID: "u2"})
	require.NoError(t, err)
	require.Len(t, forUser, 1)
	assert.Equal(t, "t1", forUser[0].TaskID)

	err = repo.CreateAssignments(ctx, "t1", []string{"u1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrAlreadyExists))
}

func TestRepositoryEventUpsertMerges(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	period := model.Period{Week: 5, Year: 2025}
	ev := model.CompletionEvent{
		TaskID:    "t1",
		UserID:    "u1",
		Period:    period,
		Status:    model.EventStatusDone,
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.UpsertEvent(ctx, ev))

	// Second upsert on the same triple overwrites instead of duplicating.
	ev.Status = model.EventStatusOpen
	require.NoError(t, repo.UpsertEvent(ctx, ev))

	events, err := repo.ListEvents(ctx, storage.EventFilter{TaskID: "t1", UserID: "u1", Period: &period})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventStatusOpen, events[0].Status)

	// A different period creates its own row.
	ev.Period = model.Period{Week: 6, Year: 2025}
	require.NoError(t, repo.UpsertEvent(ctx, ev))

	all, err := repo.ListEvents(ctx, storage.EventFilter{TaskID: "t1", UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepositoryEventConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	period := model.Period{Week: 12, Year: 2025}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := model.EventStatusOpen
			if i%2 == 0 {
				status = model.EventStatusDone
			}
			err := repo.UpsertEvent(ctx, model.CompletionEvent{
				TaskID:    "t1",
				UserID:    "u1",
				Period:    period,
				Status:    status,
				UpdatedAt: time.Now().UTC(),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	events, err := repo.ListEvents(ctx, storage.EventFilter{TaskID: "t1", UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRepositoryEventFilters(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	now := time.Now().UTC()
	seed := []model.CompletionEvent{
		{TaskID: "t1", UserID: "u1", Period: model.Period{Week: 10, Year: 2024}, Status: model.EventStatusDone, UpdatedAt: now},
		{TaskID: "t1", UserID: "u2", Period: model.Period{Week: 10, Year: 2024}, Status: model.EventStatusOpen, UpdatedAt: now},
		{TaskID: "t2", UserID: "u1", Period: model.Period{Week: 11, Year: 2024}, Status: model.EventStatusDone, UpdatedAt: now},
	}
	for _, ev := range seed {
		require.NoError(t, repo.UpsertEvent(ctx, ev))
	}

	byTask, err := repo.ListEvents(ctx, storage.EventFilter{TaskID: "t1"})
	require.NoError(t, err)
	assert.Len(t, byTask, 2)

	byUser, err := repo.ListEvents(ctx, storage.EventFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	p := model.Period{Week: 11, Year: 2024}
	byPeriod, err := repo.ListEvents(ctx, storage.EventFilter{Period: &p})
	require.NoError(t, err)
	require.Len(t, byPeriod, 1)
	assert.Equal(t, "t2", byPeriod[0].TaskID)
}
