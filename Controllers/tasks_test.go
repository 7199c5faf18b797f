package Controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"PicQuest/Models"
	"PicQuest/TaskGen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDailyTasks(t *testing.T, store TaskGen.TaskStore) *TaskGen.DailyTaskSet {
	t.Helper()

	now := time.Now().UTC()
	set := &TaskGen.DailyTaskSet{
		DateKey: TaskGen.TodayKey(),
		Tasks: []TaskGen.DailyTask{
			{ID: "task-1", Title: "Photograph a bridge", TotalCount: 1, CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour), Points: 100},
			{ID: "task-2", Title: "Capture your lunch", TotalCount: 2, CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour), Points: 100},
			{ID: "task-3", Title: "Shoot a shadow", TotalCount: 1, CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour), Points: 100},
		},
	}
	require.NoError(t, store.Create(context.Background(), set))
	return set
}

func TestGetDailyTasks(t *testing.T) {
	store := TaskGen.NewMemoryTaskStore()
	app, db := setupTestApp(t, store)
	seedDailyTasks(t, store)
	_, cookie := createUser(t, db, "Dana")

	resp := doRequest(t, app, "GET", "/api/GetDailyTasks", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		DateKey string          `json:"date_key"`
		Tasks   []DailyTaskView `json:"tasks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, TaskGen.TodayKey(), body.DateKey)
	require.Len(t, body.Tasks, 3)
	assert.Equal(t, 0, body.Tasks[0].UserCompletedCount)
	assert.False(t, body.Tasks[0].UserCompleted)
}

func TestGetDailyTasksNotReady(t *testing.T) {
	app, db := setupTestApp(t, TaskGen.NewMemoryTaskStore())
	_, cookie := createUser(t, db, "Dana")

	resp := doRequest(t, app, "GET", "/api/GetDailyTasks", cookie, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCompleteTaskStepAwardsPoints(t *testing.T) {
	store := TaskGen.NewMemoryTaskStore()
	app, db := setupTestApp(t, store)
	seedDailyTasks(t, store)
	user, cookie := createUser(t, db, "Dana")

	// Single-photo task completes in one step
	resp := doRequest(t, app, "POST", "/api/CompleteTaskStep", cookie,
		strings.NewReader(`{"task_id":"task-1"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fresh Models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 100, fresh.Points)
	assert.Equal(t, 1, fresh.TasksCompleted)

	// Completion notification was recorded
	var count int64
	db.Model(&Models.Notification{}).
		Where("user_id = ? AND type = ?", user.ID, Models.NotificationTypeTaskComplete).
		Count(&count)
	assert.Equal(t, int64(1), count)

	// Completing again is rejected
	resp = doRequest(t, app, "POST", "/api/CompleteTaskStep", cookie,
		strings.NewReader(`{"task_id":"task-1"}`))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCompleteTaskStepMultiPhoto(t *testing.T) {
	store := TaskGen.NewMemoryTaskStore()
	app, db := setupTestApp(t, store)
	seedDailyTasks(t, store)
	user, cookie := createUser(t, db, "Dana")

	// task-2 needs two photos
	resp := doRequest(t, app, "POST", "/api/CompleteTaskStep", cookie,
		strings.NewReader(`{"task_id":"task-2"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fresh Models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 0, fresh.Points, "no points until the task is complete")

	resp = doRequest(t, app, "POST", "/api/CompleteTaskStep", cookie,
		strings.NewReader(`{"task_id":"task-2"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 100, fresh.Points)

	var progress Models.UserTaskProgress
	require.NoError(t, db.Where("user_id = ? AND task_id = ?", user.ID, "task-2").First(&progress).Error)
	assert.Equal(t, 2, progress.CompletedCount)
	assert.True(t, progress.IsCompleted)
}

func TestCompleteTaskStepUnknownTask(t *testing.T) {
	store := TaskGen.NewMemoryTaskStore()
	app, db := setupTestApp(t, store)
	seedDailyTasks(t, store)
	_, cookie := createUser(t, db, "Dana")

	resp := doRequest(t, app, "POST", "/api/CompleteTaskStep", cookie,
		strings.NewReader(fmt.Sprintf(`{"task_id":"%s"}`, "nope")))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
