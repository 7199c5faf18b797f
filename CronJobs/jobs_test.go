package CronJobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"PicQuest/TaskGen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyLLM fails a fixed number of times before producing a valid response
type flakyLLM struct {
	failures int
	calls    int
}

func (f *flakyLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("temporarily unavailable")
	}
	return `[{"title":"One"},{"title":"Two"},{"title":"Three"}]`, nil
}

func newTestJob(t *testing.T, llm TaskGen.TextGenerator, store TaskGen.TaskStore) *TaskGenJob {
	t.Helper()
	gen, err := TaskGen.NewGenerator(llm, store)
	require.NoError(t, err)

	job := NewTaskGenJob(gen, false)
	job.retryBaseDelay = time.Millisecond
	return job
}

func TestRunGenerationRetriesTransientFailures(t *testing.T) {
	llm := &flakyLLM{failures: 2}
	store := TaskGen.NewMemoryTaskStore()
	job := newTestJob(t, llm, store)

	job.runGeneration()

	assert.Equal(t, 3, llm.calls)
	exists, err := store.Exists(context.Background(), TaskGen.TodayKey())
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRunGenerationGivesUpAfterMaxRetries(t *testing.T) {
	llm := &flakyLLM{failures: 100}
	store := TaskGen.NewMemoryTaskStore()
	job := newTestJob(t, llm, store)
	job.maxRetries = 2

	job.runGeneration()

	assert.Equal(t, 3, llm.calls)
	exists, err := store.Exists(context.Background(), TaskGen.TodayKey())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRunGenerationNoRetryAfterSuccess(t *testing.T) {
	llm := &flakyLLM{}
	store := TaskGen.NewMemoryTaskStore()
	job := newTestJob(t, llm, store)

	job.runGeneration()
	job.runGeneration()

	// Second pass is absorbed by the existence check
	assert.Equal(t, 1, llm.calls)
}

func TestStartAndUpdateSchedule(t *testing.T) {
	llm := &flakyLLM{}
	store := TaskGen.NewMemoryTaskStore()
	job := newTestJob(t, llm, store)

	require.NoError(t, job.Start())
	defer job.Stop()

	assert.Error(t, job.UpdateSchedule("not a schedule"))
	assert.NoError(t, job.UpdateSchedule("0 30 2 * * *"))
}
