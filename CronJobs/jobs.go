package CronJobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"PicQuest/TaskGen"

	"github.com/robfig/cron/v3"
)

// TaskGenJob runs the daily task generation on a schedule
type TaskGenJob struct {
	cronScheduler  *cron.Cron
	generator      *TaskGen.Generator
	runImmediately bool
	jobID          cron.EntryID
	maxRetries     int
	retryBaseDelay time.Duration
	runTimeout     time.Duration
}

// NewTaskGenJob creates the job. With runImmediately set, one generation
// pass fires at startup in addition to the daily schedule; the pipeline's
// existence check makes the extra pass a no-op on days already covered.
func NewTaskGenJob(generator *TaskGen.Generator, runImmediately bool) *TaskGenJob {
	return &TaskGenJob{
		cronScheduler:  cron.New(cron.WithSeconds()),
		generator:      generator,
		runImmediately: runImmediately,
		maxRetries:     5,
		retryBaseDelay: time.Minute,
		runTimeout:     2 * time.Minute,
	}
}

// Start initiates the daily generation cron job
func (j *TaskGenJob) Start() error {
	// Add the scheduled task
	var err error
	j.jobID, err = j.cronScheduler.AddFunc("0 0 1 * * *", func() {
		log.Println("Running scheduled daily task generation")
		j.runGeneration()
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	// Start the scheduler
	j.cronScheduler.Start()
	log.Println("Task generation scheduler started - will run daily at 1:00 AM")

	// Run immediately if requested
	if j.runImmediately {
		log.Println("Running initial task generation")
		go j.runGeneration()
	}

	return nil
}

// Stop terminates the scheduler
func (j *TaskGenJob) Stop() {
	if j.cronScheduler != nil {
		j.cronScheduler.Stop()
		log.Println("Task generation scheduler stopped")
	}
}

// UpdateSchedule changes the schedule of the generation job
// Format: "0 0 1 * * *" = At 01:00:00 AM every day
func (j *TaskGenJob) UpdateSchedule(schedule string) error {
	// Remove existing job
	j.cronScheduler.Remove(j.jobID)

	// Add with new schedule
	var err error
	j.jobID, err = j.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled daily task generation")
		j.runGeneration()
	})

	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Task generation schedule updated to: %s\n", schedule)
	return nil
}

// RunManualGeneration executes a generation pass outside the schedule
func (j *TaskGenJob) RunManualGeneration() {
	log.Println("Running manual task generation")
	j.runGeneration()
}

// runGeneration executes the pipeline, retrying transient failures with
// exponential backoff. A run that keeps failing is abandoned until the next
// scheduled firing.
func (j *TaskGenJob) runGeneration() {
	var lastErr error

	for attempt := 0; attempt <= j.maxRetries; attempt++ {
		if attempt > 0 {
			delay := j.retryBaseDelay * time.Duration(1<<uint(attempt-1))
			log.Printf("Task generation attempt %d failed (%v), retrying in %v", attempt, lastErr, delay)
			time.Sleep(delay)
		}

		ctx, cancel := context.WithTimeout(context.Background(), j.runTimeout)
		err := j.generator.Run(ctx)
		cancel()

		if err == nil {
			log.Println("Successfully completed task generation")
			return
		}
		lastErr = err
	}

	log.Printf("Task generation gave up after %d attempts: %v", j.maxRetries+1, lastErr)
}
