package TaskGen

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const taskPoints = 100

// Generator runs one Check -> Generate -> Persist pass. It holds no state
// between invocations; idempotency comes from the store's existence check
// and conditional create.
type Generator struct {
	llm   TextGenerator
	store TaskStore
}

func NewGenerator(llm TextGenerator, store TaskStore) (*Generator, error) {
	if len(FallbackPool) < TaskCount {
		return nil, fmt.Errorf("fallback pool has %d entries, need at least %d", len(FallbackPool), TaskCount)
	}
	return &Generator{llm: llm, store: store}, nil
}

// TodayKey returns the calendar-date idempotency key for the current day.
func TodayKey() string {
	return time.Now().UTC().Format("2006-01-02")
}

// Run generates and persists today's task set. A nil return means the set
// exists (created now or previously); a non-nil error is transient and the
// caller should retry later.
func (g *Generator) Run(ctx context.Context) error {
	dateKey := TodayKey()

	exists, err := g.store.Exists(ctx, dateKey)
	if err != nil {
		return fmt.Errorf("checking existing task set: %w", err)
	}
	if exists {
		log.Printf("Daily tasks for %s already generated, skipping", dateKey)
		return nil
	}

	text, err := g.llm.Generate(ctx, BuildPrompt())
	if err != nil {
		return fmt.Errorf("generating tasks: %w", err)
	}

	candidates := ParseCandidates(text)
	if len(candidates) == 0 {
		return errors.New("no task candidates produced")
	}

	set := buildSet(dateKey, candidates)
	if err := g.store.Create(ctx, set); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			// Lost the race to a concurrent run; its set stands.
			log.Printf("Daily tasks for %s created concurrently, skipping", dateKey)
			return nil
		}
		return fmt.Errorf("persisting task set: %w", err)
	}

	log.Printf("Generated %d daily tasks for %s", len(set.Tasks), dateKey)
	return nil
}

func buildSet(dateKey string, candidates []TaskCandidate) *DailyTaskSet {
	now := time.Now().UTC()
	tasks := make([]DailyTask, 0, len(candidates))
	for _, c := range candidates {
		tasks = append(tasks, DailyTask{
			ID:         uuid.NewString(),
			Title:      c.Title,
			TotalCount: c.TotalCount,
			CreatedAt:  now,
			ExpiresAt:  now.Add(24 * time.Hour),
			Points:     taskPoints,
		})
	}
	return &DailyTaskSet{
		DateKey: dateKey,
		Tasks:   tasks,
	}
}
