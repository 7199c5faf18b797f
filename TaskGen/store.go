package TaskGen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DailyTask is one finalized task inside a day's set.
type DailyTask struct {
	ID             string    `json:"id" firestore:"id"`
	Title          string    `json:"title" firestore:"title"`
	TotalCount     int       `json:"total_count" firestore:"totalCount"`
	CompletedCount int       `json:"completed_count" firestore:"completedCount"`
	IsCompleted    bool      `json:"is_completed" firestore:"isCompleted"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	ExpiresAt      time.Time `json:"expires_at" firestore:"expiresAt"`
	Points         int       `json:"points" firestore:"points"`
}

// DailyTaskSet is the create-once document keyed by calendar date.
// CreatedAt is assigned by the store on write, distinct from the
// client-computed task timestamps.
type DailyTaskSet struct {
	DateKey   string      `json:"date_key" firestore:"dateKey"`
	Tasks     []DailyTask `json:"tasks" firestore:"tasks"`
	CreatedAt time.Time   `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

var (
	ErrAlreadyExists = errors.New("daily task set already exists")
	ErrNotFound      = errors.New("daily task set not found")
)

// TaskStore persists daily task sets keyed by date.
type TaskStore interface {
	Exists(ctx context.Context, dateKey string) (bool, error)
	// Create writes the set only if no document exists for its DateKey,
	// returning ErrAlreadyExists otherwise.
	Create(ctx context.Context, set *DailyTaskSet) error
	Get(ctx context.Context, dateKey string) (*DailyTaskSet, error)
}

const dailyTasksCollection = "daily_tasks"

// FirestoreTaskStore keeps one document per day in the daily_tasks
// collection, document id = dateKey.
type FirestoreTaskStore struct {
	client *firestore.Client
}

func NewFirestoreTaskStore(ctx context.Context, app *firebase.App) (*FirestoreTaskStore, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %v", err)
	}
	return &FirestoreTaskStore{client: client}, nil
}

func (s *FirestoreTaskStore) Exists(ctx context.Context, dateKey string) (bool, error) {
	_, err := s.client.Collection(dailyTasksCollection).Doc(dateKey).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *FirestoreTaskStore) Create(ctx context.Context, set *DailyTaskSet) error {
	// Conditional create: a concurrent writer that got here first wins and
	// this call fails instead of silently overwriting its set.
	_, err := s.client.Collection(dailyTasksCollection).Doc(set.DateKey).Create(ctx, set)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *FirestoreTaskStore) Get(ctx context.Context, dateKey string) (*DailyTaskSet, error) {
	doc, err := s.client.Collection(dailyTasksCollection).Doc(dateKey).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var set DailyTaskSet
	if err := doc.DataTo(&set); err != nil {
		return nil, err
	}
	return &set, nil
}

func (s *FirestoreTaskStore) Close() error {
	return s.client.Close()
}
