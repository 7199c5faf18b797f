package Models

import (
	"gorm.io/gorm"
)

// UserTaskProgress tracks one user's photo count against one task of a
// day's generated set. The task definitions themselves live in the
// document store keyed by DateKey; only per-user progress is relational.
type UserTaskProgress struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"uniqueIndex:idx_user_task"`
	DateKey        string `json:"date_key" gorm:"uniqueIndex:idx_user_task"`
	TaskID         string `json:"task_id" gorm:"uniqueIndex:idx_user_task"`
	CompletedCount int    `json:"completed_count"`
	IsCompleted    bool   `json:"is_completed"`
}

type TaskStepRequest struct {
	TaskID string `json:"task_id" validate:"required"`
}
