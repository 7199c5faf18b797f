package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationTypeFollow       = "follow"
	NotificationTypeLike         = "like"
	NotificationTypeTaskComplete = "task_complete"
)

type Notification struct {
	gorm.Model
	UserID uint           `json:"user_id" gorm:"index"`
	Type   string         `json:"type"`
	Title  string         `json:"title"`
	Body   string         `json:"body"`
	Data   datatypes.JSON `json:"data"`
	Read   bool           `json:"read" gorm:"default:false"`
}
