package Models

import (
	"gorm.io/gorm"
)

// Post is a photo shared to the feed. TaskID/DateKey link the photo back to
// the daily task it was captured for, when there is one.
type Post struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index"`
	User      User   `json:"user" gorm:"foreignKey:UserID"`
	Caption   string `json:"caption"`
	ImagePath string `json:"image_path"`
	TaskID    string `json:"task_id"`
	DateKey   string `json:"date_key" gorm:"index"`
	LikeCount int    `json:"like_count"`
}

type PostLike struct {
	gorm.Model
	PostID uint `json:"post_id" gorm:"uniqueIndex:idx_post_like"`
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_post_like"`
}

type CreatePostRequest struct {
	Caption string `json:"caption" validate:"max=500"`
	TaskID  string `json:"task_id"`
}
