package Models

import (
	"gorm.io/gorm"
)

// Follow is one directed edge of the social graph.
type Follow struct {
	gorm.Model
	FollowerID uint `json:"follower_id" gorm:"uniqueIndex:idx_follow_edge"`
	FolloweeID uint `json:"followee_id" gorm:"uniqueIndex:idx_follow_edge"`
}
