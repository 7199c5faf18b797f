package Models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name           string `json:"name"`
	Email          string `json:"email" gorm:"uniqueIndex"`
	Password       []byte `json:"-"`
	Bio            string `json:"bio"`
	AvatarURL      string `json:"avatar_url"`
	Points         int    `json:"points"`
	TasksCompleted int    `json:"tasks_completed"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=40"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
