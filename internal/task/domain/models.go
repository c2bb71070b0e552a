package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

type Task struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	OwnerID     snowflake.ID `json:"owner_id" gorm:"index"`
	EstateID    snowflake.ID `json:"estate_id" gorm:"index"`
	Title       string       `json:"title"`
	Notes       string       `json:"notes"`
	Status      string       `json:"status" gorm:"index"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}
