package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	StatusOpen     = "OPEN"
	StatusClosed   = "CLOSED"
	StatusArchived = "ARCHIVED"
)

type Estate struct {
	ID           snowflake.ID      `json:"id" gorm:"primaryKey"`
	OwnerID      snowflake.ID      `json:"owner_id" gorm:"index"`
	DisplayName  string            `json:"display_name"`
	CaseName     string            `json:"case_name"`
	CaseNumber   string            `json:"case_number"`
	DecedentName string            `json:"decedent_name"`
	Status       string            `json:"status" gorm:"index"`
	DateOfDeath  *time.Time        `json:"date_of_death,omitempty"`
	Metadata     datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (Estate) TableName() string {
	return "estates"
}

// Collaborator grants a user read access to another owner's estate.
type Collaborator struct {
	EstateID  snowflake.ID `json:"estate_id" gorm:"primaryKey;autoIncrement:false"`
	UserID    snowflake.ID `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Role      string       `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
}

func (Collaborator) TableName() string {
	return "estate_collaborators"
}
