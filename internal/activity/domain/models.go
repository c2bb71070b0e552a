package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Activity is an append-only feed entry. Rows are written by the CRUD
// services on mutations and never updated or deleted.
type Activity struct {
	ID         snowflake.ID      `json:"id" gorm:"primaryKey"`
	OwnerID    snowflake.ID      `json:"owner_id" gorm:"index"`
	EstateID   *snowflake.ID     `json:"estate_id,omitempty" gorm:"index"`
	ActorID    *snowflake.ID     `json:"actor_id,omitempty"`
	Action     string            `json:"action" gorm:"index"`
	TargetType string            `json:"target_type"`
	TargetID   snowflake.ID      `json:"target_id"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

func (Activity) TableName() string {
	return "activities"
}
