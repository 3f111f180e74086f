package db

import (
	"time"

	"gorm.io/datatypes"
)

// AdminEvent is an append-only audit trail of operator actions (content
// uploads, clock changes, attempt resets).
type AdminEvent struct {
	ID        uint           `gorm:"primaryKey"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
