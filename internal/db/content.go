package db

import (
	"time"

	"gorm.io/datatypes"
)

// PuzzleContent is the current payload for one exact content key. The
// audience group is stored as a plain string with "" meaning the general
// bucket so the composite unique index covers the fallback row too.
type PuzzleContent struct {
	ID            uint           `gorm:"primaryKey"`
	Day           int            `gorm:"not null;uniqueIndex:idx_content_key"`
	Game          string         `gorm:"size:32;not null;uniqueIndex:idx_content_key"`
	Slot          string         `gorm:"size:32;not null;default:'';uniqueIndex:idx_content_key"`
	AudienceGroup string         `gorm:"size:64;not null;default:'';uniqueIndex:idx_content_key"`
	Version       int64          `gorm:"not null"`
	Payload       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
}
