package db

import (
	"time"

	"gorm.io/datatypes"
)

// Attempt is the ledger record for one (player, day, game, slot). Score
// only ever grows while Final is false; Final flips once and never back.
type Attempt struct {
	ID             uint           `gorm:"primaryKey"`
	PlayerID       string         `gorm:"size:64;not null;uniqueIndex:idx_attempts_key"`
	Day            int            `gorm:"not null;uniqueIndex:idx_attempts_key"`
	Game           string         `gorm:"size:32;not null;uniqueIndex:idx_attempts_key"`
	Slot           string         `gorm:"size:32;not null;default:'';uniqueIndex:idx_attempts_key"`
	ContentVersion int64          `gorm:"not null;default:0"`
	Score          int            `gorm:"not null;default:0"`
	Detail         datatypes.JSON `gorm:"type:jsonb"`
	Final          bool           `gorm:"not null;default:false"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
}
