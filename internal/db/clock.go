package db

import "time"

// EventClock is a single-row table holding the event's current day/slot,
// set by operators and read by the player-facing handlers.
type EventClock struct {
	ID        uint      `gorm:"primaryKey"`
	Day       int       `gorm:"not null;default:1"`
	Slot      string    `gorm:"size:32;not null;default:''"`
	UpdatedAt time.Time `gorm:"not null"`
}
