package db

import "time"

type Player struct {
	ID            string    `gorm:"primaryKey;size:64"`
	Name          string    `gorm:"size:64;not null;uniqueIndex:idx_players_name"`
	AudienceGroup string    `gorm:"size:64;not null;default:''"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
	Attempts      []Attempt `gorm:"foreignKey:PlayerID"`
}
