package server

import (
	"errors"
	"sync"

	"puzzle-week/internal/db"
	"puzzle-week/internal/event"

	"gorm.io/gorm"
)

// ClockSource holds the event's current day/slot as set by operators.
// Handlers read it once per request and pass the value down explicitly.
type ClockSource interface {
	Current() (event.Clock, error)
	Set(clock event.Clock) error
}

type gormClock struct {
	conn *gorm.DB
}

func newGormClock(conn *gorm.DB) *gormClock {
	return &gormClock{conn: conn}
}

func (c *gormClock) Current() (event.Clock, error) {
	var record db.EventClock
	err := c.conn.First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return event.Clock{Day: 1}, nil
	}
	if err != nil {
		return event.Clock{}, err
	}
	return event.Clock{Day: record.Day, Slot: record.Slot}, nil
}

func (c *gormClock) Set(clock event.Clock) error {
	if err := clock.Validate(); err != nil {
		return err
	}
	var record db.EventClock
	err := c.conn.First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.conn.Create(&db.EventClock{Day: clock.Day, Slot: clock.Slot}).Error
	}
	if err != nil {
		return err
	}
	record.Day = clock.Day
	record.Slot = clock.Slot
	return c.conn.Save(&record).Error
}

type memoryClock struct {
	mu    sync.Mutex
	clock event.Clock
}

func newMemoryClock() *memoryClock {
	return &memoryClock{clock: event.Clock{Day: 1}}
}

func (c *memoryClock) Current() (event.Clock, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock, nil
}

func (c *memoryClock) Set(clock event.Clock) error {
	if err := clock.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock = clock
	return nil
}
