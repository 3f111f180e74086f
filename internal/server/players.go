package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"puzzle-week/internal/db"
	"puzzle-week/internal/event"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

const maxNameLength = 64

// PlayerDirectory registers participants and answers the audience group a
// player's content should resolve against.
type PlayerDirectory interface {
	Register(name string, group event.AudienceGroup) (db.Player, error)
	Group(playerID string) (event.AudienceGroup, error)
	List() ([]db.Player, error)
}

func validatePlayerName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: name is required", event.ErrValidation)
	}
	if len(trimmed) > maxNameLength {
		return "", fmt.Errorf("%w: name must be %d characters or fewer", event.ErrValidation, maxNameLength)
	}
	return trimmed, nil
}

type gormPlayers struct {
	conn *gorm.DB
}

func newGormPlayers(conn *gorm.DB) *gormPlayers {
	return &gormPlayers{conn: conn}
}

func (p *gormPlayers) Register(name string, group event.AudienceGroup) (db.Player, error) {
	trimmed, err := validatePlayerName(name)
	if err != nil {
		return db.Player{}, err
	}
	record := db.Player{
		ID:            uuid.NewString(),
		Name:          trimmed,
		AudienceGroup: string(group),
	}
	if err := p.conn.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return db.Player{}, fmt.Errorf("%w: name %q is taken", event.ErrValidation, trimmed)
		}
		return db.Player{}, err
	}
	return record, nil
}

func (p *gormPlayers) Group(playerID string) (event.AudienceGroup, error) {
	var record db.Player
	err := p.conn.Where("id = ?", playerID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil // unknown players get general content
	}
	if err != nil {
		return "", err
	}
	return event.AudienceGroup(record.AudienceGroup), nil
}

func (p *gormPlayers) List() ([]db.Player, error) {
	var records []db.Player
	err := p.conn.Order("name").Find(&records).Error
	return records, err
}

type memoryPlayers struct {
	mu     sync.Mutex
	byID   map[string]db.Player
	byName map[string]string
}

func newMemoryPlayers() *memoryPlayers {
	return &memoryPlayers{byID: make(map[string]db.Player), byName: make(map[string]string)}
}

func (p *memoryPlayers) Register(name string, group event.AudienceGroup) (db.Player, error) {
	trimmed, err := validatePlayerName(name)
	if err != nil {
		return db.Player{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, taken := p.byName[strings.ToLower(trimmed)]; taken {
		return db.Player{}, fmt.Errorf("%w: name %q is taken", event.ErrValidation, trimmed)
	}
	record := db.Player{ID: uuid.NewString(), Name: trimmed, AudienceGroup: string(group)}
	p.byID[record.ID] = record
	p.byName[strings.ToLower(trimmed)] = record.ID
	return record, nil
}

func (p *memoryPlayers) Group(playerID string) (event.AudienceGroup, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if record, ok := p.byID[playerID]; ok {
		return event.AudienceGroup(record.AudienceGroup), nil
	}
	return "", nil
}

func (p *memoryPlayers) List() ([]db.Player, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	records := make([]db.Player, 0, len(p.byID))
	for _, record := range p.byID {
		records = append(records, record)
	}
	return records, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
