package ledger

import (
	"encoding/json"
	"errors"
	"fmt"

	"puzzle-week/internal/db"
	"puzzle-week/internal/event"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedger stores attempts in Postgres. The composite unique index on
// (player_id, day, game, slot) backs the creation race, and both mutation
// paths are conditional updates guarded by final = false, so concurrent
// finalize calls serialize in the database rather than in process.
type GormLedger struct {
	conn *gorm.DB
}

func NewGormLedger(conn *gorm.DB) *GormLedger {
	return &GormLedger{conn: conn}
}

func (l *GormLedger) RecordProgress(key event.AttemptKey, score int, detail json.RawMessage, contentVersion int64) (Result, error) {
	if err := key.Validate(); err != nil {
		return Result{}, err
	}
	score = clampScore(score)

	record := newRecord(key, score, detail, contentVersion, false)
	create := l.conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if create.Error != nil && !isUniqueViolation(create.Error) {
		return Result{}, create.Error
	}
	if create.Error == nil && create.RowsAffected == 1 {
		return Result{Score: score, Final: false}, nil
	}

	update := l.conn.Model(&db.Attempt{}).
		Where("player_id = ? AND day = ? AND game = ? AND slot = ? AND final = ?",
			key.PlayerID, key.Day, string(key.Game), key.Slot, false).
		Updates(map[string]any{
			"score":           gorm.Expr("GREATEST(score, ?)", score),
			"detail":          datatypes.JSON(detail),
			"content_version": contentVersion,
		})
	if update.Error != nil {
		return Result{}, update.Error
	}
	stored, err := l.load(key)
	if err != nil {
		return Result{}, err
	}
	if update.RowsAffected == 0 && stored.Final {
		return Result{Score: stored.Score, Final: true}, fmt.Errorf("%w: %s", event.ErrConflict, key)
	}
	return Result{Score: stored.Score, Final: stored.Final}, nil
}

func (l *GormLedger) Finalize(key event.AttemptKey, score int, detail json.RawMessage, contentVersion int64) (Result, error) {
	if err := key.Validate(); err != nil {
		return Result{}, err
	}
	score = clampScore(score)

	// First finalize for a fresh key: create the row already final. The
	// unique index turns the second concurrent creator into an update.
	record := newRecord(key, score, detail, contentVersion, true)
	create := l.conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if create.Error != nil && !isUniqueViolation(create.Error) {
		return Result{}, create.Error
	}
	if create.Error == nil && create.RowsAffected == 1 {
		return Result{Score: score, Final: true}, nil
	}

	update := l.conn.Model(&db.Attempt{}).
		Where("player_id = ? AND day = ? AND game = ? AND slot = ? AND final = ?",
			key.PlayerID, key.Day, string(key.Game), key.Slot, false).
		Updates(map[string]any{
			"score":           gorm.Expr("GREATEST(score, ?)", score),
			"detail":          datatypes.JSON(detail),
			"content_version": contentVersion,
			"final":           true,
		})
	if update.Error != nil {
		return Result{}, update.Error
	}
	stored, err := l.load(key)
	if err != nil {
		return Result{}, err
	}
	if update.RowsAffected == 0 {
		return Result{Score: stored.Score, Final: true}, fmt.Errorf("%w: %s", event.ErrConflict, key)
	}
	return Result{Score: stored.Score, Final: true}, nil
}

func (l *GormLedger) Status(key event.AttemptKey) (Status, error) {
	if err := key.Validate(); err != nil {
		return Status{}, err
	}
	stored, err := l.load(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, err
	}
	return Status{Exists: true, Final: stored.Final, Score: stored.Score}, nil
}

func (l *GormLedger) Reset(filter Filter) (int64, error) {
	if filter.Empty() {
		return 0, fmt.Errorf("%w: reset filter is empty", event.ErrValidation)
	}
	query := l.conn.Model(&db.Attempt{})
	if filter.PlayerID != "" {
		query = query.Where("player_id = ?", filter.PlayerID)
	}
	if filter.Day != 0 {
		query = query.Where("day = ?", filter.Day)
	}
	if filter.Game != "" {
		query = query.Where("game = ?", string(filter.Game))
	}
	if filter.Slot != "" {
		query = query.Where("slot = ?", filter.Slot)
	}
	result := query.Delete(&db.Attempt{})
	return result.RowsAffected, result.Error
}

func (l *GormLedger) load(key event.AttemptKey) (db.Attempt, error) {
	var record db.Attempt
	err := l.conn.
		Where("player_id = ? AND day = ? AND game = ? AND slot = ?",
			key.PlayerID, key.Day, string(key.Game), key.Slot).
		First(&record).Error
	return record, err
}

func newRecord(key event.AttemptKey, score int, detail json.RawMessage, contentVersion int64, final bool) db.Attempt {
	return db.Attempt{
		PlayerID:       key.PlayerID,
		Day:            key.Day,
		Game:           string(key.Game),
		Slot:           key.Slot,
		ContentVersion: contentVersion,
		Score:          score,
		Detail:         datatypes.JSON(detail),
		Final:          final,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
