package server

import (
	"encoding/json"

	"puzzle-week/internal/db"

	"gorm.io/datatypes"
)

func (s *Server) persistAdminEvent(kind string, payload json.RawMessage) error {
	if s.db == nil {
		return nil
	}
	record := db.AdminEvent{
		Type:    kind,
		Payload: datatypes.JSON(payload),
	}
	return s.db.Create(&record).Error
}
