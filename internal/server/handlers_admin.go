package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"puzzle-week/internal/event"
	"puzzle-week/internal/ledger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type adminContentRequest struct {
	Day     int             `json:"day" binding:"required,eventday"`
	Game    string          `json:"game" binding:"required,game"`
	Slot    string          `json:"slot"`
	Group   string          `json:"group"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

type adminClockRequest struct {
	Day  int    `json:"day" binding:"required,eventday"`
	Slot string `json:"slot"`
}

type adminResetRequest struct {
	PlayerID string `json:"player_id"`
	Day      int    `json:"day"`
	Game     string `json:"game"`
	Slot     string `json:"slot"`
}

type adminPlayerRequest struct {
	Name  string `json:"name" binding:"required"`
	Group string `json:"group"`
}

func (s *Server) adminRouter() http.Handler {
	registerValidators()
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requireAdminKey)

	admin := router.Group("/admin")
	admin.POST("/content", s.handleAdminUpsertContent)
	admin.GET("/clock", s.handleAdminGetClock)
	admin.PUT("/clock", s.handleAdminSetClock)
	admin.POST("/attempts/reset", s.handleAdminResetAttempts)
	admin.POST("/players", s.handleAdminCreatePlayer)
	admin.GET("/players", s.handleAdminListPlayers)
	return router
}

// requireAdminKey gates every operator route on the shared admin key.
func (s *Server) requireAdminKey(c *gin.Context) {
	provided := c.GetHeader("X-Admin-Key")
	if s.cfg.AdminKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(s.cfg.AdminKey)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin key required"})
		return
	}
	c.Next()
}

func (s *Server) handleAdminUpsertContent(c *gin.Context) {
	var req adminContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	clock := event.Clock{Day: req.Day, Slot: req.Slot}
	version, err := s.content.Upsert(clock, event.Game(req.Game), event.AudienceGroup(req.Group), req.Payload)
	if err != nil {
		ginDomainError(c, err)
		return
	}
	s.recordAdminEvent("content_upserted", map[string]any{
		"day": req.Day, "game": req.Game, "slot": req.Slot, "group": req.Group, "version": version,
	})
	log.Info().Int("day", req.Day).Str("game", req.Game).Int64("version", version).Msg("content replaced")
	c.JSON(http.StatusCreated, gin.H{"version": version})
}

func (s *Server) handleAdminGetClock(c *gin.Context) {
	clock, err := s.clock.Current()
	if err != nil {
		ginDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, clock)
}

func (s *Server) handleAdminSetClock(c *gin.Context) {
	var req adminClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	clock := event.Clock{Day: req.Day, Slot: req.Slot}
	if err := s.clock.Set(clock); err != nil {
		ginDomainError(c, err)
		return
	}
	s.recordAdminEvent("clock_set", map[string]any{"day": req.Day, "slot": req.Slot})
	c.JSON(http.StatusOK, clock)
}

func (s *Server) handleAdminResetAttempts(c *gin.Context) {
	var req adminResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter := ledger.Filter{PlayerID: req.PlayerID, Day: req.Day, Game: event.Game(req.Game), Slot: req.Slot}
	removed, err := s.ledger.Reset(filter)
	if err != nil {
		ginDomainError(c, err)
		return
	}
	s.recordAdminEvent("attempts_reset", map[string]any{
		"player_id": req.PlayerID, "day": req.Day, "game": req.Game, "removed": removed,
	})
	log.Info().Int64("removed", removed).Str("player", req.PlayerID).Msg("attempts reset")
	go s.broadcastLeaderboard()
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (s *Server) handleAdminCreatePlayer(c *gin.Context) {
	var req adminPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	player, err := s.players.Register(req.Name, event.AudienceGroup(req.Group))
	if err != nil {
		ginDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"player_id": player.ID,
		"name":      player.Name,
		"group":     player.AudienceGroup,
	})
}

func (s *Server) handleAdminListPlayers(c *gin.Context) {
	players, err := s.players.List()
	if err != nil {
		ginDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

func (s *Server) recordAdminEvent(kind string, payload map[string]any) {
	if s.db == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.persistAdminEvent(kind, raw); err != nil {
		log.Warn().Err(err).Str("type", kind).Msg("admin event not recorded")
	}
}

func ginDomainError(c *gin.Context, err error) {
	switch {
	case event.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case event.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case event.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Msg("admin request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
