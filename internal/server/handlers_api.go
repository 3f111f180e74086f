package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"puzzle-week/internal/content"
	"puzzle-week/internal/event"
	"puzzle-week/internal/ledger"
	"puzzle-week/internal/puzzle"
	"puzzle-week/internal/scoring"

	"github.com/rs/zerolog/log"
)

type playRequest struct {
	PlayerID       string          `json:"player_id"`
	Day            int             `json:"day"`
	Game           string          `json:"game"`
	Slot           string          `json:"slot,omitempty"`
	ContentVersion int64           `json:"content_version,omitempty"`
	Answers        []int           `json:"answers,omitempty"`
	UnitsCompleted int             `json:"units_completed,omitempty"`
	Detail         json.RawMessage `json:"detail,omitempty"`
}

type legacySubmitRequest struct {
	PlayerID string  `json:"player_id"`
	Day      int     `json:"day"`
	Game     string  `json:"game"`
	Points   float64 `json:"points"`
}

type contentResponse struct {
	Version         int64           `json:"version"`
	Payload         json.RawMessage `json:"payload"`
	Seed            string          `json:"seed,omitempty"`
	GridSize        int             `json:"grid_size,omitempty"`
	DurationSeconds int             `json:"duration_seconds,omitempty"`
}

type statusResponse struct {
	Submitted bool `json:"submitted"`
	Score     int  `json:"score"`
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	clock, err := s.requestClock(r)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	game, err := event.ParseGame(r.URL.Query().Get("game"))
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	group := event.AudienceGroup(r.URL.Query().Get("group"))
	if group.General() {
		if playerID := r.URL.Query().Get("player_id"); playerID != "" {
			group, err = s.players.Group(playerID)
			if err != nil {
				writeDomainError(w, err, nil)
				return
			}
		}
	}

	resolved, err := s.content.Resolve(clock, game, group)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	response, err := s.contentResponse(clock, game, resolved)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// contentResponse attaches the derived generation parameters. The seed is
// all a client needs to rebuild a word-search grid or jigsaw edge map;
// the solved state never crosses the wire. Quiz answers are scrubbed.
func (s *Server) contentResponse(clock event.Clock, game event.Game, resolved content.Resolved) (contentResponse, error) {
	response := contentResponse{Version: resolved.Version, Payload: resolved.Payload}
	switch game {
	case event.GameQuiz:
		scrubbed, err := scrubQuizPayload(resolved.Payload)
		if err != nil {
			return contentResponse{}, err
		}
		response.Payload = scrubbed
	case event.GameWordSearch:
		var payload content.WordSearchPayload
		if err := json.Unmarshal(resolved.Payload, &payload); err != nil {
			return contentResponse{}, err
		}
		size := payload.GridSize
		if size == 0 {
			size = s.cfg.WordSearchGridSize
		}
		response.GridSize = size
		response.Seed = puzzle.Seed(clock.Day, game, resolved.Version, puzzle.WordMaterial(payload.Words))
	case event.GameJigsaw:
		var payload content.JigsawPayload
		if err := json.Unmarshal(resolved.Payload, &payload); err != nil {
			return contentResponse{}, err
		}
		duration := payload.DurationSeconds
		if duration == 0 {
			duration = s.cfg.JigsawDurationSeconds
		}
		response.DurationSeconds = duration
		response.Seed = puzzle.Seed(clock.Day, game, resolved.Version, fmt.Sprintf("%dx%d", payload.Rows, payload.Cols))
	}
	return response, nil
}

// scrubQuizPayload strips correct answers before a quiz goes to players.
func scrubQuizPayload(raw json.RawMessage) (json.RawMessage, error) {
	var payload content.QuizPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	type servedQuestion struct {
		Prompt  string   `json:"prompt"`
		Options []string `json:"options"`
	}
	served := struct {
		Questions []servedQuestion `json:"questions"`
	}{Questions: make([]servedQuestion, len(payload.Questions))}
	for i, q := range payload.Questions {
		served.Questions[i] = servedQuestion{Prompt: q.Prompt, Options: q.Options}
	}
	return json.Marshal(served)
}

func (s *Server) handleAttemptStatus(w http.ResponseWriter, r *http.Request) {
	key, err := s.requestKey(r)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	status, err := s.ledger.Status(key)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Submitted: status.Final, Score: status.Score})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	s.handlePlay(w, r, false)
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	s.handlePlay(w, r, true)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request, final bool) {
	var req playRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	game, err := event.ParseGame(req.Game)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	key := event.AttemptKey{PlayerID: req.PlayerID, Day: req.Day, Game: game, Slot: req.Slot}
	if err := key.Validate(); err != nil {
		writeDomainError(w, err, nil)
		return
	}

	score, version, err := s.scorePlay(key, game, req)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}

	var result ledger.Result
	if final {
		result, err = s.ledger.Finalize(key, score, req.Detail, version)
	} else {
		result, err = s.ledger.RecordProgress(key, score, req.Detail, version)
	}
	if err != nil {
		writeDomainError(w, err, result)
		return
	}
	log.Info().Str("key", key.String()).Int("score", result.Score).Bool("final", result.Final).Msg("attempt recorded")
	go s.broadcastLeaderboard()
	writeJSON(w, http.StatusOK, result)
}

// scorePlay computes the candidate score server-side from the submitted
// play result and the content the player was served. Clamping means a
// tampered payload can at worst claim a full clean solve, never more.
func (s *Server) scorePlay(key event.AttemptKey, game event.Game, req playRequest) (int, int64, error) {
	group, err := s.players.Group(key.PlayerID)
	if err != nil {
		return 0, 0, err
	}
	clock := event.Clock{Day: key.Day, Slot: key.Slot}
	resolved, err := s.content.Resolve(clock, game, group)
	if err != nil {
		return 0, 0, err
	}

	switch game {
	case event.GameQuiz:
		// Answers only score against the exact version the player was
		// served; replaced content must not let late answers use the
		// newer key.
		if req.ContentVersion != resolved.Version {
			log.Warn().Str("key", key.String()).
				Int64("played", req.ContentVersion).Int64("current", resolved.Version).
				Msg("quiz answers for a replaced content version scored zero")
			return 0, resolved.Version, nil
		}
		var payload content.QuizPayload
		if err := json.Unmarshal(resolved.Payload, &payload); err != nil {
			return 0, 0, err
		}
		correct := make([]int, len(payload.Questions))
		for i, q := range payload.Questions {
			correct[i] = q.CorrectIndex
		}
		return scoring.Quiz(req.Answers, correct, s.cfg.QuizPointsPerAnswer), resolved.Version, nil

	case event.GameWordSearch:
		var payload content.WordSearchPayload
		if err := json.Unmarshal(resolved.Payload, &payload); err != nil {
			return 0, 0, err
		}
		rule := scoring.UnitRule{
			PointsPerUnit: orDefault(payload.PointsPerWord, s.cfg.UnitPointsDefault),
			UnitsMax:      len(payload.Words),
			Cap:           payload.Cap,
			Hard:          s.cfg.ScoreHardCap,
		}
		return scoring.Units(req.UnitsCompleted, rule), resolved.Version, nil

	case event.GameJigsaw:
		var payload content.JigsawPayload
		if err := json.Unmarshal(resolved.Payload, &payload); err != nil {
			return 0, 0, err
		}
		rule := scoring.UnitRule{
			PointsPerUnit: orDefault(payload.PointsPerPiece, s.cfg.UnitPointsDefault),
			UnitsMax:      payload.Rows * payload.Cols,
			Cap:           payload.Cap,
			Hard:          s.cfg.ScoreHardCap,
		}
		return scoring.Units(req.UnitsCompleted, rule), resolved.Version, nil

	case event.GameCrossword:
		var payload content.CrosswordPayload
		if err := json.Unmarshal(resolved.Payload, &payload); err != nil {
			return 0, 0, err
		}
		rule := scoring.UnitRule{
			PointsPerUnit: orDefault(payload.PointsPerClue, s.cfg.UnitPointsDefault),
			UnitsMax:      len(payload.Clues),
			Cap:           payload.Cap,
			Hard:          s.cfg.ScoreHardCap,
		}
		return scoring.Units(req.UnitsCompleted, rule), resolved.Version, nil
	}
	return 0, 0, fmt.Errorf("%w: unknown game %q", event.ErrValidation, game)
}

func (s *Server) handleLegacySubmit(w http.ResponseWriter, r *http.Request) {
	var req legacySubmitRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	game, err := event.ParseGame(req.Game)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	key := event.AttemptKey{PlayerID: req.PlayerID, Day: req.Day, Game: game}
	if err := key.Validate(); err != nil {
		writeDomainError(w, err, nil)
		return
	}

	result, err := s.ledger.RecordProgress(key, scoring.LegacyPoints(req.Points, s.cfg.ScoreHardCap), nil, 0)
	if err != nil {
		writeDomainError(w, err, result)
		return
	}
	go s.broadcastLeaderboard()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	day := 0
	if raw := r.URL.Query().Get("day"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > event.MaxDay {
			writeError(w, http.StatusBadRequest, "invalid day")
			return
		}
		day = parsed
	}
	entries, err := s.leaderboardForDay(day)
	if err != nil {
		writeDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "day": day})
}

// requestClock reads day/slot from the query, defaulting to the event's
// current clock when the day is omitted.
func (s *Server) requestClock(r *http.Request) (event.Clock, error) {
	query := r.URL.Query()
	if query.Get("day") == "" {
		clock, err := s.clock.Current()
		if err != nil {
			return event.Clock{}, err
		}
		if slot := query.Get("slot"); slot != "" {
			clock.Slot = slot
		}
		return clock, clock.Validate()
	}
	day, err := strconv.Atoi(query.Get("day"))
	if err != nil {
		return event.Clock{}, fmt.Errorf("%w: day must be a number", event.ErrValidation)
	}
	clock := event.Clock{Day: day, Slot: query.Get("slot")}
	return clock, clock.Validate()
}

func (s *Server) requestKey(r *http.Request) (event.AttemptKey, error) {
	clock, err := s.requestClock(r)
	if err != nil {
		return event.AttemptKey{}, err
	}
	game, err := event.ParseGame(r.URL.Query().Get("game"))
	if err != nil {
		return event.AttemptKey{}, err
	}
	key := event.AttemptKey{
		PlayerID: r.URL.Query().Get("player_id"),
		Day:      clock.Day,
		Game:     game,
		Slot:     clock.Slot,
	}
	return key, key.Validate()
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
