package server

// LeaderboardEntry is one row of the grouped-sum read side.
type LeaderboardEntry struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Total    int    `json:"total"`
	Games    int    `json:"games"`
}

func (s *Server) leaderboard() ([]LeaderboardEntry, error) {
	return s.leaderboardForDay(0)
}

// leaderboardForDay sums scores per player, across the whole event when
// day is zero or for a single day otherwise.
func (s *Server) leaderboardForDay(day int) ([]LeaderboardEntry, error) {
	if s.db == nil {
		return []LeaderboardEntry{}, nil
	}
	var entries []LeaderboardEntry
	err := s.db.Raw(`
		SELECT a.player_id, COALESCE(p.name, a.player_id) AS name,
		       SUM(a.score) AS total, COUNT(*) AS games
		FROM attempts a
		LEFT JOIN players p ON p.id = a.player_id
		WHERE (? = 0 OR a.day = ?)
		GROUP BY a.player_id, p.name
		ORDER BY total DESC, name ASC
		LIMIT 100`, day, day).Scan(&entries).Error
	if entries == nil {
		entries = []LeaderboardEntry{}
	}
	return entries, err
}
