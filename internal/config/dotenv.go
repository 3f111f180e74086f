package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	QuizPointsPerAnswer      int
	UnitPointsDefault        int
	ScoreHardCap             int
	JigsawDurationSeconds    int
	WordSearchGridSize       int
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	AdminKey                 string
}

func Default() Config {
	return Config{
		QuizPointsPerAnswer:      10,
		UnitPointsDefault:        5,
		ScoreHardCap:             500,
		JigsawDurationSeconds:    300,
		WordSearchGridSize:       12,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("QUIZ_POINTS_PER_ANSWER"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.QuizPointsPerAnswer = value
		}
	}
	if raw := os.Getenv("UNIT_POINTS_DEFAULT"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.UnitPointsDefault = value
		}
	}
	if raw := os.Getenv("SCORE_HARD_CAP"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.ScoreHardCap = value
		}
	}
	if raw := os.Getenv("JIGSAW_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.JigsawDurationSeconds = value
		}
	}
	if raw := os.Getenv("WORDSEARCH_GRID_SIZE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 5 {
			cfg.WordSearchGridSize = value
		}
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	if raw := os.Getenv("ADMIN_KEY"); raw != "" {
		cfg.AdminKey = raw
	}
	return cfg
}
