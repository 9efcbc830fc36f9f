// Package persist stores high scores, lifetime statistics and player
// settings. Two backends exist: a YAML file for the local game and
// PostgreSQL for the shared SSH server.
package persist

import (
	"context"
	"fmt"

	"github.com/tomz197/eggs/internal/config"
	"go.uber.org/zap"
)

// LocalPlayer is the player name used by the single-user terminal game.
const LocalPlayer = "local"

// Stats are a player's lifetime statistics.
type Stats struct {
	HighScore       int `yaml:"highScore"`
	TotalEggsTapped int `yaml:"totalEggsTapped"`
	GamesPlayed     int `yaml:"gamesPlayed"`
	BestCombo       int `yaml:"bestCombo"`
}

// Settings are a player's preferences.
type Settings struct {
	SoundEnabled    bool `yaml:"soundEnabled"`
	HapticsEnabled  bool `yaml:"hapticsEnabled"`
	HasSeenTutorial bool `yaml:"hasSeenTutorial"`
}

// DefaultSettings returns the settings of a player that never saved any.
func DefaultSettings() Settings {
	return Settings{SoundEnabled: true, HapticsEnabled: true}
}

// Entry is one leaderboard row.
type Entry struct {
	Player string
	Stats
}

// Store is one player's persistent state. Its first three methods are what
// a game session reports to.
type Store interface {
	LoadHighScore() (int, error)
	UpdateHighScore(score int) (bool, error)
	RecordGameEnd(score, eggsTapped, maxCombo int) error

	Stats() (Stats, error)
	Settings() (Settings, error)
	SaveSettings(s Settings) error
	ResetHighScore() error
	ResetAllStats() error
}

// Backend hands out per-player stores. It is safe for concurrent use.
type Backend interface {
	Player(name string) Store
	Leaderboard(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// Open opens the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (Backend, error) {
	switch cfg.Driver {
	case "file":
		b, err := OpenFile(cfg.Path, log)
		if err != nil {
			return nil, err
		}
		log.Info("using file storage", zap.String("path", cfg.Path))
		return b, nil

	case "postgres":
		db, err := NewDB(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, db.Pool); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("using postgres storage")
		return NewPGBackend(db, cfg.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// mergeGameEnd folds a finished game into st.
func mergeGameEnd(st *Stats, score, eggsTapped, maxCombo int) {
	st.GamesPlayed++
	st.TotalEggsTapped += eggsTapped
	st.BestCombo = max(st.BestCombo, maxCombo)
	st.HighScore = max(st.HighScore, score)
}
