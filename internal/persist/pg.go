package persist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// PGBackend stores players in PostgreSQL so every SSH session shares one
// leaderboard.
type PGBackend struct {
	db      *DB
	timeout time.Duration
}

func NewPGBackend(db *DB, timeout time.Duration) *PGBackend {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &PGBackend{db: db, timeout: timeout}
}

func (b *PGBackend) Player(name string) Store {
	return &pgStore{b: b, name: name}
}

func (b *PGBackend) Leaderboard(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := b.db.Pool.Query(ctx,
		`SELECT name, high_score, total_eggs_tapped, games_played, best_combo
		 FROM players
		 WHERE games_played > 0
		 ORDER BY high_score DESC, name
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Player, &e.HighScore, &e.TotalEggsTapped, &e.GamesPlayed, &e.BestCombo); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (b *PGBackend) Close() error {
	b.db.Close()
	return nil
}

// pgStore scopes every query to one player. Each call gets its own timeout
// since the session interface carries no context.
type pgStore struct {
	b    *PGBackend
	name string
}

func (s *pgStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.b.timeout)
}

func (s *pgStore) LoadHighScore() (int, error) {
	st, err := s.Stats()
	return st.HighScore, err
}

func (s *pgStore) UpdateHighScore(score int) (bool, error) {
	if score <= 0 {
		return false, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	tag, err := s.b.db.Pool.Exec(ctx,
		`INSERT INTO players (name, high_score) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE
		 SET high_score = EXCLUDED.high_score, updated_at = NOW()
		 WHERE players.high_score < EXCLUDED.high_score`,
		s.name, score,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *pgStore) RecordGameEnd(score, eggsTapped, maxCombo int) error {
	ctx, cancel := s.ctx()
	defer cancel()

	tx, err := s.b.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO players (name, high_score, total_eggs_tapped, games_played, best_combo)
		 VALUES ($1, GREATEST($2, 0), $3, 1, $4)
		 ON CONFLICT (name) DO UPDATE SET
		     high_score        = GREATEST(players.high_score, EXCLUDED.high_score),
		     total_eggs_tapped = players.total_eggs_tapped + EXCLUDED.total_eggs_tapped,
		     games_played      = players.games_played + 1,
		     best_combo        = GREATEST(players.best_combo, EXCLUDED.best_combo),
		     updated_at        = NOW()`,
		s.name, score, eggsTapped, maxCombo,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO games (player, score, eggs_tapped, max_combo) VALUES ($1, $2, $3, $4)`,
		s.name, score, eggsTapped, maxCombo,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *pgStore) Stats() (Stats, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var st Stats
	err := s.b.db.Pool.QueryRow(ctx,
		`SELECT high_score, total_eggs_tapped, games_played, best_combo
		 FROM players WHERE name = $1`, s.name,
	).Scan(&st.HighScore, &st.TotalEggsTapped, &st.GamesPlayed, &st.BestCombo)
	if errors.Is(err, pgx.ErrNoRows) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

func (s *pgStore) Settings() (Settings, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var st Settings
	err := s.b.db.Pool.QueryRow(ctx,
		`SELECT sound_enabled, haptics_enabled, has_seen_tutorial
		 FROM players WHERE name = $1`, s.name,
	).Scan(&st.SoundEnabled, &st.HapticsEnabled, &st.HasSeenTutorial)
	if errors.Is(err, pgx.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return DefaultSettings(), err
	}
	return st, nil
}

func (s *pgStore) SaveSettings(st Settings) error {
	ctx, cancel := s.ctx()
	defer cancel()

	_, err := s.b.db.Pool.Exec(ctx,
		`INSERT INTO players (name, sound_enabled, haptics_enabled, has_seen_tutorial)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE SET
		     sound_enabled     = EXCLUDED.sound_enabled,
		     haptics_enabled   = EXCLUDED.haptics_enabled,
		     has_seen_tutorial = EXCLUDED.has_seen_tutorial,
		     updated_at        = NOW()`,
		s.name, st.SoundEnabled, st.HapticsEnabled, st.HasSeenTutorial,
	)
	return err
}

func (s *pgStore) ResetHighScore() error {
	ctx, cancel := s.ctx()
	defer cancel()

	_, err := s.b.db.Pool.Exec(ctx,
		`UPDATE players SET high_score = 0, updated_at = NOW() WHERE name = $1`, s.name)
	return err
}

func (s *pgStore) ResetAllStats() error {
	ctx, cancel := s.ctx()
	defer cancel()

	tx, err := s.b.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE players
		 SET high_score = 0, total_eggs_tapped = 0, games_played = 0, best_combo = 0, updated_at = NOW()
		 WHERE name = $1`, s.name); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM games WHERE player = $1`, s.name); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
