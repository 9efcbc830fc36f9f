package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type fileDoc struct {
	Players map[string]*playerRecord `yaml:"players"`
}

type playerRecord struct {
	Stats    Stats    `yaml:"stats"`
	Settings Settings `yaml:"settings"`
}

// FileBackend keeps every player in one YAML document. Several processes
// may share the file: reads pick up the file again when it changed on disk,
// and every mutation reloads, applies and rewrites it under an exclusive
// lock on a sibling ".lock" file. Rewrites go through a temp file and a
// rename.
type FileBackend struct {
	mu   sync.Mutex
	path string
	doc  fileDoc
	info fs.FileInfo // file as last loaded or saved; nil when absent
	log  *zap.Logger
}

// OpenFile loads the document at path. A missing file starts empty.
func OpenFile(path string, log *zap.Logger) (*FileBackend, error) {
	b := &FileBackend{
		path: path,
		doc:  emptyDoc(),
		log:  log,
	}
	if err := b.load(); err != nil {
		return nil, err
	}
	return b, nil
}

func emptyDoc() fileDoc {
	return fileDoc{Players: make(map[string]*playerRecord)}
}

// load reads the document from disk unconditionally.
func (b *FileBackend) load() error {
	info, err := os.Stat(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		b.doc, b.info = emptyDoc(), nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat store %s: %w", b.path, err)
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		return fmt.Errorf("read store %s: %w", b.path, err)
	}
	doc := emptyDoc()
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse store %s: %w", b.path, err)
	}
	if doc.Players == nil {
		doc.Players = make(map[string]*playerRecord)
	}
	b.doc, b.info = doc, info
	return nil
}

// refresh reloads the document if another writer replaced the file since
// it was last seen.
func (b *FileBackend) refresh() error {
	info, err := os.Stat(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		if b.info != nil {
			b.doc, b.info = emptyDoc(), nil
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat store %s: %w", b.path, err)
	}
	if b.info != nil && os.SameFile(b.info, info) &&
		b.info.ModTime().Equal(info.ModTime()) && b.info.Size() == info.Size() {
		return nil
	}
	return b.load()
}

// Player returns the store for name.
func (b *FileBackend) Player(name string) Store {
	return &fileStore{b: b, name: name}
}

// Leaderboard returns players ordered by high score.
func (b *FileBackend) Leaderboard(_ context.Context, limit int) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.refresh(); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(b.doc.Players))
	for name, rec := range b.doc.Players {
		entries = append(entries, Entry{Player: name, Stats: rec.Stats})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].HighScore != entries[j].HighScore {
			return entries[i].HighScore > entries[j].HighScore
		}
		return entries[i].Player < entries[j].Player
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Close implements Backend. Writes are never buffered.
func (b *FileBackend) Close() error { return nil }

// view returns a copy of the player's record. If the file cannot be read
// the last loaded copy is served.
func (b *FileBackend) view(name string) (playerRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.refresh()
	if err != nil {
		b.log.Warn("reload store", zap.String("path", b.path), zap.Error(err))
	}
	if rec, ok := b.doc.Players[name]; ok {
		return *rec, err
	}
	return playerRecord{Settings: DefaultSettings()}, err
}

// update applies fn to the player's record in the current on-disk document
// and saves it while holding the file lock.
func (b *FileBackend) update(name string, fn func(*playerRecord)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	unlock, err := lockFile(b.path + ".lock")
	if err != nil {
		return fmt.Errorf("lock store %s: %w", b.path, err)
	}
	defer unlock()

	if err := b.load(); err != nil {
		return err
	}
	rec, ok := b.doc.Players[name]
	if !ok {
		rec = &playerRecord{Settings: DefaultSettings()}
		b.doc.Players[name] = rec
	}
	fn(rec)
	return b.save()
}

func (b *FileBackend) save() error {
	data, err := yaml.Marshal(&b.doc)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".eggs-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("replace store %s: %w", b.path, err)
	}
	if info, err := os.Stat(b.path); err == nil {
		b.info = info
	}
	b.log.Debug("store saved", zap.String("path", b.path), zap.Int("players", len(b.doc.Players)))
	return nil
}

type fileStore struct {
	b    *FileBackend
	name string
}

func (s *fileStore) LoadHighScore() (int, error) {
	rec, err := s.b.view(s.name)
	return rec.Stats.HighScore, err
}

func (s *fileStore) UpdateHighScore(score int) (bool, error) {
	if rec, err := s.b.view(s.name); err == nil && score <= rec.Stats.HighScore {
		return false, nil
	}
	isNew := false
	err := s.b.update(s.name, func(rec *playerRecord) {
		if score > rec.Stats.HighScore {
			rec.Stats.HighScore = score
			isNew = true
		}
	})
	return isNew, err
}

func (s *fileStore) RecordGameEnd(score, eggsTapped, maxCombo int) error {
	return s.b.update(s.name, func(rec *playerRecord) {
		mergeGameEnd(&rec.Stats, score, eggsTapped, maxCombo)
	})
}

func (s *fileStore) Stats() (Stats, error) {
	rec, err := s.b.view(s.name)
	return rec.Stats, err
}

func (s *fileStore) Settings() (Settings, error) {
	rec, err := s.b.view(s.name)
	return rec.Settings, err
}

func (s *fileStore) SaveSettings(settings Settings) error {
	return s.b.update(s.name, func(rec *playerRecord) {
		rec.Settings = settings
	})
}

func (s *fileStore) ResetHighScore() error {
	return s.b.update(s.name, func(rec *playerRecord) {
		rec.Stats.HighScore = 0
	})
}

func (s *fileStore) ResetAllStats() error {
	return s.b.update(s.name, func(rec *playerRecord) {
		rec.Stats = Stats{}
	})
}
