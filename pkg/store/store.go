package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-roadmap/pkg/model"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// savedAtLayout has a fixed width so saved_at sorts lexically.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z"

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

var (
	// ErrNotFound is returned when no roadmap has the requested id.
	ErrNotFound = errors.New("store: roadmap not found")
	// ErrEmptyRoadmap rejects records without a title.
	ErrEmptyRoadmap = errors.New("store: roadmap has no title")
)

const schema = `
CREATE TABLE IF NOT EXISTS roadmaps (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	timeline TEXT NOT NULL,
	input_json TEXT NOT NULL,
	roadmap_json TEXT NOT NULL,
	saved_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_roadmaps_saved_at ON roadmaps(saved_at);
`

// Record is one saved roadmap.
type Record struct {
	ID      string          `json:"id"`
	Input   model.FormInput `json:"input"`
	Roadmap model.Roadmap   `json:"roadmap"`
	SavedAt time.Time       `json:"savedAt"`
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now for SavedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the uuid based record ids.
func WithIDGenerator(next func() string) Option {
	return func(s *Store) {
		if next != nil {
			s.newID = next
		}
	}
}

// Store persists roadmaps in SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Open creates or opens the database at path and applies the schema.
func Open(ctx context.Context, path string, options ...Option) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: database path is required")
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// SQLite allows one writer; an in-memory database only exists on its
	// own connection.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:     db,
		path:   path,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if err := s.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	if s.path != MemoryPath {
		if _, err := s.db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
			return fmt.Errorf("store: enable wal: %w", err)
		}
	}
	if _, err := s.db.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
		return fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: apply schema: %w", err)
	}
	return nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores roadmap together with the input that produced it and returns
// the new record id.
func (s *Store) Save(ctx context.Context, input model.FormInput, roadmap model.Roadmap) (string, error) {
	if strings.TrimSpace(roadmap.Title) == "" {
		return "", ErrEmptyRoadmap
	}

	inputJSON, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("store: encode input: %w", err)
	}
	roadmapJSON, err := json.Marshal(roadmap.Normalize())
	if err != nil {
		return "", fmt.Errorf("store: encode roadmap: %w", err)
	}

	id := s.newID()
	savedAt := s.now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO roadmaps (id, title, timeline, input_json, roadmap_json, saved_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, roadmap.Title, roadmap.Timeline, string(inputJSON), string(roadmapJSON), savedAt.Format(savedAtLayout),
	)
	if err != nil {
		return "", fmt.Errorf("store: insert roadmap: %w", err)
	}

	s.logger.Debug("roadmap saved", zap.String("id", id), zap.String("title", roadmap.Title))
	return id, nil
}

// Get returns the record with id or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, input_json, roadmap_json, saved_at FROM roadmaps WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return record, err
}

// List returns the most recently saved records first. A limit <= 0 uses
// DefaultListLimit.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_json, roadmap_json, saved_at FROM roadmaps ORDER BY saved_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list roadmaps: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list roadmaps: %w", err)
	}
	return out, nil
}

// Delete removes the record with id or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM roadmaps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete roadmap: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete roadmap: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		record      Record
		inputJSON   string
		roadmapJSON string
		savedAt     string
	)
	if err := row.Scan(&record.ID, &inputJSON, &roadmapJSON, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("store: scan roadmap: %w", err)
	}
	if err := json.Unmarshal([]byte(inputJSON), &record.Input); err != nil {
		return Record{}, fmt.Errorf("store: decode input %s: %w", record.ID, err)
	}
	if err := json.Unmarshal([]byte(roadmapJSON), &record.Roadmap); err != nil {
		return Record{}, fmt.Errorf("store: decode roadmap %s: %w", record.ID, err)
	}
	ts, err := time.Parse(savedAtLayout, savedAt)
	if err != nil {
		return Record{}, fmt.Errorf("store: parse saved_at %s: %w", record.ID, err)
	}
	record.SavedAt = ts
	return record, nil
}
