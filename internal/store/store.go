// Package store persists analysis results per client and dispute round. The
// engine knows nothing about this layer; it receives finished
// AnalysisResults and keys them by (client_id, round_number, created_at), as
// the persistence collaborator contract requires.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/credlens/credlens/internal/logging"
	"github.com/credlens/credlens/internal/model"

	_ "modernc.org/sqlite" // SQLite driver
)

// ErrNotFound is returned when no stored analysis matches the query.
var ErrNotFound = errors.New("analysis not found")

// createdAtLayout is RFC 3339 with a fixed nine-digit fraction. RFC3339Nano
// trims trailing zeros, which breaks the lexicographic ordering the TEXT
// column relies on ("...:00Z" would sort after "...:00.5Z").
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Config holds store settings.
type Config struct {
	// Path is the SQLite database file. The parent directory is created if
	// missing.
	Path string
}

// RunSummary is the queryable header of one stored analysis.
type RunSummary struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id"`
	RoundNumber    int       `json:"round_number"`
	Fingerprint    string    `json:"fingerprint"`
	Strategy       string    `json:"strategy"`
	Degraded       bool      `json:"degraded"`
	Score          int       `json:"score"`
	ViolationCount int       `json:"violation_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// StoredAnalysis is a summary plus the full result.
type StoredAnalysis struct {
	RunSummary
	Result *model.AnalysisResult `json:"result"`
}

// Store is the SQLite-backed persistence layer.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id              TEXT PRIMARY KEY,
	client_id       TEXT NOT NULL,
	round_number    INTEGER NOT NULL,
	fingerprint     TEXT NOT NULL,
	strategy        TEXT NOT NULL,
	degraded        INTEGER NOT NULL,
	score           INTEGER NOT NULL,
	violation_count INTEGER NOT NULL,
	created_at      TEXT NOT NULL,
	result_json     BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_client_round ON analyses(client_id, round_number);
CREATE INDEX IF NOT EXISTS idx_analyses_fingerprint ON analyses(fingerprint);
`

// Open opens (creating if needed) the analysis store at cfg.Path.
func Open(cfg *Config, logger logging.Logger) (*Store, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, errors.New("store: empty database path")
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	logger = logger.With(logging.Field{Key: "component", Value: "store"})

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA foreign_keys=ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: setting pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: applying schema: %w", err)
	}

	logger.Info("analysis store opened", logging.Field{Key: "path", Value: cfg.Path})
	return &Store{db: db, logger: logger}, nil
}

// SaveResult stores one finished analysis and returns its row ID.
func (s *Store) SaveResult(ctx context.Context, clientID string, round int, res *model.AnalysisResult) (string, error) {
	if clientID == "" {
		return "", errors.New("store: empty client id")
	}
	if res == nil {
		return "", errors.New("store: nil result")
	}

	blob, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("store: marshaling result: %w", err)
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(createdAtLayout)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, client_id, round_number, fingerprint, strategy, degraded, score, violation_count, created_at, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, clientID, round, res.Fingerprint, res.Strategy,
		boolToInt(res.Degraded), res.Score.Score, len(res.Violations), createdAt, blob,
	)
	if err != nil {
		return "", fmt.Errorf("store: inserting analysis: %w", err)
	}

	s.logger.Info("analysis saved",
		logging.Field{Key: "id", Value: id},
		logging.Field{Key: "client_id", Value: clientID},
		logging.Field{Key: "round", Value: round},
		logging.Field{Key: "score", Value: res.Score.Score})
	return id, nil
}

// GetResult loads one stored analysis by row ID.
func (s *Store) GetResult(ctx context.Context, id string) (*StoredAnalysis, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_id, round_number, fingerprint, strategy, degraded, score, violation_count, created_at, result_json
		FROM analyses WHERE id = ?`, id)
	return scanStored(row)
}

// ListRuns returns run summaries for a client, newest round first then newest
// run first, so dispute-round history reads top-down.
func (s *Store) ListRuns(ctx context.Context, clientID string) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_id, round_number, fingerprint, strategy, degraded, score, violation_count, created_at
		FROM analyses WHERE client_id = ?
		ORDER BY round_number DESC, created_at DESC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("store: listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var degraded int
		var createdAt string
		if err := rows.Scan(&r.ID, &r.ClientID, &r.RoundNumber, &r.Fingerprint, &r.Strategy, &degraded, &r.Score, &r.ViolationCount, &createdAt); err != nil {
			return nil, fmt.Errorf("store: scanning run: %w", err)
		}
		r.Degraded = degraded != 0
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// FindByFingerprint returns the latest stored analysis of the exact same
// document for a client, or ErrNotFound. Safe as a cache key because the
// engine is idempotent.
func (s *Store) FindByFingerprint(ctx context.Context, clientID, fingerprint string) (*StoredAnalysis, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_id, round_number, fingerprint, strategy, degraded, score, violation_count, created_at, result_json
		FROM analyses WHERE client_id = ? AND fingerprint = ?
		ORDER BY created_at DESC LIMIT 1`, clientID, fingerprint)
	return scanStored(row)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanStored(row *sql.Row) (*StoredAnalysis, error) {
	var sa StoredAnalysis
	var degraded int
	var createdAt string
	var blob []byte
	err := row.Scan(&sa.ID, &sa.ClientID, &sa.RoundNumber, &sa.Fingerprint, &sa.Strategy, &degraded, &sa.Score, &sa.ViolationCount, &createdAt, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scanning analysis: %w", err)
	}
	sa.Degraded = degraded != 0
	sa.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	var res model.AnalysisResult
	if err := json.Unmarshal(blob, &res); err != nil {
		return nil, fmt.Errorf("store: unmarshaling result: %w", err)
	}
	sa.Result = &res
	return &sa, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
