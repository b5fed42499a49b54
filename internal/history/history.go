package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/productdesk/internal/migrations"
	"github.com/studiowebux/productdesk/internal/types"
)

// Timestamps are stored in UTC
const timestampLayout = "2006-01-02 15:04:05.000"

// Manager stores the API call log in SQLite
type Manager struct {
	db *sql.DB
}

// OperationStats aggregates the calls of one operation
type OperationStats struct {
	Operation     string
	Total         int
	Failed        int
	AvgDurationMs float64
	MaxDurationMs int64
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// One writer at a time; API calls record from many goroutines
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Record stores one call. It satisfies api.Recorder.
func (m *Manager) Record(rec types.CallRecord) error {
	query := `
		INSERT INTO history (
			request_id, timestamp, operation, method, url,
			status_code, duration_ms, request_size, response_size, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := m.db.Exec(query,
		rec.RequestID,
		ts.UTC().Format(timestampLayout),
		rec.Operation,
		rec.Method,
		rec.URL,
		rec.Status,
		rec.Duration,
		rec.RequestSize,
		rec.ResponseSize,
		nullIfEmpty(rec.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// Recent returns up to limit calls, newest first. limit <= 0 returns everything.
func (m *Manager) Recent(limit int) ([]types.CallRecord, error) {
	query := `
		SELECT id, request_id, timestamp, operation, method, url,
		       status_code, duration_ms, request_size, response_size, error
		FROM history
		ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]types.CallRecord, error) {
	var records []types.CallRecord

	for rows.Next() {
		var rec types.CallRecord
		var timestamp string
		var errorMsg sql.NullString

		err := rows.Scan(
			&rec.ID,
			&rec.RequestID,
			&timestamp,
			&rec.Operation,
			&rec.Method,
			&rec.URL,
			&rec.Status,
			&rec.Duration,
			&rec.RequestSize,
			&rec.ResponseSize,
			&errorMsg,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		// The driver hands DATETIME columns back as RFC3339
		parsed, err := time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			parsed, _ = time.ParseInLocation(timestampLayout, timestamp, time.UTC)
		}
		rec.Timestamp = parsed.Local()
		rec.Error = errorMsg.String

		records = append(records, rec)
	}

	return records, rows.Err()
}

// Stats aggregates the log per operation, sorted by operation name
func (m *Manager) Stats() ([]OperationStats, error) {
	query := `
		SELECT operation,
		       COUNT(*),
		       SUM(CASE WHEN error IS NOT NULL THEN 1 ELSE 0 END),
		       AVG(duration_ms),
		       MAX(duration_ms)
		FROM history
		GROUP BY operation
		ORDER BY operation
	`

	rows, err := m.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compute history stats: %w", err)
	}
	defer rows.Close()

	var stats []OperationStats
	for rows.Next() {
		var s OperationStats
		if err := rows.Scan(&s.Operation, &s.Total, &s.Failed, &s.AvgDurationMs, &s.MaxDurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan history stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM history")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
