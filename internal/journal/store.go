package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"mutablerig/internal/config"
	"mutablerig/internal/switcher"
)

// Store manages transfer persistence backed by SQLite. It implements
// switcher.Recorder.
type Store struct {
	db          *sql.DB
	path        string
	recordPoses bool
}

// Open initializes or connects to the journal database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.JournalPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, recordPoses: cfg.Switcher.RecordPoses}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the journal database file.
func (s *Store) Path() string {
	return s.path
}

// RecordTransfer appends a completed switch to the journal.
func (s *Store) RecordTransfer(ctx context.Context, transfer switcher.Transfer) error {
	var poseJSON any
	if s.recordPoses {
		data, err := json.Marshal(transfer.Pose)
		if err != nil {
			return fmt.Errorf("marshal pose: %w", err)
		}
		poseJSON = string(data)
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO transfers (
            transfer_id, frame, from_rig, to_rig, pose_json, created_at
        ) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		transfer.Frame,
		transfer.FromRig,
		transfer.ToRig,
		poseJSON,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// List returns journal entries ordered oldest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM transfers ORDER BY id`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Latest returns the most recent journal entry, or nil when the journal is empty.
func (s *Store) Latest(ctx context.Context) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM transfers ORDER BY id DESC LIMIT 1`)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest transfer: %w", err)
	}
	return entry, nil
}

// Count returns the number of recorded transfers.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM transfers`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count transfers: %w", err)
	}
	return count, nil
}

// Stats aggregates journal contents grouped by destination rig.
func (s *Store) Stats(ctx context.Context) (Summary, error) {
	summary := Summary{ByToRig: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx, `SELECT to_rig, COUNT(1) FROM transfers GROUP BY to_rig`)
	if err != nil {
		return summary, fmt.Errorf("journal stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var toRig string
		var count int
		if err := rows.Scan(&toRig, &count); err != nil {
			return summary, err
		}
		summary.ByToRig[toRig] = count
		summary.Total += count
	}
	if err := rows.Err(); err != nil {
		return summary, err
	}

	if summary.Total > 0 {
		var firstRaw, lastRaw string
		row := s.db.QueryRowContext(ctx, `SELECT MIN(created_at), MAX(created_at) FROM transfers`)
		if err := row.Scan(&firstRaw, &lastRaw); err != nil {
			return summary, fmt.Errorf("journal time range: %w", err)
		}
		if first, err := parseTimeString(firstRaw); err == nil {
			summary.FirstAt = first
		}
		if last, err := parseTimeString(lastRaw); err == nil {
			summary.LastAt = last
		}
	}
	return summary, nil
}

// Clear removes all recorded transfers.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transfers`)
	if err != nil {
		return 0, fmt.Errorf("clear journal: %w", err)
	}
	return res.RowsAffected()
}

// CheckHealth returns diagnostic information about the journal database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("journal database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			health.DatabaseExists = false
			return health, nil
		}
		return health, fmt.Errorf("stat journal database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("journal database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("journal database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping journal database: %w", err)
	}
	health.DatabaseReadable = true

	var tableName string
	row := s.db.QueryRowContext(connCtx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'transfers'")
	if err := row.Scan(&tableName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			health.TableExists = false
		} else {
			health.Error = err.Error()
			return health, fmt.Errorf("query table info: %w", err)
		}
	} else {
		health.TableExists = true
	}

	if health.TableExists {
		row = s.db.QueryRowContext(connCtx, "SELECT COUNT(*) FROM transfers")
		if err := row.Scan(&health.TotalTransfers); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("count transfers: %w", err)
		}
	}

	row = s.db.QueryRowContext(connCtx, "PRAGMA integrity_check")
	var integrityResult string
	if err := row.Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}

const entryColumns = "id, transfer_id, frame, from_rig, to_rig, pose_json, created_at"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id         int64
		transferID string
		frame      float64
		fromRig    string
		toRig      string
		poseJSON   sql.NullString
		createdRaw string
	)

	if err := scanner.Scan(&id, &transferID, &frame, &fromRig, &toRig, &poseJSON, &createdRaw); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:         id,
		TransferID: transferID,
		Frame:      frame,
		FromRig:    fromRig,
		ToRig:      toRig,
		PoseJSON:   poseJSON.String,
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		entry.CreatedAt = created
	}
	return entry, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
