package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one successful upload.
type Entry struct {
	LocalPath  string
	RemoteURL  string
	Hash       string
	Size       int64
	RunID      string
	UploadedAt time.Time
}

// Journal is an append-mostly log of uploads. It is an audit trail only;
// nothing reads it back to skip uploads.
type Journal struct {
	db    *sql.DB
	runID string
}

func Open(dbPath string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", dbPath, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS upload_log (
		local_path TEXT PRIMARY KEY,
		remote_url TEXT NOT NULL,
		file_hash TEXT,
		file_size INTEGER,
		run_id TEXT,
		uploaded_at INTEGER
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Journal{db: db, runID: uuid.NewString()}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// RunID identifies the rows written through this handle.
func (j *Journal) RunID() string {
	return j.runID
}

func (j *Journal) RecordUpload(localPath, remoteURL, hash string, size int64) error {
	_, err := j.db.Exec(`
		INSERT INTO upload_log (local_path, remote_url, file_hash, file_size, run_id, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(local_path) DO UPDATE SET
			remote_url = excluded.remote_url,
			file_hash = excluded.file_hash,
			file_size = excluded.file_size,
			run_id = excluded.run_id,
			uploaded_at = excluded.uploaded_at
	`, localPath, remoteURL, hash, size, j.runID, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record upload of %s: %w", localPath, err)
	}
	return nil
}

// List returns the most recent uploads first. limit <= 0 returns all.
func (j *Journal) List(limit int) ([]Entry, error) {
	query := "SELECT local_path, remote_url, file_hash, file_size, run_id, uploaded_at FROM upload_log ORDER BY uploaded_at DESC, local_path"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var hash, runID sql.NullString
		var size, at sql.NullInt64
		if err := rows.Scan(&e.LocalPath, &e.RemoteURL, &hash, &size, &runID, &at); err != nil {
			return nil, fmt.Errorf("failed to read upload log: %w", err)
		}
		e.Hash = hash.String
		e.Size = size.Int64
		e.RunID = runID.String
		e.UploadedAt = time.Unix(0, at.Int64)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Reset deletes the entry for targetPath, or every entry when targetPath is
// empty, and returns the number of rows removed.
func (j *Journal) Reset(targetPath string) (int64, error) {
	var res sql.Result
	var err error
	if targetPath != "" {
		res, err = j.db.Exec("DELETE FROM upload_log WHERE local_path = ?", targetPath)
	} else {
		res, err = j.db.Exec("DELETE FROM upload_log")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to reset history: %w", err)
	}
	return res.RowsAffected()
}
