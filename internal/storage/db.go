package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"invoiceflow/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  inputFile TEXT NOT NULL,
  pdfFile TEXT,
  outputFile TEXT,
  totalDue TEXT,
  groupCount INTEGER NOT NULL DEFAULT 0,
  rowCount INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL,
  error TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE INDEX IF NOT EXISTS idx_jobs_createdAt ON jobs(createdAt);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertJob(job internal.JobRecord) error {
	_, err := d.conn.Exec(`
INSERT INTO jobs (traceId, inputFile, pdfFile, outputFile, totalDue, groupCount, rowCount, status, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, job.TraceID, job.InputFile, job.PDFFile, job.OutputFile, job.TotalDue, job.Groups, job.Rows, job.Status, job.Error)
	return err
}

func (d *DB) ListJobs(limit int) ([]internal.JobRecord, error) {
	rows, err := d.conn.Query(`
SELECT id, traceId, inputFile, pdfFile, outputFile, totalDue, groupCount, rowCount, status, error, createdAt
FROM jobs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.JobRecord
	for rows.Next() {
		var job internal.JobRecord
		if err := rows.Scan(
			&job.ID, &job.TraceID, &job.InputFile, &job.PDFFile, &job.OutputFile,
			&job.TotalDue, &job.Groups, &job.Rows, &job.Status, &job.Error, &job.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func (d *DB) GetJobByTraceID(traceID string) (*internal.JobRecord, error) {
	var job internal.JobRecord
	err := d.conn.QueryRow(`
SELECT id, traceId, inputFile, pdfFile, outputFile, totalDue, groupCount, rowCount, status, error, createdAt
FROM jobs WHERE traceId = ?
`, traceID).Scan(
		&job.ID, &job.TraceID, &job.InputFile, &job.PDFFile, &job.OutputFile,
		&job.TotalDue, &job.Groups, &job.Rows, &job.Status, &job.Error, &job.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}
