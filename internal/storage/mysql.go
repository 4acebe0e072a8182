package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"caserun/internal/config"
	"caserun/internal/domain"

	"github.com/go-sql-driver/mysql"
)

const (
	runsTable     = "caserun_runs"
	failuresTable = "caserun_failures"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS ` + runsTable + ` (
	run_id CHAR(36) NOT NULL PRIMARY KEY,
	candidate VARCHAR(1024) NOT NULL,
	function_name VARCHAR(255) NOT NULL,
	test_dir VARCHAR(1024) NOT NULL,
	total_cases INT NOT NULL,
	passed_cases INT NOT NULL,
	failed_cases INT NOT NULL,
	duration_seconds DOUBLE NOT NULL,
	created_at DATETIME(6) NOT NULL,
	INDEX idx_created_at (created_at)
)`,
	`CREATE TABLE IF NOT EXISTS ` + failuresTable + ` (
	run_id CHAR(36) NOT NULL,
	position INT NOT NULL,
	case_id VARCHAR(1024) NOT NULL,
	input_path TEXT NOT NULL,
	output_path TEXT NOT NULL,
	kind VARCHAR(32) NOT NULL,
	reason TEXT NOT NULL,
	expected MEDIUMTEXT NOT NULL,
	actual MEDIUMTEXT NOT NULL,
	diff MEDIUMTEXT NOT NULL,
	resolved BOOLEAN NOT NULL DEFAULT FALSE,
	PRIMARY KEY (run_id, position)
)`,
}

// MySQLStorage stores results in two MySQL tables, one row per run and one per failure.
type MySQLStorage struct {
	dsn string
	db  *sql.DB
}

// NewMySQLStorage validates the configured DSN. The connection is opened on first use.
func NewMySQLStorage(cfg *config.Config) (*MySQLStorage, error) {
	dsn, err := normalizeDSN(cfg.MySQLDSN)
	if err != nil {
		return nil, err
	}
	return &MySQLStorage{dsn: dsn}, nil
}

// normalizeDSN parses dsn and forces parseTime so DATETIME columns scan into time.Time
func normalizeDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("mysql storage requires a DSN")
	}
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql DSN: %w", err)
	}
	if mc.DBName == "" {
		return "", fmt.Errorf("mysql DSN must name a database")
	}
	mc.ParseTime = true
	return mc.FormatDSN(), nil
}

func (s *MySQLStorage) open() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := sql.Open("mysql", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create results tables: %w", err)
		}
	}
	s.db = db
	return db, nil
}

// Close releases the database connection, if one was opened
func (s *MySQLStorage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Save inserts the run and its failures in one transaction.
func (s *MySQLStorage) Save(run RunInfo, results []domain.CaseResult, duration time.Duration) error {
	now := time.Now()
	output := BuildOutput(run, results, duration, now)

	db, err := s.open()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	meta := output.Meta
	_, err = tx.Exec(`INSERT INTO `+runsTable+`
		(run_id, candidate, function_name, test_dir, total_cases, passed_cases, failed_cases, duration_seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.RunID, meta.Candidate, meta.Function, meta.TestDir,
		meta.TotalCases, meta.PassedCases, meta.FailedCases, meta.DurationSeconds, now.UTC())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, f := range output.Details {
		_, err = tx.Exec(`INSERT INTO `+failuresTable+`
			(run_id, position, case_id, input_path, output_path, kind, reason, expected, actual, diff, resolved)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			meta.RunID, i, f.CaseID, f.InputPath, f.OutputPath, string(f.Kind),
			f.Reason, f.Expected, f.Actual, f.Diff, f.Resolved)
		if err != nil {
			return fmt.Errorf("insert failure %s: %w", f.CaseID, err)
		}
	}
	return tx.Commit()
}

// Load returns the most recent run.
func (s *MySQLStorage) Load() (*domain.TestResultsOutput, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}

	var (
		meta      domain.TestResultsMeta
		createdAt time.Time
	)
	row := db.QueryRow(`SELECT run_id, candidate, function_name, test_dir, total_cases, passed_cases, failed_cases, duration_seconds, created_at
		FROM ` + runsTable + ` ORDER BY created_at DESC LIMIT 1`)
	err = row.Scan(&meta.RunID, &meta.Candidate, &meta.Function, &meta.TestDir,
		&meta.TotalCases, &meta.PassedCases, &meta.FailedCases, &meta.DurationSeconds, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoResults
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	meta.Duration = time.Duration(meta.DurationSeconds * float64(time.Second)).String()
	meta.Timestamp = createdAt.Format(time.RFC3339)

	rows, err := db.Query(`SELECT case_id, input_path, output_path, kind, reason, expected, actual, diff, resolved
		FROM `+failuresTable+` WHERE run_id = ? ORDER BY position`, meta.RunID)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	details := make([]domain.TestFailure, 0, meta.FailedCases)
	for rows.Next() {
		var (
			f    domain.TestFailure
			kind string
		)
		if err := rows.Scan(&f.CaseID, &f.InputPath, &f.OutputPath, &kind, &f.Reason,
			&f.Expected, &f.Actual, &f.Diff, &f.Resolved); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		f.Kind = domain.FailureKind(kind)
		details = append(details, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read failures: %w", err)
	}

	return &domain.TestResultsOutput{Meta: meta, Details: details}, nil
}

// SaveOutput persists the resolved flags of output's failures. Other fields are immutable once saved.
func (s *MySQLStorage) SaveOutput(output *domain.TestResultsOutput) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, f := range output.Details {
		_, err := tx.Exec(`UPDATE `+failuresTable+` SET resolved = ? WHERE run_id = ? AND position = ?`,
			f.Resolved, output.Meta.RunID, i)
		if err != nil {
			return fmt.Errorf("update failure %s: %w", f.CaseID, err)
		}
	}
	return tx.Commit()
}
