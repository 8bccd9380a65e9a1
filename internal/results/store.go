// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paperfetch/pkg/types"
)

const defaultDBPath = "data/paperfetch.db"

// Store is the SQLite resolution log. Every finished resolution is
// appended; nothing is ever updated in place, so the log doubles as an
// audit trail of what each run decided.
type Store struct {
	db *sql.DB
}

// Open opens or creates the resolution log, creating the schema when
// missing.
func Open(cfg types.ResultsConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resolutions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			paper_title TEXT NOT NULL,
			source_url TEXT,
			arxiv_id TEXT,
			arxiv_title TEXT,
			arxiv_url TEXT,
			similarity REAL,
			reason TEXT,
			strategy INTEGER,
			manual INTEGER NOT NULL DEFAULT 0,
			direct_download INTEGER NOT NULL DEFAULT 0,
			downloaded INTEGER NOT NULL DEFAULT 0,
			pdf_path TEXT,
			error TEXT,
			resolved_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resolutions_title ON resolutions(paper_title)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one resolution outcome to the log.
func (s *Store) Record(res types.ResolutionResult) error {
	var (
		arxivID, arxivTitle, arxivURL string
		similarity                    sql.NullFloat64
		reason                        sql.NullString
	)
	if res.Match != nil {
		arxivID = res.Match.ID
		arxivTitle = res.Match.Title
		arxivURL = res.Match.EntryURL
	}
	if res.Decision != nil {
		similarity = sql.NullFloat64{Float64: res.Decision.Similarity, Valid: true}
		reason = sql.NullString{String: string(res.Decision.Reason), Valid: true}
	}
	resolvedAt := res.ResolvedAt
	if resolvedAt.IsZero() {
		resolvedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO resolutions (
			paper_title, source_url, arxiv_id, arxiv_title, arxiv_url,
			similarity, reason, strategy, manual, direct_download,
			downloaded, pdf_path, error, resolved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Paper.Title, res.Paper.SourceURL, arxivID, arxivTitle, arxivURL,
		similarity, reason, res.StrategyIndex, res.Manual, res.DirectDownload,
		res.Downloaded, res.PDFPath, res.Err, resolvedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording resolution: %w", err)
	}
	return nil
}

// RecordBatch appends a whole batch, stopping at the first failure.
func (s *Store) RecordBatch(results []types.ResolutionResult) error {
	for _, res := range results {
		if err := s.Record(res); err != nil {
			return err
		}
	}
	return nil
}

// FailedPapers returns the papers whose most recent logged attempt ended
// in an error, in first-seen order.
func (s *Store) FailedPapers() ([]types.RequestedPaper, error) {
	rows, err := s.db.Query(
		`SELECT paper_title, source_url FROM resolutions r
		 WHERE rowid = (SELECT MAX(rowid) FROM resolutions WHERE paper_title = r.paper_title)
		   AND error != ''
		 ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying failed papers: %w", err)
	}
	defer rows.Close()

	var papers []types.RequestedPaper
	for rows.Next() {
		var p types.RequestedPaper
		if err := rows.Scan(&p.Title, &p.SourceURL); err != nil {
			return nil, fmt.Errorf("scanning failed paper: %w", err)
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// Recent returns the most recent log entries, newest first.
func (s *Store) Recent(limit int) ([]types.ResolutionResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT paper_title, source_url, arxiv_id, arxiv_title, arxiv_url,
		        similarity, reason, strategy, manual, direct_download,
		        downloaded, pdf_path, error, resolved_at
		 FROM resolutions ORDER BY rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying resolutions: %w", err)
	}
	defer rows.Close()

	var out []types.ResolutionResult
	for rows.Next() {
		var (
			res                           types.ResolutionResult
			arxivID, arxivTitle, arxivURL string
			similarity                    sql.NullFloat64
			reason                        sql.NullString
			resolvedAt                    string
		)
		if err := rows.Scan(
			&res.Paper.Title, &res.Paper.SourceURL, &arxivID, &arxivTitle, &arxivURL,
			&similarity, &reason, &res.StrategyIndex, &res.Manual, &res.DirectDownload,
			&res.Downloaded, &res.PDFPath, &res.Err, &resolvedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning resolution: %w", err)
		}
		if arxivID != "" || arxivTitle != "" {
			res.Match = &types.Candidate{ID: arxivID, Title: arxivTitle, EntryURL: arxivURL}
		}
		if reason.Valid {
			res.Decision = &types.MatchDecision{
				Accepted:   res.Match != nil,
				Similarity: similarity.Float64,
				Reason:     types.MatchReason(reason.String),
			}
		}
		if t, err := time.Parse(time.RFC3339, resolvedAt); err == nil {
			res.ResolvedAt = t
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
