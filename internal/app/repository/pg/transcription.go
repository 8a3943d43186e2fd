package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

// Store persists transcription records in the remote `transcriptions` table:
//
//	transcriptions(id uuid primary key, name text, filename text,
//	               date text, text text, language text, created_at timestamp)
//
// Serialization of concurrent writers is left to Postgres.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Add(ctx context.Context, record model.TranscriptionRecord) (string, error) {
	const insertSQL = `
		INSERT INTO transcriptions (id, name, filename, date, text, language, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, insertSQL,
		record.ID, record.Name, record.Filename, record.Date,
		record.Text, record.Language, record.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("insert failed: %w", err)
	}
	return record.ID, nil
}

func (s *Store) GetAll(ctx context.Context) ([]model.TranscriptionRecord, error) {
	const querySQL = `
		SELECT id, name, filename, date, text, language, created_at
		FROM transcriptions
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, querySQL)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transcriptions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete failed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete failed: %w", err)
	}
	return affected > 0, nil
}

func (s *Store) ClearAll(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transcriptions`)
	if err != nil {
		return 0, fmt.Errorf("clear failed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear failed: %w", err)
	}
	return int(affected), nil
}

func (s *Store) Search(ctx context.Context, query string) ([]model.TranscriptionRecord, error) {
	const searchSQL = `
		SELECT id, name, filename, date, text, language, created_at
		FROM transcriptions
		WHERE name ILIKE $1 OR text ILIKE $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, searchSQL, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func scanRecords(rows *sql.Rows) ([]model.TranscriptionRecord, error) {
	records := make([]model.TranscriptionRecord, 0)
	for rows.Next() {
		var r model.TranscriptionRecord
		err := rows.Scan(&r.ID, &r.Name, &r.Filename, &r.Date, &r.Text, &r.Language, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}
