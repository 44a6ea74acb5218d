// Package entries provides the PostgreSQL-backed repository for diary entries.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/swivl/traveldiary/internal/common"
	"github.com/swivl/traveldiary/internal/dbx"
	"github.com/swivl/traveldiary/internal/server/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error) {

	query :=
		`INSERT INTO diary_entries (user_id, location, date, entry)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Location, entry.Date, entry.Entry).Scan(&entry.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.DiaryEntry, error) {
	query :=
		`SELECT id, user_id, location, date, entry FROM diary_entries
		 WHERE id = $1
		 `

	entry := &models.DiaryEntry{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID, &entry.UserID, &entry.Location, &entry.Date, &entry.Entry)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

// Update rewrites location, date and entry text for the row matching id.
// A zero affected-row count means the entry does not exist.
func (r *PostgresRepository) Update(ctx context.Context, id int64, location string, date string, text string) error {
	query :=
		`UPDATE diary_entries SET location = $1, date = $2, entry = $3
		 WHERE id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, location, date, text, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM diary_entries
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}
