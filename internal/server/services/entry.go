package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/swivl/traveldiary/internal/common"
	"github.com/swivl/traveldiary/internal/server/models"
	"github.com/swivl/traveldiary/internal/server/repositories/repomanager"
)

// EntryService provides CRUD over diary entries. Every operation takes the
// authenticated caller's ID and refuses to touch entries owned by anyone else.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewEntryService constructs an EntryService bound to the shared DB handle.
func NewEntryService(db *sql.DB, m repomanager.RepositoryManager) *EntryService {
	return &EntryService{db: db, repomanager: m}
}

// Create inserts a new diary entry. The entry's UserID must match the caller.
func (s *EntryService) Create(ctx context.Context, callerID int64, entry *models.DiaryEntry) (*models.DiaryEntry, error) {
	if entry.UserID != callerID {
		return nil, common.ErrForbidden
	}
	repo := s.repomanager.Entries(s.db)
	e, err := repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}
	return e, nil
}

// Get fetches an entry by ID. Absent rows yield ErrNotFound; rows owned by a
// different user yield ErrForbidden.
func (s *EntryService) Get(ctx context.Context, id, callerID int64) (*models.DiaryEntry, error) {
	repo := s.repomanager.Entries(s.db)
	entry, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != callerID {
		return nil, common.ErrForbidden
	}
	return entry, nil
}

// Update rewrites location, date and text of an entry the caller owns.
// Ownership requires a fetch first, so the operation is two statements.
func (s *EntryService) Update(ctx context.Context, id, callerID int64, location, date, text string) error {
	if _, err := s.Get(ctx, id, callerID); err != nil {
		return err
	}
	repo := s.repomanager.Entries(s.db)
	return repo.Update(ctx, id, location, date, text)
}

// Delete removes an entry the caller owns.
func (s *EntryService) Delete(ctx context.Context, id, callerID int64) error {
	if _, err := s.Get(ctx, id, callerID); err != nil {
		return err
	}
	repo := s.repomanager.Entries(s.db)
	return repo.Delete(ctx, id)
}
