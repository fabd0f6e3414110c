package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/wellnessdiary/api/internal/common"
	"github.com/wellnessdiary/api/internal/dbx"
	"github.com/wellnessdiary/api/internal/server/apifeatures"
	"github.com/wellnessdiary/api/internal/server/config"
	"github.com/wellnessdiary/api/internal/server/models"
	"github.com/wellnessdiary/api/internal/server/repositories/repomanager"
)

// maxNotesLen bounds the free-text notes field.
const maxNotesLen = 500

type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

// EntryUpdate carries a partial edit: nil fields keep their current value.
type EntryUpdate struct {
	Date           *time.Time
	CaloriesIntake *int
	EnergyLevel    *int
	VitaminsTaken  *bool
	Mood           *models.Mood
	ExerciseTime   *int
	SleepQuality   *int
	WaterIntake    *float64
	Notes          *string
	WalkTime       *int
	StressLevel    *int
}

func validateEntry(e *models.DiaryEntry) error {
	if !e.Mood.Valid() {
		return fmt.Errorf("%w: invalid mood %q", common.ErrorValidation, e.Mood)
	}
	if e.CaloriesIntake < 0 {
		return fmt.Errorf("%w: caloriesIntake must not be negative", common.ErrorValidation)
	}
	if e.EnergyLevel < 1 || e.EnergyLevel > 10 {
		return fmt.Errorf("%w: energyLevel must be between 1 and 10", common.ErrorValidation)
	}
	if e.ExerciseTime < 0 {
		return fmt.Errorf("%w: exerciseTime must not be negative", common.ErrorValidation)
	}
	if e.SleepQuality < 1 || e.SleepQuality > 10 {
		return fmt.Errorf("%w: sleepQuality must be between 1 and 10", common.ErrorValidation)
	}
	if e.WaterIntake != nil && *e.WaterIntake < 0 {
		return fmt.Errorf("%w: waterIntake must not be negative", common.ErrorValidation)
	}
	if e.Notes != nil && utf8.RuneCountInString(*e.Notes) > maxNotesLen {
		return fmt.Errorf("%w: notes must not exceed %d characters", common.ErrorValidation, maxNotesLen)
	}
	if e.WalkTime < 0 {
		return fmt.Errorf("%w: walkTime must not be negative", common.ErrorValidation)
	}
	if e.StressLevel != nil && (*e.StressLevel < 1 || *e.StressLevel > 10) {
		return fmt.Errorf("%w: stressLevel must be between 1 and 10", common.ErrorValidation)
	}
	return nil
}

// Create stores a new entry for the given user. An absent date defaults to
// the moment of creation.
func (s *EntryService) Create(ctx context.Context, userID string, entry *models.DiaryEntry) (*models.DiaryEntry, error) {

	entry.UserID = userID
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	repo := s.repomanager.Entries(s.db)

	entry, err := repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	return entry, nil
}

func (s *EntryService) GetByID(ctx context.Context, id string) (*models.DiaryEntry, error) {
	return s.repomanager.Entries(s.db).GetByID(ctx, id)
}

// List translates the raw query parameters and returns one page of the
// user's entries plus the filtered total across all pages.
func (s *EntryService) List(ctx context.Context, userID string, params url.Values) ([]*models.DiaryEntry, int64, error) {

	q, err := apifeatures.Parse(params)
	if err != nil {
		return nil, 0, err
	}

	repo := s.repomanager.Entries(s.db)

	count, err := repo.Count(ctx, userID, q)
	if err != nil {
		return nil, 0, err
	}

	result, err := repo.List(ctx, userID, q)
	if err != nil {
		return nil, 0, err
	}

	return result, count, nil
}

// Update applies a partial edit to the user's own entry. Editing someone
// else's entry is common.ErrorForbidden, distinct from not-found. The
// ownership check and the write run inside one transaction.
func (s *EntryService) Update(ctx context.Context, userID, id string, upd *EntryUpdate) (*models.DiaryEntry, error) {

	var updated *models.DiaryEntry

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		repo := s.repomanager.Entries(tx)

		entry, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if entry.UserID != userID {
			return fmt.Errorf("%w: not authorized to update this entry", common.ErrorForbidden)
		}

		if upd.Date != nil {
			entry.Date = *upd.Date
		}
		if upd.CaloriesIntake != nil {
			entry.CaloriesIntake = *upd.CaloriesIntake
		}
		if upd.EnergyLevel != nil {
			entry.EnergyLevel = *upd.EnergyLevel
		}
		if upd.VitaminsTaken != nil {
			entry.VitaminsTaken = *upd.VitaminsTaken
		}
		if upd.Mood != nil {
			entry.Mood = *upd.Mood
		}
		if upd.ExerciseTime != nil {
			entry.ExerciseTime = *upd.ExerciseTime
		}
		if upd.SleepQuality != nil {
			entry.SleepQuality = *upd.SleepQuality
		}
		if upd.WaterIntake != nil {
			entry.WaterIntake = upd.WaterIntake
		}
		if upd.Notes != nil {
			entry.Notes = upd.Notes
		}
		if upd.WalkTime != nil {
			entry.WalkTime = *upd.WalkTime
		}
		if upd.StressLevel != nil {
			entry.StressLevel = upd.StressLevel
		}

		if err := validateEntry(entry); err != nil {
			return err
		}

		updated, err = repo.Update(ctx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the user's own entry; ownership is checked the same way
// as for updates, inside one transaction with the delete itself.
func (s *EntryService) Delete(ctx context.Context, userID, id string) error {

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		repo := s.repomanager.Entries(tx)

		entry, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if entry.UserID != userID {
			return fmt.Errorf("%w: not authorized to delete this entry", common.ErrorForbidden)
		}

		return repo.Delete(ctx, entry.ID)
	})
}
