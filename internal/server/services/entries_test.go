package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/wellnessdiary/api/internal/common"
	"github.com/wellnessdiary/api/internal/server/apifeatures"
	"github.com/wellnessdiary/api/internal/server/config"
	"github.com/wellnessdiary/api/internal/server/models"
)

type fakeEntriesRepo struct {
	entries map[string]*models.DiaryEntry

	listOut  []*models.DiaryEntry
	countOut int64
	lastQ    *apifeatures.ListQuery

	deleted []string
}

func (f *fakeEntriesRepo) Create(ctx context.Context, e *models.DiaryEntry) (*models.DiaryEntry, error) {
	e.ID = "e-1"
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	if f.entries == nil {
		f.entries = map[string]*models.DiaryEntry{}
	}
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeEntriesRepo) GetByID(ctx context.Context, id string) (*models.DiaryEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (f *fakeEntriesRepo) Update(ctx context.Context, e *models.DiaryEntry) (*models.DiaryEntry, error) {
	if _, ok := f.entries[e.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	e.UpdatedAt = time.Now()
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeEntriesRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.entries, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEntriesRepo) List(ctx context.Context, userID string, q *apifeatures.ListQuery) ([]*models.DiaryEntry, error) {
	f.lastQ = q
	return f.listOut, nil
}

func (f *fakeEntriesRepo) Count(ctx context.Context, userID string, q *apifeatures.ListQuery) (int64, error) {
	return f.countOut, nil
}

// newEntryService wires the service to a stateful fake repository. The
// sqlmock handle backs the transaction around Update and Delete; tests for
// those set Begin/Commit/Rollback expectations on the returned mock.
func newEntryService(t *testing.T, repo *fakeEntriesRepo) (*EntryService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewEntryService(db, &fakeRepoManager{e: repo}, &config.Config{}), mock
}

func validEntry() *models.DiaryEntry {
	return &models.DiaryEntry{
		CaloriesIntake: 2000,
		EnergyLevel:    7,
		VitaminsTaken:  true,
		Mood:           models.MoodHappy,
		ExerciseTime:   30,
		SleepQuality:   8,
	}
}

func TestEntryCreate_DefaultsDate(t *testing.T) {
	repo := &fakeEntriesRepo{}
	s, _ := newEntryService(t, repo)

	entry, err := s.Create(context.Background(), "u-1", validEntry())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if entry.UserID != "u-1" {
		t.Errorf("owner = %q, want u-1", entry.UserID)
	}
	if entry.Date.IsZero() {
		t.Error("date must default to the moment of creation")
	}
}

func TestEntryCreate_KeepsSuppliedDate(t *testing.T) {
	repo := &fakeEntriesRepo{}
	s, _ := newEntryService(t, repo)

	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	e := validEntry()
	e.Date = date

	entry, err := s.Create(context.Background(), "u-1", e)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !entry.Date.Equal(date) {
		t.Errorf("date = %v, want %v", entry.Date, date)
	}
}

func TestEntryCreate_Validation(t *testing.T) {
	s, _ := newEntryService(t, &fakeEntriesRepo{})

	tests := []struct {
		name   string
		mutate func(e *models.DiaryEntry)
	}{
		{"invalid mood", func(e *models.DiaryEntry) { e.Mood = "furious" }},
		{"negative calories", func(e *models.DiaryEntry) { e.CaloriesIntake = -1 }},
		{"energy out of range", func(e *models.DiaryEntry) { e.EnergyLevel = 11 }},
		{"sleep out of range", func(e *models.DiaryEntry) { e.SleepQuality = 0 }},
		{"negative water", func(e *models.DiaryEntry) { w := -0.5; e.WaterIntake = &w }},
		{"stress out of range", func(e *models.DiaryEntry) { v := 0; e.StressLevel = &v }},
		{"notes over 500 characters", func(e *models.DiaryEntry) { n := strings.Repeat("x", 501); e.Notes = &n }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(e)
			_, err := s.Create(context.Background(), "u-1", e)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("expected common.ErrorValidation, got %v", err)
			}
		})
	}
}

func TestEntryCreate_NotesLimitCountsCharacters(t *testing.T) {
	// The 500 limit is characters, not bytes: 300 CJK characters are 900
	// bytes of UTF-8 and must still be accepted.
	s, _ := newEntryService(t, &fakeEntriesRepo{})

	notes := strings.Repeat("日", 300)
	e := validEntry()
	e.Notes = &notes

	if _, err := s.Create(context.Background(), "u-1", e); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	long := strings.Repeat("日", 501)
	e = validEntry()
	e.Notes = &long

	if _, err := s.Create(context.Background(), "u-1", e); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation, got %v", err)
	}
}

func TestEntryList_TranslatesParamsAndReturnsFilteredTotal(t *testing.T) {
	repo := &fakeEntriesRepo{listOut: []*models.DiaryEntry{{ID: "e-1"}}, countOut: 42}
	s, _ := newEntryService(t, repo)

	result, count, err := s.List(context.Background(), "u-1", url.Values{"mood": {"happy"}, "limit": {"5"}})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if count != 42 {
		t.Errorf("count = %d, want the filtered total 42", count)
	}
	if len(result) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if repo.lastQ == nil || repo.lastQ.Limit != 5 {
		t.Errorf("translated query not passed through: %+v", repo.lastQ)
	}
}

func TestEntryList_RejectsUnknownFilter(t *testing.T) {
	s, _ := newEntryService(t, &fakeEntriesRepo{})

	_, _, err := s.List(context.Background(), "u-1", url.Values{"favouriteColor": {"blue"}})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation, got %v", err)
	}
}

func TestEntryUpdate_PartialApply(t *testing.T) {
	repo := &fakeEntriesRepo{}
	s, mock := newEntryService(t, repo)

	created, err := s.Create(context.Background(), "u-1", validEntry())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	mood := models.MoodTired
	updated, err := s.Update(context.Background(), "u-1", created.ID, &EntryUpdate{Mood: &mood})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Mood != models.MoodTired {
		t.Errorf("mood = %q, want tired", updated.Mood)
	}
	if updated.CaloriesIntake != 2000 || updated.SleepQuality != 8 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("transaction expectations: %v", err)
	}
}

func TestEntryUpdate_OwnerMismatch(t *testing.T) {
	repo := &fakeEntriesRepo{}
	s, mock := newEntryService(t, repo)

	created, err := s.Create(context.Background(), "u-1", validEntry())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()

	mood := models.MoodSad
	_, err = s.Update(context.Background(), "u-2", created.ID, &EntryUpdate{Mood: &mood})
	if !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("expected common.ErrorForbidden, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("transaction expectations: %v", err)
	}
}

func TestEntryUpdate_ValidatesResult(t *testing.T) {
	repo := &fakeEntriesRepo{}
	s, mock := newEntryService(t, repo)

	created, err := s.Create(context.Background(), "u-1", validEntry())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()

	bad := 0
	_, err = s.Update(context.Background(), "u-1", created.ID, &EntryUpdate{EnergyLevel: &bad})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation, got %v", err)
	}
}

func TestEntryDelete(t *testing.T) {
	repo := &fakeEntriesRepo{}
	s, mock := newEntryService(t, repo)

	created, err := s.Create(context.Background(), "u-1", validEntry())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()
	if err := s.Delete(context.Background(), "u-2", created.ID); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("expected common.ErrorForbidden, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	if err := s.Delete(context.Background(), "u-1", created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != created.ID {
		t.Errorf("deleted = %v", repo.deleted)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()
	if err := s.Delete(context.Background(), "u-1", created.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("transaction expectations: %v", err)
	}
}
