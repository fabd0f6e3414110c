// Package entries provides the PostgreSQL-backed repository for diary
// entries, including the filtered/sorted/paginated list query.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wellnessdiary/api/internal/common"
	"github.com/wellnessdiary/api/internal/dbx"
	"github.com/wellnessdiary/api/internal/server/apifeatures"
	"github.com/wellnessdiary/api/internal/server/models"
)

const entryColumns = `id, user_id, entry_date, calories_intake, energy_level, vitamins_taken,
	mood, exercise_time, sleep_quality, water_intake, notes, walk_time, stress_level,
	created_at, updated_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.DiaryEntry, error) {
	e := &models.DiaryEntry{}
	err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.CaloriesIntake, &e.EnergyLevel,
		&e.VitaminsTaken, &e.Mood, &e.ExerciseTime, &e.SleepQuality, &e.WaterIntake,
		&e.Notes, &e.WalkTime, &e.StressLevel, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error) {

	query :=
		`INSERT INTO diary_entries (user_id, entry_date, calories_intake, energy_level,
			vitamins_taken, mood, exercise_time, sleep_quality, water_intake, notes,
			walk_time, stress_level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Date, entry.CaloriesIntake, entry.EnergyLevel,
		entry.VitaminsTaken, entry.Mood, entry.ExerciseTime, entry.SleepQuality,
		entry.WaterIntake, entry.Notes, entry.WalkTime, entry.StressLevel).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.DiaryEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM diary_entries WHERE id = $1`
	return scanEntry(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Update(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error) {

	query :=
		`UPDATE diary_entries SET entry_date = $2, calories_intake = $3, energy_level = $4,
			vitamins_taken = $5, mood = $6, exercise_time = $7, sleep_quality = $8,
			water_intake = $9, notes = $10, walk_time = $11, stress_level = $12,
			updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.Date, entry.CaloriesIntake, entry.EnergyLevel,
		entry.VitaminsTaken, entry.Mood, entry.ExerciseTime, entry.SleepQuality,
		entry.WaterIntake, entry.Notes, entry.WalkTime, entry.StressLevel).
		Scan(&entry.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diary_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// List executes the translated query: the user scope is always the first
// condition, the translator's filters follow, then ordering and the page
// window.
func (r *PostgresRepository) List(ctx context.Context, userID string, q *apifeatures.ListQuery) ([]*models.DiaryEntry, error) {

	where, args := q.Where(2)

	query := `SELECT ` + entryColumns + ` FROM diary_entries WHERE user_id = $1`
	if where != "" {
		query += " AND " + where
	}
	query += " ORDER BY " + q.OrderBy()

	next := 2 + len(args)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", next, next+1)

	queryArgs := append([]any{userID}, args...)
	queryArgs = append(queryArgs, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []*models.DiaryEntry
	for rows.Next() {
		item, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the number of entries matching the same filters as List,
// ignoring the page window.
func (r *PostgresRepository) Count(ctx context.Context, userID string, q *apifeatures.ListQuery) (int64, error) {

	where, args := q.Where(2)

	query := `SELECT COUNT(*) FROM diary_entries WHERE user_id = $1`
	if where != "" {
		query += " AND " + where
	}

	queryArgs := append([]any{userID}, args...)

	var count int64
	if err := r.db.QueryRowContext(ctx, query, queryArgs...).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
