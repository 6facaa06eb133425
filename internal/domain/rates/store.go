package rates

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Current(ctx context.Context) (Schedule, error) {
	var schedule Schedule
	err := s.DB.QueryRow(ctx, `
    SELECT id, daily_rate, hourly_rate, overtime_rate, effective_date, active, COALESCE(reason, '')
    FROM salary_rates
    WHERE active = true
    ORDER BY effective_date DESC
    LIMIT 1
  `).Scan(&schedule.ID, &schedule.DailyRate, &schedule.HourlyRate, &schedule.OvertimeRate, &schedule.EffectiveDate, &schedule.Active, &schedule.Reason)
	if errors.Is(err, pgx.ErrNoRows) {
		return Schedule{}, ErrRateNotFound
	}
	if err != nil {
		return Schedule{}, err
	}
	return schedule, nil
}

// Replace deactivates the current schedule and installs a new one in a
// single transaction. Prior rows are kept for the audit trail.
func (s *Store) Replace(ctx context.Context, schedule Schedule) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "UPDATE salary_rates SET active = false WHERE active = true"); err != nil {
		return "", err
	}

	var id string
	err = tx.QueryRow(ctx, `
    INSERT INTO salary_rates (daily_rate, hourly_rate, overtime_rate, effective_date, active, reason)
    VALUES ($1,$2,$3,$4,true,$5)
    RETURNING id
  `, schedule.DailyRate, schedule.HourlyRate, schedule.OvertimeRate, schedule.EffectiveDate, schedule.Reason).Scan(&id)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) History(ctx context.Context, limit int) ([]Schedule, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, daily_rate, hourly_rate, overtime_rate, effective_date, active, COALESCE(reason, '')
    FROM salary_rates
    ORDER BY effective_date DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		var schedule Schedule
		if err := rows.Scan(&schedule.ID, &schedule.DailyRate, &schedule.HourlyRate, &schedule.OvertimeRate, &schedule.EffectiveDate, &schedule.Active, &schedule.Reason); err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return schedules, rows.Err()
}
