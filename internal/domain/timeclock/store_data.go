package timeclock

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) Insert(ctx context.Context, rec TimeRecord) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO time_records (employee_id, work_date, time_in, time_out, closure_kind, notes)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, rec.EmployeeID, rec.Date, rec.TimeIn, rec.TimeOut, rec.ClosureKind, rec.Notes).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (TimeRecord, error) {
	var rec TimeRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, work_date, time_in, time_out, COALESCE(closure_kind, ''), COALESCE(notes, '')
    FROM time_records
    WHERE id = $1
  `, id).Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.TimeIn, &rec.TimeOut, &rec.ClosureKind, &rec.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return TimeRecord{}, ErrShiftNotFound
	}
	if err != nil {
		return TimeRecord{}, err
	}
	return rec, nil
}

func (s *Store) CloseShift(ctx context.Context, id string, out time.Time, closureKind, notes string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE time_records
    SET time_out = $2, closure_kind = $3, notes = $4
    WHERE id = $1 AND time_out IS NULL
  `, id, out, closureKind, notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoOpenShift
	}
	return nil
}

func (s *Store) OpenShift(ctx context.Context, employeeID string) (TimeRecord, error) {
	var rec TimeRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, work_date, time_in, time_out, COALESCE(closure_kind, ''), COALESCE(notes, '')
    FROM time_records
    WHERE employee_id = $1 AND time_in IS NOT NULL AND time_out IS NULL
    ORDER BY time_in DESC
    LIMIT 1
  `, employeeID).Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.TimeIn, &rec.TimeOut, &rec.ClosureKind, &rec.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return TimeRecord{}, ErrNoOpenShift
	}
	if err != nil {
		return TimeRecord{}, err
	}
	return rec, nil
}

func (s *Store) ListOpenShifts(ctx context.Context) ([]TimeRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, work_date, time_in, time_out, COALESCE(closure_kind, ''), COALESCE(notes, '')
    FROM time_records
    WHERE time_in IS NOT NULL AND time_out IS NULL
    ORDER BY time_in
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]TimeRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, work_date, time_in, time_out, COALESCE(closure_kind, ''), COALESCE(notes, '')
    FROM time_records
    WHERE employee_id = $1 AND work_date BETWEEN $2 AND $3
    ORDER BY work_date
  `, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *Store) HistorySince(ctx context.Context, employeeID string, since time.Time) ([]TimeRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, work_date, time_in, time_out, COALESCE(closure_kind, ''), COALESCE(notes, '')
    FROM time_records
    WHERE employee_id = $1 AND work_date >= $2
    ORDER BY work_date
  `, employeeID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]TimeRecord, error) {
	var records []TimeRecord
	for rows.Next() {
		var rec TimeRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.TimeIn, &rec.TimeOut, &rec.ClosureKind, &rec.Notes); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
