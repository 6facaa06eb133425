package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListDeductions(ctx context.Context, activeOnly bool) ([]Deduction, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, calc_type, COALESCE(percentage_rate, 0), COALESCE(fixed_amount, 0),
           applicable_to, salary_range_min, salary_range_max, active
    FROM mandatory_deductions
    WHERE NOT $1 OR active
    ORDER BY name
  `, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Deduction
	for rows.Next() {
		var d Deduction
		if err := rows.Scan(&d.ID, &d.Name, &d.CalcType, &d.PercentageRate, &d.FixedAmount,
			&d.ApplicableTo, &d.SalaryRangeMin, &d.SalaryRangeMax, &d.Active); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (s *Store) CreateDeduction(ctx context.Context, d Deduction) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO mandatory_deductions
      (name, calc_type, percentage_rate, fixed_amount, applicable_to, salary_range_min, salary_range_max, active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, d.Name, d.CalcType, d.PercentageRate, d.FixedAmount, d.ApplicableTo, d.SalaryRangeMin, d.SalaryRangeMax, d.Active).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) DeactivateDeduction(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `UPDATE mandatory_deductions SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDeductionNotFound
	}
	return nil
}

func (s *Store) CreateAdvance(ctx context.Context, a CashAdvance) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO cash_advances (employee_id, amount, remaining_balance, status, reason, requested_at)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, a.EmployeeID, a.Amount, a.RemainingBalance, a.Status, a.Reason, a.RequestedAt).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

const advanceColumns = `id, employee_id, amount, remaining_balance, status, COALESCE(reason, ''),
           requested_at, COALESCE(approved_by::text, ''), approved_at`

func (s *Store) GetAdvance(ctx context.Context, id string) (CashAdvance, error) {
	var a CashAdvance
	err := s.DB.QueryRow(ctx, `
    SELECT `+advanceColumns+`
    FROM cash_advances
    WHERE id = $1
  `, id).Scan(&a.ID, &a.EmployeeID, &a.Amount, &a.RemainingBalance, &a.Status, &a.Reason,
		&a.RequestedAt, &a.ApprovedBy, &a.ApprovedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return CashAdvance{}, ErrAdvanceNotFound
	}
	if err != nil {
		return CashAdvance{}, err
	}
	return a, nil
}

func (s *Store) ListAdvances(ctx context.Context, employeeID string) ([]CashAdvance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+advanceColumns+`
    FROM cash_advances
    WHERE employee_id = $1
    ORDER BY requested_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAdvances(rows)
}

func (s *Store) ListOutstandingAdvances(ctx context.Context, employeeID string) ([]CashAdvance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+advanceColumns+`
    FROM cash_advances
    WHERE employee_id = $1
      AND status IN ($2, $3)
      AND remaining_balance > 0
    ORDER BY requested_at
  `, employeeID, AdvanceApproved, AdvancePartiallyPaid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAdvances(rows)
}

func (s *Store) OutstandingBalance(ctx context.Context, employeeID string) (float64, error) {
	var total float64
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(remaining_balance), 0)
    FROM cash_advances
    WHERE employee_id = $1
      AND status IN ($2, $3)
      AND remaining_balance > 0
  `, employeeID, AdvanceApproved, AdvancePartiallyPaid).Scan(&total)
	return total, err
}

func (s *Store) UpdateAdvanceStatus(ctx context.Context, id, status, approvedBy string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE cash_advances
    SET status = $2,
        approved_by = NULLIF($3, '')::uuid,
        approved_at = CASE WHEN $2 = $4 THEN now() ELSE approved_at END
    WHERE id = $1
  `, id, status, approvedBy, AdvanceApproved)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAdvanceNotFound
	}
	return nil
}

// AddAdvancePayment records one payroll deduction against an advance and
// moves the remaining balance and status in the same transaction.
func (s *Store) AddAdvancePayment(ctx context.Context, advanceID, payrollID string, amount float64) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
    INSERT INTO advance_payments (advance_id, payroll_id, amount)
    VALUES ($1,$2,$3)
  `, advanceID, payrollID, amount); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
    UPDATE cash_advances
    SET remaining_balance = remaining_balance - $2,
        status = CASE WHEN remaining_balance - $2 <= 0 THEN $3 ELSE $4 END
    WHERE id = $1 AND remaining_balance >= $2
  `, advanceID, amount, AdvanceFullyPaid, AdvancePartiallyPaid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAdvanceNotFound
	}

	return tx.Commit(ctx)
}

// ReverseAdvancePayments unwinds every advance settlement recorded against
// the employee's payroll for periodEnd, restoring each advance's balance
// and status before deleting the payment rows. Re-running a period starts
// here so one week's salary is never collected against the same advance
// twice.
func (s *Store) ReverseAdvancePayments(ctx context.Context, employeeID string, periodEnd time.Time) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
    UPDATE cash_advances c
    SET remaining_balance = c.remaining_balance + p.total,
        status = CASE WHEN c.remaining_balance + p.total >= c.amount THEN $3 ELSE $4 END
    FROM (
      SELECT ap.advance_id, SUM(ap.amount) AS total
      FROM advance_payments ap
      JOIN payrolls pr ON pr.id = ap.payroll_id
      WHERE pr.employee_id = $1 AND pr.period_end = $2
      GROUP BY ap.advance_id
    ) p
    WHERE c.id = p.advance_id
  `, employeeID, periodEnd, AdvanceApproved, AdvancePartiallyPaid); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
    DELETE FROM advance_payments ap
    USING payrolls pr
    WHERE pr.id = ap.payroll_id AND pr.employee_id = $1 AND pr.period_end = $2
  `, employeeID, periodEnd); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// PriorYearToDate returns the running net salary total for the employee's
// year as of the period before end. The period ending at end itself is
// excluded, so re-running a week never folds its own earlier row into the
// new total.
func (s *Store) PriorYearToDate(ctx context.Context, employeeID string, end time.Time) (float64, error) {
	var ytd float64
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(MAX(year_to_date), 0)
    FROM payrolls
    WHERE employee_id = $1
      AND EXTRACT(YEAR FROM period_end) = EXTRACT(YEAR FROM $2::date)
      AND period_end < $2
  `, employeeID, end).Scan(&ytd)
	return ytd, err
}

func (s *Store) UpsertRecord(ctx context.Context, rec Record) (string, error) {
	deductionsJSON, err := json.Marshal(rec.Deductions)
	if err != nil {
		return "", err
	}
	summaryJSON, err := json.Marshal(rec.Summary)
	if err != nil {
		return "", err
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO payrolls
      (employee_id, period_start, period_end, summary, basic_salary, overtime_pay, gross_salary,
       deductions, mandatory_total, cash_advance_deduction, total_deductions, net_salary, year_to_date,
       rate_used_daily, rate_used_hourly, rate_used_overtime, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
    ON CONFLICT (employee_id, period_end) DO UPDATE SET
      period_start = EXCLUDED.period_start,
      summary = EXCLUDED.summary,
      basic_salary = EXCLUDED.basic_salary,
      overtime_pay = EXCLUDED.overtime_pay,
      gross_salary = EXCLUDED.gross_salary,
      deductions = EXCLUDED.deductions,
      mandatory_total = EXCLUDED.mandatory_total,
      cash_advance_deduction = EXCLUDED.cash_advance_deduction,
      total_deductions = EXCLUDED.total_deductions,
      net_salary = EXCLUDED.net_salary,
      year_to_date = EXCLUDED.year_to_date,
      rate_used_daily = EXCLUDED.rate_used_daily,
      rate_used_hourly = EXCLUDED.rate_used_hourly,
      rate_used_overtime = EXCLUDED.rate_used_overtime,
      status = EXCLUDED.status
    RETURNING id
  `, rec.EmployeeID, rec.PeriodStart, rec.PeriodEnd, summaryJSON, rec.BasicSalary, rec.OvertimePay,
		rec.GrossSalary, deductionsJSON, rec.MandatoryTotal, rec.CashAdvanceDeduction, rec.TotalDeductions,
		rec.NetSalary, rec.YearToDate, rec.RateUsedDaily, rec.RateUsedHourly, rec.RateUsedOvertime, rec.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

const recordColumns = `id, employee_id, period_start, period_end, summary, basic_salary, overtime_pay,
           gross_salary, deductions, mandatory_total, cash_advance_deduction, total_deductions,
           net_salary, year_to_date, rate_used_daily, rate_used_hourly, rate_used_overtime, status, created_at`

func (s *Store) GetRecord(ctx context.Context, id string) (Record, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM payrolls
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	return rec, err
}

func (s *Store) ListRecords(ctx context.Context, employeeID string, limit, offset int) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+recordColumns+`
    FROM payrolls
    WHERE employee_id = $1
    ORDER BY period_end DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *Store) RecordsForPeriod(ctx context.Context, end time.Time) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+recordColumns+`
    FROM payrolls
    WHERE period_end = $1
    ORDER BY employee_id
  `, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanAdvances(rows pgx.Rows) ([]CashAdvance, error) {
	var list []CashAdvance
	for rows.Next() {
		var a CashAdvance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Amount, &a.RemainingBalance, &a.Status, &a.Reason,
			&a.RequestedAt, &a.ApprovedBy, &a.ApprovedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	var summaryJSON, deductionsJSON []byte
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.PeriodStart, &rec.PeriodEnd, &summaryJSON,
		&rec.BasicSalary, &rec.OvertimePay, &rec.GrossSalary, &deductionsJSON, &rec.MandatoryTotal,
		&rec.CashAdvanceDeduction, &rec.TotalDeductions, &rec.NetSalary, &rec.YearToDate,
		&rec.RateUsedDaily, &rec.RateUsedHourly, &rec.RateUsedOvertime, &rec.Status, &rec.CreatedAt)
	if err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(summaryJSON, &rec.Summary); err != nil {
		return Record{}, err
	}
	if len(deductionsJSON) > 0 {
		if err := json.Unmarshal(deductionsJSON, &rec.Deductions); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

func scanRecords(rows pgx.Rows) ([]Record, error) {
	var list []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
