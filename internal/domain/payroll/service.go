package payroll

import (
	"context"
	"log/slog"
	"time"

	"timepay/internal/domain/employees"
	"timepay/internal/domain/money"
	"timepay/internal/domain/rates"
	"timepay/internal/domain/timeclock"
)

type EmployeeSource interface {
	GetByID(ctx context.Context, id string) (employees.Employee, error)
	ListActive(ctx context.Context) ([]employees.Employee, error)
}

type AttendanceSource interface {
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timeclock.TimeRecord, error)
}

type Service struct {
	store      StoreAPI
	employees  EmployeeSource
	attendance AttendanceSource
	rates      timeclock.RateSource
	rules      timeclock.Rules
	loc        *time.Location
}

func NewService(
	store StoreAPI,
	employeeSource EmployeeSource,
	attendance AttendanceSource,
	rateSource timeclock.RateSource,
	rules timeclock.Rules,
	loc *time.Location,
) *Service {
	return &Service{
		store:      store,
		employees:  employeeSource,
		attendance: attendance,
		rates:      rateSource,
		rules:      rules,
		loc:        loc,
	}
}

// RunResult reports one bulk payroll run.
type RunResult struct {
	PeriodEnd time.Time `json:"periodEnd"`
	Processed int       `json:"processed"`
	Failed    int       `json:"failed"`
	TotalNet  float64   `json:"totalNet"`
}

// RunPeriod calculates payroll for every active employee for the week
// ending on end. The end date must be a Sunday. Failures for individual
// employees are logged and counted but do not abort the run.
func (s *Service) RunPeriod(ctx context.Context, end time.Time) (RunResult, error) {
	end = startOfDay(end.In(s.loc))
	if end.Weekday() != time.Sunday {
		return RunResult{}, ErrPeriodEndNotSunday
	}

	staff, err := s.employees.ListActive(ctx)
	if err != nil {
		return RunResult{}, err
	}
	rate, err := s.rates.Current(ctx)
	if err != nil {
		return RunResult{}, err
	}
	deductions, err := s.store.ListDeductions(ctx, true)
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{PeriodEnd: end}
	for _, emp := range staff {
		rec, err := s.runEmployee(ctx, emp, end, rate, deductions)
		if err != nil {
			slog.Error("payroll run failed for employee",
				slog.String("employeeId", emp.ID),
				slog.String("error", err.Error()))
			result.Failed++
			continue
		}
		result.Processed++
		result.TotalNet = money.Round2(result.TotalNet + rec.NetSalary)
	}
	return result, nil
}

func (s *Service) runEmployee(ctx context.Context, emp employees.Employee, end time.Time, rate rates.Schedule, deductions []Deduction) (Record, error) {
	start := end.AddDate(0, 0, -6)
	records, err := s.attendance.ListByEmployee(ctx, emp.ID, start, end)
	if err != nil {
		return Record{}, err
	}
	summary := timeclock.Aggregate(records, end, rate, s.rules)

	// Unwind any earlier run of this period before reading balances, so a
	// re-run settles against pre-settlement state.
	if err := s.store.ReverseAdvancePayments(ctx, emp.ID, end); err != nil {
		return Record{}, err
	}
	outstanding, err := s.store.OutstandingBalance(ctx, emp.ID)
	if err != nil {
		return Record{}, err
	}
	priorYTD, err := s.store.PriorYearToDate(ctx, emp.ID, end)
	if err != nil {
		return Record{}, err
	}

	rec, err := Compose(summary, emp, rate, deductions, outstanding, priorYTD)
	if err != nil {
		return Record{}, err
	}

	id, err := s.store.UpsertRecord(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	rec.ID = id

	if err := s.settleAdvances(ctx, emp.ID, id, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// settleAdvances applies the period's advance deduction to outstanding
// advances oldest first. Only what the gross could actually absorb after
// mandatory deductions is settled, so a zero-net period never reduces a
// balance it did not collect.
func (s *Service) settleAdvances(ctx context.Context, employeeID, payrollID string, rec Record) error {
	collectible := money.Round2(rec.GrossSalary - rec.MandatoryTotal)
	if collectible <= 0 || rec.CashAdvanceDeduction <= 0 {
		return nil
	}
	remaining := rec.CashAdvanceDeduction
	if remaining > collectible {
		remaining = collectible
	}

	advances, err := s.store.ListOutstandingAdvances(ctx, employeeID)
	if err != nil {
		return err
	}
	for _, adv := range advances {
		if remaining <= 0 {
			break
		}
		payment := adv.RemainingBalance
		if payment > remaining {
			payment = remaining
		}
		payment = money.Round2(payment)
		if err := s.store.AddAdvancePayment(ctx, adv.ID, payrollID, payment); err != nil {
			return err
		}
		remaining = money.Round2(remaining - payment)
	}
	return nil
}

// RequestAdvance opens a pending cash advance. The new amount plus every
// outstanding balance may not exceed twice the current daily rate.
func (s *Service) RequestAdvance(ctx context.Context, employeeID string, amount float64, reason string) (CashAdvance, error) {
	if amount <= 0 {
		return CashAdvance{}, ErrInvalidAdvanceRequest
	}
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return CashAdvance{}, err
	}

	rate, err := s.rates.Current(ctx)
	if err != nil {
		return CashAdvance{}, err
	}
	outstanding, err := s.store.OutstandingBalance(ctx, employeeID)
	if err != nil {
		return CashAdvance{}, err
	}
	if money.Round2(outstanding+amount) > rate.MaxCashAdvance() {
		return CashAdvance{}, ErrAdvanceLimitExceeded
	}

	advance := CashAdvance{
		EmployeeID:       employeeID,
		Amount:           money.Round2(amount),
		RemainingBalance: money.Round2(amount),
		Status:           AdvancePending,
		Reason:           reason,
		RequestedAt:      time.Now().In(s.loc),
	}
	id, err := s.store.CreateAdvance(ctx, advance)
	if err != nil {
		return CashAdvance{}, err
	}
	advance.ID = id
	return advance, nil
}

// DecideAdvance approves or rejects a pending advance.
func (s *Service) DecideAdvance(ctx context.Context, id, approverID string, approve bool) (CashAdvance, error) {
	advance, err := s.store.GetAdvance(ctx, id)
	if err != nil {
		return CashAdvance{}, err
	}
	if advance.Status != AdvancePending {
		return CashAdvance{}, ErrAdvanceNotPending
	}

	status := AdvanceRejected
	if approve {
		status = AdvanceApproved
	}
	if err := s.store.UpdateAdvanceStatus(ctx, id, status, approverID); err != nil {
		return CashAdvance{}, err
	}
	return s.store.GetAdvance(ctx, id)
}

func (s *Service) Advances(ctx context.Context, employeeID string) ([]CashAdvance, error) {
	return s.store.ListAdvances(ctx, employeeID)
}

func (s *Service) Records(ctx context.Context, employeeID string, limit, offset int) ([]Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListRecords(ctx, employeeID, limit, offset)
}

func (s *Service) Record(ctx context.Context, id string) (Record, error) {
	return s.store.GetRecord(ctx, id)
}

func (s *Service) Deductions(ctx context.Context, activeOnly bool) ([]Deduction, error) {
	return s.store.ListDeductions(ctx, activeOnly)
}

func (s *Service) CreateDeduction(ctx context.Context, d Deduction) (Deduction, error) {
	d.Active = true
	if d.ApplicableTo == "" {
		d.ApplicableTo = ApplicableAll
	}
	id, err := s.store.CreateDeduction(ctx, d)
	if err != nil {
		return Deduction{}, err
	}
	d.ID = id
	return d, nil
}

// DeactivateDeduction retires a mandatory deduction rule. The row stays
// for the history of past payrolls; future runs stop applying it.
func (s *Service) DeactivateDeduction(ctx context.Context, id string) error {
	return s.store.DeactivateDeduction(ctx, id)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
