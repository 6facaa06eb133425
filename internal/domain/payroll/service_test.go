package payroll

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"timepay/internal/domain/employees"
	"timepay/internal/domain/money"
	"timepay/internal/domain/rates"
	"timepay/internal/domain/timeclock"
)

type fakePayment struct {
	AdvanceID string
	PayrollID string
	Amount    float64
}

// fakeStore keeps payrolls, advances and advance payments in memory with
// the same balance and exclusion semantics as the SQL store.
type fakeStore struct {
	StoreAPI
	deductions []Deduction
	advances   map[string]*CashAdvance
	payments   []fakePayment
	records    map[string]Record
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		advances: make(map[string]*CashAdvance),
		records:  make(map[string]Record),
	}
}

func recordKey(employeeID string, end time.Time) string {
	return employeeID + "|" + end.Format("2006-01-02")
}

func (f *fakeStore) ListDeductions(ctx context.Context, activeOnly bool) ([]Deduction, error) {
	var out []Deduction
	for _, d := range f.deductions {
		if activeOnly && !d.Active {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeStore) DeactivateDeduction(ctx context.Context, id string) error {
	for i := range f.deductions {
		if f.deductions[i].ID == id {
			f.deductions[i].Active = false
			return nil
		}
	}
	return ErrDeductionNotFound
}

func (f *fakeStore) ListOutstandingAdvances(ctx context.Context, employeeID string) ([]CashAdvance, error) {
	var out []CashAdvance
	for _, adv := range f.advances {
		if adv.EmployeeID != employeeID || adv.RemainingBalance <= 0 {
			continue
		}
		if adv.Status == AdvanceApproved || adv.Status == AdvancePartiallyPaid {
			out = append(out, *adv)
		}
	}
	return out, nil
}

func (f *fakeStore) OutstandingBalance(ctx context.Context, employeeID string) (float64, error) {
	list, _ := f.ListOutstandingAdvances(ctx, employeeID)
	var total float64
	for _, adv := range list {
		total += adv.RemainingBalance
	}
	return money.Round2(total), nil
}

func (f *fakeStore) AddAdvancePayment(ctx context.Context, advanceID, payrollID string, amount float64) error {
	adv, ok := f.advances[advanceID]
	if !ok || adv.RemainingBalance < amount {
		return ErrAdvanceNotFound
	}
	f.payments = append(f.payments, fakePayment{AdvanceID: advanceID, PayrollID: payrollID, Amount: amount})
	adv.RemainingBalance = money.Round2(adv.RemainingBalance - amount)
	if adv.RemainingBalance <= 0 {
		adv.Status = AdvanceFullyPaid
	} else {
		adv.Status = AdvancePartiallyPaid
	}
	return nil
}

func (f *fakeStore) ReverseAdvancePayments(ctx context.Context, employeeID string, periodEnd time.Time) error {
	rec, ok := f.records[recordKey(employeeID, periodEnd)]
	if !ok {
		return nil
	}
	var kept []fakePayment
	for _, p := range f.payments {
		if p.PayrollID != rec.ID {
			kept = append(kept, p)
			continue
		}
		adv := f.advances[p.AdvanceID]
		adv.RemainingBalance = money.Round2(adv.RemainingBalance + p.Amount)
		if adv.RemainingBalance >= adv.Amount {
			adv.Status = AdvanceApproved
		} else {
			adv.Status = AdvancePartiallyPaid
		}
	}
	f.payments = kept
	return nil
}

func (f *fakeStore) PriorYearToDate(ctx context.Context, employeeID string, end time.Time) (float64, error) {
	var ytd float64
	for _, rec := range f.records {
		if rec.EmployeeID != employeeID || rec.PeriodEnd.Year() != end.Year() {
			continue
		}
		if !rec.PeriodEnd.Before(end) {
			continue
		}
		if rec.YearToDate > ytd {
			ytd = rec.YearToDate
		}
	}
	return ytd, nil
}

func (f *fakeStore) UpsertRecord(ctx context.Context, rec Record) (string, error) {
	key := recordKey(rec.EmployeeID, rec.PeriodEnd)
	rec.ID = "pay-" + key
	f.records[key] = rec
	return rec.ID, nil
}

type fakeEmployeeSource struct {
	staff []employees.Employee
}

func (f fakeEmployeeSource) GetByID(ctx context.Context, id string) (employees.Employee, error) {
	for _, emp := range f.staff {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employees.Employee{}, employees.ErrNotFound
}

func (f fakeEmployeeSource) ListActive(ctx context.Context) ([]employees.Employee, error) {
	return f.staff, nil
}

type fakeAttendance struct {
	records []timeclock.TimeRecord
}

func (f fakeAttendance) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timeclock.TimeRecord, error) {
	return f.records, nil
}

type fakeRates struct{}

func (fakeRates) Current(ctx context.Context) (rates.Schedule, error) {
	return rates.NewSchedule(550, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)), nil
}

// fullWeek builds Monday through Friday shifts of 09:00 to 18:00, each a
// plain full day worth 550.
func fullWeek(employeeID string, monday time.Time) []timeclock.TimeRecord {
	var out []timeclock.TimeRecord
	for i := 0; i < 5; i++ {
		day := monday.AddDate(0, 0, i)
		in := day.Add(9 * time.Hour)
		outAt := day.Add(18 * time.Hour)
		out = append(out, timeclock.TimeRecord{
			ID:          fmt.Sprintf("t%d", i),
			EmployeeID:  employeeID,
			Date:        day,
			TimeIn:      &in,
			TimeOut:     &outAt,
			ClosureKind: timeclock.ClosureManual,
		})
	}
	return out
}

func TestRunPeriodRerunKeepsYTDAndAdvancesStable(t *testing.T) {
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	sunday := monday.AddDate(0, 0, 6)

	store := newFakeStore()
	store.advances["adv-1"] = &CashAdvance{
		ID:               "adv-1",
		EmployeeID:       "emp-1",
		Amount:           500,
		RemainingBalance: 500,
		Status:           AdvanceApproved,
		RequestedAt:      monday,
	}

	svc := NewService(
		store,
		fakeEmployeeSource{staff: []employees.Employee{{ID: "emp-1", Role: employees.RoleEmployee, Active: true}}},
		fakeAttendance{records: fullWeek("emp-1", monday)},
		fakeRates{},
		timeclock.DefaultRules(),
		time.UTC,
	)

	first, err := svc.RunPeriod(context.Background(), sunday)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Processed != 1 || first.Failed != 0 {
		t.Fatalf("first run processed %d failed %d", first.Processed, first.Failed)
	}

	key := recordKey("emp-1", sunday)
	rec := store.records[key]
	if rec.GrossSalary != 2750 || rec.CashAdvanceDeduction != 500 || rec.NetSalary != 2250 {
		t.Fatalf("first run gross %v advance %v net %v", rec.GrossSalary, rec.CashAdvanceDeduction, rec.NetSalary)
	}
	if rec.YearToDate != 2250 {
		t.Fatalf("first run YTD %v", rec.YearToDate)
	}
	if bal := store.advances["adv-1"].RemainingBalance; bal != 0 {
		t.Fatalf("first run left advance balance %v", bal)
	}

	second, err := svc.RunPeriod(context.Background(), sunday)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Processed != 1 || second.Failed != 0 {
		t.Fatalf("second run processed %d failed %d", second.Processed, second.Failed)
	}

	rerun := store.records[key]
	if rerun.YearToDate != 2250 {
		t.Fatalf("re-run doubled YTD to %v", rerun.YearToDate)
	}
	if rerun.CashAdvanceDeduction != 500 || rerun.NetSalary != 2250 {
		t.Fatalf("re-run advance %v net %v", rerun.CashAdvanceDeduction, rerun.NetSalary)
	}
	if bal := store.advances["adv-1"].RemainingBalance; bal != 0 {
		t.Fatalf("re-run left advance balance %v", bal)
	}

	var settled float64
	var count int
	for _, p := range store.payments {
		if p.PayrollID == rerun.ID {
			settled += p.Amount
			count++
		}
	}
	if count != 1 || settled != 500 {
		t.Fatalf("expected one settlement of 500, got %d totalling %v", count, settled)
	}
}

func TestPriorYearToDateExcludesCurrentPeriod(t *testing.T) {
	store := newFakeStore()
	end := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)
	store.records[recordKey("emp-1", end.AddDate(0, 0, -7))] = Record{
		EmployeeID: "emp-1",
		PeriodEnd:  end.AddDate(0, 0, -7),
		YearToDate: 1000,
	}
	store.records[recordKey("emp-1", end)] = Record{
		EmployeeID: "emp-1",
		PeriodEnd:  end,
		YearToDate: 3250,
	}

	ytd, err := store.PriorYearToDate(context.Background(), "emp-1", end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ytd != 1000 {
		t.Fatalf("expected prior YTD 1000, got %v", ytd)
	}
}

func TestDeactivateDeduction(t *testing.T) {
	store := newFakeStore()
	store.deductions = []Deduction{{ID: "d1", Name: "SSS", CalcType: CalcTypePercentage, PercentageRate: 0.045, ApplicableTo: ApplicableAll, Active: true}}
	svc := NewService(store, fakeEmployeeSource{}, fakeAttendance{}, fakeRates{}, timeclock.DefaultRules(), time.UTC)

	if err := svc.DeactivateDeduction(context.Background(), "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active, err := svc.Deductions(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active deductions, got %d", len(active))
	}

	if err := svc.DeactivateDeduction(context.Background(), "missing"); !errors.Is(err, ErrDeductionNotFound) {
		t.Fatalf("expected ErrDeductionNotFound, got %v", err)
	}
}
