package payroll

import (
	"testing"
	"time"

	"timepay/internal/domain/employees"
	"timepay/internal/domain/rates"
	"timepay/internal/domain/timeclock"
)

var (
	periodEnd   = time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC) // Sunday
	periodStart = periodEnd.AddDate(0, 0, -6)
)

func testEmployee() employees.Employee {
	return employees.Employee{ID: "e1", Username: "maria", FirstName: "Maria", LastName: "Santos", Role: employees.RoleEmployee, Active: true}
}

func testSummary() timeclock.PeriodSummary {
	return timeclock.PeriodSummary{
		Start:            periodStart,
		End:              periodEnd,
		TotalDays:        6,
		FullDays:         4,
		OvertimeDays:     1,
		HalfDays:         1,
		DaySalaryTotal:   3162.5, // 5*550 + 412.50
		OvertimePayTotal: 171.88,
		TotalPay:         3334.38,
	}
}

func pct(rate float64) Deduction {
	return Deduction{Name: "SSS", CalcType: CalcTypePercentage, PercentageRate: rate, ApplicableTo: ApplicableAll, Active: true}
}

func TestComposeBasicPeriod(t *testing.T) {
	rate := rates.NewSchedule(550, periodStart)
	rec, err := Compose(testSummary(), testEmployee(), rate, nil, 0, 1000)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if rec.GrossSalary != 3334.38 {
		t.Fatalf("expected gross 3334.38, got %v", rec.GrossSalary)
	}
	if rec.NetSalary != 3334.38 {
		t.Fatalf("expected net equal to gross with no deductions, got %v", rec.NetSalary)
	}
	if rec.YearToDate != 4334.38 {
		t.Fatalf("expected YTD 4334.38, got %v", rec.YearToDate)
	}
	if rec.RateUsedDaily != 550 || rec.RateUsedOvertime != 85.94 {
		t.Fatalf("expected rate snapshot, got %v/%v", rec.RateUsedDaily, rec.RateUsedOvertime)
	}
}

func TestComposeRejectsNonSundayEnd(t *testing.T) {
	summary := testSummary()
	summary.End = periodEnd.AddDate(0, 0, 1)
	if _, err := Compose(summary, testEmployee(), rates.NewSchedule(550, periodStart), nil, 0, 0); err != ErrPeriodEndNotSunday {
		t.Fatalf("expected ErrPeriodEndNotSunday, got %v", err)
	}
}

func TestComposeAppliesDeductionsAndAdvance(t *testing.T) {
	rate := rates.NewSchedule(550, periodStart)
	deductions := []Deduction{
		pct(0.05),
		{Name: "Pag-IBIG", CalcType: CalcTypeFixed, FixedAmount: 100, ApplicableTo: ApplicableAll, Active: true},
	}

	rec, err := Compose(testSummary(), testEmployee(), rate, deductions, 500, 0)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if rec.MandatoryTotal != 266.72 { // 166.72 + 100
		t.Fatalf("expected mandatory total 266.72, got %v", rec.MandatoryTotal)
	}
	if rec.CashAdvanceDeduction != 500 {
		t.Fatalf("expected advance deduction 500, got %v", rec.CashAdvanceDeduction)
	}
	if rec.NetSalary != 2567.66 {
		t.Fatalf("expected net 2567.66, got %v", rec.NetSalary)
	}
}

func TestComposeFloorsNetAtZero(t *testing.T) {
	rec, err := Compose(testSummary(), testEmployee(), rates.NewSchedule(550, periodStart), nil, 99999, 100)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if rec.NetSalary != 0 {
		t.Fatalf("net salary must be floored at 0, got %v", rec.NetSalary)
	}
	if rec.YearToDate != 100 {
		t.Fatalf("zero net must not move YTD, got %v", rec.YearToDate)
	}
}

func TestDeductionSalaryRangeGate(t *testing.T) {
	maxRange := 3000.0
	d := pct(0.05)
	d.SalaryRangeMin = 1000
	d.SalaryRangeMax = &maxRange

	if got := DeductionAmount(d, 500); got != 0 {
		t.Fatalf("gross below range must yield 0, got %v", got)
	}
	if got := DeductionAmount(d, 3500); got != 0 {
		t.Fatalf("gross above range must yield 0, got %v", got)
	}
	if got := DeductionAmount(d, 2000); got != 100 {
		t.Fatalf("expected 100 inside range, got %v", got)
	}
}

func TestApplicableDeductionsFiltersRole(t *testing.T) {
	adminOnly := pct(0.1)
	adminOnly.ApplicableTo = employees.RoleAdmin

	applied, total := ApplicableDeductions([]Deduction{adminOnly, pct(0.05)}, testEmployee(), 1000)
	if len(applied) != 1 || total != 50 {
		t.Fatalf("expected only the universal rule to apply, got %+v total %v", applied, total)
	}
}
