package timeclock

import (
	"testing"
	"time"

	"timepay/internal/domain/rates"
)

var testDay = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func testRate() rates.Schedule {
	return rates.NewSchedule(550, testDay)
}

func at(hour, minute int) *time.Time {
	t := testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return &t
}

func record(in, out *time.Time) TimeRecord {
	return TimeRecord{ID: "r1", EmployeeID: "e1", Date: testDay, TimeIn: in, TimeOut: out, ClosureKind: ClosureManual}
}

func TestClassifyAbsentAndIncomplete(t *testing.T) {
	c := Classify(record(nil, nil), testRate(), DefaultRules())
	if c.DayType != DayAbsent || c.TotalPay != 0 {
		t.Fatalf("expected absent with zero pay, got %s pay %v", c.DayType, c.TotalPay)
	}
	if c.TimeInStatus != StatusAbsent {
		t.Fatalf("expected absent status, got %s", c.TimeInStatus)
	}

	c = Classify(record(at(8, 0), nil), testRate(), DefaultRules())
	if c.DayType != DayIncomplete || c.TotalPay != 0 {
		t.Fatalf("expected incomplete with zero pay, got %s pay %v", c.DayType, c.TotalPay)
	}
}

func TestClassifyFullDay(t *testing.T) {
	c := Classify(record(at(8, 30), at(17, 0)), testRate(), DefaultRules())
	if c.DayType != DayFull {
		t.Fatalf("expected full day, got %s", c.DayType)
	}
	if c.DaySalary != 550 || c.TotalPay != 550 {
		t.Fatalf("expected flat 550, got salary %v total %v", c.DaySalary, c.TotalPay)
	}
	if c.HoursWorked != 7.5 {
		t.Fatalf("expected 7.5 hours after lunch, got %v", c.HoursWorked)
	}
	if c.TimeInStatus != StatusOnTime {
		t.Fatalf("expected on-time arrival, got %s", c.TimeInStatus)
	}
}

func TestClassifyHalfDayLinearBonus(t *testing.T) {
	// 10:00-17:00 spans lunch: 6 hours worked, above the 4-hour floor.
	c := Classify(record(at(10, 0), at(17, 0)), testRate(), DefaultRules())
	if c.DayType != DayHalf {
		t.Fatalf("expected half day, got %s", c.DayType)
	}
	if c.HoursWorked != 6 {
		t.Fatalf("expected 6 hours, got %v", c.HoursWorked)
	}
	want := 275 + 2*68.75
	if c.DaySalary != want {
		t.Fatalf("expected half-day pay %v, got %v", want, c.DaySalary)
	}
	if c.TimeInStatus != StatusHalfDay {
		t.Fatalf("expected late arrival status, got %s", c.TimeInStatus)
	}
}

func TestClassifyInvalidUnderFourHours(t *testing.T) {
	c := Classify(record(at(14, 0), at(17, 0)), testRate(), DefaultRules())
	if c.DayType != DayInvalid {
		t.Fatalf("expected invalid day, got %s", c.DayType)
	}
	if c.TotalPay != 0 {
		t.Fatalf("expected zero pay, got %v", c.TotalPay)
	}
	if c.HoursWorked != 3 {
		t.Fatalf("expected 3 hours, got %v", c.HoursWorked)
	}
}

func TestClassifyOvertime(t *testing.T) {
	// 08:00-19:00 minus lunch is 10 hours, 2 beyond the standard day.
	c := Classify(record(at(8, 0), at(19, 0)), testRate(), DefaultRules())
	if c.DayType != DayOvertime {
		t.Fatalf("expected overtime, got %s", c.DayType)
	}
	if c.OvertimeHours != 2 {
		t.Fatalf("expected 2 overtime hours, got %v", c.OvertimeHours)
	}
	if c.OvertimePay != 171.88 {
		t.Fatalf("expected overtime pay 171.88, got %v", c.OvertimePay)
	}
	if c.TotalPay != 721.88 {
		t.Fatalf("expected total 721.88, got %v", c.TotalPay)
	}
}

func TestOvertimeRequiresEveryCondition(t *testing.T) {
	rules := DefaultRules()
	rate := testRate()

	// Out before 17:00: 06:00-16:30 minus lunch is 9.5 hours but too early.
	c := Classify(record(at(6, 0), at(16, 30)), rate, rules)
	if c.DayType != DayFull || c.OvertimePay != 0 {
		t.Fatalf("expected full day with no overtime pay, got %s pay %v", c.DayType, c.OvertimePay)
	}

	// No hours beyond the standard day.
	c = Classify(record(at(8, 30), at(17, 30)), rate, rules)
	if c.DayType != DayFull || c.OvertimePay != 0 {
		t.Fatalf("expected full day, got %s pay %v", c.DayType, c.OvertimePay)
	}

	// Auto-closed shifts forfeit overtime even past 17:00.
	rec := record(at(8, 0), at(18, 0))
	rec.ClosureKind = ClosureAuto
	c = Classify(rec, rate, rules)
	if c.DayType == DayOvertime || c.OvertimePay != 0 {
		t.Fatalf("auto-closed shift must not earn overtime, got %s pay %v", c.DayType, c.OvertimePay)
	}
}

func TestAutoClosedLateArrivalCapsAtHalfDay(t *testing.T) {
	rec := record(at(10, 30), at(20, 30))
	rec.ClosureKind = ClosureAuto
	c := Classify(rec, testRate(), DefaultRules())
	if c.DayType != DayHalf {
		t.Fatalf("expected forced half day, got %s", c.DayType)
	}
	// 9 worked hours is past the standard day, so only the base is paid.
	if c.DaySalary != 275 {
		t.Fatalf("expected base half-day pay 275, got %v", c.DaySalary)
	}
	if c.OvertimePay != 0 {
		t.Fatalf("expected no overtime pay, got %v", c.OvertimePay)
	}
}

func TestLunchSubtractionOnlyWhenSpanned(t *testing.T) {
	rules := DefaultRules()
	if h := HoursWorked(*at(6, 0), *at(11, 0), rules); h != 5 {
		t.Fatalf("morning shift should keep all 5 hours, got %v", h)
	}
	if h := HoursWorked(*at(13, 0), *at(18, 0), rules); h != 5 {
		t.Fatalf("afternoon shift should keep all 5 hours, got %v", h)
	}
	if h := HoursWorked(*at(8, 0), *at(12, 30), rules); h != 3.5 {
		t.Fatalf("shift ending mid-lunch should lose the hour, got %v", h)
	}
	if h := HoursWorked(*at(9, 0), *at(8, 0), rules); h != 0 {
		t.Fatalf("reversed interval should clamp to 0, got %v", h)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	rec := record(at(8, 0), at(19, 0))
	first := Classify(rec, testRate(), DefaultRules())
	second := Classify(rec, testRate(), DefaultRules())
	if first != second {
		t.Fatalf("identical inputs produced different classifications: %+v vs %+v", first, second)
	}
}
