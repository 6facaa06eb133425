package timeclock

import (
	"testing"
	"time"
)

func weekRecords() []TimeRecord {
	// Monday 2026-03-02 through Sunday 2026-03-08.
	shift := func(dayOffset, inHour, outHour int) TimeRecord {
		day := testDay.AddDate(0, 0, dayOffset)
		in := day.Add(time.Duration(inHour) * time.Hour)
		out := day.Add(time.Duration(outHour) * time.Hour)
		return TimeRecord{EmployeeID: "e1", Date: day, TimeIn: &in, TimeOut: &out, ClosureKind: ClosureManual}
	}

	records := []TimeRecord{
		shift(0, 8, 17), // full day
		shift(1, 8, 19), // overtime, 2 hours
		shift(2, 10, 17), // half day
		shift(3, 14, 17), // invalid, under 4 hours
	}
	noOut := shift(4, 8, 0)
	noOut.TimeOut = nil
	records = append(records, noOut)
	records = append(records, TimeRecord{EmployeeID: "e1", Date: testDay.AddDate(0, 0, 5)}) // absent
	return records
}

func TestAggregateWeek(t *testing.T) {
	end := testDay.AddDate(0, 0, 6) // Sunday
	s := Aggregate(weekRecords(), end, testRate(), DefaultRules())

	if s.TotalDays != 6 {
		t.Fatalf("expected 6 records, got %d", s.TotalDays)
	}
	if s.FullDays != 1 || s.OvertimeDays != 1 || s.HalfDays != 1 || s.InvalidDays != 1 || s.IncompleteDays != 1 || s.AbsentDays != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}

	// 550 full + 550 overtime base + 412.50 half day.
	if s.DaySalaryTotal != 1512.5 {
		t.Fatalf("expected day salary 1512.50, got %v", s.DaySalaryTotal)
	}
	if s.OvertimePayTotal != 171.88 {
		t.Fatalf("expected overtime pay 171.88, got %v", s.OvertimePayTotal)
	}
	if s.TotalPay != 1684.38 {
		t.Fatalf("expected total 1684.38, got %v", s.TotalPay)
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	end := testDay.AddDate(0, 0, 6)
	first := Aggregate(weekRecords(), end, testRate(), DefaultRules())
	second := Aggregate(weekRecords(), end, testRate(), DefaultRules())
	if first != second {
		t.Fatalf("repeated aggregation diverged: %+v vs %+v", first, second)
	}
}

func TestAggregateIgnoresRecordsOutsideWindow(t *testing.T) {
	end := testDay.AddDate(0, 0, 6)
	records := weekRecords()
	stray := records[0]
	stray.Date = testDay.AddDate(0, 0, -3)
	records = append(records, stray)

	s := Aggregate(records, end, testRate(), DefaultRules())
	if s.TotalDays != 6 {
		t.Fatalf("record before the window must be ignored, got %d days", s.TotalDays)
	}
}
