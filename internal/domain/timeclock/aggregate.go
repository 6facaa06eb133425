package timeclock

import (
	"time"

	"timepay/internal/domain/money"
	"timepay/internal/domain/rates"
)

// Aggregate folds a week of records into counters and pay totals. The
// window runs Monday through the Sunday given as end; callers are
// expected to have validated the Sunday boundary already. Records
// outside the window are ignored so the fold is safe to re-run over a
// wider query result.
func Aggregate(records []TimeRecord, end time.Time, rate rates.Schedule, rules Rules) PeriodSummary {
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	start := endDay.AddDate(0, 0, -6)

	s := PeriodSummary{Start: start, End: endDay}
	for _, rec := range records {
		day := time.Date(rec.Date.Year(), rec.Date.Month(), rec.Date.Day(), 0, 0, 0, 0, endDay.Location())
		if day.Before(start) || day.After(endDay) {
			continue
		}

		c := Classify(rec, rate, rules)
		s.TotalDays++
		s.TotalHoursWorked += c.HoursWorked
		s.TotalOvertimeHours += c.OvertimeHours
		s.DaySalaryTotal += c.DaySalary
		s.OvertimePayTotal += c.OvertimePay

		switch c.DayType {
		case DayAbsent:
			s.AbsentDays++
		case DayIncomplete:
			s.IncompleteDays++
		case DayInvalid:
			s.InvalidDays++
		case DayHalf:
			s.HalfDays++
		case DayFull:
			s.FullDays++
		case DayOvertime:
			s.OvertimeDays++
		}
	}

	s.TotalHoursWorked = money.Round2(s.TotalHoursWorked)
	s.TotalOvertimeHours = money.Round2(s.TotalOvertimeHours)
	s.DaySalaryTotal = money.Round2(s.DaySalaryTotal)
	s.OvertimePayTotal = money.Round2(s.OvertimePayTotal)
	s.TotalPay = money.Round2(s.DaySalaryTotal + s.OvertimePayTotal)
	return s
}
