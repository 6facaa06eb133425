package timeclock

import (
	"fmt"
	"time"

	"timepay/internal/domain/money"
	"timepay/internal/domain/rates"
)

// Classify maps one shift to a day type and its pay. Every input yields a
// definite classification; degenerate records fail closed to zero pay
// instead of erroring.
func Classify(rec TimeRecord, rate rates.Schedule, rules Rules) DayClassification {
	if rec.TimeIn == nil {
		return DayClassification{
			DayType:      DayAbsent,
			TimeInStatus: StatusAbsent,
			Reason:       "no time-in recorded",
		}
	}
	if rec.TimeOut == nil {
		return DayClassification{
			DayType:      DayIncomplete,
			TimeInStatus: timeInStatus(*rec.TimeIn, rules),
			Reason:       "no time-out recorded",
		}
	}

	status := timeInStatus(*rec.TimeIn, rules)
	hours := HoursWorked(*rec.TimeIn, *rec.TimeOut, rules)

	if hours < rules.HalfDayMinHours {
		return DayClassification{
			DayType:      DayInvalid,
			HoursWorked:  money.Round2(hours),
			TimeInStatus: status,
			Reason:       fmt.Sprintf("insufficient hours worked (%.2f, minimum %.1f required)", hours, rules.HalfDayMinHours),
		}
	}

	if hours < rules.FullDayMinHours {
		return DayClassification{
			DayType:      DayHalf,
			HoursWorked:  money.Round2(hours),
			TimeInStatus: status,
			DaySalary:    halfDayPay(hours, rate, rules),
			TotalPay:     halfDayPay(hours, rate, rules),
			Reason:       fmt.Sprintf("worked %.2f hours, below the %.1f-hour full-day floor", hours, rules.FullDayMinHours),
		}
	}

	overtime := hours - rules.StandardDayHours
	if overtime < 0 {
		overtime = 0
	}

	if overtime > 0 && rec.TimeOut.Hour() >= rules.OvertimeOutHour && !rec.AutoClosed() {
		overtimePay := money.Round2(overtime * rate.OvertimeRate)
		return DayClassification{
			DayType:       DayOvertime,
			HoursWorked:   money.Round2(hours),
			OvertimeHours: money.Round2(overtime),
			TimeInStatus:  status,
			DaySalary:     money.Round2(rate.DailyRate),
			OvertimePay:   overtimePay,
			TotalPay:      money.Round2(rate.DailyRate + overtimePay),
			Reason: fmt.Sprintf("manual time-out at/after %02d:00 with %.2f hours beyond %.0f",
				rules.OvertimeOutHour, overtime, rules.StandardDayHours),
		}
	}

	// Auto-closed shifts keep the arrival-based day type: a late arrival
	// that ran into the ceiling is still only a half day.
	if rec.AutoClosed() && status != StatusOnTime {
		return DayClassification{
			DayType:       DayHalf,
			HoursWorked:   money.Round2(hours),
			OvertimeHours: money.Round2(overtime),
			TimeInStatus:  status,
			DaySalary:     halfDayPay(hours, rate, rules),
			TotalPay:      halfDayPay(hours, rate, rules),
			Reason:        "auto-closed shift with late arrival, capped at half-day pay",
		}
	}

	return DayClassification{
		DayType:       DayFull,
		HoursWorked:   money.Round2(hours),
		OvertimeHours: money.Round2(overtime),
		TimeInStatus:  status,
		DaySalary:     money.Round2(rate.DailyRate),
		TotalPay:      money.Round2(rate.DailyRate),
		Reason:        fullDayReason(rec, overtime, rules),
	}
}

// HoursWorked is the shift length in hours minus the one-hour lunch when
// the shift spans any part of the lunch window on its calendar day. A
// shift entirely before or after lunch is not charged.
func HoursWorked(in, out time.Time, rules Rules) float64 {
	total := out.Sub(in).Hours()

	day := time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, in.Location())
	lunchStart := day.Add(rules.LunchStart)
	lunchEnd := day.Add(rules.LunchEnd)
	if in.Before(lunchEnd) && out.After(lunchStart) {
		total -= lunchEnd.Sub(lunchStart).Hours()
	}

	if total < 0 {
		return 0
	}
	return total
}

func timeInStatus(in time.Time, rules Rules) string {
	day := time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, in.Location())
	if !in.After(day.Add(rules.OnTimeCutoff)) {
		return StatusOnTime
	}
	return StatusHalfDay
}

// halfDayPay is the half-day base plus an hourly bonus for hours beyond
// the four-hour floor. At or beyond a standard day (forced half days on
// auto-closed shifts) the bonus is dropped and only the base is paid.
func halfDayPay(hours float64, rate rates.Schedule, rules Rules) float64 {
	base := rate.DailyRate / 2
	if hours > rules.HalfDayMinHours && hours < rules.StandardDayHours {
		base += (hours - rules.HalfDayMinHours) * rate.HourlyRate
	}
	return money.Round2(base)
}

func fullDayReason(rec TimeRecord, overtime float64, rules Rules) string {
	switch {
	case overtime <= 0:
		return "worked a full schedule"
	case rec.AutoClosed():
		return fmt.Sprintf("auto-closed after %.2f hours overtime, no pay for automatic time-out", overtime)
	default:
		return fmt.Sprintf("time-out before %02d:00, %.2f overtime hours not payable", rules.OvertimeOutHour, overtime)
	}
}

