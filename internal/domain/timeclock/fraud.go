package timeclock

import (
	"fmt"
	"time"
)

// ValidateShift runs every fraud check against a candidate record and the
// employee's existing history. All violations are collected rather than
// returned on first failure so the caller sees the full picture. Hard
// errors mean the record cannot be trusted; warnings are informational.
func ValidateShift(candidate TimeRecord, history []TimeRecord, rules Rules) ValidationResult {
	res := ValidationResult{Passed: true}
	fail := func(code, msg string) {
		res.Passed = false
		res.Errors = append(res.Errors, CheckResult{Code: code, Message: msg})
	}

	if c := checkOpenShifts(candidate, history); c != nil {
		fail(c.Code, c.Message)
	}
	if c := checkShiftsPerDay(candidate, history, rules); c != nil {
		fail(c.Code, c.Message)
	}
	if c := checkBreakTime(candidate, history, rules); c != nil {
		fail(c.Code, c.Message)
	}
	if c := checkDuration(candidate, rules); c != nil {
		fail(c.Code, c.Message)
	}
	if c := checkOvertimePattern(candidate, history, rules); c != nil {
		res.Warnings = append(res.Warnings, *c)
	}

	return res
}

func checkOpenShifts(candidate TimeRecord, history []TimeRecord) *CheckResult {
	open := 0
	for _, rec := range history {
		if rec.ID != candidate.ID && rec.Open() {
			open++
		}
	}
	if candidate.Open() {
		open++
	}
	if open > 1 {
		return &CheckResult{
			Code:    CheckMultipleOpenShifts,
			Message: fmt.Sprintf("%d open shifts found, at most one is allowed", open),
		}
	}
	return nil
}

func checkShiftsPerDay(candidate TimeRecord, history []TimeRecord, rules Rules) *CheckResult {
	sameDay := 0
	for _, rec := range history {
		if rec.ID != candidate.ID && sameCalendarDay(rec.Date, candidate.Date) {
			sameDay++
		}
	}
	if sameDay >= rules.MaxShiftsPerDay {
		return &CheckResult{
			Code:    CheckMaxShiftsExceeded,
			Message: fmt.Sprintf("%d shift(s) already recorded for %s", sameDay, candidate.Date.Format("2006-01-02")),
		}
	}
	return nil
}

func checkBreakTime(candidate TimeRecord, history []TimeRecord, rules Rules) *CheckResult {
	if candidate.TimeIn == nil {
		return nil
	}
	var lastOut *time.Time
	for _, rec := range history {
		if rec.ID == candidate.ID || rec.TimeOut == nil {
			continue
		}
		if lastOut == nil || rec.TimeOut.After(*lastOut) {
			lastOut = rec.TimeOut
		}
	}
	if lastOut == nil {
		return nil
	}
	gap := candidate.TimeIn.Sub(*lastOut).Hours()
	if gap < rules.MinBreakHours {
		return &CheckResult{
			Code:    CheckInsufficientBreak,
			Message: fmt.Sprintf("only %.2f hours since last time-out, minimum %.1f required", gap, rules.MinBreakHours),
		}
	}
	return nil
}

func checkDuration(candidate TimeRecord, rules Rules) *CheckResult {
	if candidate.TimeIn == nil || candidate.TimeOut == nil {
		return nil
	}
	hours := candidate.TimeOut.Sub(*candidate.TimeIn).Hours()
	if hours < 0 {
		return &CheckResult{
			Code:    CheckInvalidTimeOrder,
			Message: "time-out is before time-in",
		}
	}
	if hours > rules.MaxShiftHours {
		return &CheckResult{
			Code:    CheckExcessiveHours,
			Message: fmt.Sprintf("shift duration %.2f hours exceeds the %.0f-hour maximum", hours, rules.MaxShiftHours),
		}
	}
	return nil
}

// checkOvertimePattern averages overtime over the trailing window ending
// at the candidate's date. The divisor is the window length, not the
// number of records, so sparse overtime does not inflate the average.
func checkOvertimePattern(candidate TimeRecord, history []TimeRecord, rules Rules) *CheckResult {
	if candidate.Date.IsZero() {
		return nil
	}
	cutoff := candidate.Date.AddDate(0, 0, -rules.OvertimeWindowDays)

	var total float64
	for _, rec := range history {
		if !rec.Date.After(cutoff) || rec.Date.After(candidate.Date) {
			continue
		}
		if rec.TimeIn == nil || rec.TimeOut == nil {
			continue
		}
		h := HoursWorked(*rec.TimeIn, *rec.TimeOut, rules)
		if ot := h - rules.StandardDayHours; ot > 0 {
			total += ot
		}
	}

	avg := total / float64(rules.OvertimeWindowDays)
	if avg > rules.OvertimeWarnAvg {
		return &CheckResult{
			Code: CheckOvertimePattern,
			Message: fmt.Sprintf("averaging %.2f overtime hours per day over the last %d days",
				avg, rules.OvertimeWindowDays),
		}
	}
	return nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
