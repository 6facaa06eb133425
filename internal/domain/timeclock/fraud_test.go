package timeclock

import (
	"testing"
	"time"
)

func hasCode(checks []CheckResult, code string) bool {
	for _, c := range checks {
		if c.Code == code {
			return true
		}
	}
	return false
}

func TestValidateCleanShiftPasses(t *testing.T) {
	candidate := record(at(8, 0), nil)
	res := ValidateShift(candidate, nil, DefaultRules())
	if !res.Passed || len(res.Errors) != 0 || len(res.Warnings) != 0 {
		t.Fatalf("expected clean pass, got %+v", res)
	}
}

func TestValidateMultipleOpenShifts(t *testing.T) {
	open := record(at(7, 0), nil)
	open.ID = "other"
	open.Date = testDay.AddDate(0, 0, -1)

	res := ValidateShift(record(at(8, 0), nil), []TimeRecord{open}, DefaultRules())
	if res.Passed || !hasCode(res.Errors, CheckMultipleOpenShifts) {
		t.Fatalf("expected multiple-open-shifts error, got %+v", res)
	}
}

func TestValidateMaxShiftsPerDay(t *testing.T) {
	prior := record(at(6, 0), at(7, 0))
	prior.ID = "other"

	res := ValidateShift(record(at(8, 0), nil), []TimeRecord{prior}, DefaultRules())
	if res.Passed || !hasCode(res.Errors, CheckMaxShiftsExceeded) {
		t.Fatalf("expected max-shifts error, got %+v", res)
	}
}

func TestValidateBreakTime(t *testing.T) {
	prior := record(at(7, 50), nil)
	prior.ID = "other"
	prior.Date = testDay.AddDate(0, 0, -1)
	out := testDay.Add(7*time.Hour + 50*time.Minute)
	in := testDay.AddDate(0, 0, -1).Add(22 * time.Hour)
	prior.TimeIn = &in
	prior.TimeOut = &out

	// Ten minutes after the prior time-out is under the half-hour floor.
	candidate := record(at(8, 0), nil)
	res := ValidateShift(candidate, []TimeRecord{prior}, DefaultRules())
	if res.Passed || !hasCode(res.Errors, CheckInsufficientBreak) {
		t.Fatalf("expected break-time error, got %+v", res)
	}

	// Forty minutes later clears it, but the same-day cap still trips
	// when the prior shift shares the date.
	late := record(at(8, 30), nil)
	prior.Date = testDay.AddDate(0, 0, -1)
	res = ValidateShift(late, []TimeRecord{prior}, DefaultRules())
	if hasCode(res.Errors, CheckInsufficientBreak) {
		t.Fatalf("forty-minute break should pass, got %+v", res)
	}
}

func TestValidateShiftDuration(t *testing.T) {
	res := ValidateShift(record(at(6, 0), at(19, 0)), nil, DefaultRules())
	if res.Passed || !hasCode(res.Errors, CheckExcessiveHours) {
		t.Fatalf("expected excessive-hours error for 13-hour shift, got %+v", res)
	}

	res = ValidateShift(record(at(17, 0), at(8, 0)), nil, DefaultRules())
	if res.Passed || !hasCode(res.Errors, CheckInvalidTimeOrder) {
		t.Fatalf("expected time-order error, got %+v", res)
	}
}

func TestValidateOvertimePatternWarning(t *testing.T) {
	// Five 07:00-19:00 days land 11 worked hours each, 3 overtime, so
	// the trailing average is 15/7 per day.
	var history []TimeRecord
	for i := 1; i <= 5; i++ {
		day := testDay.AddDate(0, 0, -i)
		in := day.Add(7 * time.Hour)
		out := day.Add(19 * time.Hour)
		history = append(history, TimeRecord{
			ID: day.Format("2006-01-02"), EmployeeID: "e1", Date: day,
			TimeIn: &in, TimeOut: &out, ClosureKind: ClosureManual,
		})
	}

	res := ValidateShift(record(at(8, 0), nil), history, DefaultRules())
	if !res.Passed {
		t.Fatalf("warnings must not fail validation: %+v", res)
	}
	if !hasCode(res.Warnings, CheckOvertimePattern) {
		t.Fatalf("expected overtime-pattern warning, got %+v", res)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	openOther := record(at(5, 0), nil)
	openOther.ID = "open"
	sameDay := record(at(1, 0), at(2, 0))
	sameDay.ID = "sameday"

	res := ValidateShift(record(at(2, 5), nil), []TimeRecord{openOther, sameDay}, DefaultRules())
	if res.Passed {
		t.Fatal("expected validation failure")
	}
	if !hasCode(res.Errors, CheckMultipleOpenShifts) || !hasCode(res.Errors, CheckMaxShiftsExceeded) || !hasCode(res.Errors, CheckInsufficientBreak) {
		t.Fatalf("expected all violations reported, got %+v", res.Errors)
	}
}
