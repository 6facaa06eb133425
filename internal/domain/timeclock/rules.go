package timeclock

import "time"

// Rules holds the attendance policy constants. They are threaded into
// every calculation rather than read from package state so classification
// is reproducible across policy variants.
type Rules struct {
	// OnTimeCutoff is the offset from midnight up to which an arrival
	// still earns a full-day time-in status.
	OnTimeCutoff time.Duration
	// LunchStart/LunchEnd bound the unpaid lunch window. One hour is
	// subtracted from a shift that spans any part of it.
	LunchStart time.Duration
	LunchEnd   time.Duration
	// HalfDayMinHours is the floor below which a closed shift is invalid.
	HalfDayMinHours float64
	// FullDayMinHours is the floor for a full-day classification.
	FullDayMinHours float64
	// StandardDayHours is the paid length of a full day; hours beyond it
	// are overtime candidates.
	StandardDayHours float64
	// OvertimeOutHour is the earliest clock-out hour (24h) that keeps a
	// shift overtime-eligible.
	OvertimeOutHour int
	// AutoCloseAfter is the operational ceiling after which an open shift
	// is closed by the reconciler. Distinct from MaxShiftHours.
	AutoCloseAfter time.Duration
	// MaxShiftHours is the fraud ceiling for a closed shift.
	MaxShiftHours float64
	// MaxShiftsPerDay caps how many shifts an employee may record on one
	// calendar day.
	MaxShiftsPerDay int
	// MinBreakHours is the required gap between a time-out and the next
	// time-in.
	MinBreakHours float64
	// OvertimeWarnAvg and OvertimeWindowDays define the trailing-average
	// overtime threshold that raises a pattern warning.
	OvertimeWarnAvg    float64
	OvertimeWindowDays int
}

func DefaultRules() Rules {
	return Rules{
		OnTimeCutoff:       9*time.Hour + 30*time.Minute,
		LunchStart:         12 * time.Hour,
		LunchEnd:           13 * time.Hour,
		HalfDayMinHours:    4,
		FullDayMinHours:    6.5,
		StandardDayHours:   8,
		OvertimeOutHour:    17,
		AutoCloseAfter:     10 * time.Hour,
		MaxShiftHours:      12,
		MaxShiftsPerDay:    1,
		MinBreakHours:      0.5,
		OvertimeWarnAvg:    2,
		OvertimeWindowDays: 7,
	}
}
