package timeclock

const (
	DayAbsent     = "Absent"
	DayIncomplete = "Incomplete"
	DayInvalid    = "Invalid"
	DayHalf       = "Half Day"
	DayFull       = "Full Day"
	DayOvertime   = "Overtime"

	StatusOnTime  = "On Time"
	StatusHalfDay = "Half Day"
	StatusAbsent  = "Absent"

	ClosureManual = "manual"
	ClosureAuto   = "auto"

	CheckMultipleOpenShifts = "MULTIPLE_OPEN_SHIFTS"
	CheckMaxShiftsExceeded  = "MAX_SHIFTS_EXCEEDED"
	CheckInsufficientBreak  = "INSUFFICIENT_BREAK_TIME"
	CheckExcessiveHours     = "EXCESSIVE_HOURS"
	CheckInvalidTimeOrder   = "INVALID_TIME_ORDER"
	CheckOvertimePattern    = "EXCESSIVE_OVERTIME_PATTERN"
)
