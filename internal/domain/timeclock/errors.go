package timeclock

import "errors"

var (
	ErrNoOpenShift        = errors.New("no open shift to clock out of")
	ErrShiftRejected      = errors.New("shift rejected by validation")
	ErrShiftNotFound      = errors.New("time record not found")
	ErrPeriodEndNotSunday = errors.New("period must end on a Sunday")
)
