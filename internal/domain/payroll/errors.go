package payroll

import (
	"errors"

	"timepay/internal/domain/timeclock"
)

// ErrPeriodEndNotSunday is shared with the timeclock summary so both
// surfaces reject a malformed period the same way.
var ErrPeriodEndNotSunday = timeclock.ErrPeriodEndNotSunday

var (
	ErrAdvanceLimitExceeded  = errors.New("cash advance limit exceeded")
	ErrAdvanceNotFound       = errors.New("cash advance not found")
	ErrAdvanceNotPending     = errors.New("cash advance is not pending")
	ErrRecordNotFound        = errors.New("payroll record not found")
	ErrDeductionNotFound     = errors.New("mandatory deduction not found")
	ErrInvalidAdvanceRequest = errors.New("advance amount must be positive")
)
