package timeclock

import "time"

// TimeRecord is one employee shift as captured at the clock. It is the
// source of truth: classification output is derived from it on every read
// and never written back.
type TimeRecord struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Date        time.Time  `json:"date"`
	TimeIn      *time.Time `json:"timeIn"`
	TimeOut     *time.Time `json:"timeOut"`
	ClosureKind string     `json:"closureKind"`
	Notes       string     `json:"notes,omitempty"`
}

func (r TimeRecord) Open() bool {
	return r.TimeIn != nil && r.TimeOut == nil
}

func (r TimeRecord) AutoClosed() bool {
	return r.ClosureKind == ClosureAuto
}

// DayClassification is the engine's verdict for a single shift.
type DayClassification struct {
	DayType       string  `json:"dayType"`
	HoursWorked   float64 `json:"hoursWorked"`
	OvertimeHours float64 `json:"overtimeHours"`
	DaySalary     float64 `json:"daySalary"`
	OvertimePay   float64 `json:"overtimePay"`
	TotalPay      float64 `json:"totalPay"`
	TimeInStatus  string  `json:"timeInStatus"`
	Reason        string  `json:"reason"`
}

// PeriodSummary aggregates classifications over a Monday-Sunday window.
// It carries summed pay, not just counts: half-day pay includes per-record
// hourly bonuses that cannot be reconstructed from counts alone.
type PeriodSummary struct {
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
	TotalDays          int       `json:"totalDays"`
	AbsentDays         int       `json:"absentDays"`
	IncompleteDays     int       `json:"incompleteDays"`
	InvalidDays        int       `json:"invalidDays"`
	HalfDays           int       `json:"halfDays"`
	FullDays           int       `json:"fullDays"`
	OvertimeDays       int       `json:"overtimeDays"`
	TotalHoursWorked   float64   `json:"totalHoursWorked"`
	TotalOvertimeHours float64   `json:"totalOvertimeHours"`
	DaySalaryTotal     float64   `json:"daySalaryTotal"`
	OvertimePayTotal   float64   `json:"overtimePayTotal"`
	TotalPay           float64   `json:"totalPay"`
}

// CheckResult is a single fraud-check violation.
type CheckResult struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult carries every violation found, not just the first.
// Hard errors block the record; warnings are informational.
type ValidationResult struct {
	Passed   bool          `json:"passed"`
	Errors   []CheckResult `json:"errors"`
	Warnings []CheckResult `json:"warnings"`
}
