package payroll

import (
	"time"

	"timepay/internal/domain/timeclock"
)

// Deduction is one mandatory deduction rule. Percentage rates are stored
// as fractions, 0.0275 for 2.75 percent. A nil SalaryRangeMax means the
// rule is unbounded above.
type Deduction struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	CalcType       string   `json:"calcType"`
	PercentageRate float64  `json:"percentageRate,omitempty"`
	FixedAmount    float64  `json:"fixedAmount,omitempty"`
	ApplicableTo   string   `json:"applicableTo"`
	SalaryRangeMin float64  `json:"salaryRangeMin"`
	SalaryRangeMax *float64 `json:"salaryRangeMax,omitempty"`
	Active         bool     `json:"active"`
}

// AppliedDeduction is a deduction rule resolved against one gross salary.
type AppliedDeduction struct {
	Name     string  `json:"name"`
	CalcType string  `json:"calcType"`
	Amount   float64 `json:"amount"`
}

type CashAdvance struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employeeId"`
	Amount           float64    `json:"amount"`
	RemainingBalance float64    `json:"remainingBalance"`
	Status           string     `json:"status"`
	Reason           string     `json:"reason,omitempty"`
	RequestedAt      time.Time  `json:"requestedAt"`
	ApprovedBy       string     `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
}

// Record is one employee's payroll for one weekly period. The rate used
// at calculation time is snapshotted so the row stays reproducible after
// later rate changes.
type Record struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`

	Summary timeclock.PeriodSummary `json:"summary"`

	BasicSalary          float64            `json:"basicSalary"`
	OvertimePay          float64            `json:"overtimePay"`
	GrossSalary          float64            `json:"grossSalary"`
	Deductions           []AppliedDeduction `json:"deductions"`
	MandatoryTotal       float64            `json:"mandatoryTotal"`
	CashAdvanceDeduction float64            `json:"cashAdvanceDeduction"`
	TotalDeductions      float64            `json:"totalDeductions"`
	NetSalary            float64            `json:"netSalary"`
	YearToDate           float64            `json:"yearToDate"`

	RateUsedDaily    float64 `json:"rateUsedDaily"`
	RateUsedHourly   float64 `json:"rateUsedHourly"`
	RateUsedOvertime float64 `json:"rateUsedOvertime"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
