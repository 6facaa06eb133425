package rates

import (
	"time"

	"timepay/internal/domain/money"
)

// Schedule is the company-wide salary rate in force at a point in time.
// Exactly one schedule is active at any instant; calculations always use
// the schedule current at the moment of calculation.
type Schedule struct {
	ID            string    `json:"id"`
	DailyRate     float64   `json:"dailyRate"`
	HourlyRate    float64   `json:"hourlyRate"`
	OvertimeRate  float64   `json:"overtimeRate"`
	EffectiveDate time.Time `json:"effectiveDate"`
	Active        bool      `json:"active"`
	Reason        string    `json:"reason,omitempty"`
}

// NewSchedule derives the hourly rate (daily/8) and the overtime rate
// (hourly * 1.25) from the daily rate. A daily rate of 550 yields 68.75
// and 85.94.
func NewSchedule(dailyRate float64, effective time.Time) Schedule {
	hourly := money.Round2(dailyRate / 8)
	return Schedule{
		DailyRate:     money.Round2(dailyRate),
		HourlyRate:    hourly,
		OvertimeRate:  money.Round2(hourly * 1.25),
		EffectiveDate: effective,
		Active:        true,
	}
}

// MaxCashAdvance is the lifetime outstanding ceiling for cash advances:
// two days of salary.
func (s Schedule) MaxCashAdvance() float64 {
	return money.Round2(s.DailyRate * 2)
}
