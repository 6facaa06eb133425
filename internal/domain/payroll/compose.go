package payroll

import (
	"time"

	"timepay/internal/domain/employees"
	"timepay/internal/domain/money"
	"timepay/internal/domain/rates"
	"timepay/internal/domain/timeclock"
)

// DeductionAmount resolves one rule against a gross salary. Rules with a
// salary range only bite when gross falls inside it.
func DeductionAmount(d Deduction, gross float64) float64 {
	if d.SalaryRangeMax != nil && gross > *d.SalaryRangeMax {
		return 0
	}
	if gross < d.SalaryRangeMin {
		return 0
	}
	if d.CalcType == CalcTypePercentage {
		return money.Round2(gross * d.PercentageRate)
	}
	return money.Round2(d.FixedAmount)
}

// ApplicableDeductions filters rules for the employee and resolves each
// against gross. Rules that resolve to zero are dropped from the output.
func ApplicableDeductions(list []Deduction, emp employees.Employee, gross float64) ([]AppliedDeduction, float64) {
	var applied []AppliedDeduction
	var total float64
	for _, d := range list {
		if !d.Active {
			continue
		}
		if d.ApplicableTo != ApplicableAll && d.ApplicableTo != emp.Role {
			continue
		}
		amount := DeductionAmount(d, gross)
		if amount <= 0 {
			continue
		}
		applied = append(applied, AppliedDeduction{Name: d.Name, CalcType: d.CalcType, Amount: amount})
		total += amount
	}
	return applied, money.Round2(total)
}

// Compose builds the payroll record for one employee and period. It is a
// pure accumulator: the caller supplies the aggregated week, the rate in
// force, the deduction rule set, the outstanding advance balance and the
// prior year-to-date net. Net salary is floored at zero no matter how
// large the deductions are.
func Compose(
	summary timeclock.PeriodSummary,
	emp employees.Employee,
	rate rates.Schedule,
	deductions []Deduction,
	outstandingAdvance float64,
	priorYTD float64,
) (Record, error) {
	if summary.End.Weekday() != time.Sunday {
		return Record{}, ErrPeriodEndNotSunday
	}

	basic := summary.DaySalaryTotal
	overtime := summary.OvertimePayTotal
	gross := money.Round2(basic + overtime)

	applied, mandatoryTotal := ApplicableDeductions(deductions, emp, gross)

	advanceDeduction := money.Round2(outstandingAdvance)
	if advanceDeduction < 0 {
		advanceDeduction = 0
	}

	totalDeductions := money.Round2(mandatoryTotal + advanceDeduction)
	net := money.Round2(gross - totalDeductions)
	if net < 0 {
		net = 0
	}

	return Record{
		EmployeeID:           emp.ID,
		PeriodStart:          summary.Start,
		PeriodEnd:            summary.End,
		Summary:              summary,
		BasicSalary:          money.Round2(basic),
		OvertimePay:          money.Round2(overtime),
		GrossSalary:          gross,
		Deductions:           applied,
		MandatoryTotal:       mandatoryTotal,
		CashAdvanceDeduction: advanceDeduction,
		TotalDeductions:      totalDeductions,
		NetSalary:            net,
		YearToDate:           money.Round2(priorYTD + net),
		RateUsedDaily:        rate.DailyRate,
		RateUsedHourly:       rate.HourlyRate,
		RateUsedOvertime:     rate.OvertimeRate,
		Status:               RecordStatusPending,
	}, nil
}
