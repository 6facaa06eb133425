package payroll

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// GenerateRegister writes an XLSX payroll register for the period ending
// at end, one row per employee record.
func (s *Service) GenerateRegister(ctx context.Context, end time.Time, w io.Writer) error {
	end = startOfDay(end.In(s.loc))
	records, err := s.store.RecordsForPeriod(ctx, end)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Employee", "Period Start", "Period End", "Days", "Hours", "OT Hours",
		"Basic", "Overtime", "Gross", "Mandatory", "Advance", "Net", "YTD"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, rec := range records {
		name := rec.EmployeeID
		if emp, err := s.employees.GetByID(ctx, rec.EmployeeID); err == nil {
			name = emp.FullName()
		}
		values := []any{
			name,
			rec.PeriodStart.Format("2006-01-02"),
			rec.PeriodEnd.Format("2006-01-02"),
			rec.Summary.TotalDays,
			rec.Summary.TotalHoursWorked,
			rec.Summary.TotalOvertimeHours,
			rec.BasicSalary,
			rec.OvertimePay,
			rec.GrossSalary,
			rec.MandatoryTotal,
			rec.CashAdvanceDeduction,
			rec.NetSalary,
			rec.YearToDate,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if len(records) == 0 {
		if err := f.SetCellValue(sheet, "A2", fmt.Sprintf("No payroll records for period ending %s", end.Format("2006-01-02"))); err != nil {
			return err
		}
	}

	return f.Write(w)
}
