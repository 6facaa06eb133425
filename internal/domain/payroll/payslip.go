package payroll

import (
	"context"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"timepay/internal/domain/money"
)

// GeneratePayslip renders one payroll record as a PDF payslip.
func (s *Service) GeneratePayslip(ctx context.Context, recordID string, w io.Writer) error {
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return err
	}
	emp, err := s.employees.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", emp.FullName()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		rec.PeriodStart.Format("Jan 2, 2006"), rec.PeriodEnd.Format("Jan 2, 2006")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Basic salary: %s", money.Peso(rec.BasicSalary)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Overtime pay: %s (%.2f hrs)", money.Peso(rec.OvertimePay), rec.Summary.TotalOvertimeHours))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Gross salary: %s", money.Peso(rec.GrossSalary)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for _, d := range rec.Deductions {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s", d.Name, money.Peso(d.Amount)))
		pdf.Ln(6)
	}
	if rec.CashAdvanceDeduction > 0 {
		pdf.Cell(0, 7, fmt.Sprintf("Cash advance: %s", money.Peso(rec.CashAdvanceDeduction)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Total deductions: %s", money.Peso(rec.TotalDeductions)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %s", money.Peso(rec.NetSalary)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Year to date: %s", money.Peso(rec.YearToDate)))

	return pdf.Output(w)
}
