package payroll

import (
	"context"
	"time"
)

type StoreAPI interface {
	ListDeductions(ctx context.Context, activeOnly bool) ([]Deduction, error)
	CreateDeduction(ctx context.Context, d Deduction) (string, error)
	DeactivateDeduction(ctx context.Context, id string) error

	CreateAdvance(ctx context.Context, a CashAdvance) (string, error)
	GetAdvance(ctx context.Context, id string) (CashAdvance, error)
	ListAdvances(ctx context.Context, employeeID string) ([]CashAdvance, error)
	ListOutstandingAdvances(ctx context.Context, employeeID string) ([]CashAdvance, error)
	OutstandingBalance(ctx context.Context, employeeID string) (float64, error)
	UpdateAdvanceStatus(ctx context.Context, id, status, approvedBy string) error
	AddAdvancePayment(ctx context.Context, advanceID, payrollID string, amount float64) error
	ReverseAdvancePayments(ctx context.Context, employeeID string, periodEnd time.Time) error

	PriorYearToDate(ctx context.Context, employeeID string, end time.Time) (float64, error)
	UpsertRecord(ctx context.Context, rec Record) (string, error)
	GetRecord(ctx context.Context, id string) (Record, error)
	ListRecords(ctx context.Context, employeeID string, limit, offset int) ([]Record, error)
	RecordsForPeriod(ctx context.Context, end time.Time) ([]Record, error)
}
