package timeclock

import (
	"context"
	"time"
)

type StoreAPI interface {
	Insert(ctx context.Context, rec TimeRecord) (string, error)
	Get(ctx context.Context, id string) (TimeRecord, error)
	CloseShift(ctx context.Context, id string, out time.Time, closureKind, notes string) error
	OpenShift(ctx context.Context, employeeID string) (TimeRecord, error)
	ListOpenShifts(ctx context.Context) ([]TimeRecord, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]TimeRecord, error)
	HistorySince(ctx context.Context, employeeID string, since time.Time) ([]TimeRecord, error)
}
