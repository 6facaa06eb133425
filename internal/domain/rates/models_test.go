package rates

import (
	"testing"
	"time"
)

func TestNewScheduleDerivesRates(t *testing.T) {
	effective := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	schedule := NewSchedule(550, effective)

	if schedule.DailyRate != 550 {
		t.Fatalf("expected daily rate 550, got %v", schedule.DailyRate)
	}
	if schedule.HourlyRate != 68.75 {
		t.Fatalf("expected hourly rate 68.75, got %v", schedule.HourlyRate)
	}
	if schedule.OvertimeRate != 85.94 {
		t.Fatalf("expected overtime rate 85.94, got %v", schedule.OvertimeRate)
	}
	if !schedule.Active {
		t.Fatal("expected new schedule to be active")
	}
}

func TestMaxCashAdvance(t *testing.T) {
	schedule := NewSchedule(550, time.Now())
	if schedule.MaxCashAdvance() != 1100 {
		t.Fatalf("expected 1100, got %v", schedule.MaxCashAdvance())
	}
}
