package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64

	shiftsAutoClosed uint64
	payrollRuns      uint64
	payrollFailures  uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordAutoClosed(count int) {
	if c == nil || count <= 0 {
		return
	}
	atomic.AddUint64(&c.shiftsAutoClosed, uint64(count))
}

func (c *Collector) RecordPayrollRun(failed int) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.payrollRuns, 1)
	atomic.AddUint64(&c.payrollFailures, uint64(failed))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":    total,
		"errorsTotal":      atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":    avg,
		"shiftsAutoClosed": atomic.LoadUint64(&c.shiftsAutoClosed),
		"payrollRuns":      atomic.LoadUint64(&c.payrollRuns),
		"payrollFailures":  atomic.LoadUint64(&c.payrollFailures),
	}
}
