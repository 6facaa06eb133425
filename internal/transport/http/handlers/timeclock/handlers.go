package timeclockhandler

import (
	"errors"
	"net/http"
	"time"

	"timepay/internal/domain/rates"
	"timepay/internal/domain/timeclock"
	"timepay/internal/requestctx"
	"timepay/internal/transport/http/api"
	"timepay/internal/transport/http/middleware"
	"timepay/internal/transport/http/shared"
)

type Handler struct {
	Service *timeclock.Service
	Loc     *time.Location
}

func NewHandler(service *timeclock.Service, loc *time.Location) *Handler {
	return &Handler{Service: service, Loc: loc}
}

func (h *Handler) HandleClockIn(w http.ResponseWriter, r *http.Request) {
	emp, _ := middleware.GetEmployee(r.Context())
	reqID := requestctx.GetRequestID(r.Context())

	rec, result, err := h.Service.ClockIn(r.Context(), emp.EmployeeID, time.Now())
	if errors.Is(err, timeclock.ErrShiftRejected) {
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "shift_rejected", "clock-in rejected by validation", result, reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to record clock-in", reqID)
		return
	}

	api.Created(w, map[string]any{
		"record":   rec,
		"warnings": result.Warnings,
	}, reqID)
}

func (h *Handler) HandleClockOut(w http.ResponseWriter, r *http.Request) {
	emp, _ := middleware.GetEmployee(r.Context())
	reqID := requestctx.GetRequestID(r.Context())

	rec, result, err := h.Service.ClockOut(r.Context(), emp.EmployeeID, time.Now())
	switch {
	case errors.Is(err, timeclock.ErrNoOpenShift):
		api.Fail(w, http.StatusConflict, "no_open_shift", "no open shift to clock out of", reqID)
		return
	case errors.Is(err, timeclock.ErrShiftRejected):
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "shift_rejected", "clock-out rejected by validation", result, reqID)
		return
	case errors.Is(err, rates.ErrRateNotFound):
		api.Fail(w, http.StatusConflict, "no_rate", "no active salary rate configured", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to record clock-out", reqID)
		return
	}

	api.Success(w, map[string]any{
		"record":   rec,
		"warnings": result.Warnings,
	}, reqID)
}

func (h *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	emp, _ := middleware.GetEmployee(r.Context())
	reqID := requestctx.GetRequestID(r.Context())

	employeeID, ok := h.targetEmployee(emp, r)
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's records", reqID)
		return
	}

	now := time.Now().In(h.Loc)
	from := now.AddDate(0, 0, -30)
	to := now
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid from date", reqID)
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid to date", reqID)
			return
		}
		to = parsed
	}

	records, err := h.Service.Records(r.Context(), employeeID, from, to)
	if errors.Is(err, rates.ErrRateNotFound) {
		api.Fail(w, http.StatusConflict, "no_rate", "no active salary rate configured", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list records", reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	emp, _ := middleware.GetEmployee(r.Context())
	reqID := requestctx.GetRequestID(r.Context())

	employeeID, ok := h.targetEmployee(emp, r)
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's summary", reqID)
		return
	}

	// Without an explicit end the summary covers the week in progress,
	// ending on the enclosing Sunday.
	end := time.Now().In(h.Loc)
	end = end.AddDate(0, 0, (7-int(end.Weekday()))%7)
	if raw := r.URL.Query().Get("end"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid end date", reqID)
			return
		}
		end = parsed
	}

	summary, err := h.Service.Summary(r.Context(), employeeID, end)
	if errors.Is(err, timeclock.ErrPeriodEndNotSunday) {
		api.Fail(w, http.StatusUnprocessableEntity, "period_not_sunday", "summary period must end on a Sunday", reqID)
		return
	}
	if errors.Is(err, rates.ErrRateNotFound) {
		api.Fail(w, http.StatusConflict, "no_rate", "no active salary rate configured", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to build summary", reqID)
		return
	}
	api.Success(w, summary, reqID)
}

// targetEmployee resolves the employee being queried. Admins may pass an
// employeeId query param; everyone else is pinned to themselves.
func (h *Handler) targetEmployee(emp middleware.EmployeeContext, r *http.Request) (string, bool) {
	requested := r.URL.Query().Get("employeeId")
	if requested == "" || requested == emp.EmployeeID {
		return emp.EmployeeID, true
	}
	if emp.Admin() {
		return requested, true
	}
	return "", false
}
