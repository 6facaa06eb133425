package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"timepay/internal/domain/payroll"
	"timepay/internal/domain/rates"
	"timepay/internal/requestctx"
	"timepay/internal/transport/http/api"
	"timepay/internal/transport/http/middleware"
	"timepay/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
	Rates   *rates.Store
	Loc     *time.Location
}

func NewHandler(service *payroll.Service, rateStore *rates.Store, loc *time.Location) *Handler {
	return &Handler{Service: service, Rates: rateStore, Loc: loc}
}

func (h *Handler) HandleCurrentRate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	schedule, err := h.Rates.Current(r.Context())
	if errors.Is(err, rates.ErrRateNotFound) {
		api.Fail(w, http.StatusNotFound, "no_rate", "no active salary rate configured", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to load rate", reqID)
		return
	}
	api.Success(w, schedule, reqID)
}

type rateRequest struct {
	DailyRate     float64 `json:"dailyRate"`
	EffectiveDate string  `json:"effectiveDate"`
	Reason        string  `json:"reason"`
}

func (h *Handler) HandleReplaceRate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload rateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.DailyRate <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_rate", "daily rate must be positive", reqID)
		return
	}

	effective := time.Now().In(h.Loc)
	if payload.EffectiveDate != "" {
		parsed, err := shared.ParseDate(payload.EffectiveDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid effective date", reqID)
			return
		}
		effective = parsed
	}

	schedule := rates.NewSchedule(payload.DailyRate, effective)
	schedule.Reason = payload.Reason
	saved, err := h.Rates.Replace(r.Context(), schedule)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to replace rate", reqID)
		return
	}
	api.Created(w, saved, reqID)
}

func (h *Handler) HandleRateHistory(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 20, 100)
	history, err := h.Rates.History(r.Context(), page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to load rate history", reqID)
		return
	}
	api.Success(w, history, reqID)
}

func (h *Handler) HandleListDeductions(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	list, err := h.Service.Deductions(r.Context(), r.URL.Query().Get("all") == "")
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list deductions", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) HandleCreateDeduction(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload payroll.Deduction
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_deduction", "deduction name is required", reqID)
		return
	}
	switch payload.CalcType {
	case payroll.CalcTypePercentage:
		if payload.PercentageRate <= 0 || payload.PercentageRate > 1 {
			api.Fail(w, http.StatusBadRequest, "invalid_deduction", "percentage rate must be a fraction in (0, 1]", reqID)
			return
		}
	case payroll.CalcTypeFixed:
		if payload.FixedAmount <= 0 {
			api.Fail(w, http.StatusBadRequest, "invalid_deduction", "fixed amount must be positive", reqID)
			return
		}
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_deduction", "calc type must be Fixed or Percentage", reqID)
		return
	}

	created, err := h.Service.CreateDeduction(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to create deduction", reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) HandleDeactivateDeduction(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	err := h.Service.DeactivateDeduction(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, payroll.ErrDeductionNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "mandatory deduction not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to deactivate deduction", reqID)
		return
	}
	api.Success(w, map[string]any{"deactivated": true}, reqID)
}

type advanceRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

func (h *Handler) HandleRequestAdvance(w http.ResponseWriter, r *http.Request) {
	emp, _ := middleware.GetEmployee(r.Context())
	reqID := requestctx.GetRequestID(r.Context())

	var payload advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	advance, err := h.Service.RequestAdvance(r.Context(), emp.EmployeeID, payload.Amount, payload.Reason)
	switch {
	case errors.Is(err, payroll.ErrInvalidAdvanceRequest):
		api.Fail(w, http.StatusBadRequest, "invalid_advance", "advance amount must be positive", reqID)
		return
	case errors.Is(err, payroll.ErrAdvanceLimitExceeded):
		api.Fail(w, http.StatusUnprocessableEntity, "advance_limit", "cash advance limit exceeded", reqID)
		return
	case errors.Is(err, rates.ErrRateNotFound):
		api.Fail(w, http.StatusConflict, "no_rate", "no active salary rate configured", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to request advance", reqID)
		return
	}
	api.Created(w, advance, reqID)
}

func (h *Handler) HandleListAdvances(w http.ResponseWriter, r *http.Request) {
	emp, _ := middleware.GetEmployee(r.Context())
	reqID := requestctx.GetRequestID(r.Context())

	employeeID := emp.EmployeeID
	if requested := r.URL.Query().Get("employeeId"); requested != "" && requested != emp.EmployeeID {
		if !emp.Admin() {
			api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's advances", reqID)
			return
		}
		employeeID = requested
	}

	list, err := h.Service.Advances(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list advances", reqID)
		return
	}
	api.Success(w, list, reqID)
}

type advanceDecision struct {
	Approve bool `json:"approve"`
}

func (h *Handler) HandleDecideAdvance(w http.ResponseWriter, r *http.Request) {
	emp, _ := middleware.GetEmployee(r.Context())
	reqID := requestctx.GetRequestID(r.Context())

	var payload advanceDecision
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	advance, err := h.Service.DecideAdvance(r.Context(), chi.URLParam(r, "id"), emp.EmployeeID, payload.Approve)
	switch {
	case errors.Is(err, payroll.ErrAdvanceNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "cash advance not found", reqID)
		return
	case errors.Is(err, payroll.ErrAdvanceNotPending):
		api.Fail(w, http.StatusConflict, "not_pending", "cash advance already decided", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to decide advance", reqID)
		return
	}
	api.Success(w, advance, reqID)
}

type runRequest struct {
	PeriodEnd string `json:"periodEnd"`
}

func (h *Handler) HandleRunPayroll(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload runRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	end, err := shared.ParseDate(payload.PeriodEnd)
	if err != nil || end.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "periodEnd is required as YYYY-MM-DD", reqID)
		return
	}

	result, err := h.Service.RunPeriod(r.Context(), end)
	switch {
	case errors.Is(err, payroll.ErrPeriodEndNotSunday):
		api.Fail(w, http.StatusUnprocessableEntity, "period_not_sunday", "payroll period must end on a Sunday", reqID)
		return
	case errors.Is(err, rates.ErrRateNotFound):
		api.Fail(w, http.StatusConflict, "no_rate", "no active salary rate configured", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "payroll run failed", reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	emp, _ := middleware.GetEmployee(r.Context())
	reqID := requestctx.GetRequestID(r.Context())

	employeeID := emp.EmployeeID
	if requested := r.URL.Query().Get("employeeId"); requested != "" && requested != emp.EmployeeID {
		if !emp.Admin() {
			api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's payroll", reqID)
			return
		}
		employeeID = requested
	}

	page := shared.ParsePagination(r, 20, 100)
	records, err := h.Service.Records(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list payroll records", reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	emp, _ := middleware.GetEmployee(r.Context())
	reqID := requestctx.GetRequestID(r.Context())

	rec, err := h.Service.Record(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, payroll.ErrRecordNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "payroll record not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to load payroll record", reqID)
		return
	}
	if rec.EmployeeID != emp.EmployeeID && !emp.Admin() {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's payroll", reqID)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) HandlePayslip(w http.ResponseWriter, r *http.Request) {
	emp, _ := middleware.GetEmployee(r.Context())
	reqID := requestctx.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	rec, err := h.Service.Record(r.Context(), id)
	if errors.Is(err, payroll.ErrRecordNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "payroll record not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to load payroll record", reqID)
		return
	}
	if rec.EmployeeID != emp.EmployeeID && !emp.Admin() {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's payslip", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.pdf", id))
	if err := h.Service.GeneratePayslip(r.Context(), id, w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to render payslip", reqID)
	}
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	end, err := shared.ParseDate(r.URL.Query().Get("periodEnd"))
	if err != nil || end.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "periodEnd query param is required as YYYY-MM-DD", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=register-%s.xlsx", end.Format("2006-01-02")))
	if err := h.Service.GenerateRegister(r.Context(), end, w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to render register", reqID)
	}
}
