package authhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"timepay/internal/domain/auth"
	"timepay/internal/domain/employees"
	"timepay/internal/requestctx"
	"timepay/internal/transport/http/api"
)

const tokenTTL = 8 * time.Hour

// EmployeeSource resolves login usernames to employee accounts.
type EmployeeSource interface {
	FindByUsername(ctx context.Context, username string) (employees.Employee, error)
}

type Handler struct {
	Employees EmployeeSource
	Secret    string
}

func NewHandler(store EmployeeSource, secret string) *Handler {
	return &Handler{Employees: store, Secret: secret}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	emp, err := h.authenticate(r.Context(), payload.Username, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "login failed", reqID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{EmployeeID: emp.ID, Role: emp.Role}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", reqID)
		return
	}

	api.Success(w, map[string]any{
		"token":    token,
		"employee": emp,
	}, reqID)
}

// authenticate folds unknown users, deactivated accounts and password
// mismatches into the same error so the response never reveals which
// part failed.
func (h *Handler) authenticate(ctx context.Context, username, password string) (employees.Employee, error) {
	emp, err := h.Employees.FindByUsername(ctx, username)
	if err != nil || !emp.Active {
		return employees.Employee{}, auth.ErrInvalidCredentials
	}
	if err := auth.CheckPassword(emp.PasswordHash, password); err != nil {
		return employees.Employee{}, auth.ErrInvalidCredentials
	}
	return emp, nil
}
