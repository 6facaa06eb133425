package authhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"timepay/internal/domain/auth"
	"timepay/internal/domain/employees"
)

type fakeEmployees struct {
	emp employees.Employee
}

func (f fakeEmployees) FindByUsername(ctx context.Context, username string) (employees.Employee, error) {
	if username != f.emp.Username {
		return employees.Employee{}, employees.ErrNotFound
	}
	return f.emp, nil
}

const testSecret = "test-secret"

func loginHandler(t *testing.T, active bool) *Handler {
	t.Helper()
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return NewHandler(fakeEmployees{emp: employees.Employee{
		ID:           "emp-1",
		Username:     "maria",
		Role:         employees.RoleEmployee,
		Active:       active,
		PasswordHash: hash,
	}}, testSecret)
}

func postLogin(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)
	return rec
}

func TestHandleLoginIssuesEightHourToken(t *testing.T) {
	h := loginHandler(t, true)
	rec := postLogin(h, `{"username":"maria","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	claims, err := auth.ParseToken(testSecret, envelope.Data.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.EmployeeID != "emp-1" {
		t.Fatalf("expected employee emp-1, got %q", claims.EmployeeID)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 8*time.Hour-time.Minute || ttl > 8*time.Hour+time.Minute {
		t.Fatalf("expected roughly 8h expiry, got %v", ttl)
	}
}

func TestHandleLoginRejectsBadCredentials(t *testing.T) {
	h := loginHandler(t, true)

	cases := map[string]string{
		"wrong password": `{"username":"maria","password":"nope"}`,
		"unknown user":   `{"username":"ghost","password":"secret123"}`,
	}
	for name, body := range cases {
		if rec := postLogin(h, body); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}

func TestHandleLoginRejectsInactiveAccount(t *testing.T) {
	h := loginHandler(t, false)
	if rec := postLogin(h, `{"username":"maria","password":"secret123"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive account, got %d", rec.Code)
	}
}
