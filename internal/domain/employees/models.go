package employees

import "time"

type Employee struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	HireDate     time.Time `json:"hireDate"`
	PasswordHash string    `json:"-"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)
