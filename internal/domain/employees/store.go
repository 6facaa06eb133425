package employees

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `id, username, first_name, last_name, role, active, hire_date, password_hash`

func (s *Store) FindByUsername(ctx context.Context, username string) (Employee, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE username = $1
  `, username))
}

func (s *Store) GetByID(ctx context.Context, id string) (Employee, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
}

func (s *Store) ListActive(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE active
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Username, &e.FirstName, &e.LastName, &e.Role, &e.Active, &e.HireDate, &e.PasswordHash); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (s *Store) Create(ctx context.Context, e Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (username, first_name, last_name, role, active, hire_date, password_hash)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, e.Username, e.FirstName, e.LastName, e.Role, e.Active, e.HireDate, e.PasswordHash).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) scanOne(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Username, &e.FirstName, &e.LastName, &e.Role, &e.Active, &e.HireDate, &e.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}
