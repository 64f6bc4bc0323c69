package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id::text, business_id, name, email, mobile, designation, gender, courses, skills`

// SaveEmployee inserts a new employee. A duplicate business id yields ErrAlreadyExists.
func (r *Repository) SaveEmployee(ctx context.Context, employee models.Employee) error {
	defer r.observe("save_employee", time.Now())

	query := `
		INSERT INTO employees (id, business_id, name, email, mobile, designation, gender, courses, skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.db.Exec(ctx, query, employee.ID, employee.BusinessID, employee.Name, employee.Email,
		employee.Mobile, employee.Designation, employee.Gender, employee.Courses, employee.Skills)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", classify(err))
	}

	return nil
}

// ListEmployees returns every employee in insertion order.
func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	defer r.observe("list_employees", time.Now())

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	employees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Employee, error) {
		return scanEmployee(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan employees: %w", err)
	}

	return employees, nil
}

// GetEmployeeByID retrieves an employee from the database by their ID.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier string) (models.Employee, error) {
	defer r.observe("get_employee_by_id", time.Now())

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`

	result, err := scanEmployee(r.db.QueryRow(ctx, query, identifier))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", classify(err))
	}

	return result, nil
}

// UpdateEmployee replaces every field of the employee with the given id and returns the stored state.
func (r *Repository) UpdateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	defer r.observe("update_employee", time.Now())

	query := `
		UPDATE employees
		SET business_id = $2, name = $3, email = $4, mobile = $5, designation = $6, gender = $7,
			courses = $8, skills = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING ` + employeeColumns + `;
	`

	result, err := scanEmployee(r.db.QueryRow(ctx, query, employee.ID, employee.BusinessID, employee.Name,
		employee.Email, employee.Mobile, employee.Designation, employee.Gender, employee.Courses, employee.Skills))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", classify(err))
	}

	return result, nil
}

// DeleteEmployee removes the employee with the given id.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier string) error {
	defer r.observe("delete_employee", time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1;`, identifier)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete employee: %w", ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (models.Employee, error) {
	var result models.Employee

	err := row.Scan(&result.ID, &result.BusinessID, &result.Name, &result.Email, &result.Mobile,
		&result.Designation, &result.Gender, &result.Courses, &result.Skills)

	return result, err
}
