package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const saveEmployeeQuery = `
		INSERT INTO employees (id, business_id, name, email, mobile, designation, gender, courses, skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

const listEmployeesQuery = `SELECT id::text, business_id, name, email, mobile, designation, gender, courses, skills ` +
	`FROM employees ORDER BY created_at, id`

const getEmployeeByIDQuery = `SELECT id::text, business_id, name, email, mobile, designation, gender, courses, skills ` +
	`FROM employees WHERE id=$1`

const updateEmployeeQuery = `
		UPDATE employees
		SET business_id = $2, name = $3, email = $4, mobile = $5, designation = $6, gender = $7,
			courses = $8, skills = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id::text, business_id, name, email, mobile, designation, gender, courses, skills;
	`

const deleteEmployeeQuery = `DELETE FROM employees WHERE id = $1;`

var employeeColumns = []string{"id", "business_id", "name", "email", "mobile", "designation", "gender", "courses", "skills"}

func testEmployee() models.Employee {
	return models.Employee{
		ID:          "0f8e3c2a-8f6e-4b43-9a43-2a7d3c1b9f10",
		BusinessID:  "E1",
		Name:        "Alice Smith",
		Email:       "alice@example.com",
		Mobile:      "9876543210",
		Designation: "HR",
		Gender:      "F",
		Courses:     []string{"MCA"},
		Skills:      "Go, Rust",
	}
}

func employeeArgs(e models.Employee) []any {
	return []any{e.ID, e.BusinessID, e.Name, e.Email, e.Mobile, e.Designation, e.Gender, e.Courses, e.Skills}
}

func employeeRow(rows *pgxmock.Rows, e models.Employee) *pgxmock.Rows {
	return rows.AddRow(e.ID, e.BusinessID, e.Name, e.Email, e.Mobile, e.Designation, e.Gender, e.Courses, e.Skills)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mock.Close)

	return mock
}

func TestSaveEmployee_Success(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	employee := testEmployee()

	mock.ExpectExec(regexp.QuoteMeta(saveEmployeeQuery)).
		WithArgs(employeeArgs(employee)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := repository.NewEmployeeRepository(mock, metrics.NewMetrics(prometheus.NewRegistry()))
	err := repo.SaveEmployee(context.Background(), employee)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEmployee_QueryError(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	employee := testEmployee()

	mock.ExpectExec(regexp.QuoteMeta(saveEmployeeQuery)).
		WithArgs(employeeArgs(employee)...).
		WillReturnError(assert.AnError)

	repo := repository.NewEmployeeRepository(mock, nil)
	err := repo.SaveEmployee(context.Background(), employee)

	require.Error(t, err)
	assert.Equal(t, "failed to save employee: "+assert.AnError.Error(), err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEmployee_DuplicateBusinessID(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	employee := testEmployee()

	mock.ExpectExec(regexp.QuoteMeta(saveEmployeeQuery)).
		WithArgs(employeeArgs(employee)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_business_id_key"})

	repo := repository.NewEmployeeRepository(mock, nil)
	err := repo.SaveEmployee(context.Background(), employee)

	require.ErrorIs(t, err, repository.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "employees_business_id_key")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmployees_Success(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	first := testEmployee()
	second := testEmployee()
	second.ID = "5b0c8a51-03c1-4d0e-8f63-1f7f5d0c2e11"
	second.BusinessID = "E2"
	second.Name = "Bob Jones"

	rows := pgxmock.NewRows(employeeColumns)
	employeeRow(rows, first)
	employeeRow(rows, second)

	mock.ExpectQuery(regexp.QuoteMeta(listEmployeesQuery)).WillReturnRows(rows)

	repo := repository.NewEmployeeRepository(mock, nil)
	employees, err := repo.ListEmployees(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Employee{first, second}, employees)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmployees_Empty(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(listEmployeesQuery)).WillReturnRows(pgxmock.NewRows(employeeColumns))

	repo := repository.NewEmployeeRepository(mock, nil)
	employees, err := repo.ListEmployees(context.Background())

	require.NoError(t, err)
	assert.Empty(t, employees)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmployees_QueryError(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(listEmployeesQuery)).WillReturnError(assert.AnError)

	repo := repository.NewEmployeeRepository(mock, nil)
	_, err := repo.ListEmployees(context.Background())

	require.EqualError(t, err, "failed to list employees: "+assert.AnError.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEmployeeByID_Success(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	expEmployee := testEmployee()

	mock.ExpectQuery(regexp.QuoteMeta(getEmployeeByIDQuery)).
		WithArgs(expEmployee.ID).
		WillReturnRows(employeeRow(pgxmock.NewRows(employeeColumns), expEmployee))

	repo := repository.NewEmployeeRepository(mock, nil)
	actualEmployee, err := repo.GetEmployeeByID(context.Background(), expEmployee.ID)

	require.NoError(t, err)
	assert.Equal(t, expEmployee, actualEmployee)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEmployeeByID_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(getEmployeeByIDQuery)).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := repository.NewEmployeeRepository(mock, nil)
	actualEmployee, err := repo.GetEmployeeByID(context.Background(), "missing")

	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, models.Employee{}, actualEmployee)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEmployeeByID_QueryError(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(getEmployeeByIDQuery)).
		WithArgs("123").
		WillReturnError(assert.AnError)

	repo := repository.NewEmployeeRepository(mock, nil)
	_, err := repo.GetEmployeeByID(context.Background(), "123")

	require.EqualError(t, err, "failed to get employee by id: "+assert.AnError.Error())
	require.NotErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployee_Success(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	employee := testEmployee()
	employee.Designation = "Manager"

	mock.ExpectQuery(regexp.QuoteMeta(updateEmployeeQuery)).
		WithArgs(employeeArgs(employee)...).
		WillReturnRows(employeeRow(pgxmock.NewRows(employeeColumns), employee))

	repo := repository.NewEmployeeRepository(mock, nil)
	updated, err := repo.UpdateEmployee(context.Background(), employee)

	require.NoError(t, err)
	assert.Equal(t, employee, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	employee := testEmployee()

	mock.ExpectQuery(regexp.QuoteMeta(updateEmployeeQuery)).
		WithArgs(employeeArgs(employee)...).
		WillReturnError(pgx.ErrNoRows)

	repo := repository.NewEmployeeRepository(mock, nil)
	_, err := repo.UpdateEmployee(context.Background(), employee)

	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  pgconn.CommandTag
		err     error
		wantErr error
	}{
		{name: "deleted", result: pgxmock.NewResult("DELETE", 1)},
		{name: "missing", result: pgxmock.NewResult("DELETE", 0), wantErr: repository.ErrNotFound},
		{name: "query error", err: assert.AnError, wantErr: assert.AnError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock := newMock(t)
			exp := mock.ExpectExec(regexp.QuoteMeta(deleteEmployeeQuery)).WithArgs("abc")
			if tc.err != nil {
				exp.WillReturnError(tc.err)
			} else {
				exp.WillReturnResult(tc.result)
			}

			repo := repository.NewEmployeeRepository(mock, nil)
			err := repo.DeleteEmployee(context.Background(), "abc")

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
