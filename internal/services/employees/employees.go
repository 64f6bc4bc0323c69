package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/UnknownOlympus/athena/internal/lib/apperr"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/UnknownOlympus/athena/internal/validation"
)

// User-facing messages.
const (
	MsgNotFound    = "Employee not found"
	MsgDuplicateID = "Employee ID already exists"
)

type Staff struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
	newID   func() string
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) *Staff {
	return &Staff{log: log, repo: repo, metrics: metrics, newID: uuid.NewString}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		sl.Op(opn),
		slog.String("division", "employee"),
	)
}

func (s *Staff) record(operation string, err error) {
	result := "success"
	switch {
	case err == nil:
	case apperr.IsClassified(err):
		result = "rejected"
	default:
		result = "failure"
	}
	s.metrics.EmployeeOps.WithLabelValues(operation, result).Inc()
}

// Create validates the record, assigns a fresh id and stores it. It returns the new id.
func (s *Staff) Create(ctx context.Context, employee models.Employee) (id string, err error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)
	defer func() { s.record("create", err) }()

	cleaned, err := validation.Employee(employee)
	if err != nil {
		return "", err
	}
	cleaned.ID = s.newID()

	if err = s.repo.SaveEmployee(ctx, cleaned); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return "", apperr.Conflict(MsgDuplicateID, err)
		}
		return "", fmt.Errorf("failed to save new employee %s: %w", cleaned.Name, err)
	}

	log.InfoContext(ctx, "Employee created", "id", cleaned.ID, "business_id", cleaned.BusinessID)

	return cleaned.ID, nil
}

// List returns every employee, unfiltered and unsorted.
func (s *Staff) List(ctx context.Context) (employees []models.Employee, err error) {
	defer func() { s.record("list", err) }()

	employees, err = s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if employees == nil {
		employees = []models.Employee{}
	}

	return employees, nil
}

// GetByID returns the employee with the given id.
func (s *Staff) GetByID(ctx context.Context, id string) (employee models.Employee, err error) {
	defer func() { s.record("get", err) }()

	if !isValidID(id) {
		return models.Employee{}, apperr.NotFound(MsgNotFound, nil)
	}

	employee, err = s.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Employee{}, apperr.NotFound(MsgNotFound, err)
		}
		return models.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return employee, nil
}

// Update replaces every field of the employee with the given id. Partial records are rejected.
func (s *Staff) Update(ctx context.Context, id string, employee models.Employee) (updated models.Employee, err error) {
	const opn = "Employee.Update"
	log := s.initLogger(opn)
	defer func() { s.record("update", err) }()

	cleaned, err := validation.Employee(employee)
	if err != nil {
		return models.Employee{}, err
	}
	if !isValidID(id) {
		return models.Employee{}, apperr.NotFound(MsgNotFound, nil)
	}
	cleaned.ID = id

	updated, err = s.repo.UpdateEmployee(ctx, cleaned)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return models.Employee{}, apperr.NotFound(MsgNotFound, err)
		case errors.Is(err, repository.ErrAlreadyExists):
			return models.Employee{}, apperr.Conflict(MsgDuplicateID, err)
		}
		return models.Employee{}, fmt.Errorf("failed to update employee: '%s': %w", cleaned.Name, err)
	}

	log.InfoContext(ctx, "Employee updated", "id", id)

	return updated, nil
}

// Delete removes the employee with the given id.
func (s *Staff) Delete(ctx context.Context, id string) (err error) {
	const opn = "Employee.Delete"
	log := s.initLogger(opn)
	defer func() { s.record("delete", err) }()

	if !isValidID(id) {
		return apperr.NotFound(MsgNotFound, nil)
	}

	if err = s.repo.DeleteEmployee(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(MsgNotFound, err)
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	log.InfoContext(ctx, "Employee deleted", "id", id)

	return nil
}

// isValidID reports whether id can name a stored employee.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
