package repository

import (
	"context"
	"time"

	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// AdminRepoIface represents the credential store.
type AdminRepoIface interface {
	SaveAdmin(ctx context.Context, username, passwordHash string) error
	GetAdminByUsername(ctx context.Context, username string) (models.Admin, error)
}

func NewAdminRepository(db Database, metrics *metrics.Metrics) AdminRepoIface {
	return &Repository{db: db, metrics: metrics}
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	SaveEmployee(ctx context.Context, employee models.Employee) error
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier string) (models.Employee, error)
	UpdateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier string) error
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}

// observe records the duration of a query started at startTime.
func (r *Repository) observe(queryType string, startTime time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
}
