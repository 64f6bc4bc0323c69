// Package server exposes the auth and employee services over HTTP and runs the
// monitoring endpoints next to them.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/UnknownOlympus/athena/internal/auth"
	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
)

const shutdownTimeout = 5 * time.Second

// AuthService is the part of the auth service the API depends on.
type AuthService interface {
	Register(ctx context.Context, username, password string) (auth.Session, error)
	Login(ctx context.Context, username, password string) (auth.Session, error)
	VerifySession(ctx context.Context, token string) (*auth.Claims, error)
	Logout(ctx context.Context, token string) error
}

// EmployeeService is the part of the employee service the API depends on.
type EmployeeService interface {
	Create(ctx context.Context, employee models.Employee) (string, error)
	List(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, id string) (models.Employee, error)
	Update(ctx context.Context, id string, employee models.Employee) (models.Employee, error)
	Delete(ctx context.Context, id string) error
}

// Options configure the router.
type Options struct {
	AllowedOrigin         string
	UploadsDir            string
	CookieSecure          bool
	ProtectEmployeeRoutes bool
}

type API struct {
	log     *slog.Logger
	auth    AuthService
	staff   EmployeeService
	metrics *metrics.Metrics
	opts    Options
}

func NewAPI(
	log *slog.Logger,
	authService AuthService,
	staff EmployeeService,
	metrics *metrics.Metrics,
	opts Options,
) *API {
	return &API{log: log, auth: authService, staff: staff, metrics: metrics, opts: opts}
}

// Router builds the gin engine with every route and middleware attached.
func (a *API) Router() *gin.Engine {
	router := gin.New()
	router.Use(
		a.recovery(),
		a.requestLogger(),
		a.observe(),
		a.cors(),
	)

	if a.opts.UploadsDir != "" {
		router.Static("/uploads", a.opts.UploadsDir)
	}

	router.POST("/register", a.register)
	router.POST("/login", a.login)
	router.POST("/logout", a.logout)
	router.GET("/dashboard", a.RequireSession(), a.dashboard)

	staff := router.Group("/")
	if a.opts.ProtectEmployeeRoutes {
		staff.Use(a.RequireSession())
	}
	staff.POST("/register-employee", a.createEmployee)
	staff.GET("/employees", a.listEmployees)
	staff.GET("/employees/:id", a.getEmployee)
	staff.PUT("/update-employee/:id", a.updateEmployee)
	staff.DELETE("/delete-employee/:id", a.deleteEmployee)

	return router
}

// StartAPIServer serves handler until ctx is cancelled, then shuts down gracefully.
func StartAPIServer(ctx context.Context, log *slog.Logger, handler http.Handler, cfg config.HTTPConfig) error {
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return serve(ctx, log, srv, "API")
}

func serve(ctx context.Context, log *slog.Logger, srv *http.Server, name string) error {
	errCh := make(chan error, 1)

	go func() {
		log.InfoContext(ctx, "Starting "+name+" server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s server failed: %w", name, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.InfoContext(ctx, "Shutting down "+name+" server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down %s server: %w", name, err)
	}

	log.InfoContext(ctx, name+" server stopped.")

	return nil
}
