package employees_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/UnknownOlympus/athena/internal/lib/apperr"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/UnknownOlympus/athena/internal/services/employees"
	"github.com/UnknownOlympus/athena/internal/validation"
	mocks "github.com/UnknownOlympus/athena/mock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const knownID = "0f8e3c2a-8f6e-4b43-9a43-2a7d3c1b9f10"

func newStaff(t *testing.T) (*employees.Staff, *mocks.EmployeeRepoIface, *metrics.Metrics) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	mockRepo := mocks.NewEmployeeRepoIface(t)
	testMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	return employees.NewStaff(logger, mockRepo, testMetrics), mockRepo, testMetrics
}

func sampleEmployee() models.Employee {
	return models.Employee{
		BusinessID:  "E1",
		Name:        "Alice Smith",
		Email:       "alice@example.com",
		Mobile:      "9876543210",
		Designation: "HR",
		Gender:      "F",
		Courses:     []string{"MCA"},
		Skills:      "Go , Rust,,C++",
	}
}

func TestNewStaff(t *testing.T) {
	t.Parallel()

	s := employees.NewStaff(slog.Default(), new(mocks.EmployeeRepoIface), metrics.NewMetrics(prometheus.NewRegistry()))

	assert.NotNil(t, s)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("round trip through the store", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, testMetrics := newStaff(t)
		var stored models.Employee

		mockRepo.On("SaveEmployee", mock.Anything, mock.AnythingOfType("models.Employee")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(models.Employee) }).
			Return(nil).Once()

		id, err := staff.Create(context.Background(), sampleEmployee())
		require.NoError(t, err)
		_, parseErr := uuid.Parse(id)
		require.NoError(t, parseErr)

		mockRepo.On("GetEmployeeByID", mock.Anything, id).Return(
			func(context.Context, string) (models.Employee, error) { return stored, nil },
		).Once()

		got, err := staff.GetByID(context.Background(), id)
		require.NoError(t, err)

		expected := sampleEmployee()
		expected.ID = id
		expected.Skills = "Go, Rust, C++"
		assert.Equal(t, expected, got)
		assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.EmployeeOps.WithLabelValues("create", "success")), 0)
	})

	t.Run("too many skills", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, testMetrics := newStaff(t)
		input := sampleEmployee()
		input.Skills = "Go, , Rust ,  C++ , Java,Extra"

		_, err := staff.Create(context.Background(), input)

		require.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, validation.MsgTooManySkills, apperr.MessageOf(err, ""))
		mockRepo.AssertNotCalled(t, "SaveEmployee", mock.Anything, mock.Anything)
		assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.EmployeeOps.WithLabelValues("create", "rejected")), 0)
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		input := sampleEmployee()
		input.Designation = ""

		_, err := staff.Create(context.Background(), input)

		require.ErrorIs(t, err, apperr.ErrValidation)
		mockRepo.AssertNotCalled(t, "SaveEmployee", mock.Anything, mock.Anything)
	})

	t.Run("duplicate business id", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		mockRepo.On("SaveEmployee", mock.Anything, mock.Anything).Return(repository.ErrAlreadyExists).Once()

		_, err := staff.Create(context.Background(), sampleEmployee())

		require.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, employees.MsgDuplicateID, apperr.MessageOf(err, ""))
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, testMetrics := newStaff(t)
		mockRepo.On("SaveEmployee", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		_, err := staff.Create(context.Background(), sampleEmployee())

		require.ErrorContains(t, err, "failed to save new employee")
		assert.False(t, apperr.IsClassified(err))
		assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.EmployeeOps.WithLabelValues("create", "failure")), 0)
	})
}

func TestList(t *testing.T) {
	t.Parallel()

	t.Run("returns the store content", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		all := []models.Employee{{ID: knownID, Name: "Alice"}}
		mockRepo.On("ListEmployees", mock.Anything).Return(all, nil).Once()

		got, err := staff.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, all, got)
	})

	t.Run("empty store gives an empty slice", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		mockRepo.On("ListEmployees", mock.Anything).Return(nil, nil).Once()

		got, err := staff.List(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		mockRepo.On("ListEmployees", mock.Anything).Return(nil, assert.AnError).Once()

		_, err := staff.List(context.Background())

		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		mockRepo.On("GetEmployeeByID", mock.Anything, knownID).Return(models.Employee{}, repository.ErrNotFound).Once()

		_, err := staff.GetByID(context.Background(), knownID)

		require.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, employees.MsgNotFound, apperr.MessageOf(err, ""))
	})

	t.Run("malformed id never reaches the store", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)

		_, err := staff.GetByID(context.Background(), "not-a-uuid")

		require.ErrorIs(t, err, apperr.ErrNotFound)
		mockRepo.AssertNotCalled(t, "GetEmployeeByID", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		mockRepo.On("GetEmployeeByID", mock.Anything, knownID).Return(models.Employee{}, assert.AnError).Once()

		_, err := staff.GetByID(context.Background(), knownID)

		require.ErrorIs(t, err, assert.AnError)
		assert.False(t, apperr.IsClassified(err))
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("replaces the whole record", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		expected := sampleEmployee()
		expected.ID = knownID
		expected.Skills = "Go, Rust, C++"

		mockRepo.On("UpdateEmployee", mock.Anything, expected).Return(expected, nil).Once()

		updated, err := staff.Update(context.Background(), knownID, sampleEmployee())

		require.NoError(t, err)
		assert.Equal(t, expected, updated)
	})

	t.Run("partial record", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)

		_, err := staff.Update(context.Background(), knownID, models.Employee{Name: "Only a name"})

		require.ErrorIs(t, err, apperr.ErrValidation)
		mockRepo.AssertNotCalled(t, "UpdateEmployee", mock.Anything, mock.Anything)
	})

	t.Run("bad mobile", func(t *testing.T) {
		t.Parallel()

		staff, _, _ := newStaff(t)
		input := sampleEmployee()
		input.Mobile = "12345678901"

		_, err := staff.Update(context.Background(), knownID, input)

		require.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, validation.MsgInvalidMobile, apperr.MessageOf(err, ""))
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		mockRepo.On("UpdateEmployee", mock.Anything, mock.Anything).Return(models.Employee{}, repository.ErrNotFound).Once()

		_, err := staff.Update(context.Background(), knownID, sampleEmployee())

		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		staff, _, _ := newStaff(t)

		_, err := staff.Update(context.Background(), "42", sampleEmployee())

		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("business id taken by another employee", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		mockRepo.On("UpdateEmployee", mock.Anything, mock.Anything).Return(models.Employee{}, repository.ErrAlreadyExists).Once()

		_, err := staff.Update(context.Background(), knownID, sampleEmployee())

		require.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		mockRepo.On("UpdateEmployee", mock.Anything, mock.Anything).Return(models.Employee{}, assert.AnError).Once()

		_, err := staff.Update(context.Background(), knownID, sampleEmployee())

		require.ErrorContains(t, err, "failed to update employee")
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("then get is not found", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		mockRepo.On("DeleteEmployee", mock.Anything, knownID).Return(nil).Once()
		mockRepo.On("GetEmployeeByID", mock.Anything, knownID).Return(models.Employee{}, repository.ErrNotFound).Once()

		require.NoError(t, staff.Delete(context.Background(), knownID))

		_, err := staff.GetByID(context.Background(), knownID)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		mockRepo.On("DeleteEmployee", mock.Anything, knownID).Return(repository.ErrNotFound).Once()

		require.ErrorIs(t, staff.Delete(context.Background(), knownID), apperr.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		staff, _, _ := newStaff(t)

		require.ErrorIs(t, staff.Delete(context.Background(), "nope"), apperr.ErrNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _ := newStaff(t)
		mockRepo.On("DeleteEmployee", mock.Anything, knownID).Return(assert.AnError).Once()

		err := staff.Delete(context.Background(), knownID)

		require.ErrorIs(t, err, assert.AnError)
		assert.False(t, apperr.IsClassified(err))
	})
}
