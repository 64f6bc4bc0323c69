package validation_test

import (
	"testing"

	"github.com/UnknownOlympus/athena/internal/lib/apperr"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEmployee() models.Employee {
	return models.Employee{
		BusinessID:  "E100",
		Name:        "Alice Smith",
		Email:       "alice@example.com",
		Mobile:      "9876543210",
		Designation: "HR",
		Gender:      "F",
		Courses:     []string{"MCA", "BCA"},
		Skills:      "Go, Rust, C++",
	}
}

func TestMobile(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"12345", "12345678901", "12345abcde", "", " 987654321", "98765-4321"} {
		err := validation.Mobile(bad)
		require.ErrorIs(t, err, apperr.ErrValidation, "mobile %q", bad)
		assert.Equal(t, validation.MsgInvalidMobile, apperr.MessageOf(err, ""))
	}

	require.NoError(t, validation.Mobile("9876543210"))
}

func TestEmail(t *testing.T) {
	t.Parallel()

	require.NoError(t, validation.Email("testuser@example.com"))
	require.ErrorIs(t, validation.Email("testuser.com"), apperr.ErrValidation)
	require.ErrorIs(t, validation.Email("Bob <bob@example.com>"), apperr.ErrValidation)
}

func TestNormalizeSkills(t *testing.T) {
	t.Parallel()

	t.Run("keeps clean input", func(t *testing.T) {
		t.Parallel()

		skills, err := validation.NormalizeSkills("Go, Rust, C++")
		require.NoError(t, err)
		assert.Equal(t, "Go, Rust, C++", skills)
	})

	t.Run("trims and drops empty tokens", func(t *testing.T) {
		t.Parallel()

		skills, err := validation.NormalizeSkills(" Go,,  Rust ,  , C++ ,Java ")
		require.NoError(t, err)
		assert.Equal(t, "Go, Rust, C++, Java", skills)
	})

	t.Run("rejects more than four skills", func(t *testing.T) {
		t.Parallel()

		_, err := validation.NormalizeSkills("Go, , Rust ,  C++ , Java,Extra")
		require.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, validation.MsgTooManySkills, apperr.MessageOf(err, ""))
	})

	t.Run("rejects only separators", func(t *testing.T) {
		t.Parallel()

		_, err := validation.NormalizeSkills(" , ,")
		require.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, validation.MsgMissingFields, apperr.MessageOf(err, ""))
	})
}

func TestNormalizeCourses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"MCA", "BSc"}, validation.NormalizeCourses([]string{" MCA", "", "BSc ", "  "}))
	assert.Empty(t, validation.NormalizeCourses(nil))
}

func TestEmployee(t *testing.T) {
	t.Parallel()

	t.Run("valid record", func(t *testing.T) {
		t.Parallel()

		input := validEmployee()
		input.Name = "  Alice Smith "
		input.Skills = "Go ,Rust,, C++"

		cleaned, err := validation.Employee(input)

		require.NoError(t, err)
		expected := validEmployee()
		assert.Equal(t, expected, cleaned)
	})

	missing := map[string]func(e *models.Employee){
		"business id": func(e *models.Employee) { e.BusinessID = " " },
		"name":        func(e *models.Employee) { e.Name = "" },
		"email":       func(e *models.Employee) { e.Email = "" },
		"mobile":      func(e *models.Employee) { e.Mobile = "" },
		"designation": func(e *models.Employee) { e.Designation = "" },
		"gender":      func(e *models.Employee) { e.Gender = "" },
		"courses":     func(e *models.Employee) { e.Courses = []string{" "} },
		"skills":      func(e *models.Employee) { e.Skills = "" },
	}

	for name, mutate := range missing {
		t.Run("missing "+name, func(t *testing.T) {
			t.Parallel()

			input := validEmployee()
			mutate(&input)

			_, err := validation.Employee(input)

			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, validation.MsgMissingFields, apperr.MessageOf(err, ""))
		})
	}

	t.Run("bad mobile", func(t *testing.T) {
		t.Parallel()

		input := validEmployee()
		input.Mobile = "12345abcde"

		_, err := validation.Employee(input)

		require.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, validation.MsgInvalidMobile, apperr.MessageOf(err, ""))
	})

	t.Run("bad email", func(t *testing.T) {
		t.Parallel()

		input := validEmployee()
		input.Email = "not-an-email"

		_, err := validation.Employee(input)

		require.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, validation.MsgInvalidEmail, apperr.MessageOf(err, ""))
	})
}
