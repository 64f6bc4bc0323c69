// Package validation holds the employee field rules shared by the API server
// and the command-line client.
package validation

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/UnknownOlympus/athena/internal/lib/apperr"
	"github.com/UnknownOlympus/athena/internal/models"
)

// MaxSkills is the largest number of skill tokens an employee may list.
const MaxSkills = 4

// User-facing validation messages.
const (
	MsgMissingFields = "Please fill in all fields"
	MsgInvalidMobile = "Mobile number must be exactly 10 digits (numeric only)"
	MsgTooManySkills = "Please limit your entry to a maximum of 4 skills."
	MsgInvalidEmail  = "Please enter a valid email address"
)

var mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)

// Mobile checks that the number is exactly ten decimal digits.
func Mobile(mobile string) error {
	if !mobileRegex.MatchString(mobile) {
		return apperr.Validation(MsgInvalidMobile)
	}
	return nil
}

// Email checks that the value is a bare RFC 5322 address.
func Email(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperr.Validation(MsgInvalidEmail)
	}
	return nil
}

// SplitList splits a comma-separated input, trims every token and drops empty ones.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))

	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}

	return tokens
}

// NormalizeSkills cleans a raw skills entry and joins it back with ", ".
// An entry with no tokens counts as missing, more than MaxSkills is rejected.
func NormalizeSkills(raw string) (string, error) {
	tokens := SplitList(raw)

	switch {
	case len(tokens) == 0:
		return "", apperr.Validation(MsgMissingFields)
	case len(tokens) > MaxSkills:
		return "", apperr.Validation(MsgTooManySkills)
	}

	return strings.Join(tokens, ", "), nil
}

// NormalizeCourses trims every course and drops empty entries, keeping order.
func NormalizeCourses(courses []string) []string {
	cleaned := make([]string, 0, len(courses))

	for _, course := range courses {
		if c := strings.TrimSpace(course); c != "" {
			cleaned = append(cleaned, c)
		}
	}

	return cleaned
}

// Employee validates a full employee record and returns its normalized form.
// The id is left untouched.
func Employee(employee models.Employee) (models.Employee, error) {
	cleaned := models.Employee{
		ID:          employee.ID,
		BusinessID:  strings.TrimSpace(employee.BusinessID),
		Name:        strings.TrimSpace(employee.Name),
		Email:       strings.TrimSpace(employee.Email),
		Mobile:      strings.TrimSpace(employee.Mobile),
		Designation: strings.TrimSpace(employee.Designation),
		Gender:      strings.TrimSpace(employee.Gender),
		Courses:     NormalizeCourses(employee.Courses),
	}

	for _, field := range []string{
		cleaned.BusinessID, cleaned.Name, cleaned.Email, cleaned.Mobile, cleaned.Designation, cleaned.Gender,
	} {
		if field == "" {
			return models.Employee{}, apperr.Validation(MsgMissingFields)
		}
	}
	if len(cleaned.Courses) == 0 {
		return models.Employee{}, apperr.Validation(MsgMissingFields)
	}

	skills, err := NormalizeSkills(employee.Skills)
	if err != nil {
		return models.Employee{}, err
	}
	cleaned.Skills = skills

	if err = Mobile(cleaned.Mobile); err != nil {
		return models.Employee{}, err
	}
	if err = Email(cleaned.Email); err != nil {
		return models.Employee{}, err
	}

	return cleaned, nil
}
