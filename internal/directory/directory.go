// Package directory filters and sorts a fetched employee list on the client side.
package directory

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/UnknownOlympus/athena/internal/models"
)

// Field names a sortable column by its wire name.
type Field string

const (
	FieldID          Field = "id"
	FieldBusinessID  Field = "f_Id"
	FieldName        Field = "f_Name"
	FieldEmail       Field = "f_Email"
	FieldMobile      Field = "f_Mobile"
	FieldDesignation Field = "f_Designation"
	FieldGender      Field = "f_gender"
	FieldCourses     Field = "f_Course"
	FieldSkills      Field = "f_skills"
)

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

var (
	ErrUnknownField = errors.New("unknown sort field")
	ErrUnknownOrder = errors.New("unknown sort order")
)

var fields = []Field{
	FieldID, FieldBusinessID, FieldName, FieldEmail, FieldMobile,
	FieldDesignation, FieldGender, FieldCourses, FieldSkills,
}

// Fields lists every sortable field.
func Fields() []Field {
	return slices.Clone(fields)
}

// ParseField accepts a wire name case-insensitively.
func ParseField(raw string) (Field, error) {
	for _, field := range fields {
		if strings.EqualFold(raw, string(field)) {
			return field, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
}

func ParseOrder(raw string) (Order, error) {
	switch Order(strings.ToLower(raw)) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, raw)
}

// Value returns the text of field the way it is compared.
func Value(employee models.Employee, field Field) string {
	switch field {
	case FieldID:
		return employee.ID
	case FieldBusinessID:
		return employee.BusinessID
	case FieldName:
		return employee.Name
	case FieldEmail:
		return employee.Email
	case FieldMobile:
		return employee.Mobile
	case FieldDesignation:
		return employee.Designation
	case FieldGender:
		return employee.Gender
	case FieldCourses:
		return strings.Join(employee.Courses, ",")
	case FieldSkills:
		return employee.Skills
	}
	return ""
}

// View is the local state of the employee table: the fetched list, the search
// term and the sort. The fetched list is never reordered.
type View struct {
	all    []models.Employee
	search string
	field  Field
	order  Order
}

func NewView(employees []models.Employee) *View {
	return &View{all: employees, order: Asc}
}

// Filter sets the search term. An empty term shows everything.
func (v *View) Filter(term string) {
	v.search = term
}

// SortBy selects field the way a header click does: ascending on a new field,
// flipping direction when the field is already selected ascending.
func (v *View) SortBy(field Field) {
	if v.field == field && v.order == Asc {
		v.order = Desc
	} else {
		v.order = Asc
	}
	v.field = field
}

// SetSort selects field and order directly.
func (v *View) SetSort(field Field, order Order) {
	v.field = field
	v.order = order
}

// Sort returns the selected field and order. The field is empty when unsorted.
func (v *View) Sort() (Field, Order) {
	return v.field, v.order
}

// Rows returns the employees matching the search term in the selected order.
// Equal keys keep their fetched order in both directions.
func (v *View) Rows() []models.Employee {
	term := strings.ToLower(v.search)

	rows := make([]models.Employee, 0, len(v.all))
	for _, employee := range v.all {
		if term == "" ||
			strings.Contains(strings.ToLower(employee.Name), term) ||
			strings.Contains(strings.ToLower(employee.BusinessID), term) {
			rows = append(rows, employee)
		}
	}

	if v.field == "" {
		return rows
	}

	slices.SortStableFunc(rows, func(a, b models.Employee) int {
		cmp := strings.Compare(strings.ToLower(Value(a, v.field)), strings.ToLower(Value(b, v.field)))
		if v.order == Desc {
			return -cmp
		}
		return cmp
	})

	return rows
}
