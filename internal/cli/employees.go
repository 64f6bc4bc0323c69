package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/athena/internal/directory"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/validation"
)

func newEmployeesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employee", "emp"},
		Short:   "List and manage employees",
	}

	cmd.AddCommand(
		newListCommand(app),
		newGetCommand(app),
		newCreateCommand(app),
		newUpdateCommand(app),
		newDeleteCommand(app),
	)

	return cmd
}

// employeeFlags are the editable fields of an employee record.
type employeeFlags struct {
	businessID  string
	name        string
	email       string
	mobile      string
	designation string
	gender      string
	courses     []string
	skills      string
}

func (f *employeeFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.businessID, "business-id", "", "employee id chosen by the company (f_Id)")
	flags.StringVar(&f.name, "name", "", "full name")
	flags.StringVar(&f.email, "email", "", "email address")
	flags.StringVar(&f.mobile, "mobile", "", "mobile number, 10 digits")
	flags.StringVar(&f.designation, "designation", "", "designation, e.g. HR, Manager, Sales")
	flags.StringVar(&f.gender, "gender", "", "gender, e.g. M or F")
	flags.StringSliceVar(&f.courses, "courses", nil, "comma-separated courses, e.g. MCA,BCA")
	flags.StringVar(&f.skills, "skills", "", "comma-separated skills, at most 4")
}

// apply copies every flag the user set onto employee.
func (f *employeeFlags) apply(cmd *cobra.Command, employee *models.Employee) {
	flags := cmd.Flags()
	set := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}

	set("business-id", &employee.BusinessID, f.businessID)
	set("name", &employee.Name, f.name)
	set("email", &employee.Email, f.email)
	set("mobile", &employee.Mobile, f.mobile)
	set("designation", &employee.Designation, f.designation)
	set("gender", &employee.Gender, f.gender)
	set("skills", &employee.Skills, f.skills)
	if flags.Changed("courses") {
		employee.Courses = f.courses
	}
}

func newListCommand(app *App) *cobra.Command {
	var search, sortField, sortOrder string

	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List employees, optionally filtered and sorted",
		Args:        cobra.NoArgs,
		Annotations: guarded,
		RunE: func(cmd *cobra.Command, _ []string) error {
			employees, err := app.api.ListEmployees(cmd.Context())
			if err != nil {
				return app.check(err)
			}

			view := directory.NewView(employees)
			view.Filter(search)

			app.restoreSort(view)
			if err = applySort(view, sortField, sortOrder); err != nil {
				return err
			}
			if sortField != "" || sortOrder != "" {
				field, order := view.Sort()
				app.session.State.SortField = string(field)
				app.session.State.SortOrder = string(order)
				if err = app.save(); err != nil {
					return err
				}
			}

			rows := view.Rows()
			printTable(app.out, app.session.State.Theme, rows)
			fmt.Fprintf(app.out, "%d of %d employees\n", len(rows), len(employees))

			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "show only names or business ids containing this text")
	cmd.Flags().StringVar(&sortField, "sort", "", "sort by field; repeating the last field flips the direction")
	cmd.Flags().StringVar(&sortOrder, "order", "", "force the direction: asc or desc")

	return cmd
}

// restoreSort puts back the sort of the previous list. A stored sort that no
// longer parses is ignored.
func (a *App) restoreSort(view *directory.View) {
	if a.session.State.SortField == "" {
		return
	}

	field, err := directory.ParseField(a.session.State.SortField)
	if err != nil {
		a.log.Debug("Ignoring stored sort", "error", err)
		return
	}
	order, err := directory.ParseOrder(a.session.State.SortOrder)
	if err != nil {
		order = directory.Asc
	}
	view.SetSort(field, order)
}

func applySort(view *directory.View, rawField, rawOrder string) error {
	field, _ := view.Sort()
	if rawField != "" {
		parsed, err := directory.ParseField(rawField)
		if err != nil {
			return err
		}
		field = parsed
	}

	if rawOrder == "" {
		if rawField != "" {
			view.SortBy(field)
		}
		return nil
	}

	if field == "" {
		return ErrNoSortField
	}
	order, err := directory.ParseOrder(rawOrder)
	if err != nil {
		return err
	}
	view.SetSort(field, order)

	return nil
}

func newGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "get <id>",
		Short:       "Show one employee",
		Args:        cobra.ExactArgs(1),
		Annotations: guarded,
		RunE: func(cmd *cobra.Command, args []string) error {
			employee, err := app.api.GetEmployee(cmd.Context(), args[0])
			if err != nil {
				return app.check(err)
			}

			printEmployee(app.out, employee)
			return nil
		},
	}
}

func newCreateCommand(app *App) *cobra.Command {
	var fields employeeFlags

	cmd := &cobra.Command{
		Use:         "create",
		Short:       "Register a new employee",
		Args:        cobra.NoArgs,
		Annotations: guarded,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var employee models.Employee
			fields.apply(cmd, &employee)

			cleaned, err := validation.Employee(employee)
			if err != nil {
				return err
			}

			id, err := app.api.CreateEmployee(cmd.Context(), cleaned)
			if err != nil {
				return app.check(err)
			}

			fmt.Fprintf(app.out, "Employee registered successfully: %s\n", id)
			return nil
		},
	}
	fields.bind(cmd)

	return cmd
}

func newUpdateCommand(app *App) *cobra.Command {
	var fields employeeFlags

	cmd := &cobra.Command{
		Use:         "update <id>",
		Short:       "Edit an employee; fields not given keep their current value",
		Args:        cobra.ExactArgs(1),
		Annotations: guarded,
		RunE: func(cmd *cobra.Command, args []string) error {
			employee, err := app.api.GetEmployee(cmd.Context(), args[0])
			if err != nil {
				return app.check(err)
			}
			fields.apply(cmd, &employee)

			cleaned, err := validation.Employee(employee)
			if err != nil {
				return err
			}

			updated, err := app.api.UpdateEmployee(cmd.Context(), args[0], cleaned)
			if err != nil {
				return app.check(err)
			}

			fmt.Fprintln(app.out, "Employee updated successfully")
			printEmployee(app.out, updated)
			return nil
		},
	}
	fields.bind(cmd)

	return cmd
}

func newDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "delete <id>",
		Short:       "Delete an employee",
		Args:        cobra.ExactArgs(1),
		Annotations: guarded,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.api.DeleteEmployee(cmd.Context(), args[0]); err != nil {
				return app.check(err)
			}

			fmt.Fprintln(app.out, "Employee deleted successfully")
			return nil
		},
	}
}
