package cli

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tamathecxder/randomail"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/validation"
)

var (
	seedFirstNames   = []string{"Asha", "Ravi", "Meera", "Arjun", "Priya", "Karan", "Neha", "Vikram"}
	seedLastNames    = []string{"Sharma", "Patel", "Iyer", "Khan", "Reddy", "Das", "Nair", "Gupta"}
	seedDesignations = []string{"HR", "Manager", "Sales"}
	seedGenders      = []string{"M", "F"}
	seedCourses      = []string{"MCA", "BCA", "BSC"}
	seedSkills       = []string{"Go", "SQL", "Excel", "Negotiation", "Recruiting", "Docker"}
)

func newSeedCommand(app *App) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:         "seed",
		Short:       "Create demo employees with random data",
		Args:        cobra.NoArgs,
		Annotations: guarded,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}

			for range count {
				employee, err := validation.Employee(randomEmployee())
				if err != nil {
					return err
				}

				id, err := app.api.CreateEmployee(cmd.Context(), employee)
				if err != nil {
					return app.check(err)
				}

				fmt.Fprintf(app.out, "Created %s (%s) %s\n", employee.Name, employee.BusinessID, id)
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of employees to create")

	return cmd
}

func randomEmployee() models.Employee {
	businessID := "SEED-" + strings.ToUpper(uuid.NewString()[:8])

	email := randomail.GenerateRandomEmail()
	if validation.Email(email) != nil {
		email = strings.ToLower(businessID) + "@example.com"
	}

	skills := make([]string, 0, 2)
	for _, i := range rand.Perm(len(seedSkills))[:2] {
		skills = append(skills, seedSkills[i])
	}

	return models.Employee{
		BusinessID:  businessID,
		Name:        pick(seedFirstNames) + " " + pick(seedLastNames),
		Email:       email,
		Mobile:      fmt.Sprintf("9%09d", rand.IntN(1_000_000_000)),
		Designation: pick(seedDesignations),
		Gender:      pick(seedGenders),
		Courses:     []string{pick(seedCourses)},
		Skills:      strings.Join(skills, ", "),
	}
}

func pick(values []string) string {
	return values[rand.IntN(len(values))]
}
