package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/session"
)

const (
	boldOn  = "\x1b[1m"
	boldOff = "\x1b[0m"
)

var tableHeader = []string{
	"ID", "BUSINESS ID", "NAME", "EMAIL", "MOBILE", "DESIGNATION", "GENDER", "COURSES", "SKILLS",
}

func printTable(out io.Writer, theme string, rows []models.Employee) {
	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := strings.Join(tableHeader, "\t")
	if theme == session.ThemeDark {
		header = boldOn + header + boldOff
	}
	fmt.Fprintln(writer, header)

	for _, e := range rows {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.BusinessID, e.Name, e.Email, e.Mobile, e.Designation, e.Gender,
			strings.Join(e.Courses, ","), e.Skills)
	}

	_ = writer.Flush()
}

func printEmployee(out io.Writer, e models.Employee) {
	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(writer, "ID:\t%s\n", e.ID)
	fmt.Fprintf(writer, "Business ID:\t%s\n", e.BusinessID)
	fmt.Fprintf(writer, "Name:\t%s\n", e.Name)
	fmt.Fprintf(writer, "Email:\t%s\n", e.Email)
	fmt.Fprintf(writer, "Mobile:\t%s\n", e.Mobile)
	fmt.Fprintf(writer, "Designation:\t%s\n", e.Designation)
	fmt.Fprintf(writer, "Gender:\t%s\n", e.Gender)
	fmt.Fprintf(writer, "Courses:\t%s\n", strings.Join(e.Courses, ", "))
	fmt.Fprintf(writer, "Skills:\t%s\n", e.Skills)

	_ = writer.Flush()
}
