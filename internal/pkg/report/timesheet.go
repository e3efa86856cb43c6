package report

import (
	"fmt"
	"time"
)

// TimesheetRow is one attendance record, already formatted for print.
type TimesheetRow struct {
	Date     string
	Employee string
	CheckIn  string
	CheckOut string
	Breaks   string
	Worked   string
}

type Timesheet struct {
	From        string
	To          string
	GeneratedAt time.Time
	Rows        []TimesheetRow
	TotalHours  string
}

func (t Timesheet) period() string {
	switch {
	case t.From != "" && t.To != "":
		return fmt.Sprintf("%s - %s", t.From, t.To)
	case t.From != "":
		return "from " + t.From
	case t.To != "":
		return "until " + t.To
	}
	return "all records"
}

// RenderTimesheet writes the rows as an A4 table with a total worked line.
func RenderTimesheet(t Timesheet) ([]byte, error) {
	m := newDocument("Attendance Timesheet", t.period())

	headers := []string{"Date", "Employee", "Check-in", "Check-out", "Breaks", "Hours"}
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, []string{r.Date, r.Employee, r.CheckIn, r.CheckOut, r.Breaks, r.Worked})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"-", "no records", "-", "-", "-", "-"})
	}
	table(m, headers, rows, []uint{2, 2, 3, 3, 1, 1})

	footer(m, "Total hours", t.TotalHours)
	footer(m, "Generated", t.GeneratedAt.Format(time.RFC1123))

	return output(m)
}
