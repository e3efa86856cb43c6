package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/apiclient"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
	attendanceService "github.com/cmlabs-hris/workflow-erp/internal/service/attendance"
	"github.com/spf13/cobra"
)

type attendanceFilter struct {
	employeeID string
	from       string
	to         string
}

func (f *attendanceFilter) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.employeeID, "employee", "", "Employee ID (managers only)")
	cmd.Flags().StringVar(&f.from, "from", "", "First day, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "Last day, YYYY-MM-DD")
}

func (f attendanceFilter) request() attendance.ListAttendanceRequest {
	return attendance.ListAttendanceRequest{EmployeeID: f.employeeID, From: f.from, To: f.to}
}

// errSupersededLoad is returned by a load that finished after a newer one
// was issued.
var errSupersededLoad = errors.New("attendance load superseded by a newer one")

// records loads the filtered records and re-applies the date range on
// local calendar keys.
func (a *app) records(ctx context.Context, f attendanceFilter) ([]attendance.Attendance, error) {
	ticket := a.seq.Next()
	resp, err := a.client.Attendance(ctx, f.request())
	if err != nil {
		return nil, err
	}
	recs, err := apiclient.Records(resp)
	if err != nil {
		return nil, err
	}

	var out []attendance.Attendance
	applied := a.seq.Apply(ticket, func() {
		out = attendanceService.ApplyFilter(recs, attendance.Filter{
			EmployeeID: f.employeeID,
			From:       f.from,
			To:         f.to,
		})
	})
	if !applied {
		return nil, errSupersededLoad
	}
	return out, nil
}

func newAttendanceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attendance",
		Aliases: []string{"att"},
		Short:   "Check in and out, record breaks and review hours",
	}
	cmd.AddCommand(
		newAttendanceListCmd(a),
		newAttendanceSummaryCmd(a),
		newCheckInCmd(a),
		newCheckOutCmd(a),
		newBreakCmd(a),
		newTimesheetCmd(a),
	)
	return cmd
}

func newAttendanceListCmd(a *app) *cobra.Command {
	var f attendanceFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records grouped by employee and day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := a.records(cmd.Context(), f)
			if err != nil {
				return err
			}
			printDayGroups(a, attendanceService.GroupByEmployeeDate(recs), a.now())
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func printDayGroups(a *app, groups []attendanceService.DayGroup, now time.Time) {
	if len(groups) == 0 {
		a.printf("No attendance found.\n")
		return
	}
	for _, g := range groups {
		name := attendanceService.DisplayName(g.EmployeeID, g.Records[0].EmployeeName)
		a.printf("%s · %s\n", name, timeofday.FormatDateLabel(g.DateKey))

		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, rec := range g.Records {
			checkOut := "open"
			if rec.CheckOut != nil {
				checkOut = timeofday.FormatTimestamp(*rec.CheckOut)
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\tbreaks %s\thours %s\n",
				rec.ID,
				timeofday.FormatTimestamp(rec.CheckIn),
				checkOut,
				timeofday.FormatDuration(attendanceService.BreakDuration(rec.Breaks, now)),
				attendanceService.FormatWorkedHours(rec, now),
			)
		}
		w.Flush()
	}
}

func newAttendanceSummaryCmd(a *app) *cobra.Command {
	var f attendanceFilter
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Roll records up per employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := a.records(cmd.Context(), f)
			if err != nil {
				return err
			}
			now := a.now()
			rows := attendanceService.Summarize(recs, now)
			if len(rows) == 0 {
				a.printf("No attendance found.\n")
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EMPLOYEE\tLATEST CHECK-IN\tTODAY\tSTATUS\tWORKED\tBREAKS")
			for _, row := range rows {
				status := "off"
				switch {
				case row.ActiveBreak != nil:
					status = "on break"
				case row.OpenSession != nil:
					status = "working"
				}
				today := "no"
				if row.CheckedInToday {
					today = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					attendanceService.DisplayName(row.EmployeeID, row.EmployeeName),
					timeofday.FormatTimestamp(row.Latest.CheckIn),
					today,
					status,
					timeofday.FormatDuration(row.Worked),
					timeofday.FormatDuration(row.Breaks),
				)
			}
			return w.Flush()
		},
	}
	f.bind(cmd)
	return cmd
}

// adminTime turns a --at flag into the RFC 3339 value the server expects.
func adminTime(value string, now time.Time) (string, error) {
	t, err := timeofday.ParseAdminTime(value, now)
	if err != nil || t.IsZero() {
		return "", err
	}
	return t.Format(time.RFC3339), nil
}

func newCheckInCmd(a *app) *cobra.Command {
	var employeeID, at string
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Start a work session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checkInAt, err := adminTime(at, a.now())
			if err != nil {
				return err
			}
			rec, err := a.client.CheckIn(cmd.Context(), attendance.CheckInRequest{EmployeeID: employeeID, CheckInAt: checkInAt})
			if err != nil {
				return err
			}
			a.printf("Checked in at %s (%s)\n", rec.CheckIn, rec.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&employeeID, "employee", "", "Employee ID (managers only)")
	cmd.Flags().StringVar(&at, "at", "", "Past check-in time, e.g. 2024-05-01T08:30 (managers only)")
	return cmd
}

func newCheckOutCmd(a *app) *cobra.Command {
	var employeeID, attendanceID, at string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "End the open work session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checkOutAt, err := adminTime(at, a.now())
			if err != nil {
				return err
			}
			rec, err := a.client.CheckOut(cmd.Context(), attendance.CheckOutRequest{
				AttendanceID: attendanceID,
				EmployeeID:   employeeID,
				CheckOutAt:   checkOutAt,
			})
			if err != nil {
				return err
			}
			a.printf("Checked out at %s, worked %s hours\n", stringOrDash(rec.CheckOut), rec.WorkedHours)
			return nil
		},
	}
	cmd.Flags().StringVar(&employeeID, "employee", "", "Employee ID (managers only)")
	cmd.Flags().StringVar(&attendanceID, "attendance", "", "Attendance record ID")
	cmd.Flags().StringVar(&at, "at", "", "Check-out time (managers only)")
	return cmd
}

func newBreakCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Start, end or record breaks",
	}

	var req attendance.BreakRequest
	start := &cobra.Command{
		Use:   "start",
		Short: "Start a break in the open session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.client.StartBreak(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printf("Break started at %s\n", b.BreakStart)
			return nil
		},
	}
	end := &cobra.Command{
		Use:   "end",
		Short: "End the active break",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.client.EndBreak(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printf("Break ended, %s\n", b.Duration)
			return nil
		},
	}
	for _, c := range []*cobra.Command{start, end} {
		c.Flags().StringVar(&req.EmployeeID, "employee", "", "Employee ID (managers only)")
		c.Flags().StringVar(&req.AttendanceID, "attendance", "", "Attendance record ID")
	}

	cmd.AddCommand(start, end, newManualBreakCmd(a))
	return cmd
}

type manualBreakFlags struct {
	employeeID   string
	attendanceID string
	start        string
	startPeriod  string
	end          string
	endPeriod    string
}

func newManualBreakCmd(a *app) *cobra.Command {
	var f manualBreakFlags
	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Record a past break, e.g. --start 12:00 --start-period PM --end 12:45",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.manualBreak(cmd.Context(), f)
			if err != nil {
				return err
			}
			b, err := a.client.AddManualBreak(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printf("Break recorded %s → %s (%s)\n", b.BreakStart, stringOrDash(b.BreakEnd), b.Duration)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.employeeID, "employee", "", "Employee ID")
	cmd.Flags().StringVar(&f.attendanceID, "attendance", "", "Attendance record ID (defaults to the employee's latest)")
	cmd.Flags().StringVar(&f.start, "start", "", "Break start, hh:mm (defaults to now)")
	cmd.Flags().StringVar(&f.startPeriod, "start-period", "", "AM or PM (defaults to the current one)")
	cmd.Flags().StringVar(&f.end, "end", "", "Break end, hh:mm (defaults to 15 minutes from now)")
	cmd.Flags().StringVar(&f.endPeriod, "end-period", "", "AM or PM (defaults to the start period)")
	return cmd
}

// manualBreak resolves the record and anchor date, then places both ends
// of the break on that date.
func (a *app) manualBreak(ctx context.Context, f manualBreakFlags) (attendance.ManualBreakRequest, error) {
	if f.employeeID == "" && f.attendanceID == "" {
		return attendance.ManualBreakRequest{}, errors.New("--employee or --attendance is required")
	}
	now := a.now()

	recs, err := a.records(ctx, attendanceFilter{employeeID: f.employeeID})
	if err != nil {
		return attendance.ManualBreakRequest{}, err
	}

	var selected *attendance.Attendance
	if f.attendanceID != "" {
		for i := range recs {
			if recs[i].ID == f.attendanceID {
				selected = &recs[i]
				break
			}
		}
		if selected == nil {
			return attendance.ManualBreakRequest{}, fmt.Errorf("attendance %s not found", f.attendanceID)
		}
	} else if latest, ok := attendanceService.LatestRecord(recs, f.employeeID); ok {
		selected = &latest
	} else {
		return attendance.ManualBreakRequest{}, errors.New("no attendance to attach the break to")
	}

	anchor := attendanceService.ResolveAnchor(selected, f.employeeID, recs, now)

	startPeriod, err := periodOrDefault(f.startPeriod, now)
	if err != nil {
		return attendance.ManualBreakRequest{}, err
	}
	endPeriod := startPeriod
	if f.endPeriod != "" {
		if endPeriod, err = timeofday.ParsePeriod(f.endPeriod); err != nil {
			return attendance.ManualBreakRequest{}, err
		}
	}

	entry := attendanceService.ManualBreakEntry{
		Start: attendanceService.ManualEntry{Time: clockInput(f.start), Period: startPeriod},
		End:   attendanceService.ManualEntry{Time: clockInput(f.end), Period: endPeriod},
	}
	start, end, err := attendanceService.ReconcileBreak(anchor, entry, now)
	if err != nil {
		return attendance.ManualBreakRequest{}, err
	}
	return attendanceService.NewManualBreakRequest(selected.ID, start, end), nil
}

// clockInput accepts "9:30" as typed, and bare digits such as "0930".
func clockInput(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		return s
	}
	return attendanceService.CoerceInput(s)
}

func periodOrDefault(s string, now time.Time) (timeofday.Period, error) {
	if strings.TrimSpace(s) == "" {
		_, p := timeofday.CurrentParts(now)
		return p, nil
	}
	return timeofday.ParsePeriod(s)
}

func newTimesheetCmd(a *app) *cobra.Command {
	var f attendanceFilter
	var out string
	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Download the filtered records as a PDF timesheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pdf, err := a.client.Timesheet(cmd.Context(), f.request())
			if err != nil {
				return err
			}
			if err := writeFile(out, pdf); err != nil {
				return err
			}
			a.printf("Saved %s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "timesheet.pdf", "Output file")
	return cmd
}
