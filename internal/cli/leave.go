package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/apiclient"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
	attendanceService "github.com/cmlabs-hris/workflow-erp/internal/service/attendance"
	leaveService "github.com/cmlabs-hris/workflow-erp/internal/service/leave"
	"github.com/spf13/cobra"
)

func newLeaveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Request, decide and review leave",
	}
	cmd.AddCommand(
		newLeaveListCmd(a),
		newLeaveCreateCmd(a),
		newLeaveDecisionCmd(a, "approve", "Approve a pending request", (*apiclient.Client).ApproveLeave),
		newLeaveDecisionCmd(a, "reject", "Reject a request", (*apiclient.Client).RejectLeave),
		newLeaveDecisionCmd(a, "pending", "Move a request back to pending", (*apiclient.Client).ResetLeave),
		newLeaveBalancesCmd(a),
	)
	return cmd
}

func newLeaveListCmd(a *app) *cobra.Command {
	var f leave.ListRequestsRequest
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leave requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := a.client.LeaveRequests(cmd.Context(), f)
			if err != nil {
				return err
			}
			if len(reqs) == 0 {
				a.printf("No leave requests found.\n")
				return nil
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMPLOYEE\tTYPE\tFROM\tTO\tDAYS\tSTATUS")
			for _, r := range reqs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
					r.ID,
					stringOrDash(r.EmployeeName),
					r.Type,
					timeofday.FormatDateLabel(r.StartDate),
					timeofday.FormatDateLabel(r.EndDate),
					r.Days,
					r.Status,
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&f.EmployeeID, "employee", "", "Employee ID (managers only)")
	cmd.Flags().StringVar(&f.Status, "status", "", "pending, approved or rejected")
	cmd.Flags().StringVar(&f.Type, "type", "", "sick or casual")
	return cmd
}

func newLeaveCreateCmd(a *app) *cobra.Command {
	var req leave.CreateRequestRequest
	var reason string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Request leave, e.g. --type casual --from 2024-05-06 --to 2024-05-08",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if reason != "" {
				req.Reason = &reason
			}
			// Catch malformed dates before the round trip.
			if _, _, _, err := req.Validate(); err != nil {
				return err
			}
			r, err := a.client.CreateLeave(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printf("Requested %d day(s) of %s leave (%s, %s)\n", r.Days, r.Type, r.Status, r.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.EmployeeID, "employee", "", "Employee ID (managers only)")
	cmd.Flags().StringVar(&req.Type, "type", "", "sick or casual")
	cmd.Flags().StringVar(&req.StartDate, "from", "", "First day, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.EndDate, "to", "", "Last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&reason, "reason", "", "Optional reason")
	return cmd
}

type leaveDecision func(c *apiclient.Client, ctx context.Context, id string) (leave.RequestResponse, error)

func newLeaveDecisionCmd(a *app, use, short string, decide leaveDecision) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <request-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := decide(a.client, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("Request %s is now %s\n", r.ID, r.Status)
			return nil
		},
	}
}

func newLeaveBalancesCmd(a *app) *cobra.Command {
	var year int
	var employeeID string
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show remaining leave per employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if year == 0 {
				year = a.now().In(timeofday.Location()).Year()
			}

			resp, err := a.client.LeaveBalances(ctx, year, employeeID)
			if err != nil {
				return err
			}
			employees, err := a.client.Employees(ctx, "")
			if err != nil {
				return err
			}
			approved, err := a.client.LeaveRequests(ctx, leave.ListRequestsRequest{
				EmployeeID: employeeID,
				Status:     string(leave.StatusApproved),
			})
			if err != nil {
				return err
			}
			requests, err := fromRequestResponses(approved)
			if err != nil {
				return err
			}
			totals, err := a.policyTotals(ctx, year)
			if err != nil {
				return err
			}

			var order []string
			stored := make([]leave.Balance, 0, len(resp))
			names := map[string]*string{}
			hired := map[string]*time.Time{}
			seen := map[string]bool{}
			add := func(id string, name *string) {
				if employeeID != "" && id != employeeID {
					return
				}
				if !seen[id] {
					seen[id] = true
					order = append(order, id)
				}
				if name != nil {
					names[id] = name
				}
			}
			for _, e := range employees {
				name := e.FullName
				add(e.ID, &name)
				if e.HiredAt != nil {
					if t, err := time.ParseInLocation(timeofday.DateKeyLayout, *e.HiredAt, timeofday.Location()); err == nil {
						hired[e.ID] = &t
					}
				}
			}
			for _, b := range resp {
				add(b.EmployeeID, b.EmployeeName)
				stored = append(stored, fromBalanceResponse(b))
			}
			if len(order) == 0 {
				a.printf("No balances found.\n")
				return nil
			}

			for _, id := range order {
				balances := leaveService.Effective(stored, totals, id, hired[id], requests, year)
				a.printf("%s (%d): %s\n", attendanceService.DisplayName(id, names[id]), year, leaveService.SummaryLine(balances))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Year (defaults to the current one)")
	cmd.Flags().StringVar(&employeeID, "employee", "", "Employee ID (managers only)")
	return cmd
}

// policyTotals reads the entitlements of year. Employees may not read
// policies, so any failure other than an expired session yields nil and the
// built-in defaults apply.
func (a *app) policyTotals(ctx context.Context, year int) (map[leave.LeaveType]float64, error) {
	policies, err := a.client.LeavePolicies(ctx, year)
	if errors.Is(err, apiclient.ErrAuthExpired) {
		return nil, err
	}
	if err != nil {
		return nil, nil
	}
	totals := make(map[leave.LeaveType]float64, len(policies))
	for _, p := range policies {
		if t, ok := leave.ParseLeaveType(p.Type); ok {
			totals[t] = p.Total
		}
	}
	return totals, nil
}

// fromRequestResponses reads request dates as local calendar days.
func fromRequestResponses(in []leave.RequestResponse) ([]leave.Request, error) {
	out := make([]leave.Request, 0, len(in))
	for _, r := range in {
		start, err := time.ParseInLocation(timeofday.DateKeyLayout, r.StartDate, timeofday.Location())
		if err != nil {
			return nil, fmt.Errorf("request %s start date: %w", r.ID, err)
		}
		end, err := time.ParseInLocation(timeofday.DateKeyLayout, r.EndDate, timeofday.Location())
		if err != nil {
			return nil, fmt.Errorf("request %s end date: %w", r.ID, err)
		}
		out = append(out, leave.Request{
			ID:         r.ID,
			EmployeeID: r.EmployeeID,
			Type:       leave.LeaveType(r.Type),
			StartDate:  start,
			EndDate:    end,
			Days:       r.Days,
			Status:     leave.RequestStatus(r.Status),
		})
	}
	return out, nil
}

func fromBalanceResponse(b leave.BalanceResponse) leave.Balance {
	return leave.Balance{
		EmployeeID:   b.EmployeeID,
		EmployeeName: b.EmployeeName,
		Year:         b.Year,
		Type:         leave.LeaveType(b.Type),
		Total:        b.Total,
		Used:         b.Used,
	}
}
