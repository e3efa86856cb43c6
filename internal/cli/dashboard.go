package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.client.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("Dashboard (%s)\n", d.Scope)
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Employees\t%d\n", d.Employees)
			fmt.Fprintf(w, "Managers\t%d\n", d.Managers)
			fmt.Fprintf(w, "Invoices\t%d\n", d.Invoices)
			fmt.Fprintf(w, "Revenue\t%s %s\n", d.Revenue, d.Currency)
			fmt.Fprintf(w, "Checked in today\t%d\n", d.CheckedInToday)
			fmt.Fprintf(w, "Open sessions\t%d\n", d.OpenSessions)
			fmt.Fprintf(w, "Pending leaves\t%d\n", d.PendingLeaves)
			return w.Flush()
		},
	}
}
