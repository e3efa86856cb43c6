package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/invoice"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newInvoiceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "List, create and export invoices",
	}
	cmd.AddCommand(newInvoiceListCmd(a), newInvoiceCreateCmd(a), newInvoicePDFCmd(a))
	return cmd
}

func newInvoiceListCmd(a *app) *cobra.Command {
	var f invoice.InvoiceFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.Invoices(cmd.Context(), f)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				a.printf("No invoices found.\n")
				return nil
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NUMBER\tCUSTOMER\tAMOUNT\tSTATUS\tISSUED\tDUE")
			for _, inv := range list {
				status := inv.Status
				if inv.Overdue {
					status += " (overdue)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\n",
					inv.Number, inv.CustomerName, inv.Amount, inv.Currency, status, inv.IssuedAt, stringOrDash(inv.DueAt))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&f.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&f.Search, "search", "", "Match number or customer")
	return cmd
}

func newInvoiceCreateCmd(a *app) *cobra.Command {
	var req invoice.CreateInvoiceRequest
	var amount string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("amount must be a number: %w", err)
			}
			req.Amount = amt
			if err := req.Validate(); err != nil {
				return err
			}
			inv, err := a.client.CreateInvoice(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printf("Created invoice %s for %s %s\n", inv.Number, inv.Amount, inv.Currency)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Number, "number", "", "Invoice number")
	cmd.Flags().StringVar(&req.CustomerName, "customer", "", "Customer name")
	cmd.Flags().StringVar(&amount, "amount", "0", "Amount, e.g. 1500000.00")
	cmd.Flags().StringVar(&req.Currency, "currency", invoice.DefaultCurrency, "ISO currency code")
	cmd.Flags().StringVar(&req.Status, "status", string(invoice.StatusDraft), "draft, sent, paid or void")
	cmd.Flags().StringVar(&req.IssuedAt, "issued", "", "Issue date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.DueAt, "due", "", "Due date, YYYY-MM-DD")
	return cmd
}

func newInvoicePDFCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pdf <invoice-id>",
		Short: "Download an invoice as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pdf, err := a.client.InvoicePDF(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = "invoice-" + args[0] + ".pdf"
			}
			if err := writeFile(out, pdf); err != nil {
				return err
			}
			a.printf("Saved %s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file")
	return cmd
}
