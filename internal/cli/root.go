// Package cli implements erpctl, the console client of the ERP backend.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/pkg/apiclient"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every command needs once flags and config are read.
type app struct {
	v      *viper.Viper
	out    io.Writer
	client *apiclient.Client
	now    func() time.Time
	// seq orders attendance loads; only the newest one is shown.
	seq    apiclient.Sequencer
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// NewRootCommand builds the erpctl command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, now: time.Now}

	root := &cobra.Command{
		Use:   "erpctl",
		Short: "erpctl – console client for the workflow ERP",
		Long: `erpctl signs in to the ERP backend and drives attendance, leave,
invoices and company settings from the terminal.
Configuration lives in $XDG_CONFIG_HOME/erpctl/erpctl.yml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().String("base-url", "", "API base URL, e.g. http://localhost:8080/api/v1")
	_ = a.v.BindPFlag("base_url", root.PersistentFlags().Lookup("base-url"))

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newMeCmd(a),
		newDashboardCmd(a),
		newAttendanceCmd(a),
		newLeaveCmd(a),
		newLogoCmd(a),
		newInvoiceCmd(a),
	)
	return root
}

func (a *app) init() error {
	home, err := configHome()
	if err != nil {
		return err
	}
	if _, err := setupViper(a.v, home); err != nil {
		return err
	}
	settings, err := loadSettings(a.v)
	if err != nil {
		return err
	}

	timeofday.SetLocation(settings.Location)
	a.client = apiclient.New(settings.BaseURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: settings.Timeout}),
		apiclient.WithTokenStore(apiclient.FileTokenStore{Path: settings.TokenFile}),
		apiclient.WithRoutes(apiclient.DefaultRoutes().Merge(settings.Routes)),
	)
	return nil
}

// Execute runs erpctl and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCommand(os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", apiclient.Message(err))
		return 1
	}
	return 0
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func stringOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
