package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns company-wide counts; employees see their own attendance and leave counts
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}
