package dashboard

// DashboardResponse is the landing page summary
type DashboardResponse struct {
	Employees      int64  `json:"employees"`
	Managers       int64  `json:"managers"`
	Invoices       int64  `json:"invoices"`
	Revenue        string `json:"revenue"` // paid invoices only
	Currency       string `json:"currency"`
	CheckedInToday int64  `json:"checked_in_today"`
	OpenSessions   int64  `json:"open_sessions"`
	PendingLeaves  int64  `json:"pending_leaves"`
	// Scope is "company", or "self" when the counts are limited to the caller
	Scope       string `json:"scope"`
	GeneratedAt string `json:"generated_at"`
}
