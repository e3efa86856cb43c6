package leave

import (
	"context"
)

type LeaveService interface {
	// Request
	CreateRequest(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)
	UpdateRequest(ctx context.Context, req UpdateRequestRequest) (RequestResponse, error)
	DeleteRequest(ctx context.Context, id string) error
	ListRequests(ctx context.Context, filter ListRequestsRequest) ([]RequestResponse, error)
	Approve(ctx context.Context, id string) (RequestResponse, error)
	Reject(ctx context.Context, id string) (RequestResponse, error)
	MarkPending(ctx context.Context, id string) (RequestResponse, error)
	// Balance
	ListBalances(ctx context.Context, req ListBalancesRequest) ([]BalanceResponse, error)
	// Policy
	GetPolicies(ctx context.Context, year int) ([]PolicyResponse, error)
	UpdatePolicies(ctx context.Context, req UpdatePoliciesRequest) ([]PolicyResponse, error)
}
