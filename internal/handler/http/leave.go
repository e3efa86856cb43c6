package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
	"github.com/cmlabs-hris/workflow-erp/internal/handler/http/response"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListRequests(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	MarkPending(w http.ResponseWriter, r *http.Request)

	ListBalances(w http.ResponseWriter, r *http.Request)

	GetPolicies(w http.ResponseWriter, r *http.Request)
	UpdatePolicies(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// ListRequests handles GET /leave/requests?employee_id=&status=&type=
func (h *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := leave.ListRequestsRequest{
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
		Type:       q.Get("type"),
	}

	result, err := h.leaveService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateRequest handles POST /leave/requests
func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateRequestRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	result, err := h.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// UpdateRequest handles PATCH /leave/requests/{id}
func (h *LeaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateRequestRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.leaveService.UpdateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated", result)
}

// DeleteRequest handles DELETE /leave/requests/{id}
func (h *LeaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.leaveService.DeleteRequest(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted", nil)
}

// ApproveRequest handles PATCH /leave/requests/{id}/approve and its aliases
func (h *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

// RejectRequest handles PATCH /leave/requests/{id}/reject and its aliases
func (h *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", result)
}

// MarkPending handles PATCH /leave/requests/{id}/pending and its aliases
func (h *LeaveHandlerImpl) MarkPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.MarkPending(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request reset to pending", result)
}

// ListBalances handles GET /leave/balances?year=&employee_id=
func (h *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	req := leave.ListBalancesRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Year:       r.URL.Query().Get("year"),
	}

	result, err := h.leaveService.ListBalances(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPolicies handles GET /leave/policies?year=
func (h *LeaveHandlerImpl) GetPolicies(w http.ResponseWriter, r *http.Request) {
	year := time.Now().In(timeofday.Location()).Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.HandleError(w, validator.ValidationErrors{{
				Field:   "year",
				Message: "year must be a number",
			}})
			return
		}
		year = parsed
	}

	result, err := h.leaveService.GetPolicies(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdatePolicies handles PUT /leave/policies
func (h *LeaveHandlerImpl) UpdatePolicies(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdatePoliciesRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	result, err := h.leaveService.UpdatePolicies(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave policies updated", result)
}
