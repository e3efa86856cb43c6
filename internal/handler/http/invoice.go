package http

import (
	"net/http"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/invoice"
	"github.com/cmlabs-hris/workflow-erp/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InvoiceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DownloadPDF(w http.ResponseWriter, r *http.Request)
}

type invoiceHandlerImpl struct {
	invoiceService invoice.InvoiceService
}

func NewInvoiceHandler(invoiceService invoice.InvoiceService) InvoiceHandler {
	return &invoiceHandlerImpl{invoiceService: invoiceService}
}

// List handles GET /invoices?status=&search=
func (h *invoiceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := invoice.InvoiceFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}

	result, err := h.invoiceService.ListInvoices(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get handles GET /invoices/{id}
func (h *invoiceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.invoiceService.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create handles POST /invoices
func (h *invoiceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req invoice.CreateInvoiceRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	result, err := h.invoiceService.CreateInvoice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invoice created", result)
}

// Update handles PUT /invoices/{id}
func (h *invoiceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req invoice.UpdateInvoiceRequest
	if !decodeJSON(w, r, &req.CreateInvoiceRequest, false) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.invoiceService.UpdateInvoice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice updated", result)
}

// Delete handles DELETE /invoices/{id}
func (h *invoiceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.invoiceService.DeleteInvoice(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice deleted", nil)
}

// DownloadPDF handles GET /invoices/{id}/pdf
func (h *invoiceHandlerImpl) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	pdf, filename, err := h.invoiceService.RenderPDF(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeFile(w, "application/pdf", filename, pdf)
}
