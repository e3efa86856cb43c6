package http

import (
	"net/http"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/settings"
	"github.com/cmlabs-hris/workflow-erp/internal/handler/http/response"
	"github.com/cmlabs-hris/workflow-erp/internal/service/file"
)

type SettingsHandler interface {
	GetLogo(w http.ResponseWriter, r *http.Request)
	UpdateLogo(w http.ResponseWriter, r *http.Request)
	UploadLogo(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

// GetLogo handles GET /settings/logo
func (h *settingsHandlerImpl) GetLogo(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetLogo(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateLogo handles PUT /settings/logo
func (h *settingsHandlerImpl) UpdateLogo(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateLogoRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	result, err := h.settingsService.UpdateLogo(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logo updated", result)
}

// UploadLogo handles POST /settings/logo/upload (multipart "logo", form value "variant")
func (h *settingsHandlerImpl) UploadLogo(w http.ResponseWriter, r *http.Request) {
	f, header, ok := formFile(w, r, "logo", file.MaxUploadBytes)
	if !ok {
		return
	}
	defer f.Close()

	result, err := h.settingsService.UploadLogo(r.Context(), settings.UploadLogoRequest{
		Variant:  r.FormValue("variant"),
		File:     f,
		Filename: header.Filename,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logo updated", result)
}
