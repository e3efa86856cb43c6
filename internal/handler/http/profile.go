package http

import (
	"net/http"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/handler/http/response"
	"github.com/cmlabs-hris/workflow-erp/internal/service/file"
)

type ProfileHandler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)
}

type profileHandlerImpl struct {
	profileService user.ProfileService
}

func NewProfileHandler(profileService user.ProfileService) ProfileHandler {
	return &profileHandlerImpl{profileService: profileService}
}

// GetMe handles GET /me
func (h *profileHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	result, err := h.profileService.GetMe(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMe handles PUT /me
func (h *profileHandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateProfileRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	result, err := h.profileService.UpdateMe(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated", result)
}

// ChangePassword handles PUT /me/password
func (h *profileHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req user.ChangePasswordRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	if err := h.profileService.ChangePassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed", nil)
}

// UploadAvatar handles POST /me/avatar (multipart field "avatar")
func (h *profileHandlerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	f, header, ok := formFile(w, r, "avatar", file.MaxUploadBytes)
	if !ok {
		return
	}
	defer f.Close()

	result, err := h.profileService.UploadAvatar(r.Context(), f, header.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Avatar updated", result)
}
