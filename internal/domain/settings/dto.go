package settings

import (
	"io"
	"strings"

	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
)

type LogoResponse struct {
	// LogoURL mirrors ExpandedLogoURL for clients that only know one logo.
	LogoURL          string `json:"logo_url"`
	ExpandedLogoURL  string `json:"expanded_logo_url"`
	CollapsedLogoURL string `json:"collapsed_logo_url"`
}

func (l Logo) ToResponse() LogoResponse {
	return LogoResponse{
		LogoURL:          l.Expanded,
		ExpandedLogoURL:  l.Expanded,
		CollapsedLogoURL: l.Collapsed,
	}
}

type UpdateLogoRequest struct {
	LogoURL          string `json:"logo_url"`
	ExpandedLogoURL  string `json:"expanded_logo_url"`
	CollapsedLogoURL string `json:"collapsed_logo_url"`
}

// Validate trims every URL and rejects a request that sets none of them.
func (r *UpdateLogoRequest) Validate() error {
	r.LogoURL = strings.TrimSpace(r.LogoURL)
	r.ExpandedLogoURL = strings.TrimSpace(r.ExpandedLogoURL)
	r.CollapsedLogoURL = strings.TrimSpace(r.CollapsedLogoURL)

	if r.LogoURL == "" && r.ExpandedLogoURL == "" && r.CollapsedLogoURL == "" {
		return ErrLogoEmpty
	}
	return nil
}

// Logo resolves the pair to store. Missing variants take the single logo URL.
func (r UpdateLogoRequest) Logo() Logo {
	logo := Logo{Expanded: r.ExpandedLogoURL, Collapsed: r.CollapsedLogoURL}
	if logo.Expanded == "" {
		logo.Expanded = r.LogoURL
	}
	if logo.Collapsed == "" {
		logo.Collapsed = r.LogoURL
	}
	return logo
}

type UploadLogoRequest struct {
	Variant  string    `json:"-"`
	File     io.Reader `json:"-"`
	Filename string    `json:"-"`
}

func (r *UploadLogoRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Variant = strings.ToLower(strings.TrimSpace(r.Variant))
	if r.Variant == "" {
		r.Variant = VariantExpanded
	}
	if r.Variant != VariantExpanded && r.Variant != VariantCollapsed {
		errs = append(errs, validator.ValidationError{
			Field:   "variant",
			Message: ErrInvalidVariant.Error(),
		})
	}
	if r.File == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "logo file is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
