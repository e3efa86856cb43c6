package settings

import "context"

type SettingsService interface {
	// GetLogo returns the company logo pair with legacy fallback applied
	GetLogo(ctx context.Context) (LogoResponse, error)

	// UpdateLogo stores new logo URLs and broadcasts the change (manager+ only)
	UpdateLogo(ctx context.Context, req UpdateLogoRequest) (LogoResponse, error)

	// UploadLogo stores an uploaded image as one logo variant (manager+ only)
	UploadLogo(ctx context.Context, req UploadLogoRequest) (LogoResponse, error)
}
