package settings

import "errors"

var (
	ErrLogoEmpty      = errors.New("logo cannot be empty")
	ErrInvalidVariant = errors.New("variant must be expanded or collapsed")
)
