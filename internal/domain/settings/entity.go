package settings

import "strings"

const (
	KeyLogoExpanded  = "company_logo_expanded"
	KeyLogoCollapsed = "company_logo_collapsed"
	// KeyLogoLegacy is the single-logo key written before the sidebar had two variants.
	KeyLogoLegacy = "company_logo"
)

// LogoKeys lists every key read when resolving the company logo.
var LogoKeys = []string{KeyLogoExpanded, KeyLogoCollapsed, KeyLogoLegacy}

const (
	VariantExpanded  = "expanded"
	VariantCollapsed = "collapsed"
)

// Logo is the resolved pair of company logo URLs.
type Logo struct {
	Expanded  string
	Collapsed string
}

// ResolveLogo reads the logo pair from stored values. A blank variant
// falls back to the legacy single logo.
func ResolveLogo(values map[string]string) Logo {
	legacy := strings.TrimSpace(values[KeyLogoLegacy])
	logo := Logo{
		Expanded:  strings.TrimSpace(values[KeyLogoExpanded]),
		Collapsed: strings.TrimSpace(values[KeyLogoCollapsed]),
	}
	if logo.Expanded == "" {
		logo.Expanded = legacy
	}
	if logo.Collapsed == "" {
		logo.Collapsed = legacy
	}
	return logo
}
