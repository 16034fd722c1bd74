package shows

import "regexp"

// secureURLPattern accepts https URLs only: the scheme, then at least one
// character that is not whitespace or one of / $ . ? #, then any run of
// non-whitespace. This is a shape check, not full URL validation.
var secureURLPattern = regexp.MustCompile(`^https://[^\s/$.?#].[^\s]*$`)

// ValidateSecureURL reports whether raw looks like a well-formed https URL.
func ValidateSecureURL(raw string) bool {
	return secureURLPattern.MatchString(raw)
}
