package kernel

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"depot/internal/pkg/errs"
)

// Maximum lengths of free text fields.
const (
	NameMaxLength    = 100
	AddressMaxLength = 255
	RemarksMaxLength = 2048
	CodeMaxLength    = 10
	KeyMaxLength     = 20
)

// AlnumCodePattern is the shape of fixed length repair, damage, material and component codes.
var AlnumCodePattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// BoundedText checks an optional free text value against maxLen runes.
func BoundedText(paramName, v string, maxLen int) (string, error) {
	if n := utf8.RuneCountInString(v); n > maxLen {
		return "", errs.NewValueIsInvalidErrorWithCause(
			paramName, fmt.Errorf("%d characters exceed the limit of %d", n, maxLen))
	}
	return v, nil
}

// RequiredText is BoundedText for mandatory values.
func RequiredText(paramName, v string, maxLen int) (string, error) {
	if v == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	return BoundedText(paramName, v, maxLen)
}

// FixedCode checks an uppercase alphanumeric code of exactly length characters.
// An empty optional code is accepted.
func FixedCode(paramName, v string, length int, required bool) (string, error) {
	if v == "" {
		if required {
			return "", errs.NewValueIsRequiredError(paramName)
		}
		return "", nil
	}
	if len(v) != length || !AlnumCodePattern.MatchString(v) {
		return "", errs.NewValueIsInvalidErrorWithCause(
			paramName, fmt.Errorf("%q is not a %d character alphanumeric code", v, length))
	}
	return v, nil
}
