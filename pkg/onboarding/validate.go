package onboarding

import (
	"errors"
	"unicode"

	"github.com/gookit/validate"
)

// BusinessInfo is the step-1 payload of the onboarding wizard.
type BusinessInfo struct {
	BusinessName string `json:"businessName" validate:"required|minLen:2|maxLen:120"`
	Email        string `json:"email" validate:"required|email"`
	Phone        string `json:"phone" validate:"required|minLen:7|maxLen:20"`
	ProfileURL   string `json:"profileUrl" validate:"required|fullUrl"`
	BusinessType string `json:"businessType" validate:"required|in:individual,registered_business,company"`
	Description  string `json:"description" validate:"maxLen:500"`
}

// Messages implements gookit/validate's message override hook.
func (BusinessInfo) Messages() map[string]string {
	return map[string]string{
		"required":           "{field} is required",
		"Email.email":        "contact email is not a valid address",
		"ProfileURL.fullUrl": "profile URL must be a full http(s) link",
		"BusinessType.in":    "business type must be individual, registered_business or company",
	}
}

// Translates implements gookit/validate's field name hook.
func (BusinessInfo) Translates() map[string]string {
	return map[string]string{
		"BusinessName": "business name",
		"Email":        "contact email",
		"Phone":        "phone number",
		"ProfileURL":   "profile URL",
		"BusinessType": "business type",
		"Description":  "description",
	}
}

// ValidateBasicInfo runs the step-1 schema. The returned error carries the
// first field-level message, suitable for inline display.
func ValidateBasicInfo(info BusinessInfo) error {
	v := validate.Struct(&info)
	if !v.Validate() {
		return errors.New(v.Errors.One())
	}
	return nil
}

// ValidatePassword enforces the account password policy: at least 8
// characters with upper case, lower case, a digit and a special character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	switch {
	case !upper:
		return errors.New("password needs an upper case letter")
	case !lower:
		return errors.New("password needs a lower case letter")
	case !digit:
		return errors.New("password needs a digit")
	case !special:
		return errors.New("password needs a special character")
	}
	return nil
}
