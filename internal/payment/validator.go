package payment

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Card validation is structural only: format and length checks on number,
// expiry and CVC. No gateway is called; payment is simulated downstream.

var (
	digitsOnlyRe = regexp.MustCompile(`^[0-9]+$`)
	expiryRe     = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	cvcRe        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// CardInput carries the raw card form fields.
type CardInput struct {
	Number string
	Expiry string
	CVC    string
}

// FieldErrors maps a failing field name to its message so the UI can
// highlight the specific offending input.
type FieldErrors map[string]string

// ValidateCard checks every field and reports failures per-field. A nil map
// means the card form is acceptable.
func ValidateCard(input CardInput, now time.Time) FieldErrors {
	errs := FieldErrors{}

	if msg := validateNumber(input.Number); msg != "" {
		errs["number"] = msg
	}
	if msg := validateExpiry(input.Expiry, now); msg != "" {
		errs["expiry"] = msg
	}
	if msg := validateCVC(input.CVC); msg != "" {
		errs["cvc"] = msg
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateNumber(raw string) string {
	number := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if number == "" {
		return "card number is required"
	}
	if !digitsOnlyRe.MatchString(number) {
		return "card number must contain only digits"
	}
	if len(number) < 13 || len(number) > 19 {
		return "card number must be 13 to 19 digits"
	}
	return ""
}

func validateExpiry(raw string, now time.Time) string {
	match := expiryRe.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return "expiry must use the MM/YY format"
	}

	month, _ := strconv.Atoi(match[1])
	year, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 {
		return "expiry month must be between 01 and 12"
	}

	// Two-digit years are anchored to the 2000s.
	expYear := 2000 + year
	if expYear < now.Year() || (expYear == now.Year() && time.Month(month) < now.Month()) {
		return "card is expired"
	}
	return ""
}

func validateCVC(raw string) string {
	if !cvcRe.MatchString(strings.TrimSpace(raw)) {
		return "security code must be 3 or 4 digits"
	}
	return ""
}
