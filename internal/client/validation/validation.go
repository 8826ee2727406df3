// Package validation implements local form validation for the auth flows.
// Each validator takes a raw field value and returns "" when the value is
// acceptable or a human-readable message for the first failing rule.
// Validators never panic and never touch the network.
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	emailMaxLen    = 255
	passwordMinLen = 8
	fullNameMinLen = 2
	fullNameMaxLen = 255
	phoneMinDigits = 10
	phoneMaxDigits = 20
	optionalMaxLen = 255
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
	passwordSpecial = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)

	// Latin letters plus the Vietnamese diacritic block, spaces, hyphens
	// and apostrophes.
	fullNamePattern = regexp.MustCompile(`^[a-zA-ZÀ-ỿ\s'-]+$`)

	phonePattern = regexp.MustCompile(`^[\d+\-\s()]+$`)

	totpPattern = regexp.MustCompile(`^\d{6}$`)
)

// Email: required, RFC-like shape, at most 255 characters.
func Email(email string) string {
	if email == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(email) {
		return "Email is not valid"
	}
	if len(email) > emailMaxLen {
		return "Email must not exceed 255 characters"
	}
	return ""
}

// Password: required, at least 8 characters, and one of each character class.
func Password(password string) string {
	if password == "" {
		return "Password is required"
	}
	if len(password) < passwordMinLen {
		return "Password must be at least 8 characters"
	}
	if !passwordUpper.MatchString(password) {
		return "Password must contain at least one uppercase letter"
	}
	if !passwordLower.MatchString(password) {
		return "Password must contain at least one lowercase letter"
	}
	if !passwordDigit.MatchString(password) {
		return "Password must contain at least one digit"
	}
	if !passwordSpecial.MatchString(password) {
		return "Password must contain at least one special character (!@#$%^&*)"
	}
	return ""
}

// ConfirmPassword: required and an exact match of the primary password.
func ConfirmPassword(password, confirm string) string {
	if confirm == "" {
		return "Password confirmation is required"
	}
	if password != confirm {
		return "Password confirmation does not match"
	}
	return ""
}

// FullName: required, 2..255 characters, Latin + Vietnamese letters,
// spaces, hyphens, apostrophes.
func FullName(fullName string) string {
	if fullName == "" {
		return "Full name is required"
	}
	if len([]rune(fullName)) < fullNameMinLen {
		return "Full name must be at least 2 characters"
	}
	if len([]rune(fullName)) > fullNameMaxLen {
		return "Full name must not exceed 255 characters"
	}
	if !fullNamePattern.MatchString(fullName) {
		return "Full name may only contain letters, spaces, hyphens and apostrophes"
	}
	return ""
}

// Phone is optional: the empty string is valid. Non-empty values must match
// the allowed character set and carry 10..20 digits.
func Phone(phone string) string {
	if phone == "" {
		return ""
	}
	if !phonePattern.MatchString(phone) {
		return "Phone number is not valid"
	}
	digits := countDigits(phone)
	if digits < phoneMinDigits {
		return "Phone number must contain at least 10 digits"
	}
	if digits > phoneMaxDigits {
		return "Phone number must not exceed 20 digits"
	}
	return ""
}

// Department is optional, at most 255 characters.
func Department(department string) string {
	if department == "" {
		return ""
	}
	if len([]rune(department)) > optionalMaxLen {
		return "Department must not exceed 255 characters"
	}
	return ""
}

// Position is optional, at most 255 characters.
func Position(position string) string {
	if position == "" {
		return ""
	}
	if len([]rune(position)) > optionalMaxLen {
		return "Position must not exceed 255 characters"
	}
	return ""
}

// TOTPCode: required, exactly six digits.
func TOTPCode(code string) string {
	if code == "" {
		return "Verification code is required"
	}
	if !totpPattern.MatchString(code) {
		return "Verification code must be 6 digits"
	}
	return ""
}

// LegalConsent: must be explicitly accepted.
func LegalConsent(accepted bool) string {
	if !accepted {
		return "You must accept the legal terms"
	}
	return ""
}

// ResetToken: required, any non-blank value.
func ResetToken(token string) string {
	if strings.TrimSpace(token) == "" {
		return "Reset token is required"
	}
	return ""
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
