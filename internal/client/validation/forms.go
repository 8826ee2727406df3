package validation

// Field names used as keys in form error maps. They match the wire field
// names so a backend detail map can be merged into the same structure.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldFullName        = "full_name"
	FieldDepartment      = "department"
	FieldPhone           = "phone"
	FieldPosition        = "position"
	FieldTOTPCode        = "totp_code"
	FieldConsent         = "has_accepted_terms"
	FieldResetToken      = "reset_token"
)

// Errors maps a field name to the message of its first failing rule.
// An absent key means the field is valid; an empty map means the form is
// submittable.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool { return len(e) == 0 }

// First returns an arbitrary-but-stable single message for compact display,
// or "" when the form is valid.
func (e Errors) First() string {
	for _, f := range []string{
		FieldEmail, FieldPassword, FieldConfirmPassword, FieldFullName,
		FieldDepartment, FieldPhone, FieldPosition, FieldTOTPCode,
		FieldConsent, FieldResetToken,
	} {
		if msg, ok := e[f]; ok {
			return msg
		}
	}
	for _, msg := range e {
		return msg
	}
	return ""
}

func (e Errors) add(field, msg string) {
	if msg != "" {
		e[field] = msg
	}
}

// LoginForm checks the login modal's fields. The password only has to be
// present here; strength rules apply at registration and reset time.
func LoginForm(email, password string) Errors {
	errs := Errors{}
	errs.add(FieldEmail, Email(email))
	if password == "" {
		errs.add(FieldPassword, "Password is required")
	}
	return errs
}

// RegisterForm checks the registration modal's fields.
func RegisterForm(email, fullName, department string, acceptedTerms bool) Errors {
	errs := Errors{}
	errs.add(FieldEmail, Email(email))
	errs.add(FieldFullName, FullName(fullName))
	errs.add(FieldDepartment, Department(department))
	errs.add(FieldConsent, LegalConsent(acceptedTerms))
	return errs
}

// Verify2FAForm checks the step-up code entry.
func Verify2FAForm(code string) Errors {
	errs := Errors{}
	errs.add(FieldTOTPCode, TOTPCode(code))
	return errs
}

// ForgotPasswordForm checks the forgot-password modal.
func ForgotPasswordForm(email string) Errors {
	errs := Errors{}
	errs.add(FieldEmail, Email(email))
	return errs
}

// ResetPasswordForm checks the reset-password modal.
func ResetPasswordForm(resetToken, password, confirm string) Errors {
	errs := Errors{}
	errs.add(FieldResetToken, ResetToken(resetToken))
	errs.add(FieldPassword, Password(password))
	errs.add(FieldConfirmPassword, ConfirmPassword(password, confirm))
	return errs
}

// UpdateProfileForm checks the profile modal.
func UpdateProfileForm(fullName, department, phone, position string) Errors {
	errs := Errors{}
	errs.add(FieldFullName, FullName(fullName))
	errs.add(FieldDepartment, Department(department))
	errs.add(FieldPhone, Phone(phone))
	errs.add(FieldPosition, Position(position))
	return errs
}
