package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"eduquiz-web/internal/domain"
)

// Bounds on the text submitted for quiz generation, inclusive.
const (
	MinQuizTextLength = 50
	MaxQuizTextLength = 5000
	MinPasswordLength = 8
)

// SignUpForm mirrors the fields of the sign-up view.
type SignUpForm struct {
	FullName        string `form:"fullName"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

// SignInForm mirrors the fields of the sign-in view.
type SignInForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Validator provides form validation that runs before any backend call.
// Every method returns nil or a *domain.DomainError with CodeValidation whose
// message is shown to the user as-is.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSignUp checks, in order: all fields present, password policy,
// password confirmation.
func (v *Validator) ValidateSignUp(form SignUpForm) error {
	if isBlank(form.FullName) || isBlank(form.Email) || form.Password == "" || form.ConfirmPassword == "" {
		return domain.NewValidationError("Please fill in all fields")
	}
	if err := v.ValidatePassword(form.Password); err != nil {
		return err
	}
	if form.Password != form.ConfirmPassword {
		return domain.NewValidationError("Passwords do not match")
	}
	return nil
}

// ValidateSignIn only checks presence; credentials are the backend's concern.
func (v *Validator) ValidateSignIn(form SignInForm) error {
	if isBlank(form.Email) || form.Password == "" {
		return domain.NewValidationError("Please fill in all fields")
	}
	return nil
}

// ValidatePassword enforces the sign-up password policy.
func (v *Validator) ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}
	if !strings.ContainsFunc(password, isASCIIUpper) {
		return domain.NewValidationError("Password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, isASCIILower) {
		return domain.NewValidationError("Password must contain at least one lowercase letter")
	}
	if !strings.ContainsFunc(password, isASCIIDigit) {
		return domain.NewValidationError("Password must contain at least one number")
	}
	return nil
}

// ValidateQuizText enforces the [MinQuizTextLength, MaxQuizTextLength] bound,
// counted in characters rather than bytes.
func (v *Validator) ValidateQuizText(text string) error {
	n := utf8.RuneCountInString(text)
	if n < MinQuizTextLength {
		return domain.NewValidationError(fmt.Sprintf("Please enter at least %d characters.", MinQuizTextLength)).
			WithContext("length", n)
	}
	if n > MaxQuizTextLength {
		return domain.NewValidationError(fmt.Sprintf("Please limit your input to %d characters.", MaxQuizTextLength)).
			WithContext("length", n)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// The policy is ASCII-only, matching [A-Z], [a-z] and [0-9].
func isASCIIUpper(r rune) bool { return r <= unicode.MaxASCII && unicode.IsUpper(r) }
func isASCIILower(r rune) bool { return r <= unicode.MaxASCII && unicode.IsLower(r) }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
