package contact

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalid matches every ValidationError
var ErrInvalid = errors.New("invalid contact")

// invalidMessage is shown to the user for any rejected form
const invalidMessage = "Please enter valid email and phone number."

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// The add form accepts digits only while the editor also allows '+'.
	// Both rules are kept as they are enforced today.
	createPhonePattern = regexp.MustCompile(`^\d+$`)
	editPhonePattern   = regexp.MustCompile(`^[+\d]+$`)
)

// ValidationError reports which fields were rejected before a request was sent
type ValidationError struct {
	Name  bool
	Email bool
	Phone bool
}

func (e *ValidationError) Error() string {
	if e.Name && !e.Email && !e.Phone {
		return "Please enter a name."
	}
	return invalidMessage
}

// Is lets errors.Is(err, ErrInvalid) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// ValidEmail checks the local@domain.tld shape
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidCreatePhone checks a phone number entered in the add form
func ValidCreatePhone(s string) bool {
	return createPhonePattern.MatchString(s)
}

// ValidEditPhone checks a phone number entered in the editor
func ValidEditPhone(s string) bool {
	return editPhonePattern.MatchString(s)
}

// ValidName rejects blank names
func ValidName(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidateCreate checks the add form. It returns nil or a *ValidationError.
func ValidateCreate(name, email, phone string) error {
	return check(ValidName(name), ValidEmail(email), ValidCreatePhone(phone))
}

// ValidateEdit checks the editor fields. It returns nil or a *ValidationError.
func ValidateEdit(name, email, phone string) error {
	return check(ValidName(name), ValidEmail(email), ValidEditPhone(phone))
}

func check(nameOK, emailOK, phoneOK bool) error {
	if nameOK && emailOK && phoneOK {
		return nil
	}
	return &ValidationError{Name: !nameOK, Email: !emailOK, Phone: !phoneOK}
}
