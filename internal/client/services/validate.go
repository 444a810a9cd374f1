package services

import (
	"errors"
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
	"github.com/dmitrijs2005/wedlink-admin/internal/common"
)

const minPasswordLength = 6

// ValidationError reports a form field rejected before anything is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}

// ValidateLogin checks the login form.
func ValidateLogin(email, password string) error {
	switch {
	case blank(email):
		return invalid("email", "Email is required")
	case !validEmail(strings.TrimSpace(email)):
		return invalid("email", "Invalid email format")
	case password == "":
		return invalid("password", "Password is required")
	case len(password) < minPasswordLength:
		return invalid("password", "Minimum 6 characters required")
	}
	return nil
}

// ValidateSignup checks the signup form.
func ValidateSignup(name, email, password string) error {
	switch {
	case blank(name):
		return invalid("name", "Name is required")
	case blank(email):
		return invalid("email", "Email is required")
	case !validEmail(strings.TrimSpace(email)):
		return invalid("email", "Invalid email format")
	case password == "":
		return invalid("password", "Password is required")
	}
	return nil
}

// ValidateEvent checks the create and edit event forms.
func ValidateEvent(in models.EventInput) error {
	switch {
	case blank(in.Name):
		return invalid("name", "Event name is required")
	case blank(in.GroomName):
		return invalid("groomName", "Groom name is required")
	case blank(in.BrideName):
		return invalid("brideName", "Bride name is required")
	case blank(in.Location):
		return invalid("location", "Location is required")
	case in.Date.IsZero():
		return invalid("date", "Date is required")
	case in.Template == "":
		return invalid("template", "Template is required")
	case !in.Template.Valid():
		return invalid("template", fmt.Sprintf("Unknown template %q", in.Template))
	}
	return nil
}

// ValidateGuest checks the add and edit guest forms.
func ValidateGuest(in models.GuestInput) error {
	switch {
	case blank(in.Name):
		return invalid("name", "Name required")
	case blank(in.WhatsApp):
		return invalid("whatsapp", "WhatsApp number required")
	case !blank(in.Email) && !validEmail(strings.TrimSpace(in.Email)):
		return invalid("email", "Invalid email format")
	}
	return nil
}

// ValidateUpload checks a bulk guest import before it is posted.
func ValidateUpload(u *models.Upload) error {
	if u == nil || blank(u.Name) {
		return invalid("file", "Please upload an Excel file")
	}
	switch strings.ToLower(filepath.Ext(u.Name)) {
	case ".xlsx", ".xls":
	default:
		return invalid("file", "Please upload a valid Excel file.")
	}
	if len(u.Data) == 0 {
		return invalid("file", "The selected file is empty")
	}
	return nil
}

// FieldMessage returns the user-facing message of a validation error.
func FieldMessage(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}
