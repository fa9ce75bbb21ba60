package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/portfolio-api/internal/models"
)

// Messages returned to visitors of the public site.
const (
	MsgFieldsRequired = "Tous les champs obligatoires doivent être remplis"
	MsgInvalidEmail   = "Format d'email invalide"
)

// Username and password bounds
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)
)

// reservedUsernames cannot be registered, whatever their case
var reservedUsernames = map[string]bool{
	"admin":   true,
	"root":    true,
	"api":     true,
	"www":     true,
	"mail":    true,
	"support": true,
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is returned when one or more fields are invalid. Its message is the
// message of the first failure.
type Errors struct {
	Fields []ValidationError `json:"fields"`
}

func (e *Errors) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

// AsError wraps errs in an *Errors, or returns nil when errs is empty.
func AsError(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return &Errors{Fields: errs}
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidateContact validates a contact form submission. Every field is
// required after trimming; the email must be well formed.
func ValidateContact(req *models.ContactRequest) []ValidationError {
	var errors []ValidationError

	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"subject", req.Subject},
		{"message", req.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			errors = append(errors, ValidationError{Field: f.name, Message: MsgFieldsRequired})
		}
	}
	if len(errors) > 0 {
		return errors
	}

	// matched as submitted; surrounding whitespace makes the address invalid
	if !IsEmail(req.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: MsgInvalidEmail, Value: req.Email})
	}
	return errors
}

// NormalizeContact trims every field and lowercases the email.
func NormalizeContact(req *models.ContactRequest) models.ContactRequest {
	return models.ContactRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
}

// NormalizeUsername returns the stored form of a username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername checks length, allowed characters and reserved names
func ValidateUsername(username string) []ValidationError {
	var errors []ValidationError

	n := utf8.RuneCountInString(username)
	switch {
	case username == "":
		errors = append(errors, ValidationError{Field: "username", Message: "username is required"})
	case n < MinUsernameLength || n > MaxUsernameLength:
		errors = append(errors, ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength),
			Value:   username,
		})
	case !usernameRegex.MatchString(username):
		errors = append(errors, ValidationError{
			Field:   "username",
			Message: "username may only contain letters, numbers, underscores and dots",
			Value:   username,
		})
	case reservedUsernames[strings.ToLower(username)]:
		errors = append(errors, ValidationError{Field: "username", Message: "username is reserved", Value: username})
	}
	return errors
}

// ValidatePassword checks password length
func ValidatePassword(password string) []ValidationError {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return []ValidationError{{
			Field:   "password",
			Message: fmt.Sprintf("password must be between %d and %d characters", MinPasswordLength, MaxPasswordLength),
		}}
	}
	return nil
}

// ValidateSignUp validates a registration request
func ValidateSignUp(email, password, name, username string) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}
	if email = strings.TrimSpace(email); email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !IsEmail(email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: email})
	}
	errors = append(errors, ValidateUsername(strings.TrimSpace(username))...)
	errors = append(errors, ValidatePassword(password)...)
	return errors
}

// ValidateSkillForm reports each problem with a skill form. SkillForm.Valid
// gives the same verdict without the detail.
func ValidateSkillForm(f models.SkillForm) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(f.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}
	if !models.ValidSkillCategories[f.Category] {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("invalid category, must be one of: %s", strings.Join(models.SkillCategories, ", ")),
			Value:   f.Category,
		})
	}
	if f.Level < models.MinSkillLevel || f.Level > models.MaxSkillLevel {
		errors = append(errors, ValidationError{
			Field:   "level",
			Message: fmt.Sprintf("level must be between %d and %d", models.MinSkillLevel, models.MaxSkillLevel),
			Value:   f.Level,
		})
	}
	return errors
}

// ValidateProjectForm reports the missing required fields of a project form
func ValidateProjectForm(f models.ProjectForm) []ValidationError {
	return required(
		[2]string{"title", f.Title},
		[2]string{"description", f.Description},
	)
}

// ValidatePostForm reports the missing required fields of a post form
func ValidatePostForm(f models.PostForm) []ValidationError {
	return required(
		[2]string{"title", f.Title},
		[2]string{"content", f.Content},
	)
}

func required(fields ...[2]string) []ValidationError {
	var errors []ValidationError
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			errors = append(errors, ValidationError{Field: f[0], Message: f[0] + " is required"})
		}
	}
	return errors
}
