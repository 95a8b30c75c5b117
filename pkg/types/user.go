package types

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UserProfile is the single onboarded user. At most one row exists.
type UserProfile struct {
	ID         int64  `json:"id"`                                    // Assigned by the store.
	FirstName  string `json:"firstName" validate:"required"`         // Required, non-empty after trim.
	LastName   string `json:"lastName" validate:"required"`          // Required, non-empty after trim.
	Email      string `json:"email" validate:"required,simpleemail"` // Unique at the storage level.
	ProfilePic string `json:"profilePic,omitempty"`                  // Local image URI; empty means default image.
}

// simpleEmail matches the local@domain.tld shape accepted at onboarding.
var simpleEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validatorInstance is shared so struct metadata is cached once.
var validatorInstance = validator.New()

func init() {
	if err := validatorInstance.RegisterValidation("simpleemail", validateSimpleEmail); err != nil {
		panic(fmt.Sprintf("registering simpleemail validation: %v", err))
	}
}

func validateSimpleEmail(fl validator.FieldLevel) bool {
	return simpleEmail.MatchString(fl.Field().String())
}

// Normalize returns a copy with surrounding whitespace removed from every
// field.
func (p UserProfile) Normalize() UserProfile {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.TrimSpace(p.Email)
	p.ProfilePic = strings.TrimSpace(p.ProfilePic)
	return p
}

// Validate checks the normalized profile. Errors wrap ErrInvalidProfile and
// name the first offending field.
func (p UserProfile) Validate() error {
	err := validatorInstance.Struct(p.Normalize())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s fails %q", ErrInvalidProfile, verrs[0].Field(), verrs[0].Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
}

// Complete reports whether the required fields are non-empty after trimming.
// Stores use it as a defensive check; it does not look at the email format.
func (p UserProfile) Complete() bool {
	n := p.Normalize()
	return n.FirstName != "" && n.LastName != "" && n.Email != ""
}

// FullName joins first and last name for display.
func (p UserProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Initials returns the uppercase initials shown on the default avatar.
func (p UserProfile) Initials() string {
	var b strings.Builder
	for _, s := range []string{p.FirstName, p.LastName} {
		r := []rune(strings.TrimSpace(s))
		if len(r) > 0 {
			b.WriteString(strings.ToUpper(string(r[0])))
		}
	}
	return b.String()
}
