package services

import (
	"regexp"
	"strings"

	"github.com/sanisidro/restaurant-app/utils"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
)

// requireText checks a mandatory free-text field against its column limit.
func requireText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return utils.NewValidationError("%s is required", field)
	}
	if len(value) > max {
		return utils.NewValidationError("%s cannot exceed %d characters", field, max)
	}
	return nil
}

func validateContact(email, phone string) error {
	if email != "" {
		if len(email) > 100 {
			return utils.NewValidationError("email cannot exceed 100 characters")
		}
		if !emailPattern.MatchString(email) {
			return utils.NewValidationError("invalid email format")
		}
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return utils.NewValidationError("invalid phone format")
	}
	return nil
}
