package campaign

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"rpgmanager/internal/config"
	"rpgmanager/internal/domain"
	"rpgmanager/internal/domain/models"
)

// emailPattern is the loose shape check applied before inviting anyone.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	titleRules       = []validation.Rule{validation.Required, validation.RuneLength(1, config.MaxTitleLength)}
	descriptionRules = []validation.Rule{validation.Required, validation.RuneLength(1, config.MaxDescriptionLength)}
	emailRules       = []validation.Rule{
		validation.Required,
		validation.Length(3, config.MaxEmailLength),
		validation.Match(emailPattern).Error("must be a valid email address"),
	}
)

// Partial updates: a nil pointer leaves the field alone, a set one must be valid.
var (
	optionalTitleRules       = []validation.Rule{validation.NilOrNotEmpty, validation.RuneLength(1, config.MaxTitleLength)}
	optionalDescriptionRules = []validation.Rule{validation.NilOrNotEmpty, validation.RuneLength(1, config.MaxDescriptionLength)}
)

var imageURLRules = []validation.Rule{is.URL, validation.Length(0, 2048)}

var validRole = validation.By(func(value interface{}) error {
	role, _ := value.(models.MemberRole)
	if !role.Valid() {
		return fmt.Errorf("must be one of %s, %s or %s", models.RolePlayer, models.RoleGameMaster, models.RoleSpectator)
	}
	return nil
})

var validDate = validation.Date(models.DateLayout).Error("must be a date in YYYY-MM-DD format")

// invalid wraps a validation failure so handlers map it to 400.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}
