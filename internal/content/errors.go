package content

import (
	"fmt"

	"rpgmanager/internal/domain"
)

var (
	// ErrElementNotFound is returned when an operation addresses an unknown id.
	ErrElementNotFound = fmt.Errorf("content element %w", domain.ErrNotFound)

	ErrLastOption      = fmt.Errorf("%w: a choice point must keep at least one option", domain.ErrValidation)
	ErrLastInstruction = fmt.Errorf("%w: a deliverable must keep at least one instruction", domain.ErrValidation)
	ErrLastCriterion   = fmt.Errorf("%w: a deliverable must keep at least one criterion", domain.ErrValidation)
	ErrUnknownField    = fmt.Errorf("%w: unknown field", domain.ErrValidation)
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrElementNotFound)
}

func unknownField(kind, field string) error {
	return fmt.Errorf("%s field %q: %w", kind, field, ErrUnknownField)
}

func invalidValue(kind, field, value string) error {
	return fmt.Errorf("%w: invalid %s %s %q", domain.ErrValidation, kind, field, value)
}
