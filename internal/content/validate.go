package content

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the document's structure: known section kinds and
// statuses, non-empty ids that are unique across the whole document, and at
// least one option per choice point.
func (d Document) Validate() error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Sections),
		validation.Field(&d.Consequences),
		validation.Field(&d.Deliverables),
		validation.Field(&d.Choices),
	)
	if err != nil {
		return err
	}
	return d.checkUniqueIDs()
}

func (s Section) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.Type, validation.Required, validation.By(func(value interface{}) error {
			if t, _ := value.(SectionType); !t.Valid() {
				return fmt.Errorf("unknown section type %q", t)
			}
			return nil
		})),
		validation.Field(&s.NPCID, validation.NilOrNotEmpty),
	)
}

func (c Choice) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Options, validation.Required.Error("must have at least one option")),
	)
}

func (o Option) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.ID, validation.Required),
		validation.Field(&o.Consequences),
	)
}

func (c OptionConsequence) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
	)
}

func (c Consequence) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
	)
}

func (d Deliverable) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.Status, validation.Required, validation.In(StatusPending, StatusCompleted)),
		validation.Field(&d.Instructions),
		validation.Field(&d.Criteria),
	)
}

func (i Item) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ID, validation.Required),
	)
}

func (d Document) checkUniqueIDs() error {
	seen := make(map[string]struct{})
	check := func(id string) error {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate element id %q", id)
		}
		seen[id] = struct{}{}
		return nil
	}

	for _, s := range d.Sections {
		if err := check(s.ID); err != nil {
			return err
		}
	}
	for _, c := range d.Consequences {
		if err := check(c.ID); err != nil {
			return err
		}
	}
	for _, del := range d.Deliverables {
		if err := check(del.ID); err != nil {
			return err
		}
		for _, it := range del.Instructions {
			if err := check(it.ID); err != nil {
				return err
			}
		}
		for _, it := range del.Criteria {
			if err := check(it.ID); err != nil {
				return err
			}
		}
	}
	for _, c := range d.Choices {
		if err := check(c.ID); err != nil {
			return err
		}
		for _, o := range c.Options {
			if err := check(o.ID); err != nil {
				return err
			}
			for _, oc := range o.Consequences {
				if err := check(oc.ID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
