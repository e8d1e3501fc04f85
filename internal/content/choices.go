package content

// AddChoice appends a choice point with the default number of options, each
// with an empty consequence list. It returns the id of the new choice.
func (d Document) AddChoice(newID IDGenerator) (Document, string) {
	n := labels().InitialOptions()
	c := Choice{
		ID:      newID(),
		Title:   labels().ChoiceTitle(),
		Options: make([]Option, 0, n),
	}
	for i := 1; i <= n; i++ {
		c.Options = append(c.Options, Option{
			ID:           newID(),
			Text:         labels().OptionText(i),
			Consequences: []OptionConsequence{},
		})
	}
	d.Choices = appendItem(d.Choices, c)
	return d, c.ID
}

// UpdateChoice sets the title or description of a choice point.
func (d Document) UpdateChoice(id, field, value string) (Document, error) {
	return d.withChoice(id, func(c Choice) (Choice, error) {
		switch field {
		case FieldTitle:
			c.Title = value
		case FieldDescription:
			c.Description = value
		default:
			return c, unknownField("choice", field)
		}
		return c, nil
	})
}

// RemoveChoice deletes a choice point with all its options.
func (d Document) RemoveChoice(id string) (Document, error) {
	choices, ok := removeByID(d.Choices, id, Choice.elementID)
	if !ok {
		return d, notFound("choice", id)
	}
	d.Choices = choices
	return d, nil
}

// AddOption appends an option labelled after the current option count.
func (d Document) AddOption(newID IDGenerator, choiceID string) (Document, string, error) {
	var created string
	out, err := d.withChoice(choiceID, func(c Choice) (Choice, error) {
		o := Option{
			ID:           newID(),
			Text:         labels().OptionText(len(c.Options) + 1),
			Consequences: []OptionConsequence{},
		}
		created = o.ID
		c.Options = appendItem(c.Options, o)
		return c, nil
	})
	if err != nil {
		return d, "", err
	}
	return out, created, nil
}

// UpdateOption sets the text or outcome of an option.
func (d Document) UpdateOption(choiceID, id, field, value string) (Document, error) {
	return d.withOption(choiceID, id, func(o Option) (Option, error) {
		switch field {
		case FieldText:
			o.Text = value
		case FieldOutcome:
			o.Outcome = value
		default:
			return o, unknownField("option", field)
		}
		return o, nil
	})
}

// RemoveOption deletes an option. The last remaining option cannot be removed.
func (d Document) RemoveOption(choiceID, id string) (Document, error) {
	return d.withChoice(choiceID, func(c Choice) (Choice, error) {
		options, ok := removeByID(c.Options, id, Option.elementID)
		if !ok {
			return c, notFound("option", id)
		}
		if len(options) == 0 {
			return c, ErrLastOption
		}
		c.Options = options
		return c, nil
	})
}

// AddOptionConsequence appends an empty consequence to an option.
func (d Document) AddOptionConsequence(newID IDGenerator, choiceID, optionID string) (Document, string, error) {
	oc := OptionConsequence{ID: newID()}
	out, err := d.withOption(choiceID, optionID, func(o Option) (Option, error) {
		o.Consequences = appendItem(o.Consequences, oc)
		return o, nil
	})
	if err != nil {
		return d, "", err
	}
	return out, oc.ID, nil
}

// UpdateOptionConsequence sets the description or impact of an option consequence.
func (d Document) UpdateOptionConsequence(choiceID, optionID, id, field, value string) (Document, error) {
	return d.withOption(choiceID, optionID, func(o Option) (Option, error) {
		consequences, ok, err := updateByID(o.Consequences, id, OptionConsequence.elementID, func(c OptionConsequence) (OptionConsequence, error) {
			switch field {
			case FieldDescription:
				c.Description = value
			case FieldImpact:
				c.Impact = value
			default:
				return c, unknownField("consequence", field)
			}
			return c, nil
		})
		if !ok {
			return o, notFound("consequence", id)
		}
		if err != nil {
			return o, err
		}
		o.Consequences = consequences
		return o, nil
	})
}

// RemoveOptionConsequence deletes a consequence from an option. Options may end
// up with no consequences.
func (d Document) RemoveOptionConsequence(choiceID, optionID, id string) (Document, error) {
	return d.withOption(choiceID, optionID, func(o Option) (Option, error) {
		consequences, ok := removeByID(o.Consequences, id, OptionConsequence.elementID)
		if !ok {
			return o, notFound("consequence", id)
		}
		o.Consequences = consequences
		return o, nil
	})
}

func (d Document) withChoice(id string, fn func(Choice) (Choice, error)) (Document, error) {
	choices, ok, err := updateByID(d.Choices, id, Choice.elementID, fn)
	if !ok {
		return d, notFound("choice", id)
	}
	if err != nil {
		return d, err
	}
	d.Choices = choices
	return d, nil
}

func (d Document) withOption(choiceID, id string, fn func(Option) (Option, error)) (Document, error) {
	return d.withChoice(choiceID, func(c Choice) (Choice, error) {
		options, ok, err := updateByID(c.Options, id, Option.elementID, fn)
		if !ok {
			return c, notFound("option", id)
		}
		if err != nil {
			return c, err
		}
		c.Options = options
		return c, nil
	})
}
