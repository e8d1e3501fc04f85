package content

// AddConsequence appends a standalone consequence.
func (d Document) AddConsequence(newID IDGenerator) (Document, string) {
	c := Consequence{ID: newID(), Title: labels().ConsequenceTitle()}
	d.Consequences = appendItem(d.Consequences, c)
	return d, c.ID
}

// UpdateConsequence sets one field of a standalone consequence.
func (d Document) UpdateConsequence(id, field, value string) (Document, error) {
	consequences, ok, err := updateByID(d.Consequences, id, Consequence.elementID, func(c Consequence) (Consequence, error) {
		switch field {
		case FieldTitle:
			c.Title = value
		case FieldDescription:
			c.Description = value
		case FieldCondition:
			c.Condition = value
		case FieldOutcome:
			c.Outcome = value
		default:
			return c, unknownField("consequence", field)
		}
		return c, nil
	})
	if !ok {
		return d, notFound("consequence", id)
	}
	if err != nil {
		return d, err
	}
	d.Consequences = consequences
	return d, nil
}

func (d Document) RemoveConsequence(id string) (Document, error) {
	consequences, ok := removeByID(d.Consequences, id, Consequence.elementID)
	if !ok {
		return d, notFound("consequence", id)
	}
	d.Consequences = consequences
	return d, nil
}

// AddDeliverable appends a pending deliverable seeded with one empty
// instruction and one empty criterion.
func (d Document) AddDeliverable(newID IDGenerator) (Document, string) {
	del := Deliverable{
		ID:           newID(),
		Title:        labels().DeliverableTitle(),
		Status:       StatusPending,
		Instructions: []Item{{ID: newID()}},
		Criteria:     []Item{{ID: newID()}},
	}
	d.Deliverables = appendItem(d.Deliverables, del)
	return d, del.ID
}

// UpdateDeliverable sets the title, objective or status of a deliverable.
func (d Document) UpdateDeliverable(id, field, value string) (Document, error) {
	return d.withDeliverable(id, func(del Deliverable) (Deliverable, error) {
		switch field {
		case FieldTitle:
			del.Title = value
		case FieldObjective:
			del.Objective = value
		case FieldStatus:
			if !DeliverableStatus(value).Valid() {
				return del, invalidValue("deliverable", field, value)
			}
			del.Status = DeliverableStatus(value)
		default:
			return del, unknownField("deliverable", field)
		}
		return del, nil
	})
}

func (d Document) RemoveDeliverable(id string) (Document, error) {
	deliverables, ok := removeByID(d.Deliverables, id, Deliverable.elementID)
	if !ok {
		return d, notFound("deliverable", id)
	}
	d.Deliverables = deliverables
	return d, nil
}

// itemList selects one of a deliverable's two item lists.
type itemList struct {
	kind    string
	get     func(Deliverable) []Item
	set     func(*Deliverable, []Item)
	lastErr error
}

var (
	instructions = itemList{
		kind:    "instruction",
		get:     func(d Deliverable) []Item { return d.Instructions },
		set:     func(d *Deliverable, items []Item) { d.Instructions = items },
		lastErr: ErrLastInstruction,
	}
	criteria = itemList{
		kind:    "criterion",
		get:     func(d Deliverable) []Item { return d.Criteria },
		set:     func(d *Deliverable, items []Item) { d.Criteria = items },
		lastErr: ErrLastCriterion,
	}
)

func (d Document) AddInstruction(newID IDGenerator, deliverableID string) (Document, string, error) {
	return d.addItem(newID, deliverableID, instructions)
}

func (d Document) UpdateInstruction(deliverableID, id, text string) (Document, error) {
	return d.updateItem(deliverableID, id, text, instructions)
}

// RemoveInstruction deletes an instruction. The last one cannot be removed.
func (d Document) RemoveInstruction(deliverableID, id string) (Document, error) {
	return d.removeItem(deliverableID, id, instructions)
}

func (d Document) AddCriterion(newID IDGenerator, deliverableID string) (Document, string, error) {
	return d.addItem(newID, deliverableID, criteria)
}

func (d Document) UpdateCriterion(deliverableID, id, text string) (Document, error) {
	return d.updateItem(deliverableID, id, text, criteria)
}

// RemoveCriterion deletes a criterion. The last one cannot be removed.
func (d Document) RemoveCriterion(deliverableID, id string) (Document, error) {
	return d.removeItem(deliverableID, id, criteria)
}

func (d Document) addItem(newID IDGenerator, deliverableID string, list itemList) (Document, string, error) {
	item := Item{ID: newID()}
	out, err := d.withDeliverable(deliverableID, func(del Deliverable) (Deliverable, error) {
		list.set(&del, appendItem(list.get(del), item))
		return del, nil
	})
	if err != nil {
		return d, "", err
	}
	return out, item.ID, nil
}

func (d Document) updateItem(deliverableID, id, text string, list itemList) (Document, error) {
	return d.withDeliverable(deliverableID, func(del Deliverable) (Deliverable, error) {
		items, ok, _ := updateByID(list.get(del), id, Item.elementID, func(it Item) (Item, error) {
			it.Text = text
			return it, nil
		})
		if !ok {
			return del, notFound(list.kind, id)
		}
		list.set(&del, items)
		return del, nil
	})
}

func (d Document) removeItem(deliverableID, id string, list itemList) (Document, error) {
	return d.withDeliverable(deliverableID, func(del Deliverable) (Deliverable, error) {
		items, ok := removeByID(list.get(del), id, Item.elementID)
		if !ok {
			return del, notFound(list.kind, id)
		}
		if len(items) == 0 {
			return del, list.lastErr
		}
		list.set(&del, items)
		return del, nil
	})
}

func (d Document) withDeliverable(id string, fn func(Deliverable) (Deliverable, error)) (Document, error) {
	deliverables, ok, err := updateByID(d.Deliverables, id, Deliverable.elementID, fn)
	if !ok {
		return d, notFound("deliverable", id)
	}
	if err != nil {
		return d, err
	}
	d.Deliverables = deliverables
	return d, nil
}
