package content

import (
	"fmt"

	"rpgmanager/internal/domain"
	"rpgmanager/internal/templates"
)

// Direction is the way a section moves when reordered.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Editable field names accepted by the Update* operations.
const (
	FieldTitle       = "title"
	FieldContent     = "content"
	FieldType        = "type"
	FieldDescription = "description"
	FieldText        = "text"
	FieldOutcome     = "outcome"
	FieldImpact      = "impact"
	FieldCondition   = "condition"
	FieldObjective   = "objective"
	FieldStatus      = "status"
)

// NPCRef is the part of an NPC that gets copied into a character section.
type NPCRef struct {
	ID          string
	Name        string
	Description string
}

func labels() *templates.Registry { return templates.Default() }

// AddSection appends a section of the given kind with its default title.
func (d Document) AddSection(newID IDGenerator, kind SectionType) (Document, string, error) {
	if !kind.Valid() {
		return d, "", invalidValue("section", FieldType, string(kind))
	}
	s := Section{
		ID:    newID(),
		Title: labels().SectionTitle(string(kind)),
		Type:  kind,
	}
	d.Sections = appendItem(d.Sections, s)
	return d, s.ID, nil
}

// UpdateSection sets one field of a section.
func (d Document) UpdateSection(id, field, value string) (Document, error) {
	sections, ok, err := updateByID(d.Sections, id, Section.elementID, func(s Section) (Section, error) {
		switch field {
		case FieldTitle:
			s.Title = value
		case FieldContent:
			s.Content = value
		case FieldType:
			if !SectionType(value).Valid() {
				return s, invalidValue("section", field, value)
			}
			s.Type = SectionType(value)
		default:
			return s, unknownField("section", field)
		}
		return s, nil
	})
	if !ok {
		return d, notFound("section", id)
	}
	if err != nil {
		return d, err
	}
	d.Sections = sections
	return d, nil
}

// RemoveSection deletes a section.
func (d Document) RemoveSection(id string) (Document, error) {
	sections, ok := removeByID(d.Sections, id, Section.elementID)
	if !ok {
		return d, notFound("section", id)
	}
	d.Sections = sections
	return d, nil
}

// MoveSection swaps a section with its immediate neighbour. Moving the first
// section up or the last section down returns the document unchanged.
func (d Document) MoveSection(id string, dir Direction) (Document, error) {
	i := -1
	for j, s := range d.Sections {
		if s.ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return d, notFound("section", id)
	}

	var j int
	switch dir {
	case Up:
		j = i - 1
	case Down:
		j = i + 1
	default:
		return d, fmt.Errorf("%w: invalid direction %q", domain.ErrValidation, dir)
	}
	if j < 0 || j >= len(d.Sections) {
		return d, nil
	}

	sections := make([]Section, len(d.Sections))
	copy(sections, d.Sections)
	sections[i], sections[j] = sections[j], sections[i]
	d.Sections = sections
	return d, nil
}

// LinkNPC copies the NPC's name and description into a character section and
// records the NPC id. Later NPC edits are never synced back into the section.
func (d Document) LinkNPC(id string, npc NPCRef) (Document, error) {
	sections, ok, err := updateByID(d.Sections, id, Section.elementID, func(s Section) (Section, error) {
		if s.Type != SectionCharacter {
			return s, fmt.Errorf("%w: only character sections can link an NPC", domain.ErrValidation)
		}
		npcID := npc.ID
		s.NPCID = &npcID
		s.Title = npc.Name
		s.Content = npc.Description
		return s, nil
	})
	if !ok {
		return d, notFound("section", id)
	}
	if err != nil {
		return d, err
	}
	d.Sections = sections
	return d, nil
}

// ClearNPC drops the NPC link and keeps the copied text.
func (d Document) ClearNPC(id string) (Document, error) {
	sections, ok, _ := updateByID(d.Sections, id, Section.elementID, func(s Section) (Section, error) {
		s.NPCID = nil
		return s, nil
	})
	if !ok {
		return d, notFound("section", id)
	}
	d.Sections = sections
	return d, nil
}
