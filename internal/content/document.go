// Package content models the nested scenario document (sections, choice points,
// consequences and deliverables) and the edit operations over it.
//
// Every operation is a pure function: it returns a new Document and leaves the
// receiver untouched, so callers may keep old values for comparison or undo.
package content

import (
	"encoding/json"
	"fmt"
)

// SectionType is the kind of a scenario section.
type SectionType string

const (
	SectionMission   SectionType = "mission"
	SectionCharacter SectionType = "character"
	SectionNote      SectionType = "note"
	SectionResource  SectionType = "resource"
)

// Valid reports whether t is one of the known section kinds.
func (t SectionType) Valid() bool {
	switch t {
	case SectionMission, SectionCharacter, SectionNote, SectionResource:
		return true
	}
	return false
}

// UnmarshalJSON rejects unknown section kinds.
func (t *SectionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !SectionType(s).Valid() {
		return fmt.Errorf("unknown section type %q", s)
	}
	*t = SectionType(s)
	return nil
}

// DeliverableStatus tracks whether a deliverable is done.
type DeliverableStatus string

const (
	StatusPending   DeliverableStatus = "pending"
	StatusCompleted DeliverableStatus = "completed"
)

// Valid reports whether s is a known deliverable status.
func (s DeliverableStatus) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Document is the content tree stored with each scenario.
type Document struct {
	Sections     []Section     `json:"sections"`
	Consequences []Consequence `json:"consequences"`
	Deliverables []Deliverable `json:"deliverables"`
	Choices      []Choice      `json:"choices"`
}

// Section is one block of scenario text. NPCID is a weak link to the NPC the
// title and content were copied from.
type Section struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Type    SectionType `json:"type"`
	NPCID   *string     `json:"npcId"`
}

// Choice is a branching point with at least one option.
type Choice struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []Option `json:"options"`
}

type Option struct {
	ID           string              `json:"id"`
	Text         string              `json:"text"`
	Outcome      string              `json:"outcome"`
	Consequences []OptionConsequence `json:"consequences"`
}

type OptionConsequence struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// Consequence is a standalone branching note not tied to an option.
type Consequence struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
	Outcome     string `json:"outcome"`
}

type Deliverable struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Objective    string            `json:"objective"`
	Status       DeliverableStatus `json:"status"`
	Instructions []Item            `json:"instructions"`
	Criteria     []Item            `json:"criteria"`
}

// Item is an entry in a deliverable's instruction or criteria list.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// New returns an empty document with all lists initialised.
func New() Document {
	return Document{}.normalized()
}

// UnmarshalJSON decodes a document and fills in missing lists.
func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = Document(p).normalized()
	return nil
}

// MarshalJSON always emits empty lists as [] rather than null.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return json.Marshal(plain(d.normalized()))
}

// Decode parses and validates a serialized document.
func Decode(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode content: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// Encode serializes the document. Field order is fixed, so equal documents
// encode to identical bytes.
func (d Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

func (d Document) normalized() Document {
	if d.Sections == nil {
		d.Sections = []Section{}
	}
	if d.Consequences == nil {
		d.Consequences = []Consequence{}
	}
	if d.Deliverables == nil {
		d.Deliverables = []Deliverable{}
	} else {
		deliverables := make([]Deliverable, len(d.Deliverables))
		for i, del := range d.Deliverables {
			if del.Instructions == nil {
				del.Instructions = []Item{}
			}
			if del.Criteria == nil {
				del.Criteria = []Item{}
			}
			if del.Status == "" {
				del.Status = StatusPending
			}
			deliverables[i] = del
		}
		d.Deliverables = deliverables
	}
	if d.Choices == nil {
		d.Choices = []Choice{}
	} else {
		choices := make([]Choice, len(d.Choices))
		for i, c := range d.Choices {
			if c.Options == nil {
				c.Options = []Option{}
			} else {
				options := make([]Option, len(c.Options))
				for j, o := range c.Options {
					if o.Consequences == nil {
						o.Consequences = []OptionConsequence{}
					}
					options[j] = o
				}
				c.Options = options
			}
			choices[i] = c
		}
		d.Choices = choices
	}
	return d
}

// Section returns the section with the given id.
func (d Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Choice returns the choice point with the given id.
func (d Document) Choice(id string) (Choice, bool) {
	for _, c := range d.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// Deliverable returns the deliverable with the given id.
func (d Document) Deliverable(id string) (Deliverable, bool) {
	for _, del := range d.Deliverables {
		if del.ID == id {
			return del, true
		}
	}
	return Deliverable{}, false
}
