// Package seed loads demo data through the application services, so seeded
// rows pass the same validation and permission checks as API writes.
package seed

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"rpgmanager/internal/content"
	"rpgmanager/internal/domain/models"
)

//go:embed fixtures/*.yaml
var fixtureFiles embed.FS

const demoFixture = "fixtures/demo.yaml"

// Fixture mirrors fixtures/demo.yaml.
type Fixture struct {
	Users     []User     `yaml:"users"`
	Campaigns []Campaign `yaml:"campaigns"`
}

type User struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Username string `yaml:"username"`
}

type Campaign struct {
	Owner       string     `yaml:"owner"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Members     []Member   `yaml:"members"`
	NPCs        []NPC      `yaml:"npcs"`
	Scenarios   []Scenario `yaml:"scenarios"`
	Sessions    []Session  `yaml:"sessions"`
}

// Member is invited on creation; Accept also activates the membership.
type Member struct {
	Email  string            `yaml:"email"`
	Role   models.MemberRole `yaml:"role"`
	Accept bool              `yaml:"accept"`
}

type NPC struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Traits      []models.Trait `yaml:"traits"`
}

type Scenario struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Edits       []Edit `yaml:"edits"`
}

// Session links to a scenario of the same campaign by title.
type Session struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date"`
	Notes    string `yaml:"notes"`
	Scenario string `yaml:"scenario"`
}

// Edit is a content command with symbolic references. As names the element
// the command creates; "@name" in an id field refers to it. NPC names an NPC
// of the same campaign for link_npc.
type Edit struct {
	Op            content.Op          `yaml:"op"`
	As            string              `yaml:"as"`
	SectionID     string              `yaml:"section_id"`
	ChoiceID      string              `yaml:"choice_id"`
	OptionID      string              `yaml:"option_id"`
	ConsequenceID string              `yaml:"consequence_id"`
	DeliverableID string              `yaml:"deliverable_id"`
	ItemID        string              `yaml:"item_id"`
	NPC           string              `yaml:"npc"`
	SectionType   content.SectionType `yaml:"section_type"`
	Direction     content.Direction   `yaml:"direction"`
	Field         string              `yaml:"field"`
	Value         string              `yaml:"value"`
}

// LoadDemo parses the embedded demo fixture.
func LoadDemo() (*Fixture, error) {
	data, err := fixtureFiles.ReadFile(demoFixture)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", demoFixture, err)
	}
	return Parse(data)
}

// LoadFile parses a fixture from disk.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes fixture YAML and checks that every campaign owner and member
// is one of the fixture's users.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fixture: %w", err)
	}

	users := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		users[models.NormalizeEmail(u.Email)] = true
	}
	for _, c := range f.Campaigns {
		if !users[models.NormalizeEmail(c.Owner)] {
			return nil, fmt.Errorf("campaign %q: owner %s is not a fixture user", c.Title, c.Owner)
		}
		for _, m := range c.Members {
			if !users[models.NormalizeEmail(m.Email)] {
				return nil, fmt.Errorf("campaign %q: member %s is not a fixture user", c.Title, m.Email)
			}
		}
	}
	return &f, nil
}

// BuildContent runs a scenario's edits against an empty document, resolving
// "@name" references and NPC names as it goes.
func BuildContent(edits []Edit, npcs map[string]models.NPC, newID content.IDGenerator) (content.Document, error) {
	ed := content.NewEditor(content.New(), newID)
	refs := map[string]string{}

	resolve := func(id string) (string, error) {
		if !strings.HasPrefix(id, "@") {
			return id, nil
		}
		resolved, ok := refs[id[1:]]
		if !ok {
			return "", fmt.Errorf("unknown reference %s", id)
		}
		return resolved, nil
	}

	resolver := func(npcID string) (content.NPCRef, error) {
		for _, n := range npcs {
			if n.ID == npcID {
				return content.NPCRef{ID: n.ID, Name: n.Name, Description: n.Description}, nil
			}
		}
		return content.NPCRef{}, fmt.Errorf("npc %s not seeded", npcID)
	}

	for i, e := range edits {
		cmd := content.Command{
			Op:          e.Op,
			SectionType: e.SectionType,
			Direction:   e.Direction,
			Field:       e.Field,
			Value:       e.Value,
		}
		var err error
		for _, f := range []struct {
			dst *string
			src string
		}{
			{&cmd.SectionID, e.SectionID},
			{&cmd.ChoiceID, e.ChoiceID},
			{&cmd.OptionID, e.OptionID},
			{&cmd.ConsequenceID, e.ConsequenceID},
			{&cmd.DeliverableID, e.DeliverableID},
			{&cmd.ItemID, e.ItemID},
		} {
			if *f.dst, err = resolve(f.src); err != nil {
				return content.Document{}, fmt.Errorf("edit %d: %w", i, err)
			}
		}
		if e.NPC != "" {
			npc, ok := npcs[e.NPC]
			if !ok {
				return content.Document{}, fmt.Errorf("edit %d: npc %q is not in this campaign", i, e.NPC)
			}
			cmd.NPCID = npc.ID
		}

		created, err := ed.Apply(cmd, resolver)
		if err != nil {
			return content.Document{}, fmt.Errorf("edit %d (%s): %w", i, e.Op, err)
		}
		if e.As != "" {
			if created == "" {
				return content.Document{}, fmt.Errorf("edit %d (%s): creates nothing to name %q", i, e.Op, e.As)
			}
			refs[e.As] = created
		}
	}

	doc := ed.Document()
	if err := doc.Validate(); err != nil {
		return content.Document{}, fmt.Errorf("seeded content is invalid: %w", err)
	}
	return doc, nil
}
