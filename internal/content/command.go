package content

import (
	"fmt"

	"rpgmanager/internal/domain"
)

// Op names an edit command.
type Op string

const (
	OpAddSection    Op = "add_section"
	OpUpdateSection Op = "update_section"
	OpRemoveSection Op = "remove_section"
	OpMoveSection   Op = "move_section"
	OpLinkNPC       Op = "link_npc"
	OpClearNPC      Op = "clear_npc"

	OpAddChoice               Op = "add_choice"
	OpUpdateChoice            Op = "update_choice"
	OpRemoveChoice            Op = "remove_choice"
	OpAddOption               Op = "add_option"
	OpUpdateOption            Op = "update_option"
	OpRemoveOption            Op = "remove_option"
	OpAddOptionConsequence    Op = "add_option_consequence"
	OpUpdateOptionConsequence Op = "update_option_consequence"
	OpRemoveOptionConsequence Op = "remove_option_consequence"

	OpAddConsequence    Op = "add_consequence"
	OpUpdateConsequence Op = "update_consequence"
	OpRemoveConsequence Op = "remove_consequence"

	OpAddDeliverable    Op = "add_deliverable"
	OpUpdateDeliverable Op = "update_deliverable"
	OpRemoveDeliverable Op = "remove_deliverable"
	OpAddInstruction    Op = "add_instruction"
	OpUpdateInstruction Op = "update_instruction"
	OpRemoveInstruction Op = "remove_instruction"
	OpAddCriterion      Op = "add_criterion"
	OpUpdateCriterion   Op = "update_criterion"
	OpRemoveCriterion   Op = "remove_criterion"
)

// Command is one serialized edit. Which address fields are used depends on Op:
//   - sections: section_id
//   - choices: choice_id, option_id, consequence_id
//   - standalone consequences: consequence_id
//   - deliverables: deliverable_id, item_id (instruction or criterion)
type Command struct {
	Op            Op          `json:"op"`
	SectionID     string      `json:"section_id,omitempty"`
	ChoiceID      string      `json:"choice_id,omitempty"`
	OptionID      string      `json:"option_id,omitempty"`
	ConsequenceID string      `json:"consequence_id,omitempty"`
	DeliverableID string      `json:"deliverable_id,omitempty"`
	ItemID        string      `json:"item_id,omitempty"`
	NPCID         string      `json:"npc_id,omitempty"`
	SectionType   SectionType `json:"section_type,omitempty"`
	Direction     Direction   `json:"direction,omitempty"`
	Field         string      `json:"field,omitempty"`
	Value         string      `json:"value,omitempty"`
}

// NPCResolver looks up an NPC for link_npc commands.
type NPCResolver func(npcID string) (NPCRef, error)

// Apply runs one command against d. created is the id of the element the
// command added, or empty for commands that add nothing.
func Apply(d Document, cmd Command, newID IDGenerator, npcs NPCResolver) (out Document, created string, err error) {
	switch cmd.Op {
	case OpAddSection:
		return d.AddSection(newID, cmd.SectionType)
	case OpUpdateSection:
		out, err = d.UpdateSection(cmd.SectionID, cmd.Field, cmd.Value)
	case OpRemoveSection:
		out, err = d.RemoveSection(cmd.SectionID)
	case OpMoveSection:
		out, err = d.MoveSection(cmd.SectionID, cmd.Direction)
	case OpLinkNPC:
		if npcs == nil || cmd.NPCID == "" {
			return d, "", fmt.Errorf("%w: link_npc requires npc_id", domain.ErrValidation)
		}
		npc, lookupErr := npcs(cmd.NPCID)
		if lookupErr != nil {
			return d, "", lookupErr
		}
		out, err = d.LinkNPC(cmd.SectionID, npc)
	case OpClearNPC:
		out, err = d.ClearNPC(cmd.SectionID)

	case OpAddChoice:
		out, created = d.AddChoice(newID)
	case OpUpdateChoice:
		out, err = d.UpdateChoice(cmd.ChoiceID, cmd.Field, cmd.Value)
	case OpRemoveChoice:
		out, err = d.RemoveChoice(cmd.ChoiceID)
	case OpAddOption:
		return d.AddOption(newID, cmd.ChoiceID)
	case OpUpdateOption:
		out, err = d.UpdateOption(cmd.ChoiceID, cmd.OptionID, cmd.Field, cmd.Value)
	case OpRemoveOption:
		out, err = d.RemoveOption(cmd.ChoiceID, cmd.OptionID)
	case OpAddOptionConsequence:
		return d.AddOptionConsequence(newID, cmd.ChoiceID, cmd.OptionID)
	case OpUpdateOptionConsequence:
		out, err = d.UpdateOptionConsequence(cmd.ChoiceID, cmd.OptionID, cmd.ConsequenceID, cmd.Field, cmd.Value)
	case OpRemoveOptionConsequence:
		out, err = d.RemoveOptionConsequence(cmd.ChoiceID, cmd.OptionID, cmd.ConsequenceID)

	case OpAddConsequence:
		out, created = d.AddConsequence(newID)
	case OpUpdateConsequence:
		out, err = d.UpdateConsequence(cmd.ConsequenceID, cmd.Field, cmd.Value)
	case OpRemoveConsequence:
		out, err = d.RemoveConsequence(cmd.ConsequenceID)

	case OpAddDeliverable:
		out, created = d.AddDeliverable(newID)
	case OpUpdateDeliverable:
		out, err = d.UpdateDeliverable(cmd.DeliverableID, cmd.Field, cmd.Value)
	case OpRemoveDeliverable:
		out, err = d.RemoveDeliverable(cmd.DeliverableID)
	case OpAddInstruction:
		return d.AddInstruction(newID, cmd.DeliverableID)
	case OpUpdateInstruction:
		out, err = d.UpdateInstruction(cmd.DeliverableID, cmd.ItemID, cmd.Value)
	case OpRemoveInstruction:
		out, err = d.RemoveInstruction(cmd.DeliverableID, cmd.ItemID)
	case OpAddCriterion:
		return d.AddCriterion(newID, cmd.DeliverableID)
	case OpUpdateCriterion:
		out, err = d.UpdateCriterion(cmd.DeliverableID, cmd.ItemID, cmd.Value)
	case OpRemoveCriterion:
		out, err = d.RemoveCriterion(cmd.DeliverableID, cmd.ItemID)

	default:
		return d, "", fmt.Errorf("%w: unknown op %q", domain.ErrValidation, cmd.Op)
	}
	if err != nil {
		return d, "", err
	}
	return out, created, nil
}
