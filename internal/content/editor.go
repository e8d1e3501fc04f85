package content

import (
	"context"
	"fmt"

	"rpgmanager/internal/domain"
)

// Saver persists a whole document in one write.
type Saver interface {
	SaveContent(ctx context.Context, doc Document) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, doc Document) error

func (f SaverFunc) SaveContent(ctx context.Context, doc Document) error { return f(ctx, doc) }

// Editor holds one in-memory document between edits. Nothing is written until
// Save, and Save always submits the full document (last writer wins).
type Editor struct {
	doc   Document
	newID IDGenerator
	dirty bool
}

// NewEditor starts editing doc. A nil newID uses NewID.
func NewEditor(doc Document, newID IDGenerator) *Editor {
	if newID == nil {
		newID = NewID
	}
	return &Editor{doc: doc.normalized(), newID: newID}
}

// Document returns the current document value.
func (e *Editor) Document() Document { return e.doc }

// Dirty reports whether there are edits not yet saved.
func (e *Editor) Dirty() bool { return e.dirty }

// Apply runs a single command and returns the id it created, if any.
func (e *Editor) Apply(cmd Command, npcs NPCResolver) (string, error) {
	out, created, err := Apply(e.doc, cmd, e.newID, npcs)
	if err != nil {
		return "", err
	}
	e.doc = out
	e.dirty = true
	return created, nil
}

// ApplyAll runs commands in order. If any command fails the editor is left as
// it was before the batch and the error names the failing command's index.
func (e *Editor) ApplyAll(cmds []Command, npcs NPCResolver) ([]string, error) {
	doc := e.doc
	created := make([]string, len(cmds))
	for i, cmd := range cmds {
		out, id, err := Apply(doc, cmd, e.newID, npcs)
		if err != nil {
			return nil, fmt.Errorf("command %d (%s): %w", i, cmd.Op, err)
		}
		doc = out
		created[i] = id
	}
	if len(cmds) > 0 {
		e.doc = doc
		e.dirty = true
	}
	return created, nil
}

// Save validates the document and hands it to saver as one write.
func (e *Editor) Save(ctx context.Context, saver Saver) error {
	if err := e.doc.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := saver.SaveContent(ctx, e.doc); err != nil {
		return err
	}
	e.dirty = false
	return nil
}
