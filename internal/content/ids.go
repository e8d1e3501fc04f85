package content

import (
	"slices"

	"github.com/google/uuid"
)

// IDGenerator produces ids for new elements. Ids must be unique and are never reused.
type IDGenerator func() string

// NewID returns a time-ordered UUIDv7.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func appendItem[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

// updateByID returns a copy of items with the element whose id matches replaced
// by fn's result. ok is false when no element matches.
func updateByID[T any](items []T, id string, idOf func(T) string, fn func(T) (T, error)) ([]T, bool, error) {
	i := slices.IndexFunc(items, func(it T) bool { return idOf(it) == id })
	if i < 0 {
		return nil, false, nil
	}
	updated, err := fn(items[i])
	if err != nil {
		return nil, true, err
	}
	out := slices.Clone(items)
	out[i] = updated
	return out, true, nil
}

// removeByID returns a copy of items without the element whose id matches.
func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	i := slices.IndexFunc(items, func(it T) bool { return idOf(it) == id })
	if i < 0 {
		return nil, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), true
}

func (s Section) elementID() string           { return s.ID }
func (c Choice) elementID() string            { return c.ID }
func (o Option) elementID() string            { return o.ID }
func (c OptionConsequence) elementID() string { return c.ID }
func (c Consequence) elementID() string       { return c.ID }
func (d Deliverable) elementID() string       { return d.ID }
func (i Item) elementID() string              { return i.ID }
