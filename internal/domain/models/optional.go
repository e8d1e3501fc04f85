package models

// OptionalString is a transport-agnostic tri-state for partial updates:
// Present=false leaves the field alone, Value=nil clears it.
type OptionalString struct {
	Present bool
	Value   *string
}

// Apply returns the new value of a nullable field.
func (o OptionalString) Apply(current *string) *string {
	if !o.Present {
		return current
	}
	return o.Value
}
