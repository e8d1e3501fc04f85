package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	assert.Equal(t, "New Mission", r.SectionTitle("mission"))
	assert.Equal(t, "New Character", r.SectionTitle("character"))
	assert.Equal(t, "New Resource", r.SectionTitle("resource"))
	assert.Equal(t, "New Note", r.SectionTitle("note"))
	assert.Equal(t, "New Section", r.SectionTitle("unknown"))

	assert.Equal(t, "New Choice Point", r.ChoiceTitle())
	assert.Equal(t, 2, r.InitialOptions())
	assert.Equal(t, "Option 3", r.OptionText(3))
	assert.Equal(t, "New Consequence", r.ConsequenceTitle())
	assert.Equal(t, "New Deliverable", r.DeliverableTitle())
	assert.Equal(t, []string{"Appearance", "Personality", "Motivation"}, r.NPCTraitKeys())
}

func TestNPCTraitKeysReturnsCopy(t *testing.T) {
	r := Default()
	keys := r.NPCTraitKeys()
	keys[0] = "changed"
	assert.Equal(t, "Appearance", r.NPCTraitKeys()[0])
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid",
			yaml: "choice:\n  title: Pick\n  option_text: Choice %d\n  initial_options: 3\n",
		},
		{
			name:    "zero initial options",
			yaml:    "choice:\n  initial_options: 0\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			yaml:    "choice: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3, r.InitialOptions())
			assert.Equal(t, "Choice 1", r.OptionText(1))
		})
	}
}
