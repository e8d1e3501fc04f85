package config

const (
	// MaxTitleLength is the maximum length for campaign, scenario and session
	// titles and for NPC names.
	MaxTitleLength = 255

	// MaxDescriptionLength bounds free-text descriptions and session notes.
	MaxDescriptionLength = 20000

	// MaxEmailLength follows the RFC 5321 path limit.
	MaxEmailLength = 254

	// MaxTraits is the maximum number of key/value traits on one NPC.
	MaxTraits = 100

	// MaxImportBatch caps how many scenarios one import request may clone.
	// Clones run sequentially, one remote round trip each.
	MaxImportBatch = 50

	// MaxEditCommands caps the number of content edit commands applied
	// before a single save.
	MaxEditCommands = 500
)
