package config

type StreamCfg struct {
	// Seed is the caller seed; only its low 31 bits are used.
	Seed int32 `yaml:"seed"`

	// Label derives the seed from a name when set; it takes precedence over Seed.
	Label string `yaml:"label"`

	// Multiplier selects one of the seven fixed multipliers (0..6).
	// Out-of-range values fall back to 0 with a warning.
	Multiplier int32 `yaml:"multiplier"`

	// Position is the ordinal of this stream among Total streams spawned together.
	Position int32 `yaml:"position"`

	// Total is the number of streams spawned together. Defaults to 1.
	Total int32 `yaml:"streams"`
}
