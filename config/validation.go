package config

type ValidationCfg struct {
	// Reference is a path to a captured stream of decimal integers.
	// Empty means the golden stream shipped with the binary.
	Reference string `yaml:"reference"`

	IntIterations    int `yaml:"int_iterations"`
	FloatIterations  int `yaml:"float_iterations"`
	DoubleIterations int `yaml:"double_iterations"`

	// Lanes is the vector width to certify: 2, 4, 8 or 16. Zero means detect from the CPU.
	Lanes int `yaml:"lanes"`
}

func (cfg *ValidationCfg) Enabled() bool {
	return cfg != nil
}

// Adjust fills zero or negative iteration counts with the defaults.
func (cfg *ValidationCfg) Adjust() {
	if cfg.IntIterations <= 0 {
		cfg.IntIterations = DefaultIntIterations
	}
	if cfg.FloatIterations <= 0 {
		cfg.FloatIterations = DefaultFloatIterations
	}
	if cfg.DoubleIterations <= 0 {
		cfg.DoubleIterations = DefaultDoubleIterations
	}
}
