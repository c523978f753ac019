package config

type BenchCfg struct {
	// Iterations is the number of outputs drawn per stream.
	Iterations int `yaml:"iterations"`

	// Lanes is the vector width to measure. Zero means detect from the CPU.
	Lanes int `yaml:"lanes"`
}

func (cfg *BenchCfg) Enabled() bool {
	return cfg != nil
}
