// Package config handles meshtool configuration loading and management.
package config

// Config holds all meshtool settings.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Redux     ReduxConfig     `yaml:"redux"`
	Subdivide SubdivideConfig `yaml:"subdivide"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Output    OutputConfig    `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ReduxConfig holds the default simplification target. When MaxCost is
// positive, simplify stops at that cost; otherwise it removes Count vertices.
type ReduxConfig struct {
	Count   int     `yaml:"count"`
	MaxCost float32 `yaml:"max_cost"`
}

// SubdivideConfig holds subdivision settings.
type SubdivideConfig struct {
	Steps  int     `yaml:"steps"`
	Smooth float32 `yaml:"smooth"` // 0 keeps midpoints on the edges
}

// PhysicsConfig holds mass property settings.
type PhysicsConfig struct {
	Density float32 `yaml:"density"`
}

// OutputConfig holds where and how meshes are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Binary bool   `yaml:"binary"` // .glb instead of .gltf
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Redux: ReduxConfig{
			Count: 100,
		},
		Subdivide: SubdivideConfig{
			Steps:  1,
			Smooth: 0,
		},
		Physics: PhysicsConfig{
			Density: 1,
		},
		Output: OutputConfig{
			Dir:    ".",
			Binary: true,
		},
	}
}
