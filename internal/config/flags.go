package config

import "github.com/spf13/pflag"

var (
	flagConfig  string
	flagDebug   bool
	flagLogFile string
	flagOutput  string
	flagText    bool
)

// BindFlags registers the configuration flags on fs, usually the persistent
// flags of the root command.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "path to config file")
	fs.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	fs.StringVar(&flagLogFile, "log-file", "", "also log to this rotated file")
	fs.StringVarP(&flagOutput, "output-dir", "o", "", "directory receiving written meshes")
	fs.BoolVar(&flagText, "text", false, "write .gltf JSON instead of binary .glb")
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagLogFile != "" {
		cfg.Logging.LogFile = flagLogFile
	}
	if flagOutput != "" {
		cfg.Output.Dir = flagOutput
	}
	if flagText {
		cfg.Output.Binary = false
	}
}
