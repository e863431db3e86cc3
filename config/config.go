package config

import "github.com/pm1-tools/pm1/pm1"

var (
	Version   = "v0.1.0"
	BuildDate = ""
	CommitID  = ""
)

const (
	KeyMaxBound      = "max-bound"
	KeyServeMaxBound = "serve-max-bound"
	KeyOutput        = "output"
	KeyListen        = "listen"
	KeyPlugins       = "plugins"
	KeyDebugLevel    = "debug-level"
)

var OutputModes = []string{"basic", "table", "raw", "json"}

// Preference is the merged view of defaults, config file and environment.
type Preference struct {
	MaxBound      int    `mapstructure:"max-bound" yaml:"max-bound"`
	ServeMaxBound int    `mapstructure:"serve-max-bound" yaml:"serve-max-bound"`
	Output        string `mapstructure:"output" yaml:"output"`
	Listen        string `mapstructure:"listen" yaml:"listen"`
	Plugins       string `mapstructure:"plugins" yaml:"plugins"`
	DebugLevel    int    `mapstructure:"debug-level" yaml:"debug-level"`
}

// ClampBound limits a configured bound to pm1.MaxBoundCeiling.
func ClampBound(n int) int {
	return min(n, pm1.MaxBoundCeiling)
}
