package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/pm1-tools/pm1/pm1"
	"github.com/pm1-tools/pm1/util"
)

// ConfigPaths lists the directories searched for pm1_config.yaml, most
// specific last so that "." is tried after the system locations.
func ConfigPaths() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" && homeDir != "" {
		xdgConfigHome = filepath.Join(homeDir, ".config")
	}

	configPaths := []string{
		"/etc/pm1",
		"/usr/local/etc/pm1",
	}

	if runtime.GOOS == "darwin" {
		configPaths = append(configPaths, "/opt/homebrew/etc/pm1")
	}

	if xdgConfigHome != "" {
		configPaths = append(configPaths, filepath.Join(xdgConfigHome, "pm1"))
	}

	if homeDir != "" {
		configPaths = append(configPaths,
			filepath.Join(homeDir, ".pm1"),
			homeDir,
		)
	}

	return append(configPaths, ".")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyMaxBound, pm1.DefaultMaxBound)
	v.SetDefault(KeyServeMaxBound, pm1.DefaultServeMaxBound)
	v.SetDefault(KeyOutput, "basic")
	v.SetDefault(KeyListen, ":1080")
	v.SetDefault(KeyPlugins, "default")
	v.SetDefault(KeyDebugLevel, 3)
}

// Load reads pm1_config.yaml from the first matching path into v and applies
// PM1_* environment overrides. A missing config file is not an error.
func Load(v *viper.Viper, paths []string) (*Preference, error) {
	v.SetConfigName("pm1_config")
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if n := util.GetEnvInt("PM1_MAXBOUND", 0); n > 0 {
		v.Set(KeyMaxBound, n)
	}
	if n := util.GetEnvInt("PM1_SERVE_MAXBOUND", 0); n > 0 {
		v.Set(KeyServeMaxBound, n)
	}
	if addr := util.GetEnvDefault("PM1_DEPLOY_ADDR", ""); addr != "" {
		v.Set(KeyListen, addr)
	}
	if plugins := util.GetEnvDefault("PM1_PLUGINS", ""); plugins != "" {
		v.Set(KeyPlugins, plugins)
	}
	if util.GetEnvBool("PM1_DEBUG", false) {
		v.Set(KeyDebugLevel, 1)
		v.Set(KeyPlugins, v.GetString(KeyPlugins)+",debug")
	}

	var pref Preference
	if err := v.Unmarshal(&pref); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	pref.MaxBound = ClampBound(pref.MaxBound)
	pref.ServeMaxBound = ClampBound(pref.ServeMaxBound)
	if !util.StringInSlice(pref.Output, OutputModes) {
		return nil, fmt.Errorf("unknown output mode %q", pref.Output)
	}
	return &pref, nil
}

// InitConfig loads a fresh viper instance from the default search paths.
func InitConfig() (*Preference, error) {
	return Load(viper.New(), ConfigPaths())
}
