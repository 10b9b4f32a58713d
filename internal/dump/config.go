package dump

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// MemoryImage is a file holding a copy of physical memory starting at Base
type MemoryImage struct {
	Base uint64 `json:"base" yaml:"base" mapstructure:"base"`
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config holds settings for reading boot information dumps
type Config struct {
	StartAddress uint64        `mapstructure:"start_address"`
	MemoryImages []MemoryImage `mapstructure:"memory_images"`
	OutputFormat string        `mapstructure:"output_format"`
	ShowReserved bool          `mapstructure:"show_reserved"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("start_address", 0)
	v.SetDefault("memory_images", []MemoryImage{})
	v.SetDefault("output_format", "table")
	v.SetDefault("show_reserved", false)
}

// LoadConfig reads configuration into v and decodes it. configFile overrides
// the search path when set. A missing config file is not an error.
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("mb2info-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.mb2info")
		v.AddConfigPath("/etc/mb2info")
	}

	SetDefaults(v)

	// Allow environment variables
	v.SetEnvPrefix("MB2INFO")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// ParseMemoryImage parses a "base:path" specification such as "0x100000:kernel.bin".
func ParseMemoryImage(arg string) (MemoryImage, error) {
	base, path, ok := strings.Cut(arg, ":")
	if !ok || path == "" {
		return MemoryImage{}, fmt.Errorf("memory image %q: want base:path", arg)
	}
	addr, err := strconv.ParseUint(base, 0, 64)
	if err != nil {
		return MemoryImage{}, fmt.Errorf("memory image %q: invalid base address: %w", arg, err)
	}
	return MemoryImage{Base: addr, Path: path}, nil
}
