package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/planboard/pkg/timeutil"
)

const (
	DefaultPath           = "~/.planboard"
	DefaultLegacyExpiry   = 30 * 24 * time.Hour
	DefaultLegacyMaxBytes = 4096
	DefaultDebounce       = 200 * time.Millisecond
	DefaultFillColor      = "#edff84"
)

// Config is the resolved board configuration.
type Config interface {
	BasePath() string
	LegacyPath() string
	LegacyExpiry() time.Duration
	LegacyMaxBytes() int
	Debounce() time.Duration
	FillColor() string
}

// LoadConfig reads .planboard.yaml from $PLANBOARD_CONFIG_PATH or the working
// directory, with PLANBOARD_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.GetViper()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("legacy.path", "")
	v.SetDefault("legacy.expiry", timeutil.FormatSpan(DefaultLegacyExpiry))
	v.SetDefault("legacy.max_bytes", DefaultLegacyMaxBytes)
	v.SetDefault("debounce", timeutil.FormatSpan(DefaultDebounce))
	v.SetDefault("fill_color", DefaultFillColor)
	v.SetConfigName(".planboard") // .yaml is implicit
	v.SetEnvPrefix("PLANBOARD")
	v.AutomaticEnv()

	if override := os.Getenv("PLANBOARD_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}
	return configFrom(v)
}

func configFrom(v *viper.Viper) (Config, error) {
	base, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	legacy := v.GetString("legacy.path")
	if legacy == "" {
		legacy = filepath.Join(base, "legacy")
	} else if legacy, err = homedir.Expand(legacy); err != nil {
		return nil, fmt.Errorf("store: expand legacy.path: %w", err)
	}
	expiry, err := timeutil.ParseSpan(v.GetString("legacy.expiry"), DefaultLegacyExpiry)
	if err != nil {
		return nil, fmt.Errorf("store: legacy.expiry: %w", err)
	}
	debounce, err := timeutil.ParseSpan(v.GetString("debounce"), DefaultDebounce)
	if err != nil {
		return nil, fmt.Errorf("store: debounce: %w", err)
	}
	maxBytes := v.GetInt("legacy.max_bytes")
	if maxBytes <= 0 {
		maxBytes = DefaultLegacyMaxBytes
	}
	fill := v.GetString("fill_color")
	if fill == "" {
		fill = DefaultFillColor
	}
	return &fileConfig{
		Path:        base,
		Legacy:      legacy,
		Expiry:      expiry,
		MaxBytes:    maxBytes,
		DebounceFor: debounce,
		Fill:        fill,
	}, nil
}

// NewConfig builds a Config rooted at path with every other value defaulted.
func NewConfig(path string) Config {
	return &fileConfig{
		Path:        path,
		Legacy:      filepath.Join(path, "legacy"),
		Expiry:      DefaultLegacyExpiry,
		MaxBytes:    DefaultLegacyMaxBytes,
		DebounceFor: DefaultDebounce,
		Fill:        DefaultFillColor,
	}
}

type fileConfig struct {
	Path        string        `json:"path"`
	Legacy      string        `json:"legacyPath"`
	Expiry      time.Duration `json:"legacyExpiry"`
	MaxBytes    int           `json:"legacyMaxBytes"`
	DebounceFor time.Duration `json:"debounce"`
	Fill        string        `json:"fillColor"`
}

func (f *fileConfig) BasePath() string            { return f.Path }
func (f *fileConfig) LegacyPath() string          { return f.Legacy }
func (f *fileConfig) LegacyExpiry() time.Duration { return f.Expiry }
func (f *fileConfig) LegacyMaxBytes() int         { return f.MaxBytes }
func (f *fileConfig) Debounce() time.Duration     { return f.DebounceFor }
func (f *fileConfig) FillColor() string           { return f.Fill }
