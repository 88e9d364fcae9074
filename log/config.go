/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package log

import (
	"fmt"
	"strings"

	"code.cloudfoundry.org/bytefmt"

	"github.com/acronis/go-localcache/config"
)

// Level is a log level.
type Level string

// Log levels.
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format is a log entry encoding.
type Format string

// Log formats.
const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Output is where log entries are written.
type Output string

// Log outputs.
const (
	OutputStdout Output = "stdout"
	OutputStderr Output = "stderr"
	OutputFile   Output = "file"
)

// Defaults and lower bounds for file rotation.
const (
	DefaultRotationMaxSize    = 250 * 1024 * 1024
	MinRotationMaxSize        = 1024 * 1024
	DefaultRotationMaxBackups = 10
	DefaultErrorVerboseSuffix = "_verbose"
)

const cfgDefaultKeyPrefix = "log"

// Config is the logging configuration.
//
// YAML example:
//
//	log:
//	  level: info
//	  format: json
//	  output: file
//	  file:
//	    path: /var/log/app-{{pid}}.log
//	    rotation:
//	      maxSize: 100M
//	      maxBackups: 5
type Config struct {
	Level     Level       `mapstructure:"level" yaml:"level" json:"level"`
	Format    Format      `mapstructure:"format" yaml:"format" json:"format"`
	Output    Output      `mapstructure:"output" yaml:"output" json:"output"`
	NoColor   bool        `mapstructure:"nocolor" yaml:"nocolor" json:"nocolor"`
	AddCaller bool        `mapstructure:"addCaller" yaml:"addCaller" json:"addCaller"`
	File      FileConfig  `mapstructure:"file" yaml:"file" json:"file"`
	Error     ErrorConfig `mapstructure:"error" yaml:"error" json:"error"`

	keyPrefix string
}

// FileConfig configures the "file" output.
// Path may contain {{pid}} and {{starttime}} placeholders.
type FileConfig struct {
	Path     string         `mapstructure:"path" yaml:"path" json:"path"`
	Rotation RotationConfig `mapstructure:"rotation" yaml:"rotation" json:"rotation"`
}

// RotationConfig configures rotation of the log file.
type RotationConfig struct {
	MaxSize          config.BytesCount `mapstructure:"maxSize" yaml:"maxSize" json:"maxSize"`
	MaxBackups       int               `mapstructure:"maxBackups" yaml:"maxBackups" json:"maxBackups"`
	MaxAgeDays       int               `mapstructure:"maxAgeDays" yaml:"maxAgeDays" json:"maxAgeDays"`
	Compress         bool              `mapstructure:"compress" yaml:"compress" json:"compress"`
	LocalTimeInNames bool              `mapstructure:"localTimeInNames" yaml:"localTimeInNames" json:"localTimeInNames"`
}

// ErrorConfig configures encoding of error fields.
// Unless NoVerbose is set, errors implementing fmt.Formatter get an extra "<key><VerboseSuffix>" field with "%+v" output.
type ErrorConfig struct {
	NoVerbose     bool   `mapstructure:"noVerbose" yaml:"noVerbose" json:"noVerbose"`
	VerboseSuffix string `mapstructure:"verboseSuffix" yaml:"verboseSuffix" json:"verboseSuffix"`
}

var _ config.Config = (*Config)(nil)
var _ config.KeyPrefixProvider = (*Config)(nil)

// ConfigOption customizes Config.
type ConfigOption func(*Config)

// WithKeyPrefix sets the key prefix under which the parameters are read ("log" by default).
func WithKeyPrefix(keyPrefix string) ConfigOption {
	return func(c *Config) {
		c.keyPrefix = keyPrefix
	}
}

// NewConfig creates an empty Config to be filled by config.Loader.
func NewConfig(options ...ConfigOption) *Config {
	cfg := &Config{}
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}

// NewDefaultConfig creates a Config with default values, ready to be used without loading.
func NewDefaultConfig(options ...ConfigOption) *Config {
	cfg := NewConfig(options...)
	cfg.Level = LevelInfo
	cfg.Format = FormatJSON
	cfg.Output = OutputStdout
	cfg.File.Rotation.MaxSize = DefaultRotationMaxSize
	cfg.File.Rotation.MaxBackups = DefaultRotationMaxBackups
	cfg.Error.VerboseSuffix = DefaultErrorVerboseSuffix
	return cfg
}

// KeyPrefix returns the key prefix under which the parameters are read.
func (c *Config) KeyPrefix() string {
	if c.keyPrefix == "" {
		return cfgDefaultKeyPrefix
	}
	return c.keyPrefix
}

// SetProviderDefaults sets the default values in the data provider.
func (c *Config) SetProviderDefaults(dp config.DataProvider) {
	dp.SetDefault("level", string(LevelInfo))
	dp.SetDefault("format", string(FormatJSON))
	dp.SetDefault("output", string(OutputStdout))
	dp.SetDefault("file.rotation.maxSize", bytefmt.ByteSize(DefaultRotationMaxSize))
	dp.SetDefault("file.rotation.maxBackups", DefaultRotationMaxBackups)
	dp.SetDefault("error.verboseSuffix", DefaultErrorVerboseSuffix)
}

// Set reads and validates the parameters from the data provider.
func (c *Config) Set(dp config.DataProvider) error {
	level, err := getLowerFromSet(dp, "level", LevelDebug, LevelInfo, LevelWarn, LevelError)
	if err != nil {
		return err
	}
	format, err := getLowerFromSet(dp, "format", FormatJSON, FormatText)
	if err != nil {
		return err
	}
	output, err := getLowerFromSet(dp, "output", OutputStdout, OutputStderr, OutputFile)
	if err != nil {
		return err
	}
	c.Level, c.Format, c.Output = level, format, output

	for key, dst := range map[string]*bool{
		"nocolor":         &c.NoColor,
		"addCaller":       &c.AddCaller,
		"error.noVerbose": &c.Error.NoVerbose,
	} {
		if *dst, err = dp.GetBool(key); err != nil {
			return err
		}
	}
	if c.Error.VerboseSuffix, err = dp.GetString("error.verboseSuffix"); err != nil {
		return err
	}

	return c.File.set(dp, c.Output == OutputFile)
}

func (fc *FileConfig) set(dp config.DataProvider, required bool) error {
	var err error
	if fc.Path, err = dp.GetString("file.path"); err != nil {
		return err
	}
	if required && fc.Path == "" {
		return dp.WrapKeyErr("file.path", fmt.Errorf("cannot be empty when %q output is used", OutputFile))
	}

	r := &fc.Rotation
	if r.MaxSize, err = dp.GetBytesCount("file.rotation.maxSize"); err != nil {
		return err
	}
	if r.MaxSize < MinRotationMaxSize {
		return dp.WrapKeyErr("file.rotation.maxSize", fmt.Errorf("should be >= %s", bytefmt.ByteSize(MinRotationMaxSize)))
	}
	if r.MaxBackups, err = dp.GetInt("file.rotation.maxBackups"); err != nil {
		return err
	}
	if r.MaxBackups < 1 {
		return dp.WrapKeyErr("file.rotation.maxBackups", fmt.Errorf("should be >= 1"))
	}
	if r.MaxAgeDays, err = dp.GetInt("file.rotation.maxAgeDays"); err != nil {
		return err
	}
	if r.MaxAgeDays < 0 {
		return dp.WrapKeyErr("file.rotation.maxAgeDays", fmt.Errorf("should be >= 0"))
	}
	if r.Compress, err = dp.GetBool("file.rotation.compress"); err != nil {
		return err
	}
	r.LocalTimeInNames, err = dp.GetBool("file.rotation.localTimeInNames")
	return err
}

// getLowerFromSet reads a case-insensitive enum value and returns it in lower case.
func getLowerFromSet[T ~string](dp config.DataProvider, key string, allowed ...T) (T, error) {
	set := make([]string, len(allowed))
	for i := range allowed {
		set[i] = string(allowed[i])
	}
	s, err := dp.GetStringFromSet(key, set, true)
	if err != nil {
		return "", err
	}
	return T(strings.ToLower(s)), nil
}
