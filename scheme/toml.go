package scheme

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keybind"
	"github.com/dshills/keybind/key"
)

// Config is engine configuration loaded from TOML.
//
//	platform = "mac"
//	sequence_timeout_ms = 750
//	log_level = "debug"
//	scheme = "bindings.json"
type Config struct {
	// Platform overrides platform detection. Accepts the same spellings
	// as key.ParsePlatform.
	Platform string `toml:"platform"`

	// SequenceTimeoutMS is the default inter-key gap for sequences in
	// milliseconds.
	SequenceTimeoutMS int `toml:"sequence_timeout_ms"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `toml:"log_level"`

	// Scheme is the path of the scheme file to load, relative to the
	// config file unless absolute.
	Scheme string `toml:"scheme"`
}

// LoadTOMLConfig reads engine configuration from a TOML file. A missing
// file is not an error; the zero Config selects every default.
func LoadTOMLConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// EngineOptions converts the config into engine construction options.
// Zero-valued fields contribute nothing, so defaults stay with the engine.
func (c Config) EngineOptions() []keybind.Option {
	var opts []keybind.Option
	if c.Platform != "" {
		opts = append(opts, keybind.WithPlatform(key.ParsePlatform(c.Platform)))
	}
	if c.SequenceTimeoutMS > 0 {
		opts = append(opts, keybind.WithSequenceTimeout(time.Duration(c.SequenceTimeoutMS)*time.Millisecond))
	}
	if c.LogLevel != "" {
		lcfg := keybind.DefaultLoggerConfig()
		lcfg.Level = keybind.ParseLogLevel(c.LogLevel)
		opts = append(opts, keybind.WithLogger(keybind.NewLogger(lcfg)))
	}
	return opts
}

// ParseError reports a malformed configuration or scheme file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
