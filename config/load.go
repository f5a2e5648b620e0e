package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/drone/envsubst"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file on top of Default(). Environment variables in a form of
// ${VAR} are expanded before unmarshalling.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config: file not found: %s", path)
		}

		return nil, fmt.Errorf("config: cannot read %q: %w", path, err)
	}

	return Parse(data)
}

// Parse is like Load, but takes the YAML document directly.
func Parse(data []byte) (*Config, error) {
	expanded, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("config: expand environment: %w", err)
	}

	cfg := Default()
	if err = yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("config: invalid YAML: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var (
	ErrNegativeLimit = errors.New("config: limits must not be negative")
	ErrBadFormat     = errors.New("config: unknown output format")
)

// Validate reports values that can't be used.
func (c *Config) Validate() error {
	if c.Parser.MaxValueSize < 0 || c.Parser.EntriesPrealloc < 0 ||
		c.Body.MaxSize < 0 || c.Body.MaxDecodedSize < 0 || c.Output.TextPreview < 0 {
		return ErrNegativeLimit
	}

	switch c.Output.Format {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrBadFormat, c.Output.Format)
	}
}
