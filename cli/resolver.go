package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that parses config files written in
// YAML.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The YAML document must be a mapping of flag names to values. Flag names
// with hyphens (e.g., "log-level") may use underscores in the config file
// (e.g., "log_level"). Values are converted as follows:
//   - Numbers are rendered as strings for Kong's flag parser
//   - Booleans and strings pass through unchanged
//   - Sequences become arrays of converted elements
//
// Example config file:
//
//	log_level: debug
//	log_format: json
//	log_pretty: true
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return config{}, nil
	}

	var raw map[string]any

	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		// Parse error - return empty config
		return config{}, nil
	}

	cfg := make(config, len(raw))
	for key, value := range raw {
		cfg[key] = flagValue(value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys may use
	// underscores. Try both forms.
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	underscoreName := strings.ReplaceAll(flag.Name, "-", "_")
	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flagValue converts a decoded YAML value to a representation Kong's flag
// parser accepts. Kong requires numbers as strings.
func flagValue(v any) any {
	switch num := v.(type) {
	case int64:
		return strconv.FormatInt(num, 10)
	case uint64:
		return strconv.FormatUint(num, 10)
	case int:
		return strconv.Itoa(num)
	case float64:
		return strconv.FormatFloat(num, 'f', -1, 64)
	case []any:
		out := make([]any, len(num))
		for i, elem := range num {
			out[i] = flagValue(elem)
		}

		return out
	default:
		return v
	}
}
