package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// loadVars reads template variables from an optional YAML file and applies
// name=value assignments on top. Assignments override file values.
func loadVars(path string, assignments []string) (map[string]any, error) {
	vars := make(map[string]any)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, ErrLoadVars.Wrap(err).
				With(slog.String("path", path))
		}

		err = yaml.Unmarshal(data, &vars)
		if err != nil {
			return nil, ErrLoadVars.Wrap(err).
				With(slog.String("path", path))
		}

		// An empty document decodes to a nil map.
		if vars == nil {
			vars = make(map[string]any)
		}
	}

	for _, assignment := range assignments {
		name, value, ok := strings.Cut(assignment, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return nil, ErrBadAssignment.
				With(slog.String("assignment", assignment))
		}

		vars[name] = value
	}

	return vars, nil
}
