package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tagex/lang"
)

// Funcs lists the function names resolvable by a fresh rendering engine,
// grouped by resolution tier.
type Funcs struct {
	Format string `help:"Output format" enum:"text,yaml" default:"text"`
}

// Run executes the funcs command.
func (c *Funcs) Run(ctx context.Context) error {
	tiers := []struct {
		Name  string   `yaml:"tier"`
		Funcs []string `yaml:"functions"`
	}{
		{Name: "custom", Funcs: lang.New().FunctionNames()},
		{Name: "host", Funcs: lang.HostFunctionNames()},
	}

	out := stdout(ctx)

	if c.Format == "yaml" {
		data, err := yaml.Marshal(tiers)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = out.Write(data)

		return err
	}

	for _, tier := range tiers {
		_, err := fmt.Fprintf(out, "%s:\n", tier.Name)
		if err != nil {
			return err
		}

		for _, name := range tier.Funcs {
			_, err = io.WriteString(out, "  "+name+"\n")
			if err != nil {
				return err
			}
		}
	}

	return nil
}
