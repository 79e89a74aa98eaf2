package cmd

import (
	"context"

	"github.com/ardnew/tagex/cli/cmd/repl"
	"github.com/ardnew/tagex/lang"
	"github.com/ardnew/tagex/log"
)

// Repl starts an interactive render session.
type Repl struct {
	Vars  string   `help:"YAML file defining template variables"      short:"V" type:"existingfile" optional:""`
	Set   []string `help:"Set a template variable (overrides --vars)" short:"e" placeholder:"name=value"`
	Cache string   `default:"${cache}" hidden:""`
}

// Run executes the repl command.
func (c *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	vars, err := loadVars(c.Vars, c.Set)
	if err != nil {
		return err
	}

	engine := lang.New(lang.WithLogger(log.Default()))

	return repl.Run(ctx, engine, vars, c.Cache, log.Default())
}
