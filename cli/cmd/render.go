package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/tagex/lang"
	"github.com/ardnew/tagex/log"
)

// Render renders template text against a set of variables.
//
// Template text is taken from the --source files (or stdin) when given,
// otherwise from the positional arguments, otherwise from stdin.
type Render struct {
	Vars   string   `help:"YAML file defining template variables"           short:"V" type:"existingfile" optional:""`
	Set    []string `help:"Set a template variable (overrides --vars)"      short:"e" placeholder:"name=value"`
	Strict bool     `help:"Fail when a tag cannot be resolved"                                                        negatable:""`
	Output string   `help:"Write rendered output to file instead of stdout" short:"o" type:"path"         optional:""`

	Text []string `arg:"" help:"Inline template text" name:"text" optional:""`
}

// Run executes the render command.
func (c *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	vars, err := loadVars(c.Vars, c.Set)
	if err != nil {
		return err
	}

	text, err := c.template(ctx)
	if err != nil {
		return err
	}

	engine := lang.New(
		lang.WithLogger(log.Default()),
		lang.WithStrict(c.Strict),
	)

	rendered, err := engine.Render(text, vars)
	if err != nil {
		return ErrRenderFailed.Wrap(err).
			With(slog.Int("template_len", len(text)))
	}

	return c.write(ctx, rendered)
}

// template resolves the template text to render, preferring --source files
// over positional arguments over stdin.
func (c *Render) template(ctx context.Context) (string, error) {
	if sources := sourceFilesFrom(ctx); sources != nil {
		var b strings.Builder

		_, err := sources.WriteTo(&b)
		if err != nil {
			return "", ErrReadTemplate.Wrap(err)
		}

		return b.String(), nil
	}

	if len(c.Text) > 0 {
		return strings.Join(c.Text, " "), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", ErrReadTemplate.Wrap(err)
	}

	return string(data), nil
}

// write delivers the rendered text to --output or stdout. A trailing newline
// is added only for terminal output.
func (c *Render) write(ctx context.Context, rendered string) error {
	if c.Output != "" {
		err := os.WriteFile(c.Output, []byte(rendered), 0o644)
		if err != nil {
			return ErrWriteOutput.Wrap(err).
				With(slog.String("path", c.Output))
		}

		return nil
	}

	out := stdout(ctx)

	_, err := io.WriteString(out, rendered)
	if err == nil && !strings.HasSuffix(rendered, "\n") {
		_, err = io.WriteString(out, "\n")
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
