package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/ardnew/tagex/pkg"
)

// Version prints version and build information.
type Version struct {
	Verbose bool `help:"Include build details" short:"V" negatable:""`
}

// Run executes the version command.
func (c *Version) Run(ctx context.Context) error {
	out := stdout(ctx)

	_, err := fmt.Fprintf(out, "%s %s\n", pkg.Name, pkg.VersionString())
	if err != nil || !c.Verbose {
		return err
	}

	_, err = fmt.Fprintf(out, "  %s (%s/%s)\n",
		runtime.Version(), runtime.GOOS, runtime.GOARCH)

	return err
}
