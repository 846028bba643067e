package cli

import (
	"context"
	"fmt"
	"os"
)

// StdoutTarget sends an export to standard output instead of a file
const StdoutTarget = "-"

// ExportCommand handles the export command
type ExportCommand struct {
	app    *App
	opts   RangeOptions
	target string
}

// NewExportCommand creates a new export command handler. An empty target
// uses the configured export filename.
func NewExportCommand(app *App, opts RangeOptions, target string) *ExportCommand {
	if target == "" {
		target = app.config.Export.Filename
	}
	return &ExportCommand{app: app, opts: opts, target: target}
}

// Execute writes the CSV export
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	csv, err := c.app.api.ExportCSV(ctx, c.opts.From, c.opts.To)
	if err != nil {
		return err
	}

	if c.target == StdoutTarget {
		fmt.Fprintln(c.app.out, csv)
		return nil
	}

	if err := os.WriteFile(c.target, []byte(csv), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.target, err)
	}
	fmt.Fprintf(c.app.out, "History exported to %s\n", c.target)
	return nil
}
