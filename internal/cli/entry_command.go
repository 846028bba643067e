package cli

import (
	"context"
	"fmt"
)

// EntryOptions are the flags shared by add and edit. An empty Rate means the
// saved conversion rate.
type EntryOptions struct {
	Start string
	End   string
	Notes string
	Rate  string
}

// AddCommand handles the add command
type AddCommand struct {
	app  *App
	opts EntryOptions
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, opts EntryOptions) *AddCommand {
	return &AddCommand{app: app, opts: opts}
}

// Execute records a new entry and prints the refreshed history
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	rate, err := c.app.resolveRate(ctx, c.opts.Rate)
	if err != nil {
		return err
	}

	entry, view, err := c.app.api.CreateEntry(ctx, c.opts.Start, c.opts.End, c.opts.Notes, rate)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "Saved %s\n\n", c.app.formatter.EntryLine(*entry))
	fmt.Fprint(c.app.out, c.app.formatter.History(view))
	return nil
}

// EditCommand handles the edit command. Every field is replaced.
type EditCommand struct {
	app  *App
	opts EntryOptions
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, opts EntryOptions) *EditCommand {
	return &EditCommand{app: app, opts: opts}
}

// Execute rewrites the entry named by args[0]
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ot edit ID --start T --end T")
	}
	id, err := parseEntryID(args[0])
	if err != nil {
		return err
	}

	rate, err := c.app.resolveRate(ctx, c.opts.Rate)
	if err != nil {
		return err
	}

	view, err := c.app.api.EditEntry(ctx, id, c.opts.Start, c.opts.End, c.opts.Notes, rate)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "Updated entry #%d\n\n", id)
	fmt.Fprint(c.app.out, c.app.formatter.History(view))
	return nil
}
