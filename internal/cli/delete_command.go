package cli

import (
	"context"
	"fmt"

	"overtime-tracker/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
	yes bool
}

// NewDeleteCommand creates a new delete command handler. With yes set the
// confirmation prompt is skipped.
func NewDeleteCommand(app *App, yes bool) *DeleteCommand {
	return &DeleteCommand{app: app, yes: yes}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ot delete ID [--yes]")
	}
	id, err := parseEntryID(args[0])
	if err != nil {
		return err
	}

	confirmed, err := c.confirmed(ctx)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(c.app.out, styleWarn.Render("Delete cancelled."))
		return nil
	}

	view, err := c.app.api.DeleteEntry(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "Deleted entry #%d\n\n", id)
	fmt.Fprint(c.app.out, c.app.formatter.History(view))
	return nil
}

func (c *DeleteCommand) confirmed(ctx context.Context) (bool, error) {
	if c.yes {
		return true, nil
	}
	if !c.app.interactive() {
		return false, errors.NewInvalidInputError("yes", false, "confirmation required, re-run with --yes")
	}
	return c.app.confirm(ctx, DeleteConfirmMessage)
}
