package cli

import (
	"context"
	"fmt"
	"strings"

	"overtime-tracker/internal/services"
)

// RangeOptions holds an optional --from/--to filter (YYYY-MM-DD)
type RangeOptions struct {
	From string
	To   string
}

func (o RangeOptions) isEmpty() bool {
	return strings.TrimSpace(o.From) == "" && strings.TrimSpace(o.To) == ""
}

// HistoryCommand handles the history command
type HistoryCommand struct {
	app  *App
	opts RangeOptions
}

// NewHistoryCommand creates a new history command handler
func NewHistoryCommand(app *App, opts RangeOptions) *HistoryCommand {
	return &HistoryCommand{app: app, opts: opts}
}

// Execute prints the history for the filter, or the current month without one
func (c *HistoryCommand) Execute(ctx context.Context, args []string) error {
	var (
		view *services.HistoryView
		err  error
	)
	if c.opts.isEmpty() {
		view, err = c.app.api.ResetFilter(ctx)
	} else {
		view, err = c.app.api.FilterHistory(ctx, c.opts.From, c.opts.To)
	}
	if err != nil {
		return err
	}

	fmt.Fprint(c.app.out, c.app.formatter.History(view))
	return nil
}
