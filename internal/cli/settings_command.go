package cli

import (
	"context"
	"fmt"
	"strconv"

	"overtime-tracker/internal/validation"
)

// SettingsCommand handles "settings show" and "settings set RATE"
type SettingsCommand struct {
	app *App
}

// NewSettingsCommand creates a new settings command handler
func NewSettingsCommand(app *App) *SettingsCommand {
	return &SettingsCommand{app: app}
}

// Execute dispatches on the first argument. No arguments means show.
func (c *SettingsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 || (len(args) == 1 && args[0] == "show") {
		return c.show(ctx)
	}
	if len(args) == 2 && args[0] == "set" {
		return c.set(ctx, args[1])
	}
	return fmt.Errorf("usage: ot settings show | ot settings set RATE")
}

func (c *SettingsCommand) show(ctx context.Context) error {
	settings, err := c.app.api.LoadSettings(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.app.out, "Conversion rate: %s\n", styleConverted.Render(formatRate(settings.ConversionRate)))
	return nil
}

func (c *SettingsCommand) set(ctx context.Context, value string) error {
	rate, err := validation.ParseConversionRate(value)
	if err != nil {
		return err
	}
	if err := c.app.api.SaveSettings(ctx, rate); err != nil {
		return err
	}
	fmt.Fprintf(c.app.out, "Conversion rate saved: %s\n", styleConverted.Render(formatRate(rate)))
	return nil
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
