package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"overtime-tracker/internal/api"
	"overtime-tracker/internal/config"
	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/validation"
)

// DeleteConfirmMessage is the prompt shown before an entry is deleted
const DeleteConfirmMessage = "Are you sure you want to delete this entry? This action cannot be undone."

// Command is a single CLI operation. Flags are bound when the command is built.
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// ConfirmFunc asks a yes/no question
type ConfirmFunc func(ctx context.Context, title string) (bool, error)

// App holds what every command needs: the API, configuration and terminal I/O
type App struct {
	api         api.API
	config      *config.Config
	formatter   *Formatter
	out         io.Writer
	confirm     ConfirmFunc
	interactive func() bool
}

// NewApp creates a new CLI application instance with default configuration
func NewApp(apiInstance api.API) *App {
	return NewAppWithConfig(apiInstance, config.NewConfig())
}

// NewAppWithConfig creates a new CLI application instance
func NewAppWithConfig(apiInstance api.API, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		api:         apiInstance,
		config:      cfg,
		formatter:   NewFormatter(cfg),
		out:         os.Stdout,
		confirm:     huhConfirm,
		interactive: stdinIsTerminal,
	}
}

// WithOutput redirects command output
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithPrompter replaces the confirmation prompt and the terminal check
func (a *App) WithPrompter(confirm ConfirmFunc, interactive func() bool) *App {
	if confirm != nil {
		a.confirm = confirm
	}
	if interactive != nil {
		a.interactive = interactive
	}
	return a
}

// resolveRate parses an explicit --rate value, or loads the saved one
func (a *App) resolveRate(ctx context.Context, value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return a.api.CurrentRate(ctx)
	}
	return validation.ParseConversionRate(value)
}

func parseEntryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", arg, "must be a positive integer")
	}
	return id, nil
}

func huhConfirm(ctx context.Context, title string) (bool, error) {
	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithShowHelp(false).RunWithContext(ctx)
	if stderrors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
