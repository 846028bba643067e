package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"overtime-tracker/internal/api"
	"overtime-tracker/internal/config"
)

// APIFactory opens the API once flags have been applied to cfg. The returned
// func releases the underlying store.
type APIFactory func(cfg *config.Config) (api.API, func(), error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	api     api.API
	config  *config.Config
	factory APIFactory
	cleanup func()
	errors  *ErrorHandler

	confirm     ConfirmFunc
	interactive func() bool
}

// NewRootCommand creates the root cobra command over an already opened API
func NewRootCommand(apiInstance api.API, cfg *config.Config) *RootCommand {
	root := newRoot(cfg)
	root.api = apiInstance
	return root
}

// NewRootCommandWithFactory creates the root cobra command. The API is
// opened after flag overrides so --db-* flags pick the store.
func NewRootCommandWithFactory(cfg *config.Config, factory APIFactory) *RootCommand {
	root := newRoot(cfg)
	root.factory = factory
	return root
}

func newRoot(cfg *config.Config) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	root := &RootCommand{
		config: cfg,
		errors: NewErrorHandler(),
	}

	root.cmd = &cobra.Command{
		Use:   "ot",
		Short: "A command-line overtime logger",
		Long: `Overtime Tracker (ot) logs overtime intervals, converts raw hours into
business hours with a configurable rate, and reports them by month.

EXAMPLES:
  ot add --start 2024-01-05T18:00 --end 2024-01-05T20:00 --notes "release"
  ot edit 3 --start 2024-01-05T18:00 --end 2024-01-05T21:00
  ot delete 3
  ot history                                  # Current month
  ot history --from 2024-01-01 --to 2024-03-31
  ot export --from 2024-01-01 --to 2024-01-31 --out january.csv
  ot settings set 1.5

CONFIGURATION:
  Priority: command-line flags > environment (.env fills gaps) > config file > defaults
  Config file: ~/.ot/config.ini (override with OT_CONFIG_FILE)

  OT_DB_DRIVER                 Storage driver, sqlite or bolt (default: sqlite)
  OT_DB_DIR                    Database directory (default: ~/.ot)
  OT_DB_FILENAME               Database filename (default: ot.db)
  OT_DB_QUERY_TIMEOUT          Read timeout (default: 10s)
  OT_DB_WRITE_TIMEOUT          Write timeout (default: 5s)
  OT_DEFAULT_RATE              Rate used before one is saved (default: 1.5)
  OT_DISPLAY_DATE_FORMAT       Entry date layout (default: Mon, Jan 2)
  OT_DISPLAY_CHART_WIDTH       Bar chart width (default: 40)
  OT_APP_TIMEOUT               Command timeout (default: 60s)
  OT_APP_VERBOSE               Debug logging (default: false)
  OT_EXPORT_FILENAME           Export file (default: overtime_history.csv)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.getConfigFromFlags(); err != nil {
				return err
			}
			return root.openAPI()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx as the parent of every command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Close releases a store opened by the factory
func (r *RootCommand) Close() {
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
}

// SetPrompter replaces the delete confirmation and the terminal check
func (r *RootCommand) SetPrompter(confirm ConfirmFunc, interactive func() bool) {
	r.confirm = confirm
	r.interactive = interactive
}

// Config returns the configuration after flag overrides
func (r *RootCommand) Config() *config.Config {
	return r.config
}

func (r *RootCommand) openAPI() error {
	if r.api != nil || r.factory == nil {
		return nil
	}
	apiInstance, cleanup, err := r.factory(r.config)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	r.api = apiInstance
	r.cleanup = cleanup
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-driver", "", "Storage driver, sqlite or bolt (overrides OT_DB_DRIVER)")
	flags.String("db-dir", "", "Database directory (overrides OT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides OT_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Read timeout (overrides OT_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Write timeout (overrides OT_DB_WRITE_TIMEOUT)")

	// Conversion configuration
	flags.Float64("default-rate", 0, "Rate used before one is saved (overrides OT_DEFAULT_RATE)")

	// Display configuration
	flags.String("date-format", "", "Entry date layout (overrides OT_DISPLAY_DATE_FORMAT)")
	flags.Int("chart-width", 0, "Bar chart width (overrides OT_DISPLAY_CHART_WIDTH)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides OT_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides OT_APP_VERBOSE)")

	// Export configuration
	flags.String("export-filename", "", "Default export file (overrides OT_EXPORT_FILENAME)")
}

func addEntryFlags(flags *pflag.FlagSet, opts *EntryOptions) {
	flags.StringVar(&opts.Start, "start", "", "Start time, e.g. 2024-01-05T18:00")
	flags.StringVar(&opts.End, "end", "", "End time, e.g. 2024-01-05T20:00")
	flags.StringVar(&opts.Notes, "notes", "", "Free-text notes")
	flags.StringVar(&opts.Rate, "rate", "", "Conversion rate (default: saved setting)")
}

func addRangeFlags(flags *pflag.FlagSet, opts *RangeOptions) {
	flags.StringVar(&opts.From, "from", "", "First day, YYYY-MM-DD")
	flags.StringVar(&opts.To, "to", "", "Last day, YYYY-MM-DD")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Add command
	var addOpts EntryOptions
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Log an overtime interval",
		Long:  "Log an overtime interval. Hours are converted with --rate, or the saved conversion rate.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "add entry", r.getAppTimeout(), NewAddCommand(r.newApp(cmd), addOpts), args)
		},
	}
	addEntryFlags(addCmd.Flags(), &addOpts)
	_ = addCmd.MarkFlagRequired("start")
	_ = addCmd.MarkFlagRequired("end")

	// Edit command
	var editOpts EntryOptions
	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace an entry",
		Long: `Replace every field of an entry. Notes not given are cleared and
derived hours are recomputed with --rate, or the saved conversion rate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "edit entry", r.getAppTimeout(), NewEditCommand(r.newApp(cmd), editOpts), args)
		},
	}
	addEntryFlags(editCmd.Flags(), &editOpts)
	_ = editCmd.MarkFlagRequired("start")
	_ = editCmd.MarkFlagRequired("end")

	// Delete command
	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an entry",
		Long: `Delete an entry. This cannot be undone.

You are asked to confirm when running in a terminal; pass --yes otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Leave room for the confirmation prompt
			return r.run(cmd, "delete entry", r.getAppTimeout()*2, NewDeleteCommand(r.newApp(cmd), yes), args)
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	// History command
	var historyOpts RangeOptions
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show overtime history",
		Long: `Show entries grouped by month with totals and charts.

Without --from and --to the current month up to today is shown.
Both dates must be given together.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "show history", r.getAppTimeout(), NewHistoryCommand(r.newApp(cmd), historyOpts), args)
		},
	}
	addRangeFlags(historyCmd.Flags(), &historyOpts)

	// Export command
	var exportOpts RangeOptions
	var target string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export history to CSV",
		Long: `Export entries to CSV. Without --from and --to the current month is exported.

Use --out - to write to standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "export history", r.getAppTimeout(), NewExportCommand(r.newApp(cmd), exportOpts, target), args)
		},
	}
	addRangeFlags(exportCmd.Flags(), &exportOpts)
	exportCmd.Flags().StringVarP(&target, "out", "o", "", "Output file, or - for stdout (default: export filename)")

	// Settings commands
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the conversion rate",
	}
	settingsShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved conversion rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "load settings", r.getAppTimeout(), NewSettingsCommand(r.newApp(cmd)), []string{"show"})
		},
	}
	settingsSetCmd := &cobra.Command{
		Use:   "set RATE",
		Short: "Save a new conversion rate",
		Long:  "Save a new conversion rate. It applies to entries written afterwards; existing entries keep their hours.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "save settings", r.getAppTimeout(), NewSettingsCommand(r.newApp(cmd)), append([]string{"set"}, args...))
		},
	}
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)

	// Add all subcommands to root
	r.cmd.AddCommand(
		addCmd,
		editCmd,
		deleteCmd,
		historyCmd,
		exportCmd,
		settingsCmd,
	)
}

func (r *RootCommand) newApp(cmd *cobra.Command) *App {
	return NewAppWithConfig(r.api, r.config).
		WithOutput(cmd.OutOrStdout()).
		WithPrompter(r.confirm, r.interactive)
}

func (r *RootCommand) run(cmd *cobra.Command, operation string, timeout time.Duration, command Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	return r.errors.Handle(operation, command.Execute(ctx, args))
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags applies flags the user set on top of the loaded configuration
func (r *RootCommand) getConfigFromFlags() error {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	// Database configuration
	if flags.Changed("db-driver") {
		v, _ := flags.GetString("db-driver")
		overrides.DBDriver = &v
	}
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}

	if flags.Changed("default-rate") {
		v, _ := flags.GetFloat64("default-rate")
		overrides.DefaultRate = &v
	}

	// Display configuration
	if flags.Changed("date-format") {
		v, _ := flags.GetString("date-format")
		overrides.DateFormat = &v
	}
	if flags.Changed("chart-width") {
		v, _ := flags.GetInt("chart-width")
		overrides.ChartWidth = &v
	}

	// Application configuration
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	if flags.Changed("export-filename") {
		v, _ := flags.GetString("export-filename")
		overrides.ExportFilename = &v
	}

	r.config.ApplyOverrides(overrides)
	return r.config.Validate()
}
