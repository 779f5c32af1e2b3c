package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"task-list/internal/api"
	"task-list/internal/config"
	"task-list/internal/logging"
)

// Backend is what an APIFactory opens for one run of the command.
type Backend struct {
	API api.BusinessAPI

	// Logger receives command failures; nil drops them
	Logger *logging.Logger

	// Closer, if any, is closed after the command finishes
	Closer io.Closer
}

// APIFactory opens the task store described by cfg and returns the API over it
type APIFactory func(cfg *config.Config) (*Backend, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	app     *App
	config  *config.Config
	factory APIFactory
	closer  io.Closer
}

// NewRootCommand creates the root cobra command with global flags. The API is
// built by factory once flags have been applied to cfg.
func NewRootCommand(cfg *config.Config, factory APIFactory) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	root := &RootCommand{
		app:     NewAppWithConfig(nil, cfg),
		config:  cfg,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A command-line todo list",
		Long: `todo keeps a list of tasks with a title, description, optional due date,
tags and a status of OPEN, WORKING, DONE or OVERDUE.

Started without a command it opens an interactive shell in which every
command below can be typed against the same list.

EXAMPLES:
  todo add "Buy milk" -d "Two litres" --due 2024-06-01 --tags shop,home
  todo list --sort title                   # Sort by title in the configured locale
  todo list --status DONE                  # Only finished tasks
  todo search milk                         # Tasks mentioning milk anywhere
  todo edit 3f2a --status WORKING          # Edit by ID prefix
  todo delete --by-title "Buy milk"        # Delete every task with that title
  todo export --format json > tasks.json

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults
  The config file is $XDG_CONFIG_HOME/todo/config.yaml unless --config is given.

  Store Configuration:
    TODO_STORE_BACKEND                     memory or sqlite (default: memory)
    TODO_STORE_DSN                         SQLite file or :memory: (default: :memory:)
    TODO_STORE_QUERY_TIMEOUT               Query timeout (default: 10s)
    TODO_STORE_WRITE_TIMEOUT               Write timeout (default: 5s)

  Display Configuration:
    TODO_DISPLAY_TIME_FORMAT               Time format (default: 2006-01-02 15:04:05)
    TODO_DISPLAY_RELATIVE_TIME             Show relative times (default: false)
    TODO_DISPLAY_COLOR                     Colour output (default: true)
    TODO_DISPLAY_LOCALE                    Title collation locale (default: en)

  Validation Configuration:
    TODO_VALIDATION_TITLE_MAX_LENGTH       Max title length (default: 100)
    TODO_VALIDATION_DESCRIPTION_MAX_LENGTH Max description length (default: 1000)
    TODO_VALIDATION_MAX_TAGS               Max tags per task (default: 32)

  Search Configuration:
    TODO_SEARCH_DESTRUCTIVE                search removes non-matching tasks (default: false)

  Application Configuration:
    TODO_APPLICATION_TIMEOUT               Application timeout (default: 60s)
    TODO_APPLICATION_VERBOSE               Enable verbose output (default: false)
    TODO_APPLICATION_LOG_LEVEL             DEBUG, INFO, WARN or ERROR (default: INFO)
    TODO_APPLICATION_LOG_FILE              Log to this file instead of stderr
    TODO_DEBUG                             Print debug traces to stderr

  Command Configuration:
    TODO_COMMANDS_EXPORT_DEFAULT_FORMAT    Default export format (default: csv)
    TODO_COMMANDS_LIST_DEFAULT_SORT        Default sort field (default: timestamp)

GETTING HELP:
  todo [command] --help                    # Get help for any specific command
  todo completion bash                     # Generate bash completion script`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			if err := root.getConfigFromFlags(); err != nil {
				return err
			}
			return root.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := root.commandContext(shellCommandSpec)
			defer cancel()

			return NewShellCommand(root.app).Execute(ctx, args)
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// NewRootCommandWithAPI creates a root command over an existing API
func NewRootCommandWithAPI(apiInstance api.BusinessAPI, cfg *config.Config) *RootCommand {
	return NewRootCommand(cfg, func(*config.Config) (*Backend, error) {
		return &Backend{API: apiInstance}, nil
	})
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetArgs sets the arguments parsed by Execute instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetIO redirects command input and output
func (r *RootCommand) SetIO(in io.Reader, out io.Writer) {
	r.app.SetIO(in, out)
	if in != nil {
		r.cmd.SetIn(in)
	}
	if out != nil {
		r.cmd.SetOut(out)
		r.cmd.SetErr(out)
	}
}

// Config returns the configuration, including applied flag overrides
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// Close releases the store opened for the command
func (r *RootCommand) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	logging.Debugln("todo: task store closed")
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (default $XDG_CONFIG_HOME/todo/config.yaml)")

	// Store configuration
	flags.String("store", "", "Store backend, memory or sqlite (overrides TODO_STORE_BACKEND)")
	flags.String("dsn", "", "SQLite database file (overrides TODO_STORE_DSN)")
	flags.Duration("query-timeout", 0, "Store query timeout (overrides TODO_STORE_QUERY_TIMEOUT)")
	flags.Duration("write-timeout", 0, "Store write timeout (overrides TODO_STORE_WRITE_TIMEOUT)")

	// Validation configuration
	flags.Int("title-max-length", 0, "Maximum title length (overrides TODO_VALIDATION_TITLE_MAX_LENGTH)")
	flags.Int("description-max-length", 0, "Maximum description length (overrides TODO_VALIDATION_DESCRIPTION_MAX_LENGTH)")

	// Display configuration
	flags.String("time-format", "", "Time display format (overrides TODO_DISPLAY_TIME_FORMAT)")
	flags.Bool("relative-time", false, "Show relative times (overrides TODO_DISPLAY_RELATIVE_TIME)")
	flags.Bool("no-color", false, "Disable colour output (overrides TODO_DISPLAY_COLOR)")
	flags.String("locale", "", "Title collation locale, e.g. en or sv (overrides TODO_DISPLAY_LOCALE)")

	// Search configuration
	flags.Bool("destructive-search", false, "Make search remove non-matching tasks (overrides TODO_SEARCH_DESTRUCTIVE)")

	// Application configuration
	flags.Duration("timeout", 0, "Application timeout (overrides TODO_APPLICATION_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TODO_APPLICATION_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides TODO_APPLICATION_LOG_LEVEL)")
	flags.String("log-file", "", "Log file (overrides TODO_APPLICATION_LOG_FILE)")

	// Commands configuration
	flags.String("export-format", "", "Default export format (overrides TODO_COMMANDS_EXPORT_DEFAULT_FORMAT)")
}

// addSubcommands adds every registered command to the root command
func (r *RootCommand) addSubcommands() {
	for _, spec := range r.app.Registry().Specs() {
		r.cmd.AddCommand(r.newSubcommand(spec))
	}
}

// newSubcommand wraps a registered command in cobra
func (r *RootCommand) newSubcommand(spec CommandSpec) *cobra.Command {
	handler := spec.New(r.app)

	cmd := &cobra.Command{
		Use:   spec.Use,
		Short: spec.Short,
		Long:  spec.Long,
		Args:  cobra.MinimumNArgs(spec.MinArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext(spec)
			defer cancel()

			return handler.Execute(ctx, args)
		},
	}
	if binder, ok := handler.(FlagBinder); ok {
		binder.BindFlags(cmd.Flags())
	}
	return cmd
}

// commandContext returns the context a command runs under. Interactive
// commands get twice the application timeout and sessions none at all.
func (r *RootCommand) commandContext(spec CommandSpec) (context.Context, context.CancelFunc) {
	switch {
	case spec.Session:
		return context.WithCancel(context.Background())
	case spec.Interactive:
		return context.WithTimeout(context.Background(), r.getAppTimeout()*2)
	default:
		return context.WithTimeout(context.Background(), r.getAppTimeout())
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// open builds the API for the configured store
func (r *RootCommand) open() error {
	if r.app.api != nil {
		return nil
	}
	if r.factory == nil {
		return fmt.Errorf("no task store configured")
	}

	logging.Debugf("todo: opening %s store %q\n", r.config.Store.Backend, r.config.Store.DSN)
	backend, err := r.factory(r.config)
	if err != nil {
		return err
	}
	r.app.api = backend.API
	r.app.SetLogger(backend.Logger)
	r.closer = backend.Closer
	return nil
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	overrides := &config.ConfigOverrides{}

	// Store configuration
	if flags.Changed("store") {
		backend, _ := flags.GetString("store")
		overrides.StoreBackend = &backend
	}
	if flags.Changed("dsn") {
		dsn, _ := flags.GetString("dsn")
		overrides.StoreDSN = &dsn
	}
	if queryTimeout, _ := flags.GetDuration("query-timeout"); queryTimeout > 0 {
		overrides.StoreQueryTimeout = &queryTimeout
	}
	if writeTimeout, _ := flags.GetDuration("write-timeout"); writeTimeout > 0 {
		overrides.StoreWriteTimeout = &writeTimeout
	}

	// Validation configuration
	if titleMax, _ := flags.GetInt("title-max-length"); titleMax > 0 {
		overrides.TitleMaxLength = &titleMax
	}
	if descriptionMax, _ := flags.GetInt("description-max-length"); descriptionMax > 0 {
		overrides.DescriptionMaxLength = &descriptionMax
	}

	// Display configuration
	if timeFormat, _ := flags.GetString("time-format"); timeFormat != "" {
		overrides.TimeFormat = &timeFormat
	}
	if flags.Changed("relative-time") {
		relative, _ := flags.GetBool("relative-time")
		overrides.RelativeTime = &relative
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		color := false
		overrides.Color = &color
	}
	if locale, _ := flags.GetString("locale"); locale != "" {
		overrides.Locale = &locale
	}

	// Search configuration
	if flags.Changed("destructive-search") {
		destructive, _ := flags.GetBool("destructive-search")
		overrides.DestructiveSearch = &destructive
	}

	// Application configuration
	if appTimeout, _ := flags.GetDuration("timeout"); appTimeout > 0 {
		overrides.Timeout = &appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		overrides.Verbose = &verbose
	}
	if logLevel, _ := flags.GetString("log-level"); logLevel != "" {
		overrides.LogLevel = &logLevel
	}
	if logFile, _ := flags.GetString("log-file"); logFile != "" {
		overrides.LogFile = &logFile
	}

	// Commands configuration
	if exportFormat, _ := flags.GetString("export-format"); exportFormat != "" {
		overrides.ExportDefaultFormat = &exportFormat
	}

	// An explicit config file replaces the loaded configuration
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.NewLoader().WithConfigFile(path).LoadWithOverrides(overrides)
		if err != nil {
			return err
		}
		*r.config = *loaded
		return nil
	}

	overrides.Apply(r.config)
	return r.config.Validate()
}
