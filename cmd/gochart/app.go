package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"

	gochart "github.com/VantageDataChat/GoChart"
	"github.com/VantageDataChat/GoChart/internal/config"
	"github.com/VantageDataChat/GoChart/internal/logging"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *bolt.Logger
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "gochart",
		Short: "Build charts from tabular text",
		Long: `gochart turns comma-separated rows into pie, donut, bar, line and
pictogram charts and exports them as PNG, JPEG or interactive HTML.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}

	flags := app.root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "Path to configuration file (default $"+config.EnvConfigPath+")")
	flags.StringVar(&app.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	flags.StringVar(&app.logFormat, "log-format", "", "Log format: console or json")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newRenderCmd(),
		app.newParseCmd(),
		app.newIconsCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// WithInput sets the reader used for "-" inputs.
func (a *App) WithInput(stdin io.Reader) *App {
	a.stdin = stdin
	a.root.SetIn(stdin)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// setup loads configuration and builds the logger before any command runs.
func (a *App) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if !logging.ValidLevel(a.logLevel) {
			return fmt.Errorf("unknown log level %q", a.logLevel)
		}
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	a.cfg = cfg
	a.log = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: a.stderr,
	})
	return nil
}

// iconRepository returns the builtin icons merged with the configured pack.
func (a *App) iconRepository() (*gochart.IconSet, error) {
	builtin := gochart.BuiltinIcons()
	if a.cfg.Icons.Path == "" {
		return builtin, nil
	}
	pack, err := gochart.LoadIconSetFile(a.cfg.Icons.Path)
	if err != nil {
		return nil, err
	}
	logging.NewEvent(a.log.Debug()).
		Add(logging.Path(a.cfg.Icons.Path)).
		Add(logging.Count("icons", pack.Len())).
		Msg("icon pack loaded")
	return gochart.MergeIconSets(builtin, pack), nil
}

// newEngine builds an engine wired to the configured icons, decoder,
// fonts and logger.
func (a *App) newEngine(fonts *gochart.FontCache) (*gochart.Engine, error) {
	icons, err := a.iconRepository()
	if err != nil {
		return nil, err
	}
	decoder := gochart.NewIconDecoder(icons,
		gochart.WithDecodeWorkers(a.cfg.Decode.Workers),
		gochart.WithDecodeTimeout(a.cfg.Decode.Timeout),
	)
	return gochart.NewEngine(
		gochart.WithLogger(a.log),
		gochart.WithIcons(icons),
		gochart.WithDecoder(decoder),
		gochart.WithFontCache(fonts),
	), nil
}

// openInput opens path, treating "-" as stdin.
func (a *App) openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(a.stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func (a *App) readInput(path string) (string, error) {
	r, err := a.openInput(path)
	if err != nil {
		return "", err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "gochart version %s\n", gochart.Version)
		},
	}
}
