package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studiowebux/productdesk/internal/api"
	"github.com/studiowebux/productdesk/internal/assets"
	"github.com/studiowebux/productdesk/internal/cli"
	"github.com/studiowebux/productdesk/internal/config"
	"github.com/studiowebux/productdesk/internal/history"
	"github.com/studiowebux/productdesk/internal/keybinds"
	"github.com/studiowebux/productdesk/internal/logging"
	"github.com/studiowebux/productdesk/internal/mock"
	"github.com/studiowebux/productdesk/internal/tui"
	"github.com/studiowebux/productdesk/internal/types"
	"github.com/studiowebux/productdesk/internal/viewmodel"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "productdesk",
	Short: "productdesk - product catalog client",
	Long: `productdesk lists, creates, edits and deletes products through a REST API.

Run without arguments to start the interactive TUI, or use a subcommand for scripting.

Examples:
  productdesk                                  # Start interactive TUI
  productdesk list -o json --query '[].name'   # Names only
  productdesk get 65f1c0ffee0000000000a001     # One product
  productdesk create --name Cup --price 12     # Add a product
  productdesk update --quantity 3              # Pick a product, then edit it
  productdesk mock                             # Serve a fake catalog on :8080`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()
		return runTUI(a)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(r *cli.Runner) error {
			return r.List(cmd.Context())
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get [id...]",
	Short: "Show one or more products (pick interactively when no id is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(r *cli.Runner) error {
			return r.Get(cmd.Context(), toIDs(args))
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Long: `Create a product from flags.

Price and quantity that are not whole non-negative numbers are sent as 0.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := types.Product{
			ID:          types.ProductID(flagID),
			Name:        flagName,
			Description: flagDescription,
			Price:       types.ParseAmount(flagPrice),
			Quantity:    types.ParseAmount(flagQuantity),
			Status:      flagStatus,
		}
		return withRunner(func(r *cli.Runner) error {
			return r.Create(cmd.Context(), p)
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update the fields given as flags, keeping the others",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id types.ProductID
		if len(args) > 0 {
			id = types.ProductID(args[0])
		}

		flags := cmd.Flags()
		edit := func(p *types.Product) {
			if flags.Changed("name") {
				p.Name = flagName
			}
			if flags.Changed("description") {
				p.Description = flagDescription
			}
			if flags.Changed("price") {
				p.Price = types.ParseAmount(flagPrice)
			}
			if flags.Changed("quantity") {
				p.Quantity = types.ParseAmount(flagQuantity)
			}
			if flags.Changed("status") {
				p.Status = flagStatus
			}
		}

		return withRunner(func(r *cli.Runner) error {
			return r.Update(cmd.Context(), id, edit)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a product",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id types.ProductID
		if len(args) > 0 {
			id = types.ProductID(args[0])
		}
		return withRunner(func(r *cli.Runner) error {
			return r.Delete(cmd.Context(), id)
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded API calls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(func(r *cli.Runner) error {
			return r.History(flagLimit, flagStats, flagClear)
		})
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve a fake product API",
	Long: `Serve canned responses for the product endpoints until interrupted.

Without --config a small built-in catalog is served. Use --write-config to
save that catalog as a starting point for your own routes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMock(cmd)
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Validate keybinds.json, or export the defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return runKeybinds()
	},
}

// Persistent flags
var (
	flagBaseURL string
	flagEnvFile string
	flagOutput  string
	flagQuery   string
)

// Flags for create/update
var (
	flagID          string
	flagName        string
	flagDescription string
	flagPrice       string
	flagQuantity    string
	flagStatus      string
)

// Flags for history
var (
	flagLimit int
	flagStats bool
	flagClear bool
)

// Flags for mock
var (
	mockConfigFile  string
	mockWriteConfig string
	mockHost        string
	mockPort        int
)

// Flags for keybinds
var flagExport bool

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL (overrides settings and "+config.EnvBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Load environment variables from file")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")
	rootCmd.PersistentFlags().StringVar(&flagQuery, "query", "", "JMESPath expression applied to JSON output")

	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringVar(&flagName, "name", "", "Product name")
		c.Flags().StringVar(&flagDescription, "description", "", "Product description")
		c.Flags().StringVar(&flagPrice, "price", "", "Price in the smallest currency unit")
		c.Flags().StringVar(&flagQuantity, "quantity", "", "Quantity in stock")
		c.Flags().StringVar(&flagStatus, "status", "", "Free-form status")
	}
	createCmd.Flags().StringVar(&flagID, "id", "", "Product id (generated when empty)")

	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of calls to show (0 for all)")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-operation statistics")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded calls")

	mockCmd.Flags().StringVarP(&mockConfigFile, "config", "c", "", "Route file (.yaml, .yml or .json)")
	mockCmd.Flags().StringVar(&mockWriteConfig, "write-config", "", "Write the built-in routes to this file and exit")
	mockCmd.Flags().StringVar(&mockHost, "host", "", "Listen host (overrides the route file)")
	mockCmd.Flags().IntVarP(&mockPort, "port", "p", 0, "Listen port (overrides the route file)")

	keybindsCmd.Flags().BoolVar(&flagExport, "export", false, "Write the default bindings to keybinds.json")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(keybindsCmd)
}

// app holds what every command needs once configuration is resolved
type app struct {
	settings *config.Settings
	logger   *slog.Logger
	history  *history.Manager
	client   *api.Client
	closers  []func() error
}

// setup resolves settings, opens the log and the history database and builds the API client
func setup() (*app, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.Load(flagEnvFile)
	if err != nil {
		return nil, err
	}
	if flagBaseURL != "" {
		settings.BaseURL = flagBaseURL
		if err := settings.Validate(); err != nil {
			return nil, err
		}
	}

	logger, closeLog, err := logging.Setup(config.LogFile, settings.LogLevel)
	if err != nil {
		return nil, err
	}
	a := &app{settings: settings, logger: logger, closers: []func() error{closeLog}}

	opts := api.Options{
		BaseURL: settings.BaseURL,
		Timeout: settings.Timeout,
		TLS:     settings.TLS,
		Logger:  logger,
	}

	if settings.HistoryEnabled {
		mgr, err := history.NewManager(config.DatabasePath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		a.history = mgr
		a.closers = append(a.closers, mgr.Close)
		opts.Recorder = mgr
	}

	client, err := api.NewClient(opts)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.client = client

	logger.Info("startup",
		slog.String("version", version),
		slog.String("base_url", settings.BaseURL),
		slog.Bool("history", settings.HistoryEnabled),
	)

	return a, nil
}

// Close releases resources in reverse order of acquisition
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// withRunner sets up the app and runs fn with a CLI runner
func withRunner(fn func(r *cli.Runner) error) error {
	if err := cli.ValidateOutput(flagOutput); err != nil {
		return err
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	var store cli.HistoryStore
	if a.history != nil {
		store = a.history
	}

	r := cli.NewRunner(a.client, store, cli.Options{
		Output:    flagOutput,
		Query:     flagQuery,
		Highlight: cli.IsTerminal(os.Stdout),
	})
	return fn(r)
}

// runTUI starts the interactive TUI
func runTUI(a *app) error {
	keys, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}
	if result := keybinds.NewValidator().ValidateRegistry(keys); result.HasWarnings() {
		a.logger.Warn("keybinds_warnings", slog.String("details", result.String()))
	}

	vm := viewmodel.New(a.client, a.logger)
	return tui.Run(vm, keys, tui.Options{
		FrameInterval: a.settings.FrameInterval,
		FetchOnStart:  a.settings.FetchOnStart,
		Icon:          assets.Icon,
		Logger:        a.logger,
	})
}

// runMock serves the mock API until SIGINT or SIGTERM
func runMock(cmd *cobra.Command) error {
	cfg := mock.DefaultProductConfig()
	if mockWriteConfig != "" {
		if err := mock.SaveConfig(cfg, mockWriteConfig); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d routes to %s\n", len(cfg.Routes), mockWriteConfig)
		return nil
	}

	if mockConfigFile != "" {
		loaded, err := mock.LoadConfig(mockConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if mockHost != "" {
		cfg.Host = mockHost
	}
	if mockPort != 0 {
		cfg.Port = mockPort
	}

	workdir, err := os.Getwd()
	if err != nil {
		return err
	}

	srv := mock.NewServer(cfg, workdir)
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Stop()

	fmt.Fprintf(os.Stderr, "Mock product API on %s (%d routes), ctrl+c to stop\n", srv.GetAddress(), len(cfg.Routes))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seen := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-srv.NotifyChannel():
			var logs []mock.RequestLog
			logs, seen = srv.LogsSince(seen)
			for _, l := range logs {
				cli.PrintRequest(os.Stderr, l.Timestamp, l.Method, l.Path, l.Status, l.Duration)
			}
		}
	}
}

// runKeybinds exports or validates the keybinding overrides
func runKeybinds() error {
	if flagExport {
		if err := keybinds.SaveConfig(keybinds.ExportDefaults(), config.KeybindsFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote default keybinds to %s\n", config.KeybindsFile)
		return nil
	}

	if _, err := os.Stat(config.KeybindsFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "No %s, using defaults\n", config.KeybindsFile)
		return nil
	}

	cfg, err := keybinds.LoadConfig(config.KeybindsFile)
	if err != nil {
		return err
	}
	result := keybinds.NewValidator().ValidateConfig(cfg)
	fmt.Fprint(os.Stderr, result.String())
	if result.HasErrors() {
		return fmt.Errorf("%s has errors", config.KeybindsFile)
	}
	return nil
}

func toIDs(args []string) []types.ProductID {
	ids := make([]types.ProductID, len(args))
	for i, a := range args {
		ids[i] = types.ProductID(a)
	}
	return ids
}
