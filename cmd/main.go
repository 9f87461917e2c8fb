package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bryan-cox/taskboard/internal/clipboard"
	"github.com/bryan-cox/taskboard/internal/config"
	"github.com/bryan-cox/taskboard/internal/dashboard"
	"github.com/bryan-cox/taskboard/internal/errors"
	"github.com/bryan-cox/taskboard/internal/gateway"
	"github.com/bryan-cox/taskboard/internal/logging"
	"github.com/bryan-cox/taskboard/internal/model"
	"github.com/bryan-cox/taskboard/internal/report"
	"github.com/bryan-cox/taskboard/internal/tui"
	"github.com/bryan-cox/taskboard/internal/web"
)

const dateLayout = "2006-01-02"

// --- Cobra Command Definitions ---

var (
	// Used for flags.
	configFile string
	envFile    string
	sourceKind string
	filePath   string
	sqlitePath string
	verbose    bool
	quiet      bool

	serveAddr  string
	workspaces []string
	dates      []string
	startDate  string
	endDate    string
	jsonOutput bool
	copyHTML   bool

	// copier is replaced in tests.
	copier = clipboard.New()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:           "taskboard",
		Short:         "A dashboard over task records kept in a Firebase Realtime Database.",
		Long:          `TaskBoard reads a workspace -> date -> task dataset once and shows task KPIs, status distribution, average star ratings and an image carousel in the browser or the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP.",
		Long:  `Fetches the dataset once and serves the dashboard until interrupted. A failed fetch serves an empty dashboard.`,
		Args:  cobra.NoArgs,
		RunE:  runServeCommand,
	}

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard as a text report.",
		Long:  `Prints KPIs, the status distribution, average ratings and the carousel images for the selected workspaces and dates.`,
		Args:  cobra.NoArgs,
		RunE:  runReportCommand,
	}

	datesCmd = &cobra.Command{
		Use:   "dates",
		Short: "List the dates available for the selected workspaces.",
		Args:  cobra.NoArgs,
		RunE:  runDatesCommand,
	}

	browseCmd = &cobra.Command{
		Use:   "browse",
		Short: "Browse the dashboard in the terminal.",
		Args:  cobra.NoArgs,
		RunE:  runBrowseCommand,
	}

	snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "Save the dataset to the local SQLite snapshot.",
		Long:  `Fetches the dataset from the configured source and replaces the SQLite snapshot with it, so later runs can use --source sqlite offline.`,
		Args:  cobra.NoArgs,
		RunE:  runSnapshotCommand,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Path to a config file (default: taskboard.yaml in . or the user config dir).")
	pf.StringVar(&envFile, "env-file", ".env", "Path to a dotenv file; missing is fine.")
	pf.StringVar(&sourceKind, "source", "", "Dataset source: firebase, file or sqlite.")
	pf.StringVar(&filePath, "file", "", "Path to a JSON or YAML dataset, used with --source file.")
	pf.StringVar(&sqlitePath, "sqlite", "", "Path to the SQLite snapshot.")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors.")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from server.addr).")

	for _, cmd := range []*cobra.Command{reportCmd, datesCmd} {
		cmd.Flags().StringArrayVar(&workspaces, "workspace", nil, "Workspace to include; repeatable. Default: all.")
		cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD).")
		cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD).")
	}
	reportCmd.Flags().StringArrayVar(&dates, "date", nil, "Date to include; repeatable. Default: all.")
	reportCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the rendered view as JSON.")
	reportCmd.Flags().BoolVar(&copyHTML, "copy", false, "Copy the HTML report to the clipboard.")
	datesCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the dates as a JSON array.")

	rootCmd.AddCommand(serveCmd, reportCmd, datesCmd, browseCmd, snapshotCmd)
}

// --- Main Application Entry Point ---

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger := zerolog.New(logging.NewFilteringWriter(os.Stderr)).With().Timestamp().Logger()
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// --- Setup ---

// setup loads configuration and builds the logger. The returned context
// carries the logger; close releases the log file.
func setup(cmd *cobra.Command) (context.Context, *config.Config, func(), error) {
	overrides := map[string]any{}
	if sourceKind != "" {
		overrides["source.kind"] = sourceKind
	}
	if filePath != "" {
		overrides["source.file"] = filePath
		if sourceKind == "" {
			overrides["source.kind"] = config.SourceFile
		}
	}
	if sqlitePath != "" {
		overrides["source.sqlite"] = sqlitePath
	}
	if serveAddr != "" {
		overrides["server.addr"] = serveAddr
	}

	// Configuration is logged at debug level before the log file settings
	// are known, so it goes to the console only.
	bootLogger, _ := logging.New(logging.Options{Verbose: verbose, Quiet: quiet, Console: cmd.ErrOrStderr()})
	cfg, err := config.Load(bootLogger.WithContext(cmd.Context()), config.Options{
		ConfigFile: configFile,
		EnvFile:    envFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	logger, closer := logging.New(logging.Options{
		Verbose:    verbose,
		Quiet:      quiet,
		Console:    cmd.ErrOrStderr(),
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	return logger.WithContext(cmd.Context()), cfg, func() { _ = closer.Close() }, nil
}

// --- Command Execution Logic ---

func runServeCommand(cmd *cobra.Command, args []string) error {
	ctx, cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := dashboard.New(gateway.LoadFromConfig(ctx, cfg))
	return web.NewServer(engine, cfg.Server, *zerolog.Ctx(ctx)).Run(ctx)
}

func runReportCommand(cmd *cobra.Command, args []string) error {
	ctx, cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	engine := dashboard.New(gateway.LoadFromConfig(ctx, cfg))
	sel, err := selection(engine)
	if err != nil {
		return err
	}
	view := engine.Render(dashboard.Request{Selection: sel, Event: dashboard.EventFilterChanged})
	cats := report.Categorize(dashboard.Filter(engine.Dataset(), sel))

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return errors.Wrap(err, "failed to encode view")
		}
	} else {
		report.Text(out, view, cats)
	}

	if copyHTML {
		html, err := report.HTML(view, cats)
		if err != nil {
			return err
		}
		if err := copier.CopyHTML(ctx, html); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("could not copy report to clipboard")
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "\nReport copied to clipboard as HTML.")
		}
	}
	return nil
}

func runDatesCommand(cmd *cobra.Command, args []string) error {
	ctx, cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	engine := dashboard.New(gateway.LoadFromConfig(ctx, cfg))
	options, err := getDatesInRange(engine.Dates(workspaces), startDate, endDate)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if options == nil {
			options = []string{}
		}
		return json.NewEncoder(out).Encode(options)
	}
	for _, d := range options {
		fmt.Fprintln(out, d)
	}
	return nil
}

func runBrowseCommand(cmd *cobra.Command, args []string) error {
	ctx, cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	engine := dashboard.New(gateway.LoadFromConfig(ctx, cfg))
	return tui.Run(ctx, engine, cmd.InOrStdin(), cmd.OutOrStdout())
}

func runSnapshotCommand(cmd *cobra.Command, args []string) error {
	ctx, cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Source.Kind == config.SourceSQLite {
		return errors.Wrap(errors.ErrInvalidConfig, "snapshot needs a source other than sqlite")
	}
	src, err := gateway.Open(ctx, cfg)
	if err != nil {
		return err
	}
	// Unlike the dashboards, a failed fetch is an error here so a good
	// snapshot is never replaced with an empty one.
	dataset, err := src.Fetch(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch dataset from %s", src.Name())
	}

	store, err := gateway.OpenSQLiteStore(ctx, cfg.Source.SQLite)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, dataset, src.Name()); err != nil {
		return err
	}
	cmd.Printf("Saved %d records in %d workspaces from %s to %s\n", dataset.Len(), len(dataset), src.Name(), cfg.Source.SQLite)
	return nil
}

// --- Helper Functions ---

// selection builds the report selection from --workspace, --date and the
// date range flags. A range narrows the available dates; explicit dates are
// added to it.
func selection(engine *dashboard.Engine) (model.Selection, error) {
	sel := model.Selection{Workspaces: workspaces, Dates: dates}
	if startDate == "" && endDate == "" {
		return sel, nil
	}
	inRange, err := getDatesInRange(engine.Dates(workspaces), startDate, endDate)
	if err != nil {
		return model.Selection{}, err
	}
	if len(inRange) == 0 {
		return model.Selection{}, fmt.Errorf("no data found for the specified date range")
	}
	sel.Dates = append(inRange, dates...)
	return sel, nil
}

// getDatesInRange keeps the available dates that fall between start and end,
// inclusive. A missing bound defaults to the other one; with neither, every
// date is kept. Dates that do not parse as YYYY-MM-DD never match a range.
func getDatesInRange(available []string, startStr, endStr string) ([]string, error) {
	if startStr != "" && endStr == "" {
		endStr = startStr
	}
	if endStr != "" && startStr == "" {
		startStr = endStr
	}
	if startStr == "" && endStr == "" {
		return available, nil
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid start date format, use YYYY-MM-DD: %w", err)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid end date format, use YYYY-MM-DD: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date cannot be before start date")
	}

	var inRange []string
	for _, date := range available {
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			inRange = append(inRange, date)
		}
	}
	return inRange, nil
}
