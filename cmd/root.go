package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/csvx/internal/config"
	"github.com/oakwood-commons/csvx/internal/formatter"
	"github.com/oakwood-commons/csvx/internal/limiter"
	"github.com/oakwood-commons/csvx/internal/query"
	"github.com/oakwood-commons/csvx/internal/table"
	"github.com/oakwood-commons/csvx/internal/ui"
	"github.com/oakwood-commons/csvx/pkg/loader"
	"github.com/oakwood-commons/csvx/pkg/logger"
	"github.com/oakwood-commons/csvx/pkg/settings"
)

var (
	interactive    bool
	queryText      string
	columns        []string
	explain        bool
	renderSnapshot bool
	startKeys      []string
	snapshotWidth  int
	snapshotHeight int
	limitRecords   int
	offsetRecords  int
	tailRecords    int
	delimiter      string
	comment        string
	lazyQuotes     bool
	configFile     string
	logFile        string
	debug          bool
	noColor        bool
	configOutput   string
	output         string
)

var (
	rootCtx = context.Background()
	// activeConfig is the merged configuration of the running command.
	activeConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "csvx [file]",
	Short: "View a CSV file and pick the columns to show with a small query language",
	Long: `csvx renders a CSV file as an aligned table. The query

  column=<name>[,<name>...]

selects which columns are shown. With -i the query is edited live and the
table re-renders on every keystroke; otherwise the table is printed once.`,
	Example: "\n  csvx people.csv\n  csvx people.csv -q 'column=name,age'\n  cat people.csv | csvx -i\n  csvx people.csv --snapshot --press 'column=name<Down>'\n",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadMergedConfig(resolveConfigPath(configFile))
		if err != nil {
			return err
		}
		activeConfig = cfg

		run := settings.NewCliParams()
		run.Interactive = interactive && !renderSnapshot
		run.NoColor = noColor
		if !cmd.Flags().Changed("no-color") {
			run.NoColor = config.Bool(cfg.UI.NoColor)
		}
		run.LogFile = cfg.Log.File
		if logFile != "" {
			run.LogFile = logFile
		}
		if len(args) > 0 {
			run.InputPath = args[0]
		}
		run.MinLogLevel, err = logLevel(cfg.Log.Level, debug)
		if err != nil {
			return err
		}

		lgr, err := setupLogger(run)
		if err != nil {
			return err
		}
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(settings.IntoContext(context.Background(), run), lgr)
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRoot(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print csvx version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the merged configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := encodeConfig(activeConfig, configOutput)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start the interactive viewer")
	rootCmd.Flags().StringVarP(&queryText, "query", "q", "", "query to apply, e.g. 'column=name,age'")
	rootCmd.Flags().StringVarP(&output, "output", "o", "table", "print format: table|csv|markdown|html|json|yaml|toml")
	rootCmd.Flags().StringSliceVar(&columns, "columns", nil, "columns shown before any query (default from config, else all)")
	rootCmd.Flags().BoolVar(&explain, "explain", false, "print the parsed --query as a tree and exit")
	rootCmd.Flags().BoolVar(&renderSnapshot, "snapshot", false, "render a single viewer frame and exit; honors --width/--height/--press")
	rootCmd.Flags().StringArrayVar(&startKeys, "press", nil, "simulate keys on startup. Use <Key> for special keys (e.g. <Down>, <BS>, <Esc>); literal text types normally")
	rootCmd.Flags().IntVar(&snapshotWidth, "width", 0, "output width in columns (0 = terminal width, unlimited when printing)")
	rootCmd.Flags().IntVar(&snapshotHeight, "height", 0, "viewer height in rows (0 = terminal height)")
	rootCmd.Flags().IntVar(&limitRecords, "limit", 0, "show at most N data rows")
	rootCmd.Flags().IntVar(&offsetRecords, "offset", 0, "skip the first N data rows")
	rootCmd.Flags().IntVar(&tailRecords, "tail", 0, "show the last N data rows (mutually exclusive with --limit; ignores --offset)")
	rootCmd.Flags().StringVar(&delimiter, "delimiter", "", "field delimiter: a single character, or comma|tab|semicolon|pipe (default from config)")
	rootCmd.Flags().StringVar(&comment, "comment", "", "skip lines starting with this character")
	rootCmd.Flags().BoolVar(&lazyQuotes, "lazy-quotes", false, "tolerate bare quotes in fields")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")

	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")

	configCmd.Flags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|toml")
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command) error {
	lgr := logger.FromContext(rootCtx)
	run, _ := settings.FromContext(rootCtx)
	if run == nil {
		run = settings.NewCliParams()
	}
	out := cmd.OutOrStdout()

	limits := limiter.Config{Limit: limitRecords, Offset: offsetRecords, Tail: tailRecords}
	if err := limits.Validate(); err != nil {
		return fmt.Errorf("record limiting: %w", err)
	}

	format, err := formatter.ParseFormat(output)
	if err != nil {
		return err
	}

	if explain {
		exprs, err := query.Parse(queryText)
		if err != nil {
			return fmt.Errorf("invalid query: %w", err)
		}
		_, err = io.WriteString(out, query.Explain(exprs))
		return err
	}

	if run.InputPath == "-" && !stdinIsPiped() {
		return cmd.Help()
	}

	opts, err := loaderOptions(cmd, activeConfig)
	if err != nil {
		return err
	}
	data, err := loader.LoadFile(run.InputPath, opts)
	if err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return fmt.Errorf("%s: %w", run.InputPath, err)
	}
	lgr.V(1).Info("loaded csv", logger.FileKey, run.InputPath, "columns", len(data.Headers), "rows", len(data.Rows))
	if limits.IsActive() {
		lgr.V(1).Info("limiting rows", "window", limits.String())
	}
	tbl := table.Build(data.Headers, limiter.Apply(limits, data.Rows))

	uiOpts := viewerOptions(cmd, activeConfig, run, *lgr)

	switch {
	case renderSnapshot:
		w, h := resolveSnapshotSize(snapshotWidth, snapshotHeight)
		fmt.Fprintln(out, ui.RenderSnapshot(tbl, ui.SnapshotConfig{
			Width:     w,
			Height:    h,
			Query:     queryText,
			StartKeys: startKeys,
			Options:   uiOpts,
		}))
		return nil

	case run.Interactive:
		progOpts, stop := viewerProgramOptions(*lgr)
		defer stop()
		final, err := runViewer(tbl, ui.RunConfig{
			Width:     snapshotWidth,
			Height:    snapshotHeight,
			Query:     queryText,
			StartKeys: startKeys,
			Options:   uiOpts,
		}, progOpts...)
		if err != nil {
			return fmt.Errorf("run viewer: %w", err)
		}
		lgr.V(1).Info("viewer closed", logger.QueryKey, final.Query(), "selection", tbl.Selection())
		return nil
	}

	return printTable(out, tbl, format, uiOpts.DefaultColumns, lgr)
}

// printTable applies the default columns and then --query, and writes the
// visible columns in format. Unlike the viewer, a bad query is an error here.
func printTable(w io.Writer, tbl *table.Table, format formatter.Format, defaults []string, lgr *logr.Logger) error {
	if len(defaults) > 0 {
		tbl.SelectHeaders(defaults)
	}
	if queryText != "" {
		exprs, err := query.Parse(queryText)
		if err != nil {
			return fmt.Errorf("invalid query: %w", err)
		}
		tbl.Apply(exprs)
		lgr.V(1).Info("query applied", logger.QueryKey, queryText, "selection", tbl.Selection())
	}
	return formatter.Write(w, tbl, format, snapshotWidth)
}

// loaderOptions resolves CSV parsing options: flags win over config.
func loaderOptions(cmd *cobra.Command, cfg config.Config) (loader.Options, error) {
	opts := loader.DefaultOptions()

	delim := cfg.Data.Delimiter
	if cmd.Flags().Changed("delimiter") {
		delim = delimiter
	}
	r, err := loader.ParseDelimiter(delim)
	if err != nil {
		return opts, err
	}
	opts.Delimiter = r

	com := cfg.Data.Comment
	if cmd.Flags().Changed("comment") {
		com = comment
	}
	if opts.Comment, err = loader.ParseComment(com); err != nil {
		return opts, err
	}
	if opts.Comment != 0 && opts.Comment == opts.Delimiter {
		return opts, errors.New("comment character must differ from the delimiter")
	}

	opts.LazyQuotes = config.Bool(cfg.Data.LazyQuotes)
	if cmd.Flags().Changed("lazy-quotes") {
		opts.LazyQuotes = lazyQuotes
	}
	opts.TrimLeadingSpace = config.Bool(cfg.Data.TrimLeadingSpace)
	return opts, nil
}

func viewerOptions(cmd *cobra.Command, cfg config.Config, run *settings.Run, lgr logr.Logger) ui.Options {
	defaults := cfg.UI.Columns
	if cmd.Flags().Changed("columns") {
		defaults = columns
	}
	return ui.Options{
		AppName:        cfg.App.Name,
		Prompt:         cfg.UI.Prompt,
		Placeholder:    cfg.UI.Placeholder,
		NoColor:        run.NoColor,
		Theme:          ui.ThemeFromConfig(cfg.UI.Theme),
		DefaultColumns: defaults,
		Logger:         lgr,
	}
}

// logLevel maps --debug or a config level name to a zap level.
func logLevel(name string, debugFlag bool) (int8, error) {
	if debugFlag {
		return int8(zapcore.DebugLevel), nil
	}
	if strings.TrimSpace(name) == "" {
		return int8(zapcore.InfoLevel), nil
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return int8(lvl), nil
}

// setupLogger builds the process logger. The viewer owns the terminal, so an
// interactive run without a log file does not log at all.
func setupLogger(run *settings.Run) (*logr.Logger, error) {
	if run.Interactive && run.LogFile == "" {
		return logger.GetNoopLogger(), nil
	}
	return logger.Setup(logger.Options{Level: run.MinLogLevel, OutputPath: run.LogFile})
}

// resolveSnapshotSize fills unset dimensions from the terminal, then 80x24.
func resolveSnapshotSize(flagWidth, flagHeight int) (int, int) {
	width, height := flagWidth, flagHeight
	if width <= 0 || height <= 0 {
		if w, h, err := termGetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return width, height
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}
