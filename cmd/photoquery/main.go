// photoquery filters a tagged photo catalog with boolean find bar queries
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nainya/photoquery/internal/config"
	"github.com/nainya/photoquery/internal/logger"
	"github.com/nainya/photoquery/pkg/catalog"
	"github.com/nainya/photoquery/pkg/query"
)

var (
	configPath  string
	catalogArg  string
	logLevel    string
	debounceArg time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "photoquery",
	Short:         "query a tagged photo catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath+")")
	flags.StringVar(&catalogArg, "catalog", "", "catalog file, .json or .json.zst")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.DurationVar(&debounceArg, "debounce", 0, "pause after the last keystroke before the query runs")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		errColor.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env is what every subcommand needs: settings, a logger and the catalog.
type env struct {
	cfg     config.Config
	log     *logger.Logger
	coll    *catalog.Collection
	builder *query.Builder
	catalog string
}

// setup resolves settings with flags over environment over file over
// defaults, then loads the catalog.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog = catalogArg
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("debounce") {
		cfg.Debounce = debounceArg
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pretty := logger.IsTerminal(os.Stderr)
	if cfg.Log.Pretty != nil {
		pretty = *cfg.Log.Pretty
	}
	log := logger.InitGlobalLogger(logger.Config{Level: cfg.Log.Level, Pretty: pretty})

	path, err := cfg.CatalogPath()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("no catalog: use --catalog or set PHOTOQUERY_CATALOG")
	}
	coll, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}

	dir := coll.Directory()
	if dir.Hidden() == nil && cfg.HiddenTag != "" {
		if hidden, ok := dir.Tag(cfg.HiddenTag); ok {
			dir.SetHidden(hidden)
		}
	}
	log.LogCatalogLoaded(path, coll.Len(), dir.Len())

	builder := query.NewBuilder(dir,
		query.WithOperators(cfg.Operators),
		query.WithLogger(log.Component("query")),
	)

	return &env{
		cfg:     cfg,
		log:     log,
		coll:    coll,
		builder: builder,
		catalog: path,
	}, nil
}
