package main

import (
	"context"
	"fmt"
	"io"
	"movie_review/pkg/catalog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	storePath   string
	apiURL      string
	verbose     bool
	mergeServer bool
)

// app is opened by rootCmd before any subcommand runs.
type app struct {
	catalog *catalog.Catalog
	store   catalog.Store
	log     *zap.Logger
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "moviecli",
	Short: "Browse, add and review movies",
	Long: `moviecli keeps a local movie catalog with reviews and syncs it with the
movie server when one is reachable.

Local state lives in a bbolt file (--store). Server calls are best effort:
anything that cannot be uploaded stays saved locally.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		current = a
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "store", envOr("MOVIE_STORE_PATH", defaultStorePath()), "path of the local bbolt store")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", os.Getenv("MOVIE_API_URL"), "movie server base URL, empty for offline")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log server failures")
	rootCmd.PersistentFlags().BoolVar(&mergeServer, "server", false, "merge the server movies")

	rootCmd.AddCommand(listCmd, addCmd, dropCmd, reviewCmd, showCmd)
}

func main() {
	if err := execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// execute runs one command line. The store is closed whether or not the
// command succeeded.
func execute(args []string, in io.Reader, out io.Writer, errOut io.Writer) error {
	defer closeApp()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.Execute()
}

func closeApp() {
	if current == nil {
		return
	}
	_ = current.log.Sync()
	if err := current.store.Close(); err != nil {
		current.log.Error("could not close store", zap.Error(err))
	}
	current = nil
}

func openApp(ctx context.Context) (*app, error) {
	log, err := newLogger(verbose)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(storePath); dir != "" {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	store, err := catalog.OpenBoltStore(storePath)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", storePath, err)
	}

	var remote catalog.Remote
	if apiURL != "" {
		remote = catalog.NewHTTPRemote(apiURL)
	}

	c := catalog.New(store, remote, catalog.WithLogger(log))
	if err = c.Load(ctx, mergeServer); err != nil {
		_ = store.Close()
		return nil, err
	}
	return &app{catalog: c, store: store, log: log}, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.DisableStacktrace = true
	return config.Build()
}

func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "movies.db"
	}
	return filepath.Join(dir, "moviecli", "movies.db")
}
