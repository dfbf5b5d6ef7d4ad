// Package cli implements the resumectl command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"resume-builder/internal/adapter/view"
	"resume-builder/internal/config"
	"resume-builder/internal/server"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/infrastructure"
	"resume-builder/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "resumectl"

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the values shown by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds state shared by all commands.
type CLI struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	envFile string
	verbose bool
	backend string
	path    string

	cfg *config.Config
	log *zap.Logger

	store      usecase.KeyValueStore
	rasterizer usecase.Rasterizer
}

type Option func(*CLI)

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(c *CLI) {
		c.in, c.out, c.errOut = in, out, errOut
	}
}

// WithStore makes every command use s instead of the configured backend.
func WithStore(s usecase.KeyValueStore) Option {
	return func(c *CLI) { c.store = s }
}

// WithRasterizer replaces headless Chrome.
func WithRasterizer(r usecase.Rasterizer) Option {
	return func(c *CLI) { c.rasterizer = r }
}

func New(opts ...Option) *CLI {
	c := &CLI{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "Build resumes from structured data and export them as PDF",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&c.envFile, "env-file", "", "load settings from this .env file")
	flags.StringVar(&c.backend, "storage", "", "storage backend: file, sqlite, postgres, redis or memory")
	flags.StringVar(&c.path, "storage-path", "", "directory for the file and sqlite backends")

	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.savedCommand())
	root.AddCommand(c.serveCommand())
	return root
}

// setup loads configuration and the logger before any command runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	var files []string
	if c.envFile != "" {
		files = append(files, c.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	if c.backend != "" {
		cfg.Storage.Backend = c.backend
	}
	if c.path != "" {
		cfg.Storage.Path = c.path
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logCfg := logger.Config{
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		OutputPath: cfg.Log.OutputPath,
	}
	if c.verbose {
		logCfg.Level = "debug"
	}
	// stdout carries command output
	if logCfg.OutputPath == "" {
		logCfg.OutputPath = "stderr"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = log.Named("cli")
	return nil
}

// services opens storage and wires the core. The returned function closes
// the store.
func (c *CLI) services(ctx context.Context) (*server.Services, func(), error) {
	store, closeStore := c.store, func() {}
	if store == nil {
		var err error
		store, closeStore, err = infrastructure.OpenStore(ctx, c.cfg.Storage, c.log)
		if err != nil {
			return nil, closeStore, fmt.Errorf("open %s storage: %w", c.cfg.Storage.Backend, err)
		}
	}
	raster := c.rasterizer
	if raster == nil {
		raster = infrastructure.NewChromedpRasterizer(infrastructure.RasterOptions{
			ChromePath:  c.cfg.Render.ChromePath,
			SettleDelay: c.cfg.Render.SettleDelay,
			Timeout:     c.cfg.Render.Timeout,
		}, c.log.Named("chromedp"))
	}
	svc, err := server.NewServices(ctx, c.cfg, server.Deps{Rasterizer: raster, Store: store, Log: c.log})
	if err != nil {
		closeStore()
		return nil, func() {}, err
	}
	return svc, closeStore, nil
}

// readInput reads the named file, or stdin for "" and "-".
func (c *CLI) readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(c.in)
	}
	return os.ReadFile(path)
}

func (c *CLI) viewOnly() (*view.HTML, error) {
	return view.New(c.cfg.Render.SurfaceWidth)
}
