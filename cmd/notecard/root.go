package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/marcus/notecard/internal/blobstore"
	"github.com/marcus/notecard/internal/config"
	"github.com/marcus/notecard/internal/logging"
	"github.com/marcus/notecard/internal/notebook"
	"github.com/spf13/cobra"
)

// cli holds the persistent flags and what PersistentPreRunE builds from them.
type cli struct {
	configPath string
	dataPath   string
	debug      bool
	ephemeral  bool

	cfg    *config.Config
	level  slog.Level
	logger *slog.Logger
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "notecard",
		Short: "A keyboard-driven board of sticky notes for the terminal",
		Long: `Notecard keeps short notes as cards you can search, tag, pin and sort.

Run without a subcommand to open the board. The subcommands operate on the
same collection without a terminal UI.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context())
		},
	}
	if env := config.EnvUsage(); env != "" {
		root.Long += "\n\n" + env
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "path to config file")
	pf.StringVar(&c.dataPath, "data", "", "storage location (overrides storage.path)")
	pf.BoolVar(&c.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&c.ephemeral, "ephemeral", false, "keep notes in memory for this run only")

	root.AddCommand(
		c.listCmd(),
		c.addCmd(),
		c.pinCmd(),
		c.rmCmd(),
		c.clearCmd(),
		c.exportCmd(),
		c.configCmd(),
		c.versionCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the stderr logger.
func (c *cli) setup(cmd *cobra.Command) error {
	c.out = cmd.OutOrStdout()

	cfg, err := config.LoadFrom(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.dataPath != "" {
		cfg.Storage.Path = config.ExpandPath(c.dataPath)
	}
	if c.ephemeral {
		cfg.Storage.Backend = blobstore.BackendMemory
	}
	c.cfg = cfg

	c.level = slog.LevelDebug
	if !c.debug {
		if c.level, err = logging.ParseLevel(cfg.Log.Level); err != nil {
			return err
		}
	}
	c.logger = logging.Stderr(c.level)
	return nil
}

// openNotebook opens the configured backend. The returned func closes it.
func (c *cli) openNotebook(ctx context.Context) (*notebook.Notebook, func(), error) {
	s := c.cfg.Storage
	store, err := blobstore.Open(ctx, s.Backend, s.Driver, c.cfg.DataPath(), c.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s storage: %w", s.Backend, err)
	}
	c.logger.Debug("storage opened", "backend", s.Backend, "path", c.cfg.DataPath())

	nb := notebook.New(store, notebook.Options{Logger: c.logger})
	closeFn := func() {
		if err := store.Close(); err != nil {
			c.logger.Warn("close storage", "error", err)
		}
	}
	return nb, closeFn, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}
