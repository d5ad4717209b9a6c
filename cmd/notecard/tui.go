package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notecard/internal/app"
	"github.com/marcus/notecard/internal/config"
	"github.com/marcus/notecard/internal/keymap"
	"github.com/marcus/notecard/internal/logging"
	"github.com/marcus/notecard/internal/markdown"
	"github.com/marcus/notecard/internal/state"
)

// runTUI opens the board. Logs go to a file so they don't corrupt the screen.
func (c *cli) runTUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger, closer, err := logging.File(c.cfg.LogPath(), c.level)
	if err != nil {
		c.logger.Warn("log file unavailable, logging disabled", "error", err)
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}
	c.logger = logger

	nb, closeStore, err := c.openNotebook(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	// State is optional; the board starts with defaults without it.
	if err := state.Init(); err != nil {
		logger.Warn("load ui state", "error", err)
	}

	var updates <-chan *config.Config
	path := c.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	if w, err := config.Watch(ctx, path, logger); err != nil {
		logger.Warn("config watch disabled", "path", path, "error", err)
	} else {
		defer w.Close()
		updates = w.Updates()
	}

	model := app.New(app.Options{
		Notebook:      nb,
		Keymap:        keymap.NewDefault(c.cfg.Keymap.Overrides),
		Config:        c.cfg,
		Logger:        logger,
		Markdown:      markdown.NewRenderer(string(nb.Theme()), logger),
		ConfigUpdates: updates,
		SaveState:     true,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	return nil
}
