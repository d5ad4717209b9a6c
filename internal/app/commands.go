package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notecard/internal/config"
	appmsg "github.com/marcus/notecard/internal/msg"
)

// Message types for tea.Cmd
type (
	// deleteDueMsg fires once a card's delete animation has played.
	deleteDueMsg struct {
		ID int64
	}

	// configReloadedMsg carries a configuration read after the file changed.
	configReloadedMsg struct {
		cfg *config.Config
	}
)

// deleteAfter schedules the delete intent for id.
func deleteAfter(id int64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return deleteDueMsg{ID: id}
	})
}

// waitForConfig blocks on the watcher channel; it is re-armed after every reload.
func waitForConfig(ch <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// copyToClipboard writes text off the update loop and reports via toast.
func copyToClipboard(write func(string) error, text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return appmsg.ToastMsg{Message: "Copy failed: " + err.Error(), Kind: appmsg.ToastError}
		}
		return appmsg.ToastMsg{Message: "Copied " + what, Kind: appmsg.ToastSuccess}
	}
}
