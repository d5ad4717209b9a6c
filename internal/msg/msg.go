package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastKind selects the toast color.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastWarning
	ToastError
)

// ToastMsg displays a temporary message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	Kind     ToastKind
}

// ToastExpiredMsg clears the toast with the given sequence number. Older
// timers firing after a newer toast was shown are ignored.
type ToastExpiredMsg struct {
	Seq int
}

// ExpireToast returns a command that fires ToastExpiredMsg after d.
func ExpireToast(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}
