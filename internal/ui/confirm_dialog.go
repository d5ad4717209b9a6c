package ui

import (
	"github.com/marcus/notecard/internal/modal"
)

// Modal widths used across the app.
const (
	ModalWidthSmall  = 40
	ModalWidthMedium = 50
	ModalWidthLarge  = 72
)

// Confirm dialog actions.
const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// ConfirmDialog is a reusable confirmation modal with interactive buttons.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string // e.g., " Confirm ", " Delete ", " Yes "
	CancelLabel  string // e.g., " Cancel ", " No "
	Variant      modal.Variant
	Width        int
}

// NewConfirmDialog creates a dialog with sensible defaults.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Variant:      modal.VariantDefault,
		Width:        ModalWidthMedium,
	}
}

// ToModal adapts the dialog configuration into a modal.Modal instance.
// Cancel is focused first so a stray Enter never confirms a destructive action.
func (d *ConfirmDialog) ToModal() *modal.Modal {
	confirm := modal.Btn(d.ConfirmLabel, ActionConfirm)
	if d.Variant == modal.VariantDanger {
		confirm = modal.Btn(d.ConfirmLabel, ActionConfirm, modal.BtnDanger())
	}

	m := modal.New(d.Title,
		modal.WithWidth(d.Width),
		modal.WithVariant(d.Variant),
		modal.WithHints(false),
	).
		AddSection(modal.Text(d.Message)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			confirm,
			modal.Btn(d.CancelLabel, ActionCancel),
		))
	if d.Variant == modal.VariantDanger {
		m.SetFocus(ActionCancel)
	}
	return m
}
