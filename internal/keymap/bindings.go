package keymap

// Contexts a binding can belong to. Global bindings apply everywhere
// a more specific context does not claim the key.
const (
	ContextGlobal = "global"
	ContextGrid   = "grid"
	ContextDetail = "detail"
	ContextSearch = "search"
	ContextEditor = "editor"
)

// Commands understood by the view.
const (
	CmdQuit        = "quit"
	CmdBack        = "back"
	CmdNew         = "new-note"
	CmdEdit        = "edit-note"
	CmdDelete      = "delete-note"
	CmdPin         = "toggle-pin"
	CmdClearAll    = "clear-all"
	CmdSearch      = "search"
	CmdSort        = "cycle-sort"
	CmdTagNext     = "next-tag"
	CmdTagPrev     = "prev-tag"
	CmdTagPick     = "pick-tag"
	CmdTheme       = "toggle-theme"
	CmdView        = "view-note"
	CmdYankContent = "yank-content"
	CmdYankTitle   = "yank-title"
	CmdUp          = "cursor-up"
	CmdDown        = "cursor-down"
	CmdLeft        = "cursor-left"
	CmdRight       = "cursor-right"
	CmdTop         = "cursor-top"
	CmdBottom      = "cursor-bottom"
	CmdHelp        = "toggle-help"
	CmdSave        = "save"
	CmdNextField   = "next-field"
	CmdPrevField   = "prev-field"
	CmdScrollDown  = "scroll-down"
	CmdScrollUp    = "scroll-up"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal},
		{Key: "esc", Command: CmdBack, Context: ContextGlobal},
		{Key: "?", Command: CmdHelp, Context: ContextGlobal},

		// Card grid
		{Key: "q", Command: CmdQuit, Context: ContextGrid},
		{Key: "n", Command: CmdNew, Context: ContextGrid},
		{Key: "e", Command: CmdEdit, Context: ContextGrid},
		{Key: "enter", Command: CmdEdit, Context: ContextGrid},
		{Key: "d", Command: CmdDelete, Context: ContextGrid},
		{Key: "p", Command: CmdPin, Context: ContextGrid},
		{Key: "C", Command: CmdClearAll, Context: ContextGrid},
		{Key: "/", Command: CmdSearch, Context: ContextGrid},
		{Key: "s", Command: CmdSort, Context: ContextGrid},
		{Key: "t", Command: CmdTagNext, Context: ContextGrid},
		{Key: "T", Command: CmdTagPrev, Context: ContextGrid},
		{Key: "f", Command: CmdTagPick, Context: ContextGrid},
		{Key: "L", Command: CmdTheme, Context: ContextGrid},
		{Key: "v", Command: CmdView, Context: ContextGrid},
		{Key: "y", Command: CmdYankContent, Context: ContextGrid},
		{Key: "Y", Command: CmdYankTitle, Context: ContextGrid},
		{Key: "k", Command: CmdUp, Context: ContextGrid},
		{Key: "up", Command: CmdUp, Context: ContextGrid},
		{Key: "j", Command: CmdDown, Context: ContextGrid},
		{Key: "down", Command: CmdDown, Context: ContextGrid},
		{Key: "h", Command: CmdLeft, Context: ContextGrid},
		{Key: "left", Command: CmdLeft, Context: ContextGrid},
		{Key: "l", Command: CmdRight, Context: ContextGrid},
		{Key: "right", Command: CmdRight, Context: ContextGrid},
		{Key: "g", Command: CmdTop, Context: ContextGrid},
		{Key: "G", Command: CmdBottom, Context: ContextGrid},

		// Detail view (rendered markdown)
		{Key: "q", Command: CmdBack, Context: ContextDetail},
		{Key: "e", Command: CmdEdit, Context: ContextDetail},
		{Key: "p", Command: CmdPin, Context: ContextDetail},
		{Key: "y", Command: CmdYankContent, Context: ContextDetail},
		{Key: "Y", Command: CmdYankTitle, Context: ContextDetail},
		{Key: "j", Command: CmdScrollDown, Context: ContextDetail},
		{Key: "down", Command: CmdScrollDown, Context: ContextDetail},
		{Key: "k", Command: CmdScrollUp, Context: ContextDetail},
		{Key: "up", Command: CmdScrollUp, Context: ContextDetail},

		// Search box
		{Key: "enter", Command: CmdBack, Context: ContextSearch},

		// Editor modal
		{Key: "ctrl+s", Command: CmdSave, Context: ContextEditor},
		{Key: "tab", Command: CmdNextField, Context: ContextEditor},
		{Key: "shift+tab", Command: CmdPrevField, Context: ContextEditor},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
