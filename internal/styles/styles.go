package styles

import "github.com/charmbracelet/lipgloss"

// Colors of the active theme. ApplyTheme rewrites these and rebuilds the
// styles below; nothing else should assign them.
var (
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	BgPrimary   lipgloss.Color
	BgSecondary lipgloss.Color
	BgTertiary  lipgloss.Color

	BorderNormal lipgloss.Color
	BorderActive lipgloss.Color
	BorderPinned lipgloss.Color

	ToastText lipgloss.Color

	// Glamour style name for the detail view
	CurrentMarkdownTheme = "dark"
)

// Text styles
var (
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	KeyHint  lipgloss.Style
	Logo     lipgloss.Style
	TagChip  lipgloss.Style
	PinBadge lipgloss.Style
)

// Header bar
var (
	Header        lipgloss.Style
	BarChip       lipgloss.Style
	BarChipActive lipgloss.Style
	Footer        lipgloss.Style
)

// Cards
var (
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardPinned   lipgloss.Style
	CardDeleting lipgloss.Style
	CardTitle    lipgloss.Style
	CardMeta     lipgloss.Style
)

// List items (modal pickers)
var (
	ListItemNormal  lipgloss.Style
	ListItemFocused lipgloss.Style
	ListCursor      lipgloss.Style
)

// Toasts
var (
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
)

// Modal styles
var (
	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
	InputLabel lipgloss.Style
)

// Button styles
var (
	Button              lipgloss.Style
	ButtonFocused       lipgloss.Style
	ButtonDanger        lipgloss.Style
	ButtonDangerFocused lipgloss.Style
)

func init() {
	ApplyTheme(DefaultThemeName)
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	Logo = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	TagChip = lipgloss.NewStyle().
		Foreground(Secondary).
		Background(BgTertiary).
		Padding(0, 1)

	PinBadge = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Header = lipgloss.NewStyle().
		Background(BgSecondary).
		Padding(0, 1)

	BarChip = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	BarChipActive = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Padding(0, 1).
		Bold(true)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgSecondary)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	CardSelected = Card.
		BorderForeground(BorderActive)

	CardPinned = Card.
		BorderForeground(BorderPinned)

	CardDeleting = Card.
		BorderForeground(Error).
		Foreground(TextMuted).
		Faint(true)

	CardTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	CardMeta = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	ListItemNormal = lipgloss.NewStyle().
		Foreground(TextPrimary)

	ListItemFocused = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary)

	ListCursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	ToastSuccess = lipgloss.NewStyle().
		Background(Success).
		Foreground(ToastText).
		Bold(true).
		Padding(0, 1)

	ToastWarning = lipgloss.NewStyle().
		Background(Warning).
		Foreground(ToastText).
		Bold(true).
		Padding(0, 1)

	ToastError = lipgloss.NewStyle().
		Background(Error).
		Foreground(ToastText).
		Bold(true).
		Padding(0, 1)

	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Background(BgSecondary).
		Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true).
		MarginBottom(1)

	InputLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgTertiary).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Padding(0, 2).
		Bold(true)

	ButtonDanger = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FCA5A5")).
		Background(lipgloss.Color("#7F1D1D")).
		Padding(0, 2)

	ButtonDangerFocused = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#DC2626")).
		Padding(0, 2).
		Bold(true)
}
