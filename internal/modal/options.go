package modal

// Layout constants.
const (
	DefaultWidth  = 50
	MinModalWidth = 30
	ModalPadding  = 6 // border(2) + horizontal padding(4)
)

// Variant controls the modal accent color.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the preferred modal width. It is clamped to the screen.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the accent variant.
func WithVariant(v Variant) Option {
	return func(m *Modal) {
		m.variant = v
	}
}

// WithHints toggles the key hint line.
func WithHints(show bool) Option {
	return func(m *Modal) {
		m.showHints = show
	}
}

// WithPrimaryAction sets the action returned when Enter is pressed on a
// focused element that has no action of its own.
func WithPrimaryAction(id string) Option {
	return func(m *Modal) {
		m.primaryAction = id
	}
}

// WithFooter sets a fixed footer rendered below the scroll viewport.
func WithFooter(footer string) Option {
	return func(m *Modal) {
		m.customFooter = footer
	}
}
