// Package markdown renders note bodies for the detail view.
package markdown

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// maxCacheEntries bounds the render cache; it is dropped wholesale when full.
const maxCacheEntries = 256

type rendererKey struct {
	style string
	width int
}

type cacheKey struct {
	hash  uint64
	style string
	width int
}

// Renderer renders markdown with glamour, caching output per content,
// style and width. Safe for concurrent use.
type Renderer struct {
	mu        sync.Mutex
	style     string
	renderers map[rendererKey]*glamour.TermRenderer
	cache     map[cacheKey]string
	logger    *slog.Logger
}

// NewRenderer returns a renderer using the given glamour standard style
// ("dark" or "light"; anything else falls back to "dark").
func NewRenderer(style string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Renderer{
		renderers: make(map[rendererKey]*glamour.TermRenderer),
		cache:     make(map[cacheKey]string),
		logger:    logger,
	}
	r.SetStyle(style)
	return r
}

// SetStyle switches the glamour style used by later renders.
func (r *Renderer) SetStyle(style string) {
	if style != "light" {
		style = "dark"
	}
	r.mu.Lock()
	r.style = style
	r.mu.Unlock()
}

// Style returns the active glamour style.
func (r *Renderer) Style() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.style
}

// Render returns content rendered for the given width. If glamour fails the
// content is returned word-wrapped as plain text.
func (r *Renderer) Render(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	width = max(width, 10)

	r.mu.Lock()
	defer r.mu.Unlock()

	key := cacheKey{hash: xxhash.Sum64String(content), style: r.style, width: width}
	if out, ok := r.cache[key]; ok {
		return out
	}

	out, err := r.render(content, width)
	if err != nil {
		r.logger.Warn("markdown render failed", "error", err)
		out = Plain(content, width)
	}
	if len(r.cache) >= maxCacheEntries {
		clear(r.cache)
	}
	r.cache[key] = out
	return out
}

func (r *Renderer) render(content string, width int) (string, error) {
	rk := rendererKey{style: r.style, width: width}
	tr, ok := r.renderers[rk]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		r.renderers[rk] = tr
	}
	out, err := tr.Render(content)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// Plain word-wraps content without markdown styling.
func Plain(content string, width int) string {
	return ansi.Wordwrap(content, max(width, 10), "")
}
