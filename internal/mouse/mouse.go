// Package mouse maps terminal mouse events onto named screen regions.
package mouse

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickWindow is the longest gap between two clicks on the same
// region that still counts as a double click.
const DoubleClickWindow = 400 * time.Millisecond

// ScrollDelta is the number of lines one wheel notch moves.
const ScrollDelta = 3

// Rect is a screen rectangle in cells. The right and bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a clickable area with caller data attached.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of the last rendered frame.
type HitMap struct {
	regions []Region
}

func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region. Regions added later are on top.
func (h *HitMap) Add(id string, r Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect is Add with the rectangle spelled out.
func (h *HitMap) AddRect(id string, x, y, w, ht int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: ht}, data)
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear removes every region.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns a copy of the registered regions.
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
	ActionHover
)

// Action is the interpreted form of a tea.MouseMsg.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	Delta  int // scroll lines, negative for up
}

// ClickResult is returned by HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler tracks click timing on top of a HitMap.
type Handler struct {
	HitMap *HitMap

	now         func() time.Time
	lastClickAt time.Time
	lastClickID string
}

func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// Clear drops the regions and any pending double click.
func (h *Handler) Clear() {
	h.HitMap.Clear()
	h.lastClickID = ""
}

// HandleClick hit-tests (x, y) and detects double clicks. A double click
// resets the sequence so a third click starts over.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}

	now := h.now()
	key := clickKey(region)
	double := key == h.lastClickID && now.Sub(h.lastClickAt) <= DoubleClickWindow
	if double {
		h.lastClickID = ""
	} else {
		h.lastClickID = key
		h.lastClickAt = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// clickKey identifies a region across frames; regions may share an ID and
// differ by data.
func clickKey(r *Region) string {
	if r.Data == nil {
		return r.ID
	}
	return fmt.Sprintf("%s:%v", r.ID, r.Data)
}

// HandleMouse interprets msg against the hit map.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	a := Action{X: msg.X, Y: msg.Y}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.Type, a.Delta = ActionScrollUp, -ScrollDelta
		a.Region = h.HitMap.Test(msg.X, msg.Y)
		return a
	case tea.MouseButtonWheelDown:
		a.Type, a.Delta = ActionScrollDown, ScrollDelta
		a.Region = h.HitMap.Test(msg.X, msg.Y)
		return a
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a
		}
		res := h.HandleClick(msg.X, msg.Y)
		if res.Region == nil {
			return a
		}
		a.Region = res.Region
		a.Type = ActionClick
		if res.IsDoubleClick {
			a.Type = ActionDoubleClick
		}
	case tea.MouseActionMotion:
		a.Type = ActionHover
		a.Region = h.HitMap.Test(msg.X, msg.Y)
	}
	return a
}
