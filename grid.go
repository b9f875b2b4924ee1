package grid

import (
	"fmt"
	"time"

	"github.com/grindlemire/go-grid/internal/debug"
)

// Grid positions and animates items inside a container element. It owns
// the item registry, the shared completion emitter, the container's
// cached measurements, and the settings every transition reads.
//
// A Grid never owns its Ticker: the ticker is injected so that many
// grids can share one frame loop, and so tests can drive frames by hand.
//
// All methods must run on the frame loop goroutine (or before the frame
// source starts delivering frames).
type Grid struct {
	element Element
	ticker  *Ticker
	emitter *Emitter

	items      []*Item
	itemsByKey map[Key]*Item

	// Transition settings, fixed at construction.
	showDuration     time.Duration
	hideDuration     time.Duration
	layoutDuration   time.Duration
	showEasing       Easing
	hideEasing       Easing
	layoutEasing     Easing
	visibleStyles    Style
	hiddenStyles     Style
	itemVisibleClass string
	itemHiddenClass  string
	windowing        bool
	windowThreshold  float64
	viewport         func() Rect
	layout           LayoutFunc
	animatorFactory  AnimatorFactory

	// Cached container measurements, shared read-mostly state refreshed
	// at most once per frame through dimensionsNeedRefresh.
	rect                  Rect
	borderLeft, borderTop float64
	dimensionsNeedRefresh bool

	refresher *Debouncer

	layoutGen       int
	layoutRemaining int

	destroyed bool
}

// Style property names the container measurement reads.
const (
	StyleBorderLeft = "borderLeftWidth"
	StyleBorderTop  = "borderTopWidth"
)

// GridOption is a functional option for configuring a Grid.
type GridOption func(*Grid) error

// WithShowDuration sets the show transition duration. Zero or negative
// makes every show instant.
func WithShowDuration(d time.Duration) GridOption {
	return func(g *Grid) error {
		g.showDuration = d
		return nil
	}
}

// WithHideDuration sets the hide transition duration. Zero or negative
// makes every hide instant.
func WithHideDuration(d time.Duration) GridOption {
	return func(g *Grid) error {
		g.hideDuration = d
		return nil
	}
}

// WithLayoutDuration sets the position animation duration. Zero or
// negative makes every layout instant.
func WithLayoutDuration(d time.Duration) GridOption {
	return func(g *Grid) error {
		g.layoutDuration = d
		return nil
	}
}

// WithEasings sets the easing curves for show, hide, and layout
// animations. A nil easing keeps the default.
func WithEasings(show, hide, layout Easing) GridOption {
	return func(g *Grid) error {
		if show != nil {
			g.showEasing = show
		}
		if hide != nil {
			g.hideEasing = hide
		}
		if layout != nil {
			g.layoutEasing = layout
		}
		return nil
	}
}

// WithVisibleStyles sets the style set items animate to when shown.
// An empty set makes show a pure state change with no animation.
func WithVisibleStyles(styles Style) GridOption {
	return func(g *Grid) error {
		g.visibleStyles = styles.Clone()
		return nil
	}
}

// WithHiddenStyles sets the style set items animate to when hidden.
// An empty set makes hide a pure state change with no animation.
func WithHiddenStyles(styles Style) GridOption {
	return func(g *Grid) error {
		g.hiddenStyles = styles.Clone()
		return nil
	}
}

// WithItemClasses sets the class names applied to visible and hidden
// items.
func WithItemClasses(visible, hidden string) GridOption {
	return func(g *Grid) error {
		if visible == "" || hidden == "" {
			return fmt.Errorf("item class names must not be empty")
		}
		g.itemVisibleClass = visible
		g.itemHiddenClass = hidden
		return nil
	}
}

// WithWindowing enables the viewport-windowing optimization: transitions
// judged fully outside viewport() plus threshold skip interpolation and
// apply their target styles directly. The viewport func is called during
// the write phase only.
func WithWindowing(viewport func() Rect, threshold float64) GridOption {
	return func(g *Grid) error {
		if viewport == nil {
			return fmt.Errorf("windowing requires a viewport func")
		}
		g.windowing = true
		g.viewport = viewport
		g.windowThreshold = threshold
		return nil
	}
}

// WithLayout sets the packing function that computes item positions.
// Default is RowLayout.
func WithLayout(fn LayoutFunc) GridOption {
	return func(g *Grid) error {
		if fn == nil {
			return fmt.Errorf("layout func must not be nil")
		}
		g.layout = fn
		return nil
	}
}

// WithAnimatorFactory replaces the animation primitive used for item
// transitions. Default builds a Tween per element. Tests use this to
// inject instant or recording fakes.
func WithAnimatorFactory(fn AnimatorFactory) GridOption {
	return func(g *Grid) error {
		if fn == nil {
			return fmt.Errorf("animator factory must not be nil")
		}
		g.animatorFactory = fn
		return nil
	}
}

// NewGrid creates a grid animating items inside el, scheduling all work
// on the given ticker.
func NewGrid(ticker *Ticker, el Element, opts ...GridOption) (*Grid, error) {
	if ticker == nil {
		return nil, fmt.Errorf("grid requires a ticker")
	}
	if el == nil {
		return nil, fmt.Errorf("grid requires a container element")
	}

	g := &Grid{
		element:          el,
		ticker:           ticker,
		emitter:          NewEmitter(),
		itemsByKey:       map[Key]*Item{},
		showDuration:     300 * time.Millisecond,
		hideDuration:     300 * time.Millisecond,
		layoutDuration:   300 * time.Millisecond,
		showEasing:       EaseInOutCubic,
		hideEasing:       EaseInOutCubic,
		layoutEasing:     EaseInOutCubic,
		visibleStyles:    Style{"opacity": 1, "scale": 1},
		hiddenStyles:     Style{"opacity": 0, "scale": 0.5},
		itemVisibleClass: "grid-item-shown",
		itemHiddenClass:  "grid-item-hidden",
		windowThreshold:  100,
		layout:           RowLayout,
		animatorFactory: func(t *Ticker, el Element) Animator {
			return NewTween(t, el)
		},
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, fmt.Errorf("invalid grid option: %w", err)
		}
	}

	g.refresher = NewDebouncer(ticker, 100*time.Millisecond, func() {
		if g.destroyed {
			return
		}
		g.refreshDimensions()
		for _, item := range g.items {
			if item.active {
				item.updateDimensions()
			}
		}
		g.Layout(false, nil)
	})

	g.refreshDimensions()
	return g, nil
}

// Add registers a new item wrapping el. An active item starts visible
// and participates in layout; an inactive one starts hidden.
func (g *Grid) Add(el Element, active bool) (*Item, error) {
	if g.destroyed {
		return nil, fmt.Errorf("grid is destroyed")
	}
	item, err := newItem(g, el, active)
	if err != nil {
		return nil, fmt.Errorf("adding grid item: %w", err)
	}
	g.items = append(g.items, item)
	g.itemsByKey[item.key] = item
	debug.Log("grid: added item %d (active=%v)", item.key, active)
	return item, nil
}

// Remove destroys the item and drops it from the registry. Removing an
// item the grid does not own is a no-op.
func (g *Grid) Remove(item *Item) {
	if g.destroyed || item == nil {
		return
	}
	if _, ok := g.itemsByKey[item.key]; !ok {
		return
	}
	item.destroy()
	delete(g.itemsByKey, item.key)
	for i, it := range g.items {
		if it == item {
			g.items = append(g.items[:i], g.items[i+1:]...)
			break
		}
	}
	debug.Log("grid: removed item %d", item.key)
}

// Items returns the registered items in registration order.
func (g *Grid) Items() []*Item {
	out := make([]*Item, len(g.items))
	copy(out, g.items)
	return out
}

// Item looks up an item by its key, or nil.
func (g *Grid) Item(key Key) *Item {
	return g.itemsByKey[key]
}

// Show requests the visible state for each item. onFinish, if non-nil,
// is registered per item on its completion queue.
func (g *Grid) Show(items []*Item, instant bool, onFinish Listener) {
	if g.destroyed {
		return
	}
	for _, item := range items {
		if item != nil && !item.destroyed {
			item.visibility.Show(instant, onFinish)
		}
	}
}

// Hide requests the hidden state for each item. onFinish, if non-nil, is
// registered per item on its completion queue.
func (g *Grid) Hide(items []*Item, instant bool, onFinish Listener) {
	if g.destroyed {
		return
	}
	for _, item := range items {
		if item != nil && !item.destroyed {
			item.visibility.Hide(instant, onFinish)
		}
	}
}

// Layout runs the packing function over the active items and animates
// each one toward its new position. onFinish, if non-nil, fires once
// every item of this layout pass has settled; a pass superseded by a
// newer Layout call never fires its onFinish.
func (g *Grid) Layout(instant bool, onFinish func()) {
	if g.destroyed {
		return
	}
	g.layoutGen++
	gen := g.layoutGen

	active := make([]*Item, 0, len(g.items))
	for _, item := range g.items {
		if item.active {
			item.updateDimensions()
			active = append(active, item)
		}
	}

	width := g.rect.Width - 2*g.borderLeft
	height := g.rect.Height - 2*g.borderTop
	positions := g.layout(active, width, height)

	g.layoutRemaining = len(active)
	if g.layoutRemaining == 0 {
		if onFinish != nil {
			onFinish()
		}
		return
	}

	for _, item := range active {
		if pos, ok := positions[item.key]; ok {
			item.left = pos.X
			item.top = pos.Y
		}
		item.layout.start(instant, func(bool, *Item) {
			if gen != g.layoutGen {
				return
			}
			g.layoutRemaining--
			if g.layoutRemaining == 0 && onFinish != nil {
				onFinish()
			}
		})
	}
}

// Refresh re-measures the container and re-layouts, debounced over a
// quiet period so bursts of resize notifications collapse into one pass.
func (g *Grid) Refresh() {
	if g.destroyed {
		return
	}
	g.refresher.Trigger()
}

// refreshDimensions re-reads the container's bounding rect and border
// widths into the cache.
func (g *Grid) refreshDimensions() {
	g.rect = g.element.Rect()
	g.borderLeft = max(g.element.Style(StyleBorderLeft), 0)
	g.borderTop = max(g.element.Style(StyleBorderTop), 0)
}

// Destroy tears down every item and makes the grid permanently inert.
func (g *Grid) Destroy() {
	if g.destroyed {
		return
	}
	for _, item := range g.items {
		item.destroy()
	}
	g.items = nil
	g.itemsByKey = map[Key]*Item{}
	g.refresher.Cancel()
	g.destroyed = true
	debug.Log("grid: destroyed")
}
