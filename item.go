package grid

import "fmt"

// Item is one visual element managed by a Grid. The engine owns the
// item's layout target and visibility state; callers interact with it
// through the read accessors and the Visibility state machine.
//
// Internal mutation happens only through the item's own handlers; the
// exported surface is read-only.
type Item struct {
	key       Key
	element   Element
	grid      *Grid
	active    bool
	destroyed bool

	// Layout target, relative to the container's content origin.
	left, top float64

	// Cached dimensions, refreshed by updateDimensions.
	width, height         float64
	marginLeft, marginTop float64

	visibility *Visibility
	layout     *itemLayout
}

// newItem wires up a fresh item. Fails when the element is missing the
// content child the visibility handler animates; an item without one is
// unusable, so this surfaces immediately rather than degrading.
func newItem(g *Grid, el Element, active bool) (*Item, error) {
	if el == nil {
		return nil, fmt.Errorf("item element must not be nil")
	}
	item := &Item{
		key:     NextKey(),
		element: el,
		grid:    g,
		active:  active,
	}
	vis, err := newVisibility(item)
	if err != nil {
		return nil, err
	}
	item.visibility = vis
	item.layout = newItemLayout(item)
	item.updateDimensions()
	return item, nil
}

// Key returns the item's opaque identity.
func (i *Item) Key() Key {
	return i.key
}

// Element returns the element the item wraps.
func (i *Item) Element() Element {
	return i.element
}

// IsActive reports whether the item participates in layout. Hiding an
// item deactivates it; showing reactivates it.
func (i *Item) IsActive() bool {
	return i.active
}

// IsDestroyed reports whether the item has been destroyed.
func (i *Item) IsDestroyed() bool {
	return i.destroyed
}

// Visibility returns the item's visibility state machine.
func (i *Item) Visibility() *Visibility {
	return i.visibility
}

// Position returns the item's current layout target, relative to the
// container's content origin.
func (i *Item) Position() Point {
	return Point{X: i.left, Y: i.top}
}

// Size returns the item's cached width and height.
func (i *Item) Size() (width, height float64) {
	return i.width, i.height
}

// updateDimensions re-reads the element's bounding box and margins into
// the cache.
func (i *Item) updateDimensions() {
	r := i.element.Rect()
	i.width = r.Width
	i.height = r.Height
	i.marginLeft = max(i.element.Style(StyleMarginLeft), 0)
	i.marginTop = max(i.element.Style(StyleMarginTop), 0)
}

// destroy tears the item down: any in-flight transition is halted, stale
// completions are dropped, and the item goes terminally inert.
func (i *Item) destroy() {
	if i.destroyed {
		return
	}
	i.layout.stop(true)
	i.visibility.Destroy()
	i.active = false
	i.destroyed = true
}
