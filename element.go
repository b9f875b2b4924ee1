package grid

// Style is a set of numeric style properties keyed by property name.
// Property names are opaque to the engine; the Element implementation
// decides how each one is rendered.
type Style map[string]float64

// Well-known style property names used by the engine itself.
const (
	StyleTranslateX = "translateX"
	StyleTranslateY = "translateY"
	StyleMarginLeft = "marginLeft"
	StyleMarginTop  = "marginTop"
)

// Element is the host capability the engine animates. Implementations
// wrap whatever the host actually paints: a DOM node, a terminal region,
// or an in-memory fake in tests.
//
// All methods are called on the frame loop goroutine only.
type Element interface {
	// Style returns the current resolved value of a style property.
	// Unknown properties resolve to zero.
	Style(prop string) float64

	// SetStyles writes inline style properties, overriding any previously
	// written values for the same property names.
	SetStyles(styles Style)

	// AddClass adds a class name. Adding a class twice is a no-op.
	AddClass(name string)

	// RemoveClass removes a class name. Removing an absent class is a no-op.
	RemoveClass(name string)

	// SetDisplayed controls display eligibility. An undisplayed element
	// occupies no space and is never painted, regardless of its styles.
	SetDisplayed(displayed bool)

	// Rect returns the element's viewport-relative bounding box.
	Rect() Rect

	// Child returns the element's content child, or nil if it has none.
	Child() Element
}

// Clone returns a copy of the style set. Cloning a nil Style returns nil.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for prop, v := range s {
		out[prop] = v
	}
	return out
}

// currentStyles captures the element's resolved values for exactly the
// properties present in target.
func currentStyles(el Element, target Style) Style {
	out := make(Style, len(target))
	for prop := range target {
		out[prop] = el.Style(prop)
	}
	return out
}
