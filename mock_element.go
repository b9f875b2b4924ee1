package grid

// MockElement is a mock implementation of Element for testing.
// It stores styles and classes in memory and counts mutations for
// verification.
type MockElement struct {
	styles    Style
	classes   map[string]bool
	rect      Rect
	child     *MockElement
	displayed bool

	// Mutation counters for testing write coalescing
	setStylesCount int
	styleReads     int
	rectReads      int
}

// Ensure MockElement implements Element.
var _ Element = (*MockElement)(nil)

// NewMockElement creates a mock element with the given bounding box and a
// single content child sharing the same box.
func NewMockElement(rect Rect) *MockElement {
	return &MockElement{
		styles:    Style{},
		classes:   map[string]bool{},
		rect:      rect,
		displayed: true,
		child: &MockElement{
			styles:    Style{},
			classes:   map[string]bool{},
			rect:      rect,
			displayed: true,
		},
	}
}

// NewChildlessMockElement creates a mock element without a content child,
// for exercising construction failures.
func NewChildlessMockElement(rect Rect) *MockElement {
	return &MockElement{
		styles:    Style{},
		classes:   map[string]bool{},
		rect:      rect,
		displayed: true,
	}
}

// Style returns the element's resolved value for prop. Unset properties
// resolve to zero.
func (m *MockElement) Style(prop string) float64 {
	m.styleReads++
	return m.styles[prop]
}

// SetStyles writes inline styles and bumps the mutation counter.
func (m *MockElement) SetStyles(styles Style) {
	m.setStylesCount++
	for prop, v := range styles {
		m.styles[prop] = v
	}
}

// AddClass adds a class name.
func (m *MockElement) AddClass(name string) {
	m.classes[name] = true
}

// RemoveClass removes a class name.
func (m *MockElement) RemoveClass(name string) {
	delete(m.classes, name)
}

// HasClass reports whether the class is currently set.
func (m *MockElement) HasClass(name string) bool {
	return m.classes[name]
}

// SetDisplayed records display eligibility.
func (m *MockElement) SetDisplayed(displayed bool) {
	m.displayed = displayed
}

// Displayed reports the current display eligibility.
func (m *MockElement) Displayed() bool {
	return m.displayed
}

// Rect returns the configured bounding box, offset by any written
// translate styles.
func (m *MockElement) Rect() Rect {
	m.rectReads++
	r := m.rect
	r.X += m.styles[StyleTranslateX]
	r.Y += m.styles[StyleTranslateY]
	return r
}

// SetRect replaces the configured bounding box.
func (m *MockElement) SetRect(rect Rect) {
	m.rect = rect
}

// Child returns the content child, or nil for childless mocks.
func (m *MockElement) Child() Element {
	if m.child == nil {
		return nil
	}
	return m.child
}

// ChildMock returns the content child as a *MockElement for assertions.
func (m *MockElement) ChildMock() *MockElement {
	return m.child
}

// SetStylesCount returns how many times SetStyles has been called.
func (m *MockElement) SetStylesCount() int {
	return m.setStylesCount
}

// RectReads returns how many times Rect has been called.
func (m *MockElement) RectReads() int {
	return m.rectReads
}
