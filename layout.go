package grid

// LayoutFunc computes the target position for each item inside a
// container of the given content size. The packing algorithm is an
// opaque collaborator: the engine only consumes the resulting
// coordinates. Items are passed in registration order; positions are
// relative to the container's content origin.
type LayoutFunc func(items []*Item, width, height float64) map[Key]Point

// RowLayout is a deliberately naive default: items flow left to right in
// registration order and wrap when the next item would overflow the
// container width. Real packers plug in via WithLayout.
func RowLayout(items []*Item, width, height float64) map[Key]Point {
	out := make(map[Key]Point, len(items))
	var x, y, rowHeight float64
	for _, item := range items {
		w := item.width + 2*item.marginLeft
		h := item.height + 2*item.marginTop
		if x > 0 && x+w > width {
			x = 0
			y += rowHeight
			rowHeight = 0
		}
		out[item.key] = Point{X: x, Y: y}
		x += w
		if h > rowHeight {
			rowHeight = h
		}
	}
	return out
}
