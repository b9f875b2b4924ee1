package grid

import "time"

// itemLayout animates an item's translate toward its layout target using
// the same read/write pairing as the visibility handler: measure the
// current translate in the read phase, start (or skip) the animation in
// the write phase. Completion listeners ride the grid's emitter under the
// handler's own key, so interruption signaling matches visibility
// semantics: a superseding layout bursts prior waiters as interrupted.
type itemLayout struct {
	item     *Item
	key      Key
	animator Animator
	active   bool
	tx, ty   float64 // translate captured by the read step
}

func newItemLayout(item *Item) *itemLayout {
	return &itemLayout{
		item:     item,
		key:      NextKey(),
		animator: item.grid.animatorFactory(item.grid.ticker, item.element),
	}
}

// start moves the item toward item.left/item.top. A start while a
// previous run is still in flight supersedes it and bursts its waiters
// with interrupted=true.
func (l *itemLayout) start(instant bool, onFinish Listener) {
	item := l.item
	g := item.grid
	if item.destroyed {
		return
	}

	if l.active {
		g.emitter.Burst(l.key, true, item)
	}
	g.emitter.On(l.key, onFinish)

	target := Style{StyleTranslateX: item.left, StyleTranslateY: item.top}

	// Supersede a still-pending read/write pair.
	g.ticker.Cancel(l.key)

	if instant || g.layoutDuration <= 0 {
		l.animator.Stop()
		item.element.SetStyles(target)
		l.finish()
		return
	}

	if l.animator.Running() {
		l.animator.ClearFinish()
	}
	l.active = true

	g.ticker.Schedule(PhaseRead, l.key, func(time.Duration) {
		if !l.active {
			return
		}
		l.tx = item.element.Style(StyleTranslateX)
		l.ty = item.element.Style(StyleTranslateY)
	})
	g.ticker.Schedule(PhaseWrite, l.key, func(time.Duration) {
		if !l.active {
			return
		}
		if l.tx == item.left && l.ty == item.top {
			l.finish()
			return
		}
		from := Style{StyleTranslateX: l.tx, StyleTranslateY: l.ty}
		l.animator.Start(from, target, AnimationOptions{
			Duration: g.layoutDuration,
			Easing:   g.layoutEasing,
			OnFinish: l.finish,
		})
	})
}

// finish settles the run and bursts waiters as not-interrupted.
func (l *itemLayout) finish() {
	l.active = false
	l.item.grid.emitter.Burst(l.key, false, l.item)
}

// stop cancels the pending tick pair and halts the animation exactly
// where it is. When processQueue is set, waiters are burst as
// interrupted; otherwise they stay queued for a later run.
func (l *itemLayout) stop(processQueue bool) {
	item := l.item
	g := item.grid
	g.ticker.Cancel(l.key)
	l.animator.Stop()
	l.active = false
	if processQueue {
		g.emitter.Burst(l.key, true, item)
	}
}
