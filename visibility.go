package grid

import (
	"fmt"
	"time"

	"github.com/grindlemire/go-grid/internal/debug"
)

// Visibility is the per-item show/hide state machine. It owns the item's
// hidden/hiding/showing status, drives style transitions through the
// ticker's read/write phases, and settles completion listeners through
// the grid's emitter so callers can await the outcome of show and hide
// requests, including interruption when a newer request preempts one in
// flight.
//
// All methods must run on the frame loop goroutine. Operations on a
// destroyed Visibility are silent no-ops.
type Visibility struct {
	item      *Item
	childEl   Element
	animator  Animator
	key       Key
	hidden    bool
	hiding    bool
	showing   bool
	destroyed bool

	// Captured by the read step for the paired write step.
	currentStyles Style
	tx, ty        float64
}

// newVisibility derives the initial state from the item's active flag and
// applies the matching class, display, and styles. The element must have
// a content child to animate; without one the item cannot transition at
// all, so construction fails hard.
func newVisibility(item *Item) (*Visibility, error) {
	child := item.element.Child()
	if child == nil {
		return nil, fmt.Errorf("item element has no content child to animate")
	}
	g := item.grid
	v := &Visibility{
		item:     item,
		childEl:  child,
		animator: g.animatorFactory(g.ticker, child),
		key:      NextKey(),
		hidden:   !item.active,
	}
	if v.hidden {
		item.element.AddClass(g.itemHiddenClass)
		item.element.SetDisplayed(false)
		if len(g.hiddenStyles) > 0 {
			child.SetStyles(g.hiddenStyles)
		}
	} else {
		item.element.AddClass(g.itemVisibleClass)
		item.element.SetDisplayed(true)
		if len(g.visibleStyles) > 0 {
			child.SetStyles(g.visibleStyles)
		}
	}
	return v, nil
}

// IsHidden reports whether the item is hidden or becoming hidden.
func (v *Visibility) IsHidden() bool {
	return v.hidden
}

// IsShowing reports whether a show transition is in flight.
func (v *Visibility) IsShowing() bool {
	return v.showing
}

// IsHiding reports whether a hide transition is in flight.
func (v *Visibility) IsHiding() bool {
	return v.hiding
}

// IsDestroyed reports whether the state machine is terminally inert.
func (v *Visibility) IsDestroyed() bool {
	return v.destroyed
}

// Show requests the visible state.
//
// Already visible: onFinish fires synchronously with interrupted=false.
// Already showing (non-instant): onFinish joins the pending completion
// queue and no new animation starts. Otherwise any prior waiters are
// burst as interrupted, the visible class is applied, and a fresh
// transition is driven through the ticker. A nil onFinish just drives
// the transition.
func (v *Visibility) Show(instant bool, onFinish Listener) {
	if v.destroyed {
		return
	}
	item := v.item
	g := item.grid

	if !v.showing && !v.hidden {
		if onFinish != nil {
			onFinish(false, item)
		}
		return
	}
	if v.showing && !instant {
		g.emitter.On(v.key, onFinish)
		return
	}

	if !v.showing {
		g.emitter.Burst(v.key, true, item)
		item.element.RemoveClass(g.itemHiddenClass)
		item.element.AddClass(g.itemVisibleClass)
		// Mid-hide the element is still displayed; only a finished hide
		// suppresses display, so there is nothing to undo here.
		if !v.hiding {
			item.element.SetDisplayed(true)
		}
	}
	g.emitter.On(v.key, onFinish)

	v.showing = true
	v.hidden = false
	v.hiding = false
	item.active = true
	v.startAnimation(true, instant, v.finishShow)
}

// Hide requests the hidden state. Symmetric to Show; on natural
// completion it additionally cancels any in-flight layout animation at
// zero duration and suppresses the element's display.
func (v *Visibility) Hide(instant bool, onFinish Listener) {
	if v.destroyed {
		return
	}
	item := v.item
	g := item.grid

	if !v.hiding && v.hidden {
		if onFinish != nil {
			onFinish(false, item)
		}
		return
	}
	if v.hiding && !instant {
		g.emitter.On(v.key, onFinish)
		return
	}

	if !v.hiding {
		g.emitter.Burst(v.key, true, item)
		item.element.AddClass(g.itemHiddenClass)
		item.element.RemoveClass(g.itemVisibleClass)
	}
	g.emitter.On(v.key, onFinish)

	v.hiding = true
	v.hidden = true
	v.showing = false
	item.active = false
	v.startAnimation(false, instant, v.finishHide)
}

// Stop cancels the pending ticker registration and halts the animation
// primitive. When processQueue is set, pending waiters are burst as
// interrupted. A no-op unless a transition is in flight.
func (v *Visibility) Stop(processQueue bool) {
	if v.destroyed {
		return
	}
	if !v.hiding && !v.showing {
		return
	}
	item := v.item
	g := item.grid
	g.ticker.Cancel(v.key)
	v.animator.Stop()
	if processQueue {
		g.emitter.Burst(v.key, true, item)
	}
}

// Destroy forces the terminal state: hidden, not transitioning,
// permanently inert. Pending waiters are dropped without firing, classes
// are removed, and display suppression is released so the element is
// handed back in its natural state.
func (v *Visibility) Destroy() {
	if v.destroyed {
		return
	}
	item := v.item
	g := item.grid
	g.ticker.Cancel(v.key)
	v.animator.Stop()
	g.emitter.Clear(v.key)
	item.element.RemoveClass(g.itemVisibleClass)
	item.element.RemoveClass(g.itemHiddenClass)
	item.element.SetDisplayed(true)
	v.hiding = false
	v.showing = false
	v.hidden = true
	v.destroyed = true
}

// finishShow settles a show transition. Skipped when a hide superseded
// the show between animation start and completion.
func (v *Visibility) finishShow() {
	if v.hiding {
		return
	}
	v.showing = false
	v.item.grid.emitter.Burst(v.key, false, v.item)
}

// finishHide settles a hide transition: a hidden item's position is
// irrelevant, so the layout handler is cancelled at zero duration before
// display is suppressed.
func (v *Visibility) finishHide() {
	if !v.hidden {
		return
	}
	item := v.item
	v.hiding = false
	item.layout.stop(true)
	item.element.SetDisplayed(false)
	item.grid.emitter.Burst(v.key, false, item)
}

// startAnimation drives one transition toward the visible or hidden
// style set. onDone is the internal finish handler for the natural
// completion paths.
func (v *Visibility) startAnimation(toVisible, instant bool, onDone func()) {
	item := v.item
	g := item.grid

	var target Style
	var duration time.Duration
	var easing Easing
	if toVisible {
		target, duration, easing = g.visibleStyles, g.showDuration, g.showEasing
	} else {
		target, duration, easing = g.hiddenStyles, g.hideDuration, g.hideEasing
	}

	// No target styles: the transition is a state change only.
	if len(target) == 0 {
		v.animator.Stop()
		onDone()
		return
	}

	// Supersede a still-pending read/write pair for this item.
	g.ticker.Cancel(v.key)

	if instant || duration <= 0 {
		v.animator.Stop()
		v.childEl.SetStyles(target)
		onDone()
		return
	}

	// Keep an in-flight run going visually, but suppress its stale
	// completion signal; only the new run may settle the queue.
	if v.animator.Running() {
		v.animator.ClearFinish()
	}

	if g.windowing {
		g.dimensionsNeedRefresh = true
	}

	g.ticker.Schedule(PhaseRead, v.key, func(time.Duration) {
		if v.interrupted(toVisible) {
			return
		}
		v.currentStyles = currentStyles(v.childEl, target)
		v.tx = item.element.Style(StyleTranslateX)
		v.ty = item.element.Style(StyleTranslateY)
		// One fresh container measurement is shared by every item
		// transitioning in this frame.
		if g.windowing && g.dimensionsNeedRefresh {
			g.dimensionsNeedRefresh = false
			g.refreshDimensions()
		}
	})
	g.ticker.Schedule(PhaseWrite, v.key, func(time.Duration) {
		if v.interrupted(toVisible) {
			return
		}
		if g.windowing && v.offscreen(toVisible) {
			debug.Log("visibility: item %d offscreen, skipping %s animation", item.key, transitionName(toVisible))
			v.childEl.SetStyles(target)
			v.animator.Stop()
			onDone()
			return
		}
		v.animator.Start(v.currentStyles, target, AnimationOptions{
			Duration: duration,
			Easing:   easing,
			OnFinish: onDone,
		})
	})
}

// interrupted reports whether the transition that scheduled the current
// tick has been superseded since.
func (v *Visibility) interrupted(toVisible bool) bool {
	if v.destroyed {
		return true
	}
	if toVisible {
		return !v.showing
	}
	return !v.hiding
}

// offscreen judges whether the transition's relevant position is fully
// outside the viewport plus the configured threshold. A showing item is
// judged by where it is going (its post-layout target); a hiding item by
// where it is (its current translate).
func (v *Visibility) offscreen(toVisible bool) bool {
	g := v.item.grid
	if g.viewport == nil {
		return false
	}
	item := v.item

	var x, y float64
	if toVisible {
		x, y = item.left, item.top
	} else {
		x, y = v.tx, v.ty
	}
	itemRect := Rect{
		X:      g.rect.X + item.marginLeft + x,
		Y:      g.rect.Y + item.marginTop + y,
		Width:  item.width,
		Height: item.height,
	}
	return !g.viewport().Expand(g.windowThreshold).Intersects(itemRect)
}

func transitionName(toVisible bool) string {
	if toVisible {
		return "show"
	}
	return "hide"
}
