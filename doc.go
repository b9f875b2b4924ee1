// Package grid provides a frame-phased animation engine for positioning
// and show/hide-transitioning visual items inside a container.
//
// Users import this single package for the complete public API:
// the ticker (read/write frame scheduler), the emitter (keyed one-shot
// completion queues), the debouncer, item visibility state machines, and
// the Grid container that ties them together.
package grid
