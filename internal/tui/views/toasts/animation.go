package toasts

import (
	"math"

	"github.com/colonyops/toast/internal/core/notify"
)

// phase is where a displayed toast is in its enter/exit lifecycle.
type phase int

const (
	phaseEntering phase = iota
	phaseVisible
	phaseExiting
	phaseCollapsing
	phaseGone
)

func (p phase) String() string {
	switch p {
	case phaseEntering:
		return "entering"
	case phaseVisible:
		return "visible"
	case phaseExiting:
		return "exiting"
	case phaseCollapsing:
		return "collapsing"
	default:
		return "gone"
	}
}

// item is a toast on screen. Items outlive their notification: once the
// store drops it, the item plays its exit and collapse frames and is then
// unmounted.
type item struct {
	n      notify.Notification
	phase  phase
	frame  int
	height int // full height in lines, captured when the exit starts
}

// live reports whether the notification is still active in the store as far
// as the view knows.
func (it *item) live() bool {
	return it.phase == phaseEntering || it.phase == phaseVisible
}

// progress returns how visible the toast is, from 0 (hidden, fully slid out)
// to 1 (fully shown).
func (it *item) progress(a timing) float64 {
	switch it.phase {
	case phaseEntering:
		return float64(it.frame) / float64(a.enterFrames)
	case phaseVisible:
		return 1
	case phaseExiting:
		return 1 - float64(it.frame)/float64(a.exitFrames)
	default:
		return 0
	}
}

// collapsedHeight returns the number of lines the item still occupies while
// collapsing. Siblings below move up by one line per frame.
func (it *item) collapsedHeight() int {
	return max(it.height-it.frame, 0)
}

// startExit switches a live item to exiting. An item interrupted while
// entering continues from its current visibility instead of jumping.
func (it *item) startExit(a timing, height int) {
	p := it.progress(a)
	it.phase = phaseExiting
	it.frame = a.exitFrames - int(math.Round(p*float64(a.exitFrames)))
	it.height = height
	if it.frame >= a.exitFrames {
		it.phase = phaseCollapsing
		it.frame = 0
	}
}

// step advances the item by one frame.
func (it *item) step(a timing) {
	switch it.phase {
	case phaseEntering:
		it.frame++
		if it.frame >= a.enterFrames {
			it.phase = phaseVisible
			it.frame = 0
		}
	case phaseExiting:
		it.frame++
		if it.frame >= a.exitFrames {
			it.phase = phaseCollapsing
			it.frame = 0
		}
	case phaseCollapsing:
		it.frame++
		if it.frame >= it.height {
			it.phase = phaseGone
		}
	}
}

// timing holds the frame counts for enter and exit transitions.
type timing struct {
	enterFrames int
	exitFrames  int
}
