// Package sched provides cancelable one-shot task scheduling.
//
// Callers schedule work through a Scheduler and keep the returned Task so the
// work can be canceled before it runs. Real is backed by the runtime timer;
// Manual is a virtual clock for deterministic tests.
package sched

import "time"

// Task is a handle to a scheduled callback.
type Task interface {
	// Stop cancels the task. It reports whether the call prevented the
	// callback from running; a false result means the callback already ran,
	// is running, or was stopped earlier.
	Stop() bool
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// Real schedules tasks with time.AfterFunc.
type Real struct{}

// AfterFunc implements Scheduler.
func (Real) AfterFunc(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}
