// Package frame schedules per-frame callbacks.
//
// A [Scheduler] runs a callback once, before the next frame, and hands
// back a [Handle] that can cancel it. Two implementations exist:
//
//   - [Queue]: frames happen when the owner calls Flush (tests, headless
//     runs, bubbletea programs driven by tea.Tick)
//   - [Loop]: a ticker-driven loop that also serializes posted input
//
// # Thread Safety
//
// Callbacks always run on a single goroutine. Queue must only be used from
// one goroutine; Loop accepts work from any goroutine through Post.
package frame
