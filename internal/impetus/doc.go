// Package impetus attaches inertial drag behaviour to a pointer source.
//
// A [Controller] tracks one pointer contact at a time. While the pointer is
// down the target follows it; on release the target keeps moving with
// decaying velocity and, if configured, bounces back into its bounds.
//
// # Example
//
//	opts := impetus.DefaultOptions()
//	opts.Selector = "#canvas"
//	opts.BoundX = motion.NewRange(0, 400)
//	opts.OnUpdate = func(x, y float64) { render(x, y) }
//	c, err := impetus.New(opts)
//
// # Thread Safety
//
// A Controller is NOT safe for concurrent use. Pointer events, frame
// callbacks and API calls must all happen on the goroutine that dispatches
// the frame scheduler (see [frame.Loop.Post]).
package impetus
