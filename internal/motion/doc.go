// Package motion implements the inertial drag motion model.
//
// The package is pure arithmetic over value types and holds no scheduling
// or input state:
//
//   - [TrackingWindow]: recent pointer samples used to estimate release velocity
//   - [Evaluate], [Clamp], [DragDamping]: axis bounds policy
//   - [Integrator]: drag and deceleration steps
//
// # Example
//
//	w := motion.NewTrackingWindow()
//	w.Add(0, 0, t0)
//	w.Add(100, 0, t0.Add(50*time.Millisecond))
//	v := w.Velocity(1) // {30, 0}
//
//	integ := motion.NewIntegrator(1, motion.DefaultFriction, true)
//	step := integ.Decel(p, v, bounds)
package motion
