// Package trajectory generates smooth, time-parameterized motion setpoints
// between sparse goal updates from a motion planner.
//
// A control cycle calls Interpolator.Update once when a new goal is accepted
// and Interpolator.Evaluate once per tick until the next goal. Update solves
// all boundary-value problems up front; Evaluate only samples polynomials,
// quaternions and cosine ramps, allocation-free.
//
// No kinematics are considered: joint limits and reachability are the
// planner's problem, not this package's.
package trajectory
