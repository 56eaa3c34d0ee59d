// Package generate builds traces from a planning problem.
//
// Random samples applicable operators uniformly; GoalSampler follows plans
// obtained from a ports.Planner, enforcing plan uniqueness under a time
// budget. Both are single-threaded: the only goroutines are the cancellable
// workers started by Run to bound plan search and trace materialization.
package generate
