// Package planner allocates a learner's weekly study workload.
//
// The package is pure computation: callers pass in subjects, a daily
// capacity and "today", and get back a ranking, a WeeklyPlan or a
// progress Report. Nothing here touches storage or reads the clock.
//
// The flow is Rank, then Allocate:
//
//	ranked := planner.Rank(subjects, today)
//	plan := planner.Allocate(ranked, 5.0)
//	sessions := plan.Sessions("2025-06-02")
//
// Allocation is a single greedy pass over a Monday..Sunday grid. Each
// subject is cut into blocks no larger than its priority's cap, days fill
// up to the daily capacity, and any workload that does not fit before
// Sunday is left unscheduled.
package planner
