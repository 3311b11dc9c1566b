package planner

import "errors"

// Sentinel errors for the planner package.
// The allocator itself never fails; these are for callers that want a
// stricter contract at their input boundary.
var (
	ErrInvalidPriority = errors.New("planner: priority must be 1, 2 or 3")
	ErrInvalidCapacity = errors.New("planner: daily capacity must be positive")
)

// ValidatePriority returns ErrInvalidPriority for values the allocator
// would silently treat as low priority.
func ValidatePriority(p int) error {
	if p < 1 || p > 3 {
		return ErrInvalidPriority
	}
	return nil
}

// ValidateCapacity returns ErrInvalidCapacity for capacities that would
// produce an empty plan.
func ValidateCapacity(hours float64) error {
	if hours <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}
