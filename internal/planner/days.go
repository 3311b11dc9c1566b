package planner

import "math"

// DaysPerWeek is the fixed length of a plan.
const DaysPerWeek = 7

// Days are the weekday labels of a plan, in allocation order.
var Days = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayIndex returns the position of name in Days, or -1.
func DayIndex(name string) int {
	for i, d := range Days {
		if d == name {
			return i
		}
	}
	return -1
}

// round1 rounds to one decimal place, half away from zero.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
