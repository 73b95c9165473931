// Package display runs the fundraiser kiosk: it loads goals and the current
// percentage from the data service and rotates three screens forever.
//
// The controller owns all mutable state. Screens draw through a Surface, so
// the rotation logic does not depend on where the pixels end up.
package display

import "fundraiser-display/internal/goals"

// Screen identifies one of the three rotating screens.
type Screen int

const (
	CallToAction Screen = iota
	PercentageBar
	GoalList

	// ScreenCount is the length of one rotation cycle.
	ScreenCount = 3
)

// Next returns the screen shown after s; the cycle wraps to CallToAction.
func (s Screen) Next() Screen {
	return (s + 1) % ScreenCount
}

func (s Screen) String() string {
	switch s {
	case CallToAction:
		return "call-to-action"
	case PercentageBar:
		return "percentage-bar"
	case GoalList:
		return "goal-list"
	default:
		return "unknown"
	}
}

// State is the client-side data the controller works from.
type State struct {
	CurrentScreen Screen
	Goals         []goals.Goal
	Percentage    int
}
