package display

import (
	"context"
	"time"
)

// Surface is where the display renders. The controller is its only writer.
type Surface interface {
	Canvas

	// SetPercentageText replaces the text shown on the percentage bar screen.
	SetPercentageText(text string)
	// SetGoalList replaces the goal list content.
	SetGoalList(cards []GoalCard)
	// ShowError replaces the whole display with the error screen.
	ShowError()
	// Slide moves the viewport from one screen to another and returns once
	// the transition has finished or ctx is done.
	Slide(ctx context.Context, from, to Screen, opts SlideOptions) error
}

// SlideOptions controls a screen transition.
type SlideOptions struct {
	Duration time.Duration
	Ease     Easing
	FPS      int
}
