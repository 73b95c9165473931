package display

import (
	"math"
	"time"
)

// Animation is the intro animation of one screen.
type Animation interface {
	Play()
	Reset()
}

// Canvas is what screen animations draw on.
type Canvas interface {
	DrawCallToAction(progress float64)
	// DrawPercentageBar draws the bar filled to fill (0..1 of full width).
	DrawPercentageBar(fill float64)
	// DrawGoalList draws the first visible goal cards.
	DrawGoalList(visible int)
}

// Screen animation timings.
const (
	callToActionDuration  = 1500 * time.Millisecond
	percentageBarDuration = 2 * time.Second
	goalListDuration      = 1200 * time.Millisecond
)

// CallToActionScreen types the headline in.
type CallToActionScreen struct {
	*Timeline
}

func NewCallToActionScreen(c Canvas, fps int) *CallToActionScreen {
	return &CallToActionScreen{Timeline: &Timeline{
		Duration: callToActionDuration,
		Ease:     Power2Out,
		FPS:      fps,
		Render:   c.DrawCallToAction,
	}}
}

// PercentageBarScreen grows the bar from empty to the current percentage.
type PercentageBarScreen struct {
	*Timeline
}

func NewPercentageBarScreen(c Canvas, percentage, fps int) *PercentageBarScreen {
	target := float64(percentage) / 100
	return &PercentageBarScreen{
		Timeline: &Timeline{
			Duration: percentageBarDuration,
			Ease:     Power2InOut,
			FPS:      fps,
			Render: func(p float64) {
				c.DrawPercentageBar(p * target)
			},
		},
	}
}

// GoalListScreen reveals the goal cards one after another.
type GoalListScreen struct {
	*Timeline
}

func NewGoalListScreen(c Canvas, count, fps int) *GoalListScreen {
	return &GoalListScreen{
		Timeline: &Timeline{
			Duration: goalListDuration,
			Ease:     Power2Out,
			FPS:      fps,
			Render: func(p float64) {
				c.DrawGoalList(int(math.Ceil(p * float64(count))))
			},
		},
	}
}

// NewScreens builds the three screen animations in rotation order.
func NewScreens(c Canvas, percentage, goalCount, fps int) [ScreenCount]Animation {
	return [ScreenCount]Animation{
		CallToAction:  NewCallToActionScreen(c, fps),
		PercentageBar: NewPercentageBarScreen(c, percentage, fps),
		GoalList:      NewGoalListScreen(c, goalCount, fps),
	}
}
