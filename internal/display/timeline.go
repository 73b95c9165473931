package display

import (
	"math"
	"sync"
	"time"
)

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// Linear does not ease.
func Linear(t float64) float64 { return clamp01(t) }

// Power2Out decelerates towards the end.
func Power2Out(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// Power2InOut accelerates through the first half and decelerates through the
// second.
func Power2InOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// Timeline drives a render callback from progress 0 to 1 over Duration.
// Play is asynchronous; Reset stops a running play and rewinds without
// drawing.
type Timeline struct {
	Duration time.Duration
	Ease     Easing
	FPS      int
	Render   func(progress float64)

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// Play restarts the timeline from the beginning.
func (tl *Timeline) Play() {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.haltLocked()
	tl.stop = make(chan struct{})
	tl.done = make(chan struct{})
	go tl.run(tl.stop, tl.done)
}

// Reset stops the timeline. It returns once no more frames will be rendered.
func (tl *Timeline) Reset() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.haltLocked()
}

func (tl *Timeline) haltLocked() {
	if tl.stop == nil {
		return
	}
	close(tl.stop)
	<-tl.done
	tl.stop = nil
	tl.done = nil
}

func (tl *Timeline) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ease := tl.Ease
	if ease == nil {
		ease = Linear
	}
	render := func(t float64) {
		if tl.Render != nil {
			tl.Render(ease(t))
		}
	}

	if tl.Duration <= 0 {
		render(1)
		return
	}

	render(0)

	ticker := time.NewTicker(frameInterval(tl.FPS))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t := float64(time.Since(start)) / float64(tl.Duration)
			if t >= 1 {
				render(1)
				return
			}
			render(t)
		}
	}
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}
