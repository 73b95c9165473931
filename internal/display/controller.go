package display

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"fundraiser-display/internal/goals"
)

// Defaults for Config.
const (
	DefaultInterval      = 8000 * time.Millisecond
	DefaultSlideDuration = time.Second
	DefaultFPS           = 30
)

// Ticker is the rotation clock.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ *time.Ticker }

func (t realTicker) C() <-chan time.Time { return t.Ticker.C }

func newRealTicker(d time.Duration) Ticker { return realTicker{time.NewTicker(d)} }

// Config tunes the rotation. Zero values fall back to the defaults.
type Config struct {
	Interval      time.Duration
	SlideDuration time.Duration
	FPS           int

	// NewTicker overrides the rotation clock.
	NewTicker func(time.Duration) Ticker
	// NewScreens overrides how the screen animations are built.
	NewScreens func(c Canvas, percentage, goalCount, fps int) [ScreenCount]Animation
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.SlideDuration <= 0 {
		c.SlideDuration = DefaultSlideDuration
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	if c.NewTicker == nil {
		c.NewTicker = newRealTicker
	}
	if c.NewScreens == nil {
		c.NewScreens = NewScreens
	}
	return c
}

// Controller bootstraps the display and drives the screen rotation.
type Controller struct {
	api     Fetcher
	surface Surface
	cfg     Config
	logger  *zerolog.Logger

	mu    sync.RWMutex
	state State
}

// NewController wires a controller. A nil logger discards output.
func NewController(api Fetcher, surface Surface, cfg Config, logger *zerolog.Logger) *Controller {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Controller{
		api:     api,
		surface: surface,
		cfg:     cfg.withDefaults(),
		logger:  logger,
	}
}

// State returns a snapshot of the controller state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.state
	s.Goals = append([]goals.Goal(nil), c.state.Goals...)
	return s
}

type slideResult struct {
	to  Screen
	err error
}

// Run loads the data, shows the first screen and rotates until ctx is done.
// When loading fails the error screen is shown, no animation ever plays and
// Run returns an error wrapping ErrLoadFailed.
func (c *Controller) Run(ctx context.Context) error {
	data, err := Load(ctx, c.api, c.logger)
	if err != nil {
		c.surface.ShowError()
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	c.surface.SetPercentageText(BuildPercentageText(data.Percentage))
	c.surface.SetGoalList(BuildGoalList(data.Goals, data.Percentage))
	screens := c.cfg.NewScreens(c.surface, data.Percentage, len(data.Goals), c.cfg.FPS)
	defer resetAll(screens)

	c.mu.Lock()
	c.state = State{
		CurrentScreen: CallToAction,
		Goals:         data.Goals,
		Percentage:    data.Percentage,
	}
	c.mu.Unlock()

	c.logger.Info().
		Int("goals", len(data.Goals)).
		Int("percentage", data.Percentage).
		Msg("display loaded")

	screens[CallToAction].Play()

	ticker := c.cfg.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	opts := SlideOptions{
		Duration: c.cfg.SlideDuration,
		Ease:     Power2InOut,
		FPS:      c.cfg.FPS,
	}
	slideDone := make(chan slideResult, 1)
	sliding := false

	for {
		select {
		case <-ctx.Done():
			if sliding {
				<-slideDone
			}
			return nil

		case <-ticker.C():
			if sliding {
				c.logger.Debug().Msg("slide still running, tick dropped")
				continue
			}
			c.mu.Lock()
			from := c.state.CurrentScreen
			to := from.Next()
			c.state.CurrentScreen = to
			c.mu.Unlock()

			sliding = true
			go func() {
				slideDone <- slideResult{to: to, err: c.surface.Slide(ctx, from, to, opts)}
			}()

		case res := <-slideDone:
			sliding = false
			if res.err != nil {
				if ctx.Err() != nil {
					return nil
				}
				c.logger.Warn().Err(res.err).Stringer("screen", res.to).Msg("slide failed")
			}
			resetAll(screens)
			screens[res.to].Play()
		}
	}
}

func resetAll(screens [ScreenCount]Animation) {
	for _, a := range screens {
		a.Reset()
	}
}
