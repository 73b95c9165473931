package display

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
)

const (
	// DefaultWidth is the terminal width in columns.
	DefaultWidth = 80

	clearScreen = "\x1b[H\x1b[2J"

	headline    = "Help us reach our goal!"
	subheadline = "Every donation moves the bar."
	errorText   = "Error loading data. Please try again later."
)

// TerminalOptions configures a Terminal.
type TerminalOptions struct {
	Width   int
	NoColor bool
}

// Terminal is a Surface that draws full frames to a text terminal.
type Terminal struct {
	mu    sync.Mutex
	out   io.Writer
	width int

	accent *color.Color
	met    *color.Color
	unmet  *color.Color
	alert  *color.Color

	percentageText string
	cards          []GoalCard
	errorShown     bool
	// barFill is the fill last drawn on the percentage bar screen.
	barFill float64
}

// NewTerminal returns a terminal surface writing to out.
func NewTerminal(out io.Writer, opts TerminalOptions) *Terminal {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	t := &Terminal{
		out:    out,
		width:  width,
		accent: color.New(color.FgCyan, color.Bold),
		met:    color.New(color.FgHiGreen, color.Bold),
		unmet:  color.New(color.FgRed, color.Bold),
		alert:  color.New(color.FgWhite, color.BgRed, color.Bold),
	}
	for _, c := range []*color.Color{t.accent, t.met, t.unmet, t.alert} {
		if opts.NoColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return t
}

func (t *Terminal) SetPercentageText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.percentageText = text
}

func (t *Terminal) SetGoalList(cards []GoalCard) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cards = append([]GoalCard(nil), cards...)
}

// ShowError draws the error screen. Nothing else is drawn afterwards.
func (t *Terminal) ShowError() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.errorShown = true
	t.writeFrame([]string{"", t.alert.Sprint(" " + errorText + " ")})
}

func (t *Terminal) DrawCallToAction(progress float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.errorShown {
		return
	}

	n := int(math.Round(clamp01(progress) * float64(utf8.RuneCountInString(headline))))
	lines := []string{"", t.accent.Sprint(string([]rune(headline)[:n]))}
	if progress >= 1 {
		lines = append(lines, subheadline)
	}
	t.writeFrame(lines)
}

func (t *Terminal) DrawPercentageBar(fill float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.errorShown {
		return
	}
	t.barFill = fill
	t.writeFrame([]string{"", t.accent.Sprint(t.bar(fill)) + " " + t.percentageText})
}

func (t *Terminal) DrawGoalList(visible int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.errorShown {
		return
	}

	visible = min(max(visible, 0), len(t.cards))
	lines := []string{""}
	for _, card := range t.cards[:visible] {
		c := t.unmet
		if card.Palette == PaletteMet {
			c = t.met
		}
		lines = append(lines, c.Sprintf("%5s", card.Label)+"  "+card.Name)
	}
	t.writeFrame(lines)
}

// Slide renders the transition as a window moving over the three screens
// laid out side by side.
func (t *Terminal) Slide(ctx context.Context, from, to Screen, opts SlideOptions) error {
	t.mu.Lock()
	shown := t.errorShown
	t.mu.Unlock()
	if shown {
		return nil
	}

	ease := opts.Ease
	if ease == nil {
		ease = Linear
	}
	// Leaving the bar screen shows the bar as it was last drawn; any other
	// slide shows it empty.
	var fill float64
	if from == PercentageBar {
		t.mu.Lock()
		fill = t.barFill
		t.mu.Unlock()
	}

	start := float64(int(from) * t.width)
	end := float64(int(to) * t.width)
	draw := func(p float64) {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.writeFrame(t.window(int(math.Round(start+(end-start)*ease(p))), fill))
	}

	if opts.Duration <= 0 {
		draw(1)
		return nil
	}

	ticker := time.NewTicker(frameInterval(opts.FPS))
	defer ticker.Stop()

	began := time.Now()
	draw(0)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p := float64(time.Since(began)) / float64(opts.Duration)
			if p >= 1 {
				draw(1)
				return nil
			}
			draw(p)
		}
	}
}

// window cuts width columns starting at offset out of the uncolored strip of
// all screens.
func (t *Terminal) window(offset int, barFill float64) []string {
	var screens [ScreenCount][]string
	rows := 0
	for s := range ScreenCount {
		screens[s] = t.plainScreen(Screen(s), barFill)
		rows = max(rows, len(screens[s]))
	}

	lines := make([]string, rows)
	for row := range rows {
		var strip []rune
		for s := range ScreenCount {
			line := ""
			if row < len(screens[s]) {
				line = screens[s][row]
			}
			strip = append(strip, []rune(t.pad(line))...)
		}
		lo := min(max(offset, 0), len(strip))
		hi := min(lo+t.width, len(strip))
		lines[row] = strings.TrimRight(string(strip[lo:hi]), " ")
	}
	return lines
}

func (t *Terminal) plainScreen(s Screen, barFill float64) []string {
	switch s {
	case CallToAction:
		return []string{"", headline, subheadline}
	case PercentageBar:
		return []string{"", t.bar(barFill) + " " + t.percentageText}
	default:
		lines := []string{""}
		for _, card := range t.cards {
			lines = append(lines, fmt.Sprintf("%5s  %s", card.Label, card.Name))
		}
		return lines
	}
}

func (t *Terminal) bar(fill float64) string {
	inner := max(t.width-12, 10)
	n := int(math.Round(clamp01(fill) * float64(inner)))
	return "[" + strings.Repeat("#", n) + strings.Repeat(" ", inner-n) + "]"
}

// pad truncates or right-pads line to exactly the terminal width.
func (t *Terminal) pad(line string) string {
	r := []rune(line)
	if len(r) >= t.width {
		return string(r[:t.width])
	}
	return line + strings.Repeat(" ", t.width-len(r))
}

func (t *Terminal) writeFrame(lines []string) {
	_, _ = io.WriteString(t.out, clearScreen+strings.Join(lines, "\n")+"\n")
}
