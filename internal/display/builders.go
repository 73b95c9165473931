package display

import (
	"strconv"

	"fundraiser-display/internal/goals"
)

// Palette is the color scheme of a goal card.
type Palette int

const (
	// PaletteUnmet marks goals the percentage has not reached yet.
	PaletteUnmet Palette = iota
	// PaletteMet marks goals at or below the current percentage.
	PaletteMet
)

// BackgroundClass is the card background utility class.
func (p Palette) BackgroundClass() string {
	if p == PaletteMet {
		return "bg-lime-500"
	}
	return "bg-rose-700"
}

// TextClass is the badge text utility class.
func (p Palette) TextClass() string {
	if p == PaletteMet {
		return "text-lime-500"
	}
	return "text-rose-700"
}

func (p Palette) String() string {
	if p == PaletteMet {
		return "met"
	}
	return "unmet"
}

// GoalCard is one rendered entry of the goal list.
type GoalCard struct {
	Label   string // target, e.g. "40%"
	Name    string
	Palette Palette
}

// PaletteFor picks the card palette for a goal at the given percentage.
func PaletteFor(percentage, target int) Palette {
	if percentage >= target {
		return PaletteMet
	}
	return PaletteUnmet
}

// BuildGoalList renders the whole goal list from scratch.
func BuildGoalList(list []goals.Goal, percentage int) []GoalCard {
	cards := make([]GoalCard, 0, len(list))
	for _, g := range list {
		cards = append(cards, GoalCard{
			Label:   BuildPercentageText(g.TargetPercentage),
			Name:    g.Name,
			Palette: PaletteFor(percentage, g.TargetPercentage),
		})
	}
	return cards
}

// BuildPercentageText is the literal percentage shown on the bar screen.
func BuildPercentageText(percentage int) string {
	return strconv.Itoa(percentage) + "%"
}
