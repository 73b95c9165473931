package goals

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"fundraiser-display/internal/apperrors"
)

const maxNameLength = 255

// Goal is a named fundraising milestone. Goals are created and deleted but
// never edited.
type Goal struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	TargetPercentage int    `json:"targetPercentage"`
}

// NewGoal is a validated creation request.
type NewGoal struct {
	Name             string
	TargetPercentage int
}

// Store persists goals. ListGoals returns them in insertion order and never
// returns a nil slice; DeleteGoal returns an *apperrors.NotFoundError for an
// unknown id.
type Store interface {
	ListGoals(ctx context.Context) ([]Goal, error)
	CreateGoal(ctx context.Context, g NewGoal) (Goal, error)
	DeleteGoal(ctx context.Context, id int64) error
}

// createRequest is the POST /goals body. targetPercentage is kept raw so
// numeric strings ("40") are accepted alongside JSON numbers.
type createRequest struct {
	Name             string          `json:"name"`
	TargetPercentage json.RawMessage `json:"targetPercentage"`
}

func (req createRequest) validate() (NewGoal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return NewGoal{}, apperrors.NewValidationError("name", req.Name, "is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return NewGoal{}, apperrors.NewValidationError("name", req.Name, "may not be longer than 255 characters")
	}

	target, err := parseTarget(req.TargetPercentage)
	if err != nil {
		return NewGoal{}, err
	}
	return NewGoal{Name: name, TargetPercentage: target}, nil
}

// Validate checks g the same way the HTTP layer does, for stores that are
// called directly.
func (g NewGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return apperrors.NewValidationError("name", g.Name, "is required")
	}
	if utf8.RuneCountInString(g.Name) > maxNameLength {
		return apperrors.NewValidationError("name", g.Name, "may not be longer than 255 characters")
	}
	if g.TargetPercentage < 0 || g.TargetPercentage > 100 {
		return apperrors.NewValidationError("targetPercentage", g.TargetPercentage, "must be between 0 and 100")
	}
	return nil
}

func parseTarget(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, apperrors.NewValidationError("targetPercentage", nil, "is required")
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, apperrors.NewValidationError("targetPercentage", string(raw), "must be numeric")
		}
		text = strings.TrimSpace(text)
	} else {
		text = string(raw)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apperrors.NewValidationError("targetPercentage", text, "must be numeric")
	}
	if f != math.Trunc(f) {
		return 0, apperrors.NewValidationError("targetPercentage", f, "must be a whole number")
	}
	if f < 0 || f > 100 {
		return 0, apperrors.NewValidationError("targetPercentage", f, "must be between 0 and 100")
	}
	return int(f), nil
}
