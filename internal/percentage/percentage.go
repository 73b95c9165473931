// Package percentage serves the single, process-wide progress value.
package percentage

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"fundraiser-display/internal/apperrors"
	"fundraiser-display/internal/audit"
	"fundraiser-display/internal/server/response"
)

// Default is reported until the value is first set.
const Default = 0

// Value is the wire shape of the percentage.
type Value struct {
	Percentage int `json:"percentage"`
}

// Store holds the singleton. GetPercentage returns Default when nothing was
// ever stored; SetPercentage overwrites and returns the stored value.
type Store interface {
	GetPercentage(ctx context.Context) (int, error)
	SetPercentage(ctx context.Context, v int) (int, error)
}

// Validate reports whether v is a storable percentage.
func Validate(v int) error {
	if v < 0 || v > 100 {
		return apperrors.NewValidationError("percentage", v, "must be between 0 and 100")
	}
	return nil
}

// Parse converts the path segment of POST /percentage/{percentage}.
func Parse(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperrors.NewValidationError("percentage", raw, "must be an integer")
	}
	if err := Validate(v); err != nil {
		return 0, err
	}
	return v, nil
}

// GetHandler serves GET /percentage.
func GetHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := store.GetPercentage(r.Context())
		if err != nil {
			response.InternalError(w, r, err)
			return
		}
		response.OK(w, Value{Percentage: v})
	}
}

// SetHandler serves POST /percentage/{percentage}.
func SetHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := Parse(mux.Vars(r)["percentage"])
		if err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		stored, err := store.SetPercentage(r.Context(), v)
		if err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		audit.Log(r.Context(), audit.FromRequest(r), audit.PercentageSet, map[string]any{
			"percentage": stored,
		}, audit.SourceEventKeyFromRequest(r))

		response.OK(w, Value{Percentage: stored})
	}
}
