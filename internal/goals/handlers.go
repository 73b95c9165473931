package goals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fundraiser-display/internal/audit"
	"fundraiser-display/internal/server/response"
)

const maxBodyBytes = 1 << 20

// ListGoalsHandler serves GET /goals.
func ListGoalsHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListGoals(r.Context())
		if err != nil {
			response.InternalError(w, r, err)
			return
		}
		if list == nil {
			list = []Goal{}
		}
		response.OK(w, list)
	}
}

// CreateGoalHandler serves POST /goals.
func CreateGoalHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var body createRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.BadRequest(w, "request body too large", "")
				return
			}
			response.BadRequest(w, "invalid json", err.Error())
			return
		}

		in, err := body.validate()
		if err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		g, err := store.CreateGoal(r.Context(), in)
		if err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		// Name length only; the name itself stays out of the logs.
		audit.Log(r.Context(), audit.FromRequest(r), audit.GoalCreated, map[string]any{
			"goal_id":           g.ID,
			"name_len":          len(g.Name),
			"target_percentage": g.TargetPercentage,
		}, audit.SourceEventKeyFromRequest(r))

		response.Created(w, g)
	}
}

// DeleteGoalHandler serves DELETE /goals/{id}.
func DeleteGoalHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := mux.Vars(r)["id"]
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.BadRequest(w, "invalid goal id", raw)
			return
		}

		if err := store.DeleteGoal(r.Context(), id); err != nil {
			response.ErrorFromType(w, r, err)
			return
		}

		audit.Log(r.Context(), audit.FromRequest(r), audit.GoalDeleted, map[string]any{
			"goal_id": id,
		}, audit.SourceEventKeyFromRequest(r))

		response.OK(w, map[string]any{
			"deleted": true,
			"id":      id,
		})
	}
}
