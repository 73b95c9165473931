package percentage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundraiser-display/internal/apperrors"
)

type fakeStore struct {
	value  int
	getErr error
	sets   int
}

func (f *fakeStore) GetPercentage(context.Context) (int, error) { return f.value, f.getErr }

func (f *fakeStore) SetPercentage(_ context.Context, v int) (int, error) {
	f.sets++
	f.value = v
	return v, nil
}

func TestParse(t *testing.T) {
	for raw, want := range map[string]int{"0": 0, "50": 50, "100": 100, " 7": 7} {
		got, err := Parse(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
	for _, raw := range []string{"", "-1", "101", "5.5", "fifty"} {
		_, err := Parse(raw)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), raw)
	}
}

func TestGetHandler(t *testing.T) {
	w := httptest.NewRecorder()
	GetHandler(&fakeStore{value: 64})(w, httptest.NewRequest(http.MethodGet, "/percentage", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"percentage":64}`, w.Body.String())

	w = httptest.NewRecorder()
	GetHandler(&fakeStore{getErr: errors.New("boom")})(w, httptest.NewRequest(http.MethodGet, "/percentage", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSetHandler(t *testing.T) {
	store := &fakeStore{}

	r := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/percentage/88", nil), map[string]string{"percentage": "88"})
	w := httptest.NewRecorder()
	SetHandler(store)(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"percentage":88}`, w.Body.String())

	r = mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/percentage/150", nil), map[string]string{"percentage": "150"})
	w = httptest.NewRecorder()
	SetHandler(store)(w, r)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 1, store.sets, "invalid values never reach the store")
	assert.Equal(t, 88, store.value)
}
