package tracker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/2beens/workouttracker/internal/notify"
	"github.com/2beens/workouttracker/internal/preferences"
	"github.com/2beens/workouttracker/internal/workout"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, *testSession) {
	t.Helper()
	s := newTestSession(t, workout.DefaultOptions(), testNow)
	r := mux.NewRouter()
	NewHandler(s.tracker).SetupRoutes(r)
	return r, s
}

func doRequest(t *testing.T, r http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeAction(t *testing.T, rr *httptest.ResponseRecorder) actionResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var resp actionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHandler_State(t *testing.T) {
	r, s := newTestRouter(t)

	rr := doRequest(t, r, "GET", "/state")
	require.Equal(t, http.StatusOK, rr.Code)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, s.tracker.ID(), snap.ID)
	assert.Equal(t, "00:00:00", snap.Timer.Display)
	assert.Equal(t, "push", string(snap.Workout.Category))
	assert.Len(t, snap.Calendar.Cells, 28)
	assert.Equal(t, preferences.ThemeDark, snap.Preferences.Theme)

	rr = doRequest(t, r, "POST", "/state")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandler_Timer(t *testing.T) {
	r, s := newTestRouter(t)

	resp := decodeAction(t, doRequest(t, r, "POST", "/timer/start"))
	assert.True(t, resp.Applied)
	assert.True(t, resp.Snapshot.Timer.Running)

	resp = decodeAction(t, doRequest(t, r, "POST", "/timer/start"))
	assert.False(t, resp.Applied)

	s.sched.Advance(3661 * time.Second)
	resp = decodeAction(t, doRequest(t, r, "POST", "/timer/stop"))
	assert.False(t, resp.Snapshot.Timer.Running)
	assert.Equal(t, "01:01:01", resp.Snapshot.Timer.Display)

	resp = decodeAction(t, doRequest(t, r, "POST", "/timer/reset"))
	assert.Equal(t, 0, resp.Snapshot.Timer.Elapsed)

	resp = decodeAction(t, doRequest(t, r, "POST", "/timer/quickstart"))
	assert.True(t, resp.Snapshot.Timer.Running)
}

func TestHandler_Workout(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := decodeAction(t, doRequest(t, r, "POST", "/workout/complete"))
	assert.True(t, resp.Applied)
	assert.Equal(t, "setCompleted", resp.Outcome)
	assert.True(t, resp.Snapshot.Workout.Resting)

	resp = decodeAction(t, doRequest(t, r, "POST", "/keys/space"))
	assert.False(t, resp.Applied)

	resp = decodeAction(t, doRequest(t, r, "POST", "/workout/next"))
	assert.True(t, resp.Applied)
	assert.Equal(t, 1, resp.Snapshot.Workout.ExerciseIndex)

	resp = decodeAction(t, doRequest(t, r, "POST", "/workout/prev"))
	assert.Equal(t, 0, resp.Snapshot.Workout.ExerciseIndex)

	resp = decodeAction(t, doRequest(t, r, "POST", "/workout/category/pull"))
	assert.Equal(t, "Pull-Up", resp.Snapshot.Workout.Exercise.Name)

	rr := doRequest(t, r, "POST", "/workout/category/arms")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Calendar(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := decodeAction(t, doRequest(t, r, "POST", "/calendar/day/3/toggle"))
	assert.Equal(t, 1, resp.Snapshot.Calendar.Completed)
	assert.True(t, resp.Snapshot.Calendar.Cells[2].Completed)

	rr := doRequest(t, r, "POST", "/calendar/day/4/toggle")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "not a workout day")

	rr = doRequest(t, r, "POST", "/calendar/day/x/toggle")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	resp = decodeAction(t, doRequest(t, r, "POST", "/calendar/week/mark"))
	assert.Equal(t, 4, resp.Snapshot.Calendar.Completed)

	rr = doRequest(t, r, "GET", "/calendar")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"percentage":33`)

	resp = decodeAction(t, doRequest(t, r, "POST", "/calendar/month/prev"))
	assert.Equal(t, "January", resp.Snapshot.Calendar.Month)

	rr = doRequest(t, r, "POST", "/calendar/month/sideways")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_Preferences(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := decodeAction(t, doRequest(t, r, "POST", "/preferences/theme/toggle"))
	assert.Equal(t, preferences.ThemeLight, resp.Snapshot.Preferences.Theme)

	resp = decodeAction(t, doRequest(t, r, "PUT", "/preferences/sound/false"))
	assert.False(t, resp.Snapshot.Preferences.SoundEnabled)

	rr := doRequest(t, r, "PUT", "/preferences/sound/maybe")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Notifications(t *testing.T) {
	r, s := newTestRouter(t)

	s.sched.Tick()
	decodeAction(t, doRequest(t, r, "POST", "/timer/quickstart"))

	rr := doRequest(t, r, "GET", "/notifications")
	require.Equal(t, http.StatusOK, rr.Code)
	var toasts []notify.Toast
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &toasts))
	require.Len(t, toasts, 2)
	assert.Equal(t, "Welcome to Workout Tracker!", toasts[0].Title)
	assert.Equal(t, "Quick Start!", toasts[1].Title)

	rr = doRequest(t, r, "GET", "/notifications?since="+strconv.Itoa(toasts[0].ID))
	require.Equal(t, http.StatusOK, rr.Code)
	toasts = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &toasts))
	require.Len(t, toasts, 1)
	assert.Equal(t, "Quick Start!", toasts[0].Title)

	rr = doRequest(t, r, "GET", "/notifications?since=abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_ClosedSession(t *testing.T) {
	r, s := newTestRouter(t)
	require.NoError(t, s.tracker.Close())

	rr := doRequest(t, r, "POST", "/timer/start")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "session closed"))
}
