package tracker

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/workouttracker/internal/calendar"
	"github.com/2beens/workouttracker/internal/exercises"
	"github.com/2beens/workouttracker/internal/workout"
	"github.com/2beens/workouttracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tracker *Tracker
}

func NewHandler(tracker *Tracker) *Handler {
	return &Handler{
		tracker: tracker,
	}
}

// SetupRoutes registers the tracker API on the router. Mutating routes are
// returned separately so the server can put a rate limiter in front of them.
func (handler *Handler) SetupRoutes(r *mux.Router) *mux.Router {
	r.HandleFunc("/state", handler.HandleState).Methods("GET")
	r.HandleFunc("/calendar", handler.HandleCalendar).Methods("GET")
	r.HandleFunc("/notifications", handler.HandleNotifications).Methods("GET")

	actions := r.NewRoute().Subrouter()
	actions.HandleFunc("/timer/start", handler.HandleTimerStart).Methods("POST")
	actions.HandleFunc("/timer/stop", handler.HandleTimerStop).Methods("POST")
	actions.HandleFunc("/timer/reset", handler.HandleTimerReset).Methods("POST")
	actions.HandleFunc("/timer/quickstart", handler.HandleQuickStart).Methods("POST")
	actions.HandleFunc("/workout/complete", handler.HandleCompleteSet).Methods("POST")
	actions.HandleFunc("/workout/next", handler.HandleNext).Methods("POST")
	actions.HandleFunc("/workout/prev", handler.HandlePrev).Methods("POST")
	actions.HandleFunc("/workout/category/{category}", handler.HandleCategory).Methods("POST")
	actions.HandleFunc("/calendar/day/{day}/toggle", handler.HandleToggleDay).Methods("POST")
	actions.HandleFunc("/calendar/month/{direction:next|prev}", handler.HandleChangeMonth).Methods("POST")
	actions.HandleFunc("/calendar/week/mark", handler.HandleMarkWeek).Methods("POST")
	actions.HandleFunc("/preferences/theme/toggle", handler.HandleToggleTheme).Methods("POST")
	actions.HandleFunc("/preferences/sound/{enabled}", handler.HandleSetSound).Methods("PUT")
	actions.HandleFunc("/keys/{key}", handler.HandleKey).Methods("POST")

	return actions
}

type actionResponse struct {
	Applied  bool     `json:"applied"`
	Outcome  string   `json:"outcome,omitempty"`
	Snapshot Snapshot `json:"snapshot"`
}

func (handler *Handler) writeSnapshot(w http.ResponseWriter, r *http.Request, applied bool, outcome string) {
	snap, err := handler.tracker.Snapshot(r.Context())
	if err != nil {
		handler.writeError(w, "get snapshot", err)
		return
	}
	pkg.WriteJSONResponseOK(w, actionResponse{
		Applied:  applied,
		Outcome:  outcome,
		Snapshot: snap,
	})
}

func (handler *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, calendar.ErrNotWorkoutDay),
		errors.Is(err, calendar.ErrInvalidDirection),
		errors.Is(err, exercises.ErrUnknownCategory):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrClosed):
		http.Error(w, "session closed", http.StatusServiceUnavailable)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (handler *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	snap, err := handler.tracker.Snapshot(r.Context())
	if err != nil {
		handler.writeError(w, "get state", err)
		return
	}
	pkg.WriteJSONResponseOK(w, snap)
}

func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	view, err := handler.tracker.Calendar(r.Context())
	if err != nil {
		handler.writeError(w, "get calendar", err)
		return
	}
	pkg.WriteJSONResponseOK(w, view)
}

func (handler *Handler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	since := 0
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		var err error
		since, err = strconv.Atoi(sinceStr)
		if err != nil || since < 0 {
			http.Error(w, "error, since invalid", http.StatusBadRequest)
			return
		}
	}
	pkg.WriteJSONResponseOK(w, handler.tracker.Feed().Since(since))
}

func (handler *Handler) HandleTimerStart(w http.ResponseWriter, r *http.Request) {
	started, err := handler.tracker.StartTimer()
	if err != nil {
		handler.writeError(w, "start timer", err)
		return
	}
	handler.writeSnapshot(w, r, started, "")
}

func (handler *Handler) HandleTimerStop(w http.ResponseWriter, r *http.Request) {
	if err := handler.tracker.StopTimer(); err != nil {
		handler.writeError(w, "stop timer", err)
		return
	}
	handler.writeSnapshot(w, r, true, "")
}

func (handler *Handler) HandleTimerReset(w http.ResponseWriter, r *http.Request) {
	if err := handler.tracker.ResetTimer(); err != nil {
		handler.writeError(w, "reset timer", err)
		return
	}
	handler.writeSnapshot(w, r, true, "")
}

func (handler *Handler) HandleQuickStart(w http.ResponseWriter, r *http.Request) {
	if err := handler.tracker.QuickStart(); err != nil {
		handler.writeError(w, "quick start", err)
		return
	}
	handler.writeSnapshot(w, r, true, "")
}

func (handler *Handler) HandleCompleteSet(w http.ResponseWriter, r *http.Request) {
	outcome, err := handler.tracker.CompleteSet()
	if err != nil {
		handler.writeError(w, "complete set", err)
		return
	}
	handler.writeSnapshot(w, r, outcome != workout.OutcomeIgnored, OutcomeName(outcome))
}

func (handler *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	moved, err := handler.tracker.NextExercise()
	if err != nil {
		handler.writeError(w, "next exercise", err)
		return
	}
	handler.writeSnapshot(w, r, moved, "")
}

func (handler *Handler) HandlePrev(w http.ResponseWriter, r *http.Request) {
	moved, err := handler.tracker.PrevExercise()
	if err != nil {
		handler.writeError(w, "prev exercise", err)
		return
	}
	handler.writeSnapshot(w, r, moved, "")
}

func (handler *Handler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	category, err := exercises.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		handler.writeError(w, "select category", err)
		return
	}
	if err := handler.tracker.SelectCategory(category); err != nil {
		handler.writeError(w, "select category", err)
		return
	}
	handler.writeSnapshot(w, r, true, "")
}

func (handler *Handler) HandleToggleDay(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		http.Error(w, "error, day NaN", http.StatusBadRequest)
		return
	}
	if _, err := handler.tracker.ToggleDay(r.Context(), day); err != nil {
		handler.writeError(w, "toggle day", err)
		return
	}
	handler.writeSnapshot(w, r, true, "")
}

func (handler *Handler) HandleChangeMonth(w http.ResponseWriter, r *http.Request) {
	direction, err := calendar.ParseDirection(mux.Vars(r)["direction"])
	if err != nil {
		handler.writeError(w, "change month", err)
		return
	}
	if _, err := handler.tracker.ChangeMonth(r.Context(), direction); err != nil {
		handler.writeError(w, "change month", err)
		return
	}
	handler.writeSnapshot(w, r, true, "")
}

func (handler *Handler) HandleMarkWeek(w http.ResponseWriter, r *http.Request) {
	if _, err := handler.tracker.MarkCurrentWeek(r.Context()); err != nil {
		handler.writeError(w, "mark week", err)
		return
	}
	handler.writeSnapshot(w, r, true, "")
}

func (handler *Handler) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	if _, err := handler.tracker.ToggleTheme(r.Context()); err != nil {
		handler.writeError(w, "toggle theme", err)
		return
	}
	handler.writeSnapshot(w, r, true, "")
}

func (handler *Handler) HandleSetSound(w http.ResponseWriter, r *http.Request) {
	enabled, err := strconv.ParseBool(mux.Vars(r)["enabled"])
	if err != nil {
		http.Error(w, "error, enabled must be true or false", http.StatusBadRequest)
		return
	}
	if err := handler.tracker.SetSound(r.Context(), enabled); err != nil {
		handler.writeError(w, "set sound", err)
		return
	}
	handler.writeSnapshot(w, r, true, "")
}

func (handler *Handler) HandleKey(w http.ResponseWriter, r *http.Request) {
	handled, err := handler.tracker.KeyPressed(mux.Vars(r)["key"])
	if err != nil {
		handler.writeError(w, "key pressed", err)
		return
	}
	handler.writeSnapshot(w, r, handled, "")
}
