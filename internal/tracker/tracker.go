package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/workouttracker/internal/calendar"
	"github.com/2beens/workouttracker/internal/clock"
	"github.com/2beens/workouttracker/internal/exercises"
	"github.com/2beens/workouttracker/internal/notify"
	"github.com/2beens/workouttracker/internal/preferences"
	"github.com/2beens/workouttracker/internal/stopwatch"
	"github.com/2beens/workouttracker/internal/storage"
	"github.com/2beens/workouttracker/internal/telemetry/metrics"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/internal/workout"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultStoreTimeout = 5 * time.Second

var ErrClosed = errors.New("tracker closed")

type TimerSnapshot struct {
	Elapsed int    `json:"elapsed"`
	Display string `json:"display"`
	Running bool   `json:"running"`
}

type Snapshot struct {
	ID          string               `json:"id"`
	StartedAt   time.Time            `json:"startedAt"`
	Timer       TimerSnapshot        `json:"timer"`
	Workout     workout.Snapshot     `json:"workout"`
	Calendar    calendar.View        `json:"calendar"`
	Preferences preferences.Snapshot `json:"preferences"`
}

type Params struct {
	Library *exercises.Library
	Store   storage.Store
	// Scheduler drives the stopwatch and rest ticks. When nil, a real
	// one-second ticker is used. Injected schedulers get their callbacks
	// serialized through the tracker lock as well.
	Scheduler      clock.Scheduler
	Notifier       notify.Notifier
	Player         notify.Player
	Renderer       Renderer
	MetricsManager *metrics.Manager
	// WorkoutOptions defaults to workout.DefaultOptions when nil.
	WorkoutOptions *workout.Options
	Now            func() time.Time
	StoreTimeout   time.Duration
	FeedLimit      int
}

// Tracker is one workout session. Every action, HTTP request, console command
// and clock tick enters through its lock, so the components it owns stay
// single-threaded.
type Tracker struct {
	mutex  sync.Mutex
	closed bool

	id        string
	startedAt time.Time

	realClock    *clock.Real
	scheduler    clock.Scheduler
	welcome      clock.Handle
	stopwatch    *stopwatch.Stopwatch
	machine      *workout.Machine
	calendar     *calendar.Calendar
	prefs        *preferences.Preferences
	store        storage.Store
	feed         *notify.Feed
	notifier     notify.Notifier
	player       notify.Player
	renderer     Renderer
	metrics      *metrics.Manager
	storeTimeout time.Duration
}

func New(ctx context.Context, params Params) (*Tracker, error) {
	if params.Store == nil {
		return nil, errors.New("tracker store is required")
	}
	if params.Library == nil {
		params.Library = exercises.Default()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.Renderer == nil {
		params.Renderer = NopRenderer{}
	}
	if params.Player == nil {
		params.Player = notify.NopPlayer{}
	}
	if params.StoreTimeout <= 0 {
		params.StoreTimeout = DefaultStoreTimeout
	}
	workoutOptions := workout.DefaultOptions()
	if params.WorkoutOptions != nil {
		workoutOptions = *params.WorkoutOptions
	}

	t := &Tracker{
		id:           uuid.New().String(),
		startedAt:    params.Now(),
		store:        params.Store,
		feed:         notify.NewFeed(params.FeedLimit),
		renderer:     params.Renderer,
		metrics:      params.MetricsManager,
		storeTimeout: params.StoreTimeout,
	}

	if params.Notifier != nil {
		t.notifier = notify.Multi{t.feed, params.Notifier}
	} else {
		t.notifier = t.feed
	}

	if params.Scheduler == nil {
		t.realClock = clock.NewReal(t.dispatch)
		t.scheduler = t.realClock
	} else {
		t.scheduler = &serializedScheduler{inner: params.Scheduler, dispatch: t.dispatch}
	}

	t.prefs = preferences.New(params.Store)
	t.player = &notify.Gated{Player: params.Player, Enabled: t.prefs.SoundEnabled}

	t.stopwatch = stopwatch.New(t.scheduler)
	t.stopwatch.OnTick = func(elapsed int) {
		if t.metrics != nil {
			t.metrics.GaugeTimerElapsed.Set(float64(elapsed))
		}
		t.renderer.RenderTimer(t.timerSnapshot())
	}

	t.machine = workout.NewMachine(params.Library, t.scheduler, t.notifier, t.player, workoutOptions)
	t.machine.OnChange = t.renderer.RenderExercise
	t.machine.OnRestComplete = func() {
		if t.metrics != nil {
			t.metrics.CounterRestsCompleted.Inc()
		}
	}

	t.calendar = calendar.New(params.Store, t.notifier, params.Now)

	loadCtx, cancel := context.WithTimeout(ctx, t.storeTimeout)
	defer cancel()
	if err := t.prefs.Load(loadCtx); err != nil {
		// keep the defaults, the session is still usable
		log.Errorf("load preferences: %s", err)
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.renderAllLocked(loadCtx)
	t.welcome = t.scheduler.Every(clock.Second, t.showWelcome)

	log.Debugf("tracker session %s started", t.id)
	return t, nil
}

func (t *Tracker) ID() string {
	return t.id
}

func (t *Tracker) Feed() *notify.Feed {
	return t.feed
}

// dispatch runs fn under the tracker lock. Ticks arriving after Close are dropped.
func (t *Tracker) dispatch(fn func()) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.closed {
		return
	}
	fn()
}

func (t *Tracker) do(fn func() error) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.closed {
		return ErrClosed
	}
	return fn()
}

func (t *Tracker) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, t.storeTimeout)
}

// showWelcome fires once, a second after the session starts.
func (t *Tracker) showWelcome() {
	if t.welcome != nil {
		t.welcome.Stop()
		t.welcome = nil
	}
	t.notifier.Notify(
		"Welcome to Workout Tracker!",
		"Your fitness journey starts now. Click quick start to begin.",
		notify.SeverityInfo,
	)
}

func (t *Tracker) timerSnapshot() TimerSnapshot {
	return TimerSnapshot{
		Elapsed: t.stopwatch.Elapsed(),
		Display: t.stopwatch.Display(),
		Running: t.stopwatch.Running(),
	}
}

func (t *Tracker) renderAllLocked(ctx context.Context) {
	t.renderer.RenderTimer(t.timerSnapshot())
	t.renderer.RenderExercise(t.machine.Snapshot())
	t.renderCalendarLocked(ctx)
	t.renderer.RenderPreferences(t.prefs.Snapshot())
}

func (t *Tracker) renderCalendarLocked(ctx context.Context) {
	view, err := t.calendar.View(ctx)
	if err != nil {
		log.Errorf("render calendar: %s", err)
		return
	}
	if t.metrics != nil {
		t.metrics.GaugeMonthCompleted.Set(float64(view.Percentage))
	}
	t.renderer.RenderCalendar(view)
}

func (t *Tracker) snapshotLocked(ctx context.Context) (Snapshot, error) {
	view, err := t.calendar.View(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		ID:          t.id,
		StartedAt:   t.startedAt,
		Timer:       t.timerSnapshot(),
		Workout:     t.machine.Snapshot(),
		Calendar:    view,
		Preferences: t.prefs.Snapshot(),
	}, nil
}

// Snapshot returns the full session state.
func (t *Tracker) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := t.do(func() error {
		storeCtx, cancel := t.storeContext(ctx)
		defer cancel()
		var err error
		snap, err = t.snapshotLocked(storeCtx)
		return err
	})
	return snap, err
}

// StartTimer starts the stopwatch and plays the start sound. It reports
// false when the timer was already running.
func (t *Tracker) StartTimer() (bool, error) {
	var started bool
	err := t.do(func() error {
		started = t.startTimerLocked()
		return nil
	})
	return started, err
}

func (t *Tracker) startTimerLocked() bool {
	if !t.stopwatch.Start() {
		return false
	}
	t.player.Play(notify.SoundStart)
	t.renderer.RenderTimer(t.timerSnapshot())
	return true
}

func (t *Tracker) StopTimer() error {
	return t.do(func() error {
		t.stopwatch.Stop()
		t.renderer.RenderTimer(t.timerSnapshot())
		return nil
	})
}

func (t *Tracker) ResetTimer() error {
	return t.do(func() error {
		t.stopwatch.Reset()
		if t.metrics != nil {
			t.metrics.GaugeTimerElapsed.Set(0)
		}
		t.renderer.RenderTimer(t.timerSnapshot())
		return nil
	})
}

// QuickStart starts the timer (if needed) and always shows the quick start toast.
func (t *Tracker) QuickStart() error {
	return t.do(func() error {
		t.startTimerLocked()
		t.notifier.Notify("Quick Start!", "Workout timer started. Get ready!", notify.SeveritySuccess)
		return nil
	})
}

// CompleteSet records a set of the current exercise. Ignored while resting.
func (t *Tracker) CompleteSet() (workout.Outcome, error) {
	var outcome workout.Outcome
	err := t.do(func() error {
		outcome = t.completeSetLocked()
		return nil
	})
	return outcome, err
}

func (t *Tracker) completeSetLocked() workout.Outcome {
	category := t.machine.Snapshot().Category
	outcome := t.machine.CompleteSet()
	if t.metrics == nil {
		return outcome
	}
	switch outcome {
	case workout.OutcomeSetCompleted:
		t.metrics.CounterSetsCompleted.WithLabelValues(category.String()).Inc()
	case workout.OutcomeExerciseCompleted:
		t.metrics.CounterSetsCompleted.WithLabelValues(category.String()).Inc()
		t.metrics.CounterExercisesCompleted.WithLabelValues(category.String()).Inc()
	}
	return outcome
}

func (t *Tracker) NextExercise() (bool, error) {
	var moved bool
	err := t.do(func() error {
		moved = t.machine.Next()
		return nil
	})
	return moved, err
}

func (t *Tracker) PrevExercise() (bool, error) {
	var moved bool
	err := t.do(func() error {
		moved = t.machine.Prev()
		return nil
	})
	return moved, err
}

func (t *Tracker) SelectCategory(category exercises.Category) error {
	return t.do(func() error {
		return t.machine.SelectCategory(category)
	})
}

// KeyPressed handles key bindings. Only space is bound: it completes a set
// unless a rest is running. Reports whether the key was handled.
func (t *Tracker) KeyPressed(key string) (bool, error) {
	var handled bool
	err := t.do(func() error {
		if key != "space" && key != " " {
			return nil
		}
		if t.machine.Resting() {
			return nil
		}
		handled = t.completeSetLocked() != workout.OutcomeIgnored
		return nil
	})
	return handled, err
}

// ToggleDay flips a workout day of the viewed month.
func (t *Tracker) ToggleDay(ctx context.Context, day int) (bool, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.toggleDay")
	span.SetAttributes(attribute.Int("day", day))

	var completed bool
	err := t.do(func() error {
		storeCtx, cancel := t.storeContext(ctx)
		defer cancel()

		year, month := t.calendar.Current()
		var err error
		completed, err = t.calendar.ToggleDay(storeCtx, year, month, day)
		if err != nil {
			return err
		}
		if completed && t.metrics != nil {
			t.metrics.CounterWorkoutDaysLogged.Inc()
		}
		t.renderCalendarLocked(storeCtx)
		return nil
	})
	tracing.EndSpanWithErrCheck(span, err)
	return completed, err
}

// ChangeMonth moves the calendar view one month forward (+1) or back (-1).
func (t *Tracker) ChangeMonth(ctx context.Context, direction int) (calendar.View, error) {
	var view calendar.View
	err := t.do(func() error {
		storeCtx, cancel := t.storeContext(ctx)
		defer cancel()

		var err error
		view, err = t.calendar.ChangeMonth(storeCtx, direction)
		if err != nil {
			return err
		}
		t.renderer.RenderCalendar(view)
		return nil
	})
	return view, err
}

func (t *Tracker) MarkCurrentWeek(ctx context.Context) ([]int, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.markCurrentWeek")

	var marked []int
	err := t.do(func() error {
		storeCtx, cancel := t.storeContext(ctx)
		defer cancel()

		var err error
		marked, err = t.calendar.MarkCurrentWeek(storeCtx)
		if err != nil {
			return err
		}
		if t.metrics != nil {
			t.metrics.CounterWeeksMarked.Inc()
		}
		t.renderCalendarLocked(storeCtx)
		return nil
	})
	tracing.EndSpanWithErrCheck(span, err)
	return marked, err
}

func (t *Tracker) Calendar(ctx context.Context) (calendar.View, error) {
	var view calendar.View
	err := t.do(func() error {
		storeCtx, cancel := t.storeContext(ctx)
		defer cancel()
		var err error
		view, err = t.calendar.View(storeCtx)
		return err
	})
	return view, err
}

func (t *Tracker) ToggleTheme(ctx context.Context) (preferences.Theme, error) {
	var theme preferences.Theme
	err := t.do(func() error {
		storeCtx, cancel := t.storeContext(ctx)
		defer cancel()
		var err error
		theme, err = t.prefs.ToggleTheme(storeCtx)
		if err != nil {
			return err
		}
		t.renderer.RenderPreferences(t.prefs.Snapshot())
		return nil
	})
	return theme, err
}

func (t *Tracker) SetSound(ctx context.Context, enabled bool) error {
	return t.do(func() error {
		storeCtx, cancel := t.storeContext(ctx)
		defer cancel()
		if err := t.prefs.SetSound(storeCtx, enabled); err != nil {
			return err
		}
		t.renderer.RenderPreferences(t.prefs.Snapshot())
		return nil
	})
}

// Close stops every tick, waits for tick goroutines and closes the store.
func (t *Tracker) Close() error {
	t.mutex.Lock()
	if t.closed {
		t.mutex.Unlock()
		return nil
	}
	t.closed = true
	if t.welcome != nil {
		t.welcome.Stop()
		t.welcome = nil
	}
	t.stopwatch.Stop()
	t.machine.Close()
	t.mutex.Unlock()

	// ticks blocked on the lock see closed and return, so Wait cannot hang
	if t.realClock != nil {
		t.realClock.Wait()
	}

	log.Debugf("tracker session %s closed", t.id)
	if err := t.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// serializedScheduler routes callbacks of an injected scheduler through the tracker lock.
type serializedScheduler struct {
	inner    clock.Scheduler
	dispatch clock.Dispatcher
}

func (s *serializedScheduler) Every(interval time.Duration, fn func()) clock.Handle {
	return s.inner.Every(interval, func() {
		s.dispatch(fn)
	})
}

func OutcomeName(outcome workout.Outcome) string {
	switch outcome {
	case workout.OutcomeSetCompleted:
		return "setCompleted"
	case workout.OutcomeExerciseCompleted:
		return "exerciseCompleted"
	}
	return "ignored"
}
