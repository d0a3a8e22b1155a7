package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/2beens/workouttracker/internal/calendar"
	"github.com/2beens/workouttracker/internal/clock"
	"github.com/2beens/workouttracker/internal/exercises"
	"github.com/2beens/workouttracker/internal/notify"
	"github.com/2beens/workouttracker/internal/preferences"
	"github.com/2beens/workouttracker/internal/storage"
	"github.com/2beens/workouttracker/internal/tracker"
	"github.com/2beens/workouttracker/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newMockConsole(t *testing.T) (*Console, *Mocksession, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockSession := NewMocksession(ctrl)
	out := &bytes.Buffer{}
	return New(mockSession, NewRenderer(out), strings.NewReader(""), out), mockSession, out
}

func TestConsole_Execute(t *testing.T) {
	ctx := context.Background()
	c, mockSession, out := newMockConsole(t)

	mockSession.EXPECT().StartTimer().Return(true, nil)
	mockSession.EXPECT().StopTimer().Return(nil)
	mockSession.EXPECT().ResetTimer().Return(nil)
	mockSession.EXPECT().QuickStart().Return(nil)
	mockSession.EXPECT().CompleteSet().Return(workout.OutcomeSetCompleted, nil)
	mockSession.EXPECT().KeyPressed("space").Return(true, nil).Times(2)
	mockSession.EXPECT().NextExercise().Return(true, nil)
	mockSession.EXPECT().PrevExercise().Return(true, nil)
	mockSession.EXPECT().SelectCategory(exercises.CategoryPull).Return(nil)
	mockSession.EXPECT().ToggleDay(gomock.Any(), 17).Return(true, nil)
	mockSession.EXPECT().ChangeMonth(gomock.Any(), -1).Return(calendar.View{}, nil)
	mockSession.EXPECT().MarkCurrentWeek(gomock.Any()).Return([]int{1, 3, 5}, nil)
	mockSession.EXPECT().ToggleTheme(gomock.Any()).Return(preferences.ThemeLight, nil)
	mockSession.EXPECT().SetSound(gomock.Any(), false).Return(nil)

	for _, line := range []string{
		"start", "stop", "reset", "quick", "done", "", " ",
		"next", "prev", "PULL", "toggle 17", "month prev", "week", "theme", "sound off",
	} {
		quit, err := c.Execute(ctx, line)
		require.NoError(t, err, line)
		assert.False(t, quit, line)
	}
	assert.Empty(t, out.String())
}

func TestConsole_Execute_Feedback(t *testing.T) {
	ctx := context.Background()
	c, mockSession, out := newMockConsole(t)

	mockSession.EXPECT().StartTimer().Return(false, nil)
	mockSession.EXPECT().CompleteSet().Return(workout.OutcomeIgnored, nil)
	mockSession.EXPECT().NextExercise().Return(false, nil)

	_, err := c.Execute(ctx, "start")
	require.NoError(t, err)
	_, err = c.Execute(ctx, "done")
	require.NoError(t, err)
	_, err = c.Execute(ctx, "next")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "timer already running")
	assert.Contains(t, out.String(), "resting, set not recorded")
	assert.Contains(t, out.String(), "cannot change exercise while resting")
}

func TestConsole_Execute_Errors(t *testing.T) {
	ctx := context.Background()
	c, mockSession, _ := newMockConsole(t)

	_, err := c.Execute(ctx, "dance")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	_, err = c.Execute(ctx, "toggle")
	assert.ErrorIs(t, err, ErrMissingArg)
	_, err = c.Execute(ctx, "toggle x")
	assert.Error(t, err)
	_, err = c.Execute(ctx, "month")
	assert.ErrorIs(t, err, ErrMissingArg)
	_, err = c.Execute(ctx, "month up")
	assert.ErrorIs(t, err, calendar.ErrInvalidDirection)
	_, err = c.Execute(ctx, "sound")
	assert.ErrorIs(t, err, ErrMissingArg)
	_, err = c.Execute(ctx, "sound loud")
	assert.Error(t, err)

	mockSession.EXPECT().ToggleDay(gomock.Any(), 2).Return(false, calendar.ErrNotWorkoutDay)
	_, err = c.Execute(ctx, "toggle 2")
	assert.ErrorIs(t, err, calendar.ErrNotWorkoutDay)

	mockSession.EXPECT().Snapshot(gomock.Any()).Return(tracker.Snapshot{}, errors.New("store down"))
	_, err = c.Execute(ctx, "state")
	assert.Error(t, err)

	quit, err := c.Execute(ctx, "quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestConsole_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSession := NewMocksession(ctrl)
	mockSession.EXPECT().StartTimer().Return(true, nil)
	mockSession.EXPECT().ToggleDay(gomock.Any(), 4).Return(false, fmt.Errorf("%w: %d", calendar.ErrNotWorkoutDay, 4))

	out := &bytes.Buffer{}
	in := strings.NewReader("start\nhelp\ntoggle 4\nquit\nstop\n")
	c := New(mockSession, NewRenderer(out), in, out)

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "commands:")
	assert.Contains(t, out.String(), "error: not a workout day: 4")
}

func TestConsole_Run_EOFAndCancel(t *testing.T) {
	c, _, _ := newMockConsole(t)
	require.NoError(t, c.Run(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	blocked := New(nil, NewRenderer(&bytes.Buffer{}), strings.NewReader("start\n"), &bytes.Buffer{})
	require.NoError(t, blocked.Run(ctx))
}

func TestConsole_WithTracker(t *testing.T) {
	ctx := context.Background()
	out := &bytes.Buffer{}
	renderer := NewRenderer(out)
	sched := clock.NewManual()

	tr, err := tracker.New(ctx, tracker.Params{
		Store:     storage.NewMemoryStore(),
		Scheduler: sched,
		Notifier:  renderer,
		Renderer:  renderer,
		Now: func() time.Time {
			return time.Date(2024, time.January, 3, 8, 0, 0, 0, time.UTC)
		},
	})
	require.NoError(t, err)
	defer tr.Close()

	c := New(tr, renderer, strings.NewReader(""), out)

	_, err = c.Execute(ctx, "quick")
	require.NoError(t, err)
	_, err = c.Execute(ctx, " ")
	require.NoError(t, err)
	sched.Advance(120 * time.Second)
	_, err = c.Execute(ctx, "toggle 1")
	require.NoError(t, err)
	_, err = c.Execute(ctx, "state")
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Quick Start!")
	assert.Contains(t, text, "Set Completed!")
	assert.Contains(t, text, "Rest Complete!")
	assert.Contains(t, text, "PUSH workout completed!")
	assert.Contains(t, text, "Bench Press")
	assert.Contains(t, text, "00:02:00")
	assert.Contains(t, text, "January 2024")
}

func TestRenderer(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRenderer(out)

	r.RenderTimer(tracker.TimerSnapshot{Elapsed: 0, Display: "00:00:00"})
	r.RenderTimer(tracker.TimerSnapshot{Elapsed: 1, Display: "00:00:01", Running: true})
	r.RenderTimer(tracker.TimerSnapshot{Elapsed: 2, Display: "00:00:02", Running: true})
	assert.Contains(t, out.String(), "00:00:01")
	assert.NotContains(t, out.String(), "00:00:02", "ticks are quiet by default")

	r.Verbose = true
	r.RenderTimer(tracker.TimerSnapshot{Elapsed: 3, Display: "00:00:03", Running: true})
	assert.Contains(t, out.String(), "00:00:03")

	out.Reset()
	r.RenderPreferences(preferences.Snapshot{Theme: preferences.ThemeLight, SoundEnabled: false})
	assert.Contains(t, out.String(), "theme light, sound off")

	out.Reset()
	r.Notify("Week Completed!", "All workouts for this week marked as done.", notify.SeveritySuccess)
	assert.Contains(t, out.String(), "Week Completed!")
	assert.Contains(t, out.String(), "All workouts for this week marked as done.")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 10), progressBar(0, 10))
	assert.Equal(t, strings.Repeat("█", 5)+strings.Repeat("░", 5), progressBar(50, 10))
	assert.Equal(t, strings.Repeat("█", 10), progressBar(150, 10))
	assert.Equal(t, strings.Repeat("░", 10), progressBar(-5, 10))
}
