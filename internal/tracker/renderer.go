package tracker

import (
	"github.com/2beens/workouttracker/internal/calendar"
	"github.com/2beens/workouttracker/internal/preferences"
	"github.com/2beens/workouttracker/internal/workout"
)

// Renderer is the presentation layer. Calls happen under the tracker lock,
// so implementations must not call back into the Tracker.
type Renderer interface {
	RenderTimer(timer TimerSnapshot)
	RenderExercise(exercise workout.Snapshot)
	RenderCalendar(view calendar.View)
	RenderPreferences(prefs preferences.Snapshot)
}

var _ Renderer = NopRenderer{}

type NopRenderer struct{}

func (NopRenderer) RenderTimer(TimerSnapshot)             {}
func (NopRenderer) RenderExercise(workout.Snapshot)       {}
func (NopRenderer) RenderCalendar(calendar.View)          {}
func (NopRenderer) RenderPreferences(preferences.Snapshot) {}
