package workout

import (
	"fmt"

	"github.com/2beens/workouttracker/internal/clock"
	"github.com/2beens/workouttracker/internal/exercises"
	"github.com/2beens/workouttracker/internal/notify"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workout_test

type notifier interface {
	Notify(title, message string, severity notify.Severity)
}

type soundPlayer interface {
	Play(sound notify.Sound)
}

// State can be one of:
//   - exercising
//   - resting
type State string

const (
	StateExercising State = "exercising"
	StateResting    State = "resting"
)

// Outcome tells what a CompleteSet call did.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeSetCompleted
	OutcomeExerciseCompleted
)

type Options struct {
	// AllowNavigationDuringRest lets next/prev move between exercises while a
	// rest countdown is running. The countdown itself keeps going.
	AllowNavigationDuringRest bool
}

func DefaultOptions() Options {
	return Options{AllowNavigationDuringRest: true}
}

type Snapshot struct {
	State         State              `json:"state"`
	Category      exercises.Category `json:"category"`
	ExerciseIndex int                `json:"exerciseIndex"`
	ExerciseCount int                `json:"exerciseCount"`
	CurrentSet    int                `json:"currentSet"`
	Resting       bool               `json:"resting"`
	RestRemaining int                `json:"restRemaining"`
	RestDisplay   string             `json:"restDisplay"`
	Exercise      exercises.Exercise `json:"exercise"`
}

// Machine drives the set/rest flow through the exercise library. It is not
// safe for concurrent use: calls and scheduler callbacks must be serialized
// by the owner.
type Machine struct {
	library   *exercises.Library
	scheduler clock.Scheduler
	notifier  notifier
	player    soundPlayer
	opts      Options

	category      exercises.Category
	index         int
	currentSet    int
	resting       bool
	restRemaining int
	restHandle    clock.Handle

	// OnChange is called after every state change, including rest ticks
	OnChange func(Snapshot)
	// OnRestComplete is called once per finished rest countdown
	OnRestComplete func()
}

func NewMachine(
	library *exercises.Library,
	scheduler clock.Scheduler,
	notifier notifier,
	player soundPlayer,
	opts Options,
) *Machine {
	return &Machine{
		library:    library,
		scheduler:  scheduler,
		notifier:   notifier,
		player:     player,
		opts:       opts,
		category:   exercises.CategoryPush,
		currentSet: 1,
	}
}

func (m *Machine) State() State {
	if m.resting {
		return StateResting
	}
	return StateExercising
}

func (m *Machine) Resting() bool {
	return m.resting
}

func (m *Machine) Snapshot() Snapshot {
	ex, _ := m.library.Get(m.category, m.index)
	restDisplay := ex.Rest
	if m.resting {
		restDisplay = fmt.Sprintf("%ds", m.restRemaining)
	}
	return Snapshot{
		State:         m.State(),
		Category:      m.category,
		ExerciseIndex: m.index,
		ExerciseCount: m.library.Len(m.category),
		CurrentSet:    m.currentSet,
		Resting:       m.resting,
		RestRemaining: m.restRemaining,
		RestDisplay:   restDisplay,
		Exercise:      ex,
	}
}

// CompleteSet records the current set. While resting it does nothing.
func (m *Machine) CompleteSet() Outcome {
	if m.resting {
		return OutcomeIgnored
	}

	ex, err := m.library.Get(m.category, m.index)
	if err != nil {
		return OutcomeIgnored
	}

	if m.currentSet < ex.Sets {
		m.currentSet++
		m.notify(
			"Set Completed!",
			fmt.Sprintf("Set %d/%d of %s done.", m.currentSet-1, ex.Sets, ex.Name),
			notify.SeverityInfo,
		)
		m.startRest(ex.RestSeconds)
		m.changed()
		return OutcomeSetCompleted
	}

	m.notify(
		"Exercise Complete!",
		fmt.Sprintf("Great job! You finished %s.", ex.Name),
		notify.SeveritySuccess,
	)
	m.index = exercises.NextIndex(m.index, m.library.Len(m.category))
	m.currentSet = 1
	m.changed()
	return OutcomeExerciseCompleted
}

// Next moves to the following exercise in the category, wrapping around.
func (m *Machine) Next() bool {
	if m.resting && !m.opts.AllowNavigationDuringRest {
		return false
	}
	m.index = exercises.NextIndex(m.index, m.library.Len(m.category))
	m.currentSet = 1
	m.changed()
	return true
}

// Prev moves to the previous exercise in the category, wrapping around.
func (m *Machine) Prev() bool {
	if m.resting && !m.opts.AllowNavigationDuringRest {
		return false
	}
	m.index = exercises.PrevIndex(m.index, m.library.Len(m.category))
	m.currentSet = 1
	m.changed()
	return true
}

func (m *Machine) SelectCategory(category exercises.Category) error {
	if m.library.Len(category) == 0 {
		return fmt.Errorf("%w: %q", exercises.ErrUnknownCategory, category)
	}
	m.category = category
	m.index = 0
	m.currentSet = 1
	m.changed()
	return nil
}

// Close cancels a running rest countdown.
func (m *Machine) Close() {
	if m.restHandle != nil {
		m.restHandle.Stop()
		m.restHandle = nil
	}
}

func (m *Machine) startRest(seconds int) {
	if m.resting {
		return
	}
	m.resting = true
	m.restRemaining = seconds
	m.restHandle = m.scheduler.Every(clock.Second, m.restTick)
}

func (m *Machine) restTick() {
	if !m.resting {
		return
	}
	m.restRemaining--
	if m.restRemaining > 0 {
		m.changed()
		return
	}
	m.finishRest()
}

func (m *Machine) finishRest() {
	m.Close()
	m.resting = false
	m.restRemaining = 0

	if m.player != nil {
		m.player.Play(notify.SoundComplete)
	}
	m.notify("Rest Complete!", "Time to start your next set!", notify.SeveritySuccess)
	if m.OnRestComplete != nil {
		m.OnRestComplete()
	}
	m.changed()
}

func (m *Machine) notify(title, message string, severity notify.Severity) {
	if m.notifier != nil {
		m.notifier.Notify(title, message, severity)
	}
}

func (m *Machine) changed() {
	if m.OnChange != nil {
		m.OnChange(m.Snapshot())
	}
}
