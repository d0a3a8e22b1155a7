package stopwatch

import (
	"fmt"

	"github.com/2beens/workouttracker/internal/clock"
)

// Stopwatch counts elapsed workout seconds. It is not safe for concurrent use;
// the owner serializes calls together with the scheduler's callbacks.
type Stopwatch struct {
	scheduler clock.Scheduler
	handle    clock.Handle
	elapsed   int
	running   bool

	// OnTick is called after every one-second increment
	OnTick func(elapsed int)
}

func New(scheduler clock.Scheduler) *Stopwatch {
	return &Stopwatch{
		scheduler: scheduler,
	}
}

// Start begins counting. It reports false when the stopwatch was already running.
func (s *Stopwatch) Start() bool {
	if s.running {
		return false
	}
	s.running = true
	s.handle = s.scheduler.Every(clock.Second, s.tick)
	return true
}

// Stop halts counting and keeps the elapsed value.
func (s *Stopwatch) Stop() {
	s.running = false
	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
}

// Reset stops the stopwatch and zeroes the elapsed value.
func (s *Stopwatch) Reset() {
	s.Stop()
	s.elapsed = 0
}

func (s *Stopwatch) Elapsed() int {
	return s.elapsed
}

func (s *Stopwatch) Running() bool {
	return s.running
}

func (s *Stopwatch) Display() string {
	return FormatTime(s.elapsed)
}

func (s *Stopwatch) tick() {
	s.elapsed++
	if s.OnTick != nil {
		s.OnTick(s.elapsed)
	}
}

// FormatTime renders seconds as zero-padded HH:MM:SS.
func FormatTime(sec int) string {
	if sec < 0 {
		sec = 0
	}
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
