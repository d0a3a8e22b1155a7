package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/2beens/workouttracker/internal/calendar"
	"github.com/2beens/workouttracker/internal/exercises"
	"github.com/2beens/workouttracker/internal/preferences"
	"github.com/2beens/workouttracker/internal/tracker"
	"github.com/2beens/workouttracker/internal/workout"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=console

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArg     = errors.New("missing argument")
)

type session interface {
	Snapshot(ctx context.Context) (tracker.Snapshot, error)
	StartTimer() (bool, error)
	StopTimer() error
	ResetTimer() error
	QuickStart() error
	CompleteSet() (workout.Outcome, error)
	NextExercise() (bool, error)
	PrevExercise() (bool, error)
	SelectCategory(category exercises.Category) error
	KeyPressed(key string) (bool, error)
	ToggleDay(ctx context.Context, day int) (bool, error)
	ChangeMonth(ctx context.Context, direction int) (calendar.View, error)
	MarkCurrentWeek(ctx context.Context) ([]int, error)
	ToggleTheme(ctx context.Context) (preferences.Theme, error)
	SetSound(ctx context.Context, enabled bool) error
}

const helpText = `commands:
  start | stop | reset | quick     timer
  done (or an empty line)          complete the current set
  next | prev                      move between exercises
  push | pull | legs               pick a category
  toggle <day>                     check or uncheck a workout day
  month next|prev                  change the calendar month
  week                             mark this week's workouts as done
  theme                            toggle dark/light
  sound on|off                     toggle sounds
  state                            print everything
  help | quit
`

// Console reads commands line by line and runs them against the session.
type Console struct {
	session  session
	renderer *Renderer
	in       io.Reader
	out      io.Writer
}

func New(session session, renderer *Renderer, in io.Reader, out io.Writer) *Console {
	return &Console{
		session:  session,
		renderer: renderer,
		in:       in,
		out:      out,
	}
}

// Run processes input until quit, EOF or ctx cancellation. It returns nil in all three cases.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Errorf("console input: %s", err)
		}
	}()

	c.println("type 'help' for commands")
	for {
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := c.Execute(ctx, line)
			if err != nil {
				c.println("error: " + err.Error())
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute runs a single command line and reports whether the console should stop.
func (c *Console) Execute(ctx context.Context, line string) (bool, error) {
	// a bare space (or empty line) is the space key binding
	if strings.TrimSpace(line) == "" {
		handled, err := c.session.KeyPressed("space")
		if err == nil && !handled {
			c.println("resting, set not recorded")
		}
		return false, err
	}

	fields := strings.Fields(strings.ToLower(line))
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		c.println(strings.TrimRight(helpText, "\n"))
		return false, nil
	case "start":
		started, err := c.session.StartTimer()
		if err == nil && !started {
			c.println("timer already running")
		}
		return false, err
	case "stop":
		return false, c.session.StopTimer()
	case "reset":
		return false, c.session.ResetTimer()
	case "quick", "quickstart":
		return false, c.session.QuickStart()
	case "done", "complete":
		outcome, err := c.session.CompleteSet()
		if err == nil && outcome == workout.OutcomeIgnored {
			c.println("resting, set not recorded")
		}
		return false, err
	case "next", "prev":
		move := c.session.NextExercise
		if cmd == "prev" {
			move = c.session.PrevExercise
		}
		moved, err := move()
		if err == nil && !moved {
			c.println("cannot change exercise while resting")
		}
		return false, err
	case "push", "pull", "legs":
		return false, c.session.SelectCategory(exercises.Category(cmd))
	case "toggle":
		if len(args) == 0 {
			return false, fmt.Errorf("%w: toggle <day>", ErrMissingArg)
		}
		day, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("invalid day %q", args[0])
		}
		_, err = c.session.ToggleDay(ctx, day)
		return false, err
	case "month":
		if len(args) == 0 {
			return false, fmt.Errorf("%w: month next|prev", ErrMissingArg)
		}
		direction, err := calendar.ParseDirection(args[0])
		if err != nil {
			return false, err
		}
		_, err = c.session.ChangeMonth(ctx, direction)
		return false, err
	case "week":
		_, err := c.session.MarkCurrentWeek(ctx)
		return false, err
	case "theme":
		_, err := c.session.ToggleTheme(ctx)
		return false, err
	case "sound":
		if len(args) == 0 {
			return false, fmt.Errorf("%w: sound on|off", ErrMissingArg)
		}
		switch args[0] {
		case "on":
			return false, c.session.SetSound(ctx, true)
		case "off":
			return false, c.session.SetSound(ctx, false)
		}
		return false, fmt.Errorf("invalid sound value %q", args[0])
	case "state":
		snap, err := c.session.Snapshot(ctx)
		if err != nil {
			return false, err
		}
		c.renderer.RenderSnapshot(snap)
		return false, nil
	}

	return false, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}
