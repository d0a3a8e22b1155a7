package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/2beens/workouttracker/internal/notify"
	"github.com/2beens/workouttracker/internal/storage"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=calendar_test

var (
	ErrNotWorkoutDay    = errors.New("not a workout day")
	ErrInvalidDirection = errors.New("invalid month direction")
)

type notifier interface {
	Notify(title, message string, severity notify.Severity)
}

// Days maps a day of month to its completion flag.
type Days map[int]bool

func (d Days) Completed() int {
	count := 0
	for _, day := range WorkoutDays() {
		if d[day] {
			count++
		}
	}
	return count
}

func (d Days) clone() Days {
	out := make(Days, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

type View struct {
	Year       int    `json:"year"`
	Month      string `json:"month"`
	Key        string `json:"key"`
	Cells      []Cell `json:"cells"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// Calendar keeps monthly workout completion in a store and tracks the month
// being viewed. Not safe for concurrent use.
type Calendar struct {
	store    storage.Store
	notifier notifier
	now      func() time.Time

	cache map[string]Days
	year  int
	month time.Month
}

func New(store storage.Store, notifier notifier, now func() time.Time) *Calendar {
	if now == nil {
		now = time.Now
	}
	today := now()
	return &Calendar{
		store:    store,
		notifier: notifier,
		now:      now,
		cache:    make(map[string]Days),
		year:     today.Year(),
		month:    today.Month(),
	}
}

// Current returns the month being viewed.
func (c *Calendar) Current() (int, time.Month) {
	return c.year, c.month
}

// Load returns a copy of the completion data of a month. Missing or malformed
// data yields an empty mapping; only store failures are returned.
func (c *Calendar) Load(ctx context.Context, year int, month time.Month) (Days, error) {
	days, err := c.load(ctx, year, month)
	if err != nil {
		return Days{}, err
	}
	return days.clone(), nil
}

// load returns the cached map itself; callers mutating it own persisting it.
func (c *Calendar) load(ctx context.Context, year int, month time.Month) (Days, error) {
	key := Key(year, month)
	if days, ok := c.cache[key]; ok {
		return days, nil
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "calendar.load")
	span.SetAttributes(attribute.String("key", key))
	defer span.End()

	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !storage.IsNotFound(err) {
			span.RecordError(err)
			return Days{}, fmt.Errorf("load %s: %w", key, err)
		}
		raw = ""
	}

	days := Days{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &days); err != nil {
			log.Errorf("calendar data for %s is malformed, ignoring: %s", key, err)
			days = Days{}
		}
	}

	c.cache[key] = days
	return days, nil
}

// Save writes all workout days of a month, completed or not.
func (c *Calendar) Save(ctx context.Context, year int, month time.Month) error {
	days, err := c.load(ctx, year, month)
	if err != nil {
		return err
	}
	return c.save(ctx, Key(year, month), days)
}

func (c *Calendar) save(ctx context.Context, key string, days Days) error {
	out := make(Days, WorkoutDaysPerMonth)
	for _, day := range WorkoutDays() {
		out[day] = days[day]
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// ToggleDay flips the completion of a workout day and persists the month.
func (c *Calendar) ToggleDay(ctx context.Context, year int, month time.Month, day int) (bool, error) {
	category, ok := WorkoutType(day)
	if !ok {
		return false, fmt.Errorf("%w: %d", ErrNotWorkoutDay, day)
	}

	days, err := c.load(ctx, year, month)
	if err != nil {
		return false, err
	}

	completed := !days[day]
	days[day] = completed
	if err := c.save(ctx, Key(year, month), days); err != nil {
		days[day] = !completed
		return !completed, err
	}

	if completed {
		c.notify(
			"Workout Logged",
			fmt.Sprintf("%s workout completed!", strings.ToUpper(category.String())),
			notify.SeveritySuccess,
		)
	}
	return completed, nil
}

// CompletionPercentage is the rounded share of completed workout days.
func (c *Calendar) CompletionPercentage(ctx context.Context, year int, month time.Month) (int, error) {
	days, err := c.load(ctx, year, month)
	if err != nil {
		return 0, err
	}
	return percentage(days.Completed(), WorkoutDaysPerMonth), nil
}

func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// MarkCurrentWeek marks every workout day of today's week row in the viewed
// month as completed. Days 29-31 have no row: nothing is marked, but the month
// is still saved and the toast still shown.
func (c *Calendar) MarkCurrentWeek(ctx context.Context) ([]int, error) {
	days, err := c.load(ctx, c.year, c.month)
	if err != nil {
		return nil, err
	}

	prev := days.clone()

	week := WeekOf(c.now().Day())
	marked := WeekWorkoutDays(week)
	for _, day := range marked {
		days[day] = true
	}

	if err := c.save(ctx, Key(c.year, c.month), days); err != nil {
		c.cache[Key(c.year, c.month)] = prev
		return nil, err
	}

	log.Debugf("marked week %d of %s: %v", week, Key(c.year, c.month), marked)
	c.notify("Week Completed!", "All workouts for this week marked as done.", notify.SeveritySuccess)
	return marked, nil
}

// View describes the viewed month with its grid cells.
func (c *Calendar) View(ctx context.Context) (View, error) {
	days, err := c.load(ctx, c.year, c.month)
	if err != nil {
		return View{}, err
	}
	completed := days.Completed()
	return View{
		Year:       c.year,
		Month:      c.month.String(),
		Key:        Key(c.year, c.month),
		Cells:      buildCells(days),
		Completed:  completed,
		Total:      WorkoutDaysPerMonth,
		Percentage: percentage(completed, WorkoutDaysPerMonth),
	}, nil
}

// ChangeMonth moves the view by direction (+1 or -1), wrapping across years.
func (c *Calendar) ChangeMonth(ctx context.Context, direction int) (View, error) {
	if direction != 1 && direction != -1 {
		return View{}, fmt.Errorf("%w: %d", ErrInvalidDirection, direction)
	}

	month := int(c.month) + direction
	switch {
	case month < int(time.January):
		month = int(time.December)
		c.year--
	case month > int(time.December):
		month = int(time.January)
		c.year++
	}
	c.month = time.Month(month)

	return c.View(ctx)
}

// ParseDirection accepts "next" and "prev".
func ParseDirection(s string) (int, error) {
	switch strings.ToLower(s) {
	case "next":
		return 1, nil
	case "prev":
		return -1, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

func (c *Calendar) notify(title, message string, severity notify.Severity) {
	if c.notifier != nil {
		c.notifier.Notify(title, message, severity)
	}
}
