package calendar

import (
	"fmt"
	"time"

	"github.com/2beens/workouttracker/internal/exercises"
)

const (
	Weeks       = 4
	DaysPerWeek = 7
	GridDays    = Weeks * DaysPerWeek
	// WorkoutDaysPerMonth is the number of workout cells in the grid (3 per week).
	WorkoutDaysPerMonth = 12
)

// workout days sit on positions 1, 3 and 5 of every week row
var workoutPositions = map[int]exercises.Category{
	1: exercises.CategoryPush,
	3: exercises.CategoryPull,
	5: exercises.CategoryLegs,
}

type Cell struct {
	Day        int                `json:"day"`
	Week       int                `json:"week"`
	Position   int                `json:"position"`
	WorkoutDay bool               `json:"workoutDay"`
	Type       exercises.Category `json:"type,omitempty"`
	Completed  bool               `json:"completed"`
}

// DayNumber returns the day of month shown at the given week row and position.
func DayNumber(week, position int) int {
	return (week-1)*DaysPerWeek + position
}

// WeekOf returns the grid row a day of month belongs to. Days past the grid
// (29-31) land in week 5, which has no row.
func WeekOf(day int) int {
	return (day + DaysPerWeek - 1) / DaysPerWeek
}

func position(day int) int {
	return (day-1)%DaysPerWeek + 1
}

func IsWorkoutDay(day int) bool {
	_, ok := WorkoutType(day)
	return ok
}

// WorkoutType returns the category trained on a workout day.
func WorkoutType(day int) (exercises.Category, bool) {
	if day < 1 || day > GridDays {
		return "", false
	}
	category, ok := workoutPositions[position(day)]
	return category, ok
}

// WorkoutDays lists the 12 workout day numbers in ascending order.
func WorkoutDays() []int {
	days := make([]int, 0, WorkoutDaysPerMonth)
	for day := 1; day <= GridDays; day++ {
		if IsWorkoutDay(day) {
			days = append(days, day)
		}
	}
	return days
}

// WeekWorkoutDays lists the workout days of a grid row; empty for rows outside the grid.
func WeekWorkoutDays(week int) []int {
	if week < 1 || week > Weeks {
		return nil
	}
	days := make([]int, 0, len(workoutPositions))
	for pos := 1; pos <= DaysPerWeek; pos++ {
		if _, ok := workoutPositions[pos]; ok {
			days = append(days, DayNumber(week, pos))
		}
	}
	return days
}

// Key is the store key of a month, e.g. "2024-January".
func Key(year int, month time.Month) string {
	return fmt.Sprintf("%d-%s", year, month)
}

func buildCells(days Days) []Cell {
	cells := make([]Cell, 0, GridDays)
	for week := 1; week <= Weeks; week++ {
		for pos := 1; pos <= DaysPerWeek; pos++ {
			day := DayNumber(week, pos)
			category, workoutDay := workoutPositions[pos]
			cells = append(cells, Cell{
				Day:        day,
				Week:       week,
				Position:   pos,
				WorkoutDay: workoutDay,
				Type:       category,
				Completed:  workoutDay && days[day],
			})
		}
	}
	return cells
}
