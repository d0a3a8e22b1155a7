package exercises

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// Library is the read-only exercise catalog, grouped by category.
type Library struct {
	byCategory map[Category][]Exercise
}

// Default returns the built-in push/pull/legs catalog.
func Default() *Library {
	return &Library{
		byCategory: map[Category][]Exercise{
			CategoryPush: {
				newExercise("Bench Press", 4, "6-10", "120s"),
				newExercise("Shoulder Press", 3, "8-10", "120s"),
				newExercise("Lateral Raise", 4, "12-15", "60s"),
				newExercise("Chest Fly", 3, "10-12", "90s"),
				newExercise("Overhead Extension", 3, "10-12", "90s"),
			},
			CategoryPull: {
				newExercise("Pull-Up", 4, "6-8", "150s"),
				newExercise("Barbell Row", 4, "6-10", "120s"),
				newExercise("One-Arm Row", 3, "10-12", "90s"),
				newExercise("Bicep Curl", 3, "10-12", "75s"),
				newExercise("Hammer Curl", 3, "10-12", "60s"),
			},
			CategoryLegs: {
				newExercise("Squat", 4, "5-8", "150s"),
				newExercise("Lunge", 3, "10-12", "90s"),
				newExercise("Deadlift", 3, "5-6", "180s"),
				newExercise("Leg Press", 3, "12-15", "90s"),
				newExercise("Calf Raise", 4, "15-20", "60s"),
			},
		},
	}
}

// LoadFile reads a TOML library, e.g.:
//
//	[[push]]
//	name = "Bench Press"
//	sets = 4
//	reps = "6-10"
//	rest = "120s"
func LoadFile(path string) (*Library, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open exercises file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warnf("close exercises file: %s", err)
		}
	}()

	lib, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse exercises file %s: %w", path, err)
	}
	return lib, nil
}

func Parse(r io.Reader) (*Library, error) {
	raw := make(map[string][]Exercise)
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	lib := &Library{
		byCategory: make(map[Category][]Exercise),
	}
	for name, list := range raw {
		category, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		for i := range list {
			if err := validate(&list[i]); err != nil {
				return nil, fmt.Errorf("%s exercise #%d: %w", category, i+1, err)
			}
		}
		lib.byCategory[category] = list
	}

	for _, category := range AllCategories() {
		if len(lib.byCategory[category]) == 0 {
			return nil, fmt.Errorf("category %s has no exercises", category)
		}
	}

	log.Debugf("loaded exercise library: %d push, %d pull, %d legs",
		lib.Len(CategoryPush), lib.Len(CategoryPull), lib.Len(CategoryLegs))

	return lib, nil
}

func validate(ex *Exercise) error {
	if ex.Name == "" {
		return errors.New("name is empty")
	}
	if ex.Sets < 1 {
		return fmt.Errorf("%s: sets must be at least 1, got %d", ex.Name, ex.Sets)
	}
	restSeconds, err := ParseRest(ex.Rest)
	if err != nil {
		return fmt.Errorf("%s: %w", ex.Name, err)
	}
	ex.RestSeconds = restSeconds
	return nil
}

func (l *Library) Categories() []Category {
	return AllCategories()
}

func (l *Library) Len(category Category) int {
	return len(l.byCategory[category])
}

// Get returns the exercise at index, wrapping the index around the category length.
func (l *Library) Get(category Category, index int) (Exercise, error) {
	list, ok := l.byCategory[category]
	if !ok || len(list) == 0 {
		return Exercise{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return list[wrap(index, len(list))], nil
}

// List returns a copy of the category's exercises.
func (l *Library) List(category Category) ([]Exercise, error) {
	list, ok := l.byCategory[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	out := make([]Exercise, len(list))
	copy(out, list)
	return out, nil
}

func NextIndex(i, length int) int {
	if length <= 0 {
		return 0
	}
	return (i + 1) % length
}

func PrevIndex(i, length int) int {
	if length <= 0 {
		return 0
	}
	return (i - 1 + length) % length
}

func wrap(i, length int) int {
	return ((i % length) + length) % length
}
