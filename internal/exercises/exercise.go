package exercises

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownCategory = errors.New("unknown workout category")
	ErrInvalidRest     = errors.New("invalid rest duration")
)

type Exercise struct {
	Name        string `json:"name" toml:"name"`
	Sets        int    `json:"sets" toml:"sets"`
	Reps        string `json:"reps" toml:"reps"`
	Rest        string `json:"rest" toml:"rest"`
	RestSeconds int    `json:"restSeconds" toml:"-"`
}

// Category can be one of:
//   - push
//   - pull
//   - legs
type Category string

const (
	CategoryPush Category = "push"
	CategoryPull Category = "pull"
	CategoryLegs Category = "legs"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryPush, CategoryPull, CategoryLegs:
		return true
	default:
		return false
	}
}

// AllCategories in the order they are presented.
func AllCategories() []Category {
	return []Category{CategoryPush, CategoryPull, CategoryLegs}
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// ParseRest turns a rest string like "120s" into seconds.
func ParseRest(rest string) (int, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(rest), "s")
	seconds, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRest, rest)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidRest, rest)
	}
	return seconds, nil
}

func newExercise(name string, sets int, reps, rest string) Exercise {
	restSeconds, err := ParseRest(rest)
	if err != nil {
		panic(err)
	}
	return Exercise{
		Name:        name,
		Sets:        sets,
		Reps:        reps,
		Rest:        rest,
		RestSeconds: restSeconds,
	}
}
