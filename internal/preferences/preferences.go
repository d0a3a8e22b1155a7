package preferences

import (
	"context"
	"fmt"
	"strconv"

	"github.com/2beens/workouttracker/internal/storage"

	log "github.com/sirupsen/logrus"
)

const (
	ThemeKey = "workoutTrackerTheme"
	SoundKey = "soundEnabled"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

type Snapshot struct {
	Theme        Theme `json:"theme"`
	SoundEnabled bool  `json:"soundEnabled"`
}

// Preferences holds the theme and sound flags. Not safe for concurrent use.
type Preferences struct {
	store        storage.Store
	theme        Theme
	soundEnabled bool
}

func New(store storage.Store) *Preferences {
	return &Preferences{
		store:        store,
		theme:        ThemeDark,
		soundEnabled: true,
	}
}

// Load reads stored preferences. Missing or unknown values keep the defaults.
func (p *Preferences) Load(ctx context.Context) error {
	theme, err := p.store.Get(ctx, ThemeKey)
	switch {
	case err == nil:
		switch Theme(theme) {
		case ThemeDark, ThemeLight:
			p.theme = Theme(theme)
		default:
			log.Warnf("unknown stored theme %q, using %s", theme, p.theme)
		}
	case !storage.IsNotFound(err):
		return fmt.Errorf("load theme: %w", err)
	}

	sound, err := p.store.Get(ctx, SoundKey)
	switch {
	case err == nil:
		// only the exact string "true" keeps sound on
		p.soundEnabled = sound == "true"
		if sound != "true" && sound != "false" {
			log.Warnf("unknown stored sound flag %q, sound off", sound)
		}
	case !storage.IsNotFound(err):
		return fmt.Errorf("load sound flag: %w", err)
	}

	return nil
}

func (p *Preferences) Theme() Theme {
	return p.theme
}

func (p *Preferences) SoundEnabled() bool {
	return p.soundEnabled
}

func (p *Preferences) Snapshot() Snapshot {
	return Snapshot{
		Theme:        p.theme,
		SoundEnabled: p.soundEnabled,
	}
}

// ToggleTheme switches between dark and light and persists the choice.
func (p *Preferences) ToggleTheme(ctx context.Context) (Theme, error) {
	next := p.theme.Toggle()
	if err := p.store.Set(ctx, ThemeKey, string(next)); err != nil {
		return p.theme, fmt.Errorf("save theme: %w", err)
	}
	p.theme = next
	return next, nil
}

func (p *Preferences) SetSound(ctx context.Context, enabled bool) error {
	if err := p.store.Set(ctx, SoundKey, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("save sound flag: %w", err)
	}
	p.soundEnabled = enabled
	return nil
}
