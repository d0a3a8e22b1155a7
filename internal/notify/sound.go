package notify

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Sound can be one of:
//   - start
//   - complete
type Sound string

const (
	SoundStart    Sound = "start"
	SoundComplete Sound = "complete"
)

// Player plays short cue sounds. Implementations swallow playback failures.
type Player interface {
	Play(sound Sound)
}

var _ Player = (*BellPlayer)(nil)

// BellPlayer rings the terminal bell: once for start, twice for complete.
type BellPlayer struct {
	Out io.Writer
}

func (p *BellPlayer) Play(sound Sound) {
	if p == nil || p.Out == nil {
		return
	}
	bell := "\a"
	if sound == SoundComplete {
		bell = "\a\a"
	}
	if _, err := io.WriteString(p.Out, bell); err != nil {
		log.Debugf("sound %s not played: %s", sound, err)
	}
}

var _ Player = (*Gated)(nil)

// Gated plays only while Enabled reports true.
type Gated struct {
	Player  Player
	Enabled func() bool
}

func (g *Gated) Play(sound Sound) {
	if g.Player == nil {
		return
	}
	if g.Enabled != nil && !g.Enabled() {
		return
	}
	g.Player.Play(sound)
}

var _ Player = NopPlayer{}

type NopPlayer struct{}

func (NopPlayer) Play(Sound) {}
