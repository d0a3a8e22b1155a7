package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/2beens/workouttracker/internal/calendar"
	"github.com/2beens/workouttracker/internal/notify"
	"github.com/2beens/workouttracker/internal/preferences"
	"github.com/2beens/workouttracker/internal/tracker"
	"github.com/2beens/workouttracker/internal/workout"

	"github.com/charmbracelet/lipgloss"
)

const progressBarWidth = 24

type palette struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
}

func newPalette(theme preferences.Theme) palette {
	if theme == preferences.ThemeLight {
		return palette{
			title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1F2937")),
			muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
			accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB")),
			success: lipgloss.NewStyle().Foreground(lipgloss.Color("#047857")),
			warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#B45309")),
		}
	}
	return palette{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	}
}

var (
	_ tracker.Renderer = (*Renderer)(nil)
	_ notify.Notifier  = (*Renderer)(nil)
)

// Renderer prints tracker state and toasts as text lines. Timer ticks are
// only printed when Verbose is set, otherwise the timer shows up on changes
// of its running state and on the state command.
type Renderer struct {
	mutex   sync.Mutex
	out     io.Writer
	palette palette
	running bool
	Verbose bool
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:     out,
		palette: newPalette(preferences.ThemeDark),
	}
}

func (r *Renderer) currentPalette() palette {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.palette
}

func (r *Renderer) printf(format string, args ...any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	// terminal output failures are not actionable
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *Renderer) RenderTimer(timer tracker.TimerSnapshot) {
	r.mutex.Lock()
	changed := r.running != timer.Running
	r.running = timer.Running
	verbose := r.Verbose
	r.mutex.Unlock()

	if !changed && !verbose && timer.Elapsed != 0 {
		return
	}
	r.printf("%s\n", timerLine(r.currentPalette(), timer))
}

func timerLine(p palette, timer tracker.TimerSnapshot) string {
	state := p.muted.Render("stopped")
	if timer.Running {
		state = p.success.Render("running")
	}
	return fmt.Sprintf("%s %s (%s)", p.title.Render("Timer"), timer.Display, state)
}

func (r *Renderer) RenderExercise(ex workout.Snapshot) {
	r.printf("%s\n", exerciseLine(r.currentPalette(), ex))
}

func exerciseLine(p palette, ex workout.Snapshot) string {
	dots := make([]string, ex.ExerciseCount)
	for i := range dots {
		if i == ex.ExerciseIndex {
			dots[i] = p.accent.Render("●")
		} else {
			dots[i] = p.muted.Render("○")
		}
	}

	rest := ex.RestDisplay
	if ex.Resting {
		rest = p.warning.Render("resting " + ex.RestDisplay)
	}

	return fmt.Sprintf(
		"%s [%s] %s  set %d/%d  reps %s  rest %s  %s",
		p.title.Render(strings.ToUpper(ex.Category.String())),
		strings.Join(dots, ""),
		ex.Exercise.Name,
		ex.CurrentSet, ex.Exercise.Sets,
		ex.Exercise.Reps,
		rest,
		p.muted.Render(string(ex.State)),
	)
}

func (r *Renderer) RenderCalendar(view calendar.View) {
	r.printf("%s", calendarBlock(r.currentPalette(), view))
}

func calendarBlock(p palette, view calendar.View) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %d  %s %d%%\n",
		p.title.Render("Calendar"),
		view.Month, view.Year,
		progressBar(view.Percentage, progressBarWidth),
		view.Percentage,
	)
	for week := 1; week <= calendar.Weeks; week++ {
		fmt.Fprintf(&sb, "  W%d", week)
		for _, cell := range view.Cells {
			if cell.Week != week {
				continue
			}
			sb.WriteString(" " + cellText(p, cell))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func cellText(p palette, cell calendar.Cell) string {
	if !cell.WorkoutDay {
		return p.muted.Render(fmt.Sprintf("%2d  -  ", cell.Day))
	}
	mark := " "
	style := p.accent
	if cell.Completed {
		mark = "x"
		style = p.success
	}
	return style.Render(fmt.Sprintf("%2d[%s]%-4s", cell.Day, mark, cell.Type))
}

func (r *Renderer) RenderPreferences(prefs preferences.Snapshot) {
	r.mutex.Lock()
	r.palette = newPalette(prefs.Theme)
	p := r.palette
	r.mutex.Unlock()

	sound := "off"
	if prefs.SoundEnabled {
		sound = "on"
	}
	r.printf("%s theme %s, sound %s\n", p.title.Render("Preferences"), prefs.Theme, sound)
}

// Notify prints a toast line.
func (r *Renderer) Notify(title, message string, severity notify.Severity) {
	p := r.currentPalette()
	style := p.accent
	switch severity {
	case notify.SeveritySuccess:
		style = p.success
	case notify.SeverityWarning:
		style = p.warning
	}
	r.printf("%s %s\n", style.Render("» "+title), message)
}

// RenderSnapshot prints the whole session, used by the state command.
func (r *Renderer) RenderSnapshot(snap tracker.Snapshot) {
	p := r.currentPalette()
	sound := "off"
	if snap.Preferences.SoundEnabled {
		sound = "on"
	}
	r.printf("%s\n%s\n%s%s theme %s, sound %s\n",
		timerLine(p, snap.Timer),
		exerciseLine(p, snap.Workout),
		calendarBlock(p, snap.Calendar),
		p.title.Render("Preferences"), snap.Preferences.Theme, sound,
	)
}

func progressBar(percentage, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}
	filled := (percentage * width) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
