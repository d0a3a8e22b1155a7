package notify

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Severity can be one of:
//   - info
//   - success
//   - warning
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

func (s Severity) String() string {
	return string(s)
}

// Notifier shows a transient notification (toast) to the user.
type Notifier interface {
	Notify(title, message string, severity Severity)
}

type Toast struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to the log.
type LogNotifier struct{}

func (LogNotifier) Notify(title, message string, severity Severity) {
	log.WithField("severity", severity).Infof("[%s] %s", title, message)
}

var _ Notifier = (*Feed)(nil)

// Feed keeps the most recent toasts so a UI can poll them.
type Feed struct {
	mutex  sync.RWMutex
	toasts []Toast
	nextID int
	limit  int
	now    func() time.Time
}

const DefaultFeedLimit = 50

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return &Feed{
		limit:  limit,
		nextID: 1,
		now:    time.Now,
	}
}

func (f *Feed) Notify(title, message string, severity Severity) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.toasts = append(f.toasts, Toast{
		ID:        f.nextID,
		Title:     title,
		Message:   message,
		Severity:  severity,
		Timestamp: f.now(),
	})
	f.nextID++

	if len(f.toasts) > f.limit {
		f.toasts = f.toasts[len(f.toasts)-f.limit:]
	}
}

// Since returns toasts with an id greater than the given one, oldest first.
func (f *Feed) Since(id int) []Toast {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	res := make([]Toast, 0)
	for _, t := range f.toasts {
		if t.ID > id {
			res = append(res, t)
		}
	}
	return res
}

// Last returns the newest toast, if any.
func (f *Feed) Last() (Toast, bool) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	if len(f.toasts) == 0 {
		return Toast{}, false
	}
	return f.toasts[len(f.toasts)-1], true
}

var _ Notifier = Multi(nil)

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(title, message string, severity Severity) {
	for _, n := range m {
		if n != nil {
			n.Notify(title, message, severity)
		}
	}
}
