// Package notifysvc delivers wizard notices to the user-facing layers.
package notifysvc

import (
	"sync"

	"github.com/trezcool/apar/core"
	"github.com/trezcool/apar/core/assessment"
)

// inboxSize bounds the notices kept per assessment; older ones are dropped first.
const inboxSize = 20

// Inbox keeps the latest notices of every assessment until they are drained.
type Inbox struct {
	mu      sync.Mutex
	notices map[string][]assessment.Notice
}

var _ assessment.Notifier = (*Inbox)(nil)

func NewInbox() *Inbox {
	return &Inbox{notices: make(map[string][]assessment.Notice)}
}

func (in *Inbox) Notify(assessmentID string, n assessment.Notice) {
	in.mu.Lock()
	defer in.mu.Unlock()
	ns := append(in.notices[assessmentID], n)
	if len(ns) > inboxSize {
		ns = ns[len(ns)-inboxSize:]
	}
	in.notices[assessmentID] = ns
}

// Drain returns and forgets the pending notices of an assessment, oldest first.
func (in *Inbox) Drain(assessmentID string) []assessment.Notice {
	in.mu.Lock()
	defer in.mu.Unlock()
	ns := in.notices[assessmentID]
	delete(in.notices, assessmentID)
	if ns == nil {
		return []assessment.Notice{}
	}
	return ns
}

// Forget drops everything kept for an assessment.
func (in *Inbox) Forget(assessmentID string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	delete(in.notices, assessmentID)
}

// LogNotifier writes notices to the app logger.
type LogNotifier struct {
	logger core.Logger
}

var _ assessment.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger core.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(assessmentID string, notice assessment.Notice) {
	extra := map[string]interface{}{"assessment": assessmentID}
	switch notice.Level {
	case assessment.LevelError:
		n.logger.Error(notice.Message, extra)
	case assessment.LevelWarning:
		n.logger.Warn(notice.Message, extra)
	default:
		n.logger.Info(notice.Message, extra)
	}
}

// Multi fans every notice out to all notifiers, in order.
type Multi []assessment.Notifier

func (m Multi) Notify(assessmentID string, n assessment.Notice) {
	for _, notifier := range m {
		notifier.Notify(assessmentID, n)
	}
}
