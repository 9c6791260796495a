package match

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Live event names, one per kind of change a subscriber may render.
const (
	EventBallUpdate      = "ball_update"
	EventOverComplete    = "over_complete"
	EventWicket          = "wicket"
	EventInningsComplete = "innings_complete"
	EventMatchComplete   = "match_complete"
	EventUndoBall        = "undo_ball"
	EventScoreUpdate     = "score_update"
	EventInningsStarted  = "innings_started"
	EventMatchUpdated    = "match_updated"
)

// Snapshot is a consistent copy of the state right after a commit.
type Snapshot struct {
	Match       Match      `json:"match"`
	Innings     *Innings   `json:"innings,omitempty"`
	CurrentOver *Over      `json:"current_over,omitempty"`
	Ball        *BallEvent `json:"ball,omitempty"`
}

// Notification is pushed to observers after a mutation has been persisted.
type Notification struct {
	ID         string    `json:"id"`
	Event      string    `json:"event"`
	MatchID    uint      `json:"match_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Snapshot   Snapshot  `json:"snapshot"`
}

// Notifier receives committed changes. Implementations must not retain the snapshot for mutation.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

func newNotification(event string, snap Snapshot, at time.Time) Notification {
	return Notification{
		ID:         uuid.NewString(),
		Event:      event,
		MatchID:    snap.Match.ID,
		OccurredAt: at,
		Snapshot:   snap,
	}
}

// Dispatcher delivers notifications from a single goroutine, in enqueue order.
// Enqueue never blocks: when the buffer is full the notification is dropped.
type Dispatcher struct {
	notifier Notifier
	queue    chan Notification
	logger   *slog.Logger
}

func NewDispatcher(notifier Notifier, buffer int, logger *slog.Logger) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	return &Dispatcher{
		notifier: notifier,
		queue:    make(chan Notification, buffer),
		logger:   logger,
	}
}

// Enqueue reports whether n was accepted.
func (d *Dispatcher) Enqueue(n Notification) bool {
	select {
	case d.queue <- n:
		return true
	default:
		d.logger.Warn("notification dropped, dispatch buffer full", "event", n.Event, "match_id", n.MatchID)
		return false
	}
}

// Run delivers queued notifications until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-d.queue:
			if err := d.notifier.Notify(ctx, n); err != nil {
				d.logger.Warn("notification delivery failed", "error", err, "event", n.Event, "match_id", n.MatchID)
			}
		}
	}
}
