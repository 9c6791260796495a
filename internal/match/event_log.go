package match

// EventLog is the append-only delivery history of one innings, ordered by Sequence.
type EventLog struct {
	Events []BallEvent `json:"events"`
}

// NextSequence returns the sequence for the next delivery. Undone events keep their numbers.
func (l *EventLog) NextSequence() int {
	if len(l.Events) == 0 {
		return 1
	}
	return l.Events[len(l.Events)-1].Sequence + 1
}

func (l *EventLog) Append(ev BallEvent) {
	l.Events = append(l.Events, ev)
}

// LastActive returns the index of the most recent event that has not been undone, or -1.
func (l *EventLog) LastActive() int {
	for i := len(l.Events) - 1; i >= 0; i-- {
		if !l.Events[i].IsUndone {
			return i
		}
	}
	return -1
}

// Active returns the events that still count, in sequence order.
func (l EventLog) Active() []BallEvent {
	active := make([]BallEvent, 0, len(l.Events))
	for _, ev := range l.Events {
		if !ev.IsUndone {
			active = append(active, ev)
		}
	}
	return active
}

// ActiveInOver returns the live deliveries of the given over.
func (l EventLog) ActiveInOver(overNumber int) []BallEvent {
	var balls []BallEvent
	for _, ev := range l.Events {
		if !ev.IsUndone && ev.OverNumber == overNumber {
			balls = append(balls, ev)
		}
	}
	return balls
}

// Tombstone marks the event at index i as undone and returns it.
func (l *EventLog) Tombstone(i int) BallEvent {
	l.Events[i].IsUndone = true
	return l.Events[i]
}

func (l EventLog) clone() EventLog {
	events := cloneSlice(l.Events)
	for i := range events {
		events[i] = events[i].clone()
	}
	return EventLog{Events: events}
}
