package match

import (
	"fmt"
	"math"
)

// InningsState is one innings together with its overs and delivery log.
type InningsState struct {
	Innings Innings  `json:"innings"`
	Overs   []Over   `json:"overs"`
	Log     EventLog `json:"log"`
}

// MatchState is everything the engine needs to score a match.
// Operations mutate a Clone and the caller swaps it in only after it is persisted.
type MatchState struct {
	Match   Match          `json:"match"`
	Innings []InningsState `json:"innings"`
}

// InningsByNumber returns innings 1 or 2, or nil when it has not been started.
func (s *MatchState) InningsByNumber(number int) *InningsState {
	for i := range s.Innings {
		if s.Innings[i].Innings.Number == number {
			return &s.Innings[i]
		}
	}
	return nil
}

// Current returns the innings the match pointer refers to, or nil while it awaits setup.
func (s *MatchState) Current() *InningsState {
	return s.InningsByNumber(s.Match.CurrentInnings)
}

// activeInnings is the in-progress innings of a live match.
func (s *MatchState) activeInnings() (*InningsState, error) {
	if s.Match.Status != StatusMatchLive {
		return nil, invalidState("match is %s, not live", s.Match.Status)
	}
	cur := s.Current()
	if cur == nil {
		return nil, invalidState("innings %d has not started", s.Match.CurrentInnings)
	}
	if cur.Innings.Status != InningsInProgress {
		return nil, invalidState("innings %d is %s", cur.Innings.Number, cur.Innings.Status)
	}
	return cur, nil
}

// OverByNumber returns the over with the given number and its index, or nil, -1.
func (s *InningsState) OverByNumber(number int) (*Over, int) {
	for i := range s.Overs {
		if s.Overs[i].Number == number {
			return &s.Overs[i], i
		}
	}
	return nil, -1
}

// CurrentOver returns the open over, if a ball has been bowled in it.
func (s *InningsState) CurrentOver() *Over {
	ov, _ := s.OverByNumber(s.Innings.CurrentOver)
	return ov
}

func (s *InningsState) lastCompletedOver() *Over {
	for i := len(s.Overs) - 1; i >= 0; i-- {
		if s.Overs[i].IsComplete {
			return &s.Overs[i]
		}
	}
	return nil
}

func (s *InningsState) removeOver(idx int) {
	s.Overs = append(s.Overs[:idx:idx], s.Overs[idx+1:]...)
}

// Clone returns a deep copy.
func (s *MatchState) Clone() *MatchState {
	out := &MatchState{Match: s.Match.clone(), Innings: make([]InningsState, len(s.Innings))}
	for i := range s.Innings {
		out.Innings[i] = s.Innings[i].clone()
	}
	return out
}

func (s InningsState) clone() InningsState {
	return InningsState{Innings: s.Innings.clone(), Overs: cloneSlice(s.Overs), Log: s.Log.clone()}
}

func (m Match) clone() Match {
	out := m
	out.TeamA.Players = cloneSlice(m.TeamA.Players)
	out.TeamB.Players = cloneSlice(m.TeamB.Players)
	out.ScheduledAt = clonePtr(m.ScheduledAt)
	out.Toss.WinnerID = clonePtr(m.Toss.WinnerID)
	out.Result.WinnerID = clonePtr(m.Result.WinnerID)
	out.Result.Margin = clonePtr(m.Result.Margin)
	return out
}

func (inn Innings) clone() Innings {
	out := inn
	out.Target = clonePtr(inn.Target)
	out.RequiredRunRate = clonePtr(inn.RequiredRunRate)
	out.StrikerID = clonePtr(inn.StrikerID)
	out.NonStrikerID = clonePtr(inn.NonStrikerID)
	out.BowlerID = clonePtr(inn.BowlerID)
	out.Batters = cloneSlice(inn.Batters)
	for i := range out.Batters {
		out.Batters[i].DismissedBy = clonePtr(out.Batters[i].DismissedBy)
		out.Batters[i].FielderID = clonePtr(out.Batters[i].FielderID)
	}
	out.Bowlers = cloneSlice(inn.Bowlers)
	out.FallOfWickets = cloneSlice(inn.FallOfWickets)
	return out
}

func (ev BallEvent) clone() BallEvent {
	out := ev
	if ev.Wicket != nil {
		w := *ev.Wicket
		w.BowlerID = clonePtr(w.BowlerID)
		w.FielderID = clonePtr(w.FielderID)
		out.Wicket = &w
	}
	if ev.Extras != nil {
		x := *ev.Extras
		out.Extras = &x
	}
	return out
}

// cloneSlice copies s, keeping nil and empty distinct.
func cloneSlice[S ~[]E, E any](s S) S {
	if s == nil {
		return nil
	}
	out := make(S, len(s))
	copy(out, s)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptr[T any](v T) *T {
	return &v
}

func sameID(p *uint, id uint) bool {
	return p != nil && *p == id
}

// FormatOvers renders a legal-ball count as "overs.balls".
func FormatOvers(totalBalls int) string {
	return fmt.Sprintf("%d.%d", totalBalls/6, totalBalls%6)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
