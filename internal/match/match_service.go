package match

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MatchView is a match with its innings aggregates.
type MatchView struct {
	Match   Match     `json:"match"`
	Innings []Innings `json:"innings"`
}

// BallResult is returned after a delivery is recorded.
type BallResult struct {
	Delivery
	Innings Innings `json:"innings"`
	Over    *Over   `json:"over,omitempty"`
}

// UndoOutcome is returned after the last delivery is undone.
type UndoOutcome struct {
	UndoResult
	Innings Innings `json:"innings"`
	Over    *Over   `json:"over,omitempty"`
}

// CurrentOverView is the open over of the live innings and its deliveries so far.
type CurrentOverView struct {
	InningsNumber int         `json:"innings_number"`
	Over          *Over       `json:"over,omitempty"`
	Balls         []BallEvent `json:"balls"`
}

type matchEntry struct {
	mu    sync.Mutex
	state *MatchState
}

// Service serialises all changes to a match behind one lock per match.
// Each change runs on a clone that replaces the committed state only once the repository accepts it.
type Service struct {
	repo       MatchRepository
	dispatcher *Dispatcher
	logger     *slog.Logger
	now        func() time.Time

	mu      sync.Mutex
	entries map[uint]*matchEntry
}

// NewService wires a scoring service. dispatcher may be nil when nothing listens.
func NewService(repo MatchRepository, dispatcher *Dispatcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
		entries:    make(map[uint]*matchEntry),
	}
}

func (s *Service) entry(matchID uint) *matchEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[matchID]
	if !ok {
		e = &matchEntry{}
		s.entries[matchID] = e
	}
	return e
}

// loadLocked returns the committed state, reading it from the repository on first use.
func (s *Service) loadLocked(ctx context.Context, matchID uint, e *matchEntry) (*MatchState, error) {
	if e.state != nil {
		return e.state, nil
	}
	st, err := s.repo.LoadMatch(ctx, matchID)
	if err != nil {
		return nil, storageError("failed to load match", err)
	}
	if st == nil {
		return nil, notFound("match %d not found", matchID)
	}
	e.state = st
	return st, nil
}

// change is what a mutation hands back to be persisted and announced.
type change struct {
	cs      Changeset
	innings int
	events  []string
}

func (s *Service) mutate(ctx context.Context, matchID uint, op string, fn func(next *MatchState) (change, error)) (*MatchState, error) {
	e := s.entry(matchID)
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := s.loadLocked(ctx, matchID, e)
	if err != nil {
		return nil, err
	}

	next := cur.Clone()
	ch, err := fn(next)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Commit(ctx, ch.cs); err != nil {
		s.logger.Error("commit failed, change discarded", "op", op, "match_id", matchID, "error", err)
		return nil, storageError("failed to persist "+op, err)
	}
	e.state = next

	if s.dispatcher != nil && len(ch.events) > 0 {
		snap := snapshotOf(next.Clone(), ch.innings, ch.cs.Ball)
		at := s.now()
		for _, event := range ch.events {
			s.dispatcher.Enqueue(newNotification(event, snap, at))
		}
	}
	return next.Clone(), nil
}

func snapshotOf(st *MatchState, inningsNumber int, ball *BallEvent) Snapshot {
	snap := Snapshot{Match: st.Match}
	if is := st.InningsByNumber(inningsNumber); is != nil {
		inn := is.Innings
		snap.Innings = &inn
		if ov := is.CurrentOver(); ov != nil {
			o := *ov
			snap.CurrentOver = &o
		}
	}
	if ball != nil {
		b := ball.clone()
		snap.Ball = &b
	}
	return snap
}

func (s *Service) read(ctx context.Context, matchID uint, fn func(st *MatchState) error) error {
	e := s.entry(matchID)
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := s.loadLocked(ctx, matchID, e)
	if err != nil {
		return err
	}
	return fn(st)
}

// CreateMatch stores a new upcoming match with a fresh public link.
func (s *Service) CreateMatch(ctx context.Context, p NewMatchParams) (*Match, error) {
	m, err := NewMatch(p, uuid.NewString())
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateMatch(ctx, m); err != nil {
		return nil, storageError("failed to create match", err)
	}
	s.logger.Info("match created", "match_id", m.ID, "team_a", m.TeamA.Name, "team_b", m.TeamB.Name, "overs", m.TotalOvers)
	out := m.clone()
	return &out, nil
}

func (s *Service) SetToss(ctx context.Context, matchID, winnerID uint, decision TossDecision) (*Match, error) {
	st, err := s.mutate(ctx, matchID, "toss", func(next *MatchState) (change, error) {
		if err := next.SetToss(winnerID, decision); err != nil {
			return change{}, err
		}
		return change{cs: Changeset{Match: &next.Match}, events: []string{EventMatchUpdated}}, nil
	})
	if err != nil {
		return nil, err
	}
	return &st.Match, nil
}

// UpdateMatch changes the venue or scheduled start of an upcoming match.
func (s *Service) UpdateMatch(ctx context.Context, matchID uint, venue *string, scheduledAt *time.Time) (*Match, error) {
	st, err := s.mutate(ctx, matchID, "update match", func(next *MatchState) (change, error) {
		if err := next.UpdateDetails(venue, scheduledAt); err != nil {
			return change{}, err
		}
		return change{cs: Changeset{Match: &next.Match}, events: []string{EventMatchUpdated}}, nil
	})
	if err != nil {
		return nil, err
	}
	return &st.Match, nil
}

// UpdateSquads replaces one or both squad lists.
func (s *Service) UpdateSquads(ctx context.Context, matchID uint, teamA, teamB PlayerIDs) (*Match, error) {
	st, err := s.mutate(ctx, matchID, "update squads", func(next *MatchState) (change, error) {
		if err := next.SetSquads(teamA, teamB); err != nil {
			return change{}, err
		}
		return change{
			cs:      Changeset{Match: &next.Match},
			innings: next.Match.CurrentInnings,
			events:  []string{EventMatchUpdated},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("squads updated", "match_id", matchID, "team_a_players", len(st.Match.TeamA.Players), "team_b_players", len(st.Match.TeamB.Players))
	return &st.Match, nil
}

// DeleteMatch removes a match and its scoring history in any status.
func (s *Service) DeleteMatch(ctx context.Context, matchID uint) error {
	e := s.entry(matchID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := s.loadLocked(ctx, matchID, e); err != nil {
		return err
	}
	if err := s.repo.DeleteMatch(ctx, matchID); err != nil {
		s.logger.Error("delete failed", "match_id", matchID, "error", err)
		return storageError("failed to delete match", err)
	}
	e.state = nil

	s.mu.Lock()
	delete(s.entries, matchID)
	s.mu.Unlock()

	s.logger.Info("match deleted", "match_id", matchID)
	return nil
}

// StartMatch opens innings 1.
func (s *Service) StartMatch(ctx context.Context, matchID uint, o Openers) (*Innings, error) {
	st, err := s.mutate(ctx, matchID, "start match", func(next *MatchState) (change, error) {
		if err := next.StartMatch(o); err != nil {
			return change{}, err
		}
		inn := &next.InningsByNumber(1).Innings
		return change{
			cs:      Changeset{Match: &next.Match, Innings: inn},
			innings: 1,
			events:  []string{EventInningsStarted},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("match started", "match_id", matchID, "batting_team", st.InningsByNumber(1).Innings.BattingTeamID)
	return &st.InningsByNumber(1).Innings, nil
}

// StartSecondInnings opens the chase.
func (s *Service) StartSecondInnings(ctx context.Context, matchID uint, o Openers) (*Innings, error) {
	st, err := s.mutate(ctx, matchID, "start second innings", func(next *MatchState) (change, error) {
		if err := next.StartSecondInnings(o); err != nil {
			return change{}, err
		}
		inn := &next.InningsByNumber(2).Innings
		return change{
			cs:      Changeset{Match: &next.Match, Innings: inn},
			innings: 2,
			events:  []string{EventInningsStarted},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	inn := &st.InningsByNumber(2).Innings
	s.logger.Info("second innings started", "match_id", matchID, "target", *inn.Target)
	return inn, nil
}

// RecordBall scores one delivery on the live innings.
func (s *Service) RecordBall(ctx context.Context, matchID uint, in BallInput) (*BallResult, error) {
	var d *Delivery
	st, err := s.mutate(ctx, matchID, "record ball", func(next *MatchState) (change, error) {
		var err error
		d, err = next.RecordBall(in, s.now())
		if err != nil {
			return change{}, err
		}
		is := next.InningsByNumber(d.InningsNumber)
		over, _ := is.OverByNumber(d.Ball.OverNumber)

		events := []string{EventBallUpdate}
		if d.Ball.IsWicket {
			events = append(events, EventWicket)
		}
		if d.OverCompleted {
			events = append(events, EventOverComplete)
		}
		if d.InningsCompleted {
			events = append(events, EventInningsComplete)
		}
		if d.MatchCompleted {
			events = append(events, EventMatchComplete)
		}
		return change{
			cs: Changeset{
				Match:   &next.Match,
				Innings: &is.Innings,
				Over:    over,
				Ball:    &is.Log.Events[len(is.Log.Events)-1],
			},
			innings: d.InningsNumber,
			events:  events,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	is := st.InningsByNumber(d.InningsNumber)
	res := &BallResult{Delivery: *d, Innings: is.Innings}
	res.Ball = is.Log.Events[len(is.Log.Events)-1]
	if ov, _ := is.OverByNumber(d.Ball.OverNumber); ov != nil {
		res.Over = ov
	}
	s.logger.Debug("ball recorded",
		"match_id", matchID,
		"innings", d.InningsNumber,
		"sequence", res.Ball.Sequence,
		"score", is.Innings.TotalRuns,
		"wickets", is.Innings.TotalWickets,
		"overs", is.Innings.Overs,
	)
	if d.MatchCompleted {
		s.logger.Info("match completed", "match_id", matchID, "result", st.Match.Result.Summary)
	}
	return res, nil
}

// UndoLastBall reverses the most recent delivery.
func (s *Service) UndoLastBall(ctx context.Context, matchID uint) (*UndoOutcome, error) {
	var r *UndoResult
	st, err := s.mutate(ctx, matchID, "undo ball", func(next *MatchState) (change, error) {
		var err error
		r, err = next.UndoLastBall()
		if err != nil {
			return change{}, err
		}
		is := next.InningsByNumber(r.InningsNumber)
		cs := Changeset{Match: &next.Match, Innings: &is.Innings, DeletedOver: r.RemovedOver}
		if r.RemovedOver == nil {
			cs.Over, _ = is.OverByNumber(r.Ball.OverNumber)
		}
		for i := range is.Log.Events {
			if is.Log.Events[i].Sequence == r.Ball.Sequence {
				cs.Ball = &is.Log.Events[i]
				break
			}
		}
		return change{cs: cs, innings: r.InningsNumber, events: []string{EventUndoBall}}, nil
	})
	if err != nil {
		return nil, err
	}

	is := st.InningsByNumber(r.InningsNumber)
	out := &UndoOutcome{UndoResult: *r, Innings: is.Innings}
	out.Over = is.CurrentOver()
	s.logger.Info("ball undone", "match_id", matchID, "innings", r.InningsNumber, "sequence", r.Ball.Sequence)
	return out, nil
}

// selection covers the crease and bowler changes that only touch the innings row.
func (s *Service) selection(ctx context.Context, matchID uint, op string, fn func(next *MatchState) error) (*Innings, error) {
	var number int
	st, err := s.mutate(ctx, matchID, op, func(next *MatchState) (change, error) {
		if err := fn(next); err != nil {
			return change{}, err
		}
		number = next.Match.CurrentInnings
		return change{
			cs:      Changeset{Innings: &next.Current().Innings},
			innings: number,
			events:  []string{EventScoreUpdate},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &st.InningsByNumber(number).Innings, nil
}

func (s *Service) SetBatter(ctx context.Context, matchID, playerID uint, isStriker bool) (*Innings, error) {
	return s.selection(ctx, matchID, "set batter", func(next *MatchState) error {
		return next.SetBatter(playerID, isStriker)
	})
}

func (s *Service) SetBowler(ctx context.Context, matchID, playerID uint) (*Innings, error) {
	return s.selection(ctx, matchID, "set bowler", func(next *MatchState) error {
		return next.SetBowler(playerID)
	})
}

func (s *Service) SwapBatters(ctx context.Context, matchID uint) (*Innings, error) {
	return s.selection(ctx, matchID, "swap batters", func(next *MatchState) error {
		return next.SwapBatters()
	})
}

func (s *Service) AbandonMatch(ctx context.Context, matchID uint) (*Match, error) {
	st, err := s.mutate(ctx, matchID, "abandon match", func(next *MatchState) (change, error) {
		if err := next.Abandon(); err != nil {
			return change{}, err
		}
		return change{
			cs:      Changeset{Match: &next.Match},
			innings: next.Match.CurrentInnings,
			events:  []string{EventMatchUpdated},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("match abandoned", "match_id", matchID)
	return &st.Match, nil
}

func (s *Service) GetMatch(ctx context.Context, matchID uint) (*MatchView, error) {
	var view *MatchView
	err := s.read(ctx, matchID, func(st *MatchState) error {
		view = viewOf(st)
		return nil
	})
	return view, err
}

func viewOf(st *MatchState) *MatchView {
	c := st.Clone()
	view := &MatchView{Match: c.Match, Innings: make([]Innings, 0, len(c.Innings))}
	for _, is := range c.Innings {
		view.Innings = append(view.Innings, is.Innings)
	}
	return view
}

func (s *Service) GetMatchByPublicLink(ctx context.Context, link string) (*MatchView, error) {
	id, err := s.repo.FindMatchIDByPublicLink(ctx, link)
	if err != nil {
		return nil, storageError("failed to look up public link", err)
	}
	if id == 0 {
		return nil, notFound("no match for link %q", link)
	}
	return s.GetMatch(ctx, id)
}

func (s *Service) ListMatches(ctx context.Context, filter MatchFilter, page, pageSize int) ([]Match, int64, error) {
	matches, total, err := s.repo.GetMatches(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, storageError("failed to list matches", err)
	}
	return matches, total, nil
}

func (s *Service) ListLiveMatches(ctx context.Context, page, pageSize int) ([]Match, int64, error) {
	return s.ListMatches(ctx, MatchFilter{Status: StatusMatchLive}, page, pageSize)
}

func (s *Service) inningsOf(ctx context.Context, matchID uint, number int, fn func(m *Match, is *InningsState)) error {
	if number != 1 && number != 2 {
		return validationError("innings number must be 1 or 2")
	}
	return s.read(ctx, matchID, func(st *MatchState) error {
		is := st.InningsByNumber(number)
		if is == nil {
			return notFound("innings %d has not started", number)
		}
		fn(&st.Match, is)
		return nil
	})
}

func (s *Service) GetInnings(ctx context.Context, matchID uint, number int) (*Innings, error) {
	var out Innings
	err := s.inningsOf(ctx, matchID, number, func(_ *Match, is *InningsState) {
		out = is.Innings.clone()
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBallEvents returns the live deliveries of an innings in order.
func (s *Service) GetBallEvents(ctx context.Context, matchID uint, number int) ([]BallEvent, error) {
	var out []BallEvent
	err := s.inningsOf(ctx, matchID, number, func(_ *Match, is *InningsState) {
		lg := is.Log.clone()
		out = lg.Active()
	})
	return out, err
}

func (s *Service) GetCurrentOver(ctx context.Context, matchID uint) (*CurrentOverView, error) {
	var view *CurrentOverView
	err := s.read(ctx, matchID, func(st *MatchState) error {
		is := st.Current()
		if is == nil {
			is = st.InningsByNumber(st.Match.CurrentInnings - 1)
		}
		if is == nil {
			return notFound("no innings has started")
		}
		view = &CurrentOverView{InningsNumber: is.Innings.Number, Balls: []BallEvent{}}
		if ov := is.CurrentOver(); ov != nil {
			o := *ov
			view.Over = &o
			lg := is.Log.clone()
			view.Balls = lg.ActiveInOver(ov.Number)
		}
		return nil
	})
	return view, err
}

// AuditInnings replays an innings from its log and reports any drift from the stored aggregate.
func (s *Service) AuditInnings(ctx context.Context, matchID uint, number int) (*AuditReport, error) {
	var report AuditReport
	err := s.inningsOf(ctx, matchID, number, func(m *Match, is *InningsState) {
		report = AuditInnings(m, is)
	})
	if err != nil {
		return nil, err
	}
	if !report.Passed {
		s.logger.Warn("innings audit failed", "match_id", matchID, "innings", number)
	}
	return &report, nil
}
