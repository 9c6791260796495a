package match

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvents struct {
	mu     sync.Mutex
	events []Notification
}

func (r *recordedEvents) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, n)
	return nil
}

func (r *recordedEvents) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, n := range r.events {
		names[i] = n.Event
	}
	return names
}

func (r *recordedEvents) last() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*Service, *MemoryMatchRepository, *recordedEvents) {
	t.Helper()
	repo := NewMemoryMatchRepository()
	sink := &recordedEvents{}
	dispatcher := NewDispatcher(sink, 256, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go dispatcher.Run(ctx)

	return NewService(repo, dispatcher, discardLogger()), repo, sink
}

// liveMatch creates a 2-over match between Lions and Tigers and starts it.
func liveMatch(t *testing.T, svc *Service) uint {
	t.Helper()
	ctx := context.Background()
	m, err := svc.CreateMatch(ctx, NewMatchParams{
		TeamA:      Side{TeamID: lions, Name: "Lions"},
		TeamB:      Side{TeamID: tigers, Name: "Tigers"},
		TotalOvers: 2,
	})
	require.NoError(t, err)
	_, err = svc.SetToss(ctx, m.ID, lions, TossBat)
	require.NoError(t, err)
	_, err = svc.StartMatch(ctx, m.ID, Openers{StrikerID: 101, NonStrikerID: 102, BowlerID: 201})
	require.NoError(t, err)
	return m.ID
}

func TestServiceScoringFlow(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	id := liveMatch(t, svc)

	res, err := svc.RecordBall(ctx, id, runs(4))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Ball.Sequence)
	assert.NotZero(t, res.Ball.ID)
	assert.Equal(t, 4, res.Innings.TotalRuns)
	require.NotNil(t, res.Over)
	assert.Equal(t, 4, res.Over.Runs)

	_, err = svc.RecordBall(ctx, id, wide(0))
	require.NoError(t, err)

	view, err := svc.GetMatch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusMatchLive, view.Match.Status)
	require.Len(t, view.Innings, 1)
	assert.Equal(t, 5, view.Innings[0].TotalRuns)

	cur, err := svc.GetCurrentOver(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, cur.InningsNumber)
	require.NotNil(t, cur.Over)
	assert.Len(t, cur.Balls, 2)

	balls, err := svc.GetBallEvents(ctx, id, 1)
	require.NoError(t, err)
	assert.Len(t, balls, 2)

	byLink, err := svc.GetMatchByPublicLink(ctx, view.Match.PublicLink)
	require.NoError(t, err)
	assert.Equal(t, id, byLink.Match.ID)

	report, err := svc.AuditInnings(ctx, id, 1)
	require.NoError(t, err)
	assert.True(t, report.Passed)
}

func TestServiceReturnsCopies(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	id := liveMatch(t, svc)

	inn, err := svc.GetInnings(ctx, id, 1)
	require.NoError(t, err)
	inn.TotalRuns = 500
	inn.Batters[0].Runs = 500

	again, err := svc.GetInnings(ctx, id, 1)
	require.NoError(t, err)
	assert.Zero(t, again.TotalRuns)
	assert.Zero(t, again.Batters[0].Runs)
}

func TestServiceStateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)
	id := liveMatch(t, svc)

	for i := 0; i < 7; i++ {
		_, err := svc.RecordBall(ctx, id, runs(1))
		require.NoError(t, err)
	}
	_, err := svc.UndoLastBall(ctx, id)
	require.NoError(t, err)
	_, err = svc.RecordBall(ctx, id, wicketBall(DismissalTypeBowled, 102))
	require.NoError(t, err)

	want, err := svc.GetInnings(ctx, id, 1)
	require.NoError(t, err)

	restarted := NewService(repo, nil, discardLogger())
	got, err := restarted.GetInnings(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, want.TotalRuns, got.TotalRuns)
	assert.Equal(t, want.TotalWickets, got.TotalWickets)
	assert.Equal(t, want.Overs, got.Overs)
	assert.Equal(t, want.Batters, got.Batters)
	assert.Equal(t, want.Bowlers, got.Bowlers)

	report, err := restarted.AuditInnings(ctx, id, 1)
	require.NoError(t, err)
	assert.True(t, report.Passed)

	balls, err := restarted.GetBallEvents(ctx, id, 1)
	require.NoError(t, err)
	assert.Len(t, balls, 7)
}

func TestServiceCommitFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	svc, repo, sink := newTestService(t)
	id := liveMatch(t, svc)
	_, err := svc.RecordBall(ctx, id, runs(2))
	require.NoError(t, err)

	before, err := svc.GetInnings(ctx, id, 1)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return len(sink.names()) == 3 }, time.Second, 10*time.Millisecond)

	repo.CommitHook = func(Changeset) error { return errors.New("connection reset") }
	_, err = svc.RecordBall(ctx, id, runs(4))
	assert.ErrorIs(t, err, ErrStorage)
	_, err = svc.UndoLastBall(ctx, id)
	assert.ErrorIs(t, err, ErrStorage)

	after, err := svc.GetInnings(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	repo.CommitHook = nil
	res, err := svc.RecordBall(ctx, id, runs(4))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Ball.Sequence)
	assert.Equal(t, 6, res.Innings.TotalRuns)

	assert.Eventually(t, func() bool { return len(sink.names()) == 4 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, EventBallUpdate, sink.last().Event, "failed commits are not announced")
	assert.Equal(t, 6, sink.last().Snapshot.Innings.TotalRuns)
}

func TestServiceNotifications(t *testing.T) {
	ctx := context.Background()
	svc, _, sink := newTestService(t)
	id := liveMatch(t, svc)

	for i := 0; i < 5; i++ {
		_, err := svc.RecordBall(ctx, id, dot())
		require.NoError(t, err)
	}
	_, err := svc.RecordBall(ctx, id, wicketBall(DismissalTypeBowled, 101))
	require.NoError(t, err)
	_, err = svc.UndoLastBall(ctx, id)
	require.NoError(t, err)

	want := []string{
		EventMatchUpdated, EventInningsStarted,
		EventBallUpdate, EventBallUpdate, EventBallUpdate, EventBallUpdate, EventBallUpdate,
		EventBallUpdate, EventWicket, EventOverComplete,
		EventUndoBall,
	}
	assert.Eventually(t, func() bool { return len(sink.names()) == len(want) }, time.Second, 10*time.Millisecond)
	assert.Equal(t, want, sink.names())

	n := sink.last()
	assert.Equal(t, id, n.MatchID)
	assert.NotEmpty(t, n.ID)
	require.NotNil(t, n.Snapshot.Innings)
	assert.Zero(t, n.Snapshot.Innings.TotalWickets)
	assert.Equal(t, "0.5", n.Snapshot.Innings.Overs)
}

func TestServiceMatchCompletion(t *testing.T) {
	ctx := context.Background()
	svc, _, sink := newTestService(t)
	id := liveMatch(t, svc)

	for i := 0; i < 12; i++ {
		_, err := svc.RecordBall(ctx, id, dot())
		require.NoError(t, err)
		if i == 5 {
			_, err = svc.SetBowler(ctx, id, 202)
			require.NoError(t, err)
		}
	}
	_, err := svc.StartSecondInnings(ctx, id, Openers{StrikerID: 211, NonStrikerID: 212, BowlerID: 111})
	require.NoError(t, err)

	res, err := svc.RecordBall(ctx, id, runs(1))
	require.NoError(t, err)
	assert.True(t, res.MatchCompleted)

	view, err := svc.GetMatch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusMatchCompleted, view.Match.Status)
	assert.Equal(t, "Tigers won by 10 wickets", view.Match.Result.Summary)

	assert.Eventually(t, func() bool {
		names := sink.names()
		return len(names) > 0 && names[len(names)-1] == EventMatchComplete
	}, time.Second, 10*time.Millisecond)

	live, total, err := svc.ListLiveMatches(ctx, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, live)
}

func TestServiceConcurrentBalls(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	id := liveMatch(t, svc)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordBall(ctx, id, dot())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	balls, err := svc.GetBallEvents(ctx, id, 1)
	require.NoError(t, err)
	require.Len(t, balls, 10)
	for i, b := range balls {
		assert.Equal(t, i+1, b.Sequence)
	}
	inn, err := svc.GetInnings(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, inn.TotalBalls)
}

func TestServiceErrors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.GetMatch(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.RecordBall(ctx, 404, dot())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetMatchByPublicLink(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	id := liveMatch(t, svc)
	_, err = svc.GetInnings(ctx, id, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetInnings(ctx, id, 3)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.UndoLastBall(ctx, id)
	assert.ErrorIs(t, err, ErrNothingToUndo)
	_, err = svc.StartSecondInnings(ctx, id, Openers{StrikerID: 211, NonStrikerID: 212, BowlerID: 111})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.CreateMatch(ctx, NewMatchParams{
		TeamA:      Side{TeamID: 1, Name: "Lions"},
		TeamB:      Side{TeamID: 1, Name: "Lions"},
		TotalOvers: 20,
	})
	assert.ErrorIs(t, err, ErrRuleViolation)
}

func TestServiceUpdateMatch(t *testing.T) {
	ctx := context.Background()
	svc, repo, sink := newTestService(t)
	m, err := svc.CreateMatch(ctx, NewMatchParams{
		TeamA:      Side{TeamID: lions, Name: "Lions"},
		TeamB:      Side{TeamID: tigers, Name: "Tigers"},
		TotalOvers: 20,
		Venue:      "Eden Park",
	})
	require.NoError(t, err)

	venue := "  Basin Reserve "
	at := time.Date(2026, 11, 2, 14, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateMatch(ctx, m.ID, &venue, &at)
	require.NoError(t, err)
	assert.Equal(t, "Basin Reserve", updated.Venue)
	require.NotNil(t, updated.ScheduledAt)
	assert.True(t, at.Equal(*updated.ScheduledAt))

	stored, err := repo.LoadMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Basin Reserve", stored.Match.Venue)
	assert.Eventually(t, func() bool { return len(sink.names()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, EventMatchUpdated, sink.last().Event)

	id := liveMatch(t, svc)
	_, err = svc.UpdateMatch(ctx, id, &venue, nil)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestServiceUpdateSquads(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)
	id := liveMatch(t, svc)

	m, err := svc.UpdateSquads(ctx, id, PlayerIDs{101, 102, 103}, nil)
	require.NoError(t, err)
	assert.Equal(t, PlayerIDs{101, 102, 103}, m.TeamA.Players)
	assert.Empty(t, m.TeamB.Players)

	stored, err := repo.LoadMatch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, PlayerIDs{101, 102, 103}, stored.Match.TeamA.Players)

	_, err = svc.SetBatter(ctx, id, 150, true)
	assert.ErrorIs(t, err, ErrNotFound, "squad now restricts the batting side")

	_, err = svc.UpdateSquads(ctx, id, PlayerIDs{101, 103}, nil)
	assert.ErrorIs(t, err, ErrRuleViolation, "102 is already at the crease")

	_, err = svc.AbandonMatch(ctx, id)
	require.NoError(t, err)
	_, err = svc.UpdateSquads(ctx, id, nil, PlayerIDs{201})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestServiceDeleteMatch(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)
	id := liveMatch(t, svc)
	_, err := svc.RecordBall(ctx, id, runs(4))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMatch(ctx, id))

	_, err = svc.GetMatch(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.RecordBall(ctx, id, dot())
	assert.ErrorIs(t, err, ErrNotFound)
	stored, err := repo.LoadMatch(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, stored)

	assert.ErrorIs(t, svc.DeleteMatch(ctx, id), ErrNotFound)
}

func TestServiceDeleteFailureKeepsMatch(t *testing.T) {
	ctx := context.Background()
	repo := &failingDeleteRepo{MemoryMatchRepository: NewMemoryMatchRepository()}
	svc := NewService(repo, nil, discardLogger())
	id := liveMatch(t, svc)

	assert.ErrorIs(t, svc.DeleteMatch(ctx, id), ErrStorage)

	view, err := svc.GetMatch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusMatchLive, view.Match.Status)
}

type failingDeleteRepo struct {
	*MemoryMatchRepository
}

func (failingDeleteRepo) DeleteMatch(context.Context, uint) error {
	return errors.New("connection reset")
}
