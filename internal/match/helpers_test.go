package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Lions (team 1) bat first with 101 and 102 against Tigers' 201.
// Tigers (team 2) chase with 211 and 212 against Lions' 111.
const (
	lions  uint = 1
	tigers uint = 2
)

var ballTime = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newUpcomingState(t *testing.T, overs int) *MatchState {
	t.Helper()
	m, err := NewMatch(NewMatchParams{
		TeamA:      Side{TeamID: lions, Name: "Lions"},
		TeamB:      Side{TeamID: tigers, Name: "Tigers"},
		TotalOvers: overs,
	}, "link-1")
	require.NoError(t, err)
	m.ID = 1
	return &MatchState{Match: *m, Innings: []InningsState{}}
}

func newLiveState(t *testing.T, overs int) *MatchState {
	t.Helper()
	st := newUpcomingState(t, overs)
	require.NoError(t, st.SetToss(lions, TossBat))
	require.NoError(t, st.StartMatch(Openers{StrikerID: 101, NonStrikerID: 102, BowlerID: 201}))
	return st
}

func record(t *testing.T, st *MatchState, in BallInput) *Delivery {
	t.Helper()
	d, err := st.RecordBall(in, ballTime)
	require.NoError(t, err)
	return d
}

func recordN(t *testing.T, st *MatchState, n int, in BallInput) {
	t.Helper()
	for i := 0; i < n; i++ {
		record(t, st, in)
	}
}

// startChase finishes innings 1 of a one-over match on firstInningsRuns and opens innings 2.
func startChase(t *testing.T, firstInningsRuns int) *MatchState {
	t.Helper()
	st := newLiveState(t, 1)
	remaining := firstInningsRuns
	for i := 0; i < BallsPerOver; i++ {
		r := remaining
		if r > 6 {
			r = 6
		}
		record(t, st, runs(r))
		remaining -= r
	}
	require.Zero(t, remaining, "one over cannot produce %d runs", firstInningsRuns)
	require.Equal(t, InningsCompleted, st.InningsByNumber(1).Innings.Status)
	require.NoError(t, st.StartSecondInnings(Openers{StrikerID: 211, NonStrikerID: 212, BowlerID: 111}))
	return st
}

func dot() BallInput { return BallInput{} }

func runs(n int) BallInput { return BallInput{Runs: n} }

func wide(extra int) BallInput {
	return BallInput{Extras: &ExtrasDetail{Type: ExtraWide, Runs: extra}}
}

func noBall(batterRuns, extra int) BallInput {
	return BallInput{Runs: batterRuns, Extras: &ExtrasDetail{Type: ExtraNoBall, Runs: extra}}
}

func bye(n int) BallInput {
	return BallInput{Extras: &ExtrasDetail{Type: ExtraBye, Runs: n}}
}

func legBye(n int) BallInput {
	return BallInput{Extras: &ExtrasDetail{Type: ExtraLegBye, Runs: n}}
}

func wicketBall(kind DismissalType, batterID uint) BallInput {
	return BallInput{IsWicket: true, Wicket: &WicketInput{DismissalType: kind, BatterID: batterID}}
}

func current(st *MatchState) *Innings {
	return &st.Current().Innings
}
