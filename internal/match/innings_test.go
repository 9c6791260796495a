package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBallLegalRuns(t *testing.T) {
	st := newLiveState(t, 20)

	d := record(t, st, runs(4))
	inn := current(st)

	assert.Equal(t, 1, d.Ball.Sequence)
	assert.Equal(t, 0, d.Ball.OverNumber)
	assert.Equal(t, 1, d.Ball.BallInOver)
	assert.True(t, d.Ball.IsFour)
	assert.Equal(t, 4, inn.TotalRuns)
	assert.Equal(t, 1, inn.TotalBalls)
	assert.Equal(t, "0.1", inn.Overs)
	assert.Equal(t, 24.0, inn.RunRate)
	assert.Nil(t, inn.RequiredRunRate)

	striker := inn.batter(101)
	assert.Equal(t, 4, striker.Runs)
	assert.Equal(t, 1, striker.BallsFaced)
	assert.Equal(t, 1, striker.Fours)
	assert.Equal(t, uint(101), *inn.StrikerID, "even runs keep strike")

	bowler := inn.bowler(201)
	assert.Equal(t, 4, bowler.Runs)
	assert.Equal(t, 1, bowler.Balls)
}

func TestSingleRotatesStrike(t *testing.T) {
	st := newLiveState(t, 20)

	record(t, st, runs(1))
	inn := current(st)

	assert.Equal(t, uint(102), *inn.StrikerID)
	assert.Equal(t, uint(101), *inn.NonStrikerID)

	record(t, st, runs(1))
	assert.Equal(t, uint(101), *inn.StrikerID)
	assert.Equal(t, 1, inn.batter(102).Runs)
}

func TestWideWithRuns(t *testing.T) {
	st := newLiveState(t, 20)

	d := record(t, st, wide(2))
	inn := current(st)

	assert.False(t, d.Ball.IsLegal)
	assert.Equal(t, 0, d.Ball.BallInOver)
	assert.Equal(t, BallRuns{Batter: 0, Extras: 3, Total: 3}, d.Ball.Runs)
	assert.Equal(t, 3, inn.TotalRuns)
	assert.Equal(t, 0, inn.TotalBalls)
	assert.Equal(t, "0.0", inn.Overs)
	assert.Equal(t, 3, inn.Extras.Wides)
	assert.Equal(t, 3, inn.Extras.Total)
	assert.Equal(t, 0, inn.batter(101).BallsFaced)
	assert.Equal(t, uint(101), *inn.StrikerID)

	bowler := inn.bowler(201)
	assert.Equal(t, 3, bowler.Runs)
	assert.Equal(t, 1, bowler.Wides)
	assert.Equal(t, 0, bowler.Balls)

	ov := st.Current().CurrentOver()
	require.NotNil(t, ov)
	assert.Equal(t, 1, ov.Wides)
	assert.Equal(t, 0, ov.LegalBalls)
	assert.True(t, inn.RunsBalanced())
}

func TestNoBallCreditsBatter(t *testing.T) {
	st := newLiveState(t, 20)

	record(t, st, noBall(4, 0))
	inn := current(st)

	assert.Equal(t, 5, inn.TotalRuns)
	assert.Equal(t, 1, inn.Extras.NoBalls)
	assert.Equal(t, 4, inn.batter(101).Runs)
	assert.Equal(t, 0, inn.batter(101).BallsFaced)
	assert.Equal(t, 1, inn.batter(101).Fours)
	assert.Equal(t, 1, inn.bowler(201).NoBalls)
	assert.Equal(t, 5, inn.bowler(201).Runs)
	assert.Equal(t, 0, inn.TotalBalls)
	assert.True(t, inn.RunsBalanced())
}

func TestByesAndLegByes(t *testing.T) {
	st := newLiveState(t, 20)

	record(t, st, bye(1))
	record(t, st, legBye(4))
	inn := current(st)

	assert.Equal(t, 5, inn.TotalRuns)
	assert.Equal(t, 2, inn.TotalBalls)
	assert.Equal(t, 1, inn.Extras.Byes)
	assert.Equal(t, 4, inn.Extras.LegByes)
	assert.Equal(t, 0, inn.batter(101).Runs)
	assert.Equal(t, 1, inn.batter(101).BallsFaced)
	assert.Equal(t, 1, inn.batter(102).BallsFaced, "the bye rotated strike")
	assert.Zero(t, inn.batter(102).Fours, "leg byes are not boundaries")
	assert.True(t, inn.RunsBalanced())
}

func TestMaidenOverSwapsEnds(t *testing.T) {
	st := newLiveState(t, 20)

	recordN(t, st, 5, dot())
	d := record(t, st, dot())
	inn := current(st)

	assert.True(t, d.OverCompleted)
	assert.Equal(t, 1, inn.CurrentOver)
	assert.Equal(t, 0, inn.CurrentOverBalls)
	assert.Equal(t, "1.0", inn.Overs)
	assert.Equal(t, uint(102), *inn.StrikerID)

	ov, _ := st.Current().OverByNumber(0)
	require.NotNil(t, ov)
	assert.True(t, ov.IsComplete)
	assert.True(t, ov.IsMaiden)
	assert.Equal(t, 6, ov.LegalBalls)

	bowler := inn.bowler(201)
	assert.Equal(t, 1, bowler.Maidens)
	assert.Equal(t, 1, bowler.Overs)
	assert.Nil(t, st.Current().CurrentOver(), "next over opens on its first ball")
}

func TestSingleOffLastBallKeepsStrike(t *testing.T) {
	st := newLiveState(t, 20)

	recordN(t, st, 5, dot())
	record(t, st, runs(1))
	inn := current(st)

	assert.Equal(t, uint(101), *inn.StrikerID)
	ov, _ := st.Current().OverByNumber(0)
	assert.False(t, ov.IsMaiden)
	assert.Zero(t, inn.bowler(201).Maidens)
}

func TestExtrasDoNotCompleteOver(t *testing.T) {
	st := newLiveState(t, 20)

	recordN(t, st, 5, dot())
	d := record(t, st, wide(0))
	assert.False(t, d.OverCompleted)
	d = record(t, st, noBall(0, 0))
	assert.False(t, d.OverCompleted)
	d = record(t, st, dot())
	assert.True(t, d.OverCompleted)

	ov, _ := st.Current().OverByNumber(0)
	assert.Equal(t, 2, ov.Runs)
	assert.False(t, ov.IsMaiden)
	assert.Len(t, st.Current().Log.ActiveInOver(0), 8)
}

func TestRecordBallNeedsBothBatters(t *testing.T) {
	st := newLiveState(t, 20)
	current(st).NonStrikerID = nil

	_, err := st.RecordBall(dot(), ballTime)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRunRateRounding(t *testing.T) {
	st := newLiveState(t, 20)

	record(t, st, runs(1))
	record(t, st, runs(1))
	record(t, st, runs(0))
	record(t, st, runs(2))
	record(t, st, runs(3))
	record(t, st, runs(0))
	record(t, st, runs(0))

	// 7 runs off 7 balls
	assert.Equal(t, 6.0, current(st).RunRate)

	record(t, st, runs(1))
	record(t, st, dot())
	// 8 off 9
	assert.Equal(t, 5.33, current(st).RunRate)
}

func TestRequiredRunRate(t *testing.T) {
	st := startChase(t, 10)
	inn := current(st)

	require.NotNil(t, inn.Target)
	assert.Equal(t, 11, *inn.Target)
	require.NotNil(t, inn.RequiredRunRate)
	assert.Equal(t, 11.0, *inn.RequiredRunRate)

	record(t, st, runs(2))
	// 9 needed from 5 balls
	assert.Equal(t, 10.8, *inn.RequiredRunRate)
}
