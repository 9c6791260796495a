package match

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredMatch(t *testing.T, repo *MemoryMatchRepository, a, b uint) *Match {
	t.Helper()
	m, err := NewMatch(NewMatchParams{
		TeamA:      Side{TeamID: a, Name: "A"},
		TeamB:      Side{TeamID: b, Name: "B"},
		TotalOvers: 20,
	}, fmt.Sprintf("link-%d-%d", a, b))
	require.NoError(t, err)
	require.NoError(t, repo.CreateMatch(context.Background(), m))
	return m
}

func TestMemoryRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMatchRepository()
	m := newStoredMatch(t, repo, 1, 2)
	require.NotZero(t, m.ID)

	st, err := repo.LoadMatch(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, st)
	require.NoError(t, st.SetToss(1, TossBat))
	require.NoError(t, st.StartMatch(Openers{StrikerID: 101, NonStrikerID: 102, BowlerID: 201}))

	is := st.InningsByNumber(1)
	require.NoError(t, repo.Commit(ctx, Changeset{Match: &st.Match, Innings: &is.Innings}))
	require.NotZero(t, is.Innings.ID)

	for i := 0; i < 3; i++ {
		d, err := st.RecordBall(runs(i), ballTime)
		require.NoError(t, err)
		ov, _ := is.OverByNumber(d.Ball.OverNumber)
		require.NoError(t, repo.Commit(ctx, Changeset{
			Match:   &st.Match,
			Innings: &is.Innings,
			Over:    ov,
			Ball:    &is.Log.Events[len(is.Log.Events)-1],
		}))
	}

	loaded, err := repo.LoadMatch(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Innings, 1)
	got := loaded.Innings[0]
	assert.Equal(t, 3, got.Innings.TotalRuns)
	assert.Equal(t, is.Innings.ID, got.Innings.ID)
	require.Len(t, got.Overs, 1)
	assert.Equal(t, 3, got.Overs[0].LegalBalls)
	require.Len(t, got.Log.Events, 3)
	for i, ev := range got.Log.Events {
		assert.Equal(t, i+1, ev.Sequence)
		assert.Equal(t, is.Innings.ID, ev.InningsID)
	}

	// stored rows are copies
	is.Innings.TotalRuns = 99
	again, err := repo.LoadMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Innings[0].Innings.TotalRuns)
}

func TestMemoryRepoDeletesOver(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMatchRepository()
	m := newStoredMatch(t, repo, 1, 2)

	inn := Innings{MatchID: m.ID, Number: 1}
	require.NoError(t, repo.Commit(ctx, Changeset{Innings: &inn}))
	ov := Over{InningsID: inn.ID, Number: 0}
	require.NoError(t, repo.Commit(ctx, Changeset{Over: &ov}))

	require.NoError(t, repo.Commit(ctx, Changeset{DeletedOver: &ov}))
	st, err := repo.LoadMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, st.Innings[0].Overs)
}

func TestMemoryRepoMissingMatch(t *testing.T) {
	repo := NewMemoryMatchRepository()

	st, err := repo.LoadMatch(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, st)

	id, err := repo.FindMatchIDByPublicLink(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Zero(t, id)
}

func TestMemoryRepoCommitHookAborts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMatchRepository()
	m := newStoredMatch(t, repo, 1, 2)

	repo.CommitHook = func(Changeset) error { return errors.New("disk full") }
	changed := *m
	changed.Status = StatusMatchLive
	assert.Error(t, repo.Commit(ctx, Changeset{Match: &changed}))

	st, err := repo.LoadMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusMatchUpcoming, st.Match.Status)
}

func TestMemoryRepoGetMatches(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMatchRepository()
	first := newStoredMatch(t, repo, 1, 2)
	newStoredMatch(t, repo, 3, 4)
	third := newStoredMatch(t, repo, 1, 3)

	all, total, err := repo.GetMatches(ctx, MatchFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 2)
	assert.Equal(t, third.ID, all[0].ID, "newest first")

	page2, _, err := repo.GetMatches(ctx, MatchFilter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, first.ID, page2[0].ID)

	team1, total, err := repo.GetMatches(ctx, MatchFilter{TeamID: 1}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, team1, 2)

	live, total, err := repo.GetMatches(ctx, MatchFilter{Status: StatusMatchLive}, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, live)

	id, err := repo.FindMatchIDByPublicLink(ctx, first.PublicLink)
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)
}

func TestMemoryRepoDeleteMatch(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMatchRepository()
	m := newStoredMatch(t, repo, 1, 2)
	other := newStoredMatch(t, repo, 3, 4)

	st, err := repo.LoadMatch(ctx, m.ID)
	require.NoError(t, err)
	require.NoError(t, st.SetToss(1, TossBat))
	require.NoError(t, st.StartMatch(Openers{StrikerID: 101, NonStrikerID: 102, BowlerID: 201}))
	is := st.InningsByNumber(1)
	require.NoError(t, repo.Commit(ctx, Changeset{Match: &st.Match, Innings: &is.Innings}))
	d, err := st.RecordBall(runs(4), ballTime)
	require.NoError(t, err)
	ov, _ := is.OverByNumber(d.Ball.OverNumber)
	require.NoError(t, repo.Commit(ctx, Changeset{Match: &st.Match, Innings: &is.Innings, Over: ov, Ball: &is.Log.Events[0]}))

	require.NoError(t, repo.DeleteMatch(ctx, m.ID))

	loaded, err := repo.LoadMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.Empty(t, repo.innings)
	assert.Empty(t, repo.overs)
	assert.Empty(t, repo.balls)

	id, err := repo.FindMatchIDByPublicLink(ctx, m.PublicLink)
	require.NoError(t, err)
	assert.Zero(t, id)

	kept, err := repo.LoadMatch(ctx, other.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
