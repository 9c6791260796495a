package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   BallInput
		want Outcome
	}{
		{"dot", dot(), Outcome{IsLegal: true}},
		{"single rotates", runs(1), Outcome{IsLegal: true, BatterRuns: 1, TotalRuns: 1, RotateStrike: true}},
		{"boundary", runs(4), Outcome{IsLegal: true, BatterRuns: 4, TotalRuns: 4}},
		{"three rotates", runs(3), Outcome{IsLegal: true, BatterRuns: 3, TotalRuns: 3, RotateStrike: true}},
		{"wide", wide(0), Outcome{ExtraRuns: 1, TotalRuns: 1}},
		{"wide with runs does not rotate", wide(2), Outcome{ExtraRuns: 3, TotalRuns: 3}},
		{"wide ignores batter runs", BallInput{Runs: 4, Extras: &ExtrasDetail{Type: ExtraWide}}, Outcome{ExtraRuns: 1, TotalRuns: 1}},
		{"no ball", noBall(0, 0), Outcome{ExtraRuns: 1, TotalRuns: 1}},
		{"no ball hit for one", noBall(1, 0), Outcome{BatterRuns: 1, ExtraRuns: 1, TotalRuns: 2, RotateStrike: true}},
		{"no ball hit for six", noBall(6, 0), Outcome{BatterRuns: 6, ExtraRuns: 1, TotalRuns: 7}},
		{"no ball with byes", noBall(0, 2), Outcome{ExtraRuns: 3, TotalRuns: 3}},
		{"bye", bye(1), Outcome{IsLegal: true, ExtraRuns: 1, TotalRuns: 1, RotateStrike: true}},
		{"leg bye", legBye(2), Outcome{IsLegal: true, ExtraRuns: 2, TotalRuns: 2}},
		{"leg bye ignores batter runs", BallInput{Runs: 3, Extras: &ExtrasDetail{Type: ExtraLegBye, Runs: 4}}, Outcome{IsLegal: true, ExtraRuns: 4, TotalRuns: 4}},
		{"penalty", BallInput{Extras: &ExtrasDetail{Type: ExtraPenalty, Runs: 5}}, Outcome{IsLegal: true, ExtraRuns: 5, TotalRuns: 5}},
		{"penalty total is the penalty alone", BallInput{Runs: 1, Extras: &ExtrasDetail{Type: ExtraPenalty, Runs: 5}}, Outcome{IsLegal: true, ExtraRuns: 5, TotalRuns: 5}},
		{"wicket suppresses rotation", BallInput{Runs: 1, IsWicket: true, Wicket: &WicketInput{DismissalType: DismissalTypeRunOut, BatterID: 102}},
			Outcome{IsLegal: true, BatterRuns: 1, TotalRuns: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.TotalRuns, got.BatterRuns+got.ExtraRuns)
		})
	}
}

func TestValidateBallInput(t *testing.T) {
	tests := []struct {
		name    string
		in      BallInput
		wantErr bool
	}{
		{"dot", dot(), false},
		{"seven runs", runs(7), false},
		{"eight runs", runs(8), true},
		{"negative runs", runs(-1), true},
		{"unknown extra", BallInput{Extras: &ExtrasDetail{Type: "overthrow"}}, true},
		{"negative extras", BallInput{Extras: &ExtrasDetail{Type: ExtraBye, Runs: -1}}, true},
		{"too many extras", wide(8), true},
		{"penalty", BallInput{Extras: &ExtrasDetail{Type: ExtraPenalty, Runs: 5}}, false},
		{"penalty with runs off the bat", BallInput{Runs: 2, Extras: &ExtrasDetail{Type: ExtraPenalty, Runs: 5}}, true},
		{"wicket", wicketBall(DismissalTypeBowled, 101), false},
		{"wicket without details", BallInput{IsWicket: true}, true},
		{"details without wicket", BallInput{Wicket: &WicketInput{DismissalType: DismissalTypeBowled, BatterID: 101}}, true},
		{"unknown dismissal", wicketBall("caught_in_the_deep", 101), true},
		{"missing batter", wicketBall(DismissalTypeLBW, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBallInput(tt.in)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestDismissalCreditsBowler(t *testing.T) {
	credited, known := DismissalTypeCaught.CreditsBowler()
	assert.True(t, credited)
	assert.True(t, known)

	for _, d := range []DismissalType{DismissalTypeRunOut, DismissalTypeRetiredHurt, DismissalTypeObstructingField, DismissalTypeTimedOut} {
		credited, known = d.CreditsBowler()
		assert.False(t, credited, d)
		assert.True(t, known, d)
	}

	_, known = DismissalType("mankad").CreditsBowler()
	assert.False(t, known)
}
