package match

import "time"

// progress reports what a delivery completed.
type progress struct {
	overCompleted    bool
	inningsCompleted bool
}

// recordBall applies one delivery to the innings, its open over and its log.
// Nothing is mutated when an error is returned.
func (s *InningsState) recordBall(in BallInput, totalOvers int, at time.Time) (BallEvent, progress, error) {
	var prog progress
	inn := &s.Innings

	if inn.StrikerID == nil || inn.NonStrikerID == nil {
		return BallEvent{}, prog, invalidState("both batters must be selected before a ball is recorded")
	}
	if inn.BowlerID == nil {
		return BallEvent{}, prog, invalidState("a bowler must be selected before a ball is recorded")
	}
	striker, nonStriker, bowlerID := *inn.StrikerID, *inn.NonStrikerID, *inn.BowlerID
	if inn.batter(striker) == nil || inn.batter(nonStriker) == nil || inn.bowler(bowlerID) == nil {
		return BallEvent{}, prog, invalidState("selected players have no stat line in this innings")
	}
	if in.IsWicket {
		if err := checkWicket(inn, in.Wicket); err != nil {
			return BallEvent{}, prog, err
		}
	}

	out := Resolve(in)
	ov := s.ensureOver(bowlerID)

	ev := BallEvent{
		InningsID:    inn.ID,
		Sequence:     s.Log.NextSequence(),
		OverNumber:   ov.Number,
		BallInOver:   ov.LegalBalls,
		StrikerID:    striker,
		NonStrikerID: nonStriker,
		BowlerID:     bowlerID,
		Runs:         BallRuns{Batter: out.BatterRuns, Extras: out.ExtraRuns, Total: out.TotalRuns},
		IsLegal:      out.IsLegal,
		IsFour:       out.BatterRuns == 4,
		IsSix:        out.BatterRuns == 6,
		IsWicket:     in.IsWicket,
		RecordedAt:   at,
	}
	if out.IsLegal {
		ev.BallInOver++
	}
	if in.Extras != nil {
		ev.Extras = &ExtrasDetail{Type: in.Extras.Type, Runs: in.Extras.Runs}
	}

	// innings totals
	inn.TotalRuns += out.TotalRuns
	if out.IsLegal {
		inn.TotalBalls++
	}
	if in.Extras != nil {
		addExtras(&inn.Extras, in.Extras.Type, out.ExtraRuns)
	}

	// striker
	bat := inn.batter(striker)
	bat.Runs += out.BatterRuns
	if out.IsLegal {
		bat.BallsFaced++
	}
	if ev.IsFour {
		bat.Fours++
	}
	if ev.IsSix {
		bat.Sixes++
	}

	// bowler
	bowl := inn.bowler(bowlerID)
	bowl.Runs += out.TotalRuns
	if out.IsLegal {
		bowl.Balls++
	} else if in.Extras.Type == ExtraWide {
		bowl.Wides++
	} else {
		bowl.NoBalls++
	}
	bowl.Overs = bowl.Balls / BallsPerOver

	prog.overCompleted = ov.record(out, in.Extras, in.IsWicket, bowlerID)

	if in.IsWicket {
		ev.Wicket = applyWicket(inn, in.Wicket, bowlerID)
	}

	rotate := out.RotateStrike
	if prog.overCompleted {
		if ov.IsMaiden {
			bowl.Maidens++
		}
		inn.CurrentOver++
		inn.CurrentOverBalls = 0
		rotate = !rotate
	} else {
		inn.CurrentOverBalls = ov.LegalBalls
	}
	// No crossing on a dismissal; the incoming batter takes the empty end.
	if rotate && !in.IsWicket {
		inn.StrikerID, inn.NonStrikerID = inn.NonStrikerID, inn.StrikerID
	}

	inn.refreshRates(totalOvers)
	s.Log.Append(ev)

	if inn.isComplete(totalOvers) {
		inn.Status = InningsCompleted
		prog.inningsCompleted = true
	}
	return ev, prog, nil
}

// addExtras credits runs to the counter for the extras kind. Negative runs reverse it.
func addExtras(x *Extras, kind ExtraType, runs int) {
	switch kind {
	case ExtraWide:
		x.Wides += runs
	case ExtraNoBall:
		x.NoBalls += runs
	case ExtraBye:
		x.Byes += runs
	case ExtraLegBye:
		x.LegByes += runs
	case ExtraPenalty:
		x.Penalties += runs
	}
	x.recomputeTotal()
}

// refreshRates recomputes the derived display fields from the totals.
func (inn *Innings) refreshRates(totalOvers int) {
	inn.Overs = FormatOvers(inn.TotalBalls)
	if inn.TotalBalls == 0 {
		inn.RunRate = 0
	} else {
		inn.RunRate = round2(float64(inn.TotalRuns) * BallsPerOver / float64(inn.TotalBalls))
	}

	if inn.Target == nil {
		inn.RequiredRunRate = nil
		return
	}
	remaining := totalOvers*BallsPerOver - inn.TotalBalls
	if remaining <= 0 {
		inn.RequiredRunRate = nil
		return
	}
	needed := *inn.Target - inn.TotalRuns
	if needed < 0 {
		needed = 0
	}
	inn.RequiredRunRate = ptr(round2(float64(needed) * BallsPerOver / float64(remaining)))
}

func (inn *Innings) isComplete(totalOvers int) bool {
	switch {
	case inn.TotalWickets >= MaxWickets:
		return true
	case inn.TotalBalls >= totalOvers*BallsPerOver:
		return true
	case inn.Target != nil && inn.TotalRuns >= *inn.Target:
		return true
	}
	return false
}

// RunsBalanced reports whether the total equals batter runs plus extras.
func (inn *Innings) RunsBalanced() bool {
	sum := inn.Extras.Total
	for _, b := range inn.Batters {
		sum += b.Runs
	}
	return sum == inn.TotalRuns
}
