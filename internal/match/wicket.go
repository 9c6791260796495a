package match

// MaxWickets ends an innings: the side is all out.
const MaxWickets = 10

// checkWicket validates a dismissal against the crease before anything is mutated.
func checkWicket(inn *Innings, w *WicketInput) error {
	if !sameID(inn.StrikerID, w.BatterID) && !sameID(inn.NonStrikerID, w.BatterID) {
		return ruleViolation("player %d is not at the crease", w.BatterID)
	}
	if b := inn.batter(w.BatterID); b == nil || b.IsOut {
		return ruleViolation("player %d cannot be dismissed", w.BatterID)
	}
	return nil
}

// applyWicket records a dismissal. The innings totals must already include the ball.
func applyWicket(inn *Innings, w *WicketInput, bowlerID uint) *WicketDetail {
	credited, _ := w.DismissalType.CreditsBowler()
	detail := &WicketDetail{
		DismissalType: w.DismissalType,
		BatterID:      w.BatterID,
		FielderID:     clonePtr(w.FielderID),
	}

	inn.TotalWickets++

	b := inn.batter(w.BatterID)
	b.IsOut = true
	b.DismissalType = w.DismissalType
	b.FielderID = clonePtr(w.FielderID)
	if credited {
		detail.BowlerID = ptr(bowlerID)
		b.DismissedBy = ptr(bowlerID)
		if bw := inn.bowler(bowlerID); bw != nil {
			bw.Wickets++
		}
	}

	inn.FallOfWickets = append(inn.FallOfWickets, FallOfWicket{
		WicketNumber: inn.TotalWickets,
		Score:        inn.TotalRuns,
		Overs:        FormatOvers(inn.TotalBalls),
		BatterID:     w.BatterID,
	})

	switch {
	case sameID(inn.StrikerID, w.BatterID):
		inn.StrikerID = nil
	case sameID(inn.NonStrikerID, w.BatterID):
		inn.NonStrikerID = nil
	}
	return detail
}

// revertWicket undoes applyWicket. Crease slots are restored by the caller.
func revertWicket(inn *Innings, w *WicketDetail) {
	inn.TotalWickets--

	if b := inn.batter(w.BatterID); b != nil {
		b.IsOut = false
		b.DismissalType = ""
		b.DismissedBy = nil
		b.FielderID = nil
	}
	if w.BowlerID != nil {
		if bw := inn.bowler(*w.BowlerID); bw != nil {
			bw.Wickets--
		}
	}
	if n := len(inn.FallOfWickets); n > 0 {
		inn.FallOfWickets = inn.FallOfWickets[:n-1]
	}
}
