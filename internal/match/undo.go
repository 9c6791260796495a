package match

// UndoResult describes what an undo rolled back.
type UndoResult struct {
	Ball            BallEvent `json:"ball"`
	InningsNumber   int       `json:"innings_number"`
	RemovedOver     *Over     `json:"-"`
	ReopenedInnings bool      `json:"reopened_innings"`
	ReopenedMatch   bool      `json:"reopened_match"`
}

// undoTarget is the innings whose last delivery can be taken back.
// Once innings 2 exists, innings 1 is closed for good.
func (s *MatchState) undoTarget() (*InningsState, error) {
	switch s.Match.Status {
	case StatusMatchLive, StatusMatchCompleted:
	case StatusMatchUpcoming:
		return nil, nothingToUndo("match has not started")
	default:
		return nil, invalidState("match is %s", s.Match.Status)
	}
	if second := s.InningsByNumber(2); second != nil {
		return second, nil
	}
	if first := s.InningsByNumber(1); first != nil {
		return first, nil
	}
	return nil, nothingToUndo("no innings has started")
}

// UndoLastBall reverses the most recent live delivery and tombstones its event.
func (s *MatchState) UndoLastBall() (*UndoResult, error) {
	target, err := s.undoTarget()
	if err != nil {
		return nil, err
	}
	idx := target.Log.LastActive()
	if idx < 0 {
		return nil, nothingToUndo("no deliveries to undo in this innings")
	}
	ov, ovIdx := target.OverByNumber(target.Log.Events[idx].OverNumber)
	if ov == nil {
		return nil, invalidState("over %d for the last delivery is missing", target.Log.Events[idx].OverNumber)
	}

	ev := target.Log.Tombstone(idx)
	inn := &target.Innings
	res := &UndoResult{Ball: ev, InningsNumber: inn.Number}

	if inn.Status == InningsCompleted {
		inn.Status = InningsInProgress
		res.ReopenedInnings = true
		if inn.Number == 1 {
			s.Match.CurrentInnings = 1
		} else {
			s.Match.Status = StatusMatchLive
			s.Match.Result = Result{}
			res.ReopenedMatch = true
		}
	}

	// Roll back the over, including the maiden credit taken when it completed.
	var prevBowler uint
	if rest := target.Log.ActiveInOver(ev.OverNumber); len(rest) > 0 {
		prevBowler = rest[len(rest)-1].BowlerID
	}
	wasMaiden := ov.unrecord(ev, prevBowler)
	inn.CurrentOver = ov.Number
	inn.CurrentOverBalls = ov.LegalBalls

	if ev.Wicket != nil {
		revertWicket(inn, ev.Wicket)
	}

	if bowl := inn.bowler(ev.BowlerID); bowl != nil {
		if wasMaiden {
			bowl.Maidens--
		}
		bowl.Runs -= ev.Runs.Total
		if ev.IsLegal {
			bowl.Balls--
		} else if ev.Extras != nil && ev.Extras.Type == ExtraWide {
			bowl.Wides--
		} else {
			bowl.NoBalls--
		}
		bowl.Overs = bowl.Balls / BallsPerOver
	}

	if bat := inn.batter(ev.StrikerID); bat != nil {
		bat.Runs -= ev.Runs.Batter
		if ev.IsLegal {
			bat.BallsFaced--
		}
		if ev.IsFour {
			bat.Fours--
		}
		if ev.IsSix {
			bat.Sixes--
		}
	}

	inn.TotalRuns -= ev.Runs.Total
	if ev.IsLegal {
		inn.TotalBalls--
	}
	if ev.Extras != nil {
		addExtras(&inn.Extras, ev.Extras.Type, -ev.Runs.Extras)
	}

	inn.StrikerID = ptr(ev.StrikerID)
	inn.NonStrikerID = ptr(ev.NonStrikerID)
	inn.BowlerID = ptr(ev.BowlerID)
	inn.refreshRates(s.Match.TotalOvers)

	// The over was opened by this delivery; drop it so the innings is back to having no open over.
	if len(target.Log.ActiveInOver(ev.OverNumber)) == 0 {
		removed := *ov
		res.RemovedOver = &removed
		target.removeOver(ovIdx)
	}
	return res, nil
}
