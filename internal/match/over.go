package match

// BallsPerOver is the number of legal deliveries in an over.
const BallsPerOver = 6

// ensureOver returns the open over, creating it on the first delivery of the over.
func (s *InningsState) ensureOver(bowlerID uint) *Over {
	if ov := s.CurrentOver(); ov != nil {
		return ov
	}
	s.Overs = append(s.Overs, Over{
		InningsID: s.Innings.ID,
		Number:    s.Innings.CurrentOver,
		BowlerID:  bowlerID,
	})
	return &s.Overs[len(s.Overs)-1]
}

// record adds one delivery to the over and reports whether it completed the over.
func (ov *Over) record(out Outcome, extras *ExtrasDetail, isWicket bool, bowlerID uint) bool {
	ov.BowlerID = bowlerID
	ov.Runs += out.TotalRuns
	if isWicket {
		ov.Wickets++
	}
	if !out.IsLegal {
		switch extras.Type {
		case ExtraWide:
			ov.Wides++
		case ExtraNoBall:
			ov.NoBalls++
		}
		return false
	}

	ov.LegalBalls++
	if ov.LegalBalls < BallsPerOver {
		return false
	}
	ov.IsComplete = true
	ov.IsMaiden = ov.Runs == 0 && ov.Wickets == 0
	return true
}

// unrecord is the inverse of record. wasMaiden reports whether the over had been a maiden.
// prevBowler is the bowler of the previous live ball in the over, zero when there is none.
func (ov *Over) unrecord(ev BallEvent, prevBowler uint) (wasMaiden bool) {
	wasMaiden = ov.IsComplete && ov.IsMaiden
	ov.IsComplete = false
	ov.IsMaiden = false

	ov.Runs -= ev.Runs.Total
	if ev.IsWicket {
		ov.Wickets--
	}
	if ev.IsLegal {
		ov.LegalBalls--
	} else if ev.Extras != nil {
		switch ev.Extras.Type {
		case ExtraWide:
			ov.Wides--
		case ExtraNoBall:
			ov.NoBalls--
		}
	}
	if prevBowler != 0 {
		ov.BowlerID = prevBowler
	}
	return wasMaiden
}
