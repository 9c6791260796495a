package match

import "fmt"

// InvariantCheck is one consistency assertion over a replayed innings.
type InvariantCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// AuditReport is the outcome of rebuilding an innings from its delivery log.
type AuditReport struct {
	MatchID       uint             `json:"match_id"`
	InningsNumber int              `json:"innings_number"`
	Deliveries    int              `json:"deliveries"`
	Passed        bool             `json:"passed"`
	Checks        []InvariantCheck `json:"checks"`
}

// ReplayInnings rebuilds an innings from scratch using only its live events.
// Crease and bowler identities come from each event, so selections made between balls are not needed.
func ReplayInnings(m *Match, st *InningsState) (*InningsState, error) {
	src := &st.Innings
	fresh := &InningsState{
		Innings: Innings{
			Model:         src.Model,
			MatchID:       src.MatchID,
			Number:        src.Number,
			BattingTeamID: src.BattingTeamID,
			BowlingTeamID: src.BowlingTeamID,
			Target:        clonePtr(src.Target),
			Status:        InningsInProgress,
			Batters:       BatterLines{},
			Bowlers:       BowlerLines{},
			FallOfWickets: FallOfWickets{},
		},
		Overs: []Over{},
		Log:   EventLog{Events: []BallEvent{}},
	}
	fresh.Innings.refreshRates(m.TotalOvers)

	for _, ev := range st.Log.Active() {
		inn := &fresh.Innings
		for _, id := range []uint{ev.StrikerID, ev.NonStrikerID} {
			if inn.batter(id) == nil {
				inn.Batters = append(inn.Batters, BatterStats{PlayerID: id, BattingOrder: len(inn.Batters) + 1})
			}
		}
		if inn.bowler(ev.BowlerID) == nil {
			inn.Bowlers = append(inn.Bowlers, BowlerStats{PlayerID: ev.BowlerID})
		}
		inn.StrikerID = ptr(ev.StrikerID)
		inn.NonStrikerID = ptr(ev.NonStrikerID)
		inn.BowlerID = ptr(ev.BowlerID)

		in := BallInput{Runs: ev.Runs.Batter, IsWicket: ev.IsWicket}
		if ev.Extras != nil {
			in.Extras = &ExtrasDetail{Type: ev.Extras.Type, Runs: ev.Extras.Runs}
		}
		if ev.Wicket != nil {
			in.Wicket = &WicketInput{
				DismissalType: ev.Wicket.DismissalType,
				BatterID:      ev.Wicket.BatterID,
				FielderID:     clonePtr(ev.Wicket.FielderID),
			}
		}
		if _, _, err := fresh.recordBall(in, m.TotalOvers, ev.RecordedAt); err != nil {
			return nil, fmt.Errorf("replay sequence %d: %w", ev.Sequence, err)
		}
	}
	return fresh, nil
}

// AuditInnings replays an innings and compares the result with the stored aggregate.
func AuditInnings(m *Match, st *InningsState) AuditReport {
	inn := &st.Innings
	report := AuditReport{
		MatchID:       m.ID,
		InningsNumber: inn.Number,
		Deliveries:    len(st.Log.Active()),
	}
	add := func(name string, passed bool, detail string) {
		c := InvariantCheck{Name: name, Passed: passed}
		if !passed {
			c.Detail = detail
		}
		report.Checks = append(report.Checks, c)
	}

	add("runs_balance", inn.RunsBalanced(),
		fmt.Sprintf("total %d does not equal batter runs plus extras %d", inn.TotalRuns, inn.Extras.Total))
	add("wicket_bound", inn.TotalWickets <= MaxWickets && (inn.TotalWickets < MaxWickets || inn.Status == InningsCompleted),
		fmt.Sprintf("%d wickets with status %s", inn.TotalWickets, inn.Status))

	monotonic := true
	for i := 1; i < len(st.Log.Events); i++ {
		if st.Log.Events[i].Sequence <= st.Log.Events[i-1].Sequence {
			monotonic = false
			break
		}
	}
	add("sequence_monotonic", monotonic, "event sequences are not strictly increasing")

	replayed, err := ReplayInnings(m, st)
	if err != nil {
		add("replay", false, err.Error())
		report.Passed = false
		return report
	}
	got := &replayed.Innings

	add("replay_totals",
		got.TotalRuns == inn.TotalRuns && got.TotalWickets == inn.TotalWickets && got.TotalBalls == inn.TotalBalls,
		fmt.Sprintf("replayed %d/%d in %d balls, stored %d/%d in %d balls",
			got.TotalRuns, got.TotalWickets, got.TotalBalls, inn.TotalRuns, inn.TotalWickets, inn.TotalBalls))
	add("replay_extras", got.Extras == inn.Extras,
		fmt.Sprintf("replayed %+v, stored %+v", got.Extras, inn.Extras))

	completed := got.Status == InningsCompleted
	add("replay_status", completed == (inn.Status == InningsCompleted),
		fmt.Sprintf("replayed status %s, stored %s", got.Status, inn.Status))

	batterDetail := ""
	for _, want := range got.Batters {
		have := inn.batter(want.PlayerID)
		if have == nil || !sameBatterLine(*have, want) {
			batterDetail = fmt.Sprintf("batter %d differs from replay", want.PlayerID)
			break
		}
	}
	add("replay_batters", batterDetail == "", batterDetail)

	bowlerDetail := ""
	for _, want := range got.Bowlers {
		have := inn.bowler(want.PlayerID)
		if have == nil || *have != want {
			bowlerDetail = fmt.Sprintf("bowler %d differs from replay", want.PlayerID)
			break
		}
	}
	add("replay_bowlers", bowlerDetail == "", bowlerDetail)

	overDetail := ""
	if len(got.FallOfWickets) != len(inn.FallOfWickets) {
		overDetail = fmt.Sprintf("replayed %d fall of wickets, stored %d", len(got.FallOfWickets), len(inn.FallOfWickets))
	}
	for _, want := range replayed.Overs {
		have, _ := st.OverByNumber(want.Number)
		if have == nil || !sameOverCounters(*have, want) {
			overDetail = fmt.Sprintf("over %d differs from replay", want.Number)
			break
		}
	}
	add("replay_overs", overDetail == "", overDetail)

	report.Passed = true
	for _, c := range report.Checks {
		if !c.Passed {
			report.Passed = false
			break
		}
	}
	return report
}

// sameBatterLine compares everything but batting order, which depends on selection order.
func sameBatterLine(a, b BatterStats) bool {
	return a.Runs == b.Runs && a.BallsFaced == b.BallsFaced && a.Fours == b.Fours && a.Sixes == b.Sixes &&
		a.IsOut == b.IsOut && a.DismissalType == b.DismissalType &&
		equalPtr(a.DismissedBy, b.DismissedBy) && equalPtr(a.FielderID, b.FielderID)
}

func sameOverCounters(a, b Over) bool {
	return a.BowlerID == b.BowlerID && a.Runs == b.Runs && a.Wickets == b.Wickets && a.Wides == b.Wides &&
		a.NoBalls == b.NoBalls && a.LegalBalls == b.LegalBalls && a.IsMaiden == b.IsMaiden && a.IsComplete == b.IsComplete
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
