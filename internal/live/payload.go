package live

import (
	"fmt"

	"github.com/DhavalSuthar-24/crease/internal/match"
)

// Scoreline is the compact score cached for score tickers.
type Scoreline struct {
	MatchID         uint              `json:"match_id"`
	Event           string            `json:"event"`
	Status          match.MatchStatus `json:"status"`
	Innings         int               `json:"innings,omitempty"`
	BattingTeam     string            `json:"batting_team,omitempty"`
	Runs            int               `json:"runs"`
	Wickets         int               `json:"wickets"`
	Overs           string            `json:"overs"`
	RunRate         float64           `json:"run_rate"`
	Target          *int              `json:"target,omitempty"`
	RequiredRunRate *float64          `json:"required_run_rate,omitempty"`
	Result          string            `json:"result,omitempty"`
}

// ScorelineOf condenses a notification snapshot.
func ScorelineOf(n match.Notification) Scoreline {
	snap := n.Snapshot
	sl := Scoreline{
		MatchID: n.MatchID,
		Event:   n.Event,
		Status:  snap.Match.Status,
		Overs:   match.FormatOvers(0),
		Result:  snap.Match.Result.Summary,
	}
	if inn := snap.Innings; inn != nil {
		sl.Innings = inn.Number
		sl.BattingTeam = snap.Match.TeamName(inn.BattingTeamID)
		sl.Runs = inn.TotalRuns
		sl.Wickets = inn.TotalWickets
		sl.Overs = inn.Overs
		sl.RunRate = inn.RunRate
		sl.Target = inn.Target
		sl.RequiredRunRate = inn.RequiredRunRate
	}
	return sl
}

// String renders the scoreline the way a ticker shows it, e.g. "Lions 121/6 (19.2)".
func (s Scoreline) String() string {
	if s.Innings == 0 {
		return fmt.Sprintf("match %d %s", s.MatchID, s.Status)
	}
	return fmt.Sprintf("%s %d/%d (%s)", s.BattingTeam, s.Runs, s.Wickets, s.Overs)
}

// routingKey is shared by the broker sinks: match.<id>.<event>.
func routingKey(n match.Notification) string {
	return fmt.Sprintf("match.%d.%s", n.MatchID, n.Event)
}
