package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinOvers = 1
	MaxOvers = 50
)

// NewMatchParams describes a fixture to be created.
type NewMatchParams struct {
	TeamA       Side
	TeamB       Side
	TotalOvers  int
	Venue       string
	ScheduledAt *time.Time
}

// NewMatch validates params and returns an upcoming match.
func NewMatch(p NewMatchParams, publicLink string) (*Match, error) {
	if p.TeamA.TeamID == 0 || p.TeamB.TeamID == 0 {
		return nil, validationError("both team ids are required")
	}
	if strings.TrimSpace(p.TeamA.Name) == "" || strings.TrimSpace(p.TeamB.Name) == "" {
		return nil, validationError("both team names are required")
	}
	if p.TeamA.TeamID == p.TeamB.TeamID {
		return nil, ruleViolation("a team cannot play itself")
	}
	if p.TotalOvers < MinOvers || p.TotalOvers > MaxOvers {
		return nil, validationError("total overs must be between %d and %d", MinOvers, MaxOvers)
	}

	m := &Match{
		TeamA:          p.TeamA,
		TeamB:          p.TeamB,
		TotalOvers:     p.TotalOvers,
		Venue:          p.Venue,
		ScheduledAt:    clonePtr(p.ScheduledAt),
		Status:         StatusMatchUpcoming,
		CurrentInnings: 1,
		PublicLink:     publicLink,
	}
	m.TeamA.Players = cloneSlice(p.TeamA.Players)
	m.TeamB.Players = cloneSlice(p.TeamB.Players)
	if m.TeamA.Players == nil {
		m.TeamA.Players = PlayerIDs{}
	}
	if m.TeamB.Players == nil {
		m.TeamB.Players = PlayerIDs{}
	}
	return m, nil
}

// SetToss records the toss. It may be changed until play starts.
func (s *MatchState) SetToss(winnerID uint, decision TossDecision) error {
	if s.Match.Status != StatusMatchUpcoming {
		return invalidState("toss can only be set on an upcoming match, match is %s", s.Match.Status)
	}
	if decision != TossBat && decision != TossBowl {
		return validationError("toss decision must be %q or %q", TossBat, TossBowl)
	}
	if _, ok := s.Match.SideByTeam(winnerID); !ok {
		return ruleViolation("team %d is not playing this match", winnerID)
	}
	s.Match.Toss = Toss{WinnerID: ptr(winnerID), Decision: decision}
	return nil
}

const maxVenueLength = 200

// UpdateDetails changes the venue or scheduled start of a match that has not started. Nil leaves a field as is.
func (s *MatchState) UpdateDetails(venue *string, scheduledAt *time.Time) error {
	if s.Match.Status != StatusMatchUpcoming {
		return invalidState("cannot update a match that has already started, match is %s", s.Match.Status)
	}
	if venue != nil {
		v := strings.TrimSpace(*venue)
		if len(v) > maxVenueLength {
			return validationError("venue must be at most %d characters", maxVenueLength)
		}
		s.Match.Venue = v
	}
	if scheduledAt != nil {
		s.Match.ScheduledAt = clonePtr(scheduledAt)
	}
	return nil
}

// SetSquads replaces the squad lists. A nil list leaves that side unchanged; an empty one opens it to anyone.
// Players who already batted or bowled for a side must stay in its squad.
func (s *MatchState) SetSquads(teamA, teamB PlayerIDs) error {
	switch s.Match.Status {
	case StatusMatchCompleted, StatusMatchAbandoned:
		return invalidState("cannot change squads, match is %s", s.Match.Status)
	}
	for _, squad := range []PlayerIDs{teamA, teamB} {
		seen := make(map[uint]bool, len(squad))
		for _, id := range squad {
			if id == 0 {
				return validationError("player ids must be non-zero")
			}
			if seen[id] {
				return validationError("player %d is listed twice", id)
			}
			seen[id] = true
		}
	}

	next := s.Match.clone()
	if teamA != nil {
		next.TeamA.Players = cloneSlice(teamA)
	}
	if teamB != nil {
		next.TeamB.Players = cloneSlice(teamB)
	}
	for _, id := range next.TeamA.Players {
		if next.TeamB.Players.Contains(id) {
			return ruleViolation("player %d cannot be in both squads", id)
		}
	}

	for i := range s.Innings {
		inn := &s.Innings[i].Innings
		for _, b := range inn.Batters {
			if err := requireSquadMember(&next, inn.BattingTeamID, b.PlayerID); err != nil {
				return ruleViolation("player %d has batted in innings %d and must stay in the squad", b.PlayerID, inn.Number)
			}
		}
		for _, b := range inn.Bowlers {
			if err := requireSquadMember(&next, inn.BowlingTeamID, b.PlayerID); err != nil {
				return ruleViolation("player %d has bowled in innings %d and must stay in the squad", b.PlayerID, inn.Number)
			}
		}
	}
	s.Match = next
	return nil
}

// Openers are the players who begin an innings.
type Openers struct {
	StrikerID    uint
	NonStrikerID uint
	BowlerID     uint
}

func (o Openers) validate(m *Match, battingTeam, bowlingTeam uint) error {
	if o.StrikerID == 0 || o.NonStrikerID == 0 || o.BowlerID == 0 {
		return validationError("striker, non-striker and bowler are required")
	}
	if o.StrikerID == o.NonStrikerID {
		return ruleViolation("striker and non-striker must be different players")
	}
	if err := requireSquadMember(m, battingTeam, o.StrikerID, o.NonStrikerID); err != nil {
		return err
	}
	return requireSquadMember(m, bowlingTeam, o.BowlerID)
}

// requireSquadMember checks players against a side's squad. Sides without a squad accept anyone.
func requireSquadMember(m *Match, teamID uint, players ...uint) error {
	side, ok := m.SideByTeam(teamID)
	if !ok {
		return notFound("team %d not found in match", teamID)
	}
	if len(side.Players) == 0 {
		return nil
	}
	for _, id := range players {
		if !side.Players.Contains(id) {
			return notFound("player %d is not in the %s squad", id, side.Name)
		}
	}
	return nil
}

// StartMatch opens innings 1 with the side chosen by the toss.
func (s *MatchState) StartMatch(o Openers) error {
	if s.Match.Status != StatusMatchUpcoming {
		return invalidState("only an upcoming match can be started, match is %s", s.Match.Status)
	}
	if s.Match.Toss.WinnerID == nil {
		return invalidState("toss has not been decided")
	}

	batting := *s.Match.Toss.WinnerID
	if s.Match.Toss.Decision == TossBowl {
		batting = s.Match.Opponent(batting)
	}
	bowling := s.Match.Opponent(batting)
	if err := o.validate(&s.Match, batting, bowling); err != nil {
		return err
	}

	s.Innings = append(s.Innings, newInnings(&s.Match, 1, batting, bowling, nil, o))
	s.Match.Status = StatusMatchLive
	s.Match.CurrentInnings = 1
	return nil
}

// StartSecondInnings opens the chase once innings 1 is complete.
func (s *MatchState) StartSecondInnings(o Openers) error {
	if s.Match.Status != StatusMatchLive {
		return invalidState("match is %s, not live", s.Match.Status)
	}
	first := s.InningsByNumber(1)
	if first == nil || first.Innings.Status != InningsCompleted {
		return invalidState("first innings is not complete")
	}
	if s.InningsByNumber(2) != nil {
		return ruleViolation("second innings has already started")
	}

	batting, bowling := first.Innings.BowlingTeamID, first.Innings.BattingTeamID
	if err := o.validate(&s.Match, batting, bowling); err != nil {
		return err
	}

	target := first.Innings.TotalRuns + 1
	s.Innings = append(s.Innings, newInnings(&s.Match, 2, batting, bowling, &target, o))
	s.Match.CurrentInnings = 2
	return nil
}

func newInnings(m *Match, number int, batting, bowling uint, target *int, o Openers) InningsState {
	inn := Innings{
		MatchID:       m.ID,
		Number:        number,
		BattingTeamID: batting,
		BowlingTeamID: bowling,
		Target:        clonePtr(target),
		Status:        InningsInProgress,
		StrikerID:     ptr(o.StrikerID),
		NonStrikerID:  ptr(o.NonStrikerID),
		BowlerID:      ptr(o.BowlerID),
		Batters: BatterLines{
			{PlayerID: o.StrikerID, BattingOrder: 1},
			{PlayerID: o.NonStrikerID, BattingOrder: 2},
		},
		Bowlers:       BowlerLines{{PlayerID: o.BowlerID}},
		FallOfWickets: FallOfWickets{},
	}
	inn.refreshRates(m.TotalOvers)
	return InningsState{Innings: inn, Overs: []Over{}, Log: EventLog{Events: []BallEvent{}}}
}

// Delivery is the result of recording one ball.
type Delivery struct {
	Ball             BallEvent `json:"ball"`
	InningsNumber    int       `json:"innings_number"`
	OverCompleted    bool      `json:"over_completed"`
	InningsCompleted bool      `json:"innings_completed"`
	MatchCompleted   bool      `json:"match_completed"`
}

// RecordBall scores one delivery on the live innings and advances the match when it ends an innings.
func (s *MatchState) RecordBall(in BallInput, at time.Time) (*Delivery, error) {
	if err := ValidateBallInput(in); err != nil {
		return nil, err
	}
	cur, err := s.activeInnings()
	if err != nil {
		return nil, err
	}

	ev, prog, err := cur.recordBall(in, s.Match.TotalOvers, at)
	if err != nil {
		return nil, err
	}
	d := &Delivery{
		Ball:             ev,
		InningsNumber:    cur.Innings.Number,
		OverCompleted:    prog.overCompleted,
		InningsCompleted: prog.inningsCompleted,
	}
	if prog.inningsCompleted {
		d.MatchCompleted = s.completeInnings(cur.Innings.Number)
	}
	return d, nil
}

// completeInnings moves the match on after an innings closes and reports whether the match finished.
func (s *MatchState) completeInnings(number int) bool {
	if number == 1 {
		s.Match.CurrentInnings = 2
		return false
	}
	s.Match.Status = StatusMatchCompleted
	s.Match.Result = ComputeResult(&s.Match, &s.InningsByNumber(1).Innings, &s.InningsByNumber(2).Innings)
	return true
}

// ComputeResult decides the match from both completed innings.
func ComputeResult(m *Match, first, second *Innings) Result {
	switch {
	case first.TotalRuns > second.TotalRuns:
		margin := first.TotalRuns - second.TotalRuns
		return Result{
			WinnerID: ptr(first.BattingTeamID),
			Margin:   ptr(margin),
			WinType:  WinByRuns,
			Summary:  fmt.Sprintf("%s won by %d %s", m.TeamName(first.BattingTeamID), margin, plural(margin, "run")),
		}
	case second.TotalRuns > first.TotalRuns:
		margin := MaxWickets - second.TotalWickets
		return Result{
			WinnerID: ptr(second.BattingTeamID),
			Margin:   ptr(margin),
			WinType:  WinByWickets,
			Summary:  fmt.Sprintf("%s won by %d %s", m.TeamName(second.BattingTeamID), margin, plural(margin, "wicket")),
		}
	default:
		return Result{WinType: WinTie, Summary: "Match Tied"}
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Abandon calls the match off without a result.
func (s *MatchState) Abandon() error {
	switch s.Match.Status {
	case StatusMatchUpcoming, StatusMatchLive:
	default:
		return invalidState("match is %s and cannot be abandoned", s.Match.Status)
	}
	s.Match.Status = StatusMatchAbandoned
	s.Match.Result = Result{WinType: WinNoResult, Summary: "Match Abandoned"}
	return nil
}

// SetBatter puts a player at one end of the live innings.
func (s *MatchState) SetBatter(playerID uint, isStriker bool) error {
	if playerID == 0 {
		return validationError("player id is required")
	}
	cur, err := s.activeInnings()
	if err != nil {
		return err
	}
	inn := &cur.Innings
	if err := requireSquadMember(&s.Match, inn.BattingTeamID, playerID); err != nil {
		return err
	}

	other := inn.NonStrikerID
	if !isStriker {
		other = inn.StrikerID
	}
	if sameID(other, playerID) {
		return ruleViolation("player %d is already batting at the other end", playerID)
	}

	line := inn.batter(playerID)
	if line != nil && line.IsOut {
		return ruleViolation("player %d has already been dismissed", playerID)
	}
	if line == nil {
		inn.Batters = append(inn.Batters, BatterStats{PlayerID: playerID, BattingOrder: len(inn.Batters) + 1})
	}

	if isStriker {
		inn.StrikerID = ptr(playerID)
	} else {
		inn.NonStrikerID = ptr(playerID)
	}
	return nil
}

// SetBowler selects the bowler for the next delivery.
func (s *MatchState) SetBowler(playerID uint) error {
	if playerID == 0 {
		return validationError("player id is required")
	}
	cur, err := s.activeInnings()
	if err != nil {
		return err
	}
	inn := &cur.Innings
	if err := requireSquadMember(&s.Match, inn.BowlingTeamID, playerID); err != nil {
		return err
	}
	if last := cur.lastCompletedOver(); last != nil && last.BowlerID == playerID {
		return ruleViolation("player %d bowled the previous over", playerID)
	}

	if inn.bowler(playerID) == nil {
		inn.Bowlers = append(inn.Bowlers, BowlerStats{PlayerID: playerID})
	}
	inn.BowlerID = ptr(playerID)
	return nil
}

// SwapBatters exchanges striker and non-striker.
func (s *MatchState) SwapBatters() error {
	cur, err := s.activeInnings()
	if err != nil {
		return err
	}
	inn := &cur.Innings
	inn.StrikerID, inn.NonStrikerID = inn.NonStrikerID, inn.StrikerID
	return nil
}
