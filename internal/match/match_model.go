package match

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type MatchStatus string

const (
	StatusMatchUpcoming  MatchStatus = "upcoming"
	StatusMatchLive      MatchStatus = "live"
	StatusMatchCompleted MatchStatus = "completed"
	StatusMatchAbandoned MatchStatus = "abandoned" // e.g. rain, called off by officials
)

func (s MatchStatus) Valid() bool {
	switch s {
	case StatusMatchUpcoming, StatusMatchLive, StatusMatchCompleted, StatusMatchAbandoned:
		return true
	}
	return false
}

type InningsStatus string

const (
	InningsNotStarted InningsStatus = "not_started"
	InningsInProgress InningsStatus = "in_progress"
	InningsCompleted  InningsStatus = "completed"
)

// TossDecision is what the toss winner elected to do.
type TossDecision string

const (
	TossBat  TossDecision = "bat"
	TossBowl TossDecision = "bowl"
)

type WinType string

const (
	WinByRuns    WinType = "runs"
	WinByWickets WinType = "wickets"
	WinTie       WinType = "tie"
	WinNoResult  WinType = "no_result"
)

// DismissalType for cricket wickets
type DismissalType string

const (
	DismissalTypeBowled           DismissalType = "bowled"
	DismissalTypeCaught           DismissalType = "caught"
	DismissalTypeCaughtBehind     DismissalType = "caught_behind"
	DismissalTypeCaughtAndBowled  DismissalType = "caught_and_bowled"
	DismissalTypeLBW              DismissalType = "lbw"
	DismissalTypeRunOut           DismissalType = "run_out"
	DismissalTypeStumped          DismissalType = "stumped"
	DismissalTypeHitWicket        DismissalType = "hit_wicket"
	DismissalTypeHandledBall      DismissalType = "handled_ball"
	DismissalTypeHitBallTwice     DismissalType = "hit_ball_twice"
	DismissalTypeObstructingField DismissalType = "obstructing_field"
	DismissalTypeTimedOut         DismissalType = "timed_out"
	DismissalTypeRetiredHurt      DismissalType = "retired_hurt"
	DismissalTypeRetiredOut       DismissalType = "retired_out"
)

// CreditsBowler reports whether the dismissal counts in the bowler's wicket column.
// The second return value is false for unknown kinds.
func (d DismissalType) CreditsBowler() (credited bool, known bool) {
	switch d {
	case DismissalTypeBowled, DismissalTypeCaught, DismissalTypeCaughtBehind,
		DismissalTypeCaughtAndBowled, DismissalTypeLBW, DismissalTypeStumped,
		DismissalTypeHitWicket, DismissalTypeHandledBall, DismissalTypeHitBallTwice:
		return true, true
	case DismissalTypeRunOut, DismissalTypeRetiredHurt, DismissalTypeRetiredOut,
		DismissalTypeObstructingField, DismissalTypeTimedOut:
		return false, true
	}
	return false, false
}

func (d DismissalType) Valid() bool {
	_, known := d.CreditsBowler()
	return known
}

// ExtraType for cricket extras
type ExtraType string

const (
	ExtraWide    ExtraType = "wide"
	ExtraNoBall  ExtraType = "no_ball"
	ExtraBye     ExtraType = "bye"
	ExtraLegBye  ExtraType = "leg_bye"
	ExtraPenalty ExtraType = "penalty"
)

func (e ExtraType) Valid() bool {
	switch e {
	case ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye, ExtraPenalty:
		return true
	}
	return false
}

// PlayerIDs is a JSON column holding a squad list.
type PlayerIDs []uint

func (p PlayerIDs) Contains(id uint) bool {
	for _, v := range p {
		if v == id {
			return true
		}
	}
	return false
}

func (p PlayerIDs) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PlayerIDs) Scan(src interface{}) error {
	return scanJSON("PlayerIDs", src, p)
}

// Side is one of the two teams in a match.
type Side struct {
	TeamID  uint      `json:"team_id"`
	Name    string    `json:"name" gorm:"size:120"`
	Players PlayerIDs `json:"players" gorm:"type:json"`
}

type Toss struct {
	WinnerID *uint        `json:"winner_id,omitempty"`
	Decision TossDecision `json:"decision,omitempty" gorm:"type:varchar(10)"`
}

type Result struct {
	WinnerID *uint   `json:"winner_id,omitempty"`
	Margin   *int    `json:"margin,omitempty"`
	WinType  WinType `json:"win_type,omitempty" gorm:"type:varchar(20)"`
	Summary  string  `json:"summary,omitempty"`
}

// Match is a limited-overs fixture between two sides.
type Match struct {
	gorm.Model
	TeamA          Side        `json:"team_a" gorm:"embedded;embeddedPrefix:team_a_"`
	TeamB          Side        `json:"team_b" gorm:"embedded;embeddedPrefix:team_b_"`
	TotalOvers     int         `json:"total_overs" gorm:"not null"`
	Venue          string      `json:"venue,omitempty"`
	ScheduledAt    *time.Time  `json:"scheduled_at,omitempty"`
	Toss           Toss        `json:"toss" gorm:"embedded;embeddedPrefix:toss_"`
	Status         MatchStatus `json:"status" gorm:"type:varchar(20);default:'upcoming';index"`
	CurrentInnings int         `json:"current_innings" gorm:"default:1"`
	Result         Result      `json:"result" gorm:"embedded;embeddedPrefix:result_"`
	PublicLink     string      `json:"public_link" gorm:"size:64;uniqueIndex"`
}

// SideByTeam returns the side with the given team id.
func (m *Match) SideByTeam(teamID uint) (*Side, bool) {
	switch teamID {
	case m.TeamA.TeamID:
		return &m.TeamA, true
	case m.TeamB.TeamID:
		return &m.TeamB, true
	}
	return nil, false
}

// Opponent returns the team id facing teamID.
func (m *Match) Opponent(teamID uint) uint {
	if teamID == m.TeamA.TeamID {
		return m.TeamB.TeamID
	}
	return m.TeamA.TeamID
}

func (m *Match) TeamName(teamID uint) string {
	if side, ok := m.SideByTeam(teamID); ok {
		return side.Name
	}
	return ""
}

type Extras struct {
	Wides     int `json:"wides"`
	NoBalls   int `json:"no_balls"`
	Byes      int `json:"byes"`
	LegByes   int `json:"leg_byes"`
	Penalties int `json:"penalties"`
	Total     int `json:"total"`
}

func (e *Extras) recomputeTotal() {
	e.Total = e.Wides + e.NoBalls + e.Byes + e.LegByes + e.Penalties
}

type BatterStats struct {
	PlayerID      uint          `json:"player_id"`
	Runs          int           `json:"runs"`
	BallsFaced    int           `json:"balls_faced"`
	Fours         int           `json:"fours"`
	Sixes         int           `json:"sixes"`
	IsOut         bool          `json:"is_out"`
	DismissalType DismissalType `json:"dismissal_type,omitempty"`
	DismissedBy   *uint         `json:"dismissed_by,omitempty"`
	FielderID     *uint         `json:"fielder_id,omitempty"`
	BattingOrder  int           `json:"batting_order"`
}

type BowlerStats struct {
	PlayerID uint `json:"player_id"`
	Overs    int  `json:"overs"`
	Balls    int  `json:"balls"`
	Maidens  int  `json:"maidens"`
	Runs     int  `json:"runs"`
	Wickets  int  `json:"wickets"`
	Wides    int  `json:"wides"`
	NoBalls  int  `json:"no_balls"`
}

type FallOfWicket struct {
	WicketNumber int    `json:"wicket_number"`
	Score        int    `json:"score"`
	Overs        string `json:"overs"`
	BatterID     uint   `json:"batter_id"`
}

// BatterLines, BowlerLines and FallOfWickets are stored as JSON columns on the innings row.
type BatterLines []BatterStats

type BowlerLines []BowlerStats

type FallOfWickets []FallOfWicket

func (b BatterLines) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *BatterLines) Scan(src interface{}) error {
	return scanJSON("BatterLines", src, b)
}

func (b BowlerLines) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *BowlerLines) Scan(src interface{}) error {
	return scanJSON("BowlerLines", src, b)
}

func (f FallOfWickets) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *FallOfWickets) Scan(src interface{}) error {
	return scanJSON("FallOfWickets", src, f)
}

// scanJSON unmarshals a JSON column into dst.
func scanJSON(name string, src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("%s: expected []byte, got %T", name, src)
	}
}

// Innings is the running aggregate for one side's turn to bat.
type Innings struct {
	gorm.Model
	MatchID          uint          `json:"match_id" gorm:"not null;uniqueIndex:idx_innings_match_number"`
	Number           int           `json:"number" gorm:"not null;uniqueIndex:idx_innings_match_number"`
	BattingTeamID    uint          `json:"batting_team_id"`
	BowlingTeamID    uint          `json:"bowling_team_id"`
	TotalRuns        int           `json:"total_runs"`
	TotalWickets     int           `json:"total_wickets"`
	TotalBalls       int           `json:"total_balls"`
	CurrentOver      int           `json:"current_over"`
	CurrentOverBalls int           `json:"current_over_balls"`
	Overs            string        `json:"overs" gorm:"size:10"`
	Extras           Extras        `json:"extras" gorm:"embedded;embeddedPrefix:extras_"`
	Target           *int          `json:"target,omitempty"`
	RunRate          float64       `json:"run_rate"`
	RequiredRunRate  *float64      `json:"required_run_rate,omitempty"`
	Status           InningsStatus `json:"status" gorm:"type:varchar(20);default:'not_started'"`
	StrikerID        *uint         `json:"striker_id,omitempty"`
	NonStrikerID     *uint         `json:"non_striker_id,omitempty"`
	BowlerID         *uint         `json:"bowler_id,omitempty"`
	Batters          BatterLines   `json:"batters" gorm:"type:json"`
	Bowlers          BowlerLines   `json:"bowlers" gorm:"type:json"`
	FallOfWickets    FallOfWickets `json:"fall_of_wickets" gorm:"type:json"`
}

// TableName pins the table name; Innings is already plural.
func (Innings) TableName() string {
	return "innings"
}

func (inn *Innings) batter(playerID uint) *BatterStats {
	for i := range inn.Batters {
		if inn.Batters[i].PlayerID == playerID {
			return &inn.Batters[i]
		}
	}
	return nil
}

func (inn *Innings) bowler(playerID uint) *BowlerStats {
	for i := range inn.Bowlers {
		if inn.Bowlers[i].PlayerID == playerID {
			return &inn.Bowlers[i]
		}
	}
	return nil
}

// Over is a single over within an innings.
type Over struct {
	gorm.Model
	InningsID  uint `json:"innings_id" gorm:"not null;uniqueIndex:idx_over_innings_number"`
	Number     int  `json:"number" gorm:"not null;uniqueIndex:idx_over_innings_number"`
	BowlerID   uint `json:"bowler_id"`
	Runs       int  `json:"runs"`
	Wickets    int  `json:"wickets"`
	Wides      int  `json:"wides"`
	NoBalls    int  `json:"no_balls"`
	LegalBalls int  `json:"legal_balls"`
	IsMaiden   bool `json:"is_maiden"`
	IsComplete bool `json:"is_complete"`
}

type BallRuns struct {
	Batter int `json:"batter"`
	Extras int `json:"extras"`
	Total  int `json:"total"`
}

type ExtrasDetail struct {
	Type ExtraType `json:"type"`
	Runs int       `json:"runs"`
}

type WicketDetail struct {
	DismissalType DismissalType `json:"dismissal_type"`
	BatterID      uint          `json:"batter_id"`
	BowlerID      *uint         `json:"bowler_id,omitempty"`
	FielderID     *uint         `json:"fielder_id,omitempty"`
}

// BallEvent is one recorded delivery. Only IsUndone changes after it is written.
type BallEvent struct {
	gorm.Model
	InningsID    uint          `json:"innings_id" gorm:"not null;uniqueIndex:idx_ball_innings_sequence"`
	Sequence     int           `json:"sequence" gorm:"not null;uniqueIndex:idx_ball_innings_sequence"`
	OverNumber   int           `json:"over_number"`
	BallInOver   int           `json:"ball_in_over"`
	StrikerID    uint          `json:"striker_id"`
	NonStrikerID uint          `json:"non_striker_id"`
	BowlerID     uint          `json:"bowler_id"`
	Runs         BallRuns      `json:"runs" gorm:"embedded;embeddedPrefix:runs_"`
	IsLegal      bool          `json:"is_legal"`
	IsFour       bool          `json:"is_four"`
	IsSix        bool          `json:"is_six"`
	IsWicket     bool          `json:"is_wicket"`
	Wicket       *WicketDetail `json:"wicket,omitempty" gorm:"serializer:json"`
	Extras       *ExtrasDetail `json:"extras,omitempty" gorm:"serializer:json"`
	IsUndone     bool          `json:"is_undone" gorm:"index"`
	RecordedAt   time.Time     `json:"recorded_at"`
}

// WicketInput describes a dismissal on the ball being recorded.
type WicketInput struct {
	DismissalType DismissalType `json:"dismissal_type" binding:"required"`
	BatterID      uint          `json:"batter_id" binding:"required"`
	FielderID     *uint         `json:"fielder_id,omitempty"`
}

// BallInput is what the scorer submits for one delivery.
type BallInput struct {
	Runs     int           `json:"runs" binding:"min=0,max=7"`
	Extras   *ExtrasDetail `json:"extras,omitempty"`
	IsWicket bool          `json:"is_wicket"`
	Wicket   *WicketInput  `json:"wicket,omitempty"`
}
