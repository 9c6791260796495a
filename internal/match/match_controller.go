package match

import (
	"net/http"
	"strconv"
	"time"

	responses "github.com/DhavalSuthar-24/crease/pkg/matchresponse"
	"github.com/gin-gonic/gin"
)

// MatchController handles match and scoring HTTP requests
type MatchController struct {
	service      *Service
	defaultOvers int // used when a create request omits total_overs
}

// NewMatchController creates a new match controller
func NewMatchController(service *Service, defaultOvers int) *MatchController {
	return &MatchController{service: service, defaultOvers: defaultOvers}
}

// --- DTOs for requests ---

type SideRequest struct {
	TeamID  uint   `json:"team_id" binding:"required"`
	Name    string `json:"name" binding:"required,min=1,max=120"`
	Players []uint `json:"players,omitempty"`
}

// CreateMatchRequest defines the request payload for creating a match
type CreateMatchRequest struct {
	TeamA       SideRequest `json:"team_a" binding:"required"`
	TeamB       SideRequest `json:"team_b" binding:"required"`
	TotalOvers  int         `json:"total_overs" binding:"omitempty,min=1,max=50"`
	Venue       string      `json:"venue,omitempty" binding:"max=200"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty"`
}

// UpdateMatchRequest changes fixture details. Omitted fields are left as they are.
type UpdateMatchRequest struct {
	Venue       *string    `json:"venue,omitempty" binding:"omitempty,max=200"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// UpdatePlayersRequest replaces squad lists. An omitted list is left as it is; an empty one opens the side.
type UpdatePlayersRequest struct {
	TeamAPlayers []uint `json:"team_a_players"`
	TeamBPlayers []uint `json:"team_b_players"`
}

type TossRequest struct {
	WinnerID uint         `json:"winner_id" binding:"required"`
	Decision TossDecision `json:"decision" binding:"required,oneof=bat bowl"`
}

// OpenersRequest starts an innings.
type OpenersRequest struct {
	StrikerID    uint `json:"striker_id" binding:"required"`
	NonStrikerID uint `json:"non_striker_id" binding:"required,nefield=StrikerID"`
	BowlerID     uint `json:"bowler_id" binding:"required"`
}

func (r OpenersRequest) openers() Openers {
	return Openers{StrikerID: r.StrikerID, NonStrikerID: r.NonStrikerID, BowlerID: r.BowlerID}
}

type SetBatterRequest struct {
	PlayerID  uint `json:"player_id" binding:"required"`
	IsStriker bool `json:"is_striker"`
}

type SetBowlerRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func parseInningsNumber(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || (n != 1 && n != 2) {
		responses.ErrorResponse(c, http.StatusBadRequest, "Innings number must be 1 or 2")
		return 0, false
	}
	return n, true
}

func parsePage(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// CreateMatch godoc
// @Summary Create a match
// @Tags matches
// @Accept json
// @Produce json
// @Param match body CreateMatchRequest true "Match"
// @Success 201 {object} Match
// @Security BearerAuth
// @Router /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	overs := req.TotalOvers
	if overs == 0 {
		overs = mc.defaultOvers
	}

	m, err := mc.service.CreateMatch(c.Request.Context(), NewMatchParams{
		TeamA:       Side{TeamID: req.TeamA.TeamID, Name: req.TeamA.Name, Players: req.TeamA.Players},
		TeamB:       Side{TeamID: req.TeamB.TeamID, Name: req.TeamB.Name, Players: req.TeamB.Players},
		TotalOvers:  overs,
		Venue:       req.Venue,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, gin.H{"message": "Match created successfully", "match": m})
}

// GetMatches godoc
// @Summary List matches
// @Tags matches
// @Produce json
// @Param status query string false "upcoming, live, completed or abandoned"
// @Param team_id query int false "Team"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Router /matches [get]
func (mc *MatchController) GetMatches(c *gin.Context) {
	page, pageSize := parsePage(c)

	var filter MatchFilter
	if status := c.Query("status"); status != "" {
		filter.Status = MatchStatus(status)
		if !filter.Status.Valid() {
			responses.ErrorResponse(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
	}
	if teamID := c.Query("team_id"); teamID != "" {
		id, err := strconv.ParseUint(teamID, 10, 64)
		if err != nil {
			responses.ErrorResponse(c, http.StatusBadRequest, "Invalid team_id")
			return
		}
		filter.TeamID = uint(id)
	}

	matches, total, err := mc.service.ListMatches(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.PaginatedResponse(c, http.StatusOK, matches, page, pageSize, total)
}

// GetLiveMatches godoc
// @Summary List live matches
// @Tags matches
// @Produce json
// @Router /matches/live [get]
func (mc *MatchController) GetLiveMatches(c *gin.Context) {
	page, pageSize := parsePage(c)
	matches, total, err := mc.service.ListLiveMatches(c.Request.Context(), page, pageSize)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.PaginatedResponse(c, http.StatusOK, matches, page, pageSize, total)
}

// GetMatchByID godoc
// @Summary Get a match with its innings
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} MatchView
// @Router /matches/{id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := mc.service.GetMatch(c.Request.Context(), id)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, view)
}

// GetMatchByPublicLink godoc
// @Summary Get a match by its shareable link
// @Tags matches
// @Produce json
// @Param link path string true "Public link"
// @Router /matches/public/{link} [get]
func (mc *MatchController) GetMatchByPublicLink(c *gin.Context) {
	view, err := mc.service.GetMatchByPublicLink(c.Request.Context(), c.Param("link"))
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, view)
}

// SetToss godoc
// @Summary Record the toss
// @Tags matches
// @Accept json
// @Param id path int true "Match ID"
// @Param toss body TossRequest true "Toss"
// @Security BearerAuth
// @Router /matches/{id}/toss [put]
func (mc *MatchController) SetToss(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req TossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, err := mc.service.SetToss(c.Request.Context(), id, req.WinnerID, req.Decision)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Toss recorded", "match": m})
}

// UpdateMatch godoc
// @Summary Update venue or start time of an upcoming match
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param match body UpdateMatchRequest true "Fields to change"
// @Success 200 {object} Match
// @Security BearerAuth
// @Router /matches/{id} [put]
func (mc *MatchController) UpdateMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, err := mc.service.UpdateMatch(c.Request.Context(), id, req.Venue, req.ScheduledAt)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Match updated successfully", "match": m})
}

// UpdateMatchPlayers godoc
// @Summary Replace the squads of a match
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param players body UpdatePlayersRequest true "Squads"
// @Success 200 {object} Match
// @Security BearerAuth
// @Router /matches/{id}/players [put]
func (mc *MatchController) UpdateMatchPlayers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdatePlayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, err := mc.service.UpdateSquads(c.Request.Context(), id, PlayerIDs(req.TeamAPlayers), PlayerIDs(req.TeamBPlayers))
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Match players updated successfully", "match": m})
}

// DeleteMatch godoc
// @Summary Delete a match and its scoring history
// @Tags matches
// @Param id path int true "Match ID"
// @Security BearerAuth
// @Router /matches/{id} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := mc.service.DeleteMatch(c.Request.Context(), id); err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Match deleted successfully"})
}

// StartMatch godoc
// @Summary Start the first innings
// @Tags scoring
// @Accept json
// @Param id path int true "Match ID"
// @Param openers body OpenersRequest true "Opening batters and bowler"
// @Security BearerAuth
// @Router /matches/{id}/start [post]
func (mc *MatchController) StartMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req OpenersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	inn, err := mc.service.StartMatch(c.Request.Context(), id, req.openers())
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Match started", "innings": inn})
}

// StartSecondInnings godoc
// @Summary Start the second innings
// @Tags scoring
// @Accept json
// @Param id path int true "Match ID"
// @Param openers body OpenersRequest true "Opening batters and bowler"
// @Security BearerAuth
// @Router /matches/{id}/second-innings [post]
func (mc *MatchController) StartSecondInnings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req OpenersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	inn, err := mc.service.StartSecondInnings(c.Request.Context(), id, req.openers())
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Second innings started", "innings": inn})
}

// AbandonMatch godoc
// @Summary Abandon a match
// @Tags matches
// @Param id path int true "Match ID"
// @Security BearerAuth
// @Router /matches/{id}/abandon [post]
func (mc *MatchController) AbandonMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	m, err := mc.service.AbandonMatch(c.Request.Context(), id)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Match abandoned", "match": m})
}

// RecordBall godoc
// @Summary Record a delivery
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param ball body BallInput true "Delivery"
// @Success 201 {object} BallResult
// @Security BearerAuth
// @Router /matches/{id}/ball [post]
func (mc *MatchController) RecordBall(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req BallInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	res, err := mc.service.RecordBall(c.Request.Context(), id, req)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, res)
}

// UndoLastBall godoc
// @Summary Undo the last delivery
// @Tags scoring
// @Param id path int true "Match ID"
// @Success 200 {object} UndoOutcome
// @Security BearerAuth
// @Router /matches/{id}/undo [post]
func (mc *MatchController) UndoLastBall(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := mc.service.UndoLastBall(c.Request.Context(), id)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, res)
}

// SetBatter godoc
// @Summary Send a batter to the crease
// @Tags scoring
// @Accept json
// @Param id path int true "Match ID"
// @Param batter body SetBatterRequest true "Batter"
// @Security BearerAuth
// @Router /matches/{id}/batter [post]
func (mc *MatchController) SetBatter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req SetBatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	inn, err := mc.service.SetBatter(c.Request.Context(), id, req.PlayerID, req.IsStriker)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, inn)
}

// SetBowler godoc
// @Summary Change the bowler
// @Tags scoring
// @Accept json
// @Param id path int true "Match ID"
// @Param bowler body SetBowlerRequest true "Bowler"
// @Security BearerAuth
// @Router /matches/{id}/bowler [post]
func (mc *MatchController) SetBowler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req SetBowlerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	inn, err := mc.service.SetBowler(c.Request.Context(), id, req.PlayerID)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, inn)
}

// SwapBatters godoc
// @Summary Exchange striker and non-striker
// @Tags scoring
// @Param id path int true "Match ID"
// @Security BearerAuth
// @Router /matches/{id}/swap [post]
func (mc *MatchController) SwapBatters(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	inn, err := mc.service.SwapBatters(c.Request.Context(), id)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, inn)
}

// GetCurrentOver godoc
// @Summary Current over of the live innings
// @Tags scoring
// @Param id path int true "Match ID"
// @Success 200 {object} CurrentOverView
// @Router /matches/{id}/current-over [get]
func (mc *MatchController) GetCurrentOver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := mc.service.GetCurrentOver(c.Request.Context(), id)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, view)
}

// GetInnings godoc
// @Summary Innings scorecard
// @Tags scoring
// @Param id path int true "Match ID"
// @Param number path int true "Innings number"
// @Success 200 {object} Innings
// @Router /matches/{id}/innings/{number} [get]
func (mc *MatchController) GetInnings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	number, ok := parseInningsNumber(c)
	if !ok {
		return
	}
	inn, err := mc.service.GetInnings(c.Request.Context(), id, number)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, inn)
}

// GetBallEvents godoc
// @Summary Deliveries of an innings, undone ones excluded
// @Tags scoring
// @Param id path int true "Match ID"
// @Param number path int true "Innings number"
// @Router /matches/{id}/innings/{number}/balls [get]
func (mc *MatchController) GetBallEvents(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	number, ok := parseInningsNumber(c)
	if !ok {
		return
	}
	balls, err := mc.service.GetBallEvents(c.Request.Context(), id, number)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"balls": balls, "count": len(balls)})
}

// AuditInnings godoc
// @Summary Replay an innings and check its aggregate
// @Tags scoring
// @Param id path int true "Match ID"
// @Param number path int true "Innings number"
// @Success 200 {object} AuditReport
// @Router /matches/{id}/innings/{number}/audit [get]
func (mc *MatchController) AuditInnings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	number, ok := parseInningsNumber(c)
	if !ok {
		return
	}
	report, err := mc.service.AuditInnings(c.Request.Context(), id, number)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, report)
}
