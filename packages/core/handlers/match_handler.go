package handlers

import (
	"net/http"
	"strconv"

	"core/models"
	"core/services"

	authMiddleware "auth/middleware"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func callerIdentity(c *gin.Context) (uint, bool) {
	userID, ok := authMiddleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func callerIsAdmin(c *gin.Context) bool {
	isAdmin, exists := c.Get("is_admin")
	return exists && isAdmin.(bool)
}

// SubmitMatch reports a played match against an opponent
// @Summary Report a match
// @Description Report a match result; the opponent must confirm it before ratings move
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match body models.SubmitMatchRequest true "Match report"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) SubmitMatch(c *gin.Context) {
	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req models.SubmitMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.Submit(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// ConfirmMatch confirms a pending match and applies the rating update
// @Summary Confirm a match
// @Description Confirm a pending match; only the opponent (or an admin) may confirm
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/confirm [post]
func (h *MatchHandler) ConfirmMatch(c *gin.Context) {
	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	match, delta, err := h.matchService.Confirm(userID, callerIsAdmin(c), uint(matchID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": match, "rating_delta": delta})
}

// RejectMatch declines a pending match
// @Summary Reject a match
// @Description Decline a pending match report; no rating effect
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/reject [post]
func (h *MatchHandler) RejectMatch(c *gin.Context) {
	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	match, err := h.matchService.Reject(userID, callerIsAdmin(c), uint(matchID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// RollbackMatch reverses a confirmed match (admin only)
// @Summary Roll back a confirmed match
// @Description Restore both players' ratings and counters from the stored snapshot
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/matches/{id}/rollback [post]
func (h *MatchHandler) RollbackMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	match, err := h.matchService.Rollback(uint(matchID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// DeleteMatch soft-deletes a non-confirmed match (admin only)
// @Summary Delete a match
// @Description Delete a pending, rejected or cancelled match record
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id} [delete]
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	if err := h.matchService.Delete(uint(matchID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Match deleted successfully"})
}

// GetRecentMatches retrieves the N most recent confirmed matches
// @Summary Get recent matches
// @Description Get the latest confirmed matches, newest first
// @Tags matches
// @Produce json
// @Param limit query int false "Number of matches to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Router /matches/recent [get]
func (h *MatchHandler) GetRecentMatches(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	matches, err := h.matchService.GetRecentMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetPendingMatches lists matches awaiting the caller's decision
// @Summary Get pending confirmations
// @Description List pending matches the caller must confirm or reject
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Match
// @Failure 401 {object} map[string]string
// @Router /matches/pending [get]
func (h *MatchHandler) GetPendingMatches(c *gin.Context) {
	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	matches, err := h.matchService.GetPendingForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pending matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatchHistory lists the caller's own matches
// @Summary Get own match history
// @Description Paginated history of the caller's matches, all statuses
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 401 {object} map[string]string
// @Router /matches/history [get]
func (h *MatchHandler) GetMatchHistory(c *gin.Context) {
	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	filters := parseMatchFilters(c)
	filters.UserID = userID

	result, err := h.matchService.GetMatches(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve match history"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatches retrieves matches with pagination and filters
// @Summary Get matches with pagination and filters
// @Description Get matches with optional filters for player, status and category
// @Tags matches
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Param userId query int false "Filter by participant"
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Success 200 {object} models.PaginatedMatchResponse
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	filters := parseMatchFilters(c)
	if userIDStr := c.Query("userId"); userIDStr != "" {
		if userID, err := strconv.ParseUint(userIDStr, 10, 32); err == nil {
			filters.UserID = uint(userID)
		}
	}

	result, err := h.matchService.GetMatches(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// PreviewElo simulates a match without persisting anything
// @Summary Preview rating changes
// @Description Compute what a win or a loss against the opponent would do to both ratings
// @Tags elo
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param preview body models.EloPreviewRequest true "Opponent and category"
// @Success 200 {object} models.EloPreviewResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /elo/preview [post]
func (h *MatchHandler) PreviewElo(c *gin.Context) {
	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req models.EloPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preview, err := h.matchService.Preview(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

func parseMatchFilters(c *gin.Context) models.MatchFilters {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	filters := models.MatchFilters{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	}
	if raw := c.Query("category"); raw != "" {
		if category, err := models.ParseCategory(raw); err == nil {
			filters.Category = category
		}
	}
	return filters
}
