package handlers

import (
	"net/http"
	"strconv"

	"core/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService          *services.UserService
	statsService         *services.StatsService
	matchService         *services.MatchService
	ratingHistoryService *services.RatingHistoryService
	achievementService   *services.AchievementService
}

func NewUserHandler(
	userService *services.UserService,
	statsService *services.StatsService,
	matchService *services.MatchService,
	ratingHistoryService *services.RatingHistoryService,
	achievementService *services.AchievementService,
) *UserHandler {
	return &UserHandler{
		userService:          userService,
		statsService:         statsService,
		matchService:         matchService,
		ratingHistoryService: ratingHistoryService,
		achievementService:   achievementService,
	}
}

// GetRankings returns the club ladder
// @Summary Get rankings
// @Description Active non-admin users ordered by rating, ties broken by id
// @Tags users
// @Produce json
// @Success 200 {array} models.RankingEntry
// @Router /rankings [get]
func (h *UserHandler) GetRankings(c *gin.Context) {
	rankings, err := h.userService.GetRankings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rankings"})
		return
	}
	c.JSON(http.StatusOK, rankings)
}

// SearchUsers finds opponents by username substring
// @Summary Search users
// @Description Case-insensitive username search, excluding the caller
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} authmodels.User
// @Failure 401 {object} map[string]string
// @Router /users/search [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	users, err := h.userService.SearchUsers(c.Query("q"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns a public user profile
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} authmodels.User
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserStats returns the full statistics block for a user
// @Summary Get user statistics
// @Description Streaks, per-category record, recency windows and ladder rank
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.DetailedStats
// @Failure 404 {object} map[string]string
// @Router /users/{id}/stats [get]
func (h *UserHandler) GetUserStats(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.Snapshot(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetUserMatches lists a user's matches
// @Summary Get a user's matches
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20)"
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 404 {object} map[string]string
// @Router /users/{id}/matches [get]
func (h *UserHandler) GetUserMatches(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	if _, err := h.userService.GetUserByID(userID); err != nil {
		respondError(c, err)
		return
	}

	filters := parseMatchFilters(c)
	filters.UserID = userID

	result, err := h.matchService.GetMatches(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUserRatingHistory returns a user's rating movements
// @Summary Get a user's rating history
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param limit query int false "Max entries (default 50)"
// @Success 200 {array} models.RatingHistory
// @Failure 404 {object} map[string]string
// @Router /users/{id}/rating-history [get]
func (h *UserHandler) GetUserRatingHistory(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	if _, err := h.userService.GetUserByID(userID); err != nil {
		respondError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	history, err := h.ratingHistoryService.ForUser(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rating history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetUserAchievements returns a user's public achievement summary
// @Summary Get a user's achievements
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.AchievementSummary
// @Failure 404 {object} map[string]string
// @Router /users/{id}/achievements [get]
func (h *UserHandler) GetUserAchievements(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	summary, err := h.achievementService.Summary(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func pathUserID(c *gin.Context) (uint, bool) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(userID), true
}
