package handlers

import (
	"net/http"
	"strconv"

	"core/services"

	"github.com/gin-gonic/gin"
)

type AchievementHandler struct {
	achievementService *services.AchievementService
}

func NewAchievementHandler(achievementService *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// GetCatalog lists all non-secret badges
// @Summary Get badge catalog
// @Description The public badge catalog; secret badges are hidden until earned
// @Tags achievements
// @Produce json
// @Success 200 {array} models.BadgeView
// @Router /achievements/badges [get]
func (h *AchievementHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.achievementService.PublicCatalog())
}

// GetMyAchievements returns the caller's achievement summary
// @Summary Get own achievements
// @Tags achievements
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.AchievementSummary
// @Failure 401 {object} map[string]string
// @Router /achievements/me [get]
func (h *AchievementHandler) GetMyAchievements(c *gin.Context) {
	userID, ok := callerIdentity(c)
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

// GetProgress reports completion towards unearned badges
// @Summary Get badge progress
// @Description Completion percentage towards every unearned, non-secret badge
// @Tags achievements
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.BadgeProgress
// @Failure 401 {object} map[string]string
// @Router /achievements/progress [get]
func (h *AchievementHandler) GetProgress(c *gin.Context) {
	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	progress, err := h.achievementService.Progress(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetRecommendations suggests the badges closest to completion
// @Summary Get badge recommendations
// @Description Unearned badges between 50% and 99% complete, top five
// @Tags achievements
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.BadgeProgress
// @Failure 401 {object} map[string]string
// @Router /achievements/recommendations [get]
func (h *AchievementHandler) GetRecommendations(c *gin.Context) {
	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	recommendations, err := h.achievementService.Recommendations(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recommendations)
}

// GetLeaderboard ranks users by badge points
// @Summary Get achievement leaderboard
// @Tags achievements
// @Produce json
// @Param limit query int false "Max entries (default 20)"
// @Success 200 {array} models.AchievementLeaderboardEntry
// @Router /achievements/leaderboard [get]
func (h *AchievementHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.achievementService.Leaderboard(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leaderboard"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
