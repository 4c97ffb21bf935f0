package handlers

import (
	"net/http"

	"core/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetClubStats returns the dashboard header numbers
// @Summary Get club statistics
// @Description Total players, total matches, and last-7-days vs previous-7-days activity
// @Tags stats
// @Produce json
// @Success 200 {object} models.ClubStats
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func (h *StatsHandler) GetClubStats(c *gin.Context) {
	stats, err := h.statsService.ClubStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
