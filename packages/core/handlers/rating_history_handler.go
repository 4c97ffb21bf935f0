package handlers

import (
	"net/http"
	"strconv"

	"core/services"

	"github.com/gin-gonic/gin"
)

type RatingHistoryHandler struct {
	ratingHistoryService *services.RatingHistoryService
}

func NewRatingHistoryHandler(ratingHistoryService *services.RatingHistoryService) *RatingHistoryHandler {
	return &RatingHistoryHandler{ratingHistoryService: ratingHistoryService}
}

// GetRecentChanges lists the latest rating movements across all players
// @Summary Get recent rating changes
// @Description Recent rating movements for all players ordered by date (newest first)
// @Tags rating-history
// @Produce json
// @Param limit query int false "Number of changes to retrieve (default 10, max 100)"
// @Success 200 {array} models.RatingHistory
// @Failure 400 {object} map[string]string
// @Router /rating-history/recent [get]
func (h *RatingHistoryHandler) GetRecentChanges(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	changes, err := h.ratingHistoryService.Recent(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, changes)
}
