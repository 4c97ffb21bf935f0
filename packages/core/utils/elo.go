package utils

import (
	"math"

	"core/models"
)

const baseKFactor = 32.0

// ComputeUpdate applies the standard Elo formula with a category-weighted
// K-factor and returns (newWinnerRating, newLoserRating). Both players share
// the same K, so the exchanged points conserve the rating pool exactly.
func ComputeUpdate(winnerRating, loserRating float64, category models.Category) (float64, float64) {
	k := baseKFactor * category.Weight()

	expectedWinner := 1.0 / (1.0 + math.Pow(10, (loserRating-winnerRating)/400))
	expectedLoser := 1.0 - expectedWinner

	newWinner := winnerRating + k*(1.0-expectedWinner)
	newLoser := loserRating + k*(0.0-expectedLoser)

	return newWinner, newLoser
}

// PreviewDelta runs ComputeUpdate without touching any state, for the
// what-if endpoint.
func PreviewDelta(winnerID, loserID uint, winnerRating, loserRating float64, category models.Category) models.RatingDelta {
	newWinner, newLoser := ComputeUpdate(winnerRating, loserRating, category)
	return models.RatingDelta{
		WinnerID:     winnerID,
		LoserID:      loserID,
		WinnerBefore: winnerRating,
		WinnerAfter:  newWinner,
		LoserBefore:  loserRating,
		LoserAfter:   newLoser,
		Exchanged:    newWinner - winnerRating,
	}
}
