package utils

import (
	"math"
	"testing"

	"core/models"
)

func TestComputeUpdateWinnerGainsLoserLoses(t *testing.T) {
	ratings := [][2]float64{
		{1200, 1200},
		{1400, 1200},
		{1200, 1400},
		{2100, 900},
		{900, 2100},
	}

	for _, pair := range ratings {
		for _, category := range models.Categories() {
			newWinner, newLoser := ComputeUpdate(pair[0], pair[1], category)
			if newWinner <= pair[0] {
				t.Errorf("ComputeUpdate(%v, %v, %s): winner did not gain (%v)",
					pair[0], pair[1], category, newWinner)
			}
			if newLoser >= pair[1] {
				t.Errorf("ComputeUpdate(%v, %v, %s): loser did not lose (%v)",
					pair[0], pair[1], category, newLoser)
			}
		}
	}
}

func TestComputeUpdateZeroSum(t *testing.T) {
	for _, category := range models.Categories() {
		newWinner, newLoser := ComputeUpdate(1437.5, 1289.25, category)
		pool := (newWinner - 1437.5) + (newLoser - 1289.25)
		if math.Abs(pool) > 1e-9 {
			t.Errorf("category %s: rating pool not conserved, drift %v", category, pool)
		}
	}
}

func TestComputeUpdateEqualRatingsHalfK(t *testing.T) {
	// Equal ratings in liga_grupos: K = 32*2.0 = 64, expected score 0.5,
	// so each side moves exactly 32 points.
	newWinner, newLoser := ComputeUpdate(1200, 1200, models.CategoryLigaGrupos)
	if math.Abs(newWinner-1232) > 1e-9 {
		t.Errorf("winner = %v, want 1232", newWinner)
	}
	if math.Abs(newLoser-1168) > 1e-9 {
		t.Errorf("loser = %v, want 1168", newLoser)
	}
}

func TestComputeUpdateFavoriteGainsLess(t *testing.T) {
	// A 1400 favorite beating a 1200 underdog at weight 1.0 gains
	// 32 * (1 - 1/(1+10^-0.5)) ≈ 7.69.
	newWinner, _ := ComputeUpdate(1400, 1200, models.CategoryReyMesa)
	gain := newWinner - 1400
	if math.Abs(gain-7.6862178) > 1e-4 {
		t.Errorf("favorite gain = %v, want ≈7.69", gain)
	}
}

func TestComputeUpdateCategoryWeightOrdering(t *testing.T) {
	var previousGain float64
	for i, category := range models.Categories() {
		newWinner, _ := ComputeUpdate(1300, 1250, category)
		gain := newWinner - 1300
		if i > 0 && gain <= previousGain {
			t.Errorf("category %s gain %v not greater than previous %v", category, gain, previousGain)
		}
		previousGain = gain
	}
}

func TestPreviewDelta(t *testing.T) {
	delta := PreviewDelta(1, 2, 1200, 1200, models.CategoryReyMesa)

	if delta.WinnerID != 1 || delta.LoserID != 2 {
		t.Fatalf("unexpected ids: %+v", delta)
	}
	if math.Abs(delta.Exchanged-16) > 1e-9 {
		t.Errorf("exchanged = %v, want 16", delta.Exchanged)
	}
	if delta.WinnerAfter != delta.WinnerBefore+delta.Exchanged {
		t.Errorf("winner after %v inconsistent with exchanged %v", delta.WinnerAfter, delta.Exchanged)
	}
	if math.Abs((delta.LoserBefore-delta.LoserAfter)-delta.Exchanged) > 1e-9 {
		t.Errorf("loser did not lose the exchanged amount: %+v", delta)
	}
}
