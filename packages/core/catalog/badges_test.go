package catalog

import (
	"math"
	"testing"

	"core/models"
)

func statsWith(mutate func(*models.DetailedStats)) *models.DetailedStats {
	stats := &models.DetailedStats{
		EloRating:  1200,
		ByCategory: make(map[models.Category]models.CategoryStats),
	}
	for _, c := range models.Categories() {
		stats.ByCategory[c] = models.CategoryStats{}
	}
	if mutate != nil {
		mutate(stats)
	}
	return stats
}

func TestCatalogIsWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, badge := range All() {
		if badge.ID == "" || badge.Name == "" {
			t.Errorf("badge %+v missing id or name", badge)
		}
		if seen[badge.ID] {
			t.Errorf("duplicate badge id %s", badge.ID)
		}
		seen[badge.ID] = true
		if badge.Points <= 0 {
			t.Errorf("badge %s has non-positive points", badge.ID)
		}
		if len(badge.Requirements) == 0 {
			t.Errorf("badge %s has no requirements", badge.ID)
		}
	}
}

func TestPublicHidesSecretBadges(t *testing.T) {
	for _, badge := range Public() {
		if badge.Secret {
			t.Errorf("secret badge %s leaked into public catalog", badge.ID)
		}
	}
	if len(Public()) >= len(All()) {
		t.Error("expected at least one secret badge in the catalog")
	}
}

func TestNumericRequirement(t *testing.T) {
	badge, ok := ByID("rookie")
	if !ok {
		t.Fatal("rookie badge missing")
	}

	if badge.Met(statsWith(func(s *models.DetailedStats) { s.MatchesPlayed = 4 })) {
		t.Error("rookie awarded below threshold")
	}
	if !badge.Met(statsWith(func(s *models.DetailedStats) { s.MatchesPlayed = 5 })) {
		t.Error("rookie not awarded at threshold")
	}

	progress := badge.Progress(statsWith(func(s *models.DetailedStats) { s.MatchesPlayed = 4 }))
	if math.Abs(progress-80) > 1e-9 {
		t.Errorf("rookie progress = %v, want 80", progress)
	}
}

func TestProgressCapsAtHundred(t *testing.T) {
	badge, _ := ByID("first_match")
	progress := badge.Progress(statsWith(func(s *models.DetailedStats) { s.MatchesPlayed = 40 }))
	if progress != 100 {
		t.Errorf("progress = %v, want capped at 100", progress)
	}
}

func TestBooleanRequirement(t *testing.T) {
	badge, ok := ByID("club_legend")
	if !ok {
		t.Fatal("club_legend badge missing")
	}

	if badge.Met(statsWith(func(s *models.DetailedStats) { s.Rank = 2 })) {
		t.Error("club_legend awarded to rank 2")
	}
	if !badge.Met(statsWith(func(s *models.DetailedStats) { s.Rank = 1 })) {
		t.Error("club_legend not awarded to rank 1")
	}
	if p := badge.Progress(statsWith(func(s *models.DetailedStats) { s.Rank = 3 })); p != 0 {
		t.Errorf("boolean progress = %v, want 0", p)
	}
}

func TestCompoundRequirementAllOf(t *testing.T) {
	badge, ok := ByID("untouchable")
	if !ok {
		t.Fatal("untouchable badge missing")
	}

	// 90% ratio but not enough matches.
	partial := statsWith(func(s *models.DetailedStats) {
		s.MatchesPlayed = 10
		s.WinRate = 90
	})
	if badge.Met(partial) {
		t.Error("untouchable awarded without the sample-size leg")
	}

	full := statsWith(func(s *models.DetailedStats) {
		s.MatchesPlayed = 50
		s.WinRate = 92
	})
	if !badge.Met(full) {
		t.Error("untouchable not awarded when both legs pass")
	}
}

func TestVarietyMasterNeedsEveryCategory(t *testing.T) {
	badge, ok := ByID("variety_master")
	if !ok {
		t.Fatal("variety_master badge missing")
	}

	threeOfFour := statsWith(func(s *models.DetailedStats) {
		s.ByCategory[models.CategoryReyMesa] = models.CategoryStats{Played: 5, Won: 3}
		s.ByCategory[models.CategoryTorneo] = models.CategoryStats{Played: 5, Won: 3}
		s.ByCategory[models.CategoryLigaGrupos] = models.CategoryStats{Played: 5, Won: 3}
	})
	if badge.Met(threeOfFour) {
		t.Error("variety_master awarded with a category missing")
	}

	allFour := statsWith(func(s *models.DetailedStats) {
		for _, c := range models.Categories() {
			s.ByCategory[c] = models.CategoryStats{Played: 4, Won: 3}
		}
	})
	if !badge.Met(allFour) {
		t.Error("variety_master not awarded with three wins everywhere")
	}
}

func TestLevelProgression(t *testing.T) {
	cases := []struct {
		experience int
		level      int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{899, 3},
		{900, 4},
		{2500, 6},
	}
	for _, tc := range cases {
		if got := Level(tc.experience); got != tc.level {
			t.Errorf("Level(%d) = %d, want %d", tc.experience, got, tc.level)
		}
	}

	if NextLevelExp(2) != 400 {
		t.Errorf("NextLevelExp(2) = %d, want 400", NextLevelExp(2))
	}
	if NextLevelExp(5) != 2500 {
		t.Errorf("NextLevelExp(5) = %d, want 2500", NextLevelExp(5))
	}
}

func TestTitleForLevel(t *testing.T) {
	cases := []struct {
		level int
		title string
	}{
		{1, "Novato"},
		{4, "Novato"},
		{5, "Aprendiz"},
		{12, "Jugador"},
		{27, "Maestro"},
		{60, "Dios del Billar"},
	}
	for _, tc := range cases {
		if got := TitleForLevel(tc.level); got != tc.title {
			t.Errorf("TitleForLevel(%d) = %q, want %q", tc.level, got, tc.title)
		}
	}
}
