package services

import (
	"testing"

	"core/models"
)

func containsBadge(badges []models.BadgeView, id string) bool {
	for _, b := range badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

func TestEvaluateAwardsRegistrationBadge(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")

	result, err := NewAchievementService(db).Evaluate(pablo.ID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if !containsBadge(result.NewBadges, "first_steps") {
		t.Errorf("first_steps not awarded on registration: %+v", result.NewBadges)
	}
	if containsBadge(result.NewBadges, "first_match") {
		t.Error("first_match awarded to a zero-match user")
	}
	if result.PointsEarned < 10 {
		t.Errorf("points = %d, want at least first_steps' 10", result.PointsEarned)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")
	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)

	achievements := NewAchievementService(db)

	first, err := achievements.Evaluate(pablo.ID)
	if err != nil {
		t.Fatalf("first Evaluate: %v", err)
	}
	if !containsBadge(first.NewBadges, "first_victory") {
		t.Errorf("first_victory missing: %+v", first.NewBadges)
	}

	second, err := achievements.Evaluate(pablo.ID)
	if err != nil {
		t.Fatalf("second Evaluate: %v", err)
	}
	if len(second.NewBadges) != 0 || second.PointsEarned != 0 {
		t.Errorf("re-evaluation awarded again: %+v", second)
	}
	if second.Experience != first.Experience {
		t.Errorf("experience drifted on re-evaluation: %d vs %d", second.Experience, first.Experience)
	}
}

func TestEvaluateLevelsUp(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")
	// Keep pablo off rank 1 so club_legend's points stay out of the math.
	createUser(t, db, "laura", withRating(2000))

	// A win: first_steps(10) + first_match(25) + first_victory(50) = 85 exp,
	// still level 1.
	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	achievements := NewAchievementService(db)

	result, err := achievements.Evaluate(pablo.ID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if result.Level != 1 || result.LeveledUp {
		t.Errorf("unexpected level-up at %d exp: %+v", result.Experience, result)
	}

	// Two more wins push the streak to 3: getting_started(100) and
	// hot_streak(200) land, crossing level 1 -> 2.
	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)

	result, err = achievements.Evaluate(pablo.ID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !containsBadge(result.NewBadges, "hot_streak") {
		t.Errorf("hot_streak missing after 3 straight wins: %+v", result.NewBadges)
	}
	if !result.LeveledUp || result.Level < 2 {
		t.Errorf("expected level-up, got %+v", result)
	}
}

func TestSecretBadgesHiddenUntilEarned(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")
	achievements := NewAchievementService(db)

	progress, err := achievements.Progress(pablo.ID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	for _, p := range progress {
		if p.ID == "lucky_streak" {
			t.Error("secret badge listed in progress before being earned")
		}
	}

	// Seven straight wins earn the secret lucky_streak.
	for i := 0; i < 7; i++ {
		playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	}
	result, err := achievements.Evaluate(pablo.ID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !containsBadge(result.NewBadges, "lucky_streak") {
		t.Errorf("secret badge not awarded at 7-win streak: %+v", result.NewBadges)
	}

	summary, err := achievements.Summary(pablo.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	found := false
	for _, b := range summary.Badges {
		if b.ID == "lucky_streak" {
			found = true
		}
	}
	if !found {
		t.Error("earned secret badge missing from summary")
	}
}

func TestRecommendationsWindow(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")
	createUser(t, db, "laura", withRating(2000))
	achievements := NewAchievementService(db)

	// Three wins: rookie (5 played) sits at 60%, dedicated (50) at 6%.
	for i := 0; i < 3; i++ {
		playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	}
	if _, err := achievements.Evaluate(pablo.ID); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	recommendations, err := achievements.Recommendations(pablo.ID)
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}

	if len(recommendations) == 0 || len(recommendations) > 5 {
		t.Fatalf("recommendations = %d entries, want 1..5", len(recommendations))
	}
	for i, rec := range recommendations {
		if rec.Progress < 50 || rec.Progress >= 100 {
			t.Errorf("recommendation %s at %v%% outside [50,100)", rec.ID, rec.Progress)
		}
		if i > 0 && rec.Progress > recommendations[i-1].Progress {
			t.Error("recommendations not sorted by completion descending")
		}
	}
	if !containsProgress(recommendations, "rookie") {
		t.Errorf("rookie (60%%) missing from recommendations: %+v", recommendations)
	}
	if containsProgress(recommendations, "dedicated") {
		t.Error("dedicated (6%) should not be recommended")
	}
}

func containsProgress(list []models.BadgeProgress, id string) bool {
	for _, p := range list {
		if p.ID == id {
			return true
		}
	}
	return false
}

func TestSummaryLazyRecord(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")

	summary, err := NewAchievementService(db).Summary(pablo.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Level != 1 || summary.Experience != 0 {
		t.Errorf("fresh summary = %+v, want level 1 / 0 exp", summary)
	}
	if summary.Title != "Novato" {
		t.Errorf("title = %q, want Novato", summary.Title)
	}
	if summary.NextLevelExp != 100 {
		t.Errorf("next level exp = %d, want 100", summary.NextLevelExp)
	}
}

func TestLeaderboardOrdersByPoints(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")
	createUser(t, db, "admin", asAdmin())
	achievements := NewAchievementService(db)

	// Pablo wins twice: more badges and points than sergio.
	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	if _, err := achievements.Evaluate(pablo.ID); err != nil {
		t.Fatalf("Evaluate pablo: %v", err)
	}
	if _, err := achievements.Evaluate(sergio.ID); err != nil {
		t.Fatalf("Evaluate sergio: %v", err)
	}

	entries, err := achievements.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("leaderboard = %+v, want 2 entries (admin excluded)", entries)
	}
	if entries[0].UserID != pablo.ID || entries[0].Rank != 1 {
		t.Errorf("first = %+v, want pablo", entries[0])
	}
	if entries[0].Points <= entries[1].Points {
		t.Errorf("ordering wrong: %d vs %d", entries[0].Points, entries[1].Points)
	}
}
