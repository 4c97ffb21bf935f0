package services

import (
	"testing"
	"time"

	"core/models"
)

func TestSnapshotZeroMatchUser(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	createUser(t, db, "sergio", withRating(1500))

	stats, err := NewStatsService(db).Snapshot(pablo.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if stats.MatchesPlayed != 0 || stats.MatchesWon != 0 || stats.WinRate != 0 {
		t.Errorf("zero-match counts wrong: %+v", stats)
	}
	if stats.CurrentStreak != 0 || stats.MaxStreak != 0 || stats.UniqueOpponents != 0 {
		t.Errorf("zero-match streaks wrong: %+v", stats)
	}
	// Rank still computed: sergio's 1500 outranks pablo's 1200.
	if stats.Rank != 2 {
		t.Errorf("rank = %d, want 2", stats.Rank)
	}
}

func TestSnapshotStreaksAndCategories(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")
	laura := createUser(t, db, "laura")

	svc := NewStatsService(db)

	// Three wins, then a loss.
	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	playConfirmed(t, db, pablo, laura, models.CategoryTorneo)
	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	playConfirmed(t, db, sergio, pablo, models.CategoryLigaGrupos)

	afterLoss, err := svc.Snapshot(pablo.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if afterLoss.CurrentStreak != 0 {
		t.Errorf("current streak after loss = %d, want 0", afterLoss.CurrentStreak)
	}
	if afterLoss.MaxStreak != 3 {
		t.Errorf("max streak after loss = %d, want 3", afterLoss.MaxStreak)
	}

	// One more win restarts the run.
	playConfirmed(t, db, pablo, laura, models.CategoryReyMesa)

	stats, err := svc.Snapshot(pablo.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if stats.MatchesPlayed != 5 || stats.MatchesWon != 4 || stats.MatchesLost != 1 {
		t.Errorf("totals wrong: %+v", stats)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("current streak = %d, want 1 (loss broke the run of 3)", stats.CurrentStreak)
	}
	if stats.MaxStreak != 3 {
		t.Errorf("max streak = %d, want 3", stats.MaxStreak)
	}
	if stats.UniqueOpponents != 2 {
		t.Errorf("unique opponents = %d, want 2", stats.UniqueOpponents)
	}

	if got := stats.ByCategory[models.CategoryReyMesa]; got.Played != 3 || got.Won != 3 {
		t.Errorf("rey_mesa = %+v, want 3/3", got)
	}
	if got := stats.ByCategory[models.CategoryTorneo]; got.Played != 1 || got.Won != 1 {
		t.Errorf("torneo = %+v, want 1/1", got)
	}
	if got := stats.ByCategory[models.CategoryLigaGrupos]; got.Played != 1 || got.Won != 0 {
		t.Errorf("liga_grupos = %+v, want 1/0", got)
	}
	if got := stats.ByCategory[models.CategoryLigaFinales]; got.Played != 0 {
		t.Errorf("liga_finales = %+v, want empty", got)
	}

	if stats.WinRate != 80 {
		t.Errorf("win rate = %v, want 80", stats.WinRate)
	}
}

func TestSnapshotPercentile(t *testing.T) {
	db := newTestDB(t)
	laura := createUser(t, db, "laura", withRating(1900))
	pablo := createUser(t, db, "pablo", withRating(1500))
	createUser(t, db, "sergio", withRating(1400))
	marta := createUser(t, db, "marta", withRating(1100))

	svc := NewStatsService(db)

	cases := []struct {
		name       string
		userID     uint
		rank       int
		percentile float64
	}{
		{"laura", laura.ID, 1, 100},
		{"pablo", pablo.ID, 2, 75},
		{"marta", marta.ID, 4, 25},
	}
	for _, c := range cases {
		stats, err := svc.Snapshot(c.userID)
		if err != nil {
			t.Fatalf("Snapshot(%s): %v", c.name, err)
		}
		if stats.TotalPlayers != 4 {
			t.Errorf("%s: total players = %d, want 4", c.name, stats.TotalPlayers)
		}
		if stats.Rank != c.rank {
			t.Errorf("%s: rank = %d, want %d", c.name, stats.Rank, c.rank)
		}
		if stats.Percentile != c.percentile {
			t.Errorf("%s: percentile = %v, want %v", c.name, stats.Percentile, c.percentile)
		}
	}
}

func TestSnapshotIgnoresPendingAndRejected(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")
	matches := NewMatchService(db)

	// One pending, one rejected, one confirmed.
	if _, err := matches.Submit(pablo.ID, models.SubmitMatchRequest{
		OpponentUsername: "sergio", Category: "rey_mesa", Won: true,
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	rejected, _ := matches.Submit(pablo.ID, models.SubmitMatchRequest{
		OpponentUsername: "sergio", Category: "rey_mesa", Won: true,
	})
	if _, err := matches.Reject(sergio.ID, false, rejected.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)

	stats, err := NewStatsService(db).Snapshot(pablo.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if stats.MatchesPlayed != 1 || stats.MatchesWon != 1 {
		t.Errorf("pending/rejected leaked into stats: %+v", stats)
	}
}

func TestSnapshotTrailingWindows(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")

	recent := playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	old := playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	_ = recent

	// Backdate the second match beyond the 30-day window.
	past := time.Now().AddDate(0, 0, -45)
	if err := db.Model(&models.Match{}).Where("id = ?", old.ID).
		Update("confirmed_at", past).Error; err != nil {
		t.Fatalf("backdating match: %v", err)
	}

	stats, err := NewStatsService(db).Snapshot(pablo.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if stats.MatchesPlayed != 2 {
		t.Fatalf("total = %d, want 2", stats.MatchesPlayed)
	}
	if stats.Last30Days.Matches != 1 || stats.Last30Days.Wins != 1 {
		t.Errorf("last 30 days = %+v, want 1/1", stats.Last30Days)
	}
	if stats.Last7Days.Matches != 1 {
		t.Errorf("last 7 days = %+v, want 1", stats.Last7Days)
	}
}

func TestRankingsExcludeAdminsAndInactive(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "admin", asAdmin(), withRating(2000))
	pablo := createUser(t, db, "pablo", withRating(1500))
	sergio := createUser(t, db, "sergio", withRating(1500))
	inactive := createUser(t, db, "laura", withRating(1800))
	db.Model(inactive).Update("is_active", false)

	rankings, err := NewUserService(db).GetRankings()
	if err != nil {
		t.Fatalf("GetRankings: %v", err)
	}

	if len(rankings) != 2 {
		t.Fatalf("rankings = %+v, want 2 entries", rankings)
	}
	// Tie on 1500 broken by user id ascending.
	if rankings[0].UserID != pablo.ID || rankings[0].Rank != 1 {
		t.Errorf("first = %+v, want pablo at rank 1", rankings[0])
	}
	if rankings[1].UserID != sergio.ID || rankings[1].Rank != 2 {
		t.Errorf("second = %+v, want sergio at rank 2", rankings[1])
	}
}

func TestClubStats(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")
	createUser(t, db, "admin", asAdmin())

	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	previous := playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	if err := db.Model(&models.Match{}).Where("id = ?", previous.ID).
		Update("confirmed_at", time.Now().AddDate(0, 0, -10)).Error; err != nil {
		t.Fatalf("backdating match: %v", err)
	}

	stats, err := NewStatsService(db).ClubStats()
	if err != nil {
		t.Fatalf("ClubStats: %v", err)
	}

	if stats.TotalPlayers != 2 {
		t.Errorf("total players = %d, want 2 (admin excluded)", stats.TotalPlayers)
	}
	if stats.TotalMatches != 2 {
		t.Errorf("total matches = %d, want 2", stats.TotalMatches)
	}
	if stats.MatchesLast7Days != 1 || stats.MatchesPrevious7Days != 1 {
		t.Errorf("windows = %d/%d, want 1/1", stats.MatchesLast7Days, stats.MatchesPrevious7Days)
	}
}

func TestSearchUsersExcludesCaller(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	createUser(t, db, "pablito")
	createUser(t, db, "sergio")

	users, err := NewUserService(db).SearchUsers("PAB", pablo.ID)
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	if len(users) != 1 || users[0].Username != "pablito" {
		t.Errorf("search = %+v, want only pablito", users)
	}
}
