package services

import (
	"testing"

	"core/models"
)

func TestRecentListsNewestMovementsWithPlayers(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")
	laura := createUser(t, db, "laura")

	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	playConfirmed(t, db, laura, pablo, models.CategoryTorneo)

	recent, err := NewRatingHistoryService(db).Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}

	// Two confirmed matches leave one row per participant.
	if len(recent) != 4 {
		t.Fatalf("recent = %d rows, want 4", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].ID > recent[i-1].ID {
			t.Errorf("rows not newest first: %d before %d", recent[i-1].ID, recent[i].ID)
		}
	}
	for _, row := range recent {
		if row.User.Username == "" || row.Opponent.Username == "" {
			t.Errorf("row %d missing preloaded players: %+v", row.ID, row)
		}
	}
	// The latest match (laura beats pablo, torneo) comes first.
	if recent[0].Category != models.CategoryTorneo {
		t.Errorf("first row category = %s, want torneo", recent[0].Category)
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")

	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	playConfirmed(t, db, sergio, pablo, models.CategoryReyMesa)

	recent, err := NewRatingHistoryService(db).Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("recent = %d rows, want 3", len(recent))
	}
}

func TestRecentExcludesRolledBackMatches(t *testing.T) {
	db := newTestDB(t)
	pablo := createUser(t, db, "pablo")
	sergio := createUser(t, db, "sergio")
	matches := NewMatchService(db)

	playConfirmed(t, db, pablo, sergio, models.CategoryReyMesa)
	reverted := playConfirmed(t, db, sergio, pablo, models.CategoryReyMesa)
	if _, err := matches.Rollback(reverted.ID); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	recent, err := NewRatingHistoryService(db).Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent = %d rows, want 2 after rollback", len(recent))
	}
	for _, row := range recent {
		if row.MatchID == reverted.ID {
			t.Errorf("rolled-back match %d still listed", reverted.ID)
		}
	}
}
