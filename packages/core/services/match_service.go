package services

import (
	"errors"
	"fmt"
	"time"

	authmodels "auth/models"
	"core/models"
	"core/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementNotifier receives user ids whose achievements should be
// re-evaluated. Notification is best-effort: failures must never propagate
// into the match workflow.
type AchievementNotifier interface {
	Notify(userIDs ...uint)
}

type MatchService struct {
	db       *gorm.DB
	users    *UserService
	notifier AchievementNotifier
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{
		db:    db,
		users: NewUserService(db),
	}
}

// SetAchievementNotifier wires the post-confirmation evaluation hook.
func (s *MatchService) SetAchievementNotifier(n AchievementNotifier) {
	s.notifier = n
}

// Submit creates a pending match against the named opponent. Both players'
// current ratings are captured as the *_before snapshot now, at submission
// time, so rating drift between submission and confirmation cannot alter
// this match's delta.
func (s *MatchService) Submit(submitterID uint, req models.SubmitMatchRequest) (*models.Match, error) {
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrInvalidArgument)
	}

	submitter, err := s.users.GetUserByID(submitterID)
	if err != nil {
		return nil, err
	}

	opponent, err := s.users.GetUserByUsername(req.OpponentUsername)
	if err != nil {
		return nil, err
	}

	if opponent.ID == submitter.ID {
		return nil, fmt.Errorf("cannot report a match against yourself: %w", ErrInvalidArgument)
	}
	if !opponent.IsActive {
		return nil, fmt.Errorf("opponent account is disabled: %w", ErrInvalidArgument)
	}

	winnerID := submitter.ID
	if !req.Won {
		winnerID = opponent.ID
	}

	match := models.Match{
		Player1ID:           submitter.ID,
		Player2ID:           opponent.ID,
		WinnerID:            winnerID,
		Category:            category,
		Result:              req.Result,
		Status:              models.MatchStatusPending,
		SubmittedBy:         submitter.ID,
		Player1RatingBefore: submitter.EloRating,
		Player2RatingBefore: opponent.EloRating,
	}

	if err := s.db.Create(&match).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Player1").Preload("Player2").Preload("Winner").First(&match, match.ID).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// Confirm applies a pending match: only the non-submitting participant (or
// an admin) may confirm. The status flip is a guarded update so that two
// concurrent confirmations cannot both succeed, and both user rows are
// locked in id order before the read-modify-write of their counters.
func (s *MatchService) Confirm(confirmerID uint, isAdmin bool, matchID uint) (*models.Match, *models.RatingDelta, error) {
	var match models.Match
	var delta models.RatingDelta

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&match, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("match %d: %w", matchID, ErrNotFound)
			}
			return err
		}

		if err := authorizeDecision(&match, confirmerID, isAdmin); err != nil {
			return err
		}

		if match.Status != models.MatchStatusPending {
			return fmt.Errorf("match %d is %s: %w", matchID, match.Status, ErrInvalidState)
		}

		winner, loser, err := lockParticipants(tx, &match)
		if err != nil {
			return err
		}

		winnerBefore, loserBefore := snapshotFor(&match, match.WinnerID), snapshotFor(&match, match.LoserID())
		newWinner, newLoser := utils.ComputeUpdate(winnerBefore, loserBefore, match.Category)

		now := time.Now()
		player1After, player2After := newLoser, newWinner
		if match.WinnerID == match.Player1ID {
			player1After, player2After = newWinner, newLoser
		}

		// Guarded status flip: the WHERE on status is the compare-and-set
		// that serializes racing confirmations.
		res := tx.Model(&models.Match{}).
			Where("id = ? AND status = ?", match.ID, models.MatchStatusPending).
			Updates(map[string]interface{}{
				"status":               models.MatchStatusConfirmed,
				"confirmed_at":         now,
				"player1_rating_after": player1After,
				"player2_rating_after": player2After,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("match %d already decided: %w", matchID, ErrInvalidState)
		}

		if err := tx.Model(&authmodels.User{}).Where("id = ?", winner.ID).
			Updates(map[string]interface{}{
				"elo_rating":     newWinner,
				"matches_played": gorm.Expr("matches_played + 1"),
				"matches_won":    gorm.Expr("matches_won + 1"),
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&authmodels.User{}).Where("id = ?", loser.ID).
			Updates(map[string]interface{}{
				"elo_rating":     newLoser,
				"matches_played": gorm.Expr("matches_played + 1"),
			}).Error; err != nil {
			return err
		}

		histories := []models.RatingHistory{
			{
				UserID: winner.ID, MatchID: match.ID, OpponentID: loser.ID,
				Category: match.Category, Won: true,
				EloBefore: winnerBefore, EloAfter: newWinner, EloChange: newWinner - winnerBefore,
			},
			{
				UserID: loser.ID, MatchID: match.ID, OpponentID: winner.ID,
				Category: match.Category, Won: false,
				EloBefore: loserBefore, EloAfter: newLoser, EloChange: newLoser - loserBefore,
			},
		}
		if err := tx.Create(&histories).Error; err != nil {
			return err
		}

		match.Status = models.MatchStatusConfirmed
		match.ConfirmedAt = &now
		match.Player1RatingAfter = &player1After
		match.Player2RatingAfter = &player2After

		delta = models.RatingDelta{
			WinnerID:     winner.ID,
			LoserID:      loser.ID,
			WinnerBefore: winnerBefore,
			WinnerAfter:  newWinner,
			LoserBefore:  loserBefore,
			LoserAfter:   newLoser,
			Exchanged:    newWinner - winnerBefore,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(match.Player1ID, match.Player2ID)
	}

	if err := s.db.Preload("Player1").Preload("Player2").Preload("Winner").First(&match, match.ID).Error; err != nil {
		return nil, nil, err
	}
	return &match, &delta, nil
}

// Reject declines a pending match. Same authorization as Confirm; no rating
// effect, the *_before snapshots stay as an audit trail.
func (s *MatchService) Reject(rejecterID uint, isAdmin bool, matchID uint) (*models.Match, error) {
	var match models.Match

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&match, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("match %d: %w", matchID, ErrNotFound)
			}
			return err
		}

		if err := authorizeDecision(&match, rejecterID, isAdmin); err != nil {
			return err
		}

		res := tx.Model(&models.Match{}).
			Where("id = ? AND status = ?", match.ID, models.MatchStatusPending).
			Update("status", models.MatchStatusRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("match %d is %s: %w", matchID, match.Status, ErrInvalidState)
		}

		match.Status = models.MatchStatusRejected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// Rollback reverses a confirmed match: restores both users' ratings and
// counters from the stored snapshots, removes the rating-history rows, and
// marks the match cancelled. Only valid while the snapshot is retained.
func (s *MatchService) Rollback(matchID uint) (*models.Match, error) {
	var match models.Match

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&match, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("match %d: %w", matchID, ErrNotFound)
			}
			return err
		}

		if match.Status != models.MatchStatusConfirmed {
			return fmt.Errorf("match %d is %s, only confirmed matches can be rolled back: %w",
				matchID, match.Status, ErrInvalidState)
		}
		if match.Player1RatingAfter == nil || match.Player2RatingAfter == nil {
			return fmt.Errorf("match %d has no rating snapshot: %w", matchID, ErrInvalidState)
		}

		if _, _, err := lockParticipants(tx, &match); err != nil {
			return err
		}

		res := tx.Model(&models.Match{}).
			Where("id = ? AND status = ?", match.ID, models.MatchStatusConfirmed).
			Updates(map[string]interface{}{
				"status":               models.MatchStatusCancelled,
				"player1_rating_after": nil,
				"player2_rating_after": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("match %d already rolled back: %w", matchID, ErrInvalidState)
		}

		// Restore from the stored snapshot, never by re-deriving.
		if err := tx.Model(&authmodels.User{}).Where("id = ?", match.Player1ID).
			Updates(map[string]interface{}{
				"elo_rating":     match.Player1RatingBefore,
				"matches_played": gorm.Expr("matches_played - 1"),
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&authmodels.User{}).Where("id = ?", match.Player2ID).
			Updates(map[string]interface{}{
				"elo_rating":     match.Player2RatingBefore,
				"matches_played": gorm.Expr("matches_played - 1"),
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&authmodels.User{}).Where("id = ?", match.WinnerID).
			Update("matches_won", gorm.Expr("matches_won - 1")).Error; err != nil {
			return err
		}

		if err := tx.Where("match_id = ?", match.ID).
			Delete(&models.RatingHistory{}).Error; err != nil {
			return err
		}

		match.Status = models.MatchStatusCancelled
		match.Player1RatingAfter = nil
		match.Player2RatingAfter = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(match.Player1ID, match.Player2ID)
	}
	return &match, nil
}

// Delete soft-deletes a match record. Confirmed matches must be rolled back
// first so the rating ledger stays consistent.
func (s *MatchService) Delete(matchID uint) error {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("match %d: %w", matchID, ErrNotFound)
		}
		return err
	}
	if match.Status == models.MatchStatusConfirmed {
		return fmt.Errorf("confirmed match %d must be rolled back before deletion: %w", matchID, ErrInvalidState)
	}
	return s.db.Delete(&match).Error
}

// Preview simulates both possible outcomes of a match without persisting
// anything.
func (s *MatchService) Preview(callerID uint, req models.EloPreviewRequest) (*models.EloPreviewResponse, error) {
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrInvalidArgument)
	}

	caller, err := s.users.GetUserByID(callerID)
	if err != nil {
		return nil, err
	}
	opponent, err := s.users.GetUserByUsername(req.OpponentUsername)
	if err != nil {
		return nil, err
	}
	if opponent.ID == caller.ID {
		return nil, fmt.Errorf("cannot preview a match against yourself: %w", ErrInvalidArgument)
	}

	return &models.EloPreviewResponse{
		IfWin:  utils.PreviewDelta(caller.ID, opponent.ID, caller.EloRating, opponent.EloRating, category),
		IfLose: utils.PreviewDelta(opponent.ID, caller.ID, opponent.EloRating, caller.EloRating, category),
	}, nil
}

// GetRecentMatches lists the latest confirmed matches for the feed.
func (s *MatchService) GetRecentMatches(limit int) ([]models.Match, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var matches []models.Match
	if err := s.db.
		Where("status = ?", models.MatchStatusConfirmed).
		Order("confirmed_at DESC").
		Limit(limit).
		Preload("Player1").Preload("Player2").Preload("Winner").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// GetPendingForUser lists matches awaiting the given user's decision.
func (s *MatchService) GetPendingForUser(userID uint) ([]models.Match, error) {
	var matches []models.Match
	if err := s.db.
		Where("status = ?", models.MatchStatusPending).
		Where("(player1_id = ? OR player2_id = ?) AND submitted_by != ?", userID, userID, userID).
		Order("created_at DESC").
		Preload("Player1").Preload("Player2").Preload("Winner").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// GetMatches returns a filtered, paginated match listing.
func (s *MatchService) GetMatches(filters models.MatchFilters) (*models.PaginatedMatchResponse, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := s.db.Model(&models.Match{})
	if filters.UserID != 0 {
		query = query.Where("player1_id = ? OR player2_id = ?", filters.UserID, filters.UserID)
	}
	if filters.Opponent != 0 {
		query = query.Where("player1_id = ? OR player2_id = ?", filters.Opponent, filters.Opponent)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var matches []models.Match
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("Player1").Preload("Player2").Preload("Winner").
		Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// authorizeDecision enforces that only the non-submitting participant, or
// an admin, may confirm or reject a match.
func authorizeDecision(match *models.Match, deciderID uint, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	if !match.Involves(deciderID) {
		return fmt.Errorf("user %d is not a participant of match %d: %w", deciderID, match.ID, ErrForbidden)
	}
	if match.SubmittedBy == deciderID {
		return fmt.Errorf("the submitter cannot decide their own match: %w", ErrForbidden)
	}
	return nil
}

// lockParticipants takes row locks on both users in id order so that
// overlapping confirmations serialize their counter updates the same way
// and cannot deadlock. Returns (winner, loser).
func lockParticipants(tx *gorm.DB, match *models.Match) (*authmodels.User, *authmodels.User, error) {
	firstID, secondID := match.Player1ID, match.Player2ID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	// SQLite serializes writers on its own and rejects FOR UPDATE.
	locked := tx
	if tx.Dialector.Name() != "sqlite" {
		locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var first, second authmodels.User
	if err := locked.First(&first, firstID).Error; err != nil {
		return nil, nil, err
	}
	if err := locked.First(&second, secondID).Error; err != nil {
		return nil, nil, err
	}

	winner, loser := &first, &second
	if second.ID == match.WinnerID {
		winner, loser = &second, &first
	}
	return winner, loser, nil
}

// snapshotFor reads the submission-time rating snapshot for one participant.
func snapshotFor(match *models.Match, userID uint) float64 {
	if userID == match.Player1ID {
		return match.Player1RatingBefore
	}
	return match.Player2RatingBefore
}
