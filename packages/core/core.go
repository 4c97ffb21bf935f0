package core

import (
	"context"
	"log"

	"core/cron"
	"core/handlers"
	"core/services"
	"core/workers"

	authMiddleware "auth/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	UserHandler          *handlers.UserHandler
	MatchHandler         *handlers.MatchHandler
	AchievementHandler   *handlers.AchievementHandler
	StatsHandler         *handlers.StatsHandler
	RatingHistoryHandler *handlers.RatingHistoryHandler

	UserService          *services.UserService
	MatchService         *services.MatchService
	StatsService         *services.StatsService
	AchievementService   *services.AchievementService
	RatingHistoryService *services.RatingHistoryService

	AchievementWorker *workers.AchievementWorker
	Scheduler         *cron.Scheduler

	db *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	userService := services.NewUserService(db)
	matchService := services.NewMatchService(db)
	statsService := services.NewStatsService(db)
	achievementService := services.NewAchievementService(db)
	ratingHistoryService := services.NewRatingHistoryService(db)

	achievementWorker := workers.NewAchievementWorker(achievementService)
	matchService.SetAchievementNotifier(achievementWorker)

	scheduler := cron.NewScheduler(db, achievementService)

	return &Module{
		UserHandler: handlers.NewUserHandler(
			userService, statsService, matchService, ratingHistoryService, achievementService),
		MatchHandler:         handlers.NewMatchHandler(matchService),
		AchievementHandler:   handlers.NewAchievementHandler(achievementService),
		StatsHandler:         handlers.NewStatsHandler(statsService),
		RatingHistoryHandler: handlers.NewRatingHistoryHandler(ratingHistoryService),

		UserService:          userService,
		MatchService:         matchService,
		StatsService:         statsService,
		AchievementService:   achievementService,
		RatingHistoryService: ratingHistoryService,

		AchievementWorker: achievementWorker,
		Scheduler:         scheduler,

		db: db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	r.GET("/rankings", m.UserHandler.GetRankings)

	users := r.Group("/users")
	{
		users.GET("/search", authMiddleware.JWTMiddleware(), m.UserHandler.SearchUsers)
		users.GET("/:id", m.UserHandler.GetUser)
		users.GET("/:id/stats", m.UserHandler.GetUserStats)
		users.GET("/:id/matches", m.UserHandler.GetUserMatches)
		users.GET("/:id/rating-history", m.UserHandler.GetUserRatingHistory)
		users.GET("/:id/achievements", m.UserHandler.GetUserAchievements)
	}

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/recent", m.MatchHandler.GetRecentMatches)
		matches.GET("/pending", authMiddleware.JWTMiddleware(), m.MatchHandler.GetPendingMatches)
		matches.GET("/history", authMiddleware.JWTMiddleware(), m.MatchHandler.GetMatchHistory)
		matches.POST("", authMiddleware.JWTMiddleware(), m.MatchHandler.SubmitMatch)
		matches.POST("/:id/confirm", authMiddleware.JWTMiddleware(), m.MatchHandler.ConfirmMatch)
		matches.POST("/:id/reject", authMiddleware.JWTMiddleware(), m.MatchHandler.RejectMatch)
		matches.PATCH("/:id/cancel", authMiddleware.JWTMiddleware(), authMiddleware.RequireAdmin(m.db), m.MatchHandler.RollbackMatch)
		matches.DELETE("/:id", authMiddleware.JWTMiddleware(), authMiddleware.RequireAdmin(m.db), m.MatchHandler.DeleteMatch)
	}

	r.POST("/elo/preview", authMiddleware.JWTMiddleware(), m.MatchHandler.PreviewElo)

	r.GET("/rating-history/recent", m.RatingHistoryHandler.GetRecentChanges)

	achievements := r.Group("/achievements")
	{
		achievements.GET("/badges", m.AchievementHandler.GetCatalog)
		achievements.GET("/leaderboard", m.AchievementHandler.GetLeaderboard)
		achievements.GET("/me", authMiddleware.JWTMiddleware(), m.AchievementHandler.GetMyAchievements)
		achievements.GET("/progress", authMiddleware.JWTMiddleware(), m.AchievementHandler.GetProgress)
		achievements.GET("/recommendations", authMiddleware.JWTMiddleware(), m.AchievementHandler.GetRecommendations)
	}

	r.GET("/stats", m.StatsHandler.GetClubStats)

	r.POST("/admin/matches/:id/rollback",
		authMiddleware.JWTMiddleware(), authMiddleware.RequireAdmin(m.db), m.MatchHandler.RollbackMatch)
}

// Start launches the achievement worker and the cron scheduler.
func (m *Module) Start(ctx context.Context) error {
	log.Println("Starting core module background services...")
	m.AchievementWorker.Start(ctx)
	return m.Scheduler.Start()
}

// Stop shuts down the scheduler; the worker stops with its context.
func (m *Module) Stop() {
	m.Scheduler.Stop()
}
