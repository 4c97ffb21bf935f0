package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_03_000000_create_matches_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id SERIAL PRIMARY KEY,
						player1_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						player2_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						winner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						category VARCHAR(20) NOT NULL,
						result VARCHAR(100) DEFAULT '',
						status VARCHAR(20) DEFAULT 'pending',
						submitted_by INTEGER NOT NULL,
						player1_rating_before DOUBLE PRECISION DEFAULT 0,
						player2_rating_before DOUBLE PRECISION DEFAULT 0,
						player1_rating_after DOUBLE PRECISION NULL,
						player2_rating_after DOUBLE PRECISION NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						confirmed_at TIMESTAMP NULL,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_matches_player1_id ON matches(player1_id);
					CREATE INDEX IF NOT EXISTS idx_matches_player2_id ON matches(player2_id);
					CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status);
					CREATE INDEX IF NOT EXISTS idx_matches_confirmed_at ON matches(confirmed_at);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS matches CASCADE").Error
			},
		},
		{
			Name: "2025_01_04_000000_create_rating_history_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS rating_history (
						id SERIAL PRIMARY KEY,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						opponent_id INTEGER NOT NULL,
						category VARCHAR(20) NOT NULL,
						elo_before DOUBLE PRECISION NOT NULL,
						elo_after DOUBLE PRECISION NOT NULL,
						elo_change DOUBLE PRECISION NOT NULL,
						won BOOLEAN NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_rating_history_user_id ON rating_history(user_id);
					CREATE INDEX IF NOT EXISTS idx_rating_history_match_id ON rating_history(match_id);
					CREATE INDEX IF NOT EXISTS idx_rating_history_deleted_at ON rating_history(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS rating_history CASCADE").Error
			},
		},
		{
			Name: "2025_01_05_000000_create_user_badges_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS user_badges (
						id SERIAL PRIMARY KEY,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						badge_id VARCHAR(64) NOT NULL,
						earned_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_user_badge ON user_badges(user_id, badge_id);
					CREATE INDEX IF NOT EXISTS idx_user_badges_deleted_at ON user_badges(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS user_badges CASCADE").Error
			},
		},
		{
			Name: "2025_01_06_000000_create_user_achievements_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS user_achievements (
						id SERIAL PRIMARY KEY,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						experience INTEGER DEFAULT 0,
						level INTEGER DEFAULT 1,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_user_achievements_user_id ON user_achievements(user_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS user_achievements CASCADE").Error
			},
		},
	}
}
