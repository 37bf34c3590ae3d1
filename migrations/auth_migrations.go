package migrations

import "gorm.io/gorm"

func GetAuthMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_01_000000_create_users_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS users (
						id SERIAL PRIMARY KEY,
						email VARCHAR(255) UNIQUE NOT NULL,
						username VARCHAR(255) UNIQUE,
						password VARCHAR(255) NOT NULL,
						enabled BOOLEAN DEFAULT true,
						roles JSONB DEFAULT '["user"]'::jsonb,
						last_login TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
					CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON users(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_users_roles ON users USING GIN (roles);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS users CASCADE").Error
			},
		},
		{
			Name: "2025_01_01_000001_create_refresh_tokens_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS refresh_tokens (
						id SERIAL PRIMARY KEY,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						token VARCHAR(255) UNIQUE NOT NULL,
						expires_at TIMESTAMP NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id);
					CREATE INDEX IF NOT EXISTS idx_refresh_tokens_token ON refresh_tokens(token);
					CREATE INDEX IF NOT EXISTS idx_refresh_tokens_expires_at ON refresh_tokens(expires_at);
					CREATE INDEX IF NOT EXISTS idx_refresh_tokens_deleted_at ON refresh_tokens(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS refresh_tokens CASCADE").Error
			},
		},
	}
}
