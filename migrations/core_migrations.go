package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_02_01_000000_create_fields_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS fields (
						id SERIAL PRIMARY KEY,
						name VARCHAR(100) UNIQUE NOT NULL,
						format VARCHAR(2) NOT NULL,
						hourly_rate DECIMAL(10,2) NOT NULL DEFAULT 0,
						active BOOLEAN NOT NULL DEFAULT true,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_fields_deleted_at ON fields(deleted_at);

					CREATE TABLE IF NOT EXISTS field_groups (
						id SERIAL PRIMARY KEY,
						name VARCHAR(100) UNIQUE NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);

					CREATE TABLE IF NOT EXISTS field_group_members (
						id SERIAL PRIMARY KEY,
						group_id INTEGER NOT NULL REFERENCES field_groups(id) ON DELETE CASCADE,
						field_id INTEGER NOT NULL REFERENCES fields(id) ON DELETE CASCADE,
						CONSTRAINT idx_group_field UNIQUE (group_id, field_id)
					);
					CREATE INDEX IF NOT EXISTS idx_field_group_members_group_id ON field_group_members(group_id);
					CREATE INDEX IF NOT EXISTS idx_field_group_members_field_id ON field_group_members(field_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS field_group_members CASCADE;
					DROP TABLE IF EXISTS field_groups CASCADE;
					DROP TABLE IF EXISTS fields CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_02_01_000001_create_reservations_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS reservations (
						id SERIAL PRIMARY KEY,
						code VARCHAR(16) UNIQUE NOT NULL,
						field_id INTEGER NOT NULL REFERENCES fields(id),
						date DATE NOT NULL,
						start_time VARCHAR(8) NOT NULL,
						end_time VARCHAR(8) NOT NULL,
						customer_name VARCHAR(100) NOT NULL,
						customer_phone VARCHAR(30),
						customer_email VARCHAR(100),
						total_price DECIMAL(10,2) NOT NULL DEFAULT 0,
						status VARCHAR(20) NOT NULL DEFAULT 'pending',
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_reservations_field_id ON reservations(field_id);
					CREATE INDEX IF NOT EXISTS idx_reservations_date ON reservations(date);
					CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations(status);
					CREATE INDEX IF NOT EXISTS idx_reservations_deleted_at ON reservations(deleted_at);

					CREATE TABLE IF NOT EXISTS closed_dates (
						id SERIAL PRIMARY KEY,
						date DATE UNIQUE NOT NULL,
						reason VARCHAR(200),
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS closed_dates CASCADE;
					DROP TABLE IF EXISTS reservations CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_02_01_000002_create_academy_sessions_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS academy_sessions (
						id SERIAL PRIMARY KEY,
						field_id INTEGER NOT NULL REFERENCES fields(id),
						weekday INTEGER NOT NULL,
						start_time VARCHAR(8) NOT NULL,
						end_time VARCHAR(8) NOT NULL,
						coach VARCHAR(100),
						active BOOLEAN NOT NULL DEFAULT true,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_academy_sessions_field_id ON academy_sessions(field_id);
					CREATE INDEX IF NOT EXISTS idx_academy_sessions_weekday ON academy_sessions(weekday);
					CREATE INDEX IF NOT EXISTS idx_academy_sessions_deleted_at ON academy_sessions(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS academy_sessions CASCADE").Error
			},
		},
		{
			Name: "2025_02_01_000003_create_tournaments_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS tournaments (
						id SERIAL PRIMARY KEY,
						name VARCHAR(255) UNIQUE NOT NULL,
						format VARCHAR(5) NOT NULL DEFAULT 'F7',
						type VARCHAR(20) NOT NULL DEFAULT 'league',
						phase VARCHAR(20) NOT NULL DEFAULT 'league',
						round_trip BOOLEAN NOT NULL DEFAULT false,
						weekday INTEGER NOT NULL DEFAULT 0,
						start_date DATE NOT NULL,
						qualifying_count INTEGER NOT NULL DEFAULT 0,
						inscription_cost DECIMAL(10,2) NOT NULL DEFAULT 0,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_tournaments_phase ON tournaments(phase);
					CREATE INDEX IF NOT EXISTS idx_tournaments_deleted_at ON tournaments(deleted_at);

					CREATE TABLE IF NOT EXISTS tournament_time_slots (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						start_time VARCHAR(8) NOT NULL,
						end_time VARCHAR(8) NOT NULL
					);
					CREATE INDEX IF NOT EXISTS idx_tournament_time_slots_tournament_id ON tournament_time_slots(tournament_id);

					CREATE TABLE IF NOT EXISTS tournament_fields (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						field_id INTEGER NOT NULL REFERENCES fields(id),
						position INTEGER NOT NULL DEFAULT 0
					);
					CREATE INDEX IF NOT EXISTS idx_tournament_fields_tournament_id ON tournament_fields(tournament_id);
					CREATE INDEX IF NOT EXISTS idx_tournament_fields_field_id ON tournament_fields(field_id);

					CREATE TABLE IF NOT EXISTS teams (
						id SERIAL PRIMARY KEY,
						name VARCHAR(150) NOT NULL,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_name_tournament ON teams(name, tournament_id);
					CREATE INDEX IF NOT EXISTS idx_teams_deleted_at ON teams(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS teams CASCADE;
					DROP TABLE IF EXISTS tournament_fields CASCADE;
					DROP TABLE IF EXISTS tournament_time_slots CASCADE;
					DROP TABLE IF EXISTS tournaments CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_02_01_000004_create_league_matches_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS matchdays (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						number INTEGER NOT NULL
					);
					CREATE INDEX IF NOT EXISTS idx_matchdays_tournament_id ON matchdays(tournament_id);

					CREATE TABLE IF NOT EXISTS league_matches (
						id SERIAL PRIMARY KEY,
						matchday_id INTEGER NOT NULL REFERENCES matchdays(id) ON DELETE CASCADE,
						home_team_id INTEGER NOT NULL REFERENCES teams(id),
						away_team_id INTEGER NOT NULL REFERENCES teams(id),
						home_goals INTEGER NULL,
						away_goals INTEGER NULL,
						field_id INTEGER NULL REFERENCES fields(id),
						date DATE NULL,
						start_time VARCHAR(8) NULL,
						end_time VARCHAR(8) NULL,
						status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_league_matches_matchday_id ON league_matches(matchday_id);
					CREATE INDEX IF NOT EXISTS idx_league_matches_field_id ON league_matches(field_id);
					CREATE INDEX IF NOT EXISTS idx_league_matches_date ON league_matches(date);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS league_matches CASCADE;
					DROP TABLE IF EXISTS matchdays CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_02_01_000005_create_brackets_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS brackets (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER UNIQUE NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						round_trip BOOLEAN NOT NULL DEFAULT false,
						away_goals BOOLEAN NOT NULL DEFAULT false,
						start_date DATE NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_brackets_deleted_at ON brackets(deleted_at);

					CREATE TABLE IF NOT EXISTS bracket_rounds (
						id SERIAL PRIMARY KEY,
						bracket_id INTEGER NOT NULL REFERENCES brackets(id) ON DELETE CASCADE,
						position INTEGER NOT NULL,
						round_key VARCHAR(10) NOT NULL,
						match_count INTEGER NOT NULL,
						round_trip BOOLEAN NOT NULL DEFAULT false,
						away_goals BOOLEAN NOT NULL DEFAULT false
					);
					CREATE INDEX IF NOT EXISTS idx_bracket_rounds_bracket_id ON bracket_rounds(bracket_id);

					CREATE TABLE IF NOT EXISTS bracket_matches (
						id SERIAL PRIMARY KEY,
						round_id INTEGER NOT NULL REFERENCES bracket_rounds(id) ON DELETE CASCADE,
						position INTEGER NOT NULL,
						leg INTEGER NOT NULL DEFAULT 1,
						home_team_id INTEGER NULL REFERENCES teams(id),
						away_team_id INTEGER NULL REFERENCES teams(id),
						home_goals INTEGER NULL,
						away_goals INTEGER NULL,
						home_pens INTEGER NULL,
						away_pens INTEGER NULL,
						field_id INTEGER NULL REFERENCES fields(id),
						date DATE NULL,
						start_time VARCHAR(8) NULL,
						end_time VARCHAR(8) NULL,
						next_match_id INTEGER NULL,
						next_slot VARCHAR(5),
						parent_match_id INTEGER NULL,
						winner_id INTEGER NULL,
						decided_by VARCHAR(12),
						status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_bracket_matches_round_id ON bracket_matches(round_id);
					CREATE INDEX IF NOT EXISTS idx_bracket_matches_parent_match_id ON bracket_matches(parent_match_id);
					CREATE INDEX IF NOT EXISTS idx_bracket_matches_field_id ON bracket_matches(field_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS bracket_matches CASCADE;
					DROP TABLE IF EXISTS bracket_rounds CASCADE;
					DROP TABLE IF EXISTS brackets CASCADE;
				`).Error
			},
		},
	}
}
