package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		open_id VARCHAR(320) NOT NULL UNIQUE,
		name TEXT,
		email VARCHAR(320),
		login_method VARCHAR(64),
		role VARCHAR(16) NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		last_signed_in TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS videos (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		video_url TEXT NOT NULL,
		thumbnail_url TEXT,
		file_key VARCHAR(512) NOT NULL,
		duration INTEGER,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS missions (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		client_name VARCHAR(255),
		description TEXT,
		cover_image_url TEXT,
		is_published BOOLEAN NOT NULL DEFAULT FALSE,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS workflows (
		id BIGSERIAL PRIMARY KEY,
		mission_id BIGINT REFERENCES missions(id) ON DELETE SET NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		tools_used TEXT,
		demo_url TEXT,
		code_snippet TEXT,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS experience_posts (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		summary TEXT,
		content TEXT,
		type VARCHAR(16) NOT NULL CHECK (type IN ('notebook', 'video', 'podcast', 'article')),
		media_url TEXT,
		tags TEXT[] NOT NULL DEFAULT '{}',
		is_published BOOLEAN NOT NULL DEFAULT FALSE,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS services (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		features TEXT NOT NULL DEFAULT '[]',
		price_description VARCHAR(255),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	// Listing order is display_order DESC, created_at DESC everywhere.
	`CREATE INDEX IF NOT EXISTS idx_videos_listing ON videos(display_order DESC, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_missions_listing ON missions(display_order DESC, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_workflows_mission_id ON workflows(mission_id)`,
	`CREATE INDEX IF NOT EXISTS idx_experience_posts_listing ON experience_posts(display_order DESC, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_services_listing ON services(display_order DESC, created_at DESC)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
