package database

import (
	"fmt"
	"log"

	"funlife/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

func Connect(cfg *config.Config) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Connected to database successfully")
	return db, nil
}

// schema bootstraps the five tables. The UNIQUE constraints on
// likes(user_id, video_id) and follows(follower_id, followed_id) are what
// make Like/Follow an atomic insert-if-absent instead of a racy
// check-then-insert. Username uniqueness is enforced on LOWER(username)
// so "Alice" cannot coexist with "alice" and login lookups stay
// unambiguous.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id              BIGSERIAL PRIMARY KEY,
	username        TEXT NOT NULL,
	password_hashed TEXT NOT NULL,
	display_name    TEXT,
	bio             TEXT,
	profile_picture TEXT,
	website         TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_lower ON users (LOWER(username));

CREATE TABLE IF NOT EXISTS videos (
	id            BIGSERIAL PRIMARY KEY,
	user_id       BIGINT NOT NULL REFERENCES users(id),
	video_url     TEXT NOT NULL,
	thumbnail_url TEXT,
	caption       TEXT,
	tags          TEXT[],
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	views         INTEGER NOT NULL DEFAULT 0,
	duration      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_videos_user_id ON videos(user_id);
CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos(created_at DESC, id DESC);

CREATE TABLE IF NOT EXISTS likes (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users(id),
	video_id   BIGINT NOT NULL REFERENCES videos(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, video_id)
);
CREATE INDEX IF NOT EXISTS idx_likes_video_id ON likes(video_id);

CREATE TABLE IF NOT EXISTS comments (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users(id),
	video_id   BIGINT NOT NULL REFERENCES videos(id),
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_comments_video_id ON comments(video_id);

CREATE TABLE IF NOT EXISTS follows (
	id          BIGSERIAL PRIMARY KEY,
	follower_id BIGINT NOT NULL REFERENCES users(id),
	followed_id BIGINT NOT NULL REFERENCES users(id),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (follower_id, followed_id)
);
CREATE INDEX IF NOT EXISTS idx_follows_followed_id ON follows(followed_id);
`

// Migrate creates the tables if they do not exist yet.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
