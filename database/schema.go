package database

const schema = `
CREATE TABLE IF NOT EXISTS listings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	price_nok INTEGER NOT NULL,
	location TEXT NOT NULL,
	description TEXT NOT NULL,
	phone TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS repair_requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	phone TEXT NOT NULL,
	boat TEXT NOT NULL,
	issue TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
-- Append-only audit trail: one row per published listing, never mutated,
-- never deleted, even when the listing itself is removed.
CREATE TABLE IF NOT EXISTS sell_submissions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	price_nok INTEGER NOT NULL,
	location TEXT NOT NULL,
	description TEXT NOT NULL,
	phone TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS news_posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME NOT NULL
);

-- --- INDEXES ---
CREATE INDEX IF NOT EXISTS idx_listings_created ON listings(created_at DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_repair_requests_created ON repair_requests(created_at DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_news_posts_created ON news_posts(created_at DESC, id DESC);
`
