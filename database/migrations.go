// boatd/database/migrations.go
package database

// migration represents a single database schema migration.
type migration struct {
	Version uint
	Query   string
}

// allMigrations holds all schema changes in order.
var allMigrations = []migration{
	{
		Version: 1,
		Query: `
-- The image upload widget arrived after launch; older databases predate it.
ALTER TABLE listings ADD COLUMN image_url TEXT;
ALTER TABLE sell_submissions ADD COLUMN image_url TEXT;
		`,
	},
}
