// boatd/database/database.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/christianErichsen/Baatkompany/models"
	"github.com/christianErichsen/Baatkompany/utils"

	_ "github.com/mattn/go-sqlite3"
)

// DatabaseService is the central struct for all database operations. It is
// constructed once at startup and injected into every handler; there is no
// ambient package-level handle.
type DatabaseService struct {
	DB     *sql.DB
	logger *slog.Logger
}

// InitDB connects to the database, runs the base schema plus versioned
// migrations, and seeds two sample listings when the marketplace is empty.
func InitDB(dataSourceName string, logger *slog.Logger) (*DatabaseService, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}

	if _, err = db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to execute base schema: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	var listingCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM listings").Scan(&listingCount); err == nil && listingCount == 0 {
		now := utils.GetSQLTime()
		_, err = db.Exec(`INSERT INTO listings (title, price_nok, location, description, phone, created_at)
			VALUES (?, ?, ?, ?, ?, ?), (?, ?, ?, ?, ?, ?)`,
			"Uttern 4602 (2004)", 45000, "Oslo", "Velholdt skjærgårdsjeep. 40hk Mercury, nylig servet.", "+47 900 00 000", now,
			"Askeladden 475 Freestyle (2011)", 125000, "Bergen", "Klar for sommeren. Garmin kartplotter, kalesje.", "+47 901 23 456", now)
		if err != nil {
			return nil, fmt.Errorf("failed to seed listings: %w", err)
		}
	}

	logger.Info("Database initialized.")

	return &DatabaseService{DB: db, logger: logger}, nil
}

// runMigrations applies all un-applied migrations.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	var latestVersion uint
	err := db.QueryRow("SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1").Scan(&latestVersion)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("could not get db version: %w", err)
	}

	for _, m := range allMigrations {
		if m.Version > latestVersion {
			logger.Info("Applying migration", "version", m.Version)
			tx, err := db.Begin()
			if err != nil {
				return err
			}

			if _, err := tx.Exec(m.Query); err != nil {
				if rerr := tx.Rollback(); rerr != nil {
					logger.Error("Failed to rollback migration", "version", m.Version, "error", rerr)
				}
				return fmt.Errorf("failed to apply migration v%d: %w", m.Version, err)
			}
			if _, err := tx.Exec("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)", m.Version, utils.GetSQLTime()); err != nil {
				if rerr := tx.Rollback(); rerr != nil {
					logger.Error("Failed to rollback migration record", "version", m.Version, "error", rerr)
				}
				return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
			}

			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit migration v%d: %w", m.Version, err)
			}
		}
	}
	return nil
}

// --- Listings ---

// CreateListing inserts the listing and its sell_submissions audit row in a
// single transaction. Both rows exist or neither does.
func (ds *DatabaseService) CreateListing(ctx context.Context, in models.ListingInput) (int64, error) {
	tx, err := ds.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if rerr := tx.Rollback(); rerr != nil && rerr != sql.ErrTxDone {
			ds.logger.Error("Failed to rollback listing transaction", "error", rerr)
		}
	}()

	now := utils.GetSQLTime()
	res, err := tx.ExecContext(ctx, `INSERT INTO listings (title, price_nok, location, description, phone, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.PriceNOK, in.Location, in.Description, in.Phone, nullable(in.ImageURL), now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert listing: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get listing id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO sell_submissions (title, price_nok, location, description, phone, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.PriceNOK, in.Location, in.Description, in.Phone, nullable(in.ImageURL), now); err != nil {
		return 0, fmt.Errorf("failed to insert sell submission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit listing: %w", err)
	}
	return id, nil
}

// GetListings returns all listings, most recently created first.
func (ds *DatabaseService) GetListings(ctx context.Context) ([]models.Listing, error) {
	rows, err := ds.DB.QueryContext(ctx, `SELECT id, title, price_nok, location, description, phone, COALESCE(image_url, ''), created_at
		FROM listings ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer ds.closeRows(rows, "GetListings")

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.PriceNOK, &l.Location, &l.Description, &l.Phone, &l.ImageURL, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

// DeleteListing removes a listing by id. Deleting an id that does not exist
// is a no-op, not an error. The sell_submissions audit row is untouched.
func (ds *DatabaseService) DeleteListing(ctx context.Context, id int64) error {
	if _, err := ds.DB.ExecContext(ctx, "DELETE FROM listings WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete listing %d: %w", id, err)
	}
	return nil
}

// --- Repair Requests ---

// CreateRepairRequest stores a service inquiry and returns its id.
func (ds *DatabaseService) CreateRepairRequest(ctx context.Context, req models.RepairRequest) (int64, error) {
	res, err := ds.DB.ExecContext(ctx, `INSERT INTO repair_requests (name, phone, boat, issue, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		req.Name, req.Phone, req.Boat, req.Issue, utils.GetSQLTime())
	if err != nil {
		return 0, fmt.Errorf("failed to insert repair request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get repair request id: %w", err)
	}
	return id, nil
}

// GetRepairRequests returns all service inquiries, newest first.
func (ds *DatabaseService) GetRepairRequests(ctx context.Context) ([]models.RepairRequest, error) {
	rows, err := ds.DB.QueryContext(ctx, `SELECT id, name, phone, boat, issue, created_at
		FROM repair_requests ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query repair requests: %w", err)
	}
	defer ds.closeRows(rows, "GetRepairRequests")

	var requests []models.RepairRequest
	for rows.Next() {
		var r models.RepairRequest
		if err := rows.Scan(&r.ID, &r.Name, &r.Phone, &r.Boat, &r.Issue, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan repair request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// --- Sell Submissions ---

// GetSellSubmissions returns the audit trail, newest first.
func (ds *DatabaseService) GetSellSubmissions(ctx context.Context) ([]models.SellSubmission, error) {
	rows, err := ds.DB.QueryContext(ctx, `SELECT id, title, price_nok, location, description, phone, COALESCE(image_url, ''), created_at
		FROM sell_submissions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sell submissions: %w", err)
	}
	defer ds.closeRows(rows, "GetSellSubmissions")

	var subs []models.SellSubmission
	for rows.Next() {
		var s models.SellSubmission
		if err := rows.Scan(&s.ID, &s.Title, &s.PriceNOK, &s.Location, &s.Description, &s.Phone, &s.ImageURL, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sell submission: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

// --- News ---

// CreateNewsPost stores an announcement and returns its id.
func (ds *DatabaseService) CreateNewsPost(ctx context.Context, title, body string) (int64, error) {
	res, err := ds.DB.ExecContext(ctx, `INSERT INTO news_posts (title, body, created_at) VALUES (?, ?, ?)`,
		title, body, utils.GetSQLTime())
	if err != nil {
		return 0, fmt.Errorf("failed to insert news post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get news post id: %w", err)
	}
	return id, nil
}

// GetNewsPosts returns all announcements, newest first.
func (ds *DatabaseService) GetNewsPosts(ctx context.Context) ([]models.NewsPost, error) {
	rows, err := ds.DB.QueryContext(ctx, `SELECT id, title, body, created_at
		FROM news_posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query news posts: %w", err)
	}
	defer ds.closeRows(rows, "GetNewsPosts")

	var posts []models.NewsPost
	for rows.Next() {
		var p models.NewsPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan news post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (ds *DatabaseService) closeRows(rows *sql.Rows, op string) {
	if err := rows.Close(); err != nil {
		ds.logger.Error("Failed to close rows", "op", op, "error", err)
	}
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
