// boatd/models/models.go
package models

import "time"

// --- Core Data Models ---

// Listing is a publicly visible boat-for-sale record.
type Listing struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	PriceNOK    int64     `json:"price_nok"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Phone       string    `json:"phone"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListingInput is the submitted payload for a new listing. The same values
// are written to both the listings table and the sell_submissions audit log.
type ListingInput struct {
	Title       string
	PriceNOK    int64
	Location    string
	Description string
	Phone       string
	ImageURL    string
}

// RepairRequest is a private service inquiry, visible only in the admin view.
type RepairRequest struct {
	ID        int64
	Name      string
	Phone     string
	Boat      string
	Issue     string
	CreatedAt time.Time
}

// SellSubmission is the immutable audit record written alongside every
// listing. It survives deletion of its listing.
type SellSubmission struct {
	ID          int64
	Title       string
	PriceNOK    int64
	Location    string
	Description string
	Phone       string
	ImageURL    string
	CreatedAt   time.Time
}

// NewsPost is a public announcement, admin-created only.
type NewsPost struct {
	ID        int64
	Title     string
	Body      string
	CreatedAt time.Time
}

// --- View Models ---

// UploadWidget holds the client-side image upload widget identifiers. The
// backend never talks to the widget provider; it only stores the URL string
// the browser hands back.
type UploadWidget struct {
	CloudName    string
	UploadPreset string
}

// Enabled reports whether the sell page should render the upload widget.
func (u UploadWidget) Enabled() bool {
	return u.CloudName != "" && u.UploadPreset != ""
}
