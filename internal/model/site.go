package model

import (
	"time"

	"github.com/google/uuid"
)

// Site is a physical location owning canteens, questions and users.
// Joins go through the id; location is a display attribute only.
type Site struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Location       string    `db:"location" json:"location"`
	BranchLocation string    `db:"branch_location" json:"branch_location"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Canteen is a named sub-location of one site.
type Canteen struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SiteID    uuid.UUID `db:"site_id" json:"site_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
