// internal/models/hold.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type HoldStatus string

const (
	HoldStatusActive    HoldStatus = "active"
	HoldStatusConverted HoldStatus = "converted"
	HoldStatusReleased  HoldStatus = "released"
)

// Hold is an ephemeral exclusive claim on (cabinId, checkIn, checkOut). It
// lives in the lock store (or the in-process fallback), never the relational
// store, and is not written to the audit log on creation or release.
type Hold struct {
	ID           uuid.UUID  `json:"id"`
	CabinID      string     `json:"cabin_id"`
	CheckInDate  string     `json:"check_in_date"`
	CheckOutDate string     `json:"check_out_date"`
	CustomerID   *uuid.UUID `json:"customer_id,omitempty"`
	CustomerName string     `json:"customer_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	Status       HoldStatus `json:"status"`
	Warning      string     `json:"warning,omitempty"`
}

// Expired reports whether the hold's TTL has elapsed as of now.
func (h *Hold) Expired(now time.Time) bool {
	return now.After(h.ExpiresAt)
}
