// internal/models/booking.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusHold      BookingStatus = "hold"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a persisted reservation. CheckOutDate is exclusive: it must be
// at least one day after CheckInDate.
type Booking struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CabinID           uuid.UUID       `json:"cabin_id" gorm:"type:uuid;not null;index" validate:"required"`
	CustomerID        *uuid.UUID      `json:"customer_id" gorm:"type:uuid;index"`
	CheckInDate       time.Time       `json:"check_in_date" gorm:"type:date;not null;index"`
	CheckOutDate      time.Time       `json:"check_out_date" gorm:"type:date;not null;index"`
	Adults            int             `json:"adults" gorm:"default:1"`
	Kids              int             `json:"kids" gorm:"default:0"`
	TotalPrice        decimal.Decimal `json:"total_price" gorm:"type:numeric(12,2)"`
	Status            BookingStatus   `json:"status" gorm:"type:varchar(20);not null;default:'confirmed';index"`
	CalendarEventRef  string          `json:"calendar_event_ref" gorm:"size:200"`
	CalendarEventLink string          `json:"calendar_event_link" gorm:"size:500"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `json:"-" gorm:"index"`

	Cabin        Cabin         `json:"cabin,omitempty" gorm:"foreignKey:CabinID"`
	Customer     *Customer     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Transactions []Transaction `json:"transactions,omitempty" gorm:"foreignKey:BookingID"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Nights returns the number of nights in the stay.
func (b *Booking) Nights() int {
	d := b.CheckOutDate.Sub(b.CheckInDate)
	return int(d.Hours() / 24)
}

// OverlapsRange reports whether [checkIn,checkOut) overlaps this booking's
// range using the standard half-open interval predicate.
func (b *Booking) OverlapsRange(checkIn, checkOut time.Time) bool {
	return b.CheckInDate.Before(checkOut) && checkIn.Before(b.CheckOutDate)
}

// IsActive reports whether the booking still occupies its dates (not
// cancelled).
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}
