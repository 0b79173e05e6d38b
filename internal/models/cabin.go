// internal/models/cabin.go
package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Cabin is a stable record per property.
type Cabin struct {
	ID                   uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ShortCode            string          `json:"short_code" gorm:"not null;size:10;uniqueIndex" validate:"required"`
	Name                 string          `json:"name" gorm:"not null;size:100" validate:"required,min=2,max=100"`
	Area                 string          `json:"area" gorm:"size:100"`
	MaxAdults            int             `json:"max_adults" gorm:"not null;check:max_adults > 0" validate:"required,min=1"`
	MaxKids              int             `json:"max_kids" gorm:"default:0"`
	Features             datatypes.JSON  `json:"features" gorm:"type:jsonb"`
	BasePricePerNight    decimal.Decimal `json:"base_price_per_night" gorm:"type:numeric(12,2);not null" validate:"required"`
	WeekendPricePerNight decimal.Decimal `json:"weekend_price_per_night" gorm:"type:numeric(12,2)"`
	ImageRefs            datatypes.JSON  `json:"image_refs" gorm:"type:jsonb"`
	CalendarRef          string         `json:"calendar_ref" gorm:"size:200;index"`
	Street               string         `json:"street" gorm:"size:200"`
	City                 string         `json:"city" gorm:"size:100"`
	PostalCode           string         `json:"postal_code" gorm:"size:20"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"-" gorm:"index"`

	Bookings []Booking `json:"-" gorm:"foreignKey:CabinID"`
}

func (Cabin) TableName() string {
	return "cabins"
}

func (c *Cabin) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// FeatureSet returns the canonical set-of-tags view of Features, tolerant
// of the three shapes source data arrives in: a JSON array of strings, a
// key->bool map, or a single comma-delimited string.
func (c *Cabin) FeatureSet() map[string]bool {
	return DecodeFeatureSet(c.Features)
}

// SetFeatureSet stores the canonical tag set back as a JSON array.
func (c *Cabin) SetFeatureSet(tags map[string]bool) {
	c.Features = EncodeFeatureSet(tags)
}

// HasFeature performs case-insensitive substring matching over the
// serialized tag set, per the availability resolver's feature filter.
func (c *Cabin) HasFeature(wanted string) bool {
	wanted = strings.ToLower(strings.TrimSpace(wanted))
	if wanted == "" {
		return true
	}
	for tag := range c.FeatureSet() {
		if strings.Contains(strings.ToLower(tag), wanted) {
			return true
		}
	}
	return false
}

// DecodeFeatureSet tolerates the three input shapes and always returns a
// set of lower-cased-by-caller-discretion tags (case is preserved here;
// callers doing matching lower-case themselves).
func DecodeFeatureSet(raw datatypes.JSON) map[string]bool {
	tags := map[string]bool{}
	if len(raw) == 0 {
		return tags
	}

	var asMap map[string]bool
	if err := json.Unmarshal(raw, &asMap); err == nil && len(asMap) > 0 {
		for k, v := range asMap {
			if v {
				tags[k] = true
			}
		}
		return tags
	}

	var asArray []string
	if err := json.Unmarshal(raw, &asArray); err == nil {
		for _, t := range asArray {
			t = strings.TrimSpace(t)
			if t != "" {
				tags[t] = true
			}
		}
		return tags
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		for _, t := range strings.Split(asString, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				tags[t] = true
			}
		}
	}
	return tags
}

// EncodeFeatureSet serializes a tag set to the canonical JSON-array form.
func EncodeFeatureSet(tags map[string]bool) datatypes.JSON {
	list := make([]string, 0, len(tags))
	for tag, on := range tags {
		if on {
			list = append(list, tag)
		}
	}
	b, _ := json.Marshal(list)
	return datatypes.JSON(b)
}

// DecodeImageRefs parses the catalog's fallback image list: a plain JSON
// array of URI references.
func DecodeImageRefs(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var refs []string
	if err := json.Unmarshal(raw, &refs); err != nil {
		return nil
	}
	return refs
}

// EncodeImageRefs serializes an ordered URI reference list back to the
// catalog's JSON-array form.
func EncodeImageRefs(refs []string) datatypes.JSON {
	b, _ := json.Marshal(refs)
	return datatypes.JSON(b)
}
