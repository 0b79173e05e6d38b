// internal/hold/manager.go
package hold

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/models"
)

const (
	redisUnavailableWarning = "lock store unavailable - hold not protected"
	convertedMarkerTTL      = 24 * time.Hour
)

// Manager creates and releases short-lived exclusive claims on
// (cabinID, checkIn, checkOut) so two customers can never hold the same
// cabin for the same date range at the same time; holds on overlapping but
// different ranges do not conflict with each other. It prefers a Redis-backed
// store for cross-process exclusivity; when Redis is unreachable it degrades
// to an in-process map and annotates every hold it issues with a warning so
// callers can surface the reduced guarantee.
type Manager struct {
	redis *RedisClient
	ttl   time.Duration

	mu       sync.Mutex
	fallback map[string]*models.Hold // keyed by dateKey(cabinID, checkIn, checkOut)
	byID     map[uuid.UUID]string    // holdID -> dateKey
}

func NewManager(redisClient *RedisClient, ttlSeconds int) *Manager {
	return &Manager{
		redis:    redisClient,
		ttl:      time.Duration(ttlSeconds) * time.Second,
		fallback: make(map[string]*models.Hold),
		byID:     make(map[uuid.UUID]string),
	}
}

func dateKey(cabinID, checkIn, checkOut string) string {
	return fmt.Sprintf("hold:%s:%s:%s", cabinID, checkIn, checkOut)
}

func byIDKey(id uuid.UUID) string {
	return fmt.Sprintf("hold:by_id:%s", id)
}

func (m *Manager) redisAvailable() bool {
	return m.redis != nil
}

// CreateHold creates a new hold for the given cabin and date range. It
// returns ErrHoldAlreadyExists if a hold is already active for that exact
// (cabin, checkIn, checkOut) tuple.
func (m *Manager) CreateHold(ctx context.Context, cabinID, checkIn, checkOut string, customerID *uuid.UUID, customerName string) (*models.Hold, error) {
	now := time.Now().UTC()
	h := &models.Hold{
		ID:           uuid.New(),
		CabinID:      cabinID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		CustomerID:   customerID,
		CustomerName: customerName,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.ttl),
		Status:       models.HoldStatusActive,
	}

	if !m.redisAvailable() {
		slog.Warn(redisUnavailableWarning, "cabin_id", cabinID)
		h.Warning = redisUnavailableWarning
		return m.createFallback(h)
	}

	key := dateKey(cabinID, checkIn, checkOut)
	created, err := m.redis.SetNXJSON(ctx, key, h, m.ttl)
	if err != nil {
		slog.Warn("lock store error, degrading to in-process hold", "error", err)
		h.Warning = redisUnavailableWarning
		return m.createFallback(h)
	}
	if !created {
		var existing models.Hold
		if ok, getErr := m.redis.GetJSON(ctx, key, &existing); getErr == nil && ok {
			return nil, &apierr.HoldConflict{ExpiresAt: existing.ExpiresAt}
		}
		return nil, &apierr.HoldConflict{}
	}

	if err := m.redis.SetEXString(ctx, byIDKey(h.ID), key, m.ttl); err != nil {
		return nil, fmt.Errorf("storing hold pointer: %w", err)
	}

	return h, nil
}

func (m *Manager) createFallback(h *models.Hold) (*models.Hold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := dateKey(h.CabinID, h.CheckInDate, h.CheckOutDate)
	if existing, ok := m.fallback[key]; ok && !existing.Expired(time.Now().UTC()) {
		return nil, &apierr.HoldConflict{ExpiresAt: existing.ExpiresAt}
	}

	m.fallback[key] = h
	m.byID[h.ID] = key
	return h, nil
}

// GetHold looks up a hold by its ID.
func (m *Manager) GetHold(ctx context.Context, holdID uuid.UUID) (*models.Hold, error) {
	if m.redisAvailable() {
		key, found, err := m.redis.GetString(ctx, byIDKey(holdID))
		if err != nil {
			return nil, fmt.Errorf("looking up hold pointer: %w", err)
		}
		if found {
			var h models.Hold
			ok, err := m.redis.GetJSON(ctx, key, &h)
			if err != nil {
				return nil, err
			}
			if ok {
				return &h, nil
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if key, ok := m.byID[holdID]; ok {
		if h, ok := m.fallback[key]; ok && !h.Expired(time.Now().UTC()) {
			return h, nil
		}
	}

	return nil, apierr.ErrHoldNotFound
}

// CheckHoldExists reports whether an active hold covers the given cabin and
// date range.
func (m *Manager) CheckHoldExists(ctx context.Context, cabinID, checkIn, checkOut string) (bool, error) {
	key := dateKey(cabinID, checkIn, checkOut)

	if m.redisAvailable() {
		exists, err := m.redis.Exists(ctx, key)
		if err != nil {
			return false, err
		}
		return exists, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.fallback[key]
	return ok && !h.Expired(time.Now().UTC()), nil
}

// ReleaseHold releases a hold by ID, returning apierr.ErrHoldNotFound if no
// such hold is active.
func (m *Manager) ReleaseHold(ctx context.Context, holdID uuid.UUID) error {
	if m.redisAvailable() {
		key, found, err := m.redis.GetString(ctx, byIDKey(holdID))
		if err != nil {
			return err
		}
		if !found {
			return apierr.ErrHoldNotFound
		}
		return m.redis.Delete(ctx, key, byIDKey(holdID))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	key, ok := m.byID[holdID]
	if !ok {
		return apierr.ErrHoldNotFound
	}
	delete(m.fallback, key)
	delete(m.byID, holdID)
	return nil
}

// ConvertHoldToBooking releases the hold and, best-effort, leaves a 24h
// diagnostic marker linking it to the booking it produced.
func (m *Manager) ConvertHoldToBooking(ctx context.Context, holdID uuid.UUID, bookingID uuid.UUID) error {
	if _, err := m.GetHold(ctx, holdID); err != nil {
		return err
	}

	if err := m.ReleaseHold(ctx, holdID); err != nil {
		return err
	}

	if m.redisAvailable() {
		marker := struct {
			HoldID      uuid.UUID `json:"hold_id"`
			BookingID   uuid.UUID `json:"booking_id"`
			ConvertedAt time.Time `json:"converted_at"`
		}{HoldID: holdID, BookingID: bookingID, ConvertedAt: time.Now().UTC()}

		if err := m.redis.SetJSON(ctx, fmt.Sprintf("hold:converted:%s", holdID), marker, convertedMarkerTTL); err != nil {
			slog.Warn("failed to write hold conversion marker", "hold_id", holdID, "error", err)
		}
	}

	return nil
}

// ListActiveHolds returns every hold currently tracked, for admin/debug use.
func (m *Manager) ListActiveHolds(ctx context.Context) ([]*models.Hold, error) {
	if m.redisAvailable() {
		keys, err := m.redis.ScanKeys(ctx, "hold:*:*:*")
		if err != nil {
			return nil, err
		}
		var holds []*models.Hold
		for _, key := range keys {
			if containsByID(key) {
				continue
			}
			var h models.Hold
			ok, err := m.redis.GetJSON(ctx, key, &h)
			if err != nil || !ok {
				continue
			}
			holds = append(holds, &h)
		}
		return holds, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	var holds []*models.Hold
	for _, h := range m.fallback {
		if !h.Expired(now) {
			holds = append(holds, h)
		}
	}
	return holds, nil
}

func containsByID(key string) bool {
	return strings.Contains(key, ":by_id:")
}
