// internal/repositories/interfaces/interfaces.go
package interfaces

import (
	"context"

	"github.com/google/uuid"

	"cabinreserve/internal/models"
)

// CabinRepositoryInterface resolves and lists cabins.
type CabinRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Cabin, error)
	GetByShortCode(ctx context.Context, shortCode string) (*models.Cabin, error)
	GetByName(ctx context.Context, name string) (*models.Cabin, error)
	GetByCalendarRefSuffix(ctx context.Context, suffix string) (*models.Cabin, error)
	List(ctx context.Context) ([]*models.Cabin, error)
}

// CustomerRepositoryInterface dedups customers on email or phone.
type CustomerRepositoryInterface interface {
	UpsertByEmailOrPhone(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

// BookingRepositoryInterface persists bookings.
type BookingRepositoryInterface interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error
	ListActiveForCabin(ctx context.Context, cabinID uuid.UUID) ([]*models.Booking, error)
	// ListAll returns every booking, most recent first, optionally narrowed
	// to a single status when statusFilter is non-empty.
	ListAll(ctx context.Context, statusFilter string) ([]*models.Booking, error)
}

// TransactionRepositoryInterface persists payment transactions.
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	GetByPaymentRef(ctx context.Context, paymentRef string) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TransactionStatus) error
}

// AuditRepositoryInterface appends audit trail entries.
type AuditRepositoryInterface interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
	// List returns audit entries newest-first, optionally narrowed by table
	// name and/or record id. Either filter may be empty.
	List(ctx context.Context, tableName, recordID string, limit int) ([]*models.AuditEntry, error)
}

// ConversationRepositoryInterface persists agent conversations and messages.
type ConversationRepositoryInterface interface {
	GetOrCreate(ctx context.Context, conversationID *uuid.UUID, customerID *uuid.UUID, channel models.ConversationChannel) (*models.Conversation, error)
	AppendMessage(ctx context.Context, message *models.Message) error
	RecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error)
}

// FAQRepositoryInterface serves approved FAQs and records suggestions.
type FAQRepositoryInterface interface {
	ListApproved(ctx context.Context) ([]*models.FAQ, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	SuggestAnswer(ctx context.Context, faq *models.FAQ) error
	ListPending(ctx context.Context) ([]*models.FAQ, error)
	ListAll(ctx context.Context) ([]*models.FAQ, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FAQ, error)
	Approve(ctx context.Context, id uuid.UUID, approved bool, question, answer string) (*models.FAQ, error)
	Update(ctx context.Context, id uuid.UUID, question, answer string) (*models.FAQ, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BusinessFactRepositoryInterface serves operator-maintained facts.
type BusinessFactRepositoryInterface interface {
	GetByKey(ctx context.Context, key string) (*models.BusinessFact, error)
	ListActive(ctx context.Context) ([]*models.BusinessFact, error)
	// ListAll returns every fact regardless of IsActive, optionally
	// narrowed to a category.
	ListAll(ctx context.Context, category string) ([]*models.BusinessFact, error)
	// Upsert creates or updates the fact identified by FactKey.
	Upsert(ctx context.Context, fact *models.BusinessFact) (*models.BusinessFact, error)
	Deactivate(ctx context.Context, key string) error
}
