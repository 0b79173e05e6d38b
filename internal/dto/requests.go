// internal/dto/requests.go
package dto

// AvailabilityRequest narrows the cabin search. Dates accept any of the
// formats the date parser understands.
type AvailabilityRequest struct {
	CheckIn  string   `json:"check_in" binding:"required"`
	CheckOut string   `json:"check_out" binding:"required"`
	Adults   int      `json:"adults" binding:"omitempty,min=0"`
	Kids     int      `json:"kids" binding:"omitempty,min=0"`
	Area     string   `json:"area" binding:"omitempty"`
	Features []string `json:"features" binding:"omitempty"`
}

// QuoteRequest asks for a priced breakdown without creating a hold.
type QuoteRequest struct {
	Cabin          string       `json:"cabin" binding:"required"`
	CheckIn        string       `json:"check_in" binding:"required"`
	CheckOut       string       `json:"check_out" binding:"required"`
	Addons         []AddonInput `json:"addons" binding:"omitempty,dive"`
	ApplyDiscounts *bool        `json:"apply_discounts" binding:"omitempty"`
}

// AddonInput is one optional extra priced alongside the stay.
type AddonInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required,gte=0"`
}

// HoldRequest places a short-lived hold on a cabin/date range.
type HoldRequest struct {
	Cabin        string `json:"cabin" binding:"required"`
	CheckIn      string `json:"check_in" binding:"required"`
	CheckOut     string `json:"check_out" binding:"required"`
	CustomerName string `json:"customer_name" binding:"omitempty,max=200"`
}

// BookRequest confirms a stay, either against an existing hold or directly.
type BookRequest struct {
	HoldID         string       `json:"hold_id" binding:"omitempty,uuid"`
	Cabin          string       `json:"cabin" binding:"required"`
	CheckIn        string       `json:"check_in" binding:"required"`
	CheckOut       string       `json:"check_out" binding:"required"`
	Adults         int          `json:"adults" binding:"omitempty,min=0"`
	Kids           int          `json:"kids" binding:"omitempty,min=0"`
	CustomerName   string       `json:"customer_name" binding:"required,max=200"`
	CustomerEmail  string       `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone  string       `json:"customer_phone" binding:"omitempty,max=50"`
	Notes          string       `json:"notes" binding:"omitempty"`
	Addons         []AddonInput `json:"addons" binding:"omitempty,dive"`
	ApplyDiscounts *bool        `json:"apply_discounts" binding:"omitempty"`
	TotalOverride  *float64     `json:"total_override" binding:"omitempty"`
	CreatePayment  bool         `json:"create_payment" binding:"omitempty"`
}

// AgentChatRequest carries one inbound conversational turn.
type AgentChatRequest struct {
	ConversationID string `json:"conversation_id" binding:"omitempty,uuid"`
	CustomerID     string `json:"customer_id" binding:"omitempty,uuid"`
	Channel        string `json:"channel" binding:"omitempty"`
	Message        string `json:"message" binding:"required,min=1"`
}

// FAQApproveRequest approves a pending suggestion, optionally editing it
// before it goes live.
type FAQApproveRequest struct {
	ID       string `json:"id" binding:"required,uuid"`
	Approved bool   `json:"approved"`
	Question string `json:"question" binding:"omitempty"`
	Answer   string `json:"answer" binding:"omitempty"`
}

// FAQUpdateRequest edits an existing FAQ's text in place.
type FAQUpdateRequest struct {
	Question string `json:"question" binding:"omitempty"`
	Answer   string `json:"answer" binding:"omitempty"`
}

// BusinessFactUpsertRequest creates or replaces an operator-maintained fact.
type BusinessFactUpsertRequest struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value" binding:"required"`
	Category    string `json:"category" binding:"omitempty"`
	Description string `json:"description" binding:"omitempty"`
}
