package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusAccepted = "accepted"
	QuotationStatusRejected = "rejected"
)

// QuotationItem is one line of a quotation. Total is taken as supplied by
// the caller and is not recomputed from Quantity and UnitPrice.
type QuotationItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Quotation is immutable once created; the PDF is derived from it on demand.
type Quotation struct {
	ID            uuid.UUID                          `json:"id" db:"id" gorm:"type:varchar(36);primaryKey;not null"`
	QuoteNumber   string                             `json:"quote_number" db:"quote_number" gorm:"type:varchar(32);not null;uniqueIndex:idx_quotation_quote_number"`
	ClientName    string                             `json:"client_name" db:"client_name" gorm:"type:text;not null"`
	ClientEmail   string                             `json:"client_email" db:"client_email" gorm:"type:varchar(320);not null"`
	ClientPhone   string                             `json:"client_phone" db:"client_phone" gorm:"type:varchar(64);not null"`
	ClientAddress string                             `json:"client_address" db:"client_address" gorm:"type:text;not null"`
	Items         datatypes.JSONSlice[QuotationItem] `json:"items" db:"items"`
	Subtotal      float64                            `json:"subtotal" db:"subtotal" gorm:"not null"`
	TaxRate       float64                            `json:"tax_rate" db:"tax_rate" gorm:"not null"`
	TaxAmount     float64                            `json:"tax_amount" db:"tax_amount" gorm:"not null"`
	TotalAmount   float64                            `json:"total_amount" db:"total_amount" gorm:"not null"`
	Status        string                             `json:"status" db:"status" gorm:"type:varchar(32);not null;default:'draft'"`
	CreatedAt     time.Time                          `json:"created_at" db:"created_at" gorm:"not null;index:idx_quotation_created_at"`
	ValidUntil    time.Time                          `json:"valid_until" db:"valid_until" gorm:"not null"`
	Notes         *string                            `json:"notes" db:"notes" gorm:"type:text"`
}

func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Status == "" {
		q.Status = QuotationStatusDraft
	}
	if q.Items == nil {
		q.Items = datatypes.JSONSlice[QuotationItem]{}
	}
	return nil
}

// QuoteSequence is a named monotonic counter. Quote numbers are allocated
// from it with an in-place increment, never from a row count.
type QuoteSequence struct {
	Name  string `json:"name" db:"name" gorm:"type:varchar(64);primaryKey"`
	Value int64  `json:"value" db:"value" gorm:"not null;default:0"`
}
