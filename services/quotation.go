package services

import (
	"fmt"
	"math"
	"net/mail"
	"strings"
	"time"

	"github.com/netriktechworks/site-backend/errs"
	"github.com/netriktechworks/site-backend/models"
	"gorm.io/datatypes"
)

const (
	// TaxRate is the GST applied to every quotation.
	TaxRate           = 0.06
	DefaultValidDays  = 30
	QuoteNumberPrefix = "NT"
)

// QuotationInput is what an admin submits to create a quotation.
type QuotationInput struct {
	ClientName    string                 `json:"client_name"`
	ClientEmail   string                 `json:"client_email"`
	ClientPhone   string                 `json:"client_phone"`
	ClientAddress string                 `json:"client_address"`
	Items         []models.QuotationItem `json:"items"`
	Notes         *string                `json:"notes"`
	ValidDays     *int                   `json:"valid_days"`
}

// Validate checks the fields a quotation cannot be rendered without.
func (in QuotationInput) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"client_name", in.ClientName},
		{"client_email", in.ClientEmail},
		{"client_phone", in.ClientPhone},
		{"client_address", in.ClientAddress},
	} {
		if strings.TrimSpace(f.value) == "" {
			return errs.NewMissingRequiredFieldError(f.name)
		}
	}
	if err := CheckEmail("client_email", in.ClientEmail); err != nil {
		return err
	}
	if len(in.Items) == 0 {
		return errs.NewMissingRequiredFieldError("items")
	}
	for i, item := range in.Items {
		if strings.TrimSpace(item.Description) == "" {
			return errs.NewMissingRequiredFieldError(fmt.Sprintf("items[%d].description", i))
		}
		if item.Quantity < 0 {
			return errs.NewInvalidFieldError(fmt.Sprintf("items[%d].quantity", i), "must not be negative")
		}
	}
	if in.ValidDays != nil && *in.ValidDays < 0 {
		return errs.NewInvalidFieldError("valid_days", "must not be negative")
	}
	return nil
}

// CheckEmail reports address as an invalid field unless it is a single
// RFC 5322 address.
func CheckEmail(field, address string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(address)); err != nil {
		return errs.NewInvalidFieldError(field, "not a valid email address")
	}
	return nil
}

// CalculateQuotation builds an unnumbered quotation from in. Item totals are
// taken as given; subtotal is their sum and tax is subtotal times TaxRate.
// Amounts are stored unrounded; rounding to cents happens when printed.
func CalculateQuotation(in QuotationInput, now time.Time) *models.Quotation {
	var subtotal float64
	for _, item := range in.Items {
		subtotal += item.Total
	}
	tax := subtotal * TaxRate

	validDays := DefaultValidDays
	if in.ValidDays != nil {
		validDays = *in.ValidDays
	}

	items := make(datatypes.JSONSlice[models.QuotationItem], len(in.Items))
	copy(items, in.Items)

	return &models.Quotation{
		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
		ClientPhone:   in.ClientPhone,
		ClientAddress: in.ClientAddress,
		Items:         items,
		Subtotal:      subtotal,
		TaxRate:       TaxRate,
		TaxAmount:     tax,
		TotalAmount:   subtotal + tax,
		Status:        models.QuotationStatusDraft,
		CreatedAt:     now,
		ValidUntil:    now.AddDate(0, 0, validDays),
		Notes:         in.Notes,
	}
}

// QuoteNumberFor returns the numbering function for quotations created in
// year: NT-2026-0001, NT-2026-0002, ...
func QuoteNumberFor(year int) func(seq int64) string {
	return func(seq int64) string {
		return fmt.Sprintf("%s-%d-%04d", QuoteNumberPrefix, year, seq)
	}
}

// ItemTotalMismatches returns the indexes of items whose total differs
// from quantity times unit price by more than a cent.
func ItemTotalMismatches(items []models.QuotationItem) []int {
	var mismatched []int
	for i, item := range items {
		if math.Abs(float64(item.Quantity)*item.UnitPrice-item.Total) > 0.005 {
			mismatched = append(mismatched, i)
		}
	}
	return mismatched
}
