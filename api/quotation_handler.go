package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/netriktechworks/site-backend/database"
	"github.com/netriktechworks/site-backend/services"
	"github.com/netriktechworks/site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type quotationHandler struct {
	responder     Responder
	logger        zerolog.Logger
	quotationRepo *database.QuotationRepo
	files         storage.FileStore
	now           func() time.Time
}

func newQuotationHandler(quotationRepo *database.QuotationRepo, files storage.FileStore, alerts services.Notifier, now func() time.Time) quotationHandler {
	logger := log.With().Str("handlerName", "quotationHandler").Logger()

	return quotationHandler{
		responder:     NewResponder(logger, alerts),
		logger:        logger,
		quotationRepo: quotationRepo,
		files:         files,
		now:           now,
	}
}

// createQuotation prices and numbers a new quotation
// @Summary Create quotation
// @Description Item totals are used as supplied. Subtotal, 6% GST, total and the NT-{year}-{seq} quote number are computed server side.
// @Tags Quotations
// @Accept json
// @Produce json
// @Param quotation body services.QuotationInput true "Client and line items"
// @Success 201 {object} models.Quotation
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid quotation data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/quotations [post]
func (h quotationHandler) createQuotation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.QuotationInput
		if err := readJSON(w, r, h.logger, "quotation", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if mismatched := services.ItemTotalMismatches(input.Items); len(mismatched) > 0 {
			h.logger.Warn().
				Ints("items", mismatched).
				Str("client", input.ClientName).
				Msg("Item totals differ from quantity x unit price; using supplied totals")
		}

		now := h.now().UTC()
		quotation := services.CalculateQuotation(input, now)
		if err := h.quotationRepo.CreateNumbered(r.Context(), quotation, services.QuoteNumberFor(now.Year())); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "quotation", err))
			return
		}

		h.logger.Info().
			Str("quoteNumber", quotation.QuoteNumber).
			Str("admin", ctxGetAdmin(r.Context())).
			Float64("totalAmount", quotation.TotalAmount).
			Msg("Quotation created")

		h.responder.WriteCreated(w, quotation)
	}
}

// getAllQuotations lists quotations, newest first
// @Summary List quotations
// @Tags Quotations
// @Produce json
// @Success 200 {array} models.Quotation
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/quotations [get]
func (h quotationHandler) getAllQuotations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quotations, err := h.quotationRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "quotations", err))
			return
		}

		h.responder.WriteJSON(w, quotations)
	}
}

// getQuotation returns one quotation
// @Summary Get quotation
// @Tags Quotations
// @Produce json
// @Param quotationID path string true "Quotation ID" format(uuid)
// @Success 200 {object} models.Quotation
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Quotation not found"
// @Router /admin/quotations/{quotationID} [get]
func (h quotationHandler) getQuotation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "quotationID", "quotation")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		quotation, err := h.quotationRepo.FindOne(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "quotation", err))
			return
		}

		h.responder.WriteJSON(w, quotation)
	}
}

// getQuotationPDF renders the quotation, keeps a copy under invoices and
// returns it as a download
// @Summary Download quotation PDF
// @Tags Quotations
// @Produce application/pdf
// @Param quotationID path string true "Quotation ID" format(uuid)
// @Success 200 {file} file "quotation_{quote_number}.pdf"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Quotation not found"
// @Router /admin/quotations/{quotationID}/pdf [get]
func (h quotationHandler) getQuotationPDF() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "quotationID", "quotation")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		quotation, err := h.quotationRepo.FindOne(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "quotation", err))
			return
		}

		pdf, err := services.RenderQuotationPDF(quotation)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		fileName := services.QuotationFileName(quotation)
		publicPath, err := storage.SaveNamed(r.Context(), h.files, storage.CategoryInvoices, fileName, bytes.NewReader(pdf), "application/pdf")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("quoteNumber", quotation.QuoteNumber).Str("path", publicPath).Msg("Quotation PDF generated")

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdf); err != nil {
			h.logger.Error().Err(err).Msg("error writing pdf response")
		}
	}
}
