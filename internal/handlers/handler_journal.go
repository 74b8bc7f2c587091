package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
	"github.com/tirtatour/travel_billing_app/internal/middleware"
)

// journalHandler handles HTTP requests for the posting engine and the
// posted-entries read side.
type journalHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newJournalHandler(ledgerService portssvc.LedgerSvcFacade) *journalHandler {
	return &journalHandler{ledgerService: ledgerService}
}

// registerJournalRoutes registers ledger routes on the group.
func registerJournalRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newJournalHandler(ledgerService)
	journals := rg.Group("/journals")
	{
		journals.POST("", h.postEvent)
		journals.GET("", h.listEntries)
		journals.GET("/:entryID", h.getEntry)
		journals.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// postEvent godoc
// @Summary Post a business event to the ledger
// @Description Turns a business event into a balanced journal entry via the account mapping table, or validates explicit lines when given. Reposting the same source returns the original entry.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   event body dto.PostEventRequest true "Event to post"
// @Success 201 {object} dto.JournalEntryResponse "The posted entry"
// @Success 200 {object} dto.JournalEntryResponse "The previously posted entry for this source"
// @Failure 400 {object} map[string]string "Invalid request format or unbalanced lines"
// @Failure 409 {object} map[string]string "Entry date falls in a locked period"
// @Router /journals [post]
func (h *journalHandler) postEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for PostEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.PostEvent(c.Request.Context(), req, actorID)
	if err != nil {
		// A duplicate is success-with-warning: the original entry comes back.
		if errors.Is(err, apperrors.ErrDuplicatePosting) {
			logger.Warn("Duplicate posting request", slog.String("entry_number", entry.EntryNumber))
			c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
			return
		}
		respondServiceError(c, err, "Failed to post journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Posts a correcting entry with every line's debit and credit swapped and marks the original REVERSED. Reversing an already-reversed entry returns the existing reversal.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reason for the reversal"
// @Success 201 {object} dto.JournalEntryResponse "The reversing entry"
// @Success 200 {object} dto.JournalEntryResponse "The previously posted reversal"
// @Failure 400 {object} map[string]string "Entry is not POSTED or is itself a reversal"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /journals/{entryID}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.ReverseEntry(c.Request.Context(), c.Param("entryID"), req.Reason, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicatePosting) {
			logger.Warn("Entry already reversed", slog.String("reversal_number", entry.EntryNumber))
			c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
			return
		}
		respondServiceError(c, err, "Failed to reverse journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a posted journal entry with its lines
// @Tags journals
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse "The entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /journals/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a paginated list of journal entries, optionally filtered by accounting period
// @Tags journals
// @Produce  json
// @Param   periodID query string false "Filter by accounting period"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse "A page of entries"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /journals [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}
