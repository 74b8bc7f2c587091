package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
	"github.com/tirtatour/travel_billing_app/internal/middleware"
)

// invoiceHandler handles HTTP requests for the invoice lifecycle.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(invoiceService portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: invoiceService}
}

// registerInvoiceRoutes registers invoice lifecycle routes on the group.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.POST("/:invoiceID/issue", h.issueInvoice)
		invoices.POST("/:invoiceID/cancel", h.cancelInvoice)
		invoices.POST("/:invoiceID/unblock", h.unblockInvoice)
		invoices.POST("/:invoiceID/order-updated", h.markOrderUpdated)
		invoices.POST("/:invoiceID/confirm-order-update", h.confirmOrderUpdate)
		invoices.POST("/:invoiceID/start-processing", h.startProcessing)
		invoices.POST("/:invoiceID/complete", h.completeInvoice)
	}
}

// createInvoice godoc
// @Summary Create a new invoice
// @Description Opens a draft invoice for an order with the down-payment split computed from the total
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse "The created invoice"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Invoice already exists for order"
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves an invoice by its ID
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "The invoice"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("invoiceID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves a paginated list of invoices, optionally filtered by status
// @Tags invoices
// @Produce  json
// @Param   status query string false "Filter by invoice status"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListInvoicesResponse "A page of invoices"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// issueInvoice godoc
// @Summary Issue a draft invoice
// @Description Moves a draft invoice to TENTATIVE and stamps its payment deadlines
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "The issued invoice"
// @Failure 409 {object} map[string]string "Invoice cannot be issued from its current status"
// @Router /invoices/{invoiceID}/issue [post]
func (h *invoiceHandler) issueInvoice(c *gin.Context) {
	h.applyLifecycleEvent(c, h.invoiceService.IssueInvoice, "Failed to issue invoice")
}

// cancelInvoice godoc
// @Summary Cancel an overdue invoice
// @Description Closes an overdue invoice after operator review; the record is kept, never deleted
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "The canceled invoice"
// @Failure 409 {object} map[string]string "Invoice cannot be canceled from its current status"
// @Router /invoices/{invoiceID}/cancel [post]
func (h *invoiceHandler) cancelInvoice(c *gin.Context) {
	h.applyLifecycleEvent(c, h.invoiceService.CancelInvoice, "Failed to cancel invoice")
}

// unblockInvoice godoc
// @Summary Unblock an overdue invoice
// @Description Lifts the overdue block after manual review and restarts the auto-cancel clock
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "The unblocked invoice"
// @Failure 409 {object} map[string]string "Invoice is not blocked"
// @Router /invoices/{invoiceID}/unblock [post]
func (h *invoiceHandler) unblockInvoice(c *gin.Context) {
	h.applyLifecycleEvent(c, h.invoiceService.UnblockInvoice, "Failed to unblock invoice")
}

// markOrderUpdated godoc
// @Summary Flag an invoice for order changes
// @Description Moves a non-terminal invoice to ORDER_UPDATED, holding payments until amounts are re-confirmed
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "The flagged invoice"
// @Failure 409 {object} map[string]string "Invoice is in a terminal status"
// @Router /invoices/{invoiceID}/order-updated [post]
func (h *invoiceHandler) markOrderUpdated(c *gin.Context) {
	h.applyLifecycleEvent(c, h.invoiceService.MarkOrderUpdated, "Failed to flag invoice")
}

// confirmOrderUpdate godoc
// @Summary Re-issue an invoice after an order change
// @Description Confirms the updated amounts and re-issues the invoice with fresh deadlines
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   update body dto.ConfirmOrderUpdateRequest true "Re-confirmed amounts"
// @Success 200 {object} dto.InvoiceResponse "The re-issued invoice"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Invoice is not awaiting re-confirmation"
// @Router /invoices/{invoiceID}/confirm-order-update [post]
func (h *invoiceHandler) confirmOrderUpdate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConfirmOrderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ConfirmOrderUpdate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.ConfirmOrderUpdate(c.Request.Context(), c.Param("invoiceID"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to confirm order update")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// startProcessing godoc
// @Summary Start fulfilment of a settled invoice
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "The invoice in processing"
// @Failure 409 {object} map[string]string "Invoice is not fully paid"
// @Router /invoices/{invoiceID}/start-processing [post]
func (h *invoiceHandler) startProcessing(c *gin.Context) {
	h.applyLifecycleEvent(c, h.invoiceService.StartProcessing, "Failed to start processing")
}

// completeInvoice godoc
// @Summary Complete a processed invoice
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "The completed invoice"
// @Failure 409 {object} map[string]string "Invoice is not in processing"
// @Router /invoices/{invoiceID}/complete [post]
func (h *invoiceHandler) completeInvoice(c *gin.Context) {
	h.applyLifecycleEvent(c, h.invoiceService.CompleteInvoice, "Failed to complete invoice")
}

// applyLifecycleEvent is the shared body of the parameterless lifecycle endpoints.
func (h *invoiceHandler) applyLifecycleEvent(
	c *gin.Context,
	apply func(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error),
	fallbackMsg string,
) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	invoice, err := apply(c.Request.Context(), c.Param("invoiceID"), actorID)
	if err != nil {
		respondServiceError(c, err, fallbackMsg)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}
