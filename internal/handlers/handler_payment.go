package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
	"github.com/tirtatour/travel_billing_app/internal/middleware"
)

// paymentHandler handles HTTP requests for payment proofs and overpayment
// resolution.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

// registerPaymentRoutes registers proof and overpayment routes under /invoices.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)
	invoices := rg.Group("/invoices/:invoiceID")
	{
		invoices.POST("/proofs", h.submitProof)
		invoices.GET("/proofs", h.listProofs)
		invoices.POST("/proofs/:proofID/verify", h.verifyPayment)
		invoices.POST("/proofs/:proofID/reject", h.rejectProof)
		invoices.POST("/overpayment/resolve", h.resolveOverpayment)
		invoices.POST("/refund/confirm", h.confirmRefund)
		invoices.POST("/refund/cancel", h.cancelRefund)
	}
}

// submitProof godoc
// @Summary Submit a payment proof
// @Description Records an uploaded transfer proof against an invoice, pending human verification
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   proof body dto.SubmitProofRequest true "Proof details"
// @Success 201 {object} dto.PaymentProofResponse "The pending proof"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Invoice is closed"
// @Router /invoices/{invoiceID}/proofs [post]
func (h *paymentHandler) submitProof(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for SubmitProof", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	proof, err := h.paymentService.SubmitProof(c.Request.Context(), c.Param("invoiceID"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to submit payment proof")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentProofResponse(proof))
}

// listProofs godoc
// @Summary List payment proofs of an invoice
// @Tags payments
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {array} dto.PaymentProofResponse "Proofs, oldest first"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{invoiceID}/proofs [get]
func (h *paymentHandler) listProofs(c *gin.Context) {
	proofs, err := h.paymentService.ListProofsByInvoice(c.Request.Context(), c.Param("invoiceID"))
	if err != nil {
		respondServiceError(c, err, "Failed to list payment proofs")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentProofResponses(proofs))
}

// verifyPayment godoc
// @Summary Verify a payment proof
// @Description Accepts a pending proof, credits the invoice and posts the cash receipt atomically. Verifying an already-processed proof returns the invoice unchanged.
// @Tags payments
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   proofID path string true "Proof ID"
// @Success 200 {object} dto.InvoiceResponse "The invoice after verification"
// @Failure 409 {object} map[string]string "Invoice cannot accept payments in its current status"
// @Router /invoices/{invoiceID}/proofs/{proofID}/verify [post]
func (h *paymentHandler) verifyPayment(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	invoice, err := h.paymentService.VerifyPayment(c.Request.Context(), c.Param("invoiceID"), c.Param("proofID"), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to verify payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// rejectProof godoc
// @Summary Reject a payment proof
// @Description Declines a pending proof with a reason; the invoice balance is untouched
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   proofID path string true "Proof ID"
// @Param   rejection body dto.RejectProofRequest true "Rejection reason"
// @Success 200 {object} dto.PaymentProofResponse "The rejected proof"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /invoices/{invoiceID}/proofs/{proofID}/reject [post]
func (h *paymentHandler) rejectProof(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RejectProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for RejectProof", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	proof, err := h.paymentService.RejectProof(c.Request.Context(), c.Param("invoiceID"), c.Param("proofID"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to reject payment proof")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentProofResponse(proof))
}

// resolveOverpayment godoc
// @Summary Resolve an overpaid invoice
// @Description Transfers the excess to another invoice, keeps it as income, or opens a refund. Outcomes are mutually exclusive.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   resolution body dto.ResolveOverpaymentRequest true "Resolution choice"
// @Success 200 {object} dto.InvoiceResponse "The resolved invoice"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Overpayment already resolved"
// @Router /invoices/{invoiceID}/overpayment/resolve [post]
func (h *paymentHandler) resolveOverpayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ResolveOverpaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ResolveOverpayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	invoice, err := h.paymentService.ResolveOverpayment(c.Request.Context(), c.Param("invoiceID"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to resolve overpayment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// confirmRefund godoc
// @Summary Confirm a pending refund
// @Description Finalizes a refund once the money has left the bank and posts the refund entry
// @Tags payments
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "The refunded invoice"
// @Failure 409 {object} map[string]string "No refund is pending"
// @Router /invoices/{invoiceID}/refund/confirm [post]
func (h *paymentHandler) confirmRefund(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	invoice, err := h.paymentService.ConfirmRefund(c.Request.Context(), c.Param("invoiceID"), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to confirm refund")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// cancelRefund godoc
// @Summary Cancel a pending refund
// @Description Abandons a pending refund; the excess stays on the books as received income
// @Tags payments
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse "The invoice after cancellation"
// @Failure 409 {object} map[string]string "No refund is pending"
// @Router /invoices/{invoiceID}/refund/cancel [post]
func (h *paymentHandler) cancelRefund(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	invoice, err := h.paymentService.CancelRefund(c.Request.Context(), c.Param("invoiceID"), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel refund")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}
