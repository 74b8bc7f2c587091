package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
	"github.com/tirtatour/travel_billing_app/internal/middleware"
)

// accountHandler handles HTTP requests for the chart of accounts and the
// event-category account mappings.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

// registerAccountRoutes registers chart-of-accounts and mapping routes on the group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
	}
	mappings := rg.Group("/account-mappings")
	{
		mappings.POST("", h.createMapping)
		mappings.GET("", h.listMappings)
		mappings.PUT("/:category", h.updateMapping)
	}
}

// createAccount godoc
// @Summary Create a ledger account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse "The created account"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get a ledger account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse "The account"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List ledger accounts
// @Tags accounts
// @Produce  json
// @Param   activeOnly query bool false "Only return active accounts"
// @Success 200 {array} dto.AccountResponse "Accounts ordered by code"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	activeOnly := c.Query("activeOnly") == "true"
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), activeOnly)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// updateAccount godoc
// @Summary Update a ledger account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse "The updated account"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("accountID"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate a ledger account
// @Description Marks an account inactive so new postings cannot reference it. Posted history is untouched.
// @Tags accounts
// @Param   accountID path string true "Account ID"
// @Success 204 "Account deactivated"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("accountID"), actorID); err != nil {
		respondServiceError(c, err, "Failed to deactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}

// createMapping godoc
// @Summary Create an account mapping
// @Description Maps a business event category to its debit and credit leaf accounts
// @Tags account-mappings
// @Accept  json
// @Produce  json
// @Param   mapping body dto.CreateAccountMappingRequest true "Mapping details"
// @Success 201 {object} dto.AccountMappingResponse "The created mapping"
// @Failure 400 {object} map[string]string "Invalid request format or non-postable accounts"
// @Failure 409 {object} map[string]string "Category already mapped"
// @Router /account-mappings [post]
func (h *accountHandler) createMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	mapping, err := h.accountService.CreateMapping(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create account mapping")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountMappingResponse(mapping))
}

// listMappings godoc
// @Summary List account mappings
// @Tags account-mappings
// @Produce  json
// @Success 200 {array} dto.AccountMappingResponse "All configured mappings"
// @Router /account-mappings [get]
func (h *accountHandler) listMappings(c *gin.Context) {
	mappings, err := h.accountService.ListMappings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list account mappings")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountMappingResponses(mappings))
}

// updateMapping godoc
// @Summary Repoint an account mapping
// @Description Changes the accounts behind a category. Applies to future postings only; posted entries keep the accounts they used.
// @Tags account-mappings
// @Accept  json
// @Produce  json
// @Param   category path string true "Event category"
// @Param   mapping body dto.UpdateAccountMappingRequest true "Fields to update"
// @Success 200 {object} dto.AccountMappingResponse "The updated mapping"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Category not mapped"
// @Router /account-mappings/{category} [put]
func (h *accountHandler) updateMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateAccountMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for UpdateMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	category := domain.EventCategory(c.Param("category"))
	mapping, err := h.accountService.UpdateMapping(c.Request.Context(), category, req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to update account mapping")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountMappingResponse(mapping))
}
