package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
	"github.com/tirtatour/travel_billing_app/internal/middleware"
)

// periodHandler handles HTTP requests for fiscal years and accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: periodService}
}

// registerPeriodRoutes registers fiscal-year and period routes on the group.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)
	fiscalYears := rg.Group("/fiscal-years")
	{
		fiscalYears.POST("", h.createFiscalYear)
		fiscalYears.GET("", h.listFiscalYears)
		fiscalYears.GET("/:fiscalYearID/periods", h.listPeriods)
		fiscalYears.POST("/:fiscalYearID/close", h.closeFiscalYear)
	}
	periods := rg.Group("/periods")
	{
		periods.POST("/:periodID/lock", h.lockPeriod)
		periods.POST("/:periodID/unlock", h.unlockPeriod)
	}
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Description Opens a fiscal year with its twelve monthly accounting periods
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   fiscalYear body dto.CreateFiscalYearRequest true "Fiscal year"
// @Success 201 {object} dto.FiscalYearResponse "The created fiscal year"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Fiscal year already exists"
// @Router /fiscal-years [post]
func (h *periodHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	fiscalYear, err := h.periodService.CreateFiscalYear(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create fiscal year")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(fiscalYear))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags periods
// @Produce  json
// @Success 200 {array} dto.FiscalYearResponse "Fiscal years, newest first"
// @Router /fiscal-years [get]
func (h *periodHandler) listFiscalYears(c *gin.Context) {
	years, err := h.periodService.ListFiscalYears(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list fiscal years")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponses(years))
}

// listPeriods godoc
// @Summary List accounting periods of a fiscal year
// @Tags periods
// @Produce  json
// @Param   fiscalYearID path string true "Fiscal year ID"
// @Success 200 {array} dto.AccountingPeriodResponse "The twelve monthly periods"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Router /fiscal-years/{fiscalYearID}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	periods, err := h.periodService.ListPeriods(c.Request.Context(), c.Param("fiscalYearID"))
	if err != nil {
		respondServiceError(c, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountingPeriodResponses(periods))
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Permanently closes a fiscal year and locks all its periods. There is no reopen.
// @Tags periods
// @Produce  json
// @Param   fiscalYearID path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse "The closed fiscal year"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 409 {object} map[string]string "Fiscal year already closed"
// @Router /fiscal-years/{fiscalYearID}/close [post]
func (h *periodHandler) closeFiscalYear(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	fiscalYear, err := h.periodService.CloseFiscalYear(c.Request.Context(), c.Param("fiscalYearID"), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to close fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fiscalYear))
}

// lockPeriod godoc
// @Summary Lock an accounting period
// @Description Blocks postings whose entry date falls inside the period. Locking an already-locked period is a no-op.
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.AccountingPeriodResponse "The locked period"
// @Failure 404 {object} map[string]string "Period not found"
// @Router /periods/{periodID}/lock [post]
func (h *periodHandler) lockPeriod(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	period, err := h.periodService.LockPeriod(c.Request.Context(), c.Param("periodID"), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to lock period")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountingPeriodResponse(period))
}

// unlockPeriod godoc
// @Summary Unlock an accounting period
// @Description Reopens a locked period. Periods of a closed fiscal year cannot be reopened.
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.AccountingPeriodResponse "The unlocked period"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Fiscal year is closed"
// @Router /periods/{periodID}/unlock [post]
func (h *periodHandler) unlockPeriod(c *gin.Context) {
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	period, err := h.periodService.UnlockPeriod(c.Request.Context(), c.Param("periodID"), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to unlock period")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountingPeriodResponse(period))
}
