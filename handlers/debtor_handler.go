package handlers

import (
	"net/http"

	"github.com/NomadCrew/splitly-backend/types"
	"github.com/gin-gonic/gin"
)

type DebtorHandler struct {
	debtorService DebtorServiceInterface
}

func NewDebtorHandler(debtorService DebtorServiceInterface) *DebtorHandler {
	return &DebtorHandler{debtorService: debtorService}
}

// ListDebtorsHandler godoc
// @Summary List expense debtors
// @Tags debtors
// @Produce json
// @Success 200 {object} object{debtors=[]types.ExpenseDebtor} "All debtor rows"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /debtors [get]
// @Security BearerAuth
func (h *DebtorHandler) ListDebtorsHandler(c *gin.Context) {
	debtors, err := h.debtorService.ListDebtors(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debtors": debtors})
}

// GetDebtorHandler godoc
// @Summary Get an expense debtor
// @Tags debtors
// @Produce json
// @Param id path string true "Debtor ID"
// @Success 200 {object} object{debtor=types.ExpenseDebtor} "Debtor details"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /debtors/{id} [get]
// @Security BearerAuth
func (h *DebtorHandler) GetDebtorHandler(c *gin.Context) {
	debtor, err := h.debtorService.GetDebtor(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debtor": debtor})
}

// CreateDebtorHandler godoc
// @Summary Create an expense debtor
// @Tags debtors
// @Accept json
// @Produce json
// @Param request body types.DebtorInput true "Debtor details"
// @Success 201 {object} object{message=string,debtor=types.ExpenseDebtor} "Created debtor"
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /debtors [post]
// @Security BearerAuth
func (h *DebtorHandler) CreateDebtorHandler(c *gin.Context) {
	var req types.DebtorInput
	if !bindJSON(c, &req) {
		return
	}

	debtor, err := h.debtorService.CreateDebtor(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": MsgDebtorAdded, "debtor": debtor})
}

// UpdateDebtorHandler godoc
// @Summary Update an expense debtor
// @Tags debtors
// @Accept json
// @Produce json
// @Param id path string true "Debtor ID"
// @Param request body types.DebtorUpdate true "Fields to update"
// @Success 200 {object} object{message=string,debtor=types.ExpenseDebtor} "Updated debtor"
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /debtors/{id} [put]
// @Security BearerAuth
func (h *DebtorHandler) UpdateDebtorHandler(c *gin.Context) {
	var req types.DebtorUpdate
	if !bindJSON(c, &req) {
		return
	}

	debtor, err := h.debtorService.UpdateDebtor(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgDebtorUpdated, "debtor": debtor})
}

// DeleteDebtorHandler godoc
// @Summary Delete an expense debtor
// @Tags debtors
// @Produce json
// @Param id path string true "Debtor ID"
// @Success 200 {object} object{message=string,deleted_debtor=types.ExpenseDebtor} "Deleted debtor"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /debtors/{id} [delete]
// @Security BearerAuth
func (h *DebtorHandler) DeleteDebtorHandler(c *gin.Context) {
	debtor, err := h.debtorService.DeleteDebtor(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgDebtorDeleted, "deleted_debtor": debtor})
}
