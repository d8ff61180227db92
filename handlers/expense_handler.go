package handlers

import (
	"net/http"

	"github.com/NomadCrew/splitly-backend/types"
	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	expenseService ExpenseServiceInterface
}

func NewExpenseHandler(expenseService ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ListExpensesHandler godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Success 200 {object} object{expenses=[]types.Expense} "All expenses"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /expenses [get]
// @Security BearerAuth
func (h *ExpenseHandler) ListExpensesHandler(c *gin.Context) {
	expenses, err := h.expenseService.ListExpenses(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// GetExpenseHandler godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} object{expense=types.Expense} "Expense details"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /expenses/{id} [get]
// @Security BearerAuth
func (h *ExpenseHandler) GetExpenseHandler(c *gin.Context) {
	expense, err := h.expenseService.GetExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// CreateExpenseHandler godoc
// @Summary Create an expense
// @Description Creates the expense and splits its amount equally between the listed debtors.
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body types.ExpenseInput true "Expense details and debtor person IDs"
// @Success 201 {object} object{message=string,expense=types.Expense,debtors=[]types.ExpenseDebtor} "Created expense and its debtors"
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /expenses [post]
// @Security BearerAuth
func (h *ExpenseHandler) CreateExpenseHandler(c *gin.Context) {
	var req types.ExpenseInput
	if !bindJSON(c, &req) {
		return
	}

	expense, debtors, err := h.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": MsgExpenseAdded,
		"expense": expense,
		"debtors": debtors,
	})
}

// UpdateExpenseHandler godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body types.ExpenseUpdate true "Fields to update"
// @Success 200 {object} object{message=string,expense=types.Expense} "Updated expense"
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /expenses/{id} [put]
// @Security BearerAuth
func (h *ExpenseHandler) UpdateExpenseHandler(c *gin.Context) {
	var req types.ExpenseUpdate
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgExpenseUpdated, "expense": expense})
}

// DeleteExpenseHandler godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} object{message=string,deleted_expense=types.Expense} "Deleted expense"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /expenses/{id} [delete]
// @Security BearerAuth
func (h *ExpenseHandler) DeleteExpenseHandler(c *gin.Context) {
	expense, err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgExpenseDeleted, "deleted_expense": expense})
}
