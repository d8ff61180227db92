package handlers

import (
	apperrors "github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/gin-gonic/gin"
)

// Success messages returned with write responses.
const (
	MsgGroupAdded     = "Group added successfully"
	MsgGroupUpdated   = "Group updated successfully"
	MsgGroupDeleted   = "Group deleted successfully"
	MsgExpenseAdded   = "Expense added successfully"
	MsgExpenseUpdated = "Expense updated successfully"
	MsgExpenseDeleted = "Expense deleted successfully"
	MsgPersonAdded    = "Person added successfully"
	MsgPersonUpdated  = "Person updated successfully"
	MsgPersonDeleted  = "Person deleted successfully"
	MsgDebtorAdded    = "Debtor added successfully"
	MsgDebtorUpdated  = "Debtor updated successfully"
	MsgDebtorDeleted  = "Debtor deleted successfully"
	MsgMemberAdded    = "Member added successfully"
	MsgMemberUpdated  = "Member updated successfully"
	MsgMemberDeleted  = "Member deleted successfully"
)

// bindJSON binds the request body into dst. On failure it records a validation
// error for the ErrorHandler middleware and returns false.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.GetLogger().Debugw("Invalid request payload", "error", err, "path", c.FullPath())
		fail(c, apperrors.ValidationFailed("invalid_request_payload", err.Error()))
		return false
	}
	return true
}

// fail hands err to the ErrorHandler middleware.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}
