package handlers

import (
	"net/http"

	apperrors "github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/middleware"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// MyGroupsHandler godoc
// @Summary List groups of the current user
// @Tags users
// @Produce json
// @Success 200 {object} object{groups=[]types.Group} "Groups the caller belongs to"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /users/me/groups [get]
// @Security BearerAuth
func (h *UserHandler) MyGroupsHandler(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		fail(c, apperrors.AuthenticationFailed("Authorization required"))
		return
	}
	h.respondGroups(c, userID)
}

// UserGroupsHandler godoc
// @Summary List groups of a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} object{groups=[]types.Group} "Groups the user belongs to"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /users/{id}/groups [get]
// @Security BearerAuth
func (h *UserHandler) UserGroupsHandler(c *gin.Context) {
	h.respondGroups(c, c.Param("id"))
}

func (h *UserHandler) respondGroups(c *gin.Context, userID string) {
	groups, err := h.userService.UserGroups(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}
