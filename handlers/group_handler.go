package handlers

import (
	"net/http"

	"github.com/NomadCrew/splitly-backend/types"
	"github.com/gin-gonic/gin"
)

// GroupHandler serves groups and the per-group collections.
type GroupHandler struct {
	groupService GroupServiceInterface
}

func NewGroupHandler(groupService GroupServiceInterface) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// ListGroupsHandler godoc
// @Summary List groups
// @Tags groups
// @Produce json
// @Success 200 {object} object{groups=[]types.Group} "All groups"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /groups [get]
// @Security BearerAuth
func (h *GroupHandler) ListGroupsHandler(c *gin.Context) {
	groups, err := h.groupService.ListGroups(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroupHandler godoc
// @Summary Get a group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} object{group=types.Group} "Group details"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /groups/{id} [get]
// @Security BearerAuth
func (h *GroupHandler) GetGroupHandler(c *gin.Context) {
	group, err := h.groupService.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// CreateGroupHandler godoc
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Param request body types.GroupInput true "Group details"
// @Success 201 {object} object{message=string,group=types.Group} "Created group"
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /groups [post]
// @Security BearerAuth
func (h *GroupHandler) CreateGroupHandler(c *gin.Context) {
	var req types.GroupInput
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": MsgGroupAdded, "group": group})
}

// UpdateGroupHandler godoc
// @Summary Update a group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body types.GroupUpdate true "Fields to update"
// @Success 200 {object} object{message=string,group=types.Group} "Updated group"
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /groups/{id} [put]
// @Security BearerAuth
func (h *GroupHandler) UpdateGroupHandler(c *gin.Context) {
	var req types.GroupUpdate
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgGroupUpdated, "group": group})
}

// DeleteGroupHandler godoc
// @Summary Delete a group
// @Description Deletes the group together with its persons, members, expenses and debtors.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} object{message=string,deleted_group=types.Group} "Deleted group"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /groups/{id} [delete]
// @Security BearerAuth
func (h *GroupHandler) DeleteGroupHandler(c *gin.Context) {
	group, err := h.groupService.DeleteGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgGroupDeleted, "deleted_group": group})
}

// GroupExpensesHandler godoc
// @Summary List expenses of a group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} object{expenses=[]types.Expense} "Group expenses"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /groups/{id}/expenses [get]
// @Security BearerAuth
func (h *GroupHandler) GroupExpensesHandler(c *gin.Context) {
	expenses, err := h.groupService.GroupExpenses(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// GroupPersonsHandler godoc
// @Summary List persons of a group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} object{persons=[]types.Person} "Group persons"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /groups/{id}/persons [get]
// @Security BearerAuth
func (h *GroupHandler) GroupPersonsHandler(c *gin.Context) {
	persons, err := h.groupService.GroupPersons(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"persons": persons})
}

// GroupDebtorsHandler godoc
// @Summary List expense debtors of a group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} object{debtors=[]types.ExpenseDebtor} "Group debtors"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /groups/{id}/debtors [get]
// @Security BearerAuth
func (h *GroupHandler) GroupDebtorsHandler(c *gin.Context) {
	debtors, err := h.groupService.GroupDebtors(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debtors": debtors})
}

// GroupMembersHandler godoc
// @Summary List members of a group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} object{members=[]types.Member} "Group members"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /groups/{id}/members [get]
// @Security BearerAuth
func (h *GroupHandler) GroupMembersHandler(c *gin.Context) {
	members, err := h.groupService.GroupMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// GroupBalancesHandler godoc
// @Summary Get balances of a group
// @Description Net balance per person: paid minus owed. The result may be stale by up to the configured balance TTL.
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} object{balances=types.Balances} "Balances keyed by person ID"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /groups/{id}/balances [get]
// @Security BearerAuth
func (h *GroupHandler) GroupBalancesHandler(c *gin.Context) {
	balances, err := h.groupService.GroupBalances(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}
