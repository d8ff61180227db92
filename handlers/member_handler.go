package handlers

import (
	"net/http"

	"github.com/NomadCrew/splitly-backend/types"
	"github.com/gin-gonic/gin"
)

// MemberHandler handles group membership of authenticated users.
type MemberHandler struct {
	memberService MemberServiceInterface
}

func NewMemberHandler(memberService MemberServiceInterface) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// ListMembersHandler godoc
// @Summary List group memberships
// @Tags members
// @Produce json
// @Success 200 {object} object{members=[]types.Member} "All memberships"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /members [get]
// @Security BearerAuth
func (h *MemberHandler) ListMembersHandler(c *gin.Context) {
	members, err := h.memberService.ListMembers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// GetMemberHandler godoc
// @Summary Get a group membership
// @Tags members
// @Produce json
// @Param id path string true "Membership ID"
// @Success 200 {object} object{member=types.Member} "Membership details"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /members/{id} [get]
// @Security BearerAuth
func (h *MemberHandler) GetMemberHandler(c *gin.Context) {
	member, err := h.memberService.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}

// AddMemberHandler godoc
// @Summary Add a user to a group
// @Tags members
// @Accept json
// @Produce json
// @Param request body types.MemberInput true "Group and user IDs"
// @Success 201 {object} object{message=string,member=types.Member} "Created membership"
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /members [post]
// @Security BearerAuth
func (h *MemberHandler) AddMemberHandler(c *gin.Context) {
	var req types.MemberInput
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": MsgMemberAdded, "member": member})
}

// UpdateMemberHandler godoc
// @Summary Update a group membership
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Membership ID"
// @Param request body types.MemberUpdate true "Fields to update"
// @Success 200 {object} object{message=string,member=types.Member} "Updated membership"
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /members/{id} [put]
// @Security BearerAuth
func (h *MemberHandler) UpdateMemberHandler(c *gin.Context) {
	var req types.MemberUpdate
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgMemberUpdated, "member": member})
}

// RemoveMemberHandler godoc
// @Summary Remove a user from a group
// @Tags members
// @Produce json
// @Param id path string true "Membership ID"
// @Success 200 {object} object{message=string,deleted_member=types.Member} "Deleted membership"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /members/{id} [delete]
// @Security BearerAuth
func (h *MemberHandler) RemoveMemberHandler(c *gin.Context) {
	member, err := h.memberService.DeleteMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgMemberDeleted, "deleted_member": member})
}
