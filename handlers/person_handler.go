package handlers

import (
	"net/http"

	"github.com/NomadCrew/splitly-backend/types"
	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	personService PersonServiceInterface
}

func NewPersonHandler(personService PersonServiceInterface) *PersonHandler {
	return &PersonHandler{personService: personService}
}

// ListPersonsHandler godoc
// @Summary List persons
// @Tags persons
// @Produce json
// @Success 200 {object} object{persons=[]types.Person} "All persons"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /persons [get]
// @Security BearerAuth
func (h *PersonHandler) ListPersonsHandler(c *gin.Context) {
	persons, err := h.personService.ListPersons(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"persons": persons})
}

// GetPersonHandler godoc
// @Summary Get a person
// @Tags persons
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} object{person=types.Person} "Person details"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /persons/{id} [get]
// @Security BearerAuth
func (h *PersonHandler) GetPersonHandler(c *gin.Context) {
	person, err := h.personService.GetPerson(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"person": person})
}

// CreatePersonHandler godoc
// @Summary Create a person
// @Tags persons
// @Accept json
// @Produce json
// @Param request body types.PersonInput true "Person details"
// @Success 201 {object} object{message=string,person=types.Person} "Created person"
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /persons [post]
// @Security BearerAuth
func (h *PersonHandler) CreatePersonHandler(c *gin.Context) {
	var req types.PersonInput
	if !bindJSON(c, &req) {
		return
	}

	person, err := h.personService.CreatePerson(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": MsgPersonAdded, "person": person})
}

// UpdatePersonHandler godoc
// @Summary Update a person
// @Tags persons
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param request body types.PersonUpdate true "Fields to update"
// @Success 200 {object} object{message=string,person=types.Person} "Updated person"
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input data"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /persons/{id} [put]
// @Security BearerAuth
func (h *PersonHandler) UpdatePersonHandler(c *gin.Context) {
	var req types.PersonUpdate
	if !bindJSON(c, &req) {
		return
	}

	person, err := h.personService.UpdatePerson(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgPersonUpdated, "person": person})
}

// DeletePersonHandler godoc
// @Summary Delete a person
// @Tags persons
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} object{message=string,deleted_person=types.Person} "Deleted person"
// @Failure 401 {object} types.ErrorResponse "Unauthorized - User not logged in"
// @Failure 404 {object} types.ErrorResponse "Not found"
// @Failure 429 {object} types.ErrorResponse "Too many write requests"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /persons/{id} [delete]
// @Security BearerAuth
func (h *PersonHandler) DeletePersonHandler(c *gin.Context) {
	person, err := h.personService.DeletePerson(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgPersonDeleted, "deleted_person": person})
}
