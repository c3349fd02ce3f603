package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

// StudentHandler exposes student roster endpoints.
type StudentHandler struct {
	students  *service.StudentService
	guardians *service.GuardianService
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(students *service.StudentService, guardians *service.GuardianService) *StudentHandler {
	return &StudentHandler{students: students, guardians: guardians}
}

// List godoc
// @Summary List students within the caller's scope
// @Tags students
// @Security BearerAuth
// @Produce json
// @Param group_id query string false "filter by group"
// @Param campus_id query string false "filter by campus"
// @Param active query bool false "filter by active flag"
// @Param search query string false "name search"
// @Success 200 {object} response.Envelope{data=[]models.StudentDetail}
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		Search:    c.Query("search"),
		GroupID:   c.Query("group_id"),
		CampusID:  c.Query("campus_id"),
		Active:    queryBool(c, "active"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "page_size", 20),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	students, pagination, err := h.students.List(c.Request.Context(), callerScope(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Get godoc
// @Summary Fetch one student
// @Tags students
// @Security BearerAuth
// @Produce json
// @Param id path string true "student id"
// @Success 200 {object} response.Envelope{data=models.StudentDetail}
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), callerScope(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Enroll a student
// @Tags students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "student fields"
// @Success 201 {object} response.Envelope{data=models.StudentDetail}
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Edit a student
// @Tags students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "student id"
// @Param payload body service.UpdateStudentRequest true "changed fields"
// @Success 200 {object} response.Envelope{data=models.StudentDetail}
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid json payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Deactivate godoc
// @Summary Deactivate a student
// @Tags students
// @Security BearerAuth
// @Param id path string true "student id"
// @Success 204
// @Router /students/{id} [delete]
func (h *StudentHandler) Deactivate(c *gin.Context) {
	if err := h.students.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListGuardians godoc
// @Summary List a student's guardians
// @Tags students
// @Security BearerAuth
// @Produce json
// @Param id path string true "student id"
// @Success 200 {object} response.Envelope{data=[]models.Guardian}
// @Router /students/{id}/guardians [get]
func (h *StudentHandler) ListGuardians(c *gin.Context) {
	guardians, err := h.guardians.ListByStudent(c.Request.Context(), callerScope(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, guardians, nil)
}

func queryBool(c *gin.Context, key string) *bool {
	switch c.Query(key) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}
