package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories"
	"github.com/SAP-F-2025/rmib-profile-service/internal/services"
	"github.com/SAP-F-2025/rmib-profile-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateStudent registers a new student account
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Success 201 {object} models.StudentResponse
// @Failure 409 {object} ErrorResponse "NISN already registered"
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req models.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.LogRequest(c, "Creating student", "nisn", req.NISN)

	response, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetStudent returns one student with result and achievements
// @Summary Get student
// @Tags students
// @Produce json
// @Success 200 {object} models.Student
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	studentID, ok := h.parseID(c)
	if !ok {
		return
	}

	student, err := h.service.GetByID(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// ListStudents returns students matching the query filters
// @Summary List students
// @Tags students
// @Produce json
// @Param class query string false "Filter by class"
// @Param status query string false "Filter by assessment status"
// @Param search query string false "Match name or NISN"
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	filters := repositories.StudentFilters{
		SortBy:    c.DefaultQuery("sort_by", "name"),
		SortOrder: c.DefaultQuery("sort_order", "asc"),
	}

	if class := c.Query("class"); class != "" {
		filters.StudentClass = &class
	}
	if status := c.Query("status"); status != "" {
		assessmentStatus := models.AssessmentStatus(status)
		filters.AssessmentStatus = &assessmentStatus
	}
	if search := c.Query("search"); search != "" {
		filters.Search = &search
	}
	if locked := c.Query("locked"); locked != "" {
		isLocked := locked == "true"
		filters.IsLocked = &isLocked
	}

	filters.Limit = parseIntQuery(c, "limit", 50, 200)
	filters.Offset = parseIntQuery(c, "offset", 0, 1<<30)

	students, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"students": students,
		"total":    total,
	})
}

// DeleteStudent soft-deletes a student
// @Summary Delete student
// @Tags students
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	studentID, ok := h.parseID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting student", "student_id", studentID)

	if err := h.service.Delete(c.Request.Context(), studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Student deleted"})
}

// GetCombinedScores returns the per-category combined score view
// @Summary Get combined scores
// @Tags students
// @Produce json
// @Success 200 {object} models.CombinedScoreResponse
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /students/{id}/scores [get]
func (h *StudentHandler) GetCombinedScores(c *gin.Context) {
	studentID, ok := h.parseID(c)
	if !ok {
		return
	}

	scores, err := h.service.GetCombinedScores(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scores)
}

// GetClassStats returns assessment progress statistics for one class
// @Summary Get class statistics
// @Tags students
// @Produce json
// @Router /students/classes/{class}/stats [get]
func (h *StudentHandler) GetClassStats(c *gin.Context) {
	studentClass := c.Param("class")
	if studentClass == "" {
		h.RespondWithError(c, http.StatusBadRequest, "Class is required", nil)
		return
	}

	stats, err := h.service.GetClassStats(c.Request.Context(), studentClass)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StudentHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid student ID", err)
		return 0, false
	}
	return uint(id), true
}

func parseIntQuery(c *gin.Context, name string, fallback, max int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || value < 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}
