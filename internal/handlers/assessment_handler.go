package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/services"
	"github.com/SAP-F-2025/rmib-profile-service/internal/utils"
)

type AssessmentHandler struct {
	BaseHandler
	service services.AssessmentService
}

func NewAssessmentHandler(service services.AssessmentService, logger utils.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// StartAssessment opens or resumes the student's assessment
// @Summary Start assessment
// @Tags assessment
// @Produce json
// @Success 200 {object} models.StartAssessmentResponse
// @Failure 409 {object} ErrorResponse "Already finalized"
// @Router /students/{id}/assessment/start [post]
func (h *AssessmentHandler) StartAssessment(c *gin.Context) {
	studentID, ok := h.parseStudentID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Starting assessment", "student_id", studentID)

	response, err := h.service.Start(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SaveProgress autosaves a partial rating set
// @Summary Save assessment progress
// @Tags assessment
// @Accept json
// @Produce json
// @Success 200 {object} models.SaveProgressResponse
// @Failure 409 {object} ErrorResponse "Not in progress"
// @Router /students/{id}/assessment/progress [put]
func (h *AssessmentHandler) SaveProgress(c *gin.Context) {
	studentID, ok := h.parseStudentID(c)
	if !ok {
		return
	}

	var req models.SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	response, err := h.service.SaveProgress(c.Request.Context(), studentID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetProgress returns the saved ratings and completion state
// @Summary Get assessment progress
// @Tags assessment
// @Produce json
// @Success 200 {object} models.AssessmentProgressResponse
// @Failure 404 {object} ErrorResponse "No result"
// @Router /students/{id}/assessment/progress [get]
func (h *AssessmentHandler) GetProgress(c *gin.Context) {
	studentID, ok := h.parseStudentID(c)
	if !ok {
		return
	}

	response, err := h.service.GetProgress(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SubmitAssessment scores a complete rating set and finalizes the result
// @Summary Submit assessment
// @Tags assessment
// @Accept json
// @Produce json
// @Success 200 {object} models.SubmitAssessmentResponse
// @Failure 400 {object} ErrorResponse "Incomplete or invalid ratings"
// @Failure 409 {object} ErrorResponse "Not in progress"
// @Router /students/{id}/assessment/submit [post]
func (h *AssessmentHandler) SubmitAssessment(c *gin.Context) {
	studentID, ok := h.parseStudentID(c)
	if !ok {
		return
	}

	var req models.SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.LogRequest(c, "Submitting assessment", "student_id", studentID)

	response, err := h.service.Submit(c.Request.Context(), studentID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// RestartAssessment reopens a finalized result for editing
// @Summary Restart assessment
// @Tags assessment
// @Produce json
// @Success 200 {object} models.RestartAssessmentResponse
// @Failure 409 {object} ErrorResponse "Still in progress"
// @Router /students/{id}/assessment/restart [post]
func (h *AssessmentHandler) RestartAssessment(c *gin.Context) {
	studentID, ok := h.parseStudentID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Restarting assessment", "student_id", studentID)

	response, err := h.service.Restart(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CancelEdit abandons a restart and restores the previous result
// @Summary Cancel assessment edit
// @Tags assessment
// @Produce json
// @Success 200 {object} models.CancelEditResponse
// @Failure 409 {object} ErrorResponse "No pending edit"
// @Router /students/{id}/assessment/cancel-edit [post]
func (h *AssessmentHandler) CancelEdit(c *gin.Context) {
	studentID, ok := h.parseStudentID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Cancelling assessment edit", "student_id", studentID)

	response, err := h.service.CancelEdit(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetResult returns the student's assessment result
// @Summary Get assessment result
// @Tags assessment
// @Produce json
// @Success 200 {object} models.AssessmentResult
// @Failure 404 {object} ErrorResponse "No result"
// @Router /students/{id}/assessment/result [get]
func (h *AssessmentHandler) GetResult(c *gin.Context) {
	studentID, ok := h.parseStudentID(c)
	if !ok {
		return
	}

	result, err := h.service.GetResult(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AssessmentHandler) parseStudentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid student ID", err)
		return 0, false
	}
	return uint(id), true
}
